package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Set via -ldflags at build time.
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of meteo",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "meteo %s\n", version)
			_, _ = fmt.Fprintf(w, "  Commit:    %s\n", commit)
			_, _ = fmt.Fprintf(w, "  Built:     %s\n", buildDate)
			_, _ = fmt.Fprintf(w, "  Arch:      %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
