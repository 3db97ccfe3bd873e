package main

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/five82/meteo/internal/config"
	"github.com/five82/meteo/internal/logtail"
)

func newLogsCmd() *cobra.Command {
	var (
		lines  int
		level  string
		follow bool
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the tail of the meteo log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := getOptions(cmd)
			cfg, err := config.Load(opts.ConfigFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			minLevel, err := logrus.ParseLevel(strings.TrimSpace(level))
			if err != nil {
				return fmt.Errorf("invalid --level: %w", err)
			}

			tail, err := logtail.Read(cfg.LogFile, lines)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, line := range logtail.FilterLevel(tail, minLevel) {
				_, _ = fmt.Fprintln(w, line)
			}
			if !follow {
				return nil
			}
			return logtail.Follow(cmd.Context(), cfg.LogFile, minLevel, func(line string) {
				_, _ = fmt.Fprintln(w, line)
			})
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of lines to read from the end of the file")
	cmd.Flags().StringVar(&level, "level", "trace", "Minimum level to print (trace, debug, info, warn, error)")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing lines as they are written")
	return cmd
}
