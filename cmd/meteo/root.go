package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/five82/meteo/internal/app"
	"github.com/five82/meteo/internal/logging"
)

// commandOptions holds the persistent flags shared by every command.
type commandOptions struct {
	ConfigFile string
	PrefsFile  string
	Verbose    bool
	JSONOutput bool
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meteo",
		Short: "Current weather and favorite cities in the terminal",
		Long: `meteo looks up current conditions from OpenWeatherMap.

Run without arguments to open the interactive view. The API key is read from
~/.config/meteo/config.toml (api_key) or from METEO_API_KEY / OPENWEATHER_API_KEY.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			noColor, _ := cmd.Flags().GetBool("no-color")
			if noColor || os.Getenv("NO_COLOR") != "" {
				lipgloss.SetColorProfile(termenv.Ascii)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := getOptions(cmd)
			return app.Run(cmd.Context(), app.Options{
				ConfigPath: opts.ConfigFile,
				PrefsPath:  opts.PrefsFile,
				Verbose:    opts.Verbose,
				JSONLogs:   opts.JSONOutput,
			})
		},
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to config.toml")
	cmd.PersistentFlags().String("prefs", "", "Path to prefs.toml")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	cmd.AddCommand(
		newLookupCmd(),
		newFavoritesCmd(),
		newLogsCmd(),
		newVersionCmd(),
	)
	return cmd
}

// getOptions extracts common options from a command.
func getOptions(cmd *cobra.Command) commandOptions {
	configFile, _ := cmd.Flags().GetString("config")
	prefsFile, _ := cmd.Flags().GetString("prefs")
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	return commandOptions{
		ConfigFile: configFile,
		PrefsFile:  prefsFile,
		Verbose:    verbose,
		JSONOutput: jsonOutput,
	}
}

// setupEnv wires the application for a one-shot command.
func setupEnv(cmd *cobra.Command) (*app.Env, commandOptions, error) {
	opts := getOptions(cmd)
	env, err := app.Setup(app.Options{
		ConfigPath: opts.ConfigFile,
		PrefsPath:  opts.PrefsFile,
		Verbose:    opts.Verbose,
		JSONLogs:   opts.JSONOutput,
		Stderr:     logging.StderrAuto,
	})
	return env, opts, err
}
