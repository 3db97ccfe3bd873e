package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/five82/meteo/internal/favorites"
	"github.com/five82/meteo/internal/state"
)

// lookupOutput is the JSON shape of one lookup.
type lookupOutput struct {
	Query       string   `json:"query"`
	City        string   `json:"city,omitempty"`
	Country     string   `json:"country,omitempty"`
	Temperature *int     `json:"temperature,omitempty"`
	Condition   string   `json:"condition,omitempty"`
	IconURL     string   `json:"icon_url,omitempty"`
	Humidity    *int     `json:"humidity,omitempty"`
	Pressure    *int     `json:"pressure,omitempty"`
	WindSpeed   *float64 `json:"wind_speed,omitempty"`
	Favorite    bool     `json:"favorite"`
	Error       string   `json:"error,omitempty"`
}

func newLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup CITY...",
		Short: "Print current conditions for one or more cities",
		Long: `Print current conditions for one or more cities.

Quote city names that contain spaces. Each argument is looked up in order and
the command fails if any lookup does.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, opts, err := setupEnv(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			outputs := make([]lookupOutput, 0, len(args))
			failed := 0
			for _, city := range args {
				d := env.Lookup(cmd.Context(), city)
				if d.Err != "" {
					failed++
				}
				outputs = append(outputs, toLookupOutput(city, d, env.Favorites))
			}

			w := cmd.OutOrStdout()
			if opts.JSONOutput {
				if err := writeJSON(w, outputs); err != nil {
					return err
				}
			} else {
				units := env.Config.Units
				for i, out := range outputs {
					if i > 0 {
						_, _ = fmt.Fprintln(w)
					}
					printLookup(w, out, units)
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d lookups failed", failed, len(args))
			}
			return nil
		},
	}
}

func toLookupOutput(query string, d state.Display, favs *favorites.Store) lookupOutput {
	return lookupOutput{
		Query:       strings.TrimSpace(query),
		City:        d.City,
		Country:     d.Country,
		Temperature: d.Temperature,
		Condition:   d.Condition,
		IconURL:     d.IconURL,
		Humidity:    d.Humidity,
		Pressure:    d.Pressure,
		WindSpeed:   d.WindSpeed,
		Favorite:    d.IsFavorite(favs),
		Error:       d.Err,
	}
}

func printLookup(w io.Writer, out lookupOutput, units string) {
	if out.Error != "" {
		_, _ = fmt.Fprintf(w, "%s: %s\n", out.Query, out.Error)
		return
	}

	title := out.City
	if out.Country != "" {
		title += ", " + out.Country
	}
	if out.Favorite {
		title += " ★"
	}
	_, _ = fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(title))

	if out.Temperature != nil {
		_, _ = fmt.Fprintf(w, "  %d%s  %s\n", *out.Temperature, temperatureUnit(units), out.Condition)
	}
	var details []string
	if out.Humidity != nil {
		details = append(details, fmt.Sprintf("humidity %d%%", *out.Humidity))
	}
	if out.Pressure != nil {
		details = append(details, fmt.Sprintf("pressure %d hPa", *out.Pressure))
	}
	if out.WindSpeed != nil {
		details = append(details, fmt.Sprintf("wind %.1f", *out.WindSpeed))
	}
	if len(details) > 0 {
		_, _ = fmt.Fprintf(w, "  %s\n", strings.Join(details, ", "))
	}
	if out.IconURL != "" {
		_, _ = fmt.Fprintf(w, "  %s\n", out.IconURL)
	}
}

func temperatureUnit(units string) string {
	switch strings.ToLower(strings.TrimSpace(units)) {
	case "imperial":
		return "°F"
	case "standard":
		return "K"
	default:
		return "°C"
	}
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output to JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
