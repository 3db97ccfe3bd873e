package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newFavoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "List and edit favorite cities",
		Args:    cobra.NoArgs,
		RunE:    runFavoritesList,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List favorite cities in order",
			Args:  cobra.NoArgs,
			RunE:  runFavoritesList,
		},
		newFavoritesEditCmd("add", "Add a city to favorites", func(favs favoritesEditor, city string) string {
			if favs.Add(city) {
				return fmt.Sprintf("added %s", city)
			}
			return fmt.Sprintf("%s is already a favorite", city)
		}),
		newFavoritesEditCmd("remove", "Remove a city from favorites", func(favs favoritesEditor, city string) string {
			if !favs.Contains(city) {
				return fmt.Sprintf("%s is not a favorite", city)
			}
			favs.Remove(city)
			return fmt.Sprintf("removed %s", city)
		}),
		newFavoritesEditCmd("toggle", "Add a city if missing, remove it otherwise", func(favs favoritesEditor, city string) string {
			if favs.Toggle(city) {
				return fmt.Sprintf("added %s", city)
			}
			return fmt.Sprintf("removed %s", city)
		}),
	)
	return cmd
}

// favoritesEditor is the subset of favorites.Store the edit commands use.
type favoritesEditor interface {
	Add(city string) bool
	Remove(city string)
	Toggle(city string) bool
	Contains(city string) bool
}

func newFavoritesEditCmd(use, short string, edit func(favoritesEditor, string) string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " CITY",
		Short: short,
		Long: short + `.

City names are matched exactly after trimming surrounding whitespace, so
"Rome" and "rome" are different entries.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			city := strings.TrimSpace(args[0])
			if city == "" {
				return fmt.Errorf("city name is empty")
			}

			env, opts, err := setupEnv(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			message := edit(env.Favorites, city)
			if opts.JSONOutput {
				return writeJSON(cmd.OutOrStdout(), env.Favorites.List())
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), message)
			return nil
		},
	}
}

func runFavoritesList(cmd *cobra.Command, args []string) error {
	env, opts, err := setupEnv(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	list := env.Favorites.List()
	w := cmd.OutOrStdout()
	if opts.JSONOutput {
		return writeJSON(w, list)
	}
	if len(list) == 0 {
		_, _ = fmt.Fprintln(w, "no favorites yet")
		return nil
	}
	for _, city := range list {
		_, _ = fmt.Fprintln(w, city)
	}
	return nil
}
