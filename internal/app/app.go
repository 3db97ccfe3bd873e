package app

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/meteo/internal/logging"
	"github.com/five82/meteo/internal/prefs"
	"github.com/five82/meteo/internal/ui"
)

// Run boots the meteo TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	opts.Stderr = logging.StderrNever
	env, err := Setup(opts)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	userPrefs := prefs.Load(opts.PrefsPath)
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	log := logging.Component(env.Logger, "app")
	if !env.Config.HasAPIKey() {
		log.Warn("no API key configured, searches will fail")
	}

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	changes := StartFavoritesWatcher(watchCtx, env.Storage, log)

	uiOpts := ui.Options{
		Context:          ctx,
		Controller:       env.Controller,
		Favorites:        env.Favorites,
		Log:              logging.Component(env.Logger, "ui"),
		Units:            env.Config.Units,
		ThemeName:        userPrefs.Theme,
		PrefsPath:        prefsPath,
		LastCity:         userPrefs.LastCity,
		RefreshEvery:     env.Config.RefreshEvery,
		FavoritesChanged: changes,
	}
	err = ui.Run(uiOpts)
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
