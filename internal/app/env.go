package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/five82/meteo/internal/config"
	"github.com/five82/meteo/internal/favorites"
	"github.com/five82/meteo/internal/kv"
	"github.com/five82/meteo/internal/logging"
	"github.com/five82/meteo/internal/openweather"
	"github.com/five82/meteo/internal/search"
	"github.com/five82/meteo/internal/state"
)

// Options configure the meteo application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/meteo/prefs.toml
	Verbose    bool
	JSONLogs   bool
	Stderr     logging.StderrMode
}

// Env holds the wired components shared by the TUI and one-shot commands.
type Env struct {
	Config     config.Config
	Logger     *logrus.Logger
	Storage    kv.Backend
	Favorites  *favorites.Store
	Controller *search.Controller

	logCloser io.Closer
}

// Setup loads configuration and wires storage, favorites and the weather
// client. Callers must Close the returned Env.
func Setup(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, logCloser := logging.New(logging.Options{
		File:    cfg.LogFile,
		Level:   cfg.LogLevel,
		Verbose: opts.Verbose,
		JSON:    opts.JSONLogs,
		Stderr:  opts.Stderr,
	})

	backend, err := kv.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("open storage: %w", err)
	}

	client, err := openweather.NewClient(openweather.Options{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Units:   cfg.Units,
		Lang:    cfg.Lang,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		_ = backend.Close()
		_ = logCloser.Close()
		return nil, fmt.Errorf("init weather client: %w", err)
	}

	favs := favorites.New(backend, logging.Component(logger, "favorites"))
	favs.Load()

	logger.WithFields(logrus.Fields{
		"component": "app",
		"storage":   cfg.Storage.Driver,
		"favorites": favs.Len(),
	}).Debug("environment ready")

	return &Env{
		Config:     cfg,
		Logger:     logger,
		Storage:    backend,
		Favorites:  favs,
		Controller: search.New(client, cfg.APIKey, logging.Component(logger, "search")),
		logCloser:  logCloser,
	}, nil
}

// Lookup runs a complete search for city starting from an empty display.
func (e *Env) Lookup(ctx context.Context, city string) state.Display {
	return e.Controller.Search(ctx, state.Display{}, city)
}

// Close releases storage and the log file.
func (e *Env) Close() error {
	if e == nil {
		return nil
	}
	var errs []error
	if e.Storage != nil {
		if err := e.Storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close storage: %w", err))
		}
	}
	if e.logCloser != nil {
		if err := e.logCloser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close log: %w", err))
		}
	}
	return errors.Join(errs...)
}
