// Package app provides the orchestration layer for the meteo application.
//
// # Overview
//
// This package wires together configuration, logging, storage, the
// favorites store, the OpenWeatherMap client and the UI. It serves as the
// composition root for both the TUI and the one-shot CLI commands.
//
// # Architecture
//
//  1. Load config from ~/.config/meteo/config.toml plus environment overrides
//  2. Build the logrus logger (file sink, optional stderr mirror)
//  3. Open the key-value backend selected by [storage] driver
//  4. Load favorites from the backend
//  5. Create the weather client and the search controller
//  6. For the TUI: start the favorites watcher and run the Bubble Tea program
//
// # Components
//
//   - env.go: Setup, Env and Lookup shared by every entry point
//   - app.go: Run, which boots the TUI
//   - watcher.go: background notification of favorites written by other processes
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> Setup()                 config, logger, storage, favorites, client
//	       ├─────> prefs.Load()            theme and last city
//	       ├─────> StartFavoritesWatcher() fsnotify on the file backend
//	       └─────> ui.Run()                TUI (blocks)
//
// # Error Handling
//
// Fatal errors (returned from Setup or Run):
//   - Invalid config file or durations
//   - Unknown storage driver or unopenable database
//   - Invalid base URL
//
// Recoverable conditions (logged, the app keeps going):
//   - Missing API key: every search reports it to the user
//   - Unreadable or corrupt favorites: treated as an empty list
//   - Failed favorites or prefs writes: the in-memory state is kept
//   - Log file unavailable: logging falls back to the remaining sinks
package app
