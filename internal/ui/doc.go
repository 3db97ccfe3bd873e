// Package ui provides the terminal interface for meteo.
//
// The interface is a Bubble Tea program with two panes: the weather pane,
// holding the city input and the result of the latest lookup, and the
// favorites pane listing saved cities.
//
// # Package Structure
//
//   - app.go: Model, Update loop, commands and the Run entry point
//   - handlers.go: key handling for each pane
//   - view.go: header, panes and footer rendering
//   - help.go: keyboard shortcut overlay
//   - keys.go: key bindings
//   - theme.go: color themes (Nightfox, Kanagawa, Slate)
//   - style_helpers.go: background-safe rendering helpers
//
// # Lookups
//
// Pressing enter hands the input to search.Controller.Begin, which settles
// empty input and a missing API key synchronously. Otherwise a command runs
// the request and delivers a lookupResultMsg. Results are applied in arrival
// order; there is no cancellation, so the last response to complete is what
// the user sees.
//
// # Favorites
//
// ctrl+f toggles the displayed city. The favorite marker is derived from the
// store on every render rather than cached, so it cannot drift from the list.
// When the store is file backed, changes written by another meteo process
// arrive as favoritesChangedMsg and trigger a reload.
package ui
