// Package config loads meteo's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/meteo/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. Apply environment overrides
//
// # Default Values
//
//   - Config file: ~/.config/meteo/config.toml
//   - API endpoint: https://api.openweathermap.org/data/2.5/weather
//   - Units / language: metric / it
//   - Request timeout: 5s
//   - Auto refresh: disabled
//   - Log file: ~/.local/state/meteo/meteo.log
//   - Storage: file driver under ~/.local/share/meteo
//
// # TOML Format
//
//	api_key       = "..."
//	base_url      = "https://api.openweathermap.org/data/2.5/weather"
//	units         = "metric"
//	lang          = "it"
//	timeout       = "5s"
//	refresh_every = "10m"
//	log_file      = "~/.local/state/meteo/meteo.log"
//	log_level     = "info"
//
//	[storage]
//	driver = "sqlite"   # file | sqlite | memory
//	path   = "~/.local/share/meteo"
//
// Every field is optional. Paths get tilde and environment expansion.
//
// # Environment
//
//   - METEO_API_KEY, then OPENWEATHER_API_KEY: credential
//   - METEO_LOG_LEVEL: log level
//
// # Error Handling
//
// Load returns errors for path expansion failures, unreadable files, invalid
// TOML and invalid or negative durations. A missing file is not an error. A
// missing API key is not an error either: the search controller reports it
// to the user instead.
package config
