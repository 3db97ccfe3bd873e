package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/meteo/internal/kv"
	"github.com/five82/meteo/internal/openweather"
	"github.com/five82/meteo/internal/pathutil"
)

// Config captures everything meteo reads from its config file and environment.
type Config struct {
	APIKey       string
	BaseURL      string
	Units        string
	Lang         string
	Timeout      time.Duration
	RefreshEvery time.Duration
	LogFile      string
	LogLevel     string
	Storage      Storage
}

// Storage selects the key-value backend for persisted data.
type Storage struct {
	Driver string
	Path   string
}

const (
	defaultConfigPath  = "~/.config/meteo/config.toml"
	defaultLogFile     = "~/.local/state/meteo/meteo.log"
	defaultLogLevel    = "info"
	defaultStoragePath = "~/.local/share/meteo"
	defaultTimeout     = 5 * time.Second
)

// Environment variables that override the file. The first non-empty API key wins.
var (
	apiKeyEnv   = []string{"METEO_API_KEY", "OPENWEATHER_API_KEY"}
	logLevelEnv = "METEO_LOG_LEVEL"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		BaseURL:  openweather.DefaultBaseURL,
		Units:    openweather.DefaultUnits,
		Lang:     openweather.DefaultLang,
		Timeout:  defaultTimeout,
		LogFile:  pathutil.MustExpand(defaultLogFile),
		LogLevel: defaultLogLevel,
		Storage: Storage{
			Driver: kv.DriverFile,
			Path:   pathutil.MustExpand(defaultStoragePath),
		},
	}
}

type rawConfig struct {
	APIKey       string `toml:"api_key"`
	BaseURL      string `toml:"base_url"`
	Units        string `toml:"units"`
	Lang         string `toml:"lang"`
	Timeout      string `toml:"timeout"`
	RefreshEvery string `toml:"refresh_every"`
	LogFile      string `toml:"log_file"`
	LogLevel     string `toml:"log_level"`
	Storage      struct {
		Driver string `toml:"driver"`
		Path   string `toml:"path"`
	} `toml:"storage"`
}

// Load locates and parses the config, falling back to defaults when missing.
// Environment overrides are applied last.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIKey = strings.TrimSpace(raw.APIKey)
	setIfPresent(&cfg.BaseURL, raw.BaseURL)
	setIfPresent(&cfg.Units, raw.Units)
	setIfPresent(&cfg.Lang, raw.Lang)
	setIfPresent(&cfg.LogLevel, raw.LogLevel)
	setIfPresent(&cfg.Storage.Driver, strings.ToLower(raw.Storage.Driver))

	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = pathutil.MustExpand(v)
	}
	if v := strings.TrimSpace(raw.Storage.Path); v != "" {
		cfg.Storage.Path = pathutil.MustExpand(v)
	}

	if cfg.Timeout, err = parseDuration("timeout", raw.Timeout, defaultTimeout); err != nil {
		return Config{}, err
	}
	if cfg.RefreshEvery, err = parseDuration("refresh_every", raw.RefreshEvery, 0); err != nil {
		return Config{}, err
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	applyEnv(&cfg)
	return cfg, nil
}

// HasAPIKey reports whether a credential is configured.
func (c Config) HasAPIKey() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

func applyEnv(cfg *Config) {
	for _, name := range apiKeyEnv {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			cfg.APIKey = v
			break
		}
	}
	if v := strings.TrimSpace(os.Getenv(logLevelEnv)); v != "" {
		cfg.LogLevel = v
	}
}

func setIfPresent(dst *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*dst = v
	}
}

func parseDuration(field, value string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse config: %s: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("parse config: %s must not be negative", field)
	}
	return d, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return pathutil.Expand(defaultConfigPath)
	}
	return pathutil.Expand(path)
}
