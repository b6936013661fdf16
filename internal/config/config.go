// Package config loads moodscope settings.
//
// Sources, lowest precedence first:
//   - built-in defaults
//   - the TOML file passed to Load (missing file is not an error)
//   - MOODSCOPE_* environment variables, after any .env file is applied
//
// Command line flags are applied by the caller on top of the result.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/subosito/gotenv"

	"github.com/csheth/moodscope/internal/samples"
)

const (
	DefaultEndpoint = "http://localhost:5000"
	DefaultTimeout  = 30 * time.Second

	envEndpoint = "MOODSCOPE_ENDPOINT"
	envTimeout  = "MOODSCOPE_TIMEOUT"
	envLog      = "MOODSCOPE_LOG"
	envLogLevel = "MOODSCOPE_LOG_LEVEL"
)

// Config is the resolved runtime configuration.
type Config struct {
	Endpoint  string           `toml:"endpoint"`
	Timeout   Duration         `toml:"timeout"`
	LogFile   string           `toml:"log_file"`
	LogLevel  string           `toml:"log_level"`
	AltScreen bool             `toml:"alt_screen"`
	Samples   []samples.Sample `toml:"samples"`
}

// Duration decodes Go duration strings such as "15s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Endpoint:  DefaultEndpoint,
		Timeout:   Duration{DefaultTimeout},
		LogLevel:  "info",
		AltScreen: true,
	}
}

// LoadEnv applies .env style files to the process environment. Missing files
// are skipped.
func LoadEnv(files ...string) {
	for _, file := range files {
		if err := gotenv.Load(file); err != nil {
			slog.Debug("[config] env file not loaded", slog.String("file", file), slog.String("error", err.Error()))
		}
	}
}

// Load reads path (if present) over the defaults and applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return cfg, fmt.Errorf("failed to decode config %s: %w", path, err)
			}
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(envEndpoint)); v != "" {
		cfg.Endpoint = v
	}
	if v := strings.TrimSpace(os.Getenv(envTimeout)); v != "" {
		if err := cfg.Timeout.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%s: %w", envTimeout, err)
		}
	}
	if v := strings.TrimSpace(os.Getenv(envLog)); v != "" {
		cfg.LogFile = v
	}
	if v := strings.TrimSpace(os.Getenv(envLogLevel)); v != "" {
		cfg.LogLevel = v
	}
	return nil
}

// Validate checks the values the client depends on.
func (c Config) Validate() error {
	endpoint := strings.TrimSpace(c.Endpoint)
	if endpoint == "" {
		return errors.New("endpoint must not be empty")
	}
	parsed, err := url.Parse(endpoint)
	if err != nil || parsed.Host == "" {
		return fmt.Errorf("endpoint %q is not an absolute URL", endpoint)
	}
	if c.Timeout.Duration <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout.Duration)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a level name onto slog levels. Empty means info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}
