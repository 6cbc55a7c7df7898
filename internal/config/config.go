package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"tarediiran-industries.com/tfl-status/internal/display"
	"tarediiran-industries.com/tfl-status/internal/lines"
	"tarediiran-industries.com/tfl-status/internal/tfl"
)

const (
	EnvBaseURL  = "TFL_STATUS_BASE_URL"
	EnvTimeout  = "TFL_STATUS_TIMEOUT"
	EnvLogLevel = "TFL_STATUS_LOG_LEVEL"
)

type LineFile struct {
	Name string `toml:"name"`
	ID   string `toml:"id"`
}

type ConfigFile struct {
	BaseURL   string            `toml:"base_url"`
	Timeout   string            `toml:"timeout"`
	Surface   string            `toml:"surface"`
	LogLevel  string            `toml:"log_level"`
	Telemetry string            `toml:"telemetry"`
	Colors    map[string]string `toml:"colors"`

	// Lines replaces the built-in registry; ExtraLines is appended to it.
	Lines      []LineFile `toml:"lines"`
	ExtraLines []LineFile `toml:"extra_lines"`
}

type Config struct {
	BaseURL   string
	Timeout   time.Duration
	Surface   string
	LogLevel  logrus.Level
	Telemetry string
	Palette   display.Palette
	Lines     []lines.Entry
}

func Default() Config {
	return Config{
		BaseURL:  tfl.DefaultBaseURL,
		Timeout:  tfl.DefaultTimeout,
		Surface:  display.DefaultSurfaceName,
		LogLevel: logrus.WarnLevel,
		Palette:  display.DefaultPalette(),
		Lines:    lines.DefaultEntries(),
	}
}

// DefaultPath is ~/.config/tfl-status/config.toml, or "" if there is no home.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tfl-status", "config.toml")
}

func LoadConfigFromToml(path string) (ConfigFile, error) {
	var cfg ConfigFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return ConfigFile{}, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return ConfigFile{}, fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Load layers defaults, the TOML file at path and the environment. A missing
// file is only an error when required is set.
func Load(path string, required bool) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("godotenv: %w", err)
	}

	cfg := Default()

	if path != "" {
		file, err := LoadConfigFromToml(path)
		switch {
		case err == nil:
			if err := cfg.apply(file); err != nil {
				return Config{}, fmt.Errorf("%s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !required:
		default:
			return Config{}, fmt.Errorf("LoadConfigFromToml: %w", err)
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg *Config) apply(file ConfigFile) error {
	if file.BaseURL != "" {
		cfg.BaseURL = file.BaseURL
	}
	if file.Timeout != "" {
		timeout, err := time.ParseDuration(file.Timeout)
		if err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
		cfg.Timeout = timeout
	}
	if file.Surface != "" {
		cfg.Surface = file.Surface
	}
	if file.LogLevel != "" {
		level, err := logrus.ParseLevel(file.LogLevel)
		if err != nil {
			return fmt.Errorf("log_level: %w", err)
		}
		cfg.LogLevel = level
	}
	if file.Telemetry != "" {
		cfg.Telemetry = file.Telemetry
	}

	palette, err := display.NewPalette(file.Colors)
	if err != nil {
		return fmt.Errorf("colors: %w", err)
	}
	cfg.Palette = palette

	if len(file.Lines) > 0 {
		cfg.Lines = toEntries(file.Lines)
	}
	cfg.Lines = append(cfg.Lines, toEntries(file.ExtraLines)...)

	return nil
}

func (cfg *Config) applyEnv(getenv func(string) string) error {
	if baseURL := getenv(EnvBaseURL); baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if value := getenv(EnvTimeout); value != "" {
		timeout, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		cfg.Timeout = timeout
	}
	if value := getenv(EnvLogLevel); value != "" {
		level, err := logrus.ParseLevel(value)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = level
	}
	return nil
}

func toEntries(files []LineFile) []lines.Entry {
	entries := make([]lines.Entry, len(files))
	for i, line := range files {
		entries[i] = lines.Entry{Name: line.Name, ID: line.ID}
	}
	return entries
}

func (cfg Config) Validate() error {
	if !strings.HasPrefix(cfg.BaseURL, "http://") && !strings.HasPrefix(cfg.BaseURL, "https://") {
		return fmt.Errorf("base_url must be an http(s) URL, got %q", cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}
	if cfg.Surface == "" {
		return fmt.Errorf("surface name must not be empty")
	}
	if len(cfg.Lines) == 0 {
		return fmt.Errorf("no lines configured")
	}
	if _, err := lines.New(cfg.Lines); err != nil {
		return fmt.Errorf("lines: %w", err)
	}
	return nil
}

// Registry builds the line registry. Validate has already checked the entries.
func (cfg Config) Registry() (*lines.Registry, error) {
	return lines.New(cfg.Lines)
}
