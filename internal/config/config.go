// Package config resolves tada settings from defaults, a TOML file,
// TADA_* environment variables and command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Makepad-fr/tada/internal/storage"
)

// Storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Defaults.
const (
	DefaultBackend          = BackendJSON
	DefaultKey              = "items"
	DefaultAutosaveInterval = 20 * time.Second
	DefaultTheme            = "classic"
	DefaultLogLevel         = "info"

	appDirName     = "tada"
	configFileName = "config.toml"
)

var (
	backends = []string{BackendJSON, BackendSQLite, BackendMemory}
	themes   = []string{"classic", "neon", "mono"}
	levels   = []string{"debug", "info", "warn", "error"}
)

type Config struct {
	Backend          string        `toml:"backend" env:"TADA_BACKEND"`
	Path             string        `toml:"path" env:"TADA_PATH"`
	Key              string        `toml:"key" env:"TADA_KEY"`
	AutosaveInterval time.Duration `toml:"autosave_interval" env:"TADA_AUTOSAVE_INTERVAL"`
	SaveOnExit       bool          `toml:"save_on_exit" env:"TADA_SAVE_ON_EXIT"`
	Theme            string        `toml:"theme" env:"TADA_THEME"`
	LogLevel         string        `toml:"log_level" env:"TADA_LOG_LEVEL"`
	LogFile          string        `toml:"log_file" env:"TADA_LOG_FILE"`
}

// Default returns the built-in settings. Path is left empty and resolved
// per backend by Finalize.
func Default() *Config {
	return &Config{
		Backend:          DefaultBackend,
		Key:              DefaultKey,
		AutosaveInterval: DefaultAutosaveInterval,
		Theme:            DefaultTheme,
		LogLevel:         DefaultLogLevel,
	}
}

// DefaultFile returns <user config dir>/tada/config.toml.
func DefaultFile() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, appDirName, configFileName), nil
}

// Load applies the config file and environment on top of Default. An
// explicit file must exist; the default file is optional.
func Load(file string) (*Config, error) {
	cfg := Default()

	explicit := file != ""
	if !explicit {
		if p, err := DefaultFile(); err == nil {
			file = p
		}
	}
	if file != "" {
		if err := loadFile(cfg, file); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("loading config file %s: %w", file, err)
			}
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// Finalize normalizes values, fills in the backend-specific default path
// and validates the result.
func (c *Config) Finalize() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))

	if err := c.Validate(); err != nil {
		return err
	}
	if c.Path == "" && c.Backend != BackendMemory {
		dir, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("user config dir: %w", err)
		}
		c.Path = DefaultPath(filepath.Join(dir, appDirName), c.Backend)
	}
	return nil
}

// DefaultPath is where a backend keeps its data under base.
func DefaultPath(base, backend string) string {
	switch backend {
	case BackendSQLite:
		return filepath.Join(base, "tada.db")
	case BackendJSON:
		return filepath.Join(base, "data")
	}
	return ""
}

func (c *Config) Validate() error {
	if !oneOf(c.Backend, backends) {
		return fmt.Errorf("invalid backend %q: must be one of %v", c.Backend, backends)
	}
	if err := storage.ValidKey(c.Key); err != nil {
		return err
	}
	if c.AutosaveInterval < 0 {
		return fmt.Errorf("invalid autosave_interval %s: must not be negative", c.AutosaveInterval)
	}
	if !oneOf(c.Theme, themes) {
		return fmt.Errorf("invalid theme %q: must be one of %v", c.Theme, themes)
	}
	if !oneOf(c.LogLevel, levels) {
		return fmt.Errorf("invalid log_level %q: must be one of %v", c.LogLevel, levels)
	}
	return nil
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
