// Package config handles the XDG configuration directory and the optional
// config.toml file inside it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application directory name.
	AppName = "doit"

	// ConfigFile is the optional settings filename inside the config directory.
	ConfigFile = "config.toml"

	// DatabaseFile is the default SQLite database filename.
	DatabaseFile = "doit.db"

	// LogFile receives log output while the interactive screen owns the terminal.
	LogFile = "doit.log"
)

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// NoColor disables colored output regardless of UI.Color.
	NoColor bool

	Storage Storage
	Logging Logging
	UI      UI
}

// Storage selects the key-value backend.
type Storage struct {
	Driver string `toml:"driver"`
	Path   string `toml:"path"`
}

// Logging holds logging configuration.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// UI holds presentation settings.
type UI struct {
	Color bool `toml:"color"`
}

type fileConfig struct {
	Storage Storage `toml:"storage"`
	Logging Logging `toml:"logging"`
	UI      UI      `toml:"ui"`
}

// New creates a Config for the default or specified config directory and
// applies config.toml from that directory when it exists.
// If configDir is empty, uses XDG_CONFIG_HOME/doit or $HOME/.config/doit.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := Default(dir)
	if err := cfg.loadFile(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a Config rooted at dir with built-in defaults and no file applied.
func Default(dir string) *Config {
	return &Config{
		Dir:     dir,
		Storage: Storage{Driver: DriverSQLite},
		Logging: Logging{Level: "warn", Format: "text"},
		UI:      UI{Color: true},
	}
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// FilePath returns the path to config.toml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// LogPath returns the path of LogFile in the config directory.
func (c *Config) LogPath() string {
	return filepath.Join(c.Dir, LogFile)
}

// DatabasePath returns the SQLite database path. A relative storage.path is
// resolved against the config directory.
func (c *Config) DatabasePath() string {
	p := c.Storage.Path
	if p == "" {
		return filepath.Join(c.Dir, DatabaseFile)
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// LogLevel returns the effective log level; --debug wins over the file.
func (c *Config) LogLevel() string {
	if c.Debug {
		return "debug"
	}
	return c.Logging.Level
}

// ColorEnabled reports whether output should be colorized.
func (c *Config) ColorEnabled() bool {
	return c.UI.Color && !c.NoColor
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// Validate checks that the settings hold known values.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("storage.driver must be %q or %q, got %q", DriverSQLite, DriverMemory, c.Storage.Driver)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) loadFile() error {
	data, err := os.ReadFile(c.FilePath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	fc := fileConfig{Storage: c.Storage, Logging: c.Logging, UI: c.UI}
	if _, err := toml.Decode(expandEnvVars(string(data)), &fc); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	c.Storage = fc.Storage
	c.Logging = fc.Logging
	c.UI = fc.UI

	if err := c.Validate(); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}
	return nil
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} with environment variable values.
// Unset variables expand to the empty string.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(envVarPattern.FindStringSubmatch(match)[1])
	})
}
