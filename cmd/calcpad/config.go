package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the contents of the calcpad configuration file.
type Config struct {
	// LogLevel is one of debug, info, warn, or error.
	LogLevel string `yaml:"log_level"`
	// Chain lets an operator typed after a result continue from it.
	Chain bool `yaml:"chain"`
	// Color enables coloured output. Defaults to true.
	Color *bool `yaml:"color"`
	// Format is a fmt verb for results, e.g. "%.4f". Empty means the
	// shortest exact decimal.
	Format string `yaml:"format"`
	// Keypad is the keypad layout for the interactive mode, row by row.
	Keypad [][]string `yaml:"keypad"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{LogLevel: "warn"}
}

// defaultConfigPath returns the path of the configuration file used when none
// is given, or the empty string if there is no user configuration directory.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "calcpad", "config.yaml")
}

// LoadConfig reads a configuration file. Fields missing from the file keep
// their default values. If optional is true, a missing file is not an error.
func LoadConfig(path string, optional bool) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values that cannot be used.
func (c Config) Validate() error {
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	for i, row := range c.Keypad {
		if len(row) == 0 {
			return fmt.Errorf("keypad row %d is empty", i+1)
		}
		for _, k := range row {
			if strings.TrimSpace(k) == "" {
				return fmt.Errorf("keypad row %d has a blank key", i+1)
			}
		}
	}
	return nil
}

// UseColor reports whether output should be coloured.
func (c Config) UseColor() bool {
	return c.Color == nil || *c.Color
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
