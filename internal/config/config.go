// Package config holds the deckgen settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/VantageDataChat/GoDeck/internal/deckspec"
	"github.com/VantageDataChat/GoDeck/internal/palette"
)

// Config holds all deckgen configuration.
type Config struct {
	// Output locations used when a spec names none.
	OutputDir string `yaml:"output_dir"`
	ChartDir  string `yaml:"chart_dir"`

	DefaultPalette string `yaml:"default_palette"`

	// Workers bounds concurrent chart renders; 0 means one per CPU.
	Workers int `yaml:"workers"`

	Preview PreviewConfig `yaml:"preview"`
	Fonts   FontsConfig   `yaml:"fonts"`
	Logging LoggingConfig `yaml:"logging"`
}

// PreviewConfig configures slide preview images.
type PreviewConfig struct {
	Enabled bool `yaml:"enabled"`
	Width   int  `yaml:"width"` // pixels
}

// FontsConfig lists extra font directories for previews.
type FontsConfig struct {
	Dirs []string `yaml:"dirs"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		OutputDir:      filepath.Dir(deckspec.DefaultOutputPath),
		ChartDir:       deckspec.DefaultChartDir,
		DefaultPalette: palette.DefaultName,
		Workers:        0,
		Preview: PreviewConfig{
			Enabled: false,
			Width:   1280,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if name := os.Getenv("GODECK_PALETTE"); name != "" {
		c.DefaultPalette = name
	}
	if dir := os.Getenv("GODECK_CHART_DIR"); dir != "" {
		c.ChartDir = dir
	}
	if v := os.Getenv("GODECK_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid GODECK_WORKERS %q: %w", v, err)
		}
		c.Workers = n
	}
	if level := os.Getenv("GODECK_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative: %d", c.Workers)
	}
	if !palette.Exists(c.DefaultPalette) {
		return fmt.Errorf("unknown palette: %s (valid: %v)", c.DefaultPalette, palette.Names())
	}
	if c.Preview.Enabled && c.Preview.Width <= 0 {
		return fmt.Errorf("preview width must be positive: %d", c.Preview.Width)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return nil
}

// Logger builds a logger writing to stderr. verbose forces debug level.
func (l LoggingConfig) Logger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if l.Development {
		cfg = zap.NewDevelopmentConfig()
	}
	level := zapcore.InfoLevel
	if l.Level != "" {
		parsed, err := zapcore.ParseLevel(l.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
		level = parsed
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}
