// Package config loads application configuration from defaults, an optional
// YAML file, and environment overrides, in that order.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Satria0ibnu/deftection-sub000/internal/defect"
)

// EngineConfig holds the selection-engine thresholds.
type EngineConfig struct {
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
	MinDefectPixels     int     `yaml:"min_defect_pixels"`
	MinDefectPercentage float64 `yaml:"min_defect_percentage"`
	MinBBoxArea         int     `yaml:"min_bbox_area"`
}

// StoreConfig holds persistence settings.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config is the full application configuration.
type Config struct {
	Engine EngineConfig `yaml:"engine"`
	Store  StoreConfig  `yaml:"store"`
	Log    LogConfig    `yaml:"log"`
}

// Default returns the built-in configuration.
func Default() *Config {
	ec := defect.DefaultConfig()
	return &Config{
		Engine: EngineConfig{
			ConfidenceThreshold: ec.ConfidenceThreshold,
			MinDefectPixels:     ec.MinDefectPixels,
			MinDefectPercentage: ec.MinDefectPercentage,
			MinBBoxArea:         ec.MinBBoxArea,
		},
		Store: StoreConfig{Path: ".deftect/scans.db"},
		Log:   LogConfig{Level: "info", Format: "text"},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// non-empty), then environment variables. A .env file is honored if present.
func Load(path string) (*Config, error) {
	// Missing .env is fine.
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides fields from DEFTECT_* environment variables.
func (c *Config) applyEnv() error {
	if v := os.Getenv("DEFTECT_CONFIDENCE_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("DEFTECT_CONFIDENCE_THRESHOLD: %w", err)
		}
		c.Engine.ConfidenceThreshold = f
	}
	if v := os.Getenv("DEFTECT_MIN_DEFECT_PIXELS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DEFTECT_MIN_DEFECT_PIXELS: %w", err)
		}
		c.Engine.MinDefectPixels = n
	}
	if v := os.Getenv("DEFTECT_MIN_BBOX_AREA"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DEFTECT_MIN_BBOX_AREA: %w", err)
		}
		c.Engine.MinBBoxArea = n
	}
	if v := os.Getenv("DEFTECT_DB_PATH"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("DEFTECT_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("DEFTECT_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	return nil
}

// EngineSettings converts to the engine's immutable threshold struct.
func (c *Config) EngineSettings() defect.Config {
	return defect.Config{
		ConfidenceThreshold: c.Engine.ConfidenceThreshold,
		MinDefectPixels:     c.Engine.MinDefectPixels,
		MinDefectPercentage: c.Engine.MinDefectPercentage,
		MinBBoxArea:         c.Engine.MinBBoxArea,
	}
}
