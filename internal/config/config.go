// Package config resolves jobhealth settings from defaults, a YAML file,
// .env and JOBHEALTH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/psantana5/jobhealth/internal/report"
)

// EnvPrefix namespaces environment overrides, e.g. JOBHEALTH_THRESHOLDS_WARNING=3m
const EnvPrefix = "JOBHEALTH"

// Config is the complete jobhealth configuration
type Config struct {
	Thresholds ThresholdConfig `mapstructure:"thresholds" yaml:"thresholds"`
	Log        LogConfig       `mapstructure:"log" yaml:"log"`
	Metrics    MetricsConfig   `mapstructure:"metrics" yaml:"metrics"`
}

// ThresholdConfig bounds the WARNING and ERROR severities
type ThresholdConfig struct {
	Warning time.Duration `mapstructure:"warning" yaml:"warning"`
	Error   time.Duration `mapstructure:"error" yaml:"error"`
}

// LogConfig controls the diagnostic logger (never the report itself)
type LogConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`   // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format"` // text, json
	File       string `mapstructure:"file" yaml:"file"`     // empty = stderr only
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
}

// MetricsConfig controls the Prometheus textfile output
type MetricsConfig struct {
	File string `mapstructure:"file" yaml:"file"` // empty = disabled
}

// Default returns the built-in configuration
func Default() Config {
	th := report.DefaultThresholds()
	return Config{
		Thresholds: ThresholdConfig{Warning: th.Warning, Error: th.Error},
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// New prepares a viper instance with defaults, file lookup and env binding.
// An empty path searches ./jobhealth.yaml and $HOME/.jobhealth/jobhealth.yaml.
func New(path string) *viper.Viper {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("jobhealth")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".jobhealth"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("thresholds.warning", d.Thresholds.Warning)
	v.SetDefault("thresholds.error", d.Thresholds.Error)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("metrics.file", d.Metrics.File)

	return v
}

// Load reads the config file (if any), applies overrides and validates.
// A missing file is only an error when it was named explicitly.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for impossible values
func (c *Config) Validate() error {
	if c.Thresholds.Warning <= 0 {
		return fmt.Errorf("thresholds.warning must be positive, got %s", c.Thresholds.Warning)
	}
	if c.Thresholds.Error <= 0 {
		return fmt.Errorf("thresholds.error must be positive, got %s", c.Thresholds.Error)
	}
	if c.Thresholds.Warning > c.Thresholds.Error {
		return fmt.Errorf("thresholds.warning (%s) must not exceed thresholds.error (%s)",
			c.Thresholds.Warning, c.Thresholds.Error)
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 {
		return fmt.Errorf("log rotation limits must not be negative")
	}
	return nil
}

// ReportThresholds converts the configured limits for the classifier
func (c *Config) ReportThresholds() report.Thresholds {
	return report.Thresholds{
		Warning: c.Thresholds.Warning,
		Error:   c.Thresholds.Error,
	}
}

// MarshalYAML prints durations in their human form ("5m0s")
func (t ThresholdConfig) MarshalYAML() (interface{}, error) {
	return struct {
		Warning string `yaml:"warning"`
		Error   string `yaml:"error"`
	}{
		Warning: t.Warning.String(),
		Error:   t.Error.String(),
	}, nil
}
