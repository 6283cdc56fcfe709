package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
	_ "time/tzdata"

	xutil "SignalLog/pkg/util"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development" validate:"required"`
	Server      struct {
		Enabled         bool          `yaml:"enabled" default:"true"`
		Host            string        `yaml:"host" default:"0.0.0.0"`
		Port            int           `yaml:"port" default:"8080" validate:"gte=1,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		RateLimit       struct {
			Enabled   bool    `yaml:"enabled"`
			Burst     float64 `yaml:"burst" default:"20" validate:"gte=1"`
			PerSecond float64 `yaml:"per_second" default:"10" validate:"gt=0"`
		} `yaml:"rate_limit"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Logger struct {
		Level      string `yaml:"level" default:"info" validate:"oneof=debug info warn error fatal panic"`
		Format     string `yaml:"format" default:"text" validate:"oneof=text console json"`
		Output     string `yaml:"output" default:"stderr" validate:"required"`
		MaxSizeMB  int    `yaml:"max_size_mb" default:"100" validate:"gte=0"`
		MaxBackups int    `yaml:"max_backups" default:"5" validate:"gte=0"`
		MaxAgeDays int    `yaml:"max_age_days" validate:"gte=0"`
		Compress   bool   `yaml:"compress"`
	} `yaml:"logger"`
	SignalLog struct {
		Path             string `yaml:"log_path" default:"lae_signal_log.json" validate:"required"`
		MaxLogSize       int    `yaml:"max_log_size" default:"1000" validate:"gte=1"`
		BackupCount      int    `yaml:"backup_count" default:"3" validate:"gte=0"`
		Timezone         string `yaml:"timezone" default:"Asia/Kolkata" validate:"required,timezone"`
		StrictConfidence bool   `yaml:"strict_confidence"`
	} `yaml:"signal_log"`
}

var validate = validator.New()

// Default returns a Config populated from struct defaults only.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}
	return &c, nil
}

// Load reads and parses a YAML configuration file. Defaults are applied first
// so keys set explicitly to zero in the file keep their value.
func Load(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
// A missing file at path falls back to defaults.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		c, err = Default()
	}
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("SIGNAL_LOG_PATH"); v != "" {
		c.SignalLog.Path = v
	}
	c.SignalLog.MaxLogSize = xutil.ParseIntDefault(os.Getenv("SIGNAL_LOG_MAX_SIZE"), c.SignalLog.MaxLogSize)
	c.SignalLog.BackupCount = xutil.ParseIntDefault(os.Getenv("SIGNAL_LOG_BACKUP_COUNT"), c.SignalLog.BackupCount)
	if v := os.Getenv("SIGNAL_LOG_TIMEZONE"); v != "" {
		c.SignalLog.Timezone = v
	}
	c.SignalLog.StrictConfidence = xutil.ParseBoolDefault(os.Getenv("SIGNAL_LOG_STRICT_CONFIDENCE"), c.SignalLog.StrictConfidence)
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logger.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Logger.Format = v
	}
	c.Server.Port = xutil.ParseIntDefault(os.Getenv("SERVER_PORT"), c.Server.Port)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	return validate.Struct(c)
}
