// Package config loads the settings of the pagerank command.
package config

import (
	"time"

	"github.com/MrDiipo/pagerank/graphprocessing/pagerank"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"
)

// EnvPrefix is the prefix of the environment variables that override
// configuration values, e.g. PAGERANK_DAMPING.
const EnvPrefix = "PAGERANK"

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds the runtime configuration of the pagerank command. Values are
// populated from .pagerank.yaml, PAGERANK_* env vars and CLI flags.
type Config struct {
	Dir            string        `mapstructure:"dir"`
	Damping        float64       `mapstructure:"damping"`
	Samples        int           `mapstructure:"samples"`
	Seed           int64         `mapstructure:"seed"`
	Threshold      float64       `mapstructure:"threshold"`
	MaxPasses      int           `mapstructure:"max_passes"`
	Workers        int           `mapstructure:"workers"`
	Format         string        `mapstructure:"format"`
	ListenAddr     string        `mapstructure:"listen_addr"`
	UpdateInterval time.Duration `mapstructure:"update_interval"`
	LogLevel       string        `mapstructure:"log_level"`
}

// SetDefaults registers the built-in defaults with v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("damping", 0.85)
	v.SetDefault("samples", 10000)
	v.SetDefault("seed", 0)
	v.SetDefault("threshold", 0.001)
	v.SetDefault("max_passes", 0)
	v.SetDefault("workers", 4)
	v.SetDefault("format", FormatText)
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("update_interval", time.Duration(0))
	v.SetDefault("log_level", "info")
}

// Load reads the configuration from v, applying built-in defaults for any
// values not set by config file, environment or flags, and validates it.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, xerrors.Errorf("config: unable to decode settings: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, xerrors.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks whether all settings are within their allowed ranges.
func (cfg Config) Validate() error {
	var err error
	if cfg.Damping <= 0 || cfg.Damping >= 1 {
		err = multierror.Append(err, xerrors.Errorf("damping must be in the range (0, 1)"))
	}
	if cfg.Samples < 1 {
		err = multierror.Append(err, xerrors.Errorf("samples must be at least 1"))
	}
	if cfg.Threshold <= 0 || cfg.Threshold >= 1 {
		err = multierror.Append(err, xerrors.Errorf("threshold must be in the range (0, 1)"))
	}
	if cfg.MaxPasses < 0 {
		err = multierror.Append(err, xerrors.Errorf("max_passes cannot be negative"))
	}
	if cfg.Workers < 1 {
		err = multierror.Append(err, xerrors.Errorf("workers must be at least 1"))
	}
	if cfg.Format != FormatText && cfg.Format != FormatJSON {
		err = multierror.Append(err, xerrors.Errorf("unsupported output format %q", cfg.Format))
	}
	if cfg.UpdateInterval < 0 {
		err = multierror.Append(err, xerrors.Errorf("update_interval cannot be negative"))
	}
	if _, lvlErr := logrus.ParseLevel(cfg.LogLevel); lvlErr != nil {
		err = multierror.Append(err, xerrors.Errorf("log_level: %w", lvlErr))
	}
	return err
}

// Ranking returns the estimator settings.
func (cfg Config) Ranking(logger *logrus.Entry) pagerank.Config {
	return pagerank.Config{
		DampingFactor:        cfg.Damping,
		SampleCount:          cfg.Samples,
		ConvergenceThreshold: cfg.Threshold,
		MaxPasses:            cfg.MaxPasses,
		Seed:                 cfg.Seed,
		Logger:               logger,
	}
}

// Level returns the parsed log level. Invalid levels fall back to info.
func (cfg Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
