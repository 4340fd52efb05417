// Package config loads optional overrides for the BFS driver's tuning
// parameters (alpha, beta, heavy_threshold) from a config file and the
// environment, so a deployment can pin these without editing a launch
// script's flags every time.
package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/spf13/viper"

	"github.com/paperwasp/hybridbfs/errs"
)

// Config holds the subset of settings that may come from a file/env
// instead of (or as defaults for) CLI flags.
type Config struct {
	Alpha          float64 `mapstructure:"alpha"`
	Beta           float64 `mapstructure:"beta"`
	HeavyThreshold int64   `mapstructure:"heavy_threshold"`
	LogLevel       string  `mapstructure:"log_level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("alpha", 15.0)
	v.SetDefault("beta", 18.0)
	v.SetDefault("heavy_threshold", int64(1)<<62)
	v.SetDefault("log_level", "info")
}

// Load reads configPath (if non-empty) plus HYBRIDBFS_-prefixed
// environment variables into a Config. A missing configPath file is not
// an error — the returned Config simply holds defaults and any env
// overrides.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("HYBRIDBFS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			_, notFound := err.(viper.ConfigFileNotFoundError)
			if !notFound && !errors.Is(err, fs.ErrNotExist) {
				return nil, errs.Wrap(errs.KindUsage, "reading config file", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errs.Wrap(errs.KindUsage, "parsing config", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that loaded values are usable.
func (c *Config) Validate() error {
	if c.Alpha <= 0 {
		return errs.New(errs.KindUsage, "alpha must be positive")
	}
	if c.Beta <= 0 {
		return errs.New(errs.KindUsage, "beta must be positive")
	}
	if c.HeavyThreshold <= 0 {
		return errs.New(errs.KindUsage, "heavy_threshold must be positive")
	}
	return nil
}
