package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from configPath. With an empty path it searches
// the usual locations for bistable.{yaml,json,toml} and falls back to the
// defaults when none exists. BISTABLE_* environment variables override
// file values (e.g. BISTABLE_CROSSING_TOLERANCE).
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("bistable")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/bistable")
	}

	setDefaults(v)

	v.SetEnvPrefix("BISTABLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration or returns Default on any error
func LoadOrDefault(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		return Default()
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("crossing.threshold", DefaultThreshold)
	v.SetDefault("crossing.tolerance", DefaultTolerance)

	v.SetDefault("residence.timestep", DefaultTimestep)
	v.SetDefault("residence.histogram_bins", DefaultHistogramBins)

	v.SetDefault("spectral.sample_interval", DefaultSampleInterval)
	v.SetDefault("spectral.target_frequency", 0.0)
	v.SetDefault("spectral.match_tolerance", 0.0)
	v.SetDefault("spectral.log_floor_db", DefaultLogFloorDB)

	v.SetDefault("ensemble.bins", DefaultEnsembleBins)
	v.SetDefault("ensemble.range_min", -1.0)
	v.SetDefault("ensemble.range_max", 1.0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("workers", runtime.NumCPU())
}
