// Package config holds the analysis parameters shared by every stage of the
// pipeline, with documented defaults and a viper-backed loader.
package config

import (
	"errors"
	"fmt"
	"math"
	"runtime"
)

// Config is the complete analysis configuration
type Config struct {
	Crossing  CrossingConfig  `json:"crossing" mapstructure:"crossing"`
	Residence ResidenceConfig `json:"residence" mapstructure:"residence"`
	Spectral  SpectralConfig  `json:"spectral" mapstructure:"spectral"`
	Ensemble  EnsembleConfig  `json:"ensemble" mapstructure:"ensemble"`
	Logging   LoggingConfig   `json:"logging" mapstructure:"logging"`

	// Workers bounds how many runs are analyzed concurrently
	Workers int `json:"workers" mapstructure:"workers"`
}

// CrossingConfig configures level-crossing detection
type CrossingConfig struct {
	Threshold float64 `json:"threshold" mapstructure:"threshold"` // magnitude of the +/- flags
	Tolerance float64 `json:"tolerance" mapstructure:"tolerance"` // how close a sample must be to a flag
}

// ResidenceConfig configures residence-time extraction
type ResidenceConfig struct {
	Timestep      float64 `json:"timestep" mapstructure:"timestep"`             // simulator dt
	HistogramBins int     `json:"histogram_bins" mapstructure:"histogram_bins"` // bins for the distribution histogram
}

// SpectralConfig configures the power spectrum and SNR
type SpectralConfig struct {
	SampleInterval float64 `json:"sample_interval" mapstructure:"sample_interval"`

	// TargetFrequency is the drive frequency to score; 0 disables SNR
	TargetFrequency float64 `json:"target_frequency" mapstructure:"target_frequency"`

	// MatchTolerance is the largest allowed distance between TargetFrequency
	// and a bin frequency. 0 requires an exact match.
	MatchTolerance float64 `json:"match_tolerance" mapstructure:"match_tolerance"`

	LogFloorDB float64 `json:"log_floor_db" mapstructure:"log_floor_db"`
}

// EnsembleConfig configures the per-time-step position histograms
type EnsembleConfig struct {
	Bins     int     `json:"bins" mapstructure:"bins"`
	RangeMin float64 `json:"range_min" mapstructure:"range_min"`
	RangeMax float64 `json:"range_max" mapstructure:"range_max"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `json:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `json:"format" mapstructure:"format"` // json, console
}

const (
	DefaultThreshold      = 1.0
	DefaultTolerance      = 1e-3
	DefaultTimestep       = 1e-3
	DefaultSampleInterval = 1e-3
	DefaultHistogramBins  = 50
	DefaultEnsembleBins   = 20
	DefaultLogFloorDB     = -120.0
)

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		Crossing: CrossingConfig{
			Threshold: DefaultThreshold,
			Tolerance: DefaultTolerance,
		},
		Residence: ResidenceConfig{
			Timestep:      DefaultTimestep,
			HistogramBins: DefaultHistogramBins,
		},
		Spectral: SpectralConfig{
			SampleInterval: DefaultSampleInterval,
			LogFloorDB:     DefaultLogFloorDB,
		},
		Ensemble: EnsembleConfig{
			Bins:     DefaultEnsembleBins,
			RangeMin: -1.0,
			RangeMax: 1.0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Workers: runtime.NumCPU(),
	}
}

var (
	ErrNonPositive = errors.New("must be positive")
	ErrNotFinite   = errors.New("must be finite")
	ErrEmptyRange  = errors.New("range_min must be below range_max")
)

func positive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s: %w", name, ErrNotFinite)
	}
	if v <= 0 {
		return fmt.Errorf("%s: %w", name, ErrNonPositive)
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Crossing.Validate(); err != nil {
		return fmt.Errorf("crossing config: %w", err)
	}
	if err := c.Residence.Validate(); err != nil {
		return fmt.Errorf("residence config: %w", err)
	}
	if err := c.Spectral.Validate(); err != nil {
		return fmt.Errorf("spectral config: %w", err)
	}
	if err := c.Ensemble.Validate(); err != nil {
		return fmt.Errorf("ensemble config: %w", err)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers: %w", ErrNonPositive)
	}
	return nil
}

func (c CrossingConfig) Validate() error {
	if err := positive("threshold", c.Threshold); err != nil {
		return err
	}
	return positive("tolerance", c.Tolerance)
}

func (c ResidenceConfig) Validate() error {
	if err := positive("timestep", c.Timestep); err != nil {
		return err
	}
	if c.HistogramBins <= 0 {
		return fmt.Errorf("histogram_bins: %w", ErrNonPositive)
	}
	return nil
}

func (c SpectralConfig) Validate() error {
	if err := positive("sample_interval", c.SampleInterval); err != nil {
		return err
	}
	if c.TargetFrequency < 0 {
		return fmt.Errorf("target_frequency: must not be negative")
	}
	if c.MatchTolerance < 0 {
		return fmt.Errorf("match_tolerance: must not be negative")
	}
	return nil
}

func (c EnsembleConfig) Validate() error {
	if c.Bins <= 0 {
		return fmt.Errorf("bins: %w", ErrNonPositive)
	}
	if !(c.RangeMin < c.RangeMax) {
		return ErrEmptyRange
	}
	return nil
}
