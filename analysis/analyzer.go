// Package analysis runs the crossing, residence-time and spectral stages over
// one simulation run or a whole ensemble of runs.
package analysis

import (
	"errors"
	"fmt"
	"os"

	"github.com/RyanBlaney/bistable/algorithms/crossing"
	"github.com/RyanBlaney/bistable/algorithms/residence"
	"github.com/RyanBlaney/bistable/algorithms/spectral"
	"github.com/RyanBlaney/bistable/config"
	"github.com/RyanBlaney/bistable/logging"
)

// RunResult holds everything derived from one position signal
type RunResult struct {
	Run       int                `json:"run"`
	Crossings crossing.Sequence  `json:"crossings"`
	Residence *residence.Result  `json:"residence,omitempty"` // nil when no crossing was found
	Summary   residence.Summary  `json:"summary"`
	Spectrum  *spectral.Spectrum `json:"spectrum,omitempty"`
	LogPower  []float64          `json:"log_power,omitempty"` // Spectrum.Power in dB, floored at Spectral.LogFloorDB

	// SNR is only meaningful when HasSNR is set
	SNR    float64 `json:"snr_db"`
	HasSNR bool    `json:"has_snr"`
	SNRErr error   `json:"-"`

	// Err is set when the run could not be analyzed at all
	Err error `json:"-"`
}

// Analyzer applies one configuration to any number of signals.
// It keeps no per-signal state and is safe for concurrent use.
type Analyzer struct {
	config   *config.Config
	detector *crossing.Detector
	logger   logging.Logger
}

// New creates an analyzer. A nil cfg means config.Default(); a nil logger
// is built from cfg.Logging and writes to stderr.
func New(cfg *config.Config, logger logging.Logger) (*Analyzer, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}
	if logger == nil {
		logger = logging.NewFromConfig(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	}

	return &Analyzer{
		config: cfg,
		detector: crossing.NewDetectorWithParams(crossing.Params{
			Threshold: cfg.Crossing.Threshold,
			Tolerance: cfg.Crossing.Tolerance,
		}),
		logger: logger.WithFields(logging.Fields{"component": "analyzer"}),
	}, nil
}

// Config returns the analyzer's configuration
func (a *Analyzer) Config() *config.Config {
	return a.config
}

// AnalyzeRun detects crossings, extracts residence times and computes the
// power spectrum of signal. Finding no crossing is not an error: the result
// then has an empty Crossings and a nil Residence.
func (a *Analyzer) AnalyzeRun(signal []float64) (*RunResult, error) {
	crossings, err := a.detector.Detect(signal)
	if err != nil {
		return nil, fmt.Errorf("detect crossings: %w", err)
	}

	result := &RunResult{Crossings: crossings}

	if len(crossings) == 0 {
		a.logger.Debug("no threshold crossings", logging.Fields{"samples": len(signal)})
	} else {
		res, err := residence.Extract(crossings, a.config.Residence.Timestep)
		if err != nil {
			return nil, fmt.Errorf("extract residence times: %w", err)
		}
		result.Residence = res
		result.Summary = residence.Summarize(res.Distribution)
	}

	spectrum, err := spectral.ComputeSpectrum(signal, a.config.Spectral.SampleInterval)
	if err != nil {
		return nil, fmt.Errorf("compute spectrum: %w", err)
	}
	result.Spectrum = spectrum
	result.LogPower = spectrum.LogPower(a.config.Spectral.LogFloorDB)

	if target := a.config.Spectral.TargetFrequency; target > 0 {
		snr, err := spectrum.SignalToNoiseWithin(target, a.config.Spectral.MatchTolerance)
		switch {
		case err == nil:
			result.SNR = snr
			result.HasSNR = true
		case errors.Is(err, spectral.ErrFrequencyNotFound):
			result.SNRErr = err
			a.logger.Warn("target frequency does not fall on a spectrum bin", logging.Fields{
				"target_frequency": target,
				"bin_spacing":      1 / (float64(len(signal)) * a.config.Spectral.SampleInterval),
			})
		default:
			return nil, fmt.Errorf("signal to noise: %w", err)
		}
	}

	a.logger.Debug("run analyzed", logging.Fields{
		"samples":        len(signal),
		"crossings":      len(crossings),
		"mean_residence": result.Summary.Mean,
	})

	return result, nil
}
