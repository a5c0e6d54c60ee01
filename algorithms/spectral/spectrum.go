package spectral

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrEmptySignal           = errors.New("spectral: signal is empty")
	ErrInvalidSampleInterval = errors.New("spectral: sample interval must be positive and finite")
)

// Spectrum is a power spectrum sorted by ascending frequency.
// Frequencies[i] is the frequency of Power[i].
type Spectrum struct {
	Frequencies []float64 `json:"frequencies"`
	Power       []float64 `json:"power"`
}

// Len returns the number of bins
func (s *Spectrum) Len() int {
	return len(s.Frequencies)
}

// ComputeSpectrum returns the power spectrum of signal sampled every
// sampleInterval time units. Both arrays have len(signal) entries and are
// sorted by frequency, so the zero-frequency bin sits in the middle.
func ComputeSpectrum(signal []float64, sampleInterval float64) (*Spectrum, error) {
	if len(signal) == 0 {
		return nil, ErrEmptySignal
	}
	if !(sampleInterval > 0) || math.IsInf(sampleInterval, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidSampleInterval, sampleInterval)
	}

	bins := Transform(signal)
	power := NewPowerSpectrum().Compute(bins)
	freqs := FrequencyBins(len(signal), sampleInterval)

	return &Spectrum{
		Frequencies: shiftToAscending(freqs),
		Power:       shiftToAscending(power),
	}, nil
}

// LogPower returns the power in dB, clamped at floorDB
func (s *Spectrum) LogPower(floorDB float64) []float64 {
	return NewPowerSpectrum().ComputeLog(s.Power, floorDB)
}

// PowerAt returns the power in the bin whose frequency equals f exactly
func (s *Spectrum) PowerAt(f float64) (float64, error) {
	idx, err := findBin(s.Frequencies, f, 0)
	if err != nil {
		return 0, err
	}
	return s.Power[idx], nil
}

// SignalToNoise is SignalToNoise applied to this spectrum
func (s *Spectrum) SignalToNoise(target float64) (float64, error) {
	return SignalToNoise(s.Frequencies, s.Power, target)
}

// SignalToNoiseWithin is SignalToNoiseWithin applied to this spectrum
func (s *Spectrum) SignalToNoiseWithin(target, eps float64) (float64, error) {
	return SignalToNoiseWithin(s.Frequencies, s.Power, target, eps)
}
