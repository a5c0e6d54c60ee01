package spectral

import (
	"math"
)

// PowerSpectrum turns complex FFT bins into power values
type PowerSpectrum struct {
	// No state needed - stateless calculation
}

// NewPowerSpectrum creates a new power spectrum calculator
func NewPowerSpectrum() *PowerSpectrum {
	return &PowerSpectrum{}
}

// Compute returns |X[k]|^2 for every bin
func (ps *PowerSpectrum) Compute(bins []complex128) []float64 {
	if len(bins) == 0 {
		return []float64{}
	}

	power := make([]float64, len(bins))
	for i, x := range bins {
		re, im := real(x), imag(x)
		power[i] = re*re + im*im
	}

	return power
}

// ComputeLog converts power values to dB, clamping at floorDB
func (ps *PowerSpectrum) ComputeLog(power []float64, floorDB float64) []float64 {
	if len(power) == 0 {
		return []float64{}
	}

	floor := math.Pow(10, floorDB/10.0)
	logPower := make([]float64, len(power))

	for i, p := range power {
		if p < floor {
			p = floor
		}
		logPower[i] = 10 * math.Log10(p)
	}

	return logPower
}
