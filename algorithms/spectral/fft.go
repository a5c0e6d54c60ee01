package spectral

import (
	"github.com/mjibson/go-dsp/fft"
)

// Transform returns the discrete Fourier transform of a real signal in
// native bin order: DC first, then positive frequencies, then negative.
// Any length is accepted.
func Transform(signal []float64) []complex128 {
	if len(signal) == 0 {
		return []complex128{}
	}
	return fft.FFTReal(signal)
}
