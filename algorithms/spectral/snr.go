package spectral

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrFrequencyNotFound = errors.New("spectral: target frequency not among bins")
	ErrLengthMismatch    = errors.New("spectral: frequency and power lengths differ")
)

// SignalToNoise returns the ratio in dB between the power at target and the
// mean power of the two neighbouring bins. target must equal one of freqs
// exactly; otherwise ErrFrequencyNotFound is returned.
//
// A target on the first or last bin has no pair of neighbours and yields 0.
// When both neighbours carry zero power the result is +Inf.
func SignalToNoise(freqs, power []float64, target float64) (float64, error) {
	return SignalToNoiseWithin(freqs, power, target, 0)
}

// SignalToNoiseWithin is SignalToNoise with a nearest-bin lookup: the bin
// closest to target is used if it lies within eps. eps == 0 requires an
// exact match.
func SignalToNoiseWithin(freqs, power []float64, target, eps float64) (float64, error) {
	if len(freqs) != len(power) {
		return 0, fmt.Errorf("%w: %d frequencies, %d powers", ErrLengthMismatch, len(freqs), len(power))
	}

	idx, err := findBin(freqs, target, eps)
	if err != nil {
		return 0, err
	}

	if idx == 0 || idx == len(freqs)-1 {
		return 0, nil
	}

	noise := 0.5 * (power[idx-1] + power[idx+1])
	return 10 * math.Log10(power[idx]/noise), nil
}

// findBin returns the first index whose frequency equals target, or with
// eps > 0 the index of the closest frequency within eps.
func findBin(freqs []float64, target, eps float64) (int, error) {
	if eps <= 0 {
		for i, f := range freqs {
			if f == target {
				return i, nil
			}
		}
		return -1, fmt.Errorf("%w: %v", ErrFrequencyNotFound, target)
	}

	best := -1
	bestDist := math.Inf(1)
	for i, f := range freqs {
		if d := math.Abs(f - target); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 || bestDist > eps {
		return -1, fmt.Errorf("%w: %v (tolerance %v)", ErrFrequencyNotFound, target, eps)
	}
	return best, nil
}
