package spectral

// FrequencyBins returns the frequency of every FFT bin for a transform of
// length n with sample spacing d, in native FFT order:
//
//	[0, 1, ..., ceil(n/2)-1, -floor(n/2), ..., -1] / (d*n)
//
// The values are computed as k * (1/(n*d)) so they compare equal to
// frequencies produced the same way by callers.
func FrequencyBins(n int, d float64) []float64 {
	if n <= 0 {
		return []float64{}
	}

	step := 1.0 / (float64(n) * d)
	freqs := make([]float64, n)
	positive := (n-1)/2 + 1
	for k := 0; k < positive; k++ {
		freqs[k] = float64(k) * step
	}
	for k := positive; k < n; k++ {
		freqs[k] = float64(k-n) * step
	}
	return freqs
}

// BinFrequency returns the frequency of native bin k, matching FrequencyBins
func BinFrequency(k, n int, d float64) float64 {
	step := 1.0 / (float64(n) * d)
	if k >= (n-1)/2+1 {
		k -= n
	}
	return float64(k) * step
}

// shiftToAscending reorders native FFT-ordered values so the most negative
// frequency comes first and the highest positive frequency last.
func shiftToAscending(native []float64) []float64 {
	n := len(native)
	out := make([]float64, n)
	offset := n - n/2
	for j := range out {
		out[j] = native[(j+offset)%n]
	}
	return out
}
