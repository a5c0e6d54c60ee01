package spectral

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deterministicNoise(seed int64, amplitude float64, length int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, length)
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

func TestFrequencyBins(t *testing.T) {
	assert.Equal(t, []float64{0, 1, -2, -1}, FrequencyBins(4, 0.25))
	assert.Equal(t, []float64{0, 2, 4, -4, -2}, FrequencyBins(5, 0.1))
	assert.Empty(t, FrequencyBins(0, 1))

	freqs := FrequencyBins(7, 1e-3)
	for k, f := range freqs {
		assert.Equal(t, f, BinFrequency(k, 7, 1e-3))
	}
}

func TestShiftToAscending(t *testing.T) {
	assert.Equal(t, []float64{-2, -1, 0, 1}, shiftToAscending([]float64{0, 1, -2, -1}))
	assert.Equal(t, []float64{-4, -2, 0, 2, 4}, shiftToAscending([]float64{0, 2, 4, -4, -2}))
	assert.Equal(t, []float64{0}, shiftToAscending([]float64{0}))
}

func TestComputeSpectrum_DC(t *testing.T) {
	s, err := ComputeSpectrum([]float64{1, 1, 1, 1}, 1)
	require.NoError(t, err)

	assert.Equal(t, []float64{-0.5, -0.25, 0, 0.25}, s.Frequencies)
	assert.InDeltaSlice(t, []float64{0, 0, 16, 0}, s.Power, 1e-9)
}

func TestComputeSpectrum_SortedAndSized(t *testing.T) {
	for _, n := range []int{2, 17, 64, 1000} {
		signal := deterministicNoise(int64(n), 1, n)
		s, err := ComputeSpectrum(signal, 1e-3)
		require.NoError(t, err)

		assert.Len(t, s.Frequencies, n)
		assert.Len(t, s.Power, n)
		assert.Equal(t, n, s.Len())
		assert.True(t, sort.Float64sAreSorted(s.Frequencies), "n=%d", n)
	}
}

func TestComputeSpectrum_Symmetric(t *testing.T) {
	for _, n := range []int{63, 64} {
		signal := deterministicNoise(3, 1, n)
		s, err := ComputeSpectrum(signal, 1e-3)
		require.NoError(t, err)

		index := make(map[float64]int, n)
		for i, f := range s.Frequencies {
			index[f] = i
		}
		for i, f := range s.Frequencies {
			j, ok := index[-f]
			if !ok {
				// the Nyquist bin of an even-length transform has no mirror
				continue
			}
			assert.InDelta(t, s.Power[i], s.Power[j], 1e-9*(1+s.Power[i]), "n=%d f=%v", n, f)
		}
	}
}

func TestComputeSpectrum_Errors(t *testing.T) {
	_, err := ComputeSpectrum(nil, 1e-3)
	assert.ErrorIs(t, err, ErrEmptySignal)

	for _, d := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := ComputeSpectrum([]float64{1, 2}, d)
		assert.ErrorIs(t, err, ErrInvalidSampleInterval)
	}
}

func TestSpectrum_LogPower(t *testing.T) {
	s := &Spectrum{Frequencies: []float64{-1, 0, 1}, Power: []float64{0, 100, 1}}
	assert.InDeltaSlice(t, []float64{-120, 20, 0}, s.LogPower(-120), 1e-9)
}

func TestSpectrum_PowerAt(t *testing.T) {
	s := &Spectrum{Frequencies: []float64{-1, 0, 1}, Power: []float64{3, 5, 7}}

	p, err := s.PowerAt(1)
	require.NoError(t, err)
	assert.Equal(t, 7.0, p)

	_, err = s.PowerAt(0.5)
	assert.ErrorIs(t, err, ErrFrequencyNotFound)
}

func TestTransform(t *testing.T) {
	impulse := Transform([]float64{1, 0, 0, 0, 0})
	require.Len(t, impulse, 5)
	for _, x := range impulse {
		assert.InDelta(t, 1.0, real(x), 1e-12)
		assert.InDelta(t, 0.0, imag(x), 1e-12)
	}

	signal := deterministicNoise(11, 1, 32)
	bins := Transform(signal)
	sum := 0.0
	for _, x := range signal {
		sum += x
	}
	assert.InDelta(t, sum, real(bins[0]), 1e-9)
	assert.InDelta(t, 0.0, imag(bins[0]), 1e-9)

	assert.Empty(t, Transform(nil))
}
