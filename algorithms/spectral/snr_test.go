package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	snrFreqs = []float64{-2, -1, 0, 1, 2}
	snrPower = []float64{1, 2, 8, 2, 1}
)

func TestSignalToNoise(t *testing.T) {
	got, err := SignalToNoise(snrFreqs, snrPower, 0)
	require.NoError(t, err)
	assert.InDelta(t, 10*math.Log10(4), got, 1e-12)

	got, err = SignalToNoise(snrFreqs, snrPower, 1)
	require.NoError(t, err)
	assert.InDelta(t, 10*math.Log10(2/4.5), got, 1e-12)
}

func TestSignalToNoise_EdgesAreZero(t *testing.T) {
	for _, target := range []float64{-2, 2} {
		got, err := SignalToNoise(snrFreqs, snrPower, target)
		require.NoError(t, err)
		assert.Equal(t, 0.0, got)
	}
}

func TestSignalToNoise_NotFound(t *testing.T) {
	_, err := SignalToNoise(snrFreqs, snrPower, 0.5)
	assert.ErrorIs(t, err, ErrFrequencyNotFound)

	_, err = SignalToNoise(nil, nil, 0)
	assert.ErrorIs(t, err, ErrFrequencyNotFound)
}

func TestSignalToNoise_LengthMismatch(t *testing.T) {
	_, err := SignalToNoise(snrFreqs, snrPower[:3], 0)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestSignalToNoise_SilentNeighbours(t *testing.T) {
	got, err := SignalToNoise([]float64{-1, 0, 1}, []float64{0, 4, 0}, 0)
	require.NoError(t, err)
	assert.True(t, math.IsInf(got, 1))
}

func TestSignalToNoiseWithin(t *testing.T) {
	got, err := SignalToNoiseWithin(snrFreqs, snrPower, 1e-4, 1e-3)
	require.NoError(t, err)
	assert.InDelta(t, 10*math.Log10(4), got, 1e-12)

	_, err = SignalToNoiseWithin(snrFreqs, snrPower, 0.4, 1e-3)
	assert.ErrorIs(t, err, ErrFrequencyNotFound)

	// eps == 0 behaves like the exact lookup
	_, err = SignalToNoiseWithin(snrFreqs, snrPower, 1e-4, 0)
	assert.ErrorIs(t, err, ErrFrequencyNotFound)
}

func TestSpectrum_SignalToNoiseOfDrivenOscillation(t *testing.T) {
	const (
		n  = 1000
		dt = 1e-3
		k  = 5
	)
	target := BinFrequency(k, n, dt)

	signal := deterministicNoise(42, 0.1, n)
	for i := range signal {
		signal[i] += math.Sin(2 * math.Pi * target * float64(i) * dt)
	}

	s, err := ComputeSpectrum(signal, dt)
	require.NoError(t, err)

	snr, err := s.SignalToNoise(target)
	require.NoError(t, err)
	assert.Greater(t, snr, 20.0)

	// the mirrored negative-frequency bin carries the same ratio
	mirror, err := s.SignalToNoise(-target)
	require.NoError(t, err)
	assert.InDelta(t, snr, mirror, 1e-6)

	edge, err := s.SignalToNoise(s.Frequencies[0])
	require.NoError(t, err)
	assert.Equal(t, 0.0, edge)

	edge, err = s.SignalToNoise(s.Frequencies[s.Len()-1])
	require.NoError(t, err)
	assert.Equal(t, 0.0, edge)
}
