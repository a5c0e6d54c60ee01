package residence

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/bistable/algorithms/crossing"
)

func TestExtract_StepSignal(t *testing.T) {
	signal := []float64{0, 0.5, 1.0, 1.0, 0.5, -1.0, -1.0, 0.2}
	seq, err := crossing.Detect(signal, crossing.Params{Threshold: 1.0, Tolerance: 0.05})
	require.NoError(t, err)
	require.Len(t, seq, 2)

	res, err := Extract(seq, 1.0)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 3}, res.Series)
	require.Len(t, res.Distribution, 1)
	assert.Equal(t, float64(seq[1].Index-seq[0].Index), res.Distribution[0])
}

func TestExtract_ConstantZeroIsRejected(t *testing.T) {
	seq, err := crossing.NewDetector().Detect(make([]float64, 10))
	require.NoError(t, err)
	require.Empty(t, seq)

	res, err := Extract(seq, 1e-3)
	assert.ErrorIs(t, err, ErrNoCrossings)
	assert.Nil(t, res)
}

func TestExtract_Oscillation(t *testing.T) {
	const (
		period = 1000
		dt     = 1e-3
	)
	signal := make([]float64, period*6)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * float64(i) / period)
	}

	seq, err := crossing.NewDetector().Detect(signal)
	require.NoError(t, err)
	res, err := Extract(seq, dt)
	require.NoError(t, err)

	require.NotEmpty(t, res.Distribution)
	for _, interval := range res.Distribution {
		assert.InDelta(t, period*dt/2, interval, 2*dt)
	}
}

func TestExtract_SingleCrossing(t *testing.T) {
	res, err := Extract(crossing.Sequence{{Index: 42, Side: crossing.Negative}}, 1e-3)
	require.NoError(t, err)

	assert.Equal(t, []float64{0}, res.Series)
	assert.NotNil(t, res.Distribution)
	assert.Empty(t, res.Distribution)
}

func TestExtract_InvalidTimestep(t *testing.T) {
	seq := crossing.Sequence{{Index: 1, Side: crossing.Positive}}
	for _, dt := range []float64{0, -1e-3, math.NaN(), math.Inf(1)} {
		_, err := Extract(seq, dt)
		assert.ErrorIs(t, err, ErrInvalidTimestep, "dt=%v", dt)
	}
}

func TestExtract_MalformedSequence(t *testing.T) {
	seq := crossing.Sequence{{Index: 1, Side: crossing.Positive}, {Index: 5, Side: crossing.Positive}}
	_, err := Extract(seq, 1e-3)
	assert.ErrorIs(t, err, crossing.ErrNotAlternating)
}

func TestExtract_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		n := 1 + rng.Intn(40)
		seq := make(crossing.Sequence, n)
		idx := rng.Intn(1000)
		side := crossing.Side(rng.Intn(2))
		for k := range seq {
			seq[k] = crossing.Crossing{Index: idx, Side: side}
			idx += 1 + rng.Intn(5000)
			side = side.Opposite()
		}

		res, err := Extract(seq, 1e-3)
		require.NoError(t, err)

		assert.Len(t, res.Series, len(seq))
		assert.Len(t, res.Distribution, len(res.Series)-1)
		assert.Equal(t, 0.0, res.Series[0])
		for _, d := range res.Distribution {
			assert.GreaterOrEqual(t, d, 0.0)
		}
	}
}

func TestResult_SplitBySide(t *testing.T) {
	seq := crossing.Sequence{
		{Index: 0, Side: crossing.Positive},
		{Index: 10, Side: crossing.Negative},
		{Index: 14, Side: crossing.Positive},
		{Index: 30, Side: crossing.Negative},
	}
	res, err := Extract(seq, 1.0)
	require.NoError(t, err)

	pos, neg := res.SplitBySide()
	assert.Equal(t, []float64{10, 16}, pos)
	assert.Equal(t, []float64{4}, neg)
}
