// Package ensemble aggregates position signals from many simulation runs and
// builds the per-time-step position histograms across the ensemble.
package ensemble

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/RyanBlaney/bistable/algorithms/common"
)

var (
	ErrEmptyEnsemble  = errors.New("ensemble: no runs or no samples")
	ErrRaggedRuns     = errors.New("ensemble: runs differ in length")
	ErrStepOutOfRange = errors.New("ensemble: time step out of range")
	ErrInvalidBins    = errors.New("ensemble: bins must be positive and range non-empty")
)

// Ensemble stores runs as the rows of a matrix; column j holds every run's
// position at time step j.
type Ensemble struct {
	positions *mat.Dense
}

// New builds an ensemble from equally long runs. The data is copied.
func New(runs [][]float64) (*Ensemble, error) {
	if len(runs) == 0 || len(runs[0]) == 0 {
		return nil, ErrEmptyEnsemble
	}
	steps := len(runs[0])
	positions := mat.NewDense(len(runs), steps, nil)
	for i, run := range runs {
		if len(run) != steps {
			return nil, fmt.Errorf("%w: run %d has %d samples, run 0 has %d", ErrRaggedRuns, i, len(run), steps)
		}
		positions.SetRow(i, run)
	}
	return &Ensemble{positions: positions}, nil
}

// Runs returns the number of runs
func (e *Ensemble) Runs() int {
	r, _ := e.positions.Dims()
	return r
}

// Steps returns the number of time steps per run
func (e *Ensemble) Steps() int {
	_, c := e.positions.Dims()
	return c
}

// Run returns a copy of run i
func (e *Ensemble) Run(i int) []float64 {
	return mat.Row(nil, i, e.positions)
}

// At returns every run's position at time step step
func (e *Ensemble) At(step int) ([]float64, error) {
	if step < 0 || step >= e.Steps() {
		return nil, fmt.Errorf("%w: %d of %d", ErrStepOutOfRange, step, e.Steps())
	}
	return mat.Col(nil, step, e.positions), nil
}

// HistogramAt counts the runs' positions at one time step into bins
// equal-width bins over [lo, hi]. Positions outside the range are ignored.
func (e *Ensemble) HistogramAt(step, bins int, lo, hi float64) ([]float64, error) {
	if err := checkBins(bins, lo, hi); err != nil {
		return nil, err
	}
	column, err := e.At(step)
	if err != nil {
		return nil, err
	}
	return common.Histogram(column, common.EqualWidthEdges(bins, lo, hi)), nil
}

// Heatmap is the ensemble histogram over time: Counts has one row per time
// step and one column per position bin.
type Heatmap struct {
	Edges  []float64
	Counts *mat.Dense
}

// Bins returns the number of position bins
func (h *Heatmap) Bins() int {
	_, c := h.Counts.Dims()
	return c
}

// Row returns the histogram for time step step
func (h *Heatmap) Row(step int) []float64 {
	return mat.Row(nil, step, h.Counts)
}

// Occupancy returns, per time step, the fraction of binned runs with a
// position at or above zero. Steps where no run fell in range get 0.
func (h *Heatmap) Occupancy() []float64 {
	steps, bins := h.Counts.Dims()
	out := make([]float64, steps)
	for s := 0; s < steps; s++ {
		var total, upper float64
		for b := 0; b < bins; b++ {
			c := h.Counts.At(s, b)
			total += c
			if h.Edges[b] >= 0 {
				upper += c
			}
		}
		if total > 0 {
			out[s] = upper / total
		}
	}
	return out
}

// Heatmap builds the histogram for every time step
func (e *Ensemble) Heatmap(bins int, lo, hi float64) (*Heatmap, error) {
	if err := checkBins(bins, lo, hi); err != nil {
		return nil, err
	}
	edges := common.EqualWidthEdges(bins, lo, hi)
	steps := e.Steps()
	counts := mat.NewDense(steps, bins, nil)

	column := make([]float64, e.Runs())
	for s := 0; s < steps; s++ {
		mat.Col(column, s, e.positions)
		counts.SetRow(s, common.Histogram(column, edges))
	}
	return &Heatmap{Edges: edges, Counts: counts}, nil
}

func checkBins(bins int, lo, hi float64) error {
	if bins <= 0 || !(lo < hi) {
		return fmt.Errorf("%w: bins=%d range=[%v, %v]", ErrInvalidBins, bins, lo, hi)
	}
	return nil
}
