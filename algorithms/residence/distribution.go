package residence

import (
	"errors"
	"fmt"

	"github.com/RyanBlaney/bistable/algorithms/common"
)

var ErrInvalidBins = errors.New("residence: bin count must be positive")

// Summary describes a residence-time distribution
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Summarize computes descriptive statistics of a distribution.
// An empty distribution gives a zero Summary.
func Summarize(distribution []float64) Summary {
	if len(distribution) == 0 {
		return Summary{}
	}
	lo, hi := common.MinMax(distribution)
	return Summary{
		Count:  len(distribution),
		Mean:   common.Mean(distribution),
		StdDev: common.StandardDeviation(distribution),
		Median: common.Percentile(distribution, 0.5),
		Min:    lo,
		Max:    hi,
	}
}

// Histogram is a binned residence-time distribution
type Histogram struct {
	Edges  []float64 `json:"edges"`  // len(Counts)+1 bin edges
	Counts []float64 `json:"counts"` // occurrences per bin
}

// BinWidth returns the width shared by all bins
func (h *Histogram) BinWidth() float64 {
	if len(h.Edges) < 2 {
		return 0
	}
	return h.Edges[1] - h.Edges[0]
}

// Density returns counts normalized so the histogram integrates to 1
func (h *Histogram) Density() []float64 {
	total := 0.0
	for _, c := range h.Counts {
		total += c
	}
	density := make([]float64, len(h.Counts))
	width := h.BinWidth()
	if total == 0 || width == 0 {
		return density
	}
	for i, c := range h.Counts {
		density[i] = c / (total * width)
	}
	return density
}

// NewHistogram bins a distribution into equal-width bins spanning its range.
// A distribution whose values are all equal gets a unit-wide range centered
// on that value; an empty one gets empty bins over [0, 1].
func NewHistogram(distribution []float64, bins int) (*Histogram, error) {
	if bins <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBins, bins)
	}
	if len(distribution) == 0 {
		return &Histogram{
			Edges:  common.EqualWidthEdges(bins, 0, 1),
			Counts: make([]float64, bins),
		}, nil
	}

	lo, hi := common.MinMax(distribution)
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	edges := common.EqualWidthEdges(bins, lo, hi)

	return &Histogram{
		Edges:  edges,
		Counts: common.Histogram(distribution, edges),
	}, nil
}
