// Package residence turns a crossing sequence into the residence-time series
// and the distribution of times spent between alternating crossings.
package residence

import (
	"errors"
	"fmt"

	"github.com/RyanBlaney/bistable/algorithms/common"
	"github.com/RyanBlaney/bistable/algorithms/crossing"
)

var (
	ErrNoCrossings     = errors.New("residence: crossing sequence is empty")
	ErrInvalidTimestep = errors.New("residence: timestep must be positive and finite")
)

// Result holds the anchored crossing times and the intervals between them
type Result struct {
	Crossings crossing.Sequence `json:"crossings"`

	// Series[k] is the time of crossing k measured from the first crossing,
	// so Series[0] is always 0.
	Series []float64 `json:"series"`

	// Distribution[k] = Series[k+1] - Series[k]; empty for a single crossing
	Distribution []float64 `json:"distribution"`
}

// Extract converts crossings into the time series and residence-time
// distribution using sample spacing dt.
//
// The sequence must hold at least one crossing; callers are expected to
// branch on an empty detection result before calling.
func Extract(crossings crossing.Sequence, dt float64) (*Result, error) {
	if len(crossings) == 0 {
		return nil, ErrNoCrossings
	}
	if !(dt > 0) || !common.IsFinite(dt) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidTimestep, dt)
	}
	if err := crossings.Validate(); err != nil {
		return nil, err
	}

	origin := dt * float64(crossings[0].Index)
	series := make([]float64, len(crossings))
	for k, c := range crossings {
		series[k] = dt*float64(c.Index) - origin
	}

	distribution := make([]float64, len(series)-1)
	for k := range distribution {
		distribution[k] = series[k+1] - series[k]
	}

	return &Result{
		Crossings:    crossings,
		Series:       series,
		Distribution: distribution,
	}, nil
}

// SplitBySide separates the distribution by the side of the crossing that
// opens each interval. Intervals opened by a Positive crossing measure time
// spent in the positive well before dropping to the negative flag.
func (r *Result) SplitBySide() (positive, negative []float64) {
	positive = make([]float64, 0, len(r.Distribution)/2+1)
	negative = make([]float64, 0, len(r.Distribution)/2+1)
	for k, interval := range r.Distribution {
		if r.Crossings[k].Side == crossing.Positive {
			positive = append(positive, interval)
		} else {
			negative = append(negative, interval)
		}
	}
	return positive, negative
}
