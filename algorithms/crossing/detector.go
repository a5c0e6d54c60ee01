package crossing

import (
	"fmt"
	"math"
)

// Params configures crossing detection
type Params struct {
	Threshold float64 `json:"threshold"` // flag magnitude; levels sit at +Threshold and -Threshold
	Tolerance float64 `json:"tolerance"` // a sample counts as "at" a level when closer than this
}

// DefaultParams returns flags at +/-1.0 with a 1e-3 tolerance
func DefaultParams() Params {
	return Params{
		Threshold: 1.0,
		Tolerance: 1e-3,
	}
}

// Validate rejects non-positive or non-finite parameters
func (p Params) Validate() error {
	if !(p.Threshold > 0) || math.IsInf(p.Threshold, 0) {
		return fmt.Errorf("%w: threshold %v", ErrInvalidParams, p.Threshold)
	}
	if !(p.Tolerance > 0) || math.IsInf(p.Tolerance, 0) {
		return fmt.Errorf("%w: tolerance %v", ErrInvalidParams, p.Tolerance)
	}
	return nil
}

// Detector finds alternating threshold crossings in a signal.
// It holds no per-signal state, so one Detector may serve many goroutines.
type Detector struct {
	params Params
}

// NewDetector creates a detector with DefaultParams
func NewDetector() *Detector {
	return &Detector{params: DefaultParams()}
}

// NewDetectorWithParams creates a detector with custom parameters
func NewDetectorWithParams(params Params) *Detector {
	return &Detector{params: params}
}

// Params returns the detector's parameters
func (d *Detector) Params() Params {
	return d.params
}

// Detect scans signal once and returns the accepted crossings.
//
// A sample at index i is a Positive candidate when it lies within Tolerance
// of +Threshold and rose from sample i-1, and a Negative candidate when it
// lies within Tolerance of -Threshold and fell from sample i-1. Index 0 has
// no predecessor and is never a candidate. Samples exactly equal to zero are
// skipped. A candidate is kept only if it is the first crossing or the
// previous kept crossing is on the other side, so noise re-crossing the
// same level is dropped.
//
// A signal that never reaches either level yields an empty Sequence and a
// nil error.
func (d *Detector) Detect(signal []float64) (Sequence, error) {
	if len(signal) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrSignalTooShort, len(signal))
	}
	if err := d.params.Validate(); err != nil {
		return nil, err
	}

	flag := d.params.Threshold
	tol := d.params.Tolerance

	crossings := make(Sequence, 0)
	for i := 1; i < len(signal); i++ {
		x := signal[i]
		if x == 0 {
			continue
		}
		delta := x - signal[i-1]

		var side Side
		switch {
		case math.Abs(x-flag) < tol && delta > 0:
			side = Positive
		case math.Abs(x+flag) < tol && delta < 0:
			side = Negative
		default:
			continue
		}

		if last, ok := crossings.Last(); ok && last.Side == side {
			continue
		}
		crossings = append(crossings, Crossing{Index: i, Side: side})
	}

	return crossings, nil
}

// Detect runs a one-off detection with the given parameters
func Detect(signal []float64, params Params) (Sequence, error) {
	return NewDetectorWithParams(params).Detect(signal)
}
