// Package crossing detects alternating crossings of a symmetric pair of
// threshold levels (+flag / -flag) in a sampled position signal.
package crossing

import (
	"errors"
	"fmt"
)

// Side identifies which threshold a crossing went through
type Side int

const (
	Positive Side = iota // upward through +flag
	Negative             // downward through -flag
)

func (s Side) String() string {
	switch s {
	case Positive:
		return "+"
	case Negative:
		return "-"
	default:
		return "?"
	}
}

// Opposite returns the other side
func (s Side) Opposite() Side {
	if s == Positive {
		return Negative
	}
	return Positive
}

// Crossing is one accepted threshold crossing
type Crossing struct {
	Index int  `json:"index"`
	Side  Side `json:"side"`
}

// Sequence is an ordered run of crossings with strictly alternating sides
type Sequence []Crossing

var (
	ErrSignalTooShort = errors.New("crossing: signal needs at least 2 samples")
	ErrInvalidParams  = errors.New("crossing: invalid parameters")
	ErrNotAlternating = errors.New("crossing: sequence is not alternating")
)

func (s Sequence) Len() int { return len(s) }

// Last returns the most recent crossing, if any
func (s Sequence) Last() (Crossing, bool) {
	if len(s) == 0 {
		return Crossing{}, false
	}
	return s[len(s)-1], true
}

// Indices returns the sample index of every crossing in order
func (s Sequence) Indices() []int {
	idx := make([]int, len(s))
	for i, c := range s {
		idx[i] = c.Index
	}
	return idx
}

// Validate checks that sides alternate and indices never decrease
func (s Sequence) Validate() error {
	for i := 1; i < len(s); i++ {
		if s[i].Side == s[i-1].Side {
			return fmt.Errorf("%w: entries %d and %d both %s", ErrNotAlternating, i-1, i, s[i].Side)
		}
		if s[i].Index < s[i-1].Index {
			return fmt.Errorf("%w: index %d precedes %d", ErrNotAlternating, s[i].Index, s[i-1].Index)
		}
	}
	return nil
}
