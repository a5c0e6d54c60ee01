package common

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// EqualWidthEdges returns bins+1 evenly spaced edges covering [lo, hi]
func EqualWidthEdges(bins int, lo, hi float64) []float64 {
	if bins <= 0 {
		return []float64{}
	}
	return floats.Span(make([]float64, bins+1), lo, hi)
}

// Histogram counts data into the bins described by edges.
//
// Bins are half-open [edges[j], edges[j+1]) except the last, which also
// includes its right edge. Values outside [edges[0], edges[len-1]] and NaNs
// are ignored. len(result) == len(edges)-1.
func Histogram(data, edges []float64) []float64 {
	if len(edges) < 2 {
		return []float64{}
	}
	counts := make([]float64, len(edges)-1)

	lo, hi := edges[0], edges[len(edges)-1]
	inRange := make([]float64, 0, len(data))
	for _, v := range data {
		if v >= lo && v <= hi {
			inRange = append(inRange, v)
		}
	}
	if len(inRange) == 0 {
		return counts
	}
	sort.Float64s(inRange)

	// gonum requires every value strictly below the last divider
	dividers := make([]float64, len(edges))
	copy(dividers, edges)
	dividers[len(dividers)-1] = math.Nextafter(hi, math.Inf(1))

	return stat.Histogram(counts, dividers, inRange, nil)
}
