package plot

import (
	"math"
	"time"
)

// Missing marks a gap in a series.
var Missing = math.NaN()

// Series is one named sequence of samples aligned to a Matrix timeline.
// Missing samples are NaN.
type Series struct {
	Name   string
	Values []float64
}

// Matrix holds the series of one fetched window. Values[i] of every series
// belongs to Timeline[i].
type Matrix struct {
	Timeline []time.Time
	Series   []Series
}

// Empty reports whether the fetch produced no frames.
func (m Matrix) Empty() bool {
	return len(m.Series) == 0 || len(m.Timeline) == 0
}

// Present reports whether v is a usable sample.
func Present(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValueRange is the fixed vertical extent a stream is quantized against.
type ValueRange struct {
	Min float64
	Max float64
}

// RangeOf folds min and max over every present sample in m. A matrix without
// present samples yields (+Inf, -Inf), against which nothing scales.
func RangeOf(m Matrix) ValueRange {
	r := ValueRange{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, s := range m.Series {
		for _, v := range s.Values {
			if !Present(v) {
				continue
			}
			if v < r.Min {
				r.Min = v
			}
			if v > r.Max {
				r.Max = v
			}
		}
	}
	return r
}

// Span returns Max - Min.
func (r ValueRange) Span() float64 {
	return r.Max - r.Min
}

// Degenerate reports whether no value can be scaled against r.
func (r ValueRange) Degenerate() bool {
	return !(r.Min < r.Max) || math.IsInf(r.Span(), 0)
}
