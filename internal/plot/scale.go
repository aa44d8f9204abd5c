package plot

import "math"

// NoColumn is the quantized value of a sample that has no column.
const NoColumn = -1

// Quantized holds one column index per sample, NoColumn where the sample is
// missing or falls outside the range. Indexed [series][timeline].
type Quantized [][]int

// Scale maps value onto a column in [0, width). It returns NoColumn for
// values outside r, for NaN and infinities, and for every value when r has
// no finite positive span.
func Scale(value float64, r ValueRange, width int) int {
	if width <= 0 {
		return NoColumn
	}
	factor := float64(width-1) / (r.Max - r.Min)
	idx := math.Floor((value - r.Min) * factor)
	if math.IsNaN(idx) || math.IsInf(idx, 0) || idx < 0 || idx >= float64(width) {
		return NoColumn
	}
	return int(idx)
}

// Quantize scales every sample of m against r.
func Quantize(m Matrix, r ValueRange, width int) Quantized {
	q := make(Quantized, len(m.Series))
	for k, s := range m.Series {
		cols := make([]int, len(s.Values))
		for i, v := range s.Values {
			cols[i] = Scale(v, r, width)
		}
		q[k] = cols
	}
	return q
}
