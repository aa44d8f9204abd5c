package charts

import (
	"fmt"

	"github.com/prometheus/common/model"
)

// Kind selects how a fetched window is drawn.
type Kind string

const (
	KindChart Kind = "chart"
	KindBars  Kind = "bars"
)

// Render draws matrix as kind for a terminal width columns wide.
func Render(kind Kind, matrix model.Matrix, width int) (string, error) {
	switch kind {
	case KindChart:
		chart, legend := Timeseries(matrix, width)
		return chart + Legend(legend), nil
	case KindBars:
		return Barchart(Latest(matrix), width), nil
	default:
		return "", fmt.Errorf("unknown chart kind %q", kind)
	}
}
