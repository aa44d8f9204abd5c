package charts

import (
	"fmt"
	"strconv"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/akasprzok/graf/internal/plot"
	"github.com/prometheus/common/model"
)

// Barchart draws one horizontal bar per sample.
func Barchart(vector model.Vector, width int) string {
	if len(vector) == 0 {
		return ""
	}

	barData := make([]barchart.BarData, 0, len(vector))
	for i, sample := range vector {
		barData = append(barData, barchart.BarData{
			Label: fmt.Sprintf("%s (%s)", sample.Metric.String(), strconv.FormatFloat(float64(sample.Value), 'g', 6, 64)),
			Values: []barchart.BarValue{
				{Name: sample.Metric.String(), Value: float64(sample.Value), Style: plot.SeriesStyle(i)},
			},
		})
	}

	bc := barchart.New(max(width, MinChartWidth), len(barData)*2, barchart.WithDataSet(barData), barchart.WithHorizontalBars())
	bc.Draw()

	return bc.View()
}

// Latest reduces every stream of matrix to its last finite sample. Streams
// without one are dropped.
func Latest(matrix model.Matrix) model.Vector {
	vector := make(model.Vector, 0, len(matrix))
	for _, stream := range matrix {
		for i := len(stream.Values) - 1; i >= 0; i-- {
			p := stream.Values[i]
			if plot.Present(float64(p.Value)) {
				vector = append(vector, &model.Sample{
					Metric:    stream.Metric,
					Value:     p.Value,
					Timestamp: p.Timestamp,
				})
				break
			}
		}
	}
	return vector
}
