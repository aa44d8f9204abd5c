package charts

import (
	"fmt"
	"math"
	"strings"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/akasprzok/graf/internal/plot"
	"github.com/prometheus/common/model"
)

var axisStyle = plot.ColorDim.Style()

var labelStyle = plot.ColorDim.Style()

// LegendEntry names one plotted series and its palette slot.
type LegendEntry struct {
	Metric     string
	ColorIndex int
}

// Timeseries draws matrix as a braille line chart and returns the chart and
// its legend separately. Non-finite samples are skipped.
func Timeseries(matrix model.Matrix, width int) (chart string, legend []LegendEntry) {
	if len(matrix) == 0 {
		return "", nil
	}
	width = max(width, MinChartWidth)

	minYValue := math.Inf(1)
	maxYValue := math.Inf(-1)
	for _, stream := range matrix {
		for _, sample := range stream.Values {
			v := float64(sample.Value)
			if !plot.Present(v) {
				continue
			}
			minYValue = math.Min(minYValue, v)
			maxYValue = math.Max(maxYValue, v)
		}
	}
	if minYValue > maxYValue {
		minYValue, maxYValue = 0, 1
	} else if minYValue == maxYValue {
		minYValue--
		maxYValue++
	}

	height := max(width/ChartHeightRatio, MinChartHeight)

	lc := timeserieslinechart.New(width, height)
	lc.AxisStyle = axisStyle
	lc.LabelStyle = labelStyle
	lc.XLabelFormatter = timeserieslinechart.HourTimeLabelFormatter()
	lc.SetYRange(minYValue, maxYValue)     // set expected Y values (values can be less or greater than what is displayed)
	lc.SetViewYRange(minYValue, maxYValue) // setting display Y values will fail unless set expected Y values first
	lc.SetLineStyle(runes.ThinLineStyle)

	for i, stream := range matrix {
		name := stream.Metric.String()
		legend = append(legend, LegendEntry{Metric: name, ColorIndex: i})
		lc.SetDataSetStyle(name, plot.SeriesStyle(i))
		for _, sample := range stream.Values {
			if !plot.Present(float64(sample.Value)) {
				continue
			}
			lc.PushDataSet(name, timeserieslinechart.TimePoint{
				Time:  sample.Timestamp.Time(),
				Value: float64(sample.Value),
			})
		}
	}

	lc.DrawBrailleAll()

	return lc.View(), legend
}

// Legend renders one colored line per entry.
func Legend(entries []LegendEntry) string {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString("\n")
		b.WriteString(plot.SeriesStyle(e.ColorIndex).Render(fmt.Sprintf("%c %s", runes.FullBlock, e.Metric)))
	}
	return b.String()
}
