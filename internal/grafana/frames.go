package grafana

import (
	"math"
	"strconv"
	"time"

	"github.com/akasprzok/graf/internal/plot"
	"github.com/prometheus/common/model"
)

// Matrix aligns the frames of one result on the time column of the first
// frame. Every non-time field of every frame becomes a series; values that
// are null, non-numeric or not finite become gaps.
func Matrix(frames []Frame) plot.Matrix {
	if len(frames) == 0 {
		return plot.Matrix{}
	}

	first := frames[0]
	tcol := timeColumn(first)
	if tcol >= len(first.Data.Values) {
		return plot.Matrix{}
	}
	timeline := make([]time.Time, len(first.Data.Values[tcol]))
	for i, v := range first.Data.Values[tcol] {
		timeline[i] = toTime(v)
	}

	var series []plot.Series
	for _, f := range frames {
		tc := timeColumn(f)
		for col, values := range f.Data.Values {
			if col == tc || !numeric(f, col) {
				continue
			}
			series = append(series, plot.Series{
				Name:   seriesName(f, col),
				Values: align(values, len(timeline)),
			})
		}
	}
	return plot.Matrix{Timeline: timeline, Series: series}
}

// timeColumn returns the index of the first time field, 0 without a schema.
func timeColumn(f Frame) int {
	for i, field := range f.Schema.Fields {
		if field.Type == "time" {
			return i
		}
	}
	return 0
}

func numeric(f Frame, col int) bool {
	if col >= len(f.Schema.Fields) {
		return true
	}
	switch f.Schema.Fields[col].Type {
	case "number", "":
		return true
	default:
		return false
	}
}

func align(values []any, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = plot.Missing
		if i < len(values) {
			out[i] = toFloat(values[i])
		}
	}
	return out
}

func toFloat(v any) float64 {
	var f float64
	switch v := v.(type) {
	case float64:
		f = v
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return plot.Missing
		}
		f = parsed
	default:
		return plot.Missing
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return plot.Missing
	}
	return f
}

// toTime reads epoch milliseconds.
func toTime(v any) time.Time {
	ms, ok := v.(float64)
	if !ok {
		return time.Unix(0, 0).UTC()
	}
	return model.Time(int64(ms)).Time().UTC()
}

func seriesName(f Frame, col int) string {
	if col >= len(f.Schema.Fields) {
		return f.Schema.Name
	}
	field := f.Schema.Fields[col]
	if field.Config != nil {
		if field.Config.DisplayNameFromDS != "" {
			return field.Config.DisplayNameFromDS
		}
		if field.Config.DisplayName != "" {
			return field.Config.DisplayName
		}
	}
	if len(field.Labels) > 0 {
		metric := make(model.Metric, len(field.Labels)+1)
		for k, v := range field.Labels {
			metric[model.LabelName(k)] = model.LabelValue(v)
		}
		if field.Name != "" {
			metric[model.MetricNameLabel] = model.LabelValue(field.Name)
		}
		return metric.String()
	}
	if f.Schema.Name != "" {
		return f.Schema.Name
	}
	return field.Name
}
