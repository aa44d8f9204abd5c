package prometheus

import (
	"context"
	"slices"
	"time"

	"github.com/akasprzok/graf/internal/instant"
	"github.com/akasprzok/graf/internal/plot"
	"github.com/prometheus/common/model"
	"github.com/sirupsen/logrus"
)

// Fetcher runs one range query per window.
type Fetcher struct {
	Client Client
	Query  string
	Step   time.Duration
	Logger logrus.FieldLogger
}

// Fetch returns the query's series over w, aligned on a shared timeline.
func (f *Fetcher) Fetch(ctx context.Context, w instant.Window) (plot.Matrix, error) {
	step := f.Step
	if step < time.Second {
		step = time.Second
	}
	m, warnings, err := f.Client.QueryRange(ctx, f.Query, w.FromTime(), w.ToTime(), step)
	if err != nil {
		return plot.Matrix{}, err
	}
	if f.Logger != nil {
		for _, warning := range warnings {
			f.Logger.Warn(warning)
		}
	}
	return Matrix(m), nil
}

// Matrix aligns every stream of m to the sorted union of their timestamps.
// Timestamps a stream has no sample for become gaps.
func Matrix(m model.Matrix) plot.Matrix {
	var stamps []model.Time
	seen := make(map[model.Time]struct{})
	for _, stream := range m {
		for _, p := range stream.Values {
			if _, ok := seen[p.Timestamp]; !ok {
				seen[p.Timestamp] = struct{}{}
				stamps = append(stamps, p.Timestamp)
			}
		}
	}
	if len(stamps) == 0 {
		return plot.Matrix{}
	}
	slices.Sort(stamps)

	index := make(map[model.Time]int, len(stamps))
	timeline := make([]time.Time, len(stamps))
	for i, ts := range stamps {
		index[ts] = i
		timeline[i] = ts.Time().UTC()
	}

	series := make([]plot.Series, 0, len(m))
	for _, stream := range m {
		values := make([]float64, len(stamps))
		for i := range values {
			values[i] = plot.Missing
		}
		for _, p := range stream.Values {
			v := float64(p.Value)
			if plot.Present(v) {
				values[index[p.Timestamp]] = v
			}
		}
		series = append(series, plot.Series{
			Name:   stream.Metric.String(),
			Values: values,
		})
	}
	return plot.Matrix{Timeline: timeline, Series: series}
}
