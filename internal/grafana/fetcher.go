package grafana

import (
	"context"
	"errors"
	"time"

	"github.com/akasprzok/graf/internal/instant"
	"github.com/akasprzok/graf/internal/plot"
)

// Fetcher queries one panel target per window.
type Fetcher struct {
	Client        Client
	Target        Target
	MaxDataPoints int
	Interval      time.Duration
}

// Fetch returns the target's frames for w. A missing result or a result
// without frames yields an empty matrix.
func (f *Fetcher) Fetch(ctx context.Context, w instant.Window) (plot.Matrix, error) {
	target := f.Target.with(map[string]any{
		"maxDataPoints": f.MaxDataPoints,
		"intervalMs":    f.Interval.Milliseconds(),
	})
	resp, err := f.Client.Query(ctx, NewQueryRequest(target, w.From, w.To))
	if err != nil {
		return plot.Matrix{}, err
	}

	res, ok := resp.Results[f.Target.RefID()]
	if !ok {
		return plot.Matrix{}, nil
	}
	if res.Error != "" {
		return plot.Matrix{}, errors.New(res.Error)
	}
	return Matrix(res.Frames), nil
}
