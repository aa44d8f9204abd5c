package stream

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/akasprzok/graf/internal/instant"
	"github.com/akasprzok/graf/internal/plot"
	"github.com/sirupsen/logrus"
)

type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return nil
}

type fakeFetcher struct {
	windows []instant.Window
	fetch   func(call int, w instant.Window) (plot.Matrix, error)
}

func (f *fakeFetcher) Fetch(_ context.Context, w instant.Window) (plot.Matrix, error) {
	f.windows = append(f.windows, w)
	return f.fetch(len(f.windows), w)
}

type fakeSink struct {
	rows   []plot.Row
	noData int
}

func (s *fakeSink) WriteRow(r plot.Row) error {
	s.rows = append(s.rows, r)
	return nil
}

func (s *fakeSink) NoData() error {
	s.noData++
	return nil
}

// matrix builds a single-series matrix with one sample per second from start.
func matrix(start int64, values ...float64) plot.Matrix {
	tl := make([]time.Time, len(values))
	for i := range tl {
		tl[i] = time.Unix(start+int64(i), 0).UTC()
	}
	return plot.Matrix{Timeline: tl, Series: []plot.Series{{Name: "s", Values: values}}}
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

var geometry = plot.Geometry{Rows: 50, Cols: 20}

func TestRunOnce(t *testing.T) {
	fetcher := &fakeFetcher{fetch: func(int, instant.Window) (plot.Matrix, error) {
		return matrix(0, 0, 5, 10), nil
	}}
	sink := &fakeSink{}
	window := instant.Window{From: 0, To: 60}

	s, err := New(fetcher, sink, Config{Window: window, Geometry: geometry}, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(fetcher.windows) != 1 || fetcher.windows[0] != window {
		t.Errorf("fetched windows = %v, want [%v]", fetcher.windows, window)
	}
	if len(sink.rows) != 2 {
		t.Errorf("len(rows) = %d, want 2", len(sink.rows))
	}
	if got := s.Range(); got != (plot.ValueRange{Min: 0, Max: 10}) {
		t.Errorf("Range() = %+v, want 0..10", got)
	}
}

func TestRunOnceNoData(t *testing.T) {
	fetcher := &fakeFetcher{fetch: func(int, instant.Window) (plot.Matrix, error) {
		return plot.Matrix{}, nil
	}}
	sink := &fakeSink{}

	s, _ := New(fetcher, sink, Config{Window: instant.Window{From: 0, To: 60}, Geometry: geometry}, WithLogger(quietLogger()))
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if sink.noData != 1 {
		t.Errorf("noData = %d, want 1", sink.noData)
	}
	if len(sink.rows) != 0 {
		t.Errorf("len(rows) = %d, want 0", len(sink.rows))
	}
	if len(fetcher.windows) != 1 {
		t.Errorf("fetches = %d, want 1", len(fetcher.windows))
	}
}

func TestRunFetchError(t *testing.T) {
	boom := errors.New("connection refused")
	fetcher := &fakeFetcher{fetch: func(int, instant.Window) (plot.Matrix, error) {
		return plot.Matrix{}, boom
	}}

	s, _ := New(fetcher, &fakeSink{}, Config{Window: instant.Window{From: 0, To: 60}, Geometry: geometry}, WithLogger(quietLogger()))
	if err := s.Run(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want %v", err, boom)
	}
}

func TestNewRejectsIntervalInFollowMode(t *testing.T) {
	_, err := New(&fakeFetcher{}, &fakeSink{}, Config{Follow: true, Interval: 0})
	if !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("New() error = %v, want %v", err, ErrInvalidInterval)
	}
	if _, err := New(&fakeFetcher{}, &fakeSink{}, Config{Interval: 0}); err != nil {
		t.Errorf("New() once mode error = %v, want nil", err)
	}
}

func TestRunFollow(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fetcher := &fakeFetcher{fetch: func(call int, w instant.Window) (plot.Matrix, error) {
		switch call {
		case 1:
			return matrix(w.From, 0, 5, 10), nil
		case 2:
			// out of the first frame's range: drawn as gaps, no rescale
			return matrix(w.From, 100, 200, 5), nil
		default:
			cancel()
			return plot.Matrix{}, ctx.Err()
		}
	}}
	sink := &fakeSink{}
	clock := &fakeClock{now: time.Unix(100, 0)}

	s, err := New(fetcher, sink, Config{
		Window:   instant.Window{From: 0, To: 100},
		Interval: 10,
		Follow:   true,
		Geometry: geometry,
	}, WithClock(clock), WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := s.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}

	wantWindows := []instant.Window{{From: 0, To: 100}, {From: 100, To: 110}, {From: 110, To: 120}}
	if len(fetcher.windows) != len(wantWindows) {
		t.Fatalf("windows = %v, want %v", fetcher.windows, wantWindows)
	}
	for i, w := range wantWindows {
		if fetcher.windows[i] != w {
			t.Errorf("window %d = %v, want %v", i, fetcher.windows[i], w)
		}
	}

	if len(clock.sleeps) != 2 || clock.sleeps[0] != 10*time.Second || clock.sleeps[1] != 10*time.Second {
		t.Errorf("sleeps = %v, want [10s 10s]", clock.sleeps)
	}
	if got := s.Range(); got != (plot.ValueRange{Min: 0, Max: 10}) {
		t.Errorf("Range() = %+v, value range must stay fixed", got)
	}
	if got := s.Cursor(); got.RowOffset != 4 || got.Window != (instant.Window{From: 100, To: 110}) {
		t.Errorf("Cursor() = %+v, want offset 4 at window 100-110", got)
	}

	if len(sink.rows) != 4 {
		t.Fatalf("len(rows) = %d, want 4", len(sink.rows))
	}
	// second frame: 100 -> 200 is off range entirely, 200 -> 5 has a gap
	for _, row := range sink.rows[2:] {
		if strings.ContainsAny(row.Body(), ".'-") {
			t.Errorf("row %q draws samples outside the fixed range", row.Body())
		}
	}
}

func TestRunFollowSkipsEmptyWindows(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fetcher := &fakeFetcher{fetch: func(call int, w instant.Window) (plot.Matrix, error) {
		switch call {
		case 1, 3:
			return matrix(w.From, 1, 2), nil
		case 2:
			return plot.Matrix{}, nil
		default:
			cancel()
			return plot.Matrix{}, nil
		}
	}}
	sink := &fakeSink{}
	clock := &fakeClock{now: time.Unix(100, 0)}

	s, _ := New(fetcher, sink, Config{
		Window:   instant.Window{From: 40, To: 100},
		Interval: 10,
		Follow:   true,
		Geometry: geometry,
	}, WithClock(clock), WithLogger(quietLogger()))

	if err := s.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}

	wantWindows := []instant.Window{
		{From: 40, To: 100},
		{From: 100, To: 110},
		{From: 100, To: 120},
		{From: 120, To: 130},
	}
	if len(fetcher.windows) != len(wantWindows) {
		t.Fatalf("windows = %v, want %v", fetcher.windows, wantWindows)
	}
	for i, w := range wantWindows {
		if fetcher.windows[i] != w {
			t.Errorf("window %d = %v, want %v", i, fetcher.windows[i], w)
		}
	}
	if sink.noData != 2 {
		t.Errorf("noData = %d, want 2", sink.noData)
	}
	if len(sink.rows) != 2 {
		t.Errorf("len(rows) = %d, want 2", len(sink.rows))
	}
}

func TestRunFollowCatchesUp(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := &fakeClock{now: time.Unix(100, 0)}
	fetcher := &fakeFetcher{fetch: func(call int, w instant.Window) (plot.Matrix, error) {
		if call == 1 {
			// the first frame took 35s to fetch and draw
			clock.now = time.Unix(135, 0)
			return matrix(w.From, 1, 2), nil
		}
		cancel()
		return plot.Matrix{}, ctx.Err()
	}}

	s, _ := New(fetcher, &fakeSink{}, Config{
		Window:   instant.Window{From: 0, To: 100},
		Interval: 10,
		Follow:   true,
		Geometry: geometry,
	}, WithClock(clock), WithLogger(quietLogger()))

	if err := s.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if got := fetcher.windows[1]; got != (instant.Window{From: 100, To: 130}) {
		t.Errorf("caught-up window = %v, want 100-130", got)
	}
	if len(clock.sleeps) != 0 {
		t.Errorf("sleeps = %v, want none after falling behind", clock.sleeps)
	}
}

func TestRunFollowLabelsContinue(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fetcher := &fakeFetcher{fetch: func(call int, w instant.Window) (plot.Matrix, error) {
		if call <= 3 {
			return matrix(w.From, 1, 2, 3), nil
		}
		cancel()
		return plot.Matrix{}, ctx.Err()
	}}
	sink := &fakeSink{}

	s, _ := New(fetcher, sink, Config{
		Window:   instant.Window{From: 0, To: 100},
		Interval: 10,
		Follow:   true,
		Geometry: geometry,
	}, WithClock(&fakeClock{now: time.Unix(100, 0)}), WithLogger(quietLogger()))
	_ = s.Run(ctx)

	if len(sink.rows) != 6 {
		t.Fatalf("len(rows) = %d, want 6", len(sink.rows))
	}
	for i, row := range sink.rows {
		labelled := strings.TrimSpace(row.Gutter) != ""
		if want := (i+1)%plot.TimeLabelEvery == 1; labelled != want {
			t.Errorf("row %d labelled = %v, want %v", i+1, labelled, want)
		}
	}
}

func TestNextTo(t *testing.T) {
	tests := []struct {
		name                 string
		oldTo, interval, now int64
		want                 int64
	}{
		{"on time", 100, 10, 100, 110},
		{"slightly late", 100, 10, 115, 110},
		{"fell behind", 100, 10, 135, 130},
		{"exactly one interval behind", 100, 10, 120, 110},
		{"far behind", 100, 10, 1000, 990},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextTo(tt.oldTo, tt.interval, tt.now)
			if got != tt.want {
				t.Errorf("NextTo(%d, %d, %d) = %d, want %d", tt.oldTo, tt.interval, tt.now, got, tt.want)
			}
			if got+tt.interval < tt.now {
				t.Errorf("NextTo() = %d still lags now %d by more than one interval", got, tt.now)
			}
			if (got-tt.oldTo)%tt.interval != 0 || got <= tt.oldTo {
				t.Errorf("NextTo() = %d not reachable from %d in %d steps", got, tt.oldTo, tt.interval)
			}
		})
	}
}
