package stream

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/akasprzok/graf/internal/instant"
	"github.com/akasprzok/graf/internal/plot"
	"github.com/sirupsen/logrus"
)

// ErrInvalidInterval is returned for a follow cadence below one second.
var ErrInvalidInterval = errors.New("interval must be at least one second")

// Fetcher returns the samples of one window. An empty matrix means the
// source had no data for it; an error is fatal to the stream.
type Fetcher interface {
	Fetch(ctx context.Context, w instant.Window) (plot.Matrix, error)
}

// Sink receives rendered rows, one at a time.
type Sink interface {
	WriteRow(plot.Row) error
	NoData() error
}

// Clock is the scheduler's view of wall-clock time.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Config fixes everything a stream needs before its first fetch.
type Config struct {
	Window   instant.Window
	Interval int64 // seconds between frames in follow mode
	Follow   bool
	Geometry plot.Geometry
}

// Cursor is the state carried from one frame to the next.
type Cursor struct {
	RowOffset int
	Window    instant.Window
}

// Stream renders a window once, or keeps rendering consecutive windows
// aligned to wall-clock time.
type Stream struct {
	fetcher Fetcher
	sink    Sink
	clock   Clock
	logger  logrus.FieldLogger

	follow   bool
	interval int64
	geometry plot.Geometry

	cursor Cursor
	rng    plot.ValueRange
}

// Option configures a Stream.
type Option func(*Stream)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(s *Stream) { s.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Stream) { s.logger = l }
}

// New creates a stream. The interval is only validated in follow mode.
func New(fetcher Fetcher, sink Sink, cfg Config, opts ...Option) (*Stream, error) {
	if cfg.Follow && cfg.Interval < 1 {
		return nil, fmt.Errorf("%w: got %ds", ErrInvalidInterval, cfg.Interval)
	}
	s := &Stream{
		fetcher:  fetcher,
		sink:     sink,
		clock:    realClock{},
		logger:   logrus.WithField("tag", "Stream"),
		follow:   cfg.Follow,
		interval: cfg.Interval,
		geometry: cfg.Geometry,
		cursor:   Cursor{Window: cfg.Window},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Cursor returns the current cursor.
func (s *Stream) Cursor() Cursor {
	return s.cursor
}

// Range returns the value range fixed by the first frame.
func (s *Stream) Range() plot.ValueRange {
	return s.rng
}

// Run fetches and renders until the stream is done. In follow mode it only
// returns on a fetch or output error, or when ctx is cancelled.
func (s *Stream) Run(ctx context.Context) error {
	s.enter(phaseFetching)
	m, err := s.fetcher.Fetch(ctx, s.cursor.Window)
	if err != nil {
		return fmt.Errorf("fetching %d-%d: %w", s.cursor.Window.From, s.cursor.Window.To, err)
	}
	if m.Empty() {
		return s.sink.NoData()
	}

	s.rng = plot.RangeOf(m)
	s.logger.WithFields(logrus.Fields{
		"min":     s.rng.Min,
		"max":     s.rng.Max,
		"logBase": math.Log10(s.rng.Span()),
		"rows":    s.geometry.Rows,
		"cols":    s.geometry.Cols,
	}).Debug("value range fixed")

	for {
		if err := s.draw(m); err != nil {
			return err
		}
		if !s.follow {
			return nil
		}
		s.cursor.RowOffset += len(m.Timeline) - 1

		m, err = s.next(ctx)
		if err != nil {
			return err
		}
	}
}

func (s *Stream) draw(m plot.Matrix) error {
	s.enter(phaseRendering)
	q := plot.Quantize(m, s.rng, s.geometry.Cols)
	for _, row := range plot.Render(q, m.Timeline, s.cursor.RowOffset, s.geometry, s.rng) {
		if err := s.sink.WriteRow(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	s.enter(phaseIdle)
	return nil
}

// next waits for and fetches the window following the cursor. Windows
// without data are reported and the wait repeats with a wider window from the
// same start.
func (s *Stream) next(ctx context.Context) (plot.Matrix, error) {
	from := s.cursor.Window.To
	to := s.cursor.Window.To
	for {
		now := s.clock.Now()
		to = NextTo(to, s.interval, now.Unix())

		if wait := time.Unix(to, 0).Sub(now); wait > 0 {
			s.enter(phaseWaiting)
			s.logger.WithField("wait", wait).Trace("waiting for window end")
			if err := s.clock.Sleep(ctx, wait); err != nil {
				return plot.Matrix{}, err
			}
		}

		s.enter(phaseFetching)
		w := instant.Window{From: from, To: to}
		m, err := s.fetcher.Fetch(ctx, w)
		if err != nil {
			return plot.Matrix{}, fmt.Errorf("fetching %d-%d: %w", w.From, w.To, err)
		}
		if m.Empty() {
			if err := s.sink.NoData(); err != nil {
				return plot.Matrix{}, err
			}
			continue
		}
		s.cursor.Window = w
		return m, nil
	}
}

// NextTo advances a window end by one interval, then keeps adding whole
// intervals while the result lags now by more than one interval.
func NextTo(oldTo, interval, now int64) int64 {
	to := oldTo + interval
	for now > to+interval {
		to += interval
	}
	return to
}
