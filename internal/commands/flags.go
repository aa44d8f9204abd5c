package commands

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/akasprzok/graf/internal/grafana"
	"github.com/akasprzok/graf/internal/instant"
	"github.com/akasprzok/graf/internal/plot"
	"github.com/akasprzok/graf/internal/terminal"
	"github.com/prometheus/common/model"
	"github.com/sirupsen/logrus"
)

var (
	errCredentials = errors.New("exactly one of --user or --token is required")
	errNoURL       = errors.New("a Grafana URL is required")
)

// GrafanaFlags selects and authenticates against a Grafana instance.
type GrafanaFlags struct {
	URL      string `arg:"" optional:"" name:"url" help:"Grafana base URL." env:"GRAF_URL"`
	User     string `short:"u" help:"Basic auth credentials as USER:PASS." env:"GRAF_USER"`
	Token    string `short:"t" help:"Grafana API token." env:"GRAF_TOKEN"`
	Insecure bool   `help:"Skip TLS certificate verification."`
}

func (g GrafanaFlags) check() error {
	if g.URL == "" {
		return errNoURL
	}
	if (g.User == "") == (g.Token == "") {
		return errCredentials
	}
	return nil
}

func (g GrafanaFlags) client(ctx *Context) (grafana.Client, error) {
	return grafana.NewClient(grafana.Config{
		URL:      g.URL,
		User:     g.User,
		Token:    g.Token,
		Insecure: g.Insecure,
		Timeout:  ctx.Timeout,
	}, ctx.Logger)
}

// WindowFlags describe the time window and how it is drawn.
type WindowFlags struct {
	From     string `help:"Window start." default:"now-5m"`
	To       string `help:"Window end." default:"now"`
	Interval string `help:"Seconds between rows, as an integer or a duration like 30s. Defaults to the window span divided by the terminal rows."`
	Follow   bool   `short:"f" help:"Keep rendering new windows every interval. Requires --to now."`
	Rows     int    `help:"Override the detected terminal rows."`
	Cols     int    `help:"Override the detected terminal columns."`
	Output   string `short:"o" help:"Output format." default:"plot" enum:"plot,chart,bars,json,yaml"`
}

// plan is a fully resolved window: every flag parsed against one instant.
type plan struct {
	window   instant.Window
	interval int64
	follow   bool
	geometry plot.Geometry
	cols     int
	output   string
}

func (p plan) maxDataPoints() int {
	return p.geometry.Rows
}

func (p plan) step() time.Duration {
	return time.Duration(p.interval) * time.Second
}

// resolve parses the window flags at now against a terminal of termRows x
// termCols, unless --rows or --cols override it.
func (w WindowFlags) resolve(now time.Time, termRows, termCols int, logger logrus.FieldLogger) (plan, error) {
	from, ok := instant.Parse(w.From, now.Unix())
	if !ok {
		return plan{}, fmt.Errorf("invalid --from %q: %s", w.From, instant.Usage)
	}
	to, ok := instant.Parse(w.To, now.Unix())
	if !ok {
		return plan{}, fmt.Errorf("invalid --to %q: %s", w.To, instant.Usage)
	}

	follow := w.Follow
	if follow && w.To != DefaultTo {
		logger.Warn("-f is only supported with --to now, disabling follow")
		follow = false
	}
	if follow && w.Output != OutputPlot {
		logger.Warnf("-f is only supported with -o %s, disabling follow", OutputPlot)
		follow = false
	}

	if w.Rows > 0 {
		termRows = w.Rows
	}
	if w.Cols > 0 {
		termCols = w.Cols
	}
	geo := plot.NewGeometry(termRows, termCols)

	interval, err := parseInterval(w.Interval)
	if err != nil {
		return plan{}, err
	}
	if interval == 0 {
		interval = max((to-from)/int64(geo.Rows), MinInterval)
	}

	p := plan{
		window:   instant.Window{From: from, To: to},
		interval: interval,
		follow:   follow,
		geometry: geo,
		cols:     termCols,
		output:   w.Output,
	}
	logger.WithFields(logrus.Fields{
		"from":     p.window.From,
		"to":       p.window.To,
		"interval": p.interval,
		"rows":     geo.Rows,
		"cols":     geo.Cols,
		"follow":   p.follow,
	}).Debug("window resolved")
	return p, nil
}

// parseInterval accepts whole seconds or a Prometheus duration. Empty means
// derive it from the window.
func parseInterval(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 1 {
			return 0, fmt.Errorf("invalid --interval %q: must be at least one second", s)
		}
		return n, nil
	}
	d, err := model.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid --interval %q: %w", s, err)
	}
	secs := int64(time.Duration(d) / time.Second)
	if secs < 1 {
		return 0, fmt.Errorf("invalid --interval %q: must be at least one second", s)
	}
	return secs, nil
}

func terminalSize() (rows, cols int) {
	return terminal.Size(os.Stdout)
}
