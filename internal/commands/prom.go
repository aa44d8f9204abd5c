package commands

import (
	"fmt"
	"time"

	"github.com/akasprzok/graf/internal/prometheus"
	"github.com/akasprzok/graf/internal/terminal"
)

// PromCmd plots a PromQL expression straight from Prometheus.
type PromCmd struct {
	PrometheusURL string `help:"URL of the Prometheus endpoint." env:"GRAF_PROMETHEUS_URL" name:"prometheus-url" required:""`
	User          string `short:"u" help:"Basic auth credentials as USER:PASS." env:"GRAF_PROMETHEUS_USER"`
	Token         string `short:"t" help:"Bearer token." env:"GRAF_PROMETHEUS_TOKEN"`
	Insecure      bool   `help:"Skip TLS certificate verification."`
	Query         string `arg:"" name:"query" help:"Query to run." required:"true"`

	WindowFlags `embed:""`
}

func (q *PromCmd) Run(ctx *Context) error {
	logger := ctx.Logger.WithField("tag", "Prom")
	rows, cols := terminalSize()
	pl, err := q.WindowFlags.resolve(time.Now(), rows, cols, logger)
	if err != nil {
		return err
	}

	client, err := prometheus.NewClient(prometheus.Config{
		URL:      q.PrometheusURL,
		User:     q.User,
		Token:    q.Token,
		Insecure: q.Insecure,
		Timeout:  ctx.Timeout,
	}, ctx.Logger)
	if err != nil {
		return err
	}

	runCtx, stop := signalContext()
	defer stop()

	if pl.output == OutputPlot {
		return draw(runCtx, ctx, &prometheus.Fetcher{
			Client: client,
			Query:  q.Query,
			Step:   pl.step(),
			Logger: logger,
		}, pl)
	}

	matrix, warnings, err := client.QueryRange(runCtx, q.Query, pl.window.FromTime(), pl.window.ToTime(), pl.step())
	if err != nil {
		return fmt.Errorf("querying prometheus: %w", err)
	}
	if len(matrix) == 0 {
		return terminal.NewWriter(ctx.Stdout, !ctx.NoColor).NoData()
	}
	return writeMatrix(ctx, pl.output, matrix, warnings, pl.cols)
}
