package commands

import (
	"time"

	"github.com/akasprzok/graf/internal/grafana"
	"github.com/akasprzok/graf/internal/picker"
	"github.com/sirupsen/logrus"
)

// PlotCmd plots one target of a Grafana panel.
type PlotCmd struct {
	GrafanaFlags `embed:""`
	WindowFlags  `embed:""`

	Dashboard string `help:"Dashboard UID. Skips the dashboard picker."`
	Panel     string `help:"Panel id or title. Skips the panel picker."`
	RefID     string `name:"ref-id" help:"Target refId. Skips the target picker."`
}

func (p *PlotCmd) Validate() error {
	return p.GrafanaFlags.check()
}

func (p *PlotCmd) Run(ctx *Context) error {
	logger := ctx.Logger.WithField("tag", "Plot")
	rows, cols := terminalSize()
	pl, err := p.WindowFlags.resolve(time.Now(), rows, cols, logger)
	if err != nil {
		return err
	}

	client, err := p.GrafanaFlags.client(ctx)
	if err != nil {
		return err
	}

	runCtx, stop := signalContext()
	defer stop()

	d, err := selectDashboard(runCtx, client, p.Dashboard, picker.Select)
	if err != nil {
		return err
	}
	panel, err := selectPanel(d, p.Panel, picker.Select)
	if err != nil {
		return err
	}
	target, err := selectTarget(panel, p.RefID, picker.Select)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"dashboard": d.Title,
		"panel":     panel.Title,
		"refId":     target.RefID(),
	}).Info("target selected")

	return draw(runCtx, ctx, &grafana.Fetcher{
		Client:        client,
		Target:        target,
		MaxDataPoints: pl.maxDataPoints(),
		Interval:      pl.step(),
	}, pl)
}
