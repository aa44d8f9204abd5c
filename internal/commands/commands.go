package commands

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

type Context struct {
	Timeout time.Duration
	Logger  *logrus.Logger
	Stdout  io.Writer
	NoColor bool
}

var Cli struct {
	Timeout time.Duration `help:"Timeout for each HTTP request." default:"60s"`
	Verbose int           `short:"v" type:"counter" help:"Increase log verbosity (-v info, -vv debug, -vvv trace)."`
	NoColor bool          `name:"no-color" help:"Disable ANSI colors."`

	Plot       PlotCmd       `cmd:"" default:"withargs" help:"Plot a Grafana panel target."`
	Prom       PromCmd       `cmd:"" help:"Plot a PromQL range query."`
	Dashboards DashboardsCmd `cmd:"" help:"List Grafana dashboards."`
}
