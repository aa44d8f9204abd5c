package commands

import (
	"encoding/json"
	"fmt"

	"github.com/akasprzok/graf/internal/grafana"
	"github.com/akasprzok/graf/internal/picker"
	"gopkg.in/yaml.v2"
)

// DashboardsCmd lists the dashboards visible to the credentials.
type DashboardsCmd struct {
	GrafanaFlags `embed:""`

	Output string `name:"output" short:"o" help:"Output format." default:"table" enum:"table,json,yaml"`
}

func (d *DashboardsCmd) Validate() error {
	return d.GrafanaFlags.check()
}

func (d *DashboardsCmd) Run(ctx *Context) error {
	client, err := d.GrafanaFlags.client(ctx)
	if err != nil {
		return err
	}

	runCtx, stop := signalContext()
	defer stop()

	hits, err := client.SearchDashboards(runCtx)
	if err != nil {
		return err
	}
	return writeDashboards(ctx, d.Output, hits)
}

func writeDashboards(ctx *Context, output string, hits []grafana.DashboardHit) error {
	switch output {
	case OutputJSON:
		jsonBytes, err := json.MarshalIndent(hits, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling dashboards to JSON: %w", err)
		}
		_, err = fmt.Fprintln(ctx.Stdout, string(jsonBytes))
		return err
	case OutputYAML:
		yamlBytes, err := yaml.Marshal(hits)
		if err != nil {
			return fmt.Errorf("marshalling dashboards to YAML: %w", err)
		}
		_, err = fmt.Fprint(ctx.Stdout, string(yamlBytes))
		return err
	default:
		if len(hits) == 0 {
			_, err := fmt.Fprintln(ctx.Stdout, grafana.ErrNoDashboards)
			return err
		}
		_, err := fmt.Fprintln(ctx.Stdout, picker.Table(dashboardColumns, dashboardRows(hits)))
		return err
	}
}
