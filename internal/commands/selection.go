package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/akasprzok/graf/internal/grafana"
	"github.com/akasprzok/graf/internal/prometheus"
)

// chooser picks one of rows, like picker.Select.
type chooser func(title string, columns []string, rows [][]string) (int, error)

func selectDashboard(ctx context.Context, client grafana.Client, uid string, choose chooser) (grafana.Dashboard, error) {
	if uid == "" {
		hits, err := client.SearchDashboards(ctx)
		if err != nil {
			return grafana.Dashboard{}, err
		}
		if len(hits) == 0 {
			return grafana.Dashboard{}, grafana.ErrNoDashboards
		}
		i, err := choose("Select a dashboard", dashboardColumns, dashboardRows(hits))
		if err != nil {
			return grafana.Dashboard{}, err
		}
		uid = hits[i].UID
	}
	return client.Dashboard(ctx, uid)
}

func selectPanel(d grafana.Dashboard, key string, choose chooser) (grafana.Panel, error) {
	panels := grafana.QueryablePanels(d.Panels)
	if len(panels) == 0 {
		return grafana.Panel{}, fmt.Errorf("%w in dashboard %q", grafana.ErrNoPanels, d.Title)
	}
	if key != "" {
		return grafana.FindPanel(panels, key)
	}

	rows := make([][]string, len(panels))
	for i, p := range panels {
		rows[i] = []string{strconv.Itoa(p.ID), p.Title, p.Type}
	}
	i, err := choose("Select a panel of "+d.Title, []string{"ID", "Title", "Type"}, rows)
	if err != nil {
		return grafana.Panel{}, err
	}
	return panels[i], nil
}

// selectTarget returns the chosen target with the panel datasource applied.
func selectTarget(p grafana.Panel, refID string, choose chooser) (grafana.Target, error) {
	if len(p.Targets) == 0 {
		return nil, fmt.Errorf("%w in panel %q", grafana.ErrNoTargets, p.Title)
	}
	if refID != "" {
		t, err := grafana.FindTarget(p.Targets, refID)
		if err != nil {
			return nil, err
		}
		return p.QueryTarget(t), nil
	}

	rows := make([][]string, len(p.Targets))
	for i, t := range p.Targets {
		rows[i] = []string{t.RefID(), prometheus.FormatQuery(t.Expr())}
	}
	i, err := choose("Select a target of "+p.Title, []string{"Ref", "Query"}, rows)
	if err != nil {
		return nil, err
	}
	return p.QueryTarget(p.Targets[i]), nil
}

var dashboardColumns = []string{"Title", "Folder", "UID"}

func dashboardRows(hits []grafana.DashboardHit) [][]string {
	rows := make([][]string, len(hits))
	for i, h := range hits {
		rows[i] = []string{h.Title, h.FolderTitle, h.UID}
	}
	return rows
}
