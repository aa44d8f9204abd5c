package grafana

import "errors"

var (
	// ErrNoDashboards is returned when the search finds nothing to select.
	ErrNoDashboards = errors.New("no dashboards found")

	// ErrNoPanels is returned for a dashboard without queryable panels.
	ErrNoPanels = errors.New("dashboard has no panels with targets")

	// ErrNoTargets is returned for a panel without targets.
	ErrNoTargets = errors.New("panel has no targets")

	// ErrPanelNotFound is returned when no panel matches an id or title.
	ErrPanelNotFound = errors.New("panel not found")

	// ErrTargetNotFound is returned when no target matches a refId.
	ErrTargetNotFound = errors.New("target not found")
)
