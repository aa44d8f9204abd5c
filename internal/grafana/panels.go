package grafana

import (
	"fmt"
	"strconv"
)

// QueryablePanels flattens row panels and returns the panels that have at
// least one target, in dashboard order.
func QueryablePanels(panels []Panel) []Panel {
	var out []Panel
	for _, p := range panels {
		if len(p.Targets) > 0 {
			out = append(out, p)
		}
		out = append(out, QueryablePanels(p.Panels)...)
	}
	return out
}

// FindPanel matches a panel by numeric id first, then by exact title.
func FindPanel(panels []Panel, idOrTitle string) (Panel, error) {
	if id, err := strconv.Atoi(idOrTitle); err == nil {
		for _, p := range panels {
			if p.ID == id {
				return p, nil
			}
		}
	}
	for _, p := range panels {
		if p.Title == idOrTitle {
			return p, nil
		}
	}
	return Panel{}, fmt.Errorf("%w: %q", ErrPanelNotFound, idOrTitle)
}

// FindTarget matches a target by refId.
func FindTarget(targets []Target, refID string) (Target, error) {
	for _, t := range targets {
		if t.RefID() == refID {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: refId %q", ErrTargetNotFound, refID)
}
