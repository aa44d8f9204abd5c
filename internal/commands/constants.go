package commands

const (
	// DefaultFrom is the default window start.
	DefaultFrom = "now-5m"

	// DefaultTo is the default window end. Follow mode requires it.
	DefaultTo = "now"

	// MinInterval is the floor for the derived follow interval, in seconds.
	MinInterval = 1

	// ChartWidthPadding is the horizontal padding subtracted from terminal width for chart rendering.
	ChartWidthPadding = 6
)

// Output formats.
const (
	OutputPlot  = "plot"
	OutputChart = "chart"
	OutputBars  = "bars"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
	OutputTable = "table"
)
