package plot

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Color is an ANSI SGR foreground code. ColorNone leaves a glyph unstyled.
type Color int

const (
	ColorNone Color = 0
	// ColorDim is bright black, used for axis labels and grid ticks.
	ColorDim Color = 90
)

// SeriesPalette is the cyclic series palette: red, green, yellow, blue,
// magenta, cyan.
var SeriesPalette = []Color{31, 32, 33, 34, 35, 36}

// SeriesColor returns the color for a given series index, cycling through the palette.
func SeriesColor(index int) Color {
	return SeriesPalette[index%len(SeriesPalette)]
}

// Lipgloss returns the terminal color carrying the same SGR code.
func (c Color) Lipgloss() lipgloss.TerminalColor {
	switch {
	case c >= 30 && c <= 37:
		return lipgloss.Color(strconv.Itoa(int(c) - 30))
	case c >= 90 && c <= 97:
		return lipgloss.Color(strconv.Itoa(int(c) - 90 + 8))
	default:
		return lipgloss.NoColor{}
	}
}

// Style returns a lipgloss style with c as foreground.
func (c Color) Style() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c.Lipgloss())
}

// SeriesStyle returns a lipgloss style with the foreground color for the given series index.
func SeriesStyle(index int) lipgloss.Style {
	return SeriesColor(index).Style()
}
