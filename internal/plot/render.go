package plot

import (
	"fmt"
	"strings"
	"time"
)

const (
	// GutterWidth is the room reserved left of the body for "15:04:05 ".
	GutterWidth = 9

	// LabelSpacing is the distance in columns between axis labels and grid ticks.
	LabelSpacing = 16

	// TimeLabelEvery is the row cadence of time labels.
	TimeLabelEvery = 5
)

var blankGutter = strings.Repeat(" ", GutterWidth)

// Geometry is the drawable canvas: Rows terminal rows and Cols data columns
// right of the gutter.
type Geometry struct {
	Rows int
	Cols int
}

// NewGeometry derives the canvas from a terminal size.
func NewGeometry(termRows, termCols int) Geometry {
	cols := termCols - GutterWidth
	if cols < 1 {
		cols = 1
	}
	if termRows < 1 {
		termRows = 1
	}
	return Geometry{Rows: termRows, Cols: cols}
}

// Cell is one styled glyph.
type Cell struct {
	Color Color
	Glyph byte
}

// Row is one rendered line: a time label gutter and Cols body cells.
type Row struct {
	Gutter string
	Cells  []Cell
}

// String returns the row without styling.
func (r Row) String() string {
	var b strings.Builder
	b.Grow(len(r.Gutter) + len(r.Cells))
	b.WriteString(r.Gutter)
	for _, c := range r.Cells {
		b.WriteByte(c.Glyph)
	}
	return b.String()
}

// Body returns the glyphs right of the gutter.
func (r Row) Body() string {
	return r.String()[len(r.Gutter):]
}

// Render draws one row per pair of consecutive samples. rowOffset is the
// number of rows drawn by earlier frames of the same stream, so label cadence
// continues across frames.
func Render(q Quantized, timeline []time.Time, rowOffset int, geo Geometry, r ValueRange) []Row {
	if len(timeline) < 2 {
		return nil
	}
	rows := make([]Row, 0, len(timeline)-1)
	for i := 1; i < len(timeline); i++ {
		rows = append(rows, renderRow(q, timeline, i, rowOffset+i, geo, r))
	}
	return rows
}

func renderRow(q Quantized, timeline []time.Time, i, n int, geo Geometry, r ValueRange) Row {
	var hdr string
	if geo.Rows > 0 && n%geo.Rows == 1 {
		hdr = Header(r, geo.Cols)
	}

	gutter := blankGutter
	if n%TimeLabelEvery == 1 {
		gutter = timeLabel(timeline[i])
	}

	cells := make([]Cell, geo.Cols)
	for j := range cells {
		cells[j] = cellAt(q, hdr, i, j)
	}
	return Row{Gutter: gutter, Cells: cells}
}

// cellAt resolves column j of row i: header glyphs first, then the first
// series whose segment touches j, then the grid.
func cellAt(q Quantized, hdr string, i, j int) Cell {
	if j < len(hdr) && hdr[j] != ' ' {
		return Cell{Color: ColorDim, Glyph: hdr[j]}
	}
	for k, cols := range q {
		if glyph, ok := segmentGlyph(cols, i, j); ok {
			return Cell{Color: SeriesColor(k), Glyph: glyph}
		}
	}
	if j%LabelSpacing == 0 {
		return Cell{Color: ColorDim, Glyph: '|'}
	}
	return Cell{Color: ColorNone, Glyph: ' '}
}

// segmentGlyph draws the segment from cols[i-1] to cols[i] at column j.
func segmentGlyph(cols []int, i, j int) (byte, bool) {
	if i >= len(cols) {
		return 0, false
	}
	x, xp := cols[i], cols[i-1]
	if x == NoColumn || xp == NoColumn {
		return 0, false
	}
	switch {
	case (x < j && j < xp) || (xp < j && j < x):
		return '-', true
	case x == j && xp == j:
		return '|', true
	case x == j:
		return '.', true
	case xp == j:
		return '\'', true
	}
	return 0, false
}

// Header lays out value labels every LabelSpacing columns, each as
// " %-15.2f", starting at r.Min.
func Header(r ValueRange, width int) string {
	step := r.Span() / float64(width) * LabelSpacing
	var b strings.Builder
	for k := 0; k <= (width+1)/LabelSpacing; k++ {
		fmt.Fprintf(&b, " %-15.2f", r.Min+step*float64(k))
	}
	return b.String()
}

func timeLabel(t time.Time) string {
	return t.UTC().Format("15:04:05") + " "
}
