package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/akasprzok/graf/internal/plot"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const (
	// DefaultWidth is the fallback terminal width when detection fails.
	DefaultWidth = 80

	// DefaultHeight is the fallback terminal height when detection fails.
	DefaultHeight = 24
)

// Size returns the rows and columns of the terminal behind f, falling back to
// DefaultHeight x DefaultWidth when f is not a terminal.
func Size(f *os.File) (rows, cols int) {
	cols, rows, err := term.GetSize(int(f.Fd()))
	if err != nil || cols <= 0 || rows <= 0 {
		return DefaultHeight, DefaultWidth
	}
	return rows, cols
}

// Writer prints plot rows as ANSI colored text.
type Writer struct {
	out      io.Writer
	renderer *lipgloss.Renderer
	styles   map[plot.Color]lipgloss.Style
}

// NewWriter returns a Writer on out. Colors are always emitted when color is
// true, whether or not out is a terminal.
func NewWriter(out io.Writer, color bool) *Writer {
	r := lipgloss.NewRenderer(out)
	if color {
		r.SetColorProfile(termenv.ANSI)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Writer{
		out:      out,
		renderer: r,
		styles:   make(map[plot.Color]lipgloss.Style),
	}
}

// WriteRow prints one row and a newline.
func (w *Writer) WriteRow(row plot.Row) error {
	var b strings.Builder
	b.WriteString(row.Gutter)
	for _, c := range row.Cells {
		if c.Color == plot.ColorNone {
			b.WriteByte(c.Glyph)
			continue
		}
		b.WriteString(w.style(c.Color).Render(string(c.Glyph)))
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w.out, b.String())
	return err
}

// NoData reports a window without frames.
func (w *Writer) NoData() error {
	_, err := fmt.Fprintln(w.out, "no data")
	return err
}

func (w *Writer) style(c plot.Color) lipgloss.Style {
	s, ok := w.styles[c]
	if !ok {
		s = w.renderer.NewStyle().Foreground(c.Lipgloss())
		w.styles[c] = s
	}
	return s
}
