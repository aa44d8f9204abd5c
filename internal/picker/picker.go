package picker

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"
)

var (
	// ErrAborted is returned when the user quits without choosing.
	ErrAborted = errors.New("selection aborted")
	// ErrNoChoices is returned for an empty row set.
	ErrNoChoices = errors.New("nothing to select")
)

const (
	indexKey    = "__index"
	maxColWidth = 60
	pageSize    = 10
)

var titleStyle = lipgloss.NewStyle().Bold(true)

type Model struct {
	title           string
	table           table.Model
	filterTextInput textinput.Model
	selected        int
	aborted         bool
}

// NewModel builds a filterable table over rows. Each row holds one cell per
// column.
func NewModel(title string, columns []string, rows [][]string) Model {
	return Model{
		title: title,
		table: newTable(columns, rows).
			Filtered(true).
			Focused(true).
			WithFooterVisibility(true).
			WithPageSize(pageSize),
		filterTextInput: textinput.New(),
		selected:        -1,
	}
}

func newTable(columns []string, rows [][]string) table.Model {
	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = len(c)
	}
	tableRows := make([]table.Row, 0, len(rows))
	for i, row := range rows {
		data := table.RowData{indexKey: i}
		for col, cell := range row {
			if col >= len(columns) {
				break
			}
			widths[col] = max(widths[col], len(cell))
			data[columnKey(col)] = cell
		}
		tableRows = append(tableRows, table.NewRow(data))
	}

	tableColumns := make([]table.Column, len(columns))
	for i, c := range columns {
		tableColumns[i] = table.NewColumn(columnKey(i), c, min(widths[i]+1, maxColWidth)).WithFiltered(true)
	}
	return table.New(tableColumns).WithRows(tableRows)
}

func columnKey(i int) string {
	return fmt.Sprintf("col%d", i)
}

// Selected returns the chosen row index, or -1.
func (m Model) Selected() int {
	return m.selected
}

// Aborted reports whether the user quit without choosing.
func (m Model) Aborted() bool {
	return m.aborted
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// global
		if msg.String() == "ctrl+c" {
			m.aborted = true
			return m, tea.Quit
		}
		// event to filter
		if m.filterTextInput.Focused() {
			switch msg.String() {
			case "enter", "esc":
				m.filterTextInput.Blur()
			default:
				m.filterTextInput, _ = m.filterTextInput.Update(msg)
			}
			m.table = m.table.WithFilterInput(m.filterTextInput).WithHighlightedRow(0)

			return m, nil
		}

		switch msg.String() {
		case "/":
			m.filterTextInput.Focus()
		case "q", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			if i, ok := m.table.HighlightedRow().Data[indexKey].(int); ok {
				m.selected = i
				return m, tea.Quit
			}
		default:
			m.table, cmd = m.table.Update(msg)
		}
	}

	return m, cmd
}

func (m Model) View() string {
	body := strings.Builder{}

	body.WriteString(titleStyle.Render(m.title))
	body.WriteString("\n")
	body.WriteString(m.table.View())
	if m.filterTextInput.Focused() || m.filterTextInput.Value() != "" {
		body.WriteString("\nfilter: ")
		body.WriteString(m.filterTextInput.Value())
	}
	body.WriteString("\nPress / + letters to filter, enter to select, and q or ctrl+c to quit")

	return body.String()
}

// Select asks the user to pick one of rows and returns its index. A single
// row is returned without prompting.
func Select(title string, columns []string, rows [][]string) (int, error) {
	switch len(rows) {
	case 0:
		return -1, ErrNoChoices
	case 1:
		return 0, nil
	}

	p := tea.NewProgram(NewModel(title, columns, rows), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return -1, fmt.Errorf("running picker: %w", err)
	}
	m, ok := final.(Model)
	if !ok || m.aborted || m.selected < 0 {
		return -1, ErrAborted
	}
	return m.selected, nil
}

// Table renders rows as a static table.
func Table(columns []string, rows [][]string) string {
	return newTable(columns, rows).View()
}
