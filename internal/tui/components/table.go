package components

import (
	"strings"

	"github.com/Dicklesworthstone/agentsense/internal/tui/theme"
	"github.com/charmbracelet/lipgloss"
)

// Column defines one table column.
type Column struct {
	Header   string
	Width    int // Fixed width (0 = auto)
	MinWidth int
	MaxWidth int
	Align    lipgloss.Position
}

// Table renders rows of strings in a styled grid.
type Table struct {
	Columns     []Column
	Rows        [][]string
	SelectedRow int
	ShowHeader  bool
	Striped     bool
}

// NewTable creates a table with the given columns.
func NewTable(columns []Column) *Table {
	return &Table{
		Columns:     columns,
		ShowHeader:  true,
		Striped:     true,
		SelectedRow: -1,
	}
}

// AddRow appends one row.
func (t *Table) AddRow(cells ...string) *Table {
	t.Rows = append(t.Rows, cells)
	return t
}

// WithRows replaces all rows.
func (t *Table) WithRows(rows [][]string) *Table {
	t.Rows = rows
	return t
}

// WithSelection highlights the row at idx.
func (t *Table) WithSelection(idx int) *Table {
	t.SelectedRow = idx
	return t
}

// WithoutStripes disables row striping.
func (t *Table) WithoutStripes() *Table {
	t.Striped = false
	return t
}

// Render renders the table.
func (t *Table) Render() string {
	th := theme.Current

	if len(t.Columns) == 0 {
		return ""
	}

	widths := t.calculateWidths()
	var lines []string

	if t.ShowHeader {
		headerStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(th.Blue)

		var headerCells []string
		for i, col := range t.Columns {
			headerCells = append(headerCells, headerStyle.Render(t.padCell(col.Header, widths[i], col.Align)))
		}
		lines = append(lines, strings.Join(headerCells, " "))

		sepStyle := lipgloss.NewStyle().Foreground(th.Overlay0)
		lines = append(lines, sepStyle.Render(strings.Repeat("─", t.totalWidth(widths))))
	}

	for rowIdx, row := range t.Rows {
		baseStyle := lipgloss.NewStyle().Foreground(th.Text)
		if rowIdx == t.SelectedRow {
			baseStyle = baseStyle.Background(th.Surface1).Bold(true)
		} else if t.Striped && rowIdx%2 == 1 {
			baseStyle = baseStyle.Background(th.Surface0)
		}

		var cells []string
		for i, col := range t.Columns {
			content := ""
			if i < len(row) {
				content = row[i]
			}
			cells = append(cells, baseStyle.Render(t.padCell(content, widths[i], col.Align)))
		}
		lines = append(lines, strings.Join(cells, " "))
	}

	return strings.Join(lines, "\n")
}

// calculateWidths sizes auto columns by content, bounded by Min/MaxWidth.
func (t *Table) calculateWidths() []int {
	widths := make([]int, len(t.Columns))

	for i, col := range t.Columns {
		if col.Width > 0 {
			widths[i] = col.Width
		} else {
			widths[i] = len(col.Header)
		}
		if col.MinWidth > 0 && widths[i] < col.MinWidth {
			widths[i] = col.MinWidth
		}
	}

	for _, row := range t.Rows {
		for i, cell := range row {
			if i >= len(widths) || t.Columns[i].Width > 0 {
				continue
			}
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	for i, col := range t.Columns {
		if col.MaxWidth > 0 && widths[i] > col.MaxWidth {
			widths[i] = col.MaxWidth
		}
	}

	return widths
}

func (t *Table) totalWidth(widths []int) int {
	total := 0
	for _, w := range widths {
		total += w
	}
	if len(widths) > 1 {
		total += len(widths) - 1
	}
	return total
}

// padCell pads or truncates a cell to width with the given alignment.
func (t *Table) padCell(content string, width int, align lipgloss.Position) string {
	if len(content) > width {
		if width > 3 {
			return content[:width-3] + "..."
		}
		return content[:width]
	}

	padding := width - len(content)
	switch align {
	case lipgloss.Right:
		return strings.Repeat(" ", padding) + content
	case lipgloss.Center:
		left := padding / 2
		return strings.Repeat(" ", left) + content + strings.Repeat(" ", padding-left)
	default:
		return content + strings.Repeat(" ", padding)
	}
}

// RenderTable is a convenience wrapper for one-shot rendering.
func RenderTable(columns []Column, rows [][]string) string {
	return NewTable(columns).WithRows(rows).Render()
}
