package grid

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Styles controls how Render paints the table.
type Styles struct {
	Border   lipgloss.Style
	Header   lipgloss.Style
	RowLabel lipgloss.Style
	Cell     lipgloss.Style
	Empty    lipgloss.Style
}

// PlainStyles renders without colour, for non-interactive output.
func PlainStyles() Styles {
	return Styles{
		Border:   lipgloss.NewStyle(),
		Header:   lipgloss.NewStyle().Bold(true).Padding(0, 1),
		RowLabel: lipgloss.NewStyle().Padding(0, 1),
		Cell:     lipgloss.NewStyle().Padding(0, 1),
		Empty:    lipgloss.NewStyle().Padding(0, 1),
	}
}

// EntryText formats one entry as a three-line block.
func EntryText(e Entry) string {
	return fmt.Sprintf("%s\n%s | %s\nRoom: %s", e.Course, e.Section, e.Teacher, e.Room)
}

// CellText joins every entry block in the cell, in order.
func CellText(c Cell) string {
	if c.Empty() {
		return ""
	}
	blocks := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		blocks[i] = EntryText(e)
	}
	return strings.Join(blocks, "\n\n")
}

// Render draws the grid as a bordered table: a header row of days, then one
// row per slot labelled in the first column.
func Render(g Grid, styles Styles) string {
	headers := append([]string{""}, g.Days...)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.Border).
		BorderRow(true).
		Headers(headers...)

	for r, slot := range g.Slots {
		row := make([]string, 0, len(g.Days)+1)
		row = append(row, slot)
		for c := range g.Days {
			row = append(row, CellText(g.Rows[r][c]))
		}
		t.Row(row...)
	}

	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return styles.Header
		case col == 0:
			return styles.RowLabel
		case row >= 0 && row < len(g.Rows) && g.Rows[row][col-1].Empty():
			return styles.Empty
		default:
			return styles.Cell
		}
	})
	return t.String()
}
