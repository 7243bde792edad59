// Package render draws tables for the terminal with lipgloss.
package render

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"

	"github.com/robochat/simpletable/internal/table"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9B9B9B")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1)

	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5C5C5C"))
)

// Ellipsis fills the cells of the marker row shown when rows are truncated.
const Ellipsis = "…"

// Options controls what Render draws.
type Options struct {
	Limit     int  // maximum number of data rows, 0 means all
	ShowTitle bool // print the table title above the grid when it has one
}

// Render formats t as a bordered grid, cells formatted with fmt.Sprint.
func Render[K comparable, V any](t table.Tabular[K, V], opts Options) string {
	headers := make([]string, t.Width())
	for i, h := range t.Headers() {
		headers[i] = fmt.Sprint(h)
	}

	total := t.Height()
	shown := total
	if opts.Limit > 0 && opts.Limit < total {
		shown = opts.Limit
	}

	rows := make([][]string, 0, shown+1)
	for i, row := range t.All() {
		if i >= shown {
			break
		}
		cells := make([]string, len(row))
		for c, v := range row {
			cells[c] = fmt.Sprint(v)
		}
		rows = append(rows, cells)
	}
	truncated := shown < total
	if truncated {
		marker := make([]string, len(headers))
		for c := range marker {
			marker[c] = Ellipsis
		}
		rows = append(rows, marker)
	}

	grid := lgtable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == lgtable.HeaderRow:
				return headerStyle
			case truncated && row == len(rows)-1:
				return mutedStyle
			default:
				return cellStyle
			}
		})

	out := grid.Render()
	if opts.ShowTitle && t.Title() != "" {
		out = titleStyle.Render(t.Title()) + "\n" + out
	}
	if truncated {
		out += "\n" + fmt.Sprintf("%d of %d rows", shown, total)
	}
	return out
}
