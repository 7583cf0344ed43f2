package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// table renders aligned columns. Widths are measured with runewidth so
// category emoji and other wide runes keep the columns straight.
type table struct {
	columns []column
	rows    [][]string
}

type column struct {
	title      string
	rightAlign bool
}

func newTable(columns ...column) *table {
	return &table{columns: columns}
}

func (t *table) addRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// render writes the table with a header row and a dim separator line.
func (t *table) render(w io.Writer) {
	widths := make([]int, len(t.columns))
	for i, c := range t.columns {
		widths[i] = runewidth.StringWidth(c.title)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && runewidth.StringWidth(cell) > widths[i] {
				widths[i] = runewidth.StringWidth(cell)
			}
		}
	}

	headers := make([]string, len(t.columns))
	for i, c := range t.columns {
		headers[i] = pad(c.title, widths[i], c.rightAlign)
	}
	_, _ = fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(strings.Join(headers, "  "), " ")))

	separators := make([]string, len(t.columns))
	for i := range t.columns {
		separators[i] = strings.Repeat("─", widths[i])
	}
	_, _ = fmt.Fprintln(w, dimStyle.Render(strings.Join(separators, "  ")))

	for _, row := range t.rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = pad(cell, widths[i], t.columns[i].rightAlign)
		}
		_, _ = fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " "))
	}
}

func pad(s string, width int, rightAlign bool) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	if rightAlign {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}
