package output

import (
	"fmt"
	"io"
	"strings"
)

// Columns are padded with spaces and separated by a two-space gutter.
const columnGap = "  "

// Table accumulates rows and renders them with aligned columns. Missing
// trailing cells render as blanks; extra cells widen the table.
type Table struct {
	columns    []string
	rows       [][]string
	hideHeader bool
}

func NewTable(columns ...string) *Table {
	return &Table{columns: columns}
}

// AddRow appends one row of cells.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// SetNoHeader suppresses the column header and its underline.
func (t *Table) SetNoHeader(hide bool) {
	t.hideHeader = hide
}

// Render writes the table to w.
func (t *Table) Render(w io.Writer) error {
	if len(t.columns) == 0 && len(t.rows) == 0 {
		return nil
	}

	widths := t.columnWidths()

	if !t.hideHeader && len(t.columns) > 0 {
		if err := writeCells(w, t.columns, widths); err != nil {
			return err
		}
		rule := make([]string, len(widths))
		for i, width := range widths {
			rule[i] = strings.Repeat("-", width)
		}
		if err := writeCells(w, rule, widths); err != nil {
			return err
		}
	}

	for _, row := range t.rows {
		if err := writeCells(w, row, widths); err != nil {
			return err
		}
	}
	return nil
}

// String renders the table into memory, ignoring write errors.
func (t *Table) String() string {
	var sb strings.Builder
	_ = t.Render(&sb)
	return sb.String()
}

func (t *Table) columnWidths() []int {
	n := len(t.columns)
	for _, row := range t.rows {
		if len(row) > n {
			n = len(row)
		}
	}

	widths := make([]int, n)
	for i, col := range t.columns {
		widths[i] = len(col)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	return widths
}

func writeCells(w io.Writer, cells []string, widths []int) error {
	padded := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		padded[i] = fmt.Sprintf("%-*s", width, cell)
	}
	_, err := fmt.Fprintln(w, strings.Join(padded, columnGap))
	return err
}
