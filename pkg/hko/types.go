package hko

import (
	"strconv"
	"strings"
)

// Cell is a single table cell. Empty cells are null.
type Cell struct {
	Text  string
	Valid bool
}

// NewCell builds a cell from raw element text, collapsing whitespace.
func NewCell(text string) Cell {
	text = strings.Join(strings.Fields(text), " ")
	return Cell{Text: text, Valid: text != ""}
}

func (c Cell) String() string {
	if !c.Valid {
		return "NaN"
	}
	return c.Text
}

// Table is a parsed HTML table. Every row has exactly len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]Cell
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// At returns the cell at row i, column j, or a null cell when out of range.
func (t Table) At(i, j int) Cell {
	if i < 0 || i >= len(t.Rows) || j < 0 || j >= len(t.Rows[i]) {
		return Cell{}
	}
	return t.Rows[i][j]
}

// Concat stacks tables into one. Columns are matched by label; a label
// missing from a table leaves null cells in that table's rows. Rows keep
// their order and are renumbered from zero.
func Concat(tables ...Table) Table {
	var out Table
	index := make(map[string]int)
	for _, t := range tables {
		for _, label := range t.Columns {
			if _, ok := index[label]; !ok {
				index[label] = len(out.Columns)
				out.Columns = append(out.Columns, label)
			}
		}
	}

	for _, t := range tables {
		for _, row := range t.Rows {
			combined := make([]Cell, len(out.Columns))
			for j, cell := range row {
				if j < len(t.Columns) {
					combined[index[t.Columns[j]]] = cell
				}
			}
			out.Rows = append(out.Rows, combined)
		}
	}
	return out
}

// positional is the label given to a column that has no header text.
func positional(j int) string {
	return strconv.Itoa(j)
}
