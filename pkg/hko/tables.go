package hko

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/spencer-p/tidechart/pkg/metrics"
)

// MaxTables is how many tables ExtractTables reads when not told otherwise.
const MaxTables = 20

// ErrNoTables is returned when a document holds no table elements.
var ErrNoTables = errors.New("no tables found")

// ExtractTables parses every table element of an HTML document, in document
// order, and concatenates the first limit of them (see Concat). Later tables
// are ignored. A limit of zero or less means MaxTables.
func ExtractTables(r io.Reader, limit int) (Table, error) {
	if limit <= 0 {
		limit = MaxTables
	}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Table{}, fmt.Errorf("parsing HTML: %w", err)
	}

	var tables []Table
	doc.Find("table").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if i >= limit {
			return false
		}
		tables = append(tables, parseTable(sel))
		return true
	})
	if len(tables) == 0 {
		return Table{}, ErrNoTables
	}
	metrics.AddTables(len(tables))

	return Concat(tables...), nil
}

// carry is a cell that spills into following rows through rowspan.
type carry struct {
	cell Cell
	th   bool
	rows int
}

// parseTable reads one table element. Rows inside thead, and leading rows made
// only of th cells, become the column labels. Nested tables are left to their
// own parseTable call.
func parseTable(table *goquery.Selection) Table {
	var (
		header  [][]Cell
		body    [][]Cell
		carried = make(map[int]*carry)
	)

	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if !tr.Closest("table").IsSelection(table) {
			return
		}
		cells, allTH := expandRow(tr, carried)
		if len(cells) == 0 {
			return
		}
		inHead := goquery.NodeName(tr.Parent()) == "thead"
		if inHead || (allTH && len(body) == 0) {
			header = append(header, cells)
			return
		}
		body = append(body, cells)
	})

	width := 0
	for _, row := range header {
		width = max(width, len(row))
	}
	for _, row := range body {
		width = max(width, len(row))
	}

	t := Table{Columns: labels(header, width)}
	for _, row := range body {
		for len(row) < width {
			row = append(row, Cell{})
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// expandRow returns the cells of tr with colspan and rowspan applied, and
// whether every cell is a th.
func expandRow(tr *goquery.Selection, carried map[int]*carry) (cells []Cell, allTH bool) {
	allTH = true
	col := 0

	// fill places cells carried down from earlier rows at the current column.
	fill := func() {
		for {
			c, ok := carried[col]
			if !ok {
				return
			}
			cells = append(cells, c.cell)
			allTH = allTH && c.th
			c.rows--
			if c.rows == 0 {
				delete(carried, col)
			}
			col++
		}
	}

	tr.ChildrenFiltered("th, td").Each(func(_ int, td *goquery.Selection) {
		fill()
		cell := NewCell(td.Text())
		th := goquery.NodeName(td) == "th"
		allTH = allTH && th
		rowspan := span(td, "rowspan")
		for k := 0; k < span(td, "colspan"); k++ {
			cells = append(cells, cell)
			if rowspan > 1 {
				carried[col] = &carry{cell: cell, th: th, rows: rowspan - 1}
			}
			col++
		}
	})
	fill()

	return cells, allTH && len(cells) > 0
}

func span(sel *goquery.Selection, attr string) int {
	v, ok := sel.Attr(attr)
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// labels flattens header rows into one label per column. Multiple header rows
// are joined with spaces, blank labels fall back to the column position and
// repeated labels get a ".N" suffix.
func labels(header [][]Cell, width int) []string {
	out := make([]string, width)
	seen := make(map[string]int)
	for j := range out {
		var parts []string
		for _, row := range header {
			if j >= len(row) || !row[j].Valid {
				continue
			}
			if n := len(parts); n > 0 && parts[n-1] == row[j].Text {
				continue
			}
			parts = append(parts, row[j].Text)
		}

		label := strings.Join(parts, " ")
		if label == "" {
			label = positional(j)
		}
		if n, dup := seen[label]; dup {
			seen[label] = n + 1
			label = fmt.Sprintf("%s.%d", label, n+1)
		} else {
			seen[label] = 0
		}
		out[j] = label
	}
	return out
}
