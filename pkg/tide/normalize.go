package tide

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spencer-p/tidechart/pkg/hko"
)

const timestampLayout = "2006-01-02 15:04:05"

// Columns are the labels given to the selected columns, in order.
var Columns = []string{"Month", "Date", "Time", "Height"}

// ErrColumnMismatch is returned when the table does not have the expected
// columns.
var ErrColumnMismatch = errors.New("column mismatch")

// Options controls how rows become records.
type Options struct {
	// Year stamped on every record; the page only lists month and day.
	Year int
	// Location the timestamps are read in. Nil means UTC.
	Location *time.Location
	// Expect optionally lists header labels that must appear, in order, in
	// the selected columns before they are relabelled.
	Expect []string
}

// Build selects rows r of t and normalizes them.
func Build(t hko.Table, r Range, opts Options) (Records, error) {
	sel, first, err := Select(t, r, opts.Expect)
	if err != nil {
		return nil, err
	}
	return Normalize(sel, first, opts), nil
}

// Select keeps rows [r.Start, r.End) of t and its first len(Columns) columns,
// relabelled to Columns. The range is clipped to the table, so a range past
// the end yields fewer rows or none. first is the index of the first selected
// row in t.
//
// Columns are taken by position. When expect is not empty, each selected
// column label must contain the matching expected label, ignoring case.
func Select(t hko.Table, r Range, expect []string) (sel hko.Table, first int, err error) {
	if len(t.Columns) < len(Columns) {
		return hko.Table{}, 0, fmt.Errorf("%w: table has %d columns, need %d", ErrColumnMismatch, len(t.Columns), len(Columns))
	}
	for i, want := range expect {
		if i >= len(Columns) {
			break
		}
		got := t.Columns[i]
		if !strings.Contains(strings.ToLower(got), strings.ToLower(strings.TrimSpace(want))) {
			return hko.Table{}, 0, fmt.Errorf("%w: column %d is %q, expected %q", ErrColumnMismatch, i, got, want)
		}
	}

	start := min(max(r.Start, 0), t.Len())
	end := min(max(r.End, start), t.Len())

	sel.Columns = append([]string(nil), Columns...)
	for _, row := range t.Rows[start:end] {
		sel.Rows = append(sel.Rows, append([]hko.Cell(nil), row[:len(Columns)]...))
	}
	return sel, start, nil
}

// Normalize converts rows labelled Columns into records. Rows whose date and
// time do not compose into a valid timestamp keep a zero Timestamp; nothing
// here fails.
func Normalize(t hko.Table, first int, opts Options) Records {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	out := make(Records, 0, t.Len())
	for i := range t.Rows {
		rec := Record{
			Index:  first + i,
			Time:   cellString(t.At(i, 2)),
			Height: parseHeight(t.At(i, 3)),
		}
		month, mok := parseInt(t.At(i, 0))
		date, dok := parseInt(t.At(i, 1))
		rec.Month, rec.Date = month, date
		if mok && dok {
			rec.YMD = YMDString(opts.Year, month, date)
		}
		rec.SJ = ClockString(rec.Time)
		if ts, err := ParseTimestamp(rec.YMD, rec.SJ, loc); err == nil {
			rec.Timestamp = ts
		}
		out = append(out, rec)
	}
	return out
}

// ClockString turns a published time such as "600" into "06:00:00": the text
// is left padded with zeros to four characters, the first two become the hour
// and the rest the minutes.
func ClockString(s string) string {
	if n := len(s); n < 4 {
		s = strings.Repeat("0", 4-n) + s
	}
	return s[:2] + ":" + s[2:] + ":00"
}

// YMDString formats a date as "YYYY-MM-DD".
func YMDString(year, month, date int) string {
	return fmt.Sprintf("%d-%02d-%02d", year, month, date)
}

// ParseTimestamp parses "YMD SJ" under the fixed "2006-01-02 15:04:05" layout.
func ParseTimestamp(ymd, sj string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(timestampLayout, ymd+" "+sj, loc)
}

// cellString renders a cell the way a numeric column prints: integral numbers
// lose leading zeros and decimals, null cells read "nan".
func cellString(c hko.Cell) string {
	if !c.Valid {
		return "nan"
	}
	if f, err := strconv.ParseFloat(c.Text, 64); err == nil && f == math.Trunc(f) && !math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return c.Text
}

func parseInt(c hko.Cell) (int, bool) {
	if !c.Valid {
		return 0, false
	}
	f, err := strconv.ParseFloat(c.Text, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

func parseHeight(c hko.Cell) float64 {
	if !c.Valid {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(c.Text, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
