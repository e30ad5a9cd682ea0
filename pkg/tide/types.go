package tide

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// Record is one normalized row of the tide table.
type Record struct {
	// Row index in the combined table.
	Index int
	Month int
	Date  int
	// Time of day as published, e.g. "600" or "1830".
	Time string
	// Height in meters, NaN when the cell was blank or not a number.
	Height float64

	// YMD is "YYYY-MM-DD", empty when month or date were not integers.
	YMD string
	// SJ is the zero-padded clock, "HH:MM:00" for well formed times.
	SJ string
	// Timestamp is YMD and SJ parsed together. It is the zero time when
	// they do not parse.
	Timestamp time.Time
}

// Valid reports whether the record can be placed on a time axis.
func (r Record) Valid() bool {
	return !r.Timestamp.IsZero() && !math.IsNaN(r.Height)
}

func (r Record) String() string {
	return fmt.Sprintf("{i: %d, ymd: %s, sj: %s, h: %.2f}", r.Index, r.YMD, r.SJ, r.Height)
}

// Records is a collection of Record in table order.
type Records []Record

// Malformed counts records with a null timestamp.
func (rs Records) Malformed() int {
	n := 0
	for _, r := range rs {
		if r.Timestamp.IsZero() {
			n++
		}
	}
	return n
}

// WriteTimestamps prints the timestamp column, one row per line, with NaT for
// null timestamps.
func (rs Records) WriteTimestamps(w io.Writer) error {
	for _, r := range rs {
		ts := "NaT"
		if !r.Timestamp.IsZero() {
			ts = r.Timestamp.Format(timestampLayout)
		}
		if _, err := fmt.Fprintf(w, "%-6d %19s\n", r.Index, ts); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Name: YMDSJ, Length: %d\n", len(rs))
	return err
}

// Range is a half-open range of table rows, [Start, End).
type Range struct {
	Start, End int
}

func (r Range) String() string {
	return fmt.Sprintf("%d:%d", r.Start, r.End)
}

// Ranges is a list of row ranges, one per dataset. It decodes from the
// environment as "0:29,29:58,58:87".
type Ranges []Range

// DefaultRanges are the three 29 row blocks read from the tide page.
var DefaultRanges = Ranges{{0, 29}, {29, 58}, {58, 87}}

// Decode implements envconfig.Decoder.
func (rs *Ranges) Decode(value string) error {
	parsed, err := ParseRanges(value)
	if err != nil {
		return err
	}
	*rs = parsed
	return nil
}

// ParseRanges reads a comma separated list of start:end pairs.
func ParseRanges(s string) (Ranges, error) {
	var out Ranges
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		bounds := strings.SplitN(part, ":", 2)
		if len(bounds) != 2 {
			return nil, fmt.Errorf("row range %q not in start:end form", part)
		}
		start, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
		if err != nil {
			return nil, fmt.Errorf("row range %q start: %w", part, err)
		}
		end, err := strconv.Atoi(strings.TrimSpace(bounds[1]))
		if err != nil {
			return nil, fmt.Errorf("row range %q end: %w", part, err)
		}
		if start < 0 || end < start {
			return nil, fmt.Errorf("row range %q is empty or negative", part)
		}
		out = append(out, Range{start, end})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no row ranges in %q", s)
	}
	return out, nil
}

// Dataset is a named collection of records. Err is set when the dataset could
// not be built, in which case Records is nil.
type Dataset struct {
	Name    string
	Range   Range
	Records Records
	Err     error
}

// Available reports whether the dataset was built.
func (d Dataset) Available() bool {
	return d.Err == nil
}
