package tide

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/spencer-p/tidechart/pkg/hko"
)

func row(texts ...string) []hko.Cell {
	out := make([]hko.Cell, len(texts))
	for i, s := range texts {
		out[i] = hko.NewCell(s)
	}
	return out
}

func TestClockStringAllTimes(t *testing.T) {
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m++ {
			hhmm := fmt.Sprintf("%02d%02d", h, m)
			want := fmt.Sprintf("%02d:%02d:00", h, m)
			if got := ClockString(hhmm); got != want {
				t.Fatalf("ClockString(%q) = %q, want %q", hhmm, got, want)
			}
			ts, err := ParseTimestamp("2024-03-15", want, time.UTC)
			if err != nil {
				t.Fatalf("ParseTimestamp(%q) error = %v", want, err)
			}
			if ts.Hour() != h || ts.Minute() != m {
				t.Fatalf("ParseTimestamp(%q) = %s", want, ts)
			}
		}
	}
}

func TestClockStringPadding(t *testing.T) {
	table := []struct {
		in, want string
	}{
		{"600", "06:00:00"},
		{"28", "00:28:00"},
		{"5", "00:05:00"},
		{"", "00:00:00"},
		{"nan", "0n:an:00"},
		{"12345", "12:345:00"},
	}
	for _, tc := range table {
		t.Run(tc.in, func(t *testing.T) {
			if got := ClockString(tc.in); got != tc.want {
				t.Errorf("ClockString(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	hk := time.FixedZone("HKT", 8*60*60)
	tbl := hko.Table{
		Columns: Columns,
		Rows: [][]hko.Cell{
			row("1", "5", "600", "1.2"),
			row("1", "5", "1830", "2.4"),
			row("02", "29", "0028", "0.9"),
			row("2", "30", "1200", "1.0"),  // no such day
			row("1", "6", "2460", "1.1"),   // no such minute
			row("1", "6", "", "1.1"),       // blank time
			{{}, hko.NewCell("7"), hko.NewCell("900"), hko.NewCell("x")},
			row("1.0", "8", "905.0", "1.3"),
		},
	}

	got := Normalize(tbl, 58, Options{Year: 2024, Location: hk})

	want := Records{{
		Index: 58, Month: 1, Date: 5, Time: "600", Height: 1.2,
		YMD: "2024-01-05", SJ: "06:00:00",
		Timestamp: time.Date(2024, time.January, 5, 6, 0, 0, 0, hk),
	}, {
		Index: 59, Month: 1, Date: 5, Time: "1830", Height: 2.4,
		YMD: "2024-01-05", SJ: "18:30:00",
		Timestamp: time.Date(2024, time.January, 5, 18, 30, 0, 0, hk),
	}, {
		Index: 60, Month: 2, Date: 29, Time: "28", Height: 0.9,
		YMD: "2024-02-29", SJ: "00:28:00",
		Timestamp: time.Date(2024, time.February, 29, 0, 28, 0, 0, hk),
	}, {
		Index: 61, Month: 2, Date: 30, Time: "1200", Height: 1.0,
		YMD: "2024-02-30", SJ: "12:00:00",
	}, {
		Index: 62, Month: 1, Date: 6, Time: "2460", Height: 1.1,
		YMD: "2024-01-06", SJ: "24:60:00",
	}, {
		Index: 63, Month: 1, Date: 6, Time: "nan", Height: 1.1,
		YMD: "2024-01-06", SJ: "0n:an:00",
	}, {
		Index: 64, Month: 0, Date: 7, Time: "900", Height: math.NaN(),
		SJ: "09:00:00",
	}, {
		Index: 65, Month: 1, Date: 8, Time: "905", Height: 1.3,
		YMD: "2024-01-08", SJ: "09:05:00",
		Timestamp: time.Date(2024, time.January, 8, 9, 5, 0, 0, hk),
	}}

	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b float64) bool {
		return a == b || (math.IsNaN(a) && math.IsNaN(b))
	})); diff != "" {
		t.Errorf("unexpected records (-want,+got):\n%s", diff)
	}

	if n := got.Malformed(); n != 4 {
		t.Errorf("Malformed() = %d, want 4", n)
	}

	// timestamps are null exactly when YMD+SJ does not parse
	for _, r := range got {
		_, err := ParseTimestamp(r.YMD, r.SJ, hk)
		if (err != nil) != r.Timestamp.IsZero() {
			t.Errorf("record %d: parse error %v but timestamp %v", r.Index, err, r.Timestamp)
		}
	}
}

func TestSelect(t *testing.T) {
	var tbl hko.Table
	tbl.Columns = []string{"MM", "DD", "Time", "Height(m)", "Time.1"}
	for i := 0; i < 40; i++ {
		tbl.Rows = append(tbl.Rows, row("1", fmt.Sprint(i+1), "600", "1.0", "1800"))
	}

	table := []struct {
		name      string
		r         Range
		wantFirst int
		wantLen   int
	}{
		{"first block", Range{0, 29}, 0, 29},
		{"short block", Range{29, 58}, 29, 11},
		{"past the end", Range{58, 87}, 40, 0},
		{"negative start", Range{-5, 3}, 0, 3},
	}
	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			sel, first, err := Select(tbl, tc.r, nil)
			if err != nil {
				t.Fatalf("Select() error = %v", err)
			}
			if first != tc.wantFirst || sel.Len() != tc.wantLen {
				t.Errorf("Select() = first %d len %d, want first %d len %d", first, sel.Len(), tc.wantFirst, tc.wantLen)
			}
			if diff := cmp.Diff(Columns, sel.Columns); diff != "" {
				t.Errorf("columns not relabelled (-want,+got):\n%s", diff)
			}
			for _, r := range sel.Rows {
				if len(r) != len(Columns) {
					t.Fatalf("row has %d cells, want %d", len(r), len(Columns))
				}
			}
		})
	}
}

func TestSelectHeaders(t *testing.T) {
	tbl := hko.Table{
		Columns: []string{"MM", "DD", "Time", "Height(m)"},
		Rows:    [][]hko.Cell{row("1", "1", "600", "1.0")},
	}

	if _, _, err := Select(tbl, Range{0, 1}, []string{"mm", "dd", "time", "height"}); err != nil {
		t.Errorf("Select() with matching headers error = %v", err)
	}

	_, _, err := Select(tbl, Range{0, 1}, []string{"mm", "dd", "height", "time"})
	if !errors.Is(err, ErrColumnMismatch) {
		t.Errorf("Select() with swapped headers error = %v, want ErrColumnMismatch", err)
	}

	narrow := hko.Table{Columns: []string{"0", "1"}, Rows: [][]hko.Cell{row("1", "2")}}
	if _, _, err := Select(narrow, Range{0, 1}, nil); !errors.Is(err, ErrColumnMismatch) {
		t.Errorf("Select() on two columns error = %v, want ErrColumnMismatch", err)
	}
}

func TestParseRanges(t *testing.T) {
	got, err := ParseRanges("0:29, 29:58,58:87")
	if err != nil {
		t.Fatalf("ParseRanges() error = %v", err)
	}
	if diff := cmp.Diff(DefaultRanges, got); diff != "" {
		t.Errorf("unexpected ranges (-want,+got):\n%s", diff)
	}

	for _, bad := range []string{"", "1-2", "a:3", "5:2", "-1:4"} {
		if _, err := ParseRanges(bad); err == nil {
			t.Errorf("ParseRanges(%q) succeeded", bad)
		}
	}

	var rs Ranges
	if err := rs.Decode("3:4"); err != nil || len(rs) != 1 || rs[0] != (Range{3, 4}) {
		t.Errorf("Decode(3:4) = %v, %v", rs, err)
	}
}

func TestWriteTimestamps(t *testing.T) {
	rs := Records{
		{Index: 58, Timestamp: time.Date(2024, time.January, 1, 6, 0, 0, 0, time.UTC)},
		{Index: 59},
	}
	var b strings.Builder
	if err := rs.WriteTimestamps(&b); err != nil {
		t.Fatalf("WriteTimestamps() error = %v", err)
	}
	want := "58     2024-01-01 06:00:00\n" +
		"59                     NaT\n" +
		"Name: YMDSJ, Length: 2\n"
	if diff := cmp.Diff(want, b.String()); diff != "" {
		t.Errorf("unexpected dump (-want,+got):\n%s", diff)
	}
}
