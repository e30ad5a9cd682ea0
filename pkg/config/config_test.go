package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/spencer-p/tidechart/pkg/tide"
)

func TestLoadDefaults(t *testing.T) {
	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Config{
		URL:         "https://www.hko.gov.hk/tide/eTPKtext2024.html",
		Year:        2024,
		Ranges:      tide.DefaultRanges,
		MaxTables:   20,
		Samples:     500,
		Timezone:    "Asia/Hong_Kong",
		Timeout:     30 * time.Second,
		ChartWidth:  100,
		ChartHeight: 20,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected defaults (-want,+got):\n%s", diff)
	}
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("TIDECHART_YEAR", "2025")
	t.Setenv("TIDECHART_RANGES", "0:10,10:20")
	t.Setenv("TIDECHART_EXPECT_HEADERS", "MM,DD,Time,Height")
	t.Setenv("TIDECHART_CACHE_TTL", "1h")
	t.Setenv("TIDECHART_TIMEZONE", "UTC")

	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Year != 2025 || got.CacheTTL != time.Hour {
		t.Errorf("Load() = %+v", got)
	}
	if diff := cmp.Diff(tide.Ranges{{Start: 0, End: 10}, {Start: 10, End: 20}}, got.Ranges); diff != "" {
		t.Errorf("unexpected ranges (-want,+got):\n%s", diff)
	}

	opts, err := got.TideOptions()
	if err != nil {
		t.Fatalf("TideOptions() error = %v", err)
	}
	if diff := cmp.Diff([]string{"MM", "DD", "Time", "Height"}, opts.Expect); diff != "" {
		t.Errorf("unexpected headers (-want,+got):\n%s", diff)
	}
	if opts.Location != time.UTC {
		t.Errorf("location = %v, want UTC", opts.Location)
	}
}

func TestLoadInvalid(t *testing.T) {
	table := []struct {
		key, value string
	}{
		{"TIDECHART_RANGES", "29-58"},
		{"TIDECHART_TIMEZONE", "Nowhere/Atlantis"},
		{"TIDECHART_SAMPLES", "1"},
		{"TIDECHART_YEAR", "twenty"},
	}
	for _, tc := range table {
		t.Run(tc.key, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%q succeeded", tc.key, tc.value)
			}
		})
	}
}
