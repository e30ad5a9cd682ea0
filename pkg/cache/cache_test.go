package cache

import (
	"testing"
	"time"
)

func TestPages(t *testing.T) {
	c := NewPages(5 * time.Minute)

	tstart := time.Now()

	c.set("https://example.com/tide", []byte("<table></table>"), tstart)

	got, ok := c.get("https://example.com/tide", tstart.Add(time.Minute))
	if !ok {
		t.Fatalf("failed to get page that should not be expired")
	}
	if string(got) != "<table></table>" {
		t.Errorf("got body %q", got)
	}

	_, ok = c.get("https://example.com/tide", tstart.Add(10*time.Minute))
	if ok {
		t.Errorf("succeeded in getting expired page")
	}

	_, ok = c.get("https://example.com/tide", tstart.Add(time.Minute))
	if ok {
		t.Errorf("succeeded in getting page that was previously evicted")
	}
}

func TestPagesDisabled(t *testing.T) {
	c := NewPages(0)
	if c.Enabled() {
		t.Fatalf("zero TTL cache reports enabled")
	}

	tstart := time.Now()
	c.set("u", []byte("body"), tstart)
	if _, ok := c.get("u", tstart); ok {
		t.Errorf("disabled cache returned a page")
	}

	var nilCache *Pages
	if _, ok := nilCache.Get("u"); ok {
		t.Errorf("nil cache returned a page")
	}
}
