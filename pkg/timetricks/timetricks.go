package timetricks

import (
	"time"
)

const dayFormat = "2006-01-02"

// SameDay reports whether t and t2 fall on the same calendar day in t's
// location.
func SameDay(t time.Time, t2 time.Time) bool {
	return UniqueDay(t) == UniqueDay(t2.In(t.Location()))
}

// UniqueDay returns a string representation of t that is unique by the day.
// For instance, two seperate times on the same calendar day return identical
// strings.
func UniqueDay(t time.Time) string {
	return t.Format(dayFormat)
}

// TrimClock returns midnight of t's day.
func TrimClock(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// CeilStep returns the first time at or after t that is a whole number of
// steps past midnight. Steps that do not divide a day still count from
// midnight of t's day.
func CeilStep(t time.Time, step time.Duration) time.Time {
	if step <= 0 {
		return t
	}
	midnight := TrimClock(t)
	n := t.Sub(midnight) / step
	c := midnight.Add(n * step)
	if c.Before(t) {
		c = c.Add(step)
	}
	return c
}

// Steps lists the times from CeilStep(start, step) up to and including end,
// step apart.
func Steps(start, end time.Time, step time.Duration) []time.Time {
	if step <= 0 {
		return nil
	}
	var out []time.Time
	for t := CeilStep(start, step); !t.After(end); t = t.Add(step) {
		out = append(out, t)
	}
	return out
}
