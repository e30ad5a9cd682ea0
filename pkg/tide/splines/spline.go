// Package splines fits a smooth curve through tide records and resamples it.
package splines

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/interp"

	"github.com/spencer-p/tidechart/pkg/tide"
)

// Samples is the number of points Smooth produces when not told otherwise.
const Samples = 500

// minPoints is the fewest samples a cubic interpolating spline can be fitted
// through.
const minPoints = 4

var (
	ErrEmpty         = errors.New("the dataset is empty")
	ErrTooFewPoints  = errors.New("too few points for a cubic spline")
	ErrNotIncreasing = errors.New("timestamps are not strictly increasing")
)

// Spline is a cubic interpolating spline of height over time with
// not-a-knot end conditions. It is undefined outside Start and End.
type Spline struct {
	Start, End time.Time
	fit        interp.NotAKnotCubic
}

// Curve is a spline sampled at evenly spaced times.
type Curve struct {
	Times   []time.Time
	Heights []float64
}

// Len returns the number of samples.
func (c Curve) Len() int {
	return len(c.Times)
}

// Smooth fits a spline through records and samples it n times between the
// first and last timestamp, both included.
func Smooth(records tide.Records, n int) (Curve, error) {
	s, err := Fit(records)
	if err != nil {
		return Curve{}, err
	}
	return Discrete(s, n), nil
}

// Fit builds a Spline through the records' (timestamp, height) pairs.
// Records without a timestamp or height are skipped. The remaining timestamps
// must already be in strictly increasing order.
func Fit(records tide.Records) (*Spline, error) {
	if len(records) == 0 {
		return nil, ErrEmpty
	}

	var xs, ys []float64
	var times []time.Time
	for _, r := range records {
		if !r.Valid() {
			continue
		}
		xs = append(xs, seconds(r.Timestamp))
		ys = append(ys, r.Height)
		times = append(times, r.Timestamp)
	}

	if len(xs) < minPoints {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrTooFewPoints, len(xs), minPoints)
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return nil, fmt.Errorf("%w: %s follows %s", ErrNotIncreasing,
				times[i].Format(time.DateTime), times[i-1].Format(time.DateTime))
		}
	}

	s := &Spline{
		Start: times[0],
		End:   times[len(times)-1],
	}
	if err := s.fit.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("fitting spline: %w", err)
	}
	return s, nil
}

// Eval returns the spline's height at t.
func (s *Spline) Eval(t time.Time) float64 {
	if t.Before(s.Start) || t.After(s.End) {
		// Function not defined.
		return math.NaN()
	}
	return s.fit.Predict(seconds(t))
}

// Discrete samples n heights evenly between the spline's Start and End. The
// first sample is exactly Start and the last exactly End.
func Discrete(s *Spline, n int) Curve {
	if n < 1 {
		return Curve{}
	}
	loc := s.Start.Location()
	x0, x1 := seconds(s.Start), seconds(s.End)
	step := 0.0
	if n > 1 {
		step = (x1 - x0) / float64(n-1)
	}

	c := Curve{
		Times:   make([]time.Time, n),
		Heights: make([]float64, n),
	}
	for i := range c.Times {
		x := x0 + step*float64(i)
		if i == n-1 {
			x = x1
		}
		c.Times[i] = fromSeconds(x, loc)
		c.Heights[i] = s.fit.Predict(x)
	}
	c.Times[0], c.Times[n-1] = s.Start, s.End
	return c
}

// seconds is t as unix seconds.
func seconds(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/1e9
}

func fromSeconds(x float64, loc *time.Location) time.Time {
	whole, frac := math.Modf(x)
	return time.Unix(int64(whole), int64(math.Round(frac*1e9))).In(loc)
}
