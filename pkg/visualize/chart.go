package visualize

import (
	"io"

	"github.com/spencer-p/tidechart/pkg/tide/splines"
)

// Chart holds the text drawn around a smoothed tide curve.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	Legend string
}

// DefaultChart labels a smoothed tide height series.
var DefaultChart = Chart{
	Title:  "Tide Height Data Over Time (Smoothed)",
	XLabel: "Date and Time",
	YLabel: "Height (m)",
	Legend: "Tide Height (Smoothed)",
}

// Renderer draws a curve. Output meant for the user goes to w.
type Renderer interface {
	Render(w io.Writer, curve splines.Curve) error
}

// bounds returns the smallest and largest height of the curve, padded when
// the curve is flat so a chart still has a y range.
func bounds(curve splines.Curve) (lo, hi float64) {
	lo, hi = curve.Heights[0], curve.Heights[0]
	for _, h := range curve.Heights[1:] {
		lo = min(lo, h)
		hi = max(hi, h)
	}
	if lo == hi {
		lo -= 0.1
		hi += 0.1
	}
	return lo, hi
}
