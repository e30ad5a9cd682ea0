package visualize

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"

	"github.com/spencer-p/tidechart/pkg/tide/splines"
)

const tickFormat = "01-02 15:04"

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	labelStyle  = lipgloss.NewStyle().Faint(true)
	legendStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
)

// Terminal draws a curve as a braille line chart on a terminal.
type Terminal struct {
	Chart
	Width, Height int
}

// NewTerminal returns a terminal renderer of the given size in cells.
func NewTerminal(width, height int) *Terminal {
	return &Terminal{
		Chart:  DefaultChart,
		Width:  width,
		Height: height,
	}
}

func (r *Terminal) Render(w io.Writer, curve splines.Curve) error {
	if curve.Len() < 2 {
		return errors.New("need at least two samples to draw a line")
	}
	_, err := io.WriteString(w, r.View(curve))
	return err
}

// View returns the chart as a string.
func (r *Terminal) View(curve splines.Curve) string {
	start, end := curve.Times[0], curve.Times[curve.Len()-1]
	lo, hi := bounds(curve)

	lc := timeserieslinechart.New(r.Width, r.Height)
	lc.SetTimeRange(start, end)
	lc.SetViewTimeAndYRange(start, end, lo, hi)

	// Roughly one x label per 12 columns, each wide enough for tickFormat.
	lc.SetXStep(max(1, min(12, lc.GraphWidth())))
	loc := start.Location()
	lc.Model.XLabelFormatter = func(i int, v float64) string {
		return time.Unix(int64(v), 0).In(loc).Format(tickFormat)
	}

	for i, t := range curve.Times {
		lc.Push(timeserieslinechart.TimePoint{Time: t, Value: curve.Heights[i]})
	}
	lc.DrawBraille()

	b := &strings.Builder{}
	b.WriteString(titleStyle.Render(r.Title))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(r.YLabel))
	b.WriteString("\n")
	b.WriteString(lc.View())
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(r.XLabel))
	b.WriteString("\n")
	b.WriteString(legendStyle.Render("─"))
	b.WriteString(" ")
	b.WriteString(r.Legend)
	b.WriteString("\n")
	tz, _ := start.Zone()
	b.WriteString(labelStyle.Render(fmt.Sprintf("min %.2f m / max %.2f m | %s - %s %s",
		lo, hi, start.Format(tickFormat), end.Format(tickFormat), tz)))
	b.WriteString("\n")
	return b.String()
}
