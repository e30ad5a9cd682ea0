package visualize

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/spencer-p/tidechart/pkg/tide/splines"
)

// Image saves a curve as a chart image. The format follows the file
// extension of Path (png, svg, pdf, ...).
type Image struct {
	Chart
	Path          string
	Width, Height vg.Length
}

// NewImage returns an image renderer writing a 12x6 inch chart to path.
func NewImage(path string) *Image {
	return &Image{
		Chart:  DefaultChart,
		Path:   path,
		Width:  12 * vg.Inch,
		Height: 6 * vg.Inch,
	}
}

func (r *Image) Render(w io.Writer, curve splines.Curve) error {
	p, err := r.Plot(curve)
	if err != nil {
		return err
	}
	if err := p.Save(r.Width, r.Height, r.Path); err != nil {
		return fmt.Errorf("saving chart to %s: %w", r.Path, err)
	}
	_, err = fmt.Fprintf(w, "Chart saved to %s\n", r.Path)
	return err
}

// Plot lays out the chart without saving it.
func (r *Image) Plot(curve splines.Curve) (*plot.Plot, error) {
	if curve.Len() < 2 {
		return nil, errors.New("need at least two samples to draw a line")
	}
	loc := curve.Times[0].Location()

	p := plot.New()
	p.Title.Text = r.Title
	p.Title.TextStyle.Font.Size = vg.Points(18)
	p.X.Label.Text = r.XLabel
	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.Text = r.YLabel
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)

	p.X.Tick.Marker = plot.TimeTicks{
		Format: "2006-01-02 15:04",
		Time: func(t float64) time.Time {
			return time.Unix(int64(t), 0).In(loc)
		},
	}
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, curve.Len())
	for i, t := range curve.Times {
		pts[i].X = float64(t.Unix())
		pts[i].Y = curve.Heights[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("building line: %w", err)
	}
	line.Color = color.RGBA{B: 255, A: 255}
	line.Width = vg.Points(1.5)
	p.Add(line)
	p.Legend.Add(r.Legend, line)
	p.Legend.Top = true

	return p, nil
}
