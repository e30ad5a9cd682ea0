// Package ball is a coloured circle steered with the arrow keys. State is a
// pure state machine advanced one tick at a time; Model adapts it to a
// bubbletea program.
package ball

import "fmt"

// Canvas size and circle geometry, in canvas pixels.
const (
	Width  = 800
	Height = 600
	Radius = 20
	// Speed is how far one held arrow moves the circle per tick.
	Speed = 0.5
)

// State is the circle position. Done is set once a quit was seen.
type State struct {
	X, Y float64
	Done bool
}

// NewState returns a circle at the centre of the canvas.
func NewState() State {
	return State{X: Width / 2, Y: Height / 2}
}

// Input is everything observed during one tick.
type Input struct {
	Left, Right, Up, Down bool
	Quit                  bool

	PointerX, PointerY int
}

// Step advances s by one tick. Opposite arrows cancel out and the position is
// not bounded by the canvas. A quit leaves the position where it was.
func (s State) Step(in Input) State {
	if s.Done {
		return s
	}
	if in.Quit {
		s.Done = true
		return s
	}
	if in.Left {
		s.X -= Speed
	}
	if in.Right {
		s.X += Speed
	}
	if in.Up {
		s.Y -= Speed
	}
	if in.Down {
		s.Y += Speed
	}
	return s
}

// Covers reports whether canvas point (x, y) lies inside the circle.
func (s State) Covers(x, y float64) bool {
	dx, dy := x-s.X, y-s.Y
	return dx*dx+dy*dy <= Radius*Radius
}

// Color is an RGB fill colour.
type Color struct {
	R, G, B uint8
}

// ColorAt is the fill colour for a pointer at (px, py).
func ColorAt(px, py int) Color {
	return Color{
		R: mod256(px),
		G: mod256(py),
		B: mod256(px + py),
	}
}

// Hex formats c as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func mod256(n int) uint8 {
	return uint8(((n % 256) + 256) % 256)
}
