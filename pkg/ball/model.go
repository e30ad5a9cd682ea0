package ball

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Frame is the tick interval.
const Frame = 16 * time.Millisecond

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(Frame, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

var statusStyle = lipgloss.NewStyle().Faint(true)

// Model drives a State from terminal events. A terminal reports key presses
// but not releases, so an arrow counts as held until the next tick.
type Model struct {
	state State
	held  Input
	color Color

	// Pointer in canvas coordinates.
	px, py int

	// Terminal size in cells.
	width, height int
}

// NewModel returns a model for an 80x24 terminal until told otherwise.
func NewModel() Model {
	return Model{
		state:  NewState(),
		color:  ColorAt(0, 0),
		width:  80,
		height: 24,
	}
}

// State returns the current circle state.
func (m Model) State() State {
	return m.state
}

// Color returns the current fill colour.
func (m Model) Color() Color {
	return m.color
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		in := m.held
		in.PointerX, in.PointerY = m.px, m.py
		m.state = m.state.Step(in)
		m.color = ColorAt(m.px, m.py)
		m.held = Input{}
		if m.state.Done {
			return m, tea.Quit
		}
		return m, tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.state = m.state.Step(Input{Quit: true})
			return m, tea.Quit
		case key.Matches(msg, keys.Left):
			m.held.Left = true
		case key.Matches(msg, keys.Right):
			m.held.Right = true
		case key.Matches(msg, keys.Up):
			m.held.Up = true
		case key.Matches(msg, keys.Down):
			m.held.Down = true
		}

	case tea.MouseMsg:
		cols, rows := m.canvasCells()
		m.px = msg.X * Width / cols
		m.py = msg.Y * Height / rows

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

// canvasCells is the number of terminal cells the canvas is drawn on. The
// last row holds the status line.
func (m Model) canvasCells() (cols, rows int) {
	return max(m.width, 1), max(m.height-1, 1)
}

func (m Model) View() string {
	cols, rows := m.canvasCells()
	cellW := float64(Width) / float64(cols)
	cellH := float64(Height) / float64(rows)

	// The cell holding the centre is always drawn so the circle never
	// vanishes on a coarse grid.
	centreCol := int(m.state.X / cellW)
	centreRow := int(m.state.Y / cellH)

	fill := lipgloss.NewStyle().Foreground(lipgloss.Color(m.color.Hex()))
	var b strings.Builder
	for r := 0; r < rows; r++ {
		var line strings.Builder
		for c := 0; c < cols; c++ {
			x := (float64(c) + 0.5) * cellW
			y := (float64(r) + 0.5) * cellH
			if m.state.Covers(x, y) || (c == centreCol && r == centreRow) {
				line.WriteString("█")
			} else {
				line.WriteByte(' ')
			}
		}
		b.WriteString(fill.Render(line.String()))
		b.WriteByte('\n')
	}
	b.WriteString(statusStyle.Render(fmt.Sprintf("(%.1f, %.1f) %s  arrows move, q quits",
		m.state.X, m.state.Y, m.color.Hex())))
	return b.String()
}
