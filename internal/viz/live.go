package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/gravsim/internal/control"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/sim"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	trailLength     = 60
	frameRate       = 60

	// Screen offset of canvas cell (0, 0), from canvasStyle padding.
	canvasPadX = 2
	canvasPadY = 1

	velocityVectorScale = 5.0
	forceVectorScale    = 0.01
	massStep            = 5.0
)

type TickMsg time.Time

type point struct{ x, y float64 }

// layer is one colored overlay of the canvas. Later layers win a cell.
type layer struct {
	canvas *Canvas
	color  func(Theme) lipgloss.Color
}

// Model is the bubbletea model for an interactive simulation.
type Model struct {
	sim     *sim.Simulator
	name    string
	initial []dynamo.Body
	field   *physics.Gravity

	view   *Viewport
	layers []layer

	drag        *control.Drag
	running     bool
	showVectors bool
	showHelp    bool
	entry       bool
	entryBuf    string
	message     string

	trails        map[dynamo.BodyID][]point
	energyHistory []float64
	countHistory  []float64
	snapshot      []dynamo.BodyState
}

// NewModel wraps s. initial is the scene restored by the reload key; it
// may be empty.
func NewModel(s *sim.Simulator, name string, initial []dynamo.Body) Model {
	m := Model{
		sim:     s,
		name:    name,
		initial: initial,
		field:   physics.NewGravity(s.Config()),
		drag:    control.NewDrag(control.NewMass(control.DefaultMass)),
		running: s.Running(),
		trails:  make(map[dynamo.BodyID][]point),
	}
	m.layers = []layer{
		{NewCanvas(width, height), func(t Theme) lipgloss.Color { return t.Trail }},
		{NewCanvas(width, height), func(t Theme) lipgloss.Color { return t.Velocity }},
		{NewCanvas(width, height), func(t Theme) lipgloss.Color { return t.Force }},
		{NewCanvas(width, height), func(t Theme) lipgloss.Color { return t.Body }},
		{NewCanvas(width, height), func(t Theme) lipgloss.Color { return t.Preview }},
	}
	base := m.layers[0].canvas
	m.view = NewViewport(base.SubWidth(), base.SubHeight())
	m.snapshot = s.Snapshot()
	m.view.Fit(m.snapshot)
	return m
}

const (
	layerTrail = iota
	layerVelocity
	layerForce
	layerBody
	layerPreview
)

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.entry {
			m.entryKey(msg)
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
			m.sim.SetRunning(m.running)
		case "r":
			m.sim.Reset()
			m.clearHistory()
		case "l":
			m.reload()
		case "i":
			m.entry, m.entryBuf, m.message = true, "", ""
		case "+", "=":
			m.drag.Mass().Adjust(massStep)
		case "-", "_":
			m.drag.Mass().Adjust(-massStep)
		case "z":
			m.view.ZoomIn()
		case "x":
			m.view.ZoomOut()
		case "f":
			m.view.Fit(m.snapshot)
		case "left":
			m.view.Pan(-0.1, 0)
		case "right":
			m.view.Pan(0.1, 0)
		case "up":
			m.view.Pan(0, -0.1)
		case "down":
			m.view.Pan(0, 0.1)
		case "v":
			m.showVectors = !m.showVectors
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		m.mouse(msg)
	case TickMsg:
		m.step()
		m.draw()
		return m, tick()
	}
	return m, nil
}

func (m *Model) entryKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEnter:
		spec, err := control.ParseBodySpec(m.entryBuf)
		if err != nil {
			m.message = err.Error()
			return
		}
		if _, err := spec.Create(m.sim); err != nil {
			m.message = err.Error()
			return
		}
		m.entry, m.entryBuf, m.message = false, "", ""
	case tea.KeyEsc:
		m.entry, m.entryBuf, m.message = false, "", ""
	case tea.KeyBackspace:
		if len(m.entryBuf) > 0 {
			m.entryBuf = m.entryBuf[:len(m.entryBuf)-1]
		}
	case tea.KeySpace:
		m.entryBuf += " "
	case tea.KeyRunes:
		m.entryBuf += string(msg.Runes)
	}
}

func (m *Model) mouse(msg tea.MouseMsg) {
	x, y := m.view.CellToWorld(msg.X-canvasPadX, msg.Y-canvasPadY)

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.drag.Mass().Adjust(massStep)
	case msg.Button == tea.MouseButtonWheelDown:
		m.drag.Mass().Adjust(-massStep)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.drag.Press(x, y)
	case msg.Action == tea.MouseActionMotion:
		m.drag.Move(x, y)
	case msg.Action == tea.MouseActionRelease:
		if _, _, err := m.drag.Release(x, y, m.sim); err != nil {
			m.message = err.Error()
		}
	}
}

// step advances one frame and samples the result for the side panel.
func (m *Model) step() {
	m.sim.Tick()
	m.snapshot = m.sim.Snapshot()
	if !m.sim.Running() {
		return
	}

	live := make(map[dynamo.BodyID]bool, len(m.snapshot))
	for _, b := range m.snapshot {
		live[b.ID] = true
		tr := append(m.trails[b.ID], point{b.X, b.Y})
		if len(tr) > trailLength {
			tr = tr[1:]
		}
		m.trails[b.ID] = tr
	}
	for id := range m.trails {
		if !live[id] {
			delete(m.trails, id)
		}
	}

	m.energyHistory = appendCapped(m.energyHistory, m.field.Energy(m.sim.Bodies()))
	m.countHistory = appendCapped(m.countHistory, float64(len(m.snapshot)))
}

func appendCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func (m *Model) clearHistory() {
	m.trails = make(map[dynamo.BodyID][]point)
	m.energyHistory = m.energyHistory[:0]
	m.countHistory = m.countHistory[:0]
}

// reload clears the set and queues the starting scene again.
func (m *Model) reload() {
	m.sim.Reset()
	m.clearHistory()
	for _, b := range m.initial {
		if _, err := m.sim.CreateBody(b.X, b.Y, b.VX, b.VY, b.Mass()); err != nil {
			m.message = err.Error()
			return
		}
	}
}

func (m *Model) draw() {
	for _, l := range m.layers {
		l.canvas.Clear()
	}

	trails := m.layers[layerTrail].canvas
	for _, tr := range m.trails {
		for _, p := range tr {
			trails.Set(m.view.ToScreen(p.x, p.y))
		}
	}

	for _, b := range m.snapshot {
		px, py := m.view.ToScreen(b.X, b.Y)
		m.layers[layerBody].canvas.Disk(px, py, m.view.Length(b.Radius))

		if m.showVectors {
			vx, vy := m.view.ToScreen(b.X+b.VX*velocityVectorScale, b.Y+b.VY*velocityVectorScale)
			m.layers[layerVelocity].canvas.DrawLine(px, py, vx, vy)
			fx, fy := m.view.ToScreen(b.X+b.FX*forceVectorScale, b.Y+b.FY*forceVectorScale)
			m.layers[layerForce].canvas.DrawLine(px, py, fx, fy)
		}
	}

	if p, ok := m.drag.Preview(); ok {
		preview := m.layers[layerPreview].canvas
		px, py := m.view.ToScreen(p.X, p.Y)
		preview.Ring(px, py, max(1, m.view.Length(p.Radius)))
		ex, ey := m.view.ToScreen(p.X+p.VX*velocityVectorScale, p.Y+p.VY*velocityVectorScale)
		preview.DrawLine(px, py, ex, ey)
	}
}

// compose merges the layers cell by cell, coloring each cell by the
// topmost layer that lit it.
func (m Model) compose() string {
	var b strings.Builder
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			cell := rune(blank)
			top := -1
			for i, l := range m.layers {
				if r := l.canvas.Grid[row][col]; r != blank {
					cell |= r
					top = i
				}
			}
			if top < 0 {
				b.WriteRune(cell)
				continue
			}
			style := lipgloss.NewStyle().Foreground(m.layers[top].color(CurrentTheme))
			b.WriteString(style.Render(string(cell)))
		}
		if row < height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// View renders the TUI interface.
func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle().Render(strings.ToUpper(m.name)) + "\n")

	if m.sim.Running() {
		s.WriteString(StatusRunning.Render("RUNNING"))
	} else {
		s.WriteString(StatusPaused.Render("PAUSED"))
	}
	if m.sim.Pending() > 0 {
		s.WriteString(valueStyle.Render(fmt.Sprintf("  (%d queued)", m.sim.Pending())))
	}
	s.WriteString("\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	s.WriteString(labelStyle.Render("Bodies") + SparklineChart(m.countHistory, 20) + "\n\n")

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2f", m.sim.Time()))
	row("Bodies", fmt.Sprintf("%d", len(m.snapshot)))
	row("Merges", fmt.Sprintf("%d", m.sim.Merges()))
	if n := len(m.energyHistory); n > 0 {
		row("Energy", fmt.Sprintf("%.2f", m.energyHistory[n-1]))
	}
	mass := m.drag.Mass().Value()
	s.WriteString(labelStyle.Render("Mass") + ProgressBar(mass/control.MaxMass, 12) + valueStyle.Render(fmt.Sprintf(" %.0f", mass)) + "\n")
	row("Zoom", fmt.Sprintf("%.2f u/px", m.view.Scale))

	if p, ok := m.drag.Preview(); ok {
		row("Launch", fmt.Sprintf("(%.2f, %.2f)", p.VX, p.VY))
	}

	if m.entry {
		s.WriteString("\n" + valueStyle.Render("x,y,vx,vy,mass: "+m.entryBuf+"_") + "\n")
	}
	if m.message != "" {
		s.WriteString(errorStyle.Render(m.message) + "\n")
	}

	s.WriteString(helpStyle.Render(Separator(30) + "\nSP:Run/Pause R:Clear L:Reload\nDrag:Launch I:Enter +/-:Mass\nZ/X:Zoom F:Fit V:Vectors ?:Help"))

	canvasView := canvasStyle.Render(m.compose())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

const helpOverlay = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Run/Pause                ║
║  R        - Remove all bodies        ║
║  L        - Reload starting scene    ║
║  Drag     - Launch a new body        ║
║  I        - Enter x,y,vx,vy,mass     ║
║  +/-      - Mass of new bodies       ║
║  Arrows   - Pan                      ║
║  Z/X      - Zoom in/out              ║
║  F        - Fit all bodies           ║
║  V        - Velocity/force vectors   ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// Run starts the interactive program with mouse tracking enabled.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
