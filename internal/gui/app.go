package gui

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/san-kum/gravsim/internal/audio"
	"github.com/san-kum/gravsim/internal/control"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/gui/ui"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/sim"
)

const (
	screenWidth  = 1280
	screenHeight = 720
	panelWidth   = 240

	velocityVectorScale = 5.0
	forceVectorScale    = 0.01
	trailLength         = 120
)

var (
	ColBg       = color.RGBA{10, 10, 10, 255}
	ColPanel    = color.RGBA{22, 22, 26, 255}
	ColBorder   = color.RGBA{70, 70, 80, 255}
	ColText     = color.RGBA{180, 180, 180, 255}
	ColBody     = color.RGBA{235, 235, 235, 255}
	ColTrail    = color.RGBA{60, 60, 80, 255}
	ColVelocity = color.RGBA{0, 220, 90, 255}
	ColForce    = color.RGBA{230, 40, 50, 255}
	ColPreview  = color.RGBA{255, 210, 0, 160}
	ColActive   = color.RGBA{0, 200, 220, 255}
)

type point struct{ x, y float64 }

// App is the ebiten game for one simulator. Coordinates in the world are
// window pixels at zoom 1, as in a browser canvas.
type App struct {
	sim     *sim.Simulator
	name    string
	initial []dynamo.Body
	sound   *audio.Sonifier
	field   *physics.Gravity

	cam         ui.Camera
	drag        *control.Drag
	precise     bool
	showVectors bool

	runBtn, resetBtn, modeBtn, vecBtn, addBtn ui.Button
	massSlider                                *ui.Slider
	entry                                     ui.TextField

	snapshot []dynamo.BodyState
	trails   map[dynamo.BodyID][]point
	message  string
}

// New builds the app. sound may be nil.
func New(s *sim.Simulator, name string, initial []dynamo.Body, sound *audio.Sonifier) *App {
	mass := control.NewMass(control.DefaultMass)
	a := &App{
		sim:         s,
		name:        name,
		initial:     initial,
		sound:       sound,
		field:       physics.NewGravity(s.Config()),
		cam:         ui.NewCamera(),
		drag:        control.NewDrag(mass),
		showVectors: true,
		trails:      make(map[dynamo.BodyID][]point),

		runBtn:     ui.Button{Rect: ui.Rect{X: 16, Y: 48, W: 100, H: 28}},
		resetBtn:   ui.Button{Rect: ui.Rect{X: 124, Y: 48, W: 100, H: 28}, Label: "Reset"},
		modeBtn:    ui.Button{Rect: ui.Rect{X: 16, Y: 88, W: 208, H: 28}},
		vecBtn:     ui.Button{Rect: ui.Rect{X: 16, Y: 128, W: 208, H: 28}},
		massSlider: ui.NewSlider(ui.Rect{X: 16, Y: 190, W: 208, H: 16}, control.MinMass, control.MaxMass, mass.Value()),
		entry:      ui.TextField{Rect: ui.Rect{X: 16, Y: 250, W: 208, H: 24}, Limit: 48},
		addBtn:     ui.Button{Rect: ui.Rect{X: 16, Y: 282, W: 208, H: 28}, Label: "Add body"},
	}
	// centre the world origin in the canvas area
	a.cam.OffsetX = -(panelWidth + (screenWidth-panelWidth)/2)
	a.cam.OffsetY = -screenHeight / 2
	a.snapshot = s.Snapshot()
	return a
}

func Run(a *App) error {
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("gravsim - " + a.name)
	ebiten.SetTPS(60)
	return ebiten.RunGame(a)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func (a *App) Update() error {
	a.handleKeys()
	a.handleMouse()

	a.sim.Tick()
	a.snapshot = a.sim.Snapshot()
	if a.sim.Running() {
		a.recordTrails()
	}
	return nil
}

func (a *App) handleKeys() {
	if a.entry.Focused {
		a.entry.Type(ebiten.AppendInputChars(nil))
		if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
			a.entry.Backspace()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			a.addPrecise()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			a.entry.Focused = false
		}
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		a.toggleRunning()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		a.reload()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		a.showVectors = !a.showVectors
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		a.precise = !a.precise
	}
}

func (a *App) handleMouse() {
	mx, my := ebiten.CursorPosition()
	sx, sy := float64(mx), float64(my)
	wx, wy := a.cam.ToWorld(sx, sy)

	if _, wheel := ebiten.Wheel(); wheel != 0 && sx > panelWidth {
		factor := 1.1
		if wheel < 0 {
			factor = 1 / factor
		}
		a.cam.ZoomAt(sx, sy, factor)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		a.press(sx, sy, wx, wy)
	}

	if a.massSlider.Dragging() {
		a.massSlider.Drag(sx)
		a.drag.Mass().Set(a.massSlider.Value)
	}
	a.drag.Move(wx, wy)

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		a.massSlider.Release()
		if _, _, err := a.drag.Release(wx, wy, a.sim); err != nil {
			a.message = err.Error()
		}
	}
}

// press dispatches a click to the panel widgets first, then the canvas.
func (a *App) press(sx, sy, wx, wy float64) {
	a.entry.Focused = a.precise && a.entry.Contains(sx, sy)

	switch {
	case a.runBtn.Contains(sx, sy):
		a.toggleRunning()
	case a.resetBtn.Contains(sx, sy):
		a.reset()
	case a.modeBtn.Contains(sx, sy):
		a.precise = !a.precise
	case a.vecBtn.Contains(sx, sy):
		a.showVectors = !a.showVectors
	case a.precise && a.addBtn.Contains(sx, sy):
		a.addPrecise()
	case a.massSlider.Press(sx, sy):
		a.drag.Mass().Set(a.massSlider.Value)
	case sx <= panelWidth:
	case !a.precise:
		a.drag.Press(wx, wy)
	}
}

func (a *App) toggleRunning() {
	a.sim.SetRunning(!a.sim.Running())
}

func (a *App) reset() {
	a.sim.Reset()
	a.trails = make(map[dynamo.BodyID][]point)
	a.message = ""
}

func (a *App) reload() {
	a.reset()
	for _, b := range a.initial {
		if _, err := a.sim.CreateBody(b.X, b.Y, b.VX, b.VY, b.Mass()); err != nil {
			a.message = err.Error()
			return
		}
	}
}

func (a *App) addPrecise() {
	spec, err := control.ParseBodySpec(a.entry.Text)
	if err != nil {
		a.message = err.Error()
		return
	}
	if _, err := spec.Create(a.sim); err != nil {
		a.message = err.Error()
		return
	}
	log.Printf("gui: added body %s", a.entry.Text)
	a.message = ""
}

func (a *App) recordTrails() {
	live := make(map[dynamo.BodyID]bool, len(a.snapshot))
	for _, b := range a.snapshot {
		live[b.ID] = true
		tr := append(a.trails[b.ID], point{b.X, b.Y})
		if len(tr) > trailLength {
			tr = tr[1:]
		}
		a.trails[b.ID] = tr
	}
	for id := range a.trails {
		if !live[id] {
			delete(a.trails, id)
		}
	}
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(ColBg)
	a.drawSim(screen)
	a.drawPreview(screen)
	a.drawPanel(screen)
}

func (a *App) line(dst *ebiten.Image, x0, y0, x1, y1 float64, w float32, c color.Color) {
	sx0, sy0 := a.cam.ToScreen(x0, y0)
	sx1, sy1 := a.cam.ToScreen(x1, y1)
	vector.StrokeLine(dst, float32(sx0), float32(sy0), float32(sx1), float32(sy1), w, c, true)
}

func (a *App) drawSim(screen *ebiten.Image) {
	for _, tr := range a.trails {
		for i := 1; i < len(tr); i++ {
			a.line(screen, tr[i-1].x, tr[i-1].y, tr[i].x, tr[i].y, 1, ColTrail)
		}
	}

	for _, b := range a.snapshot {
		sx, sy := a.cam.ToScreen(b.X, b.Y)
		r := max(1, b.Radius*a.cam.Zoom)
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(r), ColBody, true)

		if a.showVectors {
			a.line(screen, b.X, b.Y, b.X+b.VX*velocityVectorScale, b.Y+b.VY*velocityVectorScale, 2, ColVelocity)
			a.line(screen, b.X, b.Y, b.X+b.FX*forceVectorScale, b.Y+b.FY*forceVectorScale, 2, ColForce)
		}
	}
}

// drawPreview shows the body a release or an Add click would create.
func (a *App) drawPreview(screen *ebiten.Image) {
	var x, y, vx, vy, radius float64
	switch {
	case a.drag.Active():
		p, _ := a.drag.Preview()
		x, y, vx, vy, radius = p.X, p.Y, p.VX, p.VY, p.Radius
		mx, my := ebiten.CursorPosition()
		cx, cy := a.cam.ToWorld(float64(mx), float64(my))
		a.line(screen, x, y, cx, cy, 1, ColBorder)
	case a.precise:
		spec, err := control.ParseBodySpec(a.entry.Text)
		if err != nil {
			return
		}
		b, _ := spec.Body()
		x, y, vx, vy, radius = b.X, b.Y, b.VX, b.VY, b.Radius()
	default:
		return
	}

	sx, sy := a.cam.ToScreen(x, y)
	vector.StrokeCircle(screen, float32(sx), float32(sy), float32(max(2, radius*a.cam.Zoom)), 1.5, ColPreview, true)
	a.line(screen, x, y, x+vx*velocityVectorScale, y+vy*velocityVectorScale, 2, ColPreview)
}

func (a *App) drawButton(screen *ebiten.Image, b ui.Button, active bool) {
	border := ColBorder
	if active {
		border = ColActive
	}
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 1, border, false)
	ebitenutil.DebugPrintAt(screen, b.Label, int(b.X)+8, int(b.Y)+6)
}

func (a *App) drawPanel(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, panelWidth, screenHeight, ColPanel, false)
	ebitenutil.DebugPrintAt(screen, "GRAVSIM  "+a.name, 16, 16)

	run := a.runBtn
	run.Label = "Start"
	if a.sim.Running() {
		run.Label = "Pause"
	}
	a.drawButton(screen, run, a.sim.Running())
	a.drawButton(screen, a.resetBtn, false)

	mode := a.modeBtn
	mode.Label = "Mode: drag"
	if a.precise {
		mode.Label = "Mode: precise"
	}
	a.drawButton(screen, mode, a.precise)

	vec := a.vecBtn
	vec.Label = "Vectors: off"
	if a.showVectors {
		vec.Label = "Vectors: on"
	}
	a.drawButton(screen, vec, a.showVectors)

	s := a.massSlider
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Mass %.0f", s.Value), int(s.X), int(s.Y)-20)
	vector.DrawFilledRect(screen, float32(s.X), float32(s.Y+s.H/2-1), float32(s.W), 2, ColBorder, false)
	vector.DrawFilledCircle(screen, float32(s.X+s.Fraction()*s.W), float32(s.Y+s.H/2), 6, ColActive, true)

	if a.precise {
		f := a.entry
		ebitenutil.DebugPrintAt(screen, "x,y,vx,vy,mass", int(f.X), int(f.Y)-18)
		text := f.Text
		if f.Focused {
			text += "_"
		}
		vector.StrokeRect(screen, float32(f.X), float32(f.Y), float32(f.W), float32(f.H), 1, ColBorder, false)
		ebitenutil.DebugPrintAt(screen, text, int(f.X)+4, int(f.Y)+4)
		a.drawButton(screen, a.addBtn, false)
	}

	stats := fmt.Sprintf("time    %.2f\nbodies  %d\nmerges  %d\nenergy  %.1f\nqueued  %d",
		a.sim.Time(), len(a.snapshot), a.sim.Merges(), a.field.Energy(a.sim.Bodies()), a.sim.Pending())
	if a.sound != nil {
		stats += fmt.Sprintf("\nchimes  %d", a.sound.Played())
	}
	ebitenutil.DebugPrintAt(screen, stats, 16, 340)

	if a.message != "" {
		ebitenutil.DebugPrintAt(screen, a.message, 16, 440)
	}
	ebitenutil.DebugPrintAt(screen, "space run  r reset  l reload\nm mode  v vectors  wheel zoom", 16, screenHeight-44)
}
