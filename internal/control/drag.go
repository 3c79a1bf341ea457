package control

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
)

const (
	// VelocityScale converts drag length into launch speed.
	VelocityScale = 0.05
	// MinDrag is the shortest drag that creates a body.
	MinDrag = 5.0
)

// Creator enqueues a new body.
type Creator interface {
	CreateBody(x, y, vx, vy, mass float64) (dynamo.BodyID, error)
}

// Preview is a body that would be created if the gesture ended now. It is
// never part of the simulated set.
type Preview struct {
	X, Y   float64
	VX, VY float64
	Mass   float64
	Radius float64
}

// Drag tracks a press-drag-release gesture in world coordinates.
type Drag struct {
	mass     *Mass
	active   bool
	startX   float64
	startY   float64
	currentX float64
	currentY float64
}

func NewDrag(mass *Mass) *Drag {
	if mass == nil {
		mass = NewMass(DefaultMass)
	}
	return &Drag{mass: mass}
}

func (d *Drag) Mass() *Mass { return d.mass }

func (d *Drag) Active() bool { return d.active }

func (d *Drag) Press(x, y float64) {
	d.active = true
	d.startX, d.startY = x, y
	d.currentX, d.currentY = x, y
}

func (d *Drag) Move(x, y float64) {
	if !d.active {
		return
	}
	d.currentX, d.currentY = x, y
}

func (d *Drag) Cancel() {
	d.active = false
}

// Preview reports the pending launch while a drag is active.
func (d *Drag) Preview() (Preview, bool) {
	if !d.active {
		return Preview{}, false
	}
	vx, vy := launch(d.startX, d.startY, d.currentX, d.currentY)
	m := d.mass.Value()
	return Preview{X: d.startX, Y: d.startY, VX: vx, VY: vy, Mass: m, Radius: math.Sqrt(m)}, true
}

// Release ends the gesture at (x, y). Drags shorter than MinDrag are
// discarded and report created == false with no error.
func (d *Drag) Release(x, y float64, c Creator) (id dynamo.BodyID, created bool, err error) {
	if !d.active {
		return 0, false, nil
	}
	d.active = false

	if math.Hypot(x-d.startX, y-d.startY) < MinDrag {
		return 0, false, nil
	}
	vx, vy := launch(d.startX, d.startY, x, y)
	id, err = c.CreateBody(d.startX, d.startY, vx, vy, d.mass.Value())
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func launch(sx, sy, ex, ey float64) (vx, vy float64) {
	return (sx - ex) * VelocityScale, (sy - ey) * VelocityScale
}
