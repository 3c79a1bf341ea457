package viz

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
)

const (
	minScale = 0.05
	maxScale = 200.0
)

// Viewport maps world coordinates onto canvas sub-pixels. World y grows
// downward like the screen, so a drag reads the same in both spaces.
type Viewport struct {
	CenterX, CenterY float64
	// Scale is world units per sub-pixel.
	Scale float64
	W, H  int
}

func NewViewport(subW, subH int) *Viewport {
	return &Viewport{Scale: 4, W: subW, H: subH}
}

func (v *Viewport) ToScreen(x, y float64) (int, int) {
	px := float64(v.W)/2 + (x-v.CenterX)/v.Scale
	py := float64(v.H)/2 + (y-v.CenterY)/v.Scale
	return int(math.Round(px)), int(math.Round(py))
}

func (v *Viewport) ToWorld(px, py int) (float64, float64) {
	x := v.CenterX + (float64(px)-float64(v.W)/2)*v.Scale
	y := v.CenterY + (float64(py)-float64(v.H)/2)*v.Scale
	return x, y
}

// CellToWorld maps a terminal cell to the world point under its centre.
func (v *Viewport) CellToWorld(col, row int) (float64, float64) {
	return v.ToWorld(col*2+1, row*4+2)
}

// Length converts a world distance to sub-pixels.
func (v *Viewport) Length(d float64) int {
	return int(math.Round(d / v.Scale))
}

// Pan shifts the view by a fraction of its size.
func (v *Viewport) Pan(fx, fy float64) {
	v.CenterX += fx * float64(v.W) * v.Scale
	v.CenterY += fy * float64(v.H) * v.Scale
}

func (v *Viewport) ZoomIn()  { v.Scale = math.Max(minScale, v.Scale/1.25) }
func (v *Viewport) ZoomOut() { v.Scale = math.Min(maxScale, v.Scale*1.25) }

// Fit centres the bodies and scales so all of them, radii included, are
// visible with a margin.
func (v *Viewport) Fit(bodies []dynamo.BodyState) {
	if len(bodies) == 0 || v.W == 0 || v.H == 0 {
		return
	}
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, b := range bodies {
		minX = math.Min(minX, b.X-b.Radius)
		maxX = math.Max(maxX, b.X+b.Radius)
		minY = math.Min(minY, b.Y-b.Radius)
		maxY = math.Max(maxY, b.Y+b.Radius)
	}
	v.CenterX = (minX + maxX) / 2
	v.CenterY = (minY + maxY) / 2

	s := math.Max((maxX-minX)/float64(v.W), (maxY-minY)/float64(v.H)) * 1.2
	v.Scale = math.Min(maxScale, math.Max(minScale, s))
}
