// Package ui holds the input geometry of the desktop GUI: hit testing,
// slider and text field state, and the world camera. It has no rendering
// dependency so it can be exercised headless.
package ui

import "math"

type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

type Button struct {
	Rect
	Label string
}

// Slider maps a horizontal track onto [Min, Max].
type Slider struct {
	Rect
	Min, Max float64
	Value    float64
	dragging bool
}

func NewSlider(r Rect, lo, hi, v float64) *Slider {
	s := &Slider{Rect: r, Min: lo, Max: hi}
	s.Set(v)
	return s
}

func (s *Slider) Set(v float64) {
	s.Value = math.Min(s.Max, math.Max(s.Min, v))
}

// Fraction is the knob position in [0, 1].
func (s *Slider) Fraction() float64 {
	if s.Max == s.Min {
		return 0
	}
	return (s.Value - s.Min) / (s.Max - s.Min)
}

// Press starts a drag if (x, y) hits the track and jumps the knob there.
func (s *Slider) Press(x, y float64) bool {
	if !s.Contains(x, y) {
		return false
	}
	s.dragging = true
	s.Drag(x)
	return true
}

func (s *Slider) Drag(x float64) {
	if !s.dragging || s.W <= 0 {
		return
	}
	f := math.Min(1, math.Max(0, (x-s.X)/s.W))
	s.Set(math.Round(s.Min + f*(s.Max-s.Min)))
}

func (s *Slider) Release() { s.dragging = false }

func (s *Slider) Dragging() bool { return s.dragging }

type TextField struct {
	Rect
	Text    string
	Focused bool
	Limit   int
}

// Type appends printable runes while focused.
func (f *TextField) Type(rs []rune) {
	if !f.Focused {
		return
	}
	for _, r := range rs {
		if r < 0x20 || r == 0x7f {
			continue
		}
		if f.Limit > 0 && len(f.Text) >= f.Limit {
			return
		}
		f.Text += string(r)
	}
}

func (f *TextField) Backspace() {
	if f.Focused && len(f.Text) > 0 {
		f.Text = f.Text[:len(f.Text)-1]
	}
}

// Camera maps world coordinates to window pixels: screen = (world -
// Offset) * Zoom.
type Camera struct {
	OffsetX, OffsetY float64
	Zoom             float64
}

func NewCamera() Camera { return Camera{Zoom: 1} }

func (c Camera) ToScreen(x, y float64) (float64, float64) {
	return (x - c.OffsetX) * c.Zoom, (y - c.OffsetY) * c.Zoom
}

func (c Camera) ToWorld(sx, sy float64) (float64, float64) {
	return sx/c.Zoom + c.OffsetX, sy/c.Zoom + c.OffsetY
}

// ZoomAt scales about the screen point (sx, sy), keeping the world point
// under it fixed.
func (c *Camera) ZoomAt(sx, sy, factor float64) {
	wx, wy := c.ToWorld(sx, sy)
	c.Zoom = math.Min(20, math.Max(0.05, c.Zoom*factor))
	c.OffsetX = wx - sx/c.Zoom
	c.OffsetY = wy - sy/c.Zoom
}
