package control

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/gravsim/internal/dynamo"
)

// BodySpec is a fully specified body entered by hand.
type BodySpec struct {
	X, Y, VX, VY, Mass float64
}

// ParseBodySpec parses "x,y,vx,vy,mass". Whitespace around fields is
// ignored; the mass is validated but not clamped.
func ParseBodySpec(s string) (BodySpec, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 5 {
		return BodySpec{}, fmt.Errorf("%w: want x,y,vx,vy,mass, got %q", dynamo.ErrInvalidInput, s)
	}

	var v [5]float64
	names := [5]string{"x", "y", "vx", "vy", "mass"}
	for i, f := range fields {
		n, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return BodySpec{}, fmt.Errorf("%w: %s = %q", dynamo.ErrInvalidInput, names[i], strings.TrimSpace(f))
		}
		v[i] = n
	}

	spec := BodySpec{X: v[0], Y: v[1], VX: v[2], VY: v[3], Mass: v[4]}
	if _, err := spec.Body(); err != nil {
		return BodySpec{}, err
	}
	return spec, nil
}

func (s BodySpec) Body() (dynamo.Body, error) {
	return dynamo.NewBody(s.X, s.Y, s.VX, s.VY, s.Mass)
}

func (s BodySpec) Create(c Creator) (dynamo.BodyID, error) {
	return c.CreateBody(s.X, s.Y, s.VX, s.VY, s.Mass)
}
