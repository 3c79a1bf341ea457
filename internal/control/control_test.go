package control

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/gravsim/internal/dynamo"
)

type fakeCreator struct {
	calls []BodySpec
	err   error
}

func (f *fakeCreator) CreateBody(x, y, vx, vy, mass float64) (dynamo.BodyID, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.calls = append(f.calls, BodySpec{x, y, vx, vy, mass})
	return dynamo.BodyID(len(f.calls)), nil
}

func TestDrag_Release(t *testing.T) {
	c := &fakeCreator{}
	d := NewDrag(NewMass(25))

	d.Press(100, 200)
	d.Move(140, 170)
	id, created, err := d.Release(140, 170, c)
	if err != nil || !created || id != 1 {
		t.Fatalf("expected body 1 created, got %v %v %v", id, created, err)
	}

	got := c.calls[0]
	want := BodySpec{X: 100, Y: 200, VX: -2, VY: 1.5, Mass: 25}
	if math.Abs(got.VX-want.VX) > 1e-12 || math.Abs(got.VY-want.VY) > 1e-12 ||
		got.X != want.X || got.Y != want.Y || got.Mass != want.Mass {
		t.Errorf("expected %+v, got %+v", want, got)
	}
	if d.Active() {
		t.Error("drag should end on release")
	}
}

func TestDrag_ShortDragIgnored(t *testing.T) {
	c := &fakeCreator{}
	d := NewDrag(nil)

	d.Press(0, 0)
	_, created, err := d.Release(3, 3, c)
	if err != nil || created {
		t.Errorf("expected no body, got created=%v err=%v", created, err)
	}
	if len(c.calls) != 0 {
		t.Error("creator should not be called")
	}
}

func TestDrag_ReleaseWithoutPress(t *testing.T) {
	c := &fakeCreator{}
	_, created, _ := NewDrag(nil).Release(50, 50, c)
	if created || len(c.calls) != 0 {
		t.Error("release without press must not create")
	}
}

func TestDrag_CreatorError(t *testing.T) {
	c := &fakeCreator{err: dynamo.ErrInvalidInput}
	d := NewDrag(nil)
	d.Press(0, 0)
	_, created, err := d.Release(50, 0, c)
	if created || !errors.Is(err, dynamo.ErrInvalidInput) {
		t.Errorf("expected creator error, got created=%v err=%v", created, err)
	}
}

func TestDrag_Preview(t *testing.T) {
	d := NewDrag(NewMass(16))
	if _, ok := d.Preview(); ok {
		t.Error("no preview before press")
	}

	d.Press(10, 10)
	d.Move(30, 10)
	p, ok := d.Preview()
	if !ok {
		t.Fatal("expected preview while dragging")
	}
	if p.X != 10 || p.Y != 10 || p.VX != -1 || p.VY != 0 || p.Radius != 4 {
		t.Errorf("unexpected preview %+v", p)
	}

	d.Cancel()
	if _, ok := d.Preview(); ok {
		t.Error("no preview after cancel")
	}
}

func TestMass(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{10, 10},
		{0, MinMass},
		{-4, MinMass},
		{1e6, MaxMass},
		{math.NaN(), DefaultMass},
	}
	for _, tt := range tests {
		if got := NewMass(tt.in).Value(); got != tt.want {
			t.Errorf("NewMass(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	m := NewMass(495)
	m.Adjust(10)
	if m.Value() != MaxMass {
		t.Errorf("expected clamp at %v, got %v", MaxMass, m.Value())
	}
}

func TestParseBodySpec(t *testing.T) {
	tests := []struct {
		in      string
		want    BodySpec
		wantErr bool
	}{
		{"1,2,3,4,5", BodySpec{1, 2, 3, 4, 5}, false},
		{" -10 , 0.5, 0,0 , 100 ", BodySpec{-10, 0.5, 0, 0, 100}, false},
		{"1,2,3,4", BodySpec{}, true},
		{"1,2,3,4,5,6", BodySpec{}, true},
		{"a,2,3,4,5", BodySpec{}, true},
		{"1,2,3,4,0", BodySpec{}, true},
		{"1,2,NaN,4,5", BodySpec{}, true},
		{"", BodySpec{}, true},
	}

	for _, tt := range tests {
		got, err := ParseBodySpec(tt.in)
		if tt.wantErr {
			if !errors.Is(err, dynamo.ErrInvalidInput) {
				t.Errorf("ParseBodySpec(%q): expected ErrInvalidInput, got %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseBodySpec(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseBodySpec(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestBodySpec_Create(t *testing.T) {
	c := &fakeCreator{}
	spec := BodySpec{1, 2, 3, 4, 5}
	if _, err := spec.Create(c); err != nil {
		t.Fatal(err)
	}
	if len(c.calls) != 1 || c.calls[0] != spec {
		t.Errorf("expected %+v, got %+v", spec, c.calls)
	}
}
