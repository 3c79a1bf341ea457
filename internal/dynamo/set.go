package dynamo

// Set is an ordered collection of bodies stored by value, so no two
// elements can alias each other.
type Set struct {
	bodies []Body
}

func NewSet(bodies ...Body) *Set {
	s := &Set{bodies: make([]Body, 0, len(bodies))}
	s.bodies = append(s.bodies, bodies...)
	return s
}

func (s *Set) Len() int { return len(s.bodies) }

func (s *Set) Append(b Body) {
	s.bodies = append(s.bodies, b)
}

// At returns a pointer into the set. It is invalidated by RemoveAt and Append.
func (s *Set) At(i int) *Body {
	return &s.bodies[i]
}

// RemoveAt deletes element i and shifts later elements down by one.
func (s *Set) RemoveAt(i int) {
	copy(s.bodies[i:], s.bodies[i+1:])
	s.bodies[len(s.bodies)-1] = Body{}
	s.bodies = s.bodies[:len(s.bodies)-1]
}

func (s *Set) Clear() {
	clear(s.bodies)
	s.bodies = s.bodies[:0]
}

// Bodies exposes the backing slice for in-place iteration.
func (s *Set) Bodies() []Body {
	return s.bodies
}

func (s *Set) Clone() []Body {
	c := make([]Body, len(s.bodies))
	copy(c, s.bodies)
	return c
}

func (s *Set) Snapshot() []BodyState {
	out := make([]BodyState, len(s.bodies))
	for i := range s.bodies {
		out[i] = s.bodies[i].State()
	}
	return out
}
