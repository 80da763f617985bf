package ambient

import (
	"math"
	"math/rand/v2"
)

const (
	// lifeDecay is the per-frame multiplicative life falloff.
	lifeDecay = 0.99
	// lifeEpsilon is the life below which a particle is pruned.
	lifeEpsilon = 0.01
)

// Shape selects how a tech particle is drawn. It is a closed set:
// Circle, Square and Glyph are the only implementations.
type Shape interface {
	isShape()
}

// Circle draws a filled disc with a faint ring at twice the radius.
type Circle struct{}

// Square draws a filled square with a faint outline at twice the size.
type Square struct{}

// Glyph draws a monospace code symbol. FontSize is fixed at spawn time.
type Glyph struct {
	FontSize float64
}

func (Circle) isShape() {}
func (Square) isShape() {}
func (Glyph) isShape()  {}

// Pulse animates opacity and size via sin(now*Speed + Offset).
type Pulse struct {
	Speed  float64 // radians per millisecond
	Offset float64 // phase in radians
}

// at returns the pulse factor in [0.4, 1.0] for the given timestamp.
func (p Pulse) at(now float64) float64 {
	return math.Sin(now*p.Speed+p.Offset)*0.3 + 0.7
}

// Particle is a transient visual entity.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Color  Color
	Size   float64
	// Life decays from 1 toward 0; the particle is pruned below 0.01.
	Life float64

	// Tech-only fields.
	Shape   Shape
	Opacity float64
	Pulse   Pulse
}

// Store is an ordered particle collection. Index 0 is the oldest particle.
type Store struct {
	items []Particle
}

// NewStore creates an empty store with room for capacity particles.
func NewStore(capacity int) *Store {
	if capacity < 0 {
		capacity = 0
	}
	return &Store{items: make([]Particle, 0, capacity)}
}

// Len returns the number of live particles.
func (s *Store) Len() int {
	return len(s.items)
}

// Particles returns the live particles, oldest first. The slice aliases the
// store and is only valid until the next mutating call.
func (s *Store) Particles() []Particle {
	return s.items
}

// Push appends p as the newest particle.
func (s *Store) Push(p Particle) {
	s.items = append(s.items, p)
}

// Reset removes all particles and keeps the backing array.
func (s *Store) Reset() {
	s.items = s.items[:0]
}

// Update advances every particle by one frame: position += velocity,
// velocity *= damping, life *= 0.99.
func (s *Store) Update(damping float64) {
	for i := range s.items {
		p := &s.items[i]
		p.X += p.VX
		p.Y += p.VY
		p.VX *= damping
		p.VY *= damping
		p.Life *= lifeDecay
	}
}

// Prune removes particles whose life dropped below 0.01. Relative order of
// the survivors is kept so cap eviction stays oldest-first.
func (s *Store) Prune() {
	n := 0
	for i := range s.items {
		if s.items[i].Life < lifeEpsilon {
			continue
		}
		s.items[n] = s.items[i]
		n++
	}
	clear(s.items[n:])
	s.items = s.items[:n]
}

// EnforceCap evicts the oldest particles until at most max remain.
func (s *Store) EnforceCap(max int) {
	if max < 0 {
		max = 0
	}
	excess := len(s.items) - max
	if excess <= 0 {
		return
	}
	copy(s.items, s.items[excess:])
	clear(s.items[max:])
	s.items = s.items[:max]
}

// randSource is the subset of *rand.Rand the spawners use.
type randSource interface {
	Float64() float64
	IntN(n int) int
}

// newRand returns a PCG-backed generator. A zero seed picks a random one.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
