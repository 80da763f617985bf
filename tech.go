package ambient

import "math"

// codeSymbols is the glyph table for Glyph particles.
var codeSymbols = [...]string{"</>", "{}", "[]", "()", "01", "//", "&&", "||", "=>", "++", "##", "$$"}

var (
	techBackground   = RGB8(10, 15, 30)
	linkColor        = RGB8(34, 211, 238) // cyan-400
	pointerLinkColor = RGB8(251, 146, 60) // orange-400
	techPalette      = []Color{
		RGB8(34, 211, 238),  // cyan-400
		RGB8(251, 146, 60),  // orange-400
		RGB8(167, 139, 250), // purple-400
		RGB8(74, 222, 128),  // green-400
	}
)

// Spawn ranges for tech particles.
var (
	techVelocity   = Range{-0.25, 0.25}
	techSize       = Range{1, 4}
	techOpacity    = Range{0.2, 0.7}
	techPulseSpeed = Range{0.01, 0.03}
	techPulsePhase = Range{0, 2 * math.Pi}
)

const (
	linkAlpha        = 0.15
	linkWidth        = 0.5
	pointerLinkAlpha = 0.3
	repelStrength    = 0.2
)

// Tech is the circuit background sketch: a density-sized population of
// pulsing circles, squares and code glyphs linked by proximity lines, over
// a hex grid, wavy circuit lines and binary rain. The pointer repels
// nearby particles and draws links to them.
type Tech struct {
	cfg     TechConfig
	store   *Store
	rng     randSource
	pointer Pointer
	w, h    float64
}

// NewTech creates a tech sketch. The population is created on the first
// Resize. Zero Density, link distances and Damping take their
// DefaultTechConfig values.
func NewTech(cfg TechConfig) *Tech {
	cfg = cfg.withDefaults()
	return &Tech{
		cfg:   cfg,
		store: NewStore(0),
		rng:   newRand(cfg.Seed),
	}
}

// Store exposes the particle store.
func (t *Tech) Store() *Store {
	return t.store
}

// Len returns the live particle count.
func (t *Tech) Len() int {
	return t.store.Len()
}

// Capacity returns floor(w*h/density) for the current canvas size.
func (t *Tech) Capacity() int {
	return techCapacity(t.w, t.h, t.cfg.Density)
}

func techCapacity(w, h, density float64) int {
	if w <= 0 || h <= 0 || density <= 0 {
		return 0
	}
	return int(math.Floor(w * h / density))
}

// Resize records the new canvas size and rebuilds the whole population.
func (t *Tech) Resize(w, h int) {
	t.w, t.h = float64(w), float64(h)
	t.populate()
}

// populate replaces the population with Capacity() fresh particles.
func (t *Tech) populate() {
	n := t.Capacity()
	t.store.Reset()
	for i := 0; i < n; i++ {
		t.store.Push(t.newParticle())
	}
	t.store.EnforceCap(n)
}

func (t *Tech) newParticle() Particle {
	p := Particle{
		X:       t.rng.Float64() * t.w,
		Y:       t.rng.Float64() * t.h,
		VX:      techVelocity.random(t.rng),
		VY:      techVelocity.random(t.rng),
		Size:    techSize.random(t.rng),
		Color:   techPalette[t.rng.IntN(len(techPalette))],
		Life:    1,
		Opacity: techOpacity.random(t.rng),
		Pulse: Pulse{
			Speed:  techPulseSpeed.random(t.rng),
			Offset: techPulsePhase.random(t.rng),
		},
	}
	switch t.rng.IntN(3) {
	case 0:
		p.Shape = Circle{}
	case 1:
		p.Shape = Square{}
	default:
		p.Shape = Glyph{FontSize: 8 + p.Size*2}
	}
	return p
}

// PointerMove records the pointer position. Tech never spawns from input.
func (t *Tech) PointerMove(x, y float64) {
	p := &t.pointer
	p.PrevX, p.PrevY = p.X, p.Y
	p.X, p.Y = x, y
	p.Known = true
}

// Pointer returns the current pointer state.
func (t *Tech) Pointer() Pointer {
	return t.pointer
}

// Frame runs one animation step: update then render at timestamp now (ms).
func (t *Tech) Frame(c Canvas, now float64) {
	t.update()
	t.render(c, now)
}

// update moves particles, bounces them off the canvas edges, applies
// pointer repulsion and damps velocity.
func (t *Tech) update() {
	items := t.store.Particles()
	for i := range items {
		p := &items[i]
		p.X += p.VX
		p.Y += p.VY

		if p.X < 0 || p.X > t.w {
			p.VX = -p.VX
		}
		if p.Y < 0 || p.Y > t.h {
			p.VY = -p.VY
		}

		if t.pointer.Known {
			dx := p.X - t.pointer.X
			dy := p.Y - t.pointer.Y
			d := math.Sqrt(dx*dx + dy*dy)
			if d < t.cfg.RepelRadius && d > 0 {
				force := (t.cfg.RepelRadius - d) / t.cfg.RepelRadius
				p.VX += dx / d * force * repelStrength
				p.VY += dy / d * force * repelStrength
			}
		}

		p.VX *= t.cfg.Damping
		p.VY *= t.cfg.Damping
	}
}

// render paints back to front: background, decorations, links, particles.
func (t *Tech) render(c Canvas, now float64) {
	c.Fill(techBackground)

	w, h := c.Size()
	fw, fh := float64(w), float64(h)
	if t.cfg.Decorations {
		drawHexGrid(c, fw, fh, now)
		drawCircuitLines(c, fw, fh, now)
		drawBinaryRain(c, fw, fh, now, t.rng)
	}

	items := t.store.Particles()
	t.drawLinks(c, items)
	t.drawPointerLinks(c, items)
	for i := range items {
		drawTechParticle(c, &items[i], now)
	}
}

// drawLinks strokes a line between every pair closer than LinkDistance.
func (t *Tech) drawLinks(c Canvas, items []Particle) {
	maxD := t.cfg.LinkDistance
	for i := range items {
		for j := i + 1; j < len(items); j++ {
			d := distance(items[i].X, items[i].Y, items[j].X, items[j].Y)
			if d < maxD {
				c.StrokeLine(items[i].X, items[i].Y, items[j].X, items[j].Y,
					linkWidth, linkColor.WithAlpha(falloff(d, maxD, linkAlpha)))
			}
		}
	}
}

// drawPointerLinks strokes a line from the pointer to every particle closer
// than PointerLinkDistance.
func (t *Tech) drawPointerLinks(c Canvas, items []Particle) {
	if !t.pointer.Known {
		return
	}
	maxD := t.cfg.PointerLinkDistance
	px, py := t.pointer.X, t.pointer.Y
	for i := range items {
		d := distance(items[i].X, items[i].Y, px, py)
		if d < maxD {
			c.StrokeLine(items[i].X, items[i].Y, px, py,
				1, pointerLinkColor.WithAlpha(falloff(d, maxD, pointerLinkAlpha)))
		}
	}
}

// drawTechParticle renders p according to its shape.
func drawTechParticle(c Canvas, p *Particle, now float64) {
	pulse := p.Pulse.at(now)
	opacity := p.Opacity * pulse

	switch s := p.Shape.(type) {
	case Circle:
		r := p.Size * pulse
		c.FillCircle(p.X, p.Y, r, p.Color.WithAlpha(opacity))
		c.StrokeCircle(p.X, p.Y, r*2, 1, p.Color.WithAlpha(opacity*0.2))
	case Square:
		size := p.Size * pulse * 2
		c.FillRect(Rect{p.X - size/2, p.Y - size/2, size, size}, p.Color.WithAlpha(opacity))
		c.StrokeRect(Rect{p.X - size, p.Y - size, size * 2, size * 2}, 1, p.Color.WithAlpha(opacity*0.3))
	case Glyph:
		c.Text(glyphSymbol(p.X, p.Y), p.X, p.Y, s.FontSize, p.Color.WithAlpha(opacity))
	}
}

// glyphSymbol picks codeSymbols[floor(x+y) mod len], wrapping negatives.
func glyphSymbol(x, y float64) string {
	return codeSymbols[wrapIndex(int(math.Floor(x+y)), len(codeSymbols))]
}

// falloff returns peak*(1 - d/maxD).
func falloff(d, maxD, peak float64) float64 {
	return (1 - d/maxD) * peak
}

func distance(x0, y0, x1, y1 float64) float64 {
	dx := x0 - x1
	dy := y0 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// Reset drops the population and pointer. The next Resize repopulates.
func (t *Tech) Reset() {
	t.store.Reset()
	t.pointer = Pointer{}
	t.w, t.h = 0, 0
}
