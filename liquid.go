package ambient

import "math"

// trailColor is painted over the whole canvas every frame instead of a
// hard clear, so earlier frames fade out.
var trailColor = Color{0, 0, 0, 0.08}

// Liquid is the cursor-trail sketch: soft radial discs that drift, slow
// down and fade, spawned from pointer motion and an optional autonomous
// path.
type Liquid struct {
	cfg     LiquidConfig
	store   *Store
	spawner *Spawner
	auto    AutoDriver
	pointer Pointer
	w, h    float64
}

// Pointer is the last known and previous pointer position in canvas-local
// coordinates. Known is false until the first sample arrives.
type Pointer struct {
	X, Y         float64
	PrevX, PrevY float64
	Known        bool
}

// NewLiquid creates a liquid sketch. The palette is resolved from theme
// once, here. Zero numeric fields that would be invalid take their
// DefaultLiquidConfig values.
func NewLiquid(cfg LiquidConfig, theme Theme) *Liquid {
	cfg = cfg.withDefaults()
	store := NewStore(cfg.MaxParticles + maxBatch)
	return &Liquid{
		cfg:     cfg,
		store:   store,
		spawner: NewSpawner(store, theme.Palette(), cfg, newRand(cfg.Seed)),
		auto:    AutoDriver{Speed: cfg.AutoSpeed},
	}
}

// Store exposes the particle store.
func (l *Liquid) Store() *Store {
	return l.store
}

// Len returns the live particle count.
func (l *Liquid) Len() int {
	return l.store.Len()
}

// Resize records the new canvas size. Live particles are kept.
func (l *Liquid) Resize(w, h int) {
	l.w, l.h = float64(w), float64(h)
}

// PointerMove handles a pointer sample. The first sample only seeds the
// pointer state; afterwards a batch is spawned whenever the raw delta
// exceeds one pixel.
func (l *Liquid) PointerMove(x, y float64) {
	p := &l.pointer
	if !p.Known {
		p.X, p.Y = x, y
		p.PrevX, p.PrevY = x, y
		p.Known = true
		return
	}

	dx := x - p.X
	dy := y - p.Y
	if math.Sqrt(dx*dx+dy*dy) > 1 {
		l.spawner.Spawn(x, y, dx*pointerScale, dy*pointerScale, l.spawner.RandomColor())
	}
	p.PrevX, p.PrevY = p.X, p.Y
	p.X, p.Y = x, y
}

// Pointer returns the current pointer state.
func (l *Liquid) Pointer() Pointer {
	return l.pointer
}

// Frame runs one animation step: update, autonomous spawn, render.
func (l *Liquid) Frame(c Canvas, now float64) {
	l.step()
	l.render(c)
}

// step advances and prunes the population, then feeds the auto driver.
func (l *Liquid) step() {
	l.store.Update(l.cfg.Damping)
	l.store.Prune()

	if l.cfg.AutoDemo {
		x, y, vx, vy, ci := l.auto.Step(l.w, l.h)
		l.spawner.Spawn(x, y, vx, vy, ci)
	}
}

func (l *Liquid) render(c Canvas) {
	w, h := c.Size()
	c.FillRect(Rect{Width: float64(w), Height: float64(h)}, trailColor)

	for _, p := range l.store.Particles() {
		c.RadialDisc(p.X, p.Y, p.Size, p.Color.WithAlpha(p.Life*0.6))
	}
}

// Reset drops every particle and the pointer and auto-driver state.
func (l *Liquid) Reset() {
	l.store.Reset()
	l.pointer = Pointer{}
	l.auto.Reset()
}
