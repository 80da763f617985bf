package ambient

import "math"

const (
	maxBatch      = 3    // most particles one Spawn call can emit
	spawnJitter   = 10.0 // full width of the positional jitter window
	pointerScale  = 0.05 // pointer delta to spawn velocity
	autoStep      = 0.016
	velocityScale = 0.1
	spreadScale   = 0.05
)

// Spawner turns a position and velocity into a small batch of liquid
// particles. The store's cap is enforced right after every batch.
type Spawner struct {
	store      *Store
	palette    []Color
	mouseForce float64
	cursorSize float64
	max        int
	rng        randSource
}

// NewSpawner creates a Spawner writing into store. An empty palette falls
// back to FallbackColor.
func NewSpawner(store *Store, palette []Color, cfg LiquidConfig, rng randSource) *Spawner {
	if len(palette) == 0 {
		palette = []Color{FallbackColor}
	}
	return &Spawner{
		store:      store,
		palette:    palette,
		mouseForce: cfg.MouseForce,
		cursorSize: cfg.CursorSize,
		max:        cfg.MaxParticles,
		rng:        rng,
	}
}

// BatchSize returns how many particles a spawn with velocity (vx, vy) emits:
// min(3, floor(speed*3)+1).
func BatchSize(vx, vy float64) int {
	speed := math.Sqrt(vx*vx + vy*vy)
	return min(maxBatch, int(math.Floor(speed*3))+1)
}

// Spawn emits a batch at (x, y) and returns the number of particles added.
// colorIndex wraps around the palette.
func (sp *Spawner) Spawn(x, y, vx, vy float64, colorIndex int) int {
	count := BatchSize(vx, vy)
	color := sp.palette[wrapIndex(colorIndex, len(sp.palette))]

	for i := 0; i < count; i++ {
		angle := sp.rng.Float64() * math.Pi * 2
		spread := sp.rng.Float64() * sp.mouseForce * spreadScale
		size := sp.cursorSize * (0.2 + sp.rng.Float64()*0.5)

		sp.store.Push(Particle{
			X:     x + (sp.rng.Float64()-0.5)*spawnJitter,
			Y:     y + (sp.rng.Float64()-0.5)*spawnJitter,
			VX:    vx*sp.mouseForce*velocityScale + math.Cos(angle)*spread,
			VY:    vy*sp.mouseForce*velocityScale + math.Sin(angle)*spread,
			Color: color,
			Size:  size,
			Life:  1,
		})
	}
	sp.store.EnforceCap(sp.max)
	return count
}

// RandomColor returns a uniformly random palette index.
func (sp *Spawner) RandomColor() int {
	return sp.rng.IntN(len(sp.palette))
}

func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// AutoDriver produces a synthetic pointer path so the liquid sketch keeps
// moving without input. The path is a Lissajous curve over the canvas.
type AutoDriver struct {
	Speed float64
	t     float64
}

// Step advances the clock by 0.016*Speed and returns the spawn parameters
// for a w x h canvas.
func (d *AutoDriver) Step(w, h float64) (x, y, vx, vy float64, colorIndex int) {
	d.t += autoStep * d.Speed
	t := d.t
	x = (math.Sin(t)*0.5 + 0.5) * w
	y = (math.Cos(t*0.7)*0.5 + 0.5) * h
	vx = math.Cos(t*3) * 0.01
	vy = math.Sin(t*3) * 0.01
	colorIndex = int(math.Floor(t * 2))
	return
}

// Time returns the driver's clock.
func (d *AutoDriver) Time() float64 {
	return d.t
}

// Reset rewinds the clock to zero.
func (d *AutoDriver) Reset() {
	d.t = 0
}
