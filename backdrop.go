package ambient

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// backdropSize is the edge of the generated gradient texture. It is scaled
// to the screen with linear filtering.
const backdropSize = 64

// gradientStop is a color at an offset in [0, 1] along a gradient.
type gradientStop struct {
	at    float64
	color Color
}

// backdropStops is the static background shown when no canvas is available:
// a 135 degree gradient from #0a0f1e through #0d1526 to #0a1628.
var backdropStops = []gradientStop{
	{0, RGB8(0x0a, 0x0f, 0x1e)},
	{0.5, RGB8(0x0d, 0x15, 0x26)},
	{1, RGB8(0x0a, 0x16, 0x28)},
}

// gradientAt samples a multi-stop gradient at t. Stops must be sorted.
func gradientAt(stops []gradientStop, t float64) Color {
	if len(stops) == 0 {
		return Color{}
	}
	if t <= stops[0].at {
		return stops[0].color
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t > b.at {
			continue
		}
		span := float32(b.at - a.at)
		local := float32(t - a.at)
		mix := func(x, y float64) float64 {
			return float64(ease.Linear(local, float32(x), float32(y-x), span))
		}
		return Color{
			R: mix(a.color.R, b.color.R),
			G: mix(a.color.G, b.color.G),
			B: mix(a.color.B, b.color.B),
			A: mix(a.color.A, b.color.A),
		}
	}
	return stops[len(stops)-1].color
}

// backdropPixels renders the diagonal gradient into premultiplied RGBA
// bytes. Top-left is the first stop, bottom-right the last.
func backdropPixels(size int) []byte {
	pix := make([]byte, size*size*4)
	denom := float64(2 * max(size-1, 1))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := gradientAt(backdropStops, float64(x+y)/denom).toRGBA()
			off := (y*size + x) * 4
			pix[off+0] = c.R
			pix[off+1] = c.G
			pix[off+2] = c.B
			pix[off+3] = c.A
		}
	}
	return pix
}

// drawBackdrop stretches the cached gradient over the whole screen.
func (s *Stage) drawBackdrop(screen *ebiten.Image) {
	if s.backdrop == nil {
		s.backdrop = ebiten.NewImage(backdropSize, backdropSize)
		s.backdrop.WritePixels(backdropPixels(backdropSize))
	}
	b := screen.Bounds()
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(float64(b.Dx())/backdropSize, float64(b.Dy())/backdropSize)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(s.backdrop, &op)
}
