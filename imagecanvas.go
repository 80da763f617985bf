package ambient

import (
	"bytes"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gomono"
)

// discRadius is the radius of the cached gradient texture. Discs of any
// size are drawn by scaling it.
const discRadius = 64

// fontSizeStep is the granularity of cached text faces.
const fontSizeStep = 0.5

// ImageCanvas is a Canvas backed by a persistent offscreen *ebiten.Image.
// Because the image is not cleared between frames, partial-alpha fills
// produce trails.
type ImageCanvas struct {
	image *ebiten.Image
	w, h  int

	disc   *ebiten.Image
	source *text.GoTextFaceSource
	faces  map[float64]*text.GoTextFace
}

// NewImageCanvas allocates a w x h canvas. It fails when the monospace
// face cannot be loaded.
func NewImageCanvas(w, h int) (Canvas, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, fmt.Errorf("ambient: failed to load monospace face: %w", err)
	}
	c := &ImageCanvas{
		source: source,
		faces:  make(map[float64]*text.GoTextFace),
	}
	c.Resize(w, h)
	return c, nil
}

// Image returns the backing image for compositing onto the screen.
func (c *ImageCanvas) Image() *ebiten.Image {
	return c.image
}

// Size returns the logical canvas size. A zero-sized canvas keeps a 1x1
// backing image because Ebitengine rejects empty images.
func (c *ImageCanvas) Size() (int, int) {
	return c.w, c.h
}

// Resize reallocates the backing image. Contents are discarded.
func (c *ImageCanvas) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	if c.image != nil {
		if c.w == w && c.h == h {
			c.image.Clear()
			return
		}
		c.image.Deallocate()
	}
	c.w, c.h = w, h
	c.image = ebiten.NewImage(max(w, 1), max(h, 1))
}

// Release frees the backing images.
func (c *ImageCanvas) Release() {
	if c.image != nil {
		c.image.Deallocate()
		c.image = nil
	}
	if c.disc != nil {
		c.disc.Deallocate()
		c.disc = nil
	}
}

func (c *ImageCanvas) Fill(col Color) {
	c.image.Fill(col.toRGBA())
}

func (c *ImageCanvas) FillRect(r Rect, col Color) {
	vector.DrawFilledRect(c.image, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), col.toRGBA(), false)
}

func (c *ImageCanvas) StrokeRect(r Rect, width float64, col Color) {
	vector.StrokeRect(c.image, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), float32(width), col.toRGBA(), true)
}

func (c *ImageCanvas) StrokeLine(x0, y0, x1, y1, width float64, col Color) {
	vector.StrokeLine(c.image, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), col.toRGBA(), true)
}

func (c *ImageCanvas) FillCircle(cx, cy, radius float64, col Color) {
	vector.DrawFilledCircle(c.image, float32(cx), float32(cy), float32(radius), col.toRGBA(), true)
}

func (c *ImageCanvas) StrokeCircle(cx, cy, radius, width float64, col Color) {
	vector.StrokeCircle(c.image, float32(cx), float32(cy), float32(radius), float32(width), col.toRGBA(), true)
}

// RadialDisc scales the cached gradient texture to radius and tints it.
func (c *ImageCanvas) RadialDisc(cx, cy, radius float64, col Color) {
	if radius <= 0 || col.A <= 0 {
		return
	}
	if c.disc == nil {
		c.disc = generateDisc(discRadius)
	}
	s := radius / discRadius
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(-discRadius, -discRadius)
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(cx, cy)
	a := clamp01(col.A)
	op.ColorScale.Scale(float32(col.R*a), float32(col.G*a), float32(col.B*a), float32(a))
	op.Filter = ebiten.FilterLinear
	c.image.DrawImage(c.disc, &op)
}

// Text draws s in the monospace face with the baseline at y.
func (c *ImageCanvas) Text(s string, x, y, size float64, col Color) {
	face := c.face(size)
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y-face.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(col.toRGBA())
	text.Draw(c.image, s, face, op)
}

// face returns the cached face for size rounded to fontSizeStep, so glyph
// particles of nearly equal size share one face and its glyph cache.
func (c *ImageCanvas) face(size float64) *text.GoTextFace {
	size = quantizeFontSize(size)
	if f, ok := c.faces[size]; ok {
		return f
	}
	f := &text.GoTextFace{Source: c.source, Size: size}
	c.faces[size] = f
	return f
}

func quantizeFontSize(size float64) float64 {
	return max(math.Round(size/fontSizeStep)*fontSizeStep, fontSizeStep)
}

// generateDisc creates a white disc whose alpha falls linearly from 1 at
// the center to 0 at the edge. Premultiplied.
func generateDisc(radius float64) *ebiten.Image {
	size := int(math.Ceil(radius * 2))
	img := ebiten.NewImage(size, size)
	img.WritePixels(discPixels(radius))
	return img
}

// discPixels returns the premultiplied RGBA bytes of a generateDisc image.
func discPixels(radius float64) []byte {
	size := int(math.Ceil(radius * 2))
	pix := make([]byte, size*size*4)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - radius
			dy := float64(y) + 0.5 - radius
			dist := math.Sqrt(dx*dx+dy*dy) / radius
			a := uint8(clamp01(1-dist) * 255)
			off := (y*size + x) * 4
			pix[off+0] = a
			pix[off+1] = a
			pix[off+2] = a
			pix[off+3] = a
		}
	}
	return pix
}
