package ambient

import (
	"image/color"
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertWithin(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v ± %v", name, got, want, tol)
	}
}

// --- recording canvas ---

type opKind uint8

const (
	opFill opKind = iota
	opFillRect
	opStrokeRect
	opStrokeLine
	opFillCircle
	opStrokeCircle
	opRadialDisc
	opText
)

type drawOp struct {
	kind           opKind
	x0, y0, x1, y1 float64
	radius, width  float64
	size           float64
	rect           Rect
	text           string
	color          Color
}

// recordCanvas is a Canvas that records draw calls instead of rasterizing.
type recordCanvas struct {
	w, h     int
	ops      []drawOp
	resizes  int
	released bool
}

func newRecordCanvas(w, h int) *recordCanvas {
	return &recordCanvas{w: w, h: h}
}

func (c *recordCanvas) Size() (int, int) { return c.w, c.h }

func (c *recordCanvas) Resize(w, h int) {
	c.w, c.h = w, h
	c.resizes++
	c.ops = c.ops[:0]
}

func (c *recordCanvas) Fill(col Color) {
	c.ops = append(c.ops, drawOp{kind: opFill, color: col})
}

func (c *recordCanvas) FillRect(r Rect, col Color) {
	c.ops = append(c.ops, drawOp{kind: opFillRect, rect: r, color: col})
}

func (c *recordCanvas) StrokeRect(r Rect, width float64, col Color) {
	c.ops = append(c.ops, drawOp{kind: opStrokeRect, rect: r, width: width, color: col})
}

func (c *recordCanvas) StrokeLine(x0, y0, x1, y1, width float64, col Color) {
	c.ops = append(c.ops, drawOp{kind: opStrokeLine, x0: x0, y0: y0, x1: x1, y1: y1, width: width, color: col})
}

func (c *recordCanvas) FillCircle(cx, cy, radius float64, col Color) {
	c.ops = append(c.ops, drawOp{kind: opFillCircle, x0: cx, y0: cy, radius: radius, color: col})
}

func (c *recordCanvas) StrokeCircle(cx, cy, radius, width float64, col Color) {
	c.ops = append(c.ops, drawOp{kind: opStrokeCircle, x0: cx, y0: cy, radius: radius, width: width, color: col})
}

func (c *recordCanvas) RadialDisc(cx, cy, radius float64, col Color) {
	c.ops = append(c.ops, drawOp{kind: opRadialDisc, x0: cx, y0: cy, radius: radius, color: col})
}

func (c *recordCanvas) Text(s string, x, y, size float64, col Color) {
	c.ops = append(c.ops, drawOp{kind: opText, x0: x, y0: y, size: size, text: s, color: col})
}

func (c *recordCanvas) Release() {
	c.released = true
}

func (c *recordCanvas) count(kind opKind) int {
	n := 0
	for _, op := range c.ops {
		if op.kind == kind {
			n++
		}
	}
	return n
}

// sameRGB reports whether a and b have the same color channels, ignoring alpha.
func sameRGB(a, b Color) bool {
	return math.Abs(a.R-b.R) < epsilon && math.Abs(a.G-b.G) < epsilon && math.Abs(a.B-b.B) < epsilon
}

// --- Color ---

func TestRGB8(t *testing.T) {
	c := RGB8(255, 0, 51)
	assertNear(t, "R", c.R, 1)
	assertNear(t, "G", c.G, 0)
	assertNear(t, "B", c.B, 0.2)
	assertNear(t, "A", c.A, 1)
}

func TestColorToRGBAPremultiplies(t *testing.T) {
	tests := []struct {
		name string
		in   Color
		want color.RGBA
	}{
		{"opaque white", Color{1, 1, 1, 1}, color.RGBA{255, 255, 255, 255}},
		{"half white", Color{1, 1, 1, 0.5}, color.RGBA{128, 128, 128, 128}},
		{"transparent", Color{1, 0, 0, 0}, color.RGBA{0, 0, 0, 0}},
		{"trail black", Color{0, 0, 0, 0.08}, color.RGBA{0, 0, 0, 20}},
		{"clamped", Color{2, -1, 0.5, 1.5}, color.RGBA{255, 0, 128, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.toRGBA(); got != tt.want {
				t.Errorf("%v.toRGBA() = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestWithAlphaKeepsChannels(t *testing.T) {
	c := Color{0.1, 0.2, 0.3, 1}.WithAlpha(0.25)
	if c != (Color{0.1, 0.2, 0.3, 0.25}) {
		t.Errorf("WithAlpha = %v", c)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{10, 20, 100, 50}
	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 9, 40, false},
		{"outside below", 50, 71, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.expect {
				t.Errorf("Rect%v.Contains(%v, %v) = %v, want %v", r, tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

func TestRangeRandom(t *testing.T) {
	rng := newRand(1)
	fixed := Range{3, 3}
	if v := fixed.random(rng); v != 3 {
		t.Errorf("fixed range = %v, want 3", v)
	}
	r := Range{-2, 5}
	for i := 0; i < 1000; i++ {
		v := r.random(rng)
		if v < -2 || v >= 5 {
			t.Fatalf("random() = %v, outside [-2, 5)", v)
		}
	}
}
