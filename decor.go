package ambient

import "math"

var (
	hexStroke     = RGB8(167, 139, 250)
	circuitStroke = RGB8(34, 211, 238).WithAlpha(0.03)
	rainFill      = RGB8(34, 211, 238).WithAlpha(0.03)
)

const (
	hexSize        = 40.0
	circuitSpacing = 60.0
	circuitStep    = 30.0
	rainColumn     = 40.0
	rainRow        = 20.0
	rainFontSize   = 10.0
)

// drawHexGrid strokes a flat-packed hex grid whose alpha pulses slowly
// across rows and columns.
func drawHexGrid(c Canvas, w, h, now float64) {
	hexHeight := hexSize * math.Sqrt(3)
	for row := -1; float64(row) < h/hexHeight+1; row++ {
		for col := -1; float64(col) < w/(hexSize*1.5)+1; col++ {
			x := float64(col) * hexSize * 1.5
			y := float64(row) * hexHeight
			if col%2 != 0 {
				y += hexHeight / 2
			}
			pulse := math.Sin(now*0.001+float64(col)*0.1+float64(row)*0.1)*0.5 + 0.5
			strokeHex(c, x, y, hexStroke.WithAlpha(0.02+pulse*0.02))
		}
	}
}

func strokeHex(c Canvas, x, y float64, col Color) {
	var px, py [6]float64
	for i := 0; i < 6; i++ {
		angle := math.Pi/3*float64(i) + math.Pi/6
		px[i] = x + hexSize*math.Cos(angle)
		py[i] = y + hexSize*math.Sin(angle)
	}
	for i := 0; i < 6; i++ {
		j := (i + 1) % 6
		c.StrokeLine(px[i], py[i], px[j], py[j], 0.5, col)
	}
}

// drawCircuitLines strokes two perpendicular families of wavy lines.
func drawCircuitLines(c Canvas, w, h, now float64) {
	for y := 0.0; y < h; y += circuitSpacing {
		prevX, prevY := 0.0, y
		for x := 0.0; x < w; x += circuitStep {
			ny := y + math.Sin((x+now*0.5)*0.01)*5
			c.StrokeLine(prevX, prevY, x, ny, 1, circuitStroke)
			prevX, prevY = x, ny
		}
	}
	for x := 0.0; x < w; x += circuitSpacing {
		prevX, prevY := x, 0.0
		for y := 0.0; y < h; y += circuitStep {
			nx := x + math.Cos((y+now*0.5)*0.01)*5
			c.StrokeLine(prevX, prevY, nx, y, 1, circuitStroke)
			prevX, prevY = nx, y
		}
	}
}

// drawBinaryRain scatters random 0/1 glyphs on a scrolling grid.
func drawBinaryRain(c Canvas, w, h, now float64, rng randSource) {
	if h <= 0 {
		return
	}
	for x := 0.0; x < w; x += rainColumn {
		offset := math.Mod(now*0.05+x, h)
		for y := 0.0; y < h; y += rainRow {
			glyph := "0"
			if rng.Float64() > 0.5 {
				glyph = "1"
			}
			c.Text(glyph, x, math.Mod(y+offset, h), rainFontSize, rainFill)
		}
	}
}
