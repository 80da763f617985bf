package ambient

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var fpsBackground = Color{0, 0, 0, 0.5}

// drawFPS prints the current FPS and TPS in the top-left corner over a
// semi-transparent box.
func drawFPS(screen *ebiten.Image) {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	vector.DrawFilledRect(screen, 0, 0, 100, 32, fpsBackground.toRGBA(), false)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}
