package ambient

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	ShowFPS   bool
	Resizable bool
	// Debug enables per-frame stats on stderr.
	Debug bool
}

// Run opens a window and runs the stage until the window is closed. Width
// and Height default to the stage's current size.
func Run(s *Stage, cfg RunConfig) error {
	w, h := s.Size()
	if cfg.Width > 0 {
		w = cfg.Width
	}
	if cfg.Height > 0 {
		h = cfg.Height
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(w, h)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	s.ShowFPS = cfg.ShowFPS
	s.SetDebugMode(cfg.Debug)

	if err := ebiten.RunGame(s); err != nil {
		return fmt.Errorf("ambient: run: %w", err)
	}
	return nil
}
