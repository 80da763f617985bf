package ambient

import (
	"fmt"
	"os"
	"time"
)

// frameStats holds per-frame timing and population metrics.
// Only populated when the stage is in debug mode.
type frameStats struct {
	frame     uint64
	particles int
	frameTime time.Duration
	alpha     float64
}

// SetDebugMode enables or disables debug mode. When enabled, every
// controller frame logs its timing and particle count to stderr.
func (s *Stage) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// debugLog prints frame stats to stderr.
func (s *Stage) debugLog(stats frameStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[ambient] frame %d | particles: %d | frame: %v | alpha: %.2f | pending: %d\n",
		stats.frame, stats.particles, stats.frameTime, stats.alpha, len(s.frames))
}
