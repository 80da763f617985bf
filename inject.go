package ambient

type syntheticKind uint8

const (
	syntheticMove syntheticKind = iota
	syntheticResize
)

// syntheticEvent is a queued host event. Injected events are consumed one
// per tick and replace real cursor polling for that tick.
type syntheticEvent struct {
	kind syntheticKind
	x, y float64
	w, h int
}

// InjectMove queues a pointer move to (x, y) in surface coordinates.
func (s *Stage) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticMove, x: x, y: y})
}

// InjectPath queues a straight pointer path from (fromX, fromY) to
// (toX, toY) spread over the given number of ticks. Minimum is 2.
func (s *Stage) InjectPath(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// InjectResize queues a surface resize to w x h.
func (s *Stage) InjectResize(w, h int) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticResize, w: w, h: h})
}

// processInjectedInput pops one queued event and applies it. Returns true
// if an event was consumed.
func (s *Stage) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch evt.kind {
	case syntheticMove:
		s.movePointer(evt.x, evt.y)
	case syntheticResize:
		s.requestResize(max(evt.w, 0), max(evt.h, 0))
	}
	return true
}
