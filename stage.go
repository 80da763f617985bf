package ambient

import "github.com/hajimehoshi/ebiten/v2"

// EventType identifies a kind of host event.
type EventType uint8

const (
	EventResize      EventType = iota // fires when the surface size changes
	EventPointerMove                  // fires when the pointer moves
)

type resizeHandler struct {
	id uint32
	fn func(w, h int)
}

type pointerHandler struct {
	id uint32
	fn func(x, y float64)
}

// handlerRegistry holds the stage-level callbacks. While an event is being
// dispatched, removals only clear fn; the slices are compacted once the
// outermost dispatch returns, so indices stay valid for the running loop.
type handlerRegistry struct {
	resize      []resizeHandler
	pointerMove []pointerHandler
	nextID      uint32

	dispatching int
	dirty       bool
}

// CallbackHandle allows removing a registered stage-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires. Removing twice
// is a no-op.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	reg := h.reg
	if reg.dispatching > 0 {
		switch h.event {
		case EventResize:
			for i := range reg.resize {
				if reg.resize[i].id == h.id {
					reg.resize[i].fn = nil
				}
			}
		case EventPointerMove:
			for i := range reg.pointerMove {
				if reg.pointerMove[i].id == h.id {
					reg.pointerMove[i].fn = nil
				}
			}
		}
		reg.dirty = true
		return
	}
	switch h.event {
	case EventResize:
		reg.resize = removeHandler(reg.resize, func(r resizeHandler) bool { return r.id == h.id })
	case EventPointerMove:
		reg.pointerMove = removeHandler(reg.pointerMove, func(p pointerHandler) bool { return p.id == h.id })
	}
}

func (r *handlerRegistry) beginDispatch() {
	r.dispatching++
}

// endDispatch drops handlers removed during the outermost dispatch.
func (r *handlerRegistry) endDispatch() {
	r.dispatching--
	if r.dispatching > 0 || !r.dirty {
		return
	}
	r.dirty = false
	r.resize = compactHandlers(r.resize, func(h resizeHandler) bool { return h.fn != nil })
	r.pointerMove = compactHandlers(r.pointerMove, func(h pointerHandler) bool { return h.fn != nil })
}

func compactHandlers[T any](s []T, keep func(T) bool) []T {
	n := 0
	for i := range s {
		if keep(s[i]) {
			s[n] = s[i]
			n++
		}
	}
	clear(s[n:])
	return s[:n]
}

func removeHandler[T any](s []T, match func(T) bool) []T {
	for i := range s {
		if match(s[i]) {
			var zero T
			copy(s[i:], s[i+1:])
			s[len(s)-1] = zero
			return s[:len(s)-1]
		}
	}
	return s
}

// FrameHandle identifies a pending frame callback.
type FrameHandle uint32

type frameRequest struct {
	id FrameHandle
	fn func(now float64)
}

// Stage is the host environment for sketches. It owns the window surface,
// dispatches pointer and resize events, and runs frame callbacks once per
// tick, in the manner of a browser's requestAnimationFrame. Stage
// implements ebiten.Game.
//
// All methods must be called from the game goroutine.
type Stage struct {
	width, height int
	pendingW      int
	pendingH      int
	resizePending bool
	outsideW      int
	outsideH      int

	handlers handlerRegistry

	frames      []frameRequest
	running     []frameRequest
	spareFrames []frameRequest
	nextFrame   FrameHandle
	now         float64 // milliseconds since the stage started

	pointerX, pointerY float64
	pointerSeen        bool

	layers []*Controller

	// NewCanvas acquires drawing surfaces for mounted controllers.
	// Defaults to NewImageCanvas.
	NewCanvas CanvasFactory
	// ClearColor fills the screen before layers are composited.
	ClearColor Color
	// ShowFPS draws the FPS/TPS overlay in the top-left corner.
	ShowFPS bool
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	screenshotQueue []screenshotRequest
	injectQueue     []syntheticEvent
	testRunner      *TestRunner
	debug           bool
	backdrop        *ebiten.Image
}

// NewStage creates a stage with an initial surface size.
func NewStage(w, h int) *Stage {
	return &Stage{
		width:         w,
		height:        h,
		outsideW:      w,
		outsideH:      h,
		NewCanvas:     NewImageCanvas,
		ClearColor:    Color{0, 0, 0, 1},
		ScreenshotDir: "screenshots",
	}
}

// Size returns the current surface size.
func (s *Stage) Size() (int, int) {
	return s.width, s.height
}

// Now returns the stage clock in milliseconds.
func (s *Stage) Now() float64 {
	return s.now
}

// Pointer returns the last pointer position seen by the stage.
func (s *Stage) Pointer() (x, y float64, ok bool) {
	return s.pointerX, s.pointerY, s.pointerSeen
}

// OnResize registers a callback for surface size changes.
func (s *Stage) OnResize(fn func(w, h int)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.resize = append(s.handlers.resize, resizeHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventResize}
}

// OnPointerMove registers a callback for pointer motion, in surface
// coordinates.
func (s *Stage) OnPointerMove(fn func(x, y float64)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.pointerMove = append(s.handlers.pointerMove, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerMove}
}

// RequestFrame schedules fn to run on the next tick. A callback requested
// while frames are running is deferred to the following tick.
func (s *Stage) RequestFrame(fn func(now float64)) FrameHandle {
	s.nextFrame++
	s.frames = append(s.frames, frameRequest{id: s.nextFrame, fn: fn})
	return s.nextFrame
}

// CancelFrame drops a pending frame callback. Unknown handles are ignored.
func (s *Stage) CancelFrame(h FrameHandle) {
	n := len(s.frames)
	s.frames = removeHandler(s.frames, func(f frameRequest) bool { return f.id == h })
	if len(s.frames) < n {
		return
	}
	for i := range s.running {
		if s.running[i].id == h {
			s.running[i].fn = nil
			return
		}
	}
}

// PendingFrames returns the number of scheduled frame callbacks.
func (s *Stage) PendingFrames() int {
	return len(s.frames)
}

// Update implements ebiten.Game. It advances the clock by one tick,
// dispatches input, then runs pending frames.
func (s *Stage) Update() error {
	s.tick(1000/float64(ebiten.TPS()), true)
	return nil
}

// tick is one host iteration. poll enables reading the real cursor; tests
// drive the stage with injected events only.
func (s *Stage) tick(dtMillis float64, poll bool) {
	s.now += dtMillis

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput(poll)
	s.flushResize()
	s.runFrames()
}

func (s *Stage) processInput(poll bool) {
	if s.processInjectedInput() {
		return
	}
	if !poll {
		return
	}
	mx, my := ebiten.CursorPosition()
	s.movePointer(float64(mx), float64(my))
}

// movePointer dispatches a pointer-move when the position changed.
func (s *Stage) movePointer(x, y float64) {
	if s.pointerSeen && x == s.pointerX && y == s.pointerY {
		return
	}
	s.pointerX, s.pointerY = x, y
	s.pointerSeen = true

	// Handlers registered during dispatch wait for the next event.
	s.handlers.beginDispatch()
	defer s.handlers.endDispatch()
	n := len(s.handlers.pointerMove)
	for i := 0; i < n; i++ {
		if fn := s.handlers.pointerMove[i].fn; fn != nil {
			fn(x, y)
		}
	}
}

// requestResize records a size change to dispatch on this tick.
func (s *Stage) requestResize(w, h int) {
	s.pendingW, s.pendingH = w, h
	s.resizePending = true
}

func (s *Stage) flushResize() {
	if !s.resizePending {
		return
	}
	s.resizePending = false
	if s.pendingW == s.width && s.pendingH == s.height {
		return
	}
	s.width, s.height = s.pendingW, s.pendingH
	if s.backdrop != nil {
		s.backdrop.Deallocate()
		s.backdrop = nil
	}

	s.handlers.beginDispatch()
	defer s.handlers.endDispatch()
	w, h := s.width, s.height
	n := len(s.handlers.resize)
	for i := 0; i < n; i++ {
		if fn := s.handlers.resize[i].fn; fn != nil {
			fn(w, h)
		}
	}
}

func (s *Stage) runFrames() {
	s.running = s.frames
	s.frames = s.spareFrames[:0]
	for i := range s.running {
		if fn := s.running[i].fn; fn != nil {
			fn(s.now)
		}
	}
	clear(s.running)
	s.spareFrames = s.running[:0]
	s.running = nil
}

// Draw implements ebiten.Game. Mounted layers are composited in mount
// order; layers in fallback mode draw the static backdrop.
func (s *Stage) Draw(screen *ebiten.Image) {
	screen.Fill(s.ClearColor.toRGBA())
	for _, c := range s.layers {
		s.drawLayer(screen, c)
	}
	if s.ShowFPS {
		drawFPS(screen)
	}
	s.flushScreenshots(screen)
}

func (s *Stage) drawLayer(screen *ebiten.Image, c *Controller) {
	if c.Fallback() {
		s.drawBackdrop(screen)
		return
	}
	ic, ok := c.canvas.(*ImageCanvas)
	if !ok || ic.Image() == nil {
		return
	}
	var op ebiten.DrawImageOptions
	op.ColorScale.ScaleAlpha(float32(c.Alpha()))
	screen.DrawImage(ic.Image(), &op)
}

// Layout implements ebiten.Game. A change of the outside size becomes a
// resize event on the next tick.
func (s *Stage) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != s.outsideW || outsideHeight != s.outsideH {
		s.outsideW, s.outsideH = outsideWidth, outsideHeight
		s.requestResize(outsideWidth, outsideHeight)
	}
	return s.width, s.height
}

func (s *Stage) attach(c *Controller) {
	s.layers = append(s.layers, c)
}

func (s *Stage) detach(c *Controller) {
	s.layers = removeHandler(s.layers, func(l *Controller) bool { return l == c })
}

// Layers returns the mounted controllers. The returned slice MUST NOT be
// mutated.
func (s *Stage) Layers() []*Controller {
	return s.layers
}
