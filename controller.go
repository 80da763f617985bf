package ambient

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// fadeInSeconds is how long a freshly mounted layer takes to reach full
// opacity.
const fadeInSeconds = 1.0

// ErrMounted is returned by Mount when the controller is already mounted.
var ErrMounted = errors.New("ambient: controller already mounted")

// Sketch is an animation driven by a Controller. Implemented by *Liquid and
// *Tech.
type Sketch interface {
	// Resize is called on mount and whenever the canvas size changes.
	Resize(w, h int)
	// PointerMove receives pointer samples in canvas coordinates.
	PointerMove(x, y float64)
	// Frame advances and renders one frame. now is in milliseconds.
	Frame(c Canvas, now float64)
	// Reset discards all animation state.
	Reset()
	// Len returns the live particle count.
	Len() int
}

// Controller binds a Sketch to a Stage: it owns the canvas, the pending
// frame and the event subscriptions between Mount and Unmount.
type Controller struct {
	sketch Sketch
	stage  *Stage
	canvas Canvas

	frame    FrameHandle
	resize   CallbackHandle
	pointer  CallbackHandle
	mounted  bool
	fallback bool

	fade     *gween.Tween
	alpha    float64
	lastTick float64
	frames   uint64
}

// NewController wraps sketch. Nothing happens until Mount.
func NewController(sketch Sketch) *Controller {
	return &Controller{sketch: sketch}
}

// Sketch returns the wrapped sketch.
func (c *Controller) Sketch() Sketch {
	return c.sketch
}

// Mounted reports whether the controller is attached to a stage.
func (c *Controller) Mounted() bool {
	return c.mounted
}

// Fallback reports whether canvas acquisition failed and the controller is
// showing the static backdrop instead of animating.
func (c *Controller) Fallback() bool {
	return c.fallback
}

// Alpha returns the layer opacity, tweened from 0 to 1 after mount.
func (c *Controller) Alpha() float64 {
	return c.alpha
}

// Frames returns the number of frames rendered since mount.
func (c *Controller) Frames() uint64 {
	return c.frames
}

// Mount acquires a canvas from the stage, subscribes to resize and pointer
// events and schedules the first frame. If no canvas can be acquired the
// failure is logged and the controller shows the static backdrop; this is
// not returned as an error.
func (c *Controller) Mount(s *Stage) error {
	if c.mounted {
		return ErrMounted
	}
	c.stage = s
	c.mounted = true
	c.frames = 0
	s.attach(c)

	w, h := s.Size()
	canvas, err := s.NewCanvas(w, h)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[ambient] canvas 2D not supported: %v\n", err)
		c.fallback = true
		c.alpha = 1
		return nil
	}
	c.canvas = canvas
	c.fallback = false

	c.sketch.Resize(w, h)
	c.resize = s.OnResize(c.handleResize)
	c.pointer = s.OnPointerMove(c.sketch.PointerMove)

	c.alpha = 0
	c.fade = gween.New(0, 1, fadeInSeconds, ease.OutCubic)
	c.lastTick = s.Now()
	c.frame = s.RequestFrame(c.onFrame)
	return nil
}

// Unmount cancels the pending frame, removes the event subscriptions and
// releases the canvas. The sketch is reset so a later Mount starts empty.
// Unmounting an unmounted controller is a no-op.
func (c *Controller) Unmount() {
	if !c.mounted {
		return
	}
	s := c.stage
	s.CancelFrame(c.frame)
	c.resize.Remove()
	c.pointer.Remove()
	s.detach(c)

	if r, ok := c.canvas.(releaser); ok {
		r.Release()
	}
	c.canvas = nil
	c.sketch.Reset()

	c.frame = 0
	c.resize = CallbackHandle{}
	c.pointer = CallbackHandle{}
	c.fade = nil
	c.stage = nil
	c.mounted = false
	c.fallback = false
}

func (c *Controller) handleResize(w, h int) {
	c.canvas.Resize(w, h)
	c.sketch.Resize(w, h)
}

// onFrame runs one frame and schedules the next.
func (c *Controller) onFrame(now float64) {
	if !c.mounted {
		return
	}
	var t0 time.Time
	if c.stage.debug {
		t0 = time.Now()
	}

	c.sketch.Frame(c.canvas, now)
	c.frames++

	if c.fade != nil {
		v, done := c.fade.Update(float32((now - c.lastTick) / 1000))
		c.alpha = float64(v)
		if done {
			c.alpha = 1
			c.fade = nil
		}
	}
	c.lastTick = now

	if c.stage.debug {
		c.stage.debugLog(frameStats{
			frame:     c.frames,
			particles: c.sketch.Len(),
			frameTime: time.Since(t0),
			alpha:     c.alpha,
		})
	}

	c.frame = c.stage.RequestFrame(c.onFrame)
}
