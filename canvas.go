package ambient

// Canvas is the 2D drawing surface the sketches render to. Colors are
// straight alpha; implementations premultiply at submission time. Drawing
// uses source-over compositing.
type Canvas interface {
	// Size returns the logical pixel dimensions.
	Size() (w, h int)
	// Resize changes the dimensions and clears the contents.
	Resize(w, h int)
	// Fill replaces every pixel with c.
	Fill(c Color)
	// FillRect composites a filled rectangle.
	FillRect(r Rect, c Color)
	// StrokeRect composites a rectangle outline.
	StrokeRect(r Rect, width float64, c Color)
	// StrokeLine composites a line segment.
	StrokeLine(x0, y0, x1, y1, width float64, c Color)
	// FillCircle composites a filled disc.
	FillCircle(cx, cy, radius float64, c Color)
	// StrokeCircle composites a circle outline.
	StrokeCircle(cx, cy, radius, width float64, c Color)
	// RadialDisc composites a disc whose alpha falls linearly from c.A at
	// the center to zero at radius.
	RadialDisc(cx, cy, radius float64, c Color)
	// Text composites monospace text with its alphabetic baseline at y.
	Text(s string, x, y, size float64, c Color)
}

// CanvasFactory acquires a Canvas of the given size. It returns an error
// when no 2D surface can be provided.
type CanvasFactory func(w, h int) (Canvas, error)

// releaser is implemented by canvases that hold GPU resources.
type releaser interface {
	Release()
}
