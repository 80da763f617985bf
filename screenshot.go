package ambient

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// screenCapture is the layer value of a request for the composited screen.
const screenCapture = -1

// screenshotRequest is a queued capture. layer indexes Layers(), or is
// screenCapture for the whole screen.
type screenshotRequest struct {
	label string
	layer int
}

// fileName is the PNG name for the request, prefixed with stamp.
func (r screenshotRequest) fileName(stamp string) string {
	if r.layer == screenCapture {
		return fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(r.label))
	}
	return fmt.Sprintf("%s_%s_layer%d.png", stamp, sanitizeLabel(r.label), r.layer)
}

// Screenshot queues a labeled capture of the composited screen, taken at
// the end of the next Draw. The PNG is written to ScreenshotDir with a
// timestamped file name.
func (s *Stage) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, screenshotRequest{label: label, layer: screenCapture})
}

// ScreenshotLayer queues a capture of one layer's own canvas, before fade
// and compositing. layer indexes Layers() at the time of the next Draw.
// Layers without an image canvas, such as fallback layers, are skipped
// with a log line.
func (s *Stage) ScreenshotLayer(label string, layer int) {
	s.screenshotQueue = append(s.screenshotQueue, screenshotRequest{label: label, layer: max(layer, 0)})
}

// flushScreenshots writes every queued capture. Called at the end of Draw.
// Each source image is read back at most once per flush.
func (s *Stage) flushScreenshots(screen *ebiten.Image) {
	if len(s.screenshotQueue) == 0 {
		return
	}
	defer func() { s.screenshotQueue = s.screenshotQueue[:0] }()

	if err := os.MkdirAll(s.ScreenshotDir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[ambient] screenshot: mkdir %s: %v\n", s.ScreenshotDir, err)
		return
	}

	stamp := time.Now().Format("20060102_150405")
	captured := make(map[int]*image.NRGBA)
	for _, req := range s.screenshotQueue {
		img, ok := captured[req.layer]
		if !ok {
			src := screen
			if req.layer != screenCapture {
				src = s.layerImage(req.layer)
			}
			if src == nil {
				_, _ = fmt.Fprintf(os.Stderr, "[ambient] screenshot %q: layer %d has no image\n", req.label, req.layer)
				continue
			}
			img = capture(src)
			captured[req.layer] = img
		}
		path := filepath.Join(s.ScreenshotDir, req.fileName(stamp))
		if err := writePNG(path, img); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[ambient] screenshot: %v\n", err)
		}
	}
}

// layerImage returns the backing image of the layer at index i, or nil if
// there is no such layer or it does not draw into an ImageCanvas.
func (s *Stage) layerImage(i int) *ebiten.Image {
	if i < 0 || i >= len(s.layers) {
		return nil
	}
	ic, ok := s.layers[i].canvas.(*ImageCanvas)
	if !ok {
		return nil
	}
	return ic.Image()
}

// capture reads img back from the GPU as a straight-alpha image.
func capture(img *ebiten.Image) *image.NRGBA {
	b := img.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	img.ReadPixels(pixels)
	return unpremultiply(pixels, b.Dx(), b.Dy())
}

// unpremultiply converts premultiplied RGBA bytes to a straight-alpha image.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	n := min(len(pixels), len(img.Pix))
	for i := 0; i+3 < n; i += 4 {
		px := img.Pix[i : i+4 : i+4]
		copy(px, pixels[i:i+4])
		if a := int(px[3]); a > 0 && a < 255 {
			for j := 0; j < 3; j++ {
				px[j] = uint8(min(int(px[j])*255/a, 255))
			}
		}
	}
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel maps a label to a safe file name fragment. Letters, digits,
// '-' and '.' are kept and all other runes become '_'.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '.' {
			return r
		}
		return '_'
	}, label)
}
