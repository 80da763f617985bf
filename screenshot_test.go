package ambient

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestScreenshotQueues(t *testing.T) {
	s := NewStage(800, 600)
	s.Screenshot("test1")
	s.Screenshot("test2")
	if len(s.screenshotQueue) != 2 {
		t.Fatalf("expected 2 queued, got %d", len(s.screenshotQueue))
	}
	if s.screenshotQueue[0].label != "test1" || s.screenshotQueue[1].label != "test2" {
		t.Error("queue order mismatch")
	}
	for _, req := range s.screenshotQueue {
		if req.layer != screenCapture {
			t.Errorf("%q targets layer %d, want the screen", req.label, req.layer)
		}
	}
}

func TestScreenshotLayerQueues(t *testing.T) {
	s := NewStage(800, 600)
	s.ScreenshotLayer("liquid", 0)
	s.ScreenshotLayer("tech", 1)
	s.ScreenshotLayer("clamped", -3)

	want := []screenshotRequest{{"liquid", 0}, {"tech", 1}, {"clamped", 0}}
	if len(s.screenshotQueue) != len(want) {
		t.Fatalf("queued %d, want %d", len(s.screenshotQueue), len(want))
	}
	for i, req := range want {
		if s.screenshotQueue[i] != req {
			t.Errorf("request %d = %+v, want %+v", i, s.screenshotQueue[i], req)
		}
	}
}

func TestScreenshotFileName(t *testing.T) {
	tests := []struct {
		req  screenshotRequest
		want string
	}{
		{screenshotRequest{"after path", screenCapture}, "20260101_120000_after_path.png"},
		{screenshotRequest{"tech", 1}, "20260101_120000_tech_layer1.png"},
		{screenshotRequest{"", 0}, "20260101_120000_unlabeled_layer0.png"},
	}
	for _, tt := range tests {
		if got := tt.req.fileName("20260101_120000"); got != tt.want {
			t.Errorf("fileName(%+v) = %q, want %q", tt.req, got, tt.want)
		}
	}
}

func TestLayerImageWithoutImageCanvas(t *testing.T) {
	s := newTestStage(800, 600, nil)
	c := NewController(&spySketch{})
	_ = c.Mount(s)

	for _, i := range []int{-1, 0, 1} {
		if img := s.layerImage(i); img != nil {
			t.Errorf("layerImage(%d) = %v, want nil", i, img)
		}
	}
}

func TestScreenshotDirDefault(t *testing.T) {
	s := NewStage(800, 600)
	if s.ScreenshotDir != "screenshots" {
		t.Errorf("expected default dir 'screenshots', got %q", s.ScreenshotDir)
	}
}

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"simple", "simple"},
		{"with spaces", "with_spaces"},
		{"has/slash", "has_slash"},
		{"dots.and-dashes", "dots.and-dashes"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"a:b*c?d", "a_b_c_d"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		128, 64, 0, 128, // half-transparent
		10, 20, 30, 255, // opaque
		0, 0, 0, 0, // clear
	}
	img := unpremultiply(pixels, 3, 1)

	want := []byte{255, 127, 0, 128, 10, 20, 30, 255, 0, 0, 0, 0}
	for i, b := range want {
		if img.Pix[i] != b {
			t.Errorf("Pix[%d] = %d, want %d", i, img.Pix[i], b)
		}
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	img := unpremultiply([]byte{255, 0, 0, 255, 0, 0, 0, 0}, 2, 1)
	if err := writePNG(path, img); err != nil {
		t.Fatalf("writePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 2 || b.Dy() != 1 {
		t.Errorf("bounds = %v", b)
	}
}

func TestWritePNGBadPath(t *testing.T) {
	img := unpremultiply(make([]byte, 4), 1, 1)
	if err := writePNG(filepath.Join(t.TempDir(), "missing", "out.png"), img); err == nil {
		t.Error("expected error for missing directory")
	}
}
