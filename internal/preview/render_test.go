package preview

import (
	"bytes"
	"testing"

	"wingforge/internal/wing"
)

func TestRenderProducesDrawing(t *testing.T) {
	p := wing.DefaultParams()
	sections, err := wing.BuildSections(p)
	if err != nil {
		t.Fatalf("BuildSections: %v", err)
	}

	img := Render(sections, 256)

	b := img.Bounds()
	if b.Dx() != 256 || b.Dy() != 256 {
		t.Fatalf("preview size = %dx%d, expected 256x256", b.Dx(), b.Dy())
	}

	// The drawing must touch pixels beyond the flat background.
	background := img.NRGBAAt(0, 0)
	var drawn int
	for y := 0; y < 256; y++ {
		for x := 0; x < 256; x++ {
			if img.NRGBAAt(x, y) != background {
				drawn++
			}
		}
	}
	if drawn == 0 {
		t.Error("preview contains only background")
	}
}

func TestRenderEmptySections(t *testing.T) {
	img := Render(nil, 64)
	if img.Bounds().Dx() != 64 {
		t.Fatalf("size = %d, expected 64", img.Bounds().Dx())
	}
}

func TestEncodeWebP(t *testing.T) {
	p := wing.DefaultParams()
	p.NumSections = 5
	p.PointsPerSurface = 10
	sections, _ := wing.BuildSections(p)

	var buf bytes.Buffer
	if err := EncodeWebP(&buf, Render(sections, 64)); err != nil {
		t.Fatalf("EncodeWebP: %v", err)
	}
	if buf.Len() < 12 || string(buf.Bytes()[:4]) != "RIFF" {
		t.Errorf("webp output missing RIFF header")
	}
}

func TestDownsampleKeepsSmallImages(t *testing.T) {
	img := Render(nil, 32)
	if got := Downsample(img, 64); got != img {
		t.Error("downsample should pass through images at or below target size")
	}
}

func TestClamp8(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-5, 0},
		{0, 0},
		{127.6, 128},
		{255, 255},
		{300, 255},
	}
	for _, tt := range tests {
		if got := clamp8(tt.in); got != tt.want {
			t.Errorf("clamp8(%g) = %d, expected %d", tt.in, got, tt.want)
		}
	}
}
