package preview

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/HugoSmits86/nativewebp"

	"wingforge/internal/wing"
)

// Render draws a two-view preview of the lofted wing: planform (chord over
// span) in the top half, front view (dihedral bend) in the bottom half.
// The image is rasterized at 2x and downsampled for smooth edges.
func Render(sections []wing.Section, size int) *image.NRGBA {
	if size <= 0 {
		size = 512
	}
	super := size * 2
	img := image.NewNRGBA(image.Rect(0, 0, super, super))

	fill(img, color.NRGBA{R: 24, G: 26, B: 32, A: 255})

	if len(sections) == 0 {
		return Downsample(img, size)
	}

	// Shared span scale for both views.
	minY, maxY := sections[0].Y, sections[len(sections)-1].Y
	spanScale := float64(super-40) / math.Max(maxY-minY, 1e-9)

	drawPlanform(img, sections, minY, spanScale, super)
	drawFrontView(img, sections, minY, spanScale, super)

	return Downsample(img, size)
}

// EncodeWebP writes the preview image as lossless webp.
func EncodeWebP(w io.Writer, img *image.NRGBA) error {
	return nativewebp.Encode(w, img, nil)
}

func drawPlanform(img *image.NRGBA, sections []wing.Section, minY, spanScale float64, super int) {
	line := color.NRGBA{R: 120, G: 200, B: 255, A: 255}
	outline := color.NRGBA{R: 220, G: 230, B: 240, A: 255}

	// Chord scale against the widest section.
	maxChord := 0.0
	for _, s := range sections {
		maxChord = math.Max(maxChord, s.Chord)
	}
	chordScale := float64(super/2-60) / math.Max(maxChord, 1e-9)

	viewTop := 30.0
	for _, s := range sections {
		x := 20 + (s.Y-minY)*spanScale
		drawLine(img, x, viewTop, x, viewTop+s.Chord*chordScale, line)
	}

	// Leading and trailing edge outlines.
	for i := 1; i < len(sections); i++ {
		x0 := 20 + (sections[i-1].Y-minY)*spanScale
		x1 := 20 + (sections[i].Y-minY)*spanScale
		drawLine(img, x0, viewTop, x1, viewTop, outline)
		drawLine(img, x0, viewTop+sections[i-1].Chord*chordScale, x1, viewTop+sections[i].Chord*chordScale, outline)
	}
}

func drawFrontView(img *image.NRGBA, sections []wing.Section, minY, spanScale float64, super int) {
	line := color.NRGBA{R: 255, G: 180, B: 100, A: 255}

	maxZ := 0.0
	for _, s := range sections {
		maxZ = math.Max(maxZ, math.Abs(s.ZOffset))
	}
	zScale := float64(super/4-40) / math.Max(maxZ, 1e-9)
	baseline := float64(super) * 0.8

	for i := 1; i < len(sections); i++ {
		x0 := 20 + (sections[i-1].Y-minY)*spanScale
		x1 := 20 + (sections[i].Y-minY)*spanScale
		drawLine(img, x0, baseline-sections[i-1].ZOffset*zScale, x1, baseline-sections[i].ZOffset*zScale, line)
	}
}

func fill(img *image.NRGBA, c color.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

// drawLine plots a line with simple DDA stepping; the supersampled raster
// and downsample pass hide the aliasing.
func drawLine(img *image.NRGBA, x0, y0, x1, y1 float64, c color.NRGBA) {
	dx, dy := x1-x0, y1-y0
	steps := int(math.Max(math.Abs(dx), math.Abs(dy))) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		img.SetNRGBA(int(x0+dx*t+0.5), int(y0+dy*t+0.5), c)
	}
}
