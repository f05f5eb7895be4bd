package wing

import (
	"math"

	"wingforge/internal/mathutil"
)

// Section is one closed airfoil outline positioned along the span.
type Section struct {
	Y       float64 // span position of the section plane
	ZOffset float64 // accumulated dihedral displacement
	Chord   float64
	Points  []mathutil.Vec3
}

// Closed reports whether the outline's first and last points are identical.
func (s Section) Closed() bool {
	if len(s.Points) < 2 {
		return false
	}
	return s.Points[0] == s.Points[len(s.Points)-1]
}

// BuildSections walks the span root to tip in NumSections equal steps and
// produces one cross-section per step. The vertical offset is the Euler
// integral of the dihedral schedule: z += dy * tan(angle), so accuracy
// follows sample density. Sections come back in strictly increasing span
// order, which the loft depends on.
func BuildSections(p Params) ([]Section, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	sections := make([]Section, 0, p.NumSections+3)
	prevY, prevZ := 0.0, 0.0

	for i := 0; i < p.NumSections; i++ {
		y := p.Span * float64(i) / float64(p.NumSections-1)
		angle := p.DihedralAt(y)
		z := prevZ + (y-prevY)*math.Tan(mathutil.Radians(angle))
		chord := p.ChordAt(y)

		sections = append(sections, Section{
			Y:       y,
			ZOffset: z,
			Chord:   chord,
			Points:  SectionPoints(chord, p.Thickness, y, z, p.PointsPerSurface, p.ClosedTrailingEdge),
		})

		prevY, prevZ = y, z
	}

	if p.SharkletHeight > 0 {
		sections = append(sections, sharkletSections(p, prevZ)...)
	}

	return sections, nil
}

// sharkletSections extends the tip with a base, mid and tip section tapering
// to 60% of the tip chord, each raised with the sharklet so the extension
// sweeps up and out past the span.
func sharkletSections(p Params, tipZ float64) []Section {
	sharkletTipChord := p.TipChord * 0.6
	midChord := (p.TipChord + sharkletTipChord) / 2

	build := func(chord, y, z float64) Section {
		return Section{
			Y:       y,
			ZOffset: z,
			Chord:   chord,
			Points:  SectionPoints(chord, p.Thickness, y, z, p.PointsPerSurface, p.ClosedTrailingEdge),
		}
	}

	h := p.SharkletHeight
	return []Section{
		build(p.TipChord, p.Span, tipZ),
		build(midChord, p.Span+h/2, tipZ+h/2),
		build(sharkletTipChord, p.Span+h, tipZ+h),
	}
}

// TipTrailingPosition returns the trailing-edge point of the last section,
// the anchor for the optional tip cap sphere.
func TipTrailingPosition(sections []Section) mathutil.Vec3 {
	last := sections[len(sections)-1]
	return mathutil.Vec3{last.Chord, last.Y, last.ZOffset}
}

// TipCapRadius derives the rounding sphere radius from the tip geometry.
func TipCapRadius(p Params) float64 {
	return p.Thickness * p.TipChord * 0.8
}
