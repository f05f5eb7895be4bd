package wing

import (
	"math"
	"testing"

	"wingforge/internal/mathutil"
)

func TestDihedralContinuity(t *testing.T) {
	p := DefaultParams()
	const eps = 1e-9

	tests := []struct {
		name string
		y    float64
		want float64
	}{
		{name: "root", y: 0, want: p.RootDihedral},
		{name: "bend start from flat segment", y: p.BendStart, want: p.RootDihedral},
		{name: "bend start from ramp", y: p.BendStart + eps, want: p.RootDihedral},
		{name: "bend end from ramp", y: p.BendEnd - eps, want: p.MidDihedral},
		{name: "bend end from tip segment", y: p.BendEnd, want: p.MidDihedral},
		{name: "tip", y: p.Span, want: p.TipDihedral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.DihedralAt(tt.y)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("DihedralAt(%g) = %g, expected %g", tt.y, got, tt.want)
			}
		})
	}
}

func TestChordTaperEndpoints(t *testing.T) {
	p := DefaultParams()

	if c := p.ChordAt(0); c != p.RootChord {
		t.Errorf("ChordAt(0) = %g, expected %g", c, p.RootChord)
	}
	if c := p.ChordAt(p.Span); math.Abs(c-p.TipChord) > 1e-9 {
		t.Errorf("ChordAt(span) = %g, expected %g", c, p.TipChord)
	}
	if c := p.ChordAt(p.Span / 2); c <= p.TipChord || c >= p.RootChord {
		t.Errorf("ChordAt(span/2) = %g, expected between %g and %g", c, p.TipChord, p.RootChord)
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
		wantOK bool
	}{
		{name: "defaults", mutate: func(p *Params) {}, wantOK: true},
		{name: "zero span", mutate: func(p *Params) { p.Span = 0 }},
		{name: "negative tip chord", mutate: func(p *Params) { p.TipChord = -1 }},
		{name: "thickness too large", mutate: func(p *Params) { p.Thickness = 1 }},
		{name: "bend end before start", mutate: func(p *Params) { p.BendEnd = p.BendStart - 1 }},
		{name: "bend end at span", mutate: func(p *Params) { p.BendEnd = p.Span }},
		{name: "single section", mutate: func(p *Params) { p.NumSections = 1 }},
		{name: "too few surface points", mutate: func(p *Params) { p.PointsPerSurface = 2 }},
		{name: "negative sharklet", mutate: func(p *Params) { p.SharkletHeight = -5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantOK && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.wantOK && err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestBuildSectionsGullWing(t *testing.T) {
	p := DefaultParams()
	sections, err := BuildSections(p)
	if err != nil {
		t.Fatalf("BuildSections: %v", err)
	}

	if len(sections) != 15 {
		t.Fatalf("expected 15 sections, got %d", len(sections))
	}

	// Span positions must be monotonically non-decreasing and each outline
	// closed, or the loft would self-intersect.
	for i, s := range sections {
		if i > 0 && s.Y < sections[i-1].Y {
			t.Errorf("section %d breaks span order: %g < %g", i, s.Y, sections[i-1].Y)
		}
		if !s.Closed() {
			t.Errorf("section %d outline not closed", i)
		}
	}

	// The final z-offset is the Euler-integrated sum of per-step dihedral
	// contributions.
	var z, prevY float64
	for i := 0; i < p.NumSections; i++ {
		y := p.Span * float64(i) / float64(p.NumSections-1)
		z += (y - prevY) * math.Tan(mathutil.Radians(p.DihedralAt(y)))
		prevY = y
	}
	last := sections[len(sections)-1]
	if math.Abs(last.ZOffset-z) > 1e-9 {
		t.Errorf("final z-offset = %g, expected Euler sum %g", last.ZOffset, z)
	}
	if last.ZOffset <= 0 {
		t.Errorf("gull bend should lift the tip, final z-offset = %g", last.ZOffset)
	}

	// Chord taper endpoints.
	if got := sections[0].Chord; got != p.RootChord {
		t.Errorf("root chord = %g, expected %g", got, p.RootChord)
	}
	if got := last.Chord; math.Abs(got-p.TipChord) > 1e-9 {
		t.Errorf("tip chord = %g, expected %g", got, p.TipChord)
	}
}

func TestBuildSectionsSharklet(t *testing.T) {
	p := DefaultParams()
	p.SharkletHeight = 150

	sections, err := BuildSections(p)
	if err != nil {
		t.Fatalf("BuildSections: %v", err)
	}

	if len(sections) != p.NumSections+3 {
		t.Fatalf("expected %d sections with sharklet, got %d", p.NumSections+3, len(sections))
	}

	tip := sections[len(sections)-1]
	if tip.Y != p.Span+150 {
		t.Errorf("sharklet tip span = %g, expected %g", tip.Y, p.Span+150)
	}
	if math.Abs(tip.Chord-p.TipChord*0.6) > 1e-9 {
		t.Errorf("sharklet tip chord = %g, expected %g", tip.Chord, p.TipChord*0.6)
	}
	for i := 1; i < len(sections); i++ {
		if sections[i].Y < sections[i-1].Y {
			t.Errorf("section %d breaks span order", i)
		}
	}
}

func TestBuildSectionsRejectsInvalidParams(t *testing.T) {
	p := DefaultParams()
	p.Span = -1
	if _, err := BuildSections(p); err == nil {
		t.Fatal("expected error for invalid params")
	}
}
