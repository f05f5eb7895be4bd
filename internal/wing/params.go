package wing

import "fmt"

// Params describes a gull wing. All lengths share one unit (the original
// designs are in millimeters); angles are in degrees.
type Params struct {
	Span      float64 `json:"span"`
	RootChord float64 `json:"root_chord"`
	TipChord  float64 `json:"tip_chord"`
	Thickness float64 `json:"thickness"` // NACA 00XX thickness ratio

	// Dihedral schedule: flat until BendStart, ramp to MidDihedral at
	// BendEnd, ramp to TipDihedral at the tip.
	BendStart    float64 `json:"bend_start"`
	BendEnd      float64 `json:"bend_end"`
	RootDihedral float64 `json:"root_dihedral"`
	MidDihedral  float64 `json:"mid_dihedral"`
	TipDihedral  float64 `json:"tip_dihedral"`

	NumSections      int `json:"num_sections"`
	PointsPerSurface int `json:"points_per_surface"`

	ClosedTrailingEdge bool `json:"closed_trailing_edge"`

	// TipCap adds a rounding sphere of radius Thickness*TipChord*0.8 at
	// the tip trailing position. Best effort; failure does not abort the
	// build.
	TipCap bool `json:"tip_cap"`

	// SharkletHeight, when positive, extends the tip with three extra
	// sections tapering to SharkletHeight above the tip.
	SharkletHeight float64 `json:"sharklet_height"`
}

// DefaultParams returns the gull wing the original design used.
func DefaultParams() Params {
	return Params{
		Span:               1200,
		RootChord:          230,
		TipChord:           90.7,
		Thickness:          0.14,
		BendStart:          350,
		BendEnd:            750,
		RootDihedral:       0,
		MidDihedral:        10,
		TipDihedral:        5,
		NumSections:        15,
		PointsPerSurface:   60,
		ClosedTrailingEdge: true,
		TipCap:             true,
	}
}

// Validate checks the parameter set for values the generator cannot handle.
func (p Params) Validate() error {
	if p.Span <= 0 {
		return fmt.Errorf("span must be positive, got %g", p.Span)
	}
	if p.RootChord <= 0 || p.TipChord <= 0 {
		return fmt.Errorf("chord lengths must be positive, got root=%g tip=%g", p.RootChord, p.TipChord)
	}
	if p.Thickness <= 0 || p.Thickness >= 1 {
		return fmt.Errorf("thickness ratio must be in (0,1), got %g", p.Thickness)
	}
	if p.BendStart < 0 || p.BendEnd <= p.BendStart || p.BendEnd >= p.Span {
		return fmt.Errorf("bend interval [%g,%g] must satisfy 0 <= start < end < span", p.BendStart, p.BendEnd)
	}
	if p.NumSections < 2 {
		return fmt.Errorf("at least 2 sections required, got %d", p.NumSections)
	}
	if p.PointsPerSurface < 3 {
		return fmt.Errorf("at least 3 points per surface required, got %d", p.PointsPerSurface)
	}
	if p.SharkletHeight < 0 {
		return fmt.Errorf("sharklet height must not be negative, got %g", p.SharkletHeight)
	}
	return nil
}

// DihedralAt returns the local dihedral angle in degrees at span position y.
//
// The schedule is piecewise linear in three segments. Both junctions are
// continuous: at BendStart the ramp starts from RootDihedral, at BendEnd it
// reaches MidDihedral.
func (p Params) DihedralAt(y float64) float64 {
	switch {
	case y <= p.BendStart:
		return p.RootDihedral
	case y < p.BendEnd:
		t := (y - p.BendStart) / (p.BendEnd - p.BendStart)
		return p.RootDihedral + t*(p.MidDihedral-p.RootDihedral)
	default:
		t := (y - p.BendEnd) / (p.Span - p.BendEnd)
		return p.MidDihedral + t*(p.TipDihedral-p.MidDihedral)
	}
}

// ChordAt returns the linearly tapered chord at span position y.
func (p Params) ChordAt(y float64) float64 {
	return p.RootChord + (p.TipChord-p.RootChord)*(y/p.Span)
}
