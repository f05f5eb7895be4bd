package wing

import (
	"math"

	"wingforge/internal/mathutil"
)

// NACA 00XX thickness distribution coefficients. The last coefficient has
// two published values: -0.1015 leaves a small open trailing edge, -0.1036
// closes it exactly. A closed trailing edge is required for lofting into a
// watertight solid, so that is the default.
const (
	coefTrailingOpen   = -0.1015
	coefTrailingClosed = -0.1036
)

// HalfThickness evaluates the symmetric 4-digit airfoil half-thickness at
// normalized chord position x in [0,1] for thickness ratio t.
// The result is normalized by chord; multiply by chord length for
// absolute units.
func HalfThickness(x, t float64, closedTE bool) float64 {
	c4 := coefTrailingOpen
	if closedTE {
		c4 = coefTrailingClosed
	}
	return t / 0.2 * (0.2969*math.Sqrt(x) - 0.1260*x - 0.3516*x*x + 0.2843*x*x*x + c4*x*x*x*x)
}

// SectionPoints generates a closed airfoil outline at span position y.
//
// The upper surface runs leading edge to trailing edge at +yt, the lower
// surface runs back trailing edge to leading edge at -yt with the duplicate
// trailing-edge point dropped, and the loop is closed by repeating the first
// point. With n points per surface the polygon has 2n-1 vertices, the last
// identical to the first.
func SectionPoints(chord, thickness, y, zOffset float64, pointsPerSurface int, closedTE bool) []mathutil.Vec3 {
	n := pointsPerSurface
	if n < 2 {
		n = 2
	}
	pts := make([]mathutil.Vec3, 0, 2*n)

	// Upper surface, leading edge to trailing edge.
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)
		yt := HalfThickness(x, thickness, closedTE)
		pts = append(pts, mathutil.Vec3{x * chord, y, yt*chord + zOffset})
	}

	// Lower surface, trailing edge back to leading edge, skipping the
	// trailing-edge point already emitted above.
	for i := n - 2; i > 0; i-- {
		x := float64(i) / float64(n-1)
		yt := HalfThickness(x, thickness, closedTE)
		pts = append(pts, mathutil.Vec3{x * chord, y, -yt*chord + zOffset})
	}

	// Close the loop.
	pts = append(pts, pts[0])
	return pts
}
