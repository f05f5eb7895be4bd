package wing

import (
	"fmt"
	"math"

	"wingforge/internal/mathutil"
)

// Mesh is a triangle mesh produced by lofting cross-sections.
type Mesh struct {
	Vertices []mathutil.Vec3
	Faces    [][3]int
}

// Loft bridges consecutive cross-sections into a closed triangle mesh with
// end caps at the root and tip. Sections must arrive in span order with
// identical vertex counts and closed outlines; violations are fatal, there
// is no partial result.
func Loft(sections []Section) (*Mesh, error) {
	if len(sections) < 2 {
		return nil, fmt.Errorf("loft requires at least 2 sections, got %d", len(sections))
	}

	n := len(sections[0].Points)
	for i, s := range sections {
		if len(s.Points) != n {
			return nil, fmt.Errorf("section %d has %d points, expected %d", i, len(s.Points), n)
		}
		if !s.Closed() {
			return nil, fmt.Errorf("section %d outline is not closed", i)
		}
		if i > 0 && s.Y < sections[i-1].Y {
			return nil, fmt.Errorf("section %d is out of span order (%g < %g)", i, s.Y, sections[i-1].Y)
		}
	}

	m := &Mesh{}

	// The closing point duplicates the first one; index modulo the ring
	// size instead of storing it twice.
	ring := n - 1
	for _, s := range sections {
		m.Vertices = append(m.Vertices, s.Points[:ring]...)
	}

	// Bridge each adjacent pair of rings with two triangles per quad.
	for i := 0; i < len(sections)-1; i++ {
		a := i * ring
		b := (i + 1) * ring
		for j := 0; j < ring; j++ {
			k := (j + 1) % ring
			m.Faces = append(m.Faces,
				[3]int{a + j, a + k, b + k},
				[3]int{a + j, b + k, b + j},
			)
		}
	}

	// End caps: triangle fans over the root and tip rings.
	capFan(m, 0, ring, true)
	capFan(m, (len(sections)-1)*ring, ring, false)

	return m, nil
}

// capFan triangulates a section ring with a fan rooted at the ring's first
// vertex. The flip flag orients the root cap opposite to the tip cap so
// both normals point outward.
func capFan(m *Mesh, offset, ring int, flip bool) {
	for j := 1; j < ring-1; j++ {
		if flip {
			m.Faces = append(m.Faces, [3]int{offset, offset + j + 1, offset + j})
		} else {
			m.Faces = append(m.Faces, [3]int{offset, offset + j, offset + j + 1})
		}
	}
}

// FuseTipCap merges a UV sphere at the given center into the mesh. This is
// decoration for the wing tip, not a boolean union; the shell is appended
// and the exported solid remains valid for downstream mesh consumers.
// Callers treat failure as non-fatal but must surface the outcome.
func FuseTipCap(m *Mesh, center mathutil.Vec3, radius float64) error {
	if m == nil || len(m.Vertices) == 0 {
		return fmt.Errorf("tip cap requires a lofted mesh")
	}
	if radius <= 0 {
		return fmt.Errorf("tip cap radius must be positive, got %g", radius)
	}

	const rings, segs = 8, 16
	sphere := uvSphere(center, radius, rings, segs)

	base := len(m.Vertices)
	m.Vertices = append(m.Vertices, sphere.Vertices...)
	for _, f := range sphere.Faces {
		m.Faces = append(m.Faces, [3]int{f[0] + base, f[1] + base, f[2] + base})
	}
	return nil
}

// uvSphere builds a latitude/longitude sphere mesh.
func uvSphere(center mathutil.Vec3, radius float64, rings, segs int) *Mesh {
	m := &Mesh{}

	for i := 0; i <= rings; i++ {
		phi := float64(i) / float64(rings) * math.Pi
		for j := 0; j < segs; j++ {
			theta := float64(j) / float64(segs) * 2 * math.Pi
			m.Vertices = append(m.Vertices, mathutil.Vec3{
				center[0] + radius*math.Sin(phi)*math.Cos(theta),
				center[1] + radius*math.Cos(phi),
				center[2] + radius*math.Sin(phi)*math.Sin(theta),
			})
		}
	}

	for i := 0; i < rings; i++ {
		for j := 0; j < segs; j++ {
			a := i*segs + j
			b := i*segs + (j+1)%segs
			c := (i+1)*segs + (j+1)%segs
			d := (i+1)*segs + j
			if i > 0 {
				m.Faces = append(m.Faces, [3]int{a, b, c})
			}
			if i < rings-1 {
				m.Faces = append(m.Faces, [3]int{a, c, d})
			}
		}
	}

	return m
}
