package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"

	"wingforge/internal/wing"
)

// DefaultStepFilename is the artifact name the original generator used.
const DefaultStepFilename = "gull_wing.step"

// WriteSTEP serializes the mesh as an ISO-10303-21 faceted B-rep. The
// exchange structure is a MANIFOLD_SOLID_BREP over a CLOSED_SHELL of
// POLY_LOOP faces; a kernel-grade analytic B-rep is out of scope here.
func WriteSTEP(w io.Writer, m *wing.Mesh, name string) error {
	if m == nil || len(m.Faces) == 0 {
		return fmt.Errorf("step export requires a non-empty mesh")
	}
	if name == "" {
		name = "wing"
	}

	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "ISO-10303-21;\nHEADER;\n")
	fmt.Fprintf(bw, "FILE_DESCRIPTION(('faceted wing solid'),'2;1');\n")
	fmt.Fprintf(bw, "FILE_NAME('%s','%s',('wingforge'),(''),'wingforge','wingforge','');\n",
		name, time.Now().UTC().Format("2006-01-02T15:04:05"))
	fmt.Fprintf(bw, "FILE_SCHEMA(('AUTOMOTIVE_DESIGN { 1 0 10303 214 1 1 1 1 }'));\n")
	fmt.Fprintf(bw, "ENDSEC;\nDATA;\n")

	// Entity ids: points first, then per-face loop/bound/face, then the
	// shell and solid.
	id := 0
	next := func() int { id++; return id }

	pointIDs := make([]int, len(m.Vertices))
	for i, v := range m.Vertices {
		pointIDs[i] = next()
		fmt.Fprintf(bw, "#%d=CARTESIAN_POINT('',(%.6f,%.6f,%.6f));\n", pointIDs[i], v[0], v[1], v[2])
	}

	faceIDs := make([]int, 0, len(m.Faces))
	for _, f := range m.Faces {
		loop := next()
		fmt.Fprintf(bw, "#%d=POLY_LOOP('',(#%d,#%d,#%d));\n", loop, pointIDs[f[0]], pointIDs[f[1]], pointIDs[f[2]])
		bound := next()
		fmt.Fprintf(bw, "#%d=FACE_OUTER_BOUND('',#%d,.T.);\n", bound, loop)
		face := next()
		fmt.Fprintf(bw, "#%d=FACE_SURFACE('',(#%d),$,.T.);\n", face, bound)
		faceIDs = append(faceIDs, face)
	}

	shell := next()
	fmt.Fprintf(bw, "#%d=CLOSED_SHELL('',(", shell)
	for i, fid := range faceIDs {
		if i > 0 {
			fmt.Fprint(bw, ",")
		}
		fmt.Fprintf(bw, "#%d", fid)
	}
	fmt.Fprint(bw, "));\n")

	solid := next()
	fmt.Fprintf(bw, "#%d=MANIFOLD_SOLID_BREP('%s',#%d);\n", solid, name, shell)

	fmt.Fprintf(bw, "ENDSEC;\nEND-ISO-10303-21;\n")
	return bw.Flush()
}

// WriteSTEPFile writes the mesh to a STEP file on disk.
func WriteSTEPFile(path string, m *wing.Mesh, name string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "could not create step file")
	}
	if err := WriteSTEP(f, m, name); err != nil {
		f.Close()
		os.Remove(path)
		return errors.Wrap(err, "step export failed")
	}
	return f.Close()
}
