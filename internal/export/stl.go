package export

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"wingforge/internal/wing"
)

// WriteSTL writes the mesh as binary STL. Facet normals come from the
// triangle winding.
func WriteSTL(w io.Writer, m *wing.Mesh, name string) error {
	if m == nil || len(m.Faces) == 0 {
		return fmt.Errorf("stl export requires a non-empty mesh")
	}

	bw := bufio.NewWriter(w)

	header := make([]byte, 80)
	copy(header, []byte("wingforge "+name))
	if _, err := bw.Write(header); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(m.Faces))); err != nil {
		return err
	}

	for _, f := range m.Faces {
		a, b, c := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
		n := b.Sub(a).Cross(c.Sub(a)).Normalize()

		for _, v := range [][3]float64{n, a, b, c} {
			for i := 0; i < 3; i++ {
				if err := binary.Write(bw, binary.LittleEndian, float32(v[i])); err != nil {
					return err
				}
			}
		}
		// Attribute byte count.
		if err := binary.Write(bw, binary.LittleEndian, uint16(0)); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteSTLASCII writes the mesh as ASCII STL. Mostly useful for eyeballing
// the output; the binary form is what the service stores.
func WriteSTLASCII(w io.Writer, m *wing.Mesh, name string) error {
	if m == nil || len(m.Faces) == 0 {
		return fmt.Errorf("stl export requires a non-empty mesh")
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "solid %s\n", name)
	for _, f := range m.Faces {
		a, b, c := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
		n := b.Sub(a).Cross(c.Sub(a)).Normalize()

		fmt.Fprintf(bw, "  facet normal %g %g %g\n", n[0], n[1], n[2])
		fmt.Fprintf(bw, "    outer loop\n")
		for _, v := range [][3]float64{a, b, c} {
			fmt.Fprintf(bw, "      vertex %g %g %g\n", v[0], v[1], v[2])
		}
		fmt.Fprintf(bw, "    endloop\n")
		fmt.Fprintf(bw, "  endfacet\n")
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)
	return bw.Flush()
}

// WriteSTLFile writes the mesh to a binary STL file on disk.
func WriteSTLFile(path string, m *wing.Mesh, name string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "could not create stl file")
	}
	if err := WriteSTL(f, m, name); err != nil {
		f.Close()
		os.Remove(path)
		return errors.Wrap(err, "stl export failed")
	}
	return f.Close()
}

// WriteSTLASCIIFile writes the mesh to an ASCII STL file on disk.
func WriteSTLASCIIFile(path string, m *wing.Mesh, name string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "could not create stl file")
	}
	if err := WriteSTLASCII(f, m, name); err != nil {
		f.Close()
		os.Remove(path)
		return errors.Wrap(err, "stl export failed")
	}
	return f.Close()
}
