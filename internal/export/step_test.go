package export

import (
	"bytes"
	"strings"
	"testing"

	"wingforge/internal/wing"
)

func buildTestMesh(t *testing.T) *wing.Mesh {
	t.Helper()
	p := wing.DefaultParams()
	p.NumSections = 5
	p.PointsPerSurface = 10
	sections, err := wing.BuildSections(p)
	if err != nil {
		t.Fatalf("BuildSections: %v", err)
	}
	m, err := wing.Loft(sections)
	if err != nil {
		t.Fatalf("Loft: %v", err)
	}
	return m
}

func TestWriteSTEP(t *testing.T) {
	m := buildTestMesh(t)

	var buf bytes.Buffer
	if err := WriteSTEP(&buf, m, "gull_wing"); err != nil {
		t.Fatalf("WriteSTEP: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"ISO-10303-21;",
		"FILE_SCHEMA",
		"CARTESIAN_POINT",
		"POLY_LOOP",
		"CLOSED_SHELL",
		"MANIFOLD_SOLID_BREP('gull_wing'",
		"END-ISO-10303-21;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("step output missing %q", want)
		}
	}

	if got := strings.Count(out, "CARTESIAN_POINT"); got != len(m.Vertices) {
		t.Errorf("cartesian point count = %d, expected %d", got, len(m.Vertices))
	}
	if got := strings.Count(out, "POLY_LOOP"); got != len(m.Faces) {
		t.Errorf("poly loop count = %d, expected %d", got, len(m.Faces))
	}
}

func TestWriteSTEPEmptyMesh(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSTEP(&buf, &wing.Mesh{}, "x"); err == nil {
		t.Fatal("expected error for empty mesh")
	}
}
