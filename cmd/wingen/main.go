package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"wingforge/internal/export"
	"wingforge/internal/wing"
)

// wingen builds a gull wing solid from command line flags and writes it to
// the current directory. Without flags it reproduces the classic design.
func main() {
	defaults := wing.DefaultParams()

	span := flag.Float64("span", defaults.Span, "half span in mm")
	rootChord := flag.Float64("root-chord", defaults.RootChord, "chord at the root in mm")
	tipChord := flag.Float64("tip-chord", defaults.TipChord, "chord at the tip in mm")
	thickness := flag.Float64("thickness", defaults.Thickness, "NACA 00XX thickness ratio")
	bendStart := flag.Float64("bend-start", defaults.BendStart, "span position where the dihedral ramp begins, mm")
	bendEnd := flag.Float64("bend-end", defaults.BendEnd, "span position where the mid dihedral is reached, mm")
	rootDihedral := flag.Float64("root-dihedral", defaults.RootDihedral, "dihedral of the inner segment, degrees")
	midDihedral := flag.Float64("mid-dihedral", defaults.MidDihedral, "dihedral reached at bend-end, degrees")
	tipDihedral := flag.Float64("tip-dihedral", defaults.TipDihedral, "dihedral at the tip, degrees")
	numSections := flag.Int("sections", defaults.NumSections, "number of spanwise sections")
	pointsPerSurface := flag.Int("points", defaults.PointsPerSurface, "airfoil samples per surface")
	openTE := flag.Bool("open-te", false, "keep the open trailing edge of the raw NACA polynomial")
	noTipCap := flag.Bool("no-tip-cap", false, "skip the rounding sphere at the wing tip")
	sharklet := flag.Float64("sharklet", 0, "sharklet height in mm (0 disables)")
	format := flag.String("format", "step", "export format: step or stl")
	ascii := flag.Bool("ascii", false, "write ASCII instead of binary STL")
	out := flag.String("o", "", "output file (default gull_wing.<format> in the working directory)")
	flag.Parse()

	p := wing.Params{
		Span:               *span,
		RootChord:          *rootChord,
		TipChord:           *tipChord,
		Thickness:          *thickness,
		BendStart:          *bendStart,
		BendEnd:            *bendEnd,
		RootDihedral:       *rootDihedral,
		MidDihedral:        *midDihedral,
		TipDihedral:        *tipDihedral,
		NumSections:        *numSections,
		PointsPerSurface:   *pointsPerSurface,
		ClosedTrailingEdge: !*openTE,
		TipCap:             !*noTipCap,
		SharkletHeight:     *sharklet,
	}

	sections, err := wing.BuildSections(p)
	if err != nil {
		log.Fatalf("Invalid parameters: %v", err)
	}

	mesh, err := wing.Loft(sections)
	if err != nil {
		log.Fatalf("Loft failed: %v", err)
	}

	if p.TipCap {
		if err := wing.FuseTipCap(mesh, wing.TipTrailingPosition(sections), wing.TipCapRadius(p)); err != nil {
			log.Printf("Tip cap fusion skipped: %v", err)
		}
	}

	path := *out
	if path == "" {
		switch *format {
		case "stl":
			path = "gull_wing.stl"
		default:
			path = export.DefaultStepFilename
		}
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	switch *format {
	case "step":
		err = export.WriteSTEPFile(path, mesh, name)
	case "stl":
		if *ascii {
			err = export.WriteSTLASCIIFile(path, mesh, name)
		} else {
			err = export.WriteSTLFile(path, mesh, name)
		}
	default:
		log.Fatalf("Unsupported format: %s", *format)
	}
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	info, statErr := os.Stat(path)
	size := int64(0)
	if statErr == nil {
		size = info.Size()
	}
	fmt.Printf("Wrote %s (%d sections, %d vertices, %d faces, %d bytes)\n",
		path, len(sections), len(mesh.Vertices), len(mesh.Faces), size)
}
