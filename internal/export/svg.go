// Package export writes the baked replica set to laser-cuttable files.
package export

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"Snowfold/internal/geom"
	"Snowfold/internal/state"
)

var ErrNothingToExport = errors.New("no strokes to export")

// The 1000-unit canvas maps to 200mm of physical material, so the 0.1mm
// hairline most laser cutters expect is 0.5 canvas units.
const (
	DocumentMM    = 200.0
	HairlineWidth = 0.5
	CutColor      = "#FF0000"
)

// SVG writes the baked paths as an SVG document. Every path carries literal
// coordinates only; no transform attribute survives baking. The wedge
// boundary is never part of the export.
func SVG(w io.Writer, paths []state.BakedPath) error {
	if len(paths) == 0 {
		return ErrNothingToExport
	}

	_, err := fmt.Fprintf(w,
		"<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%.0fmm\" height=\"%.0fmm\" viewBox=\"0 0 %.0f %.0f\">\n",
		DocumentMM, DocumentMM, geom.CanvasSize, geom.CanvasSize)
	if err != nil {
		return err
	}
	for _, p := range paths {
		d := pathData(p.Path)
		if d == "" {
			continue
		}
		if _, err := fmt.Fprintf(w,
			"  <path d=\"%s\" stroke=\"%s\" stroke-width=\"%.2f\" fill=\"none\"/>\n",
			d, CutColor, HairlineWidth); err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, "</svg>\n")
	return err
}

// WriteSVGFile exports to a file path, for the toolbar's save action.
func WriteSVGFile(name string, paths []state.BakedPath) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()
	if err := SVG(f, paths); err != nil {
		return err
	}
	log.Printf("[export] wrote %d paths to %s", len(paths), name)
	return nil
}

// pathData renders a baked path as an SVG d attribute with two decimal
// digits, enough for cutter import while keeping files small.
func pathData(p geom.Path) string {
	var d []byte
	for _, c := range p.Cmds {
		var letter string
		switch {
		case c.Op == geom.MoveTo && len(c.Pts) == 1:
			letter = "M"
		case c.Op == geom.LineTo && len(c.Pts) == 1:
			letter = "L"
		case c.Op == geom.QuadTo && len(c.Pts) == 2:
			letter = "Q"
		case c.Op == geom.CubeTo && len(c.Pts) == 3:
			letter = "C"
		default:
			log.Printf("[export] skipping malformed path command: op %d with %d points", c.Op, len(c.Pts))
			continue
		}
		if len(d) > 0 {
			d = append(d, ' ')
		}
		d = append(d, letter...)
		for _, pt := range c.Pts {
			d = append(d, fmt.Sprintf(" %.2f %.2f", pt.X, pt.Y)...)
		}
	}
	return string(d)
}
