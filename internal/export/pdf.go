package export

import (
	"Snowfold/internal/geom"
	"Snowfold/internal/state"

	"github.com/jung-kurt/gofpdf"
)

// The 1000-unit canvas maps onto an A4 page with a 10mm margin.
const (
	pdfMargin = 10.0
	pdfSize   = 190.0
)

func toPage(p geom.Point) (float64, float64) {
	s := pdfSize / geom.CanvasSize
	return pdfMargin + p.X*s, pdfMargin + p.Y*s
}

// PDF writes the baked replica set as a red hairline drawing on A4, the same
// geometry as the SVG export rendered with the PDF path operators.
func PDF(name string, paths []state.BakedPath) error {
	if len(paths) == 0 {
		return ErrNothingToExport
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetDrawColor(255, 0, 0)
	doc.SetLineWidth(0.1)

	for _, bp := range paths {
		started := false
		for _, c := range bp.Path.Cmds {
			switch {
			case c.Op == geom.MoveTo && len(c.Pts) == 1:
				if started {
					doc.DrawPath("D")
				}
				x, y := toPage(c.Pts[0])
				doc.MoveTo(x, y)
				started = true
			case c.Op == geom.LineTo && len(c.Pts) == 1:
				x, y := toPage(c.Pts[0])
				doc.LineTo(x, y)
			case c.Op == geom.QuadTo && len(c.Pts) == 2:
				cx, cy := toPage(c.Pts[0])
				x, y := toPage(c.Pts[1])
				doc.CurveTo(cx, cy, x, y)
			case c.Op == geom.CubeTo && len(c.Pts) == 3:
				c1x, c1y := toPage(c.Pts[0])
				c2x, c2y := toPage(c.Pts[1])
				x, y := toPage(c.Pts[2])
				doc.CurveBezierCubicTo(c1x, c1y, c2x, c2y, x, y)
			}
		}
		if started {
			doc.DrawPath("D")
		}
	}
	return doc.OutputFileAndClose(name)
}
