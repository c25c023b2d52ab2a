// Package fill derives the binary cut/paper classification of the canvas
// from the baked path set, as a display aid behind the drawing. Strokes are
// rasterized into a coverage mask and everything reachable from the image
// border is "cut away"; enclosed pixels are "paper". The classification owns
// no state and is recomputed from the replica set on demand.
package fill

import (
	"image"
	"image/color"

	"Snowfold/internal/geom"
	"Snowfold/internal/state"

	"golang.org/x/image/vector"
)

// MaskSize is the raster resolution; the 1000-unit canvas maps onto a
// MaskSize x MaskSize alpha mask (2 canvas units per pixel).
const MaskSize = 500

const (
	curveSteps    = 16
	coverageAlpha = 128 // minimum alpha treated as stroke coverage
)

var (
	paperColor = color.NRGBA{R: 214, G: 228, B: 245, A: 255}
	cutColor   = color.NRGBA{R: 250, G: 250, B: 250, A: 255}
	edgeColor  = color.NRGBA{R: 120, G: 140, B: 170, A: 255}
)

// Mask rasterizes every baked path as a stroked polyline into an alpha
// coverage mask.
func Mask(paths []state.BakedPath) *image.Alpha {
	scale := float64(MaskSize) / geom.CanvasSize
	r := vector.NewRasterizer(MaskSize, MaskSize)

	for _, bp := range paths {
		pts := bp.Path.Flatten(curveSteps)
		half := bp.Width * scale / 2
		if half < 0.75 {
			half = 0.75 // keep hairlines watertight at mask resolution
		}
		for i := 0; i+1 < len(pts); i++ {
			a := pts[i].Scale(scale)
			b := pts[i+1].Scale(scale)
			strokeQuad(r, a, b, half)
		}
	}

	dst := image.NewAlpha(image.Rect(0, 0, MaskSize, MaskSize))
	r.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}

// strokeQuad adds the rectangle covering segment a-b at the given half width.
// Degenerate segments get a small square so single-point marks still show.
func strokeQuad(r *vector.Rasterizer, a, b geom.Point, half float64) {
	d := b.Sub(a)
	l := d.Dist(geom.Point{})
	if l == 0 {
		r.MoveTo(float32(a.X-half), float32(a.Y-half))
		r.LineTo(float32(a.X+half), float32(a.Y-half))
		r.LineTo(float32(a.X+half), float32(a.Y+half))
		r.LineTo(float32(a.X-half), float32(a.Y+half))
		r.ClosePath()
		return
	}
	n := geom.Point{X: -d.Y / l * half, Y: d.X / l * half}
	r.MoveTo(float32(a.X+n.X), float32(a.Y+n.Y))
	r.LineTo(float32(b.X+n.X), float32(b.Y+n.Y))
	r.LineTo(float32(b.X-n.X), float32(b.Y-n.Y))
	r.LineTo(float32(a.X-n.X), float32(a.Y-n.Y))
	r.ClosePath()
}

// Classify flood-fills the coverage mask from the border. The returned
// bitmap is true for "paper" pixels: not covered by a stroke and not
// reachable from the border.
func Classify(mask *image.Alpha) []bool {
	w := mask.Bounds().Dx()
	h := mask.Bounds().Dy()
	outside := make([]bool, w*h)

	covered := func(x, y int) bool {
		return mask.AlphaAt(x, y).A >= coverageAlpha
	}

	var queue []int
	push := func(x, y int) {
		i := y*w + x
		if !outside[i] && !covered(x, y) {
			outside[i] = true
			queue = append(queue, i)
		}
	}
	for x := 0; x < w; x++ {
		push(x, 0)
		push(x, h-1)
	}
	for y := 0; y < h; y++ {
		push(0, y)
		push(w-1, y)
	}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		x, y := i%w, i/w
		if x > 0 {
			push(x-1, y)
		}
		if x < w-1 {
			push(x+1, y)
		}
		if y > 0 {
			push(x, y-1)
		}
		if y < h-1 {
			push(x, y+1)
		}
	}

	paper := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			paper[i] = !outside[i] && !covered(x, y)
		}
	}
	return paper
}

// Preview renders the classification as an RGBA image for display: paper in
// pale blue, cut-away regions near white, stroke coverage in the edge color.
func Preview(paths []state.BakedPath) *image.RGBA {
	mask := Mask(paths)
	paper := Classify(mask)

	img := image.NewRGBA(image.Rect(0, 0, MaskSize, MaskSize))
	for y := 0; y < MaskSize; y++ {
		for x := 0; x < MaskSize; x++ {
			switch {
			case mask.AlphaAt(x, y).A >= coverageAlpha:
				img.SetRGBA(x, y, rgba(edgeColor))
			case paper[y*MaskSize+x]:
				img.SetRGBA(x, y, rgba(paperColor))
			default:
				img.SetRGBA(x, y, rgba(cutColor))
			}
		}
	}
	return img
}

func rgba(c color.NRGBA) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
