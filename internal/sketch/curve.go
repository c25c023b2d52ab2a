package sketch

import "Snowfold/internal/geom"

// SimplifyEpsilon is the maximum deviation, in canvas units, a simplified
// freehand polyline may have from the raw samples.
const SimplifyEpsilon = 2.0

// SimplifyPoints runs Ramer-Douglas-Peucker over the polyline. Inputs of two
// points or fewer come back unchanged.
func SimplifyPoints(pts []geom.Point, epsilon float64) []geom.Point {
	if len(pts) <= 2 {
		return pts
	}
	keep := make([]bool, len(pts))
	keep[0] = true
	keep[len(pts)-1] = true
	rdp(pts, 0, len(pts)-1, epsilon, keep)

	out := make([]geom.Point, 0, len(pts))
	for i, k := range keep {
		if k {
			out = append(out, pts[i])
		}
	}
	return out
}

func rdp(pts []geom.Point, lo, hi int, epsilon float64, keep []bool) {
	if hi <= lo+1 {
		return
	}
	maxDist := 0.0
	maxIdx := lo
	for i := lo + 1; i < hi; i++ {
		if d := geom.PerpDistance(pts[i], pts[lo], pts[hi]); d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}
	if maxDist > epsilon {
		keep[maxIdx] = true
		rdp(pts, lo, maxIdx, epsilon, keep)
		rdp(pts, maxIdx, hi, epsilon, keep)
	}
}

// Smooth builds a cubic spline through every input point using Catmull-Rom
// derived control points, C1-continuous at the interior anchors. One point
// yields a zero-length mark, two a straight segment.
func Smooth(pts []geom.Point) geom.Path {
	switch len(pts) {
	case 0:
		return geom.Path{}
	case 1, 2:
		return straight(pts)
	}

	at := func(i int) geom.Point {
		// Duplicate the endpoints for the phantom neighbors.
		if i < 0 {
			return pts[0]
		}
		if i >= len(pts) {
			return pts[len(pts)-1]
		}
		return pts[i]
	}

	cmds := make([]geom.Cmd, 0, len(pts))
	cmds = append(cmds, geom.Cmd{Op: geom.MoveTo, Pts: []geom.Point{pts[0]}})
	for i := 0; i < len(pts)-1; i++ {
		c1 := pts[i].Add(at(i + 1).Sub(at(i - 1)).Scale(1.0 / 6))
		c2 := pts[i+1].Sub(at(i + 2).Sub(at(i)).Scale(1.0 / 6))
		cmds = append(cmds, geom.Cmd{Op: geom.CubeTo, Pts: []geom.Point{c1, c2, pts[i+1]}})
	}
	return geom.Path{Cmds: cmds}
}
