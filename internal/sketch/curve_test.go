package sketch

import (
	"math"
	"testing"

	"Snowfold/internal/geom"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minDistToPolyline is the distance from p to the nearest segment of the
// polyline.
func minDistToPolyline(p geom.Point, line []geom.Point) float64 {
	best := math.Inf(1)
	for i := 0; i+1 < len(line); i++ {
		if d := geom.PerpDistance(p, line[i], line[i+1]); d < best {
			best = d
		}
	}
	return best
}

func wavyLine(n int) []geom.Point {
	pts := make([]geom.Point, n)
	for i := range pts {
		x := float64(i)
		pts[i] = geom.Point{X: 520 + x, Y: 450 + 3*math.Sin(x/4)}
	}
	return pts
}

func TestSimplifyBoundsDeviation(t *testing.T) {
	raw := wavyLine(80)
	simplified := SimplifyPoints(raw, SimplifyEpsilon)
	require.Less(t, len(simplified), len(raw))
	for _, p := range raw {
		assert.LessOrEqual(t, minDistToPolyline(p, simplified), SimplifyEpsilon+1e-9)
	}
	// Endpoints are always kept.
	assert.Equal(t, raw[0], simplified[0])
	assert.Equal(t, raw[len(raw)-1], simplified[len(simplified)-1])
}

func TestSimplifyCollinearCollapses(t *testing.T) {
	raw := []geom.Point{{0, 0}, {1, 0.1}, {2, 0}, {3, -0.1}, {4, 0}}
	got := SimplifyPoints(raw, 2.0)
	assert.Equal(t, []geom.Point{{0, 0}, {4, 0}}, got)
}

func TestSimplifySmallInputsNoOp(t *testing.T) {
	one := []geom.Point{{1, 2}}
	two := []geom.Point{{1, 2}, {3, 4}}
	assert.Equal(t, one, SimplifyPoints(one, SimplifyEpsilon))
	assert.Equal(t, two, SimplifyPoints(two, SimplifyEpsilon))
}

func TestSmoothPassesThroughAnchors(t *testing.T) {
	pts := []geom.Point{{550, 450}, {570, 430}, {590, 460}, {610, 440}}
	path := Smooth(pts)
	require.Len(t, path.Cmds, 4) // MoveTo + one cubic per segment
	assert.Equal(t, pts[0], path.Cmds[0].Pts[0])
	for i := 1; i < len(path.Cmds); i++ {
		require.Equal(t, geom.CubeTo, path.Cmds[i].Op)
		assert.Equal(t, pts[i], path.Cmds[i].Pts[2])
	}
}

func TestSmoothC1Continuity(t *testing.T) {
	// At an interior anchor the outgoing control offset mirrors the incoming
	// one, so the tangent direction is continuous.
	pts := []geom.Point{{550, 450}, {570, 430}, {590, 460}, {610, 440}}
	path := Smooth(pts)
	for i := 1; i+1 < len(path.Cmds); i++ {
		anchor := path.Cmds[i].Pts[2]
		in := anchor.Sub(path.Cmds[i].Pts[1])
		out := path.Cmds[i+1].Pts[0].Sub(anchor)
		assert.InDelta(t, in.X, out.X, 1e-9)
		assert.InDelta(t, in.Y, out.Y, 1e-9)
	}
}

func TestSmoothDegenerates(t *testing.T) {
	// One point: a zero-length mark.
	mark := Smooth([]geom.Point{{550, 450}})
	require.Len(t, mark.Cmds, 2)
	assert.Equal(t, mark.Cmds[0].Pts[0], mark.Cmds[1].Pts[0])

	// Two points: a straight segment.
	seg := Smooth([]geom.Point{{550, 450}, {600, 480}})
	require.Len(t, seg.Cmds, 2)
	assert.Equal(t, geom.LineTo, seg.Cmds[1].Op)
	assert.Equal(t, geom.Point{X: 600, Y: 480}, seg.Cmds[1].Pts[0])
}

func TestLineStrokeKeepsStartAndLatestEnd(t *testing.T) {
	s := New(Line, geom.Point{550, 450}, 3)
	s.Extend(geom.Point{560, 455})
	s.Extend(geom.Point{580, 470})
	s.Extend(geom.Point{600, 480})
	require.Len(t, s.Points, 2)
	assert.Equal(t, geom.Point{X: 550, Y: 450}, s.Points[0])
	assert.Equal(t, geom.Point{X: 600, Y: 480}, s.Points[1])

	path := s.Path()
	require.Len(t, path.Cmds, 2)
	assert.Equal(t, geom.LineTo, path.Cmds[1].Op)
}

func TestFreehandPathValidMidDrag(t *testing.T) {
	s := New(Freehand, geom.Point{550, 450}, 3)
	for _, p := range []geom.Point{{555, 452}, {561, 455}, {568, 459}} {
		s.Extend(p)
		path := s.Path()
		require.NotEmpty(t, path.Cmds)
		_, last, ok := path.Endpoints()
		require.True(t, ok)
		assert.Equal(t, p, last)
	}
}
