package geom

import (
	"log"
	"math"
)

// The drawing canvas is a fixed 1000x1000 logical square. The wedge is a 30
// degree sector of radius 400 around the center; it is the fundamental domain
// of the snowflake symmetry, so every source stroke must stay inside it.
const (
	CanvasSize  = 1000.0
	CenterX     = 500.0
	CenterY     = 500.0
	WedgeRadius = 400.0
	WedgeAngle  = 30.0 // degrees, measured clockwise from straight up
)

var Center = Point{CenterX, CenterY}

// tolerance for boundary membership; points computed from sin/cos land a few
// ulps off the exact boundary.
const boundaryEps = 1e-7

// Angle returns the angle of p around the canvas center in degrees, with 0 at
// straight up and increasing clockwise, normalized to [0,360).
func Angle(p Point) float64 {
	dx := p.X - CenterX
	dy := p.Y - CenterY
	deg := math.Atan2(dx, -dy) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Contains reports whether p lies inside the wedge, boundary inclusive.
func Contains(p Point) bool {
	if p.Dist(Center) > WedgeRadius+boundaryEps {
		return false
	}
	a := Angle(p)
	return a <= WedgeAngle+boundaryEps || a >= 360-boundaryEps
}

// ClipSegment clips the segment start->end against the wedge boundary, with
// start assumed inside. If end is inside it is returned unchanged. Otherwise
// the crossing closest to start is returned, testing the bounding arc and both
// boundary rays. When no valid crossing is found (degenerate input, grazing
// corner) the unclipped end is returned with ok=false; callers treat that as
// a best-effort fallback, not an error.
func ClipSegment(start, end Point) (Point, bool) {
	if Contains(end) {
		return end, true
	}

	d := end.Sub(start)
	best := math.Inf(1)

	// Bounding arc: |start + t*d - Center| = WedgeRadius.
	f := start.Sub(Center)
	a := dot(d, d)
	b := 2 * dot(f, d)
	c := dot(f, f) - WedgeRadius*WedgeRadius
	if a > 0 {
		if disc := b*b - 4*a*c; disc >= 0 {
			sq := math.Sqrt(disc)
			for _, t := range []float64{(-b - sq) / (2 * a), (-b + sq) / (2 * a)} {
				if t > 0 && t < 1 && t < best {
					hit := start.Add(d.Scale(t))
					if ang := Angle(hit); ang <= WedgeAngle+boundaryEps || ang >= 360-boundaryEps {
						best = t
					}
				}
			}
		}
	}

	// Boundary rays: straight up (0 degrees) and 30 degrees clockwise.
	rays := []Point{
		{0, -1},
		{math.Sin(WedgeAngle * math.Pi / 180), -math.Cos(WedgeAngle * math.Pi / 180)},
	}
	for _, v := range rays {
		denom := cross(d, v)
		if denom == 0 {
			continue // segment parallel to the ray
		}
		t := cross(Center.Sub(start), v) / denom
		if t <= 0 || t >= 1 || t >= best {
			continue
		}
		hit := start.Add(d.Scale(t))
		if u := dot(hit.Sub(Center), v); u >= -boundaryEps && u <= WedgeRadius+boundaryEps {
			best = t
		}
	}

	if math.IsInf(best, 1) {
		log.Printf("[geom] clip found no boundary crossing for (%.1f,%.1f)->(%.1f,%.1f), keeping endpoint",
			start.X, start.Y, end.X, end.Y)
		return end, false
	}
	return start.Add(d.Scale(best)), true
}
