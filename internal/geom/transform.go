package geom

import (
	"log"
	"math"
)

// Primitive is one declarative transform operation.
type Primitive interface {
	apply(Point) Point
}

// Rotate rotates by Angle degrees (clockwise on the y-down canvas) around
// (Cx, Cy).
type Rotate struct {
	Angle, Cx, Cy float64
}

func (r Rotate) apply(p Point) Point {
	rad := r.Angle * math.Pi / 180
	sin, cos := math.Sincos(rad)
	dx := p.X - r.Cx
	dy := p.Y - r.Cy
	return Point{
		X: r.Cx + dx*cos - dy*sin,
		Y: r.Cy + dx*sin + dy*cos,
	}
}

// MirrorX reflects across the vertical line x = Axis.
type MirrorX struct {
	Axis float64
}

func (m MirrorX) apply(p Point) Point {
	return Point{X: 2*m.Axis - p.X, Y: p.Y}
}

// Translate shifts by (Dx, Dy).
type Translate struct {
	Dx, Dy float64
}

func (t Translate) apply(p Point) Point {
	return Point{X: p.X + t.Dx, Y: p.Y + t.Dy}
}

// Transform is an ordered composition of primitives, outermost (last applied)
// first. A replica's mirrored transform is Transform{Rotate{...}, MirrorX{...}}:
// the mirror touches the coordinates first, the rotate wraps it.
type Transform []Primitive

// Apply runs the composition on a single point, innermost primitive first.
func (t Transform) Apply(p Point) Point {
	for i := len(t) - 1; i >= 0; i-- {
		p = t[i].apply(p)
	}
	return p
}

// Bake flattens the transform into literal coordinates: every coordinate pair
// of every command is transformed and the transform itself is discarded.
// An empty transform returns the coordinates unchanged. A command carrying the
// wrong number of points for its op is skipped, not fatal; everything emitted
// before it stands.
func (t Transform) Bake(p Path) Path {
	out := Path{Cmds: make([]Cmd, 0, len(p.Cmds))}
	for _, c := range p.Cmds {
		if len(c.Pts) != c.Op.pointCount() {
			log.Printf("[geom] skipping malformed path command: op %d with %d points", c.Op, len(c.Pts))
			continue
		}
		pts := make([]Point, len(c.Pts))
		for i, pt := range c.Pts {
			pts[i] = t.Apply(pt)
		}
		out.Cmds = append(out.Cmds, Cmd{Op: c.Op, Pts: pts})
	}
	return out
}
