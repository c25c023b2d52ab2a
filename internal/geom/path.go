package geom

// Op identifies a path command.
type Op uint8

const (
	MoveTo Op = iota
	LineTo
	QuadTo
	CubeTo
)

// pointCount is the number of coordinate pairs each command carries. The
// final pair of a command is always the on-curve endpoint.
func (o Op) pointCount() int {
	switch o {
	case MoveTo, LineTo:
		return 1
	case QuadTo:
		return 2
	case CubeTo:
		return 3
	}
	return -1
}

// Cmd is one path command with its coordinate pairs.
type Cmd struct {
	Op  Op      `json:"op"`
	Pts []Point `json:"pts"`
}

// Path is an ordered command list, the shared curve representation for source
// strokes, replicas and baked output.
type Path struct {
	Cmds []Cmd `json:"cmds"`
}

func (p Path) Clone() Path {
	out := Path{Cmds: make([]Cmd, len(p.Cmds))}
	for i, c := range p.Cmds {
		pts := make([]Point, len(c.Pts))
		copy(pts, c.Pts)
		out.Cmds[i] = Cmd{Op: c.Op, Pts: pts}
	}
	return out
}

// Endpoints returns the first and last on-curve coordinate of the path.
// ok is false for an empty path.
func (p Path) Endpoints() (first, last Point, ok bool) {
	if len(p.Cmds) == 0 || len(p.Cmds[0].Pts) == 0 {
		return Point{}, Point{}, false
	}
	first = p.Cmds[0].Pts[0]
	end := p.Cmds[len(p.Cmds)-1]
	last = end.Pts[len(end.Pts)-1]
	return first, last, true
}

// Flatten samples the path into a polyline, expanding each curve command into
// steps line segments. Used for on-screen tessellation and rasterization.
func (p Path) Flatten(steps int) []Point {
	if steps < 1 {
		steps = 1
	}
	var out []Point
	var cur Point
	for _, c := range p.Cmds {
		if len(c.Pts) != c.Op.pointCount() {
			continue
		}
		switch c.Op {
		case MoveTo:
			cur = c.Pts[0]
			out = append(out, cur)
		case LineTo:
			cur = c.Pts[0]
			out = append(out, cur)
		case QuadTo:
			c1, end := c.Pts[0], c.Pts[1]
			for i := 1; i <= steps; i++ {
				t := float64(i) / float64(steps)
				u := 1 - t
				pt := cur.Scale(u * u).
					Add(c1.Scale(2 * u * t)).
					Add(end.Scale(t * t))
				out = append(out, pt)
			}
			cur = end
		case CubeTo:
			c1, c2, end := c.Pts[0], c.Pts[1], c.Pts[2]
			for i := 1; i <= steps; i++ {
				t := float64(i) / float64(steps)
				u := 1 - t
				pt := cur.Scale(u * u * u).
					Add(c1.Scale(3 * u * u * t)).
					Add(c2.Scale(3 * u * t * t)).
					Add(end.Scale(t * t * t))
				out = append(out, pt)
			}
			cur = end
		}
	}
	return out
}
