package geom

import "math"

// Point is a location on the 1000x1000 logical canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

func dot(a, b Point) float64 { return a.X*b.X + a.Y*b.Y }

func cross(a, b Point) float64 { return a.X*b.Y - a.Y*b.X }

// PerpDistance returns the distance from p to the segment a-b.
// When a == b the segment degenerates to a point.
func PerpDistance(p, a, b Point) float64 {
	ab := b.Sub(a)
	lenSq := dot(ab, ab)
	if lenSq == 0 {
		return p.Dist(a)
	}
	t := dot(p.Sub(a), ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Dist(a.Add(ab.Scale(t)))
}
