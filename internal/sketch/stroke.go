// Package sketch turns raw pointer samples into the curve geometry of a
// source stroke: a smooth freehand curve or a straight line segment.
package sketch

import (
	"Snowfold/internal/geom"

	"github.com/google/uuid"
)

// Mode selects how samples become geometry.
type Mode string

const (
	Freehand Mode = "freehand"
	Line     Mode = "line"
)

// Stroke is a single user-drawn path inside the wedge. While live its point
// list grows on every drag sample; once finished it is immutable history.
type Stroke struct {
	ID     string       `json:"id"`
	Mode   Mode         `json:"mode"`
	Points []geom.Point `json:"points"`
	Width  float64      `json:"width"`
}

// New starts a stroke at the given point.
func New(mode Mode, start geom.Point, width float64) *Stroke {
	return &Stroke{
		ID:     uuid.NewString(),
		Mode:   mode,
		Points: []geom.Point{start},
		Width:  width,
	}
}

// Extend feeds one drag sample. Freehand strokes accumulate points; line
// strokes keep only start and the latest end.
func (s *Stroke) Extend(p geom.Point) {
	switch s.Mode {
	case Line:
		if len(s.Points) < 2 {
			s.Points = append(s.Points, p)
		} else {
			s.Points[1] = p
		}
	default:
		s.Points = append(s.Points, p)
	}
}

// ReplaceLast swaps the most recent point, used when finalization snaps the
// stroke end onto a neighboring endpoint.
func (s *Stroke) ReplaceLast(p geom.Point) {
	if len(s.Points) > 0 {
		s.Points[len(s.Points)-1] = p
	}
}

// Simplify reduces a finished freehand stroke's point list. No-op for line
// strokes and for strokes of one or two points.
func (s *Stroke) Simplify() {
	if s.Mode == Freehand {
		s.Points = SimplifyPoints(s.Points, SimplifyEpsilon)
	}
}

// Path synthesizes the current curve geometry. Valid at every intermediate
// sample, so replicas can track the stroke mid-drag.
func (s *Stroke) Path() geom.Path {
	if s.Mode == Line {
		return straight(s.Points)
	}
	return Smooth(s.Points)
}

func straight(pts []geom.Point) geom.Path {
	switch len(pts) {
	case 0:
		return geom.Path{}
	case 1:
		// Zero-length mark.
		return geom.Path{Cmds: []geom.Cmd{
			{Op: geom.MoveTo, Pts: []geom.Point{pts[0]}},
			{Op: geom.LineTo, Pts: []geom.Point{pts[0]}},
		}}
	}
	return geom.Path{Cmds: []geom.Cmd{
		{Op: geom.MoveTo, Pts: []geom.Point{pts[0]}},
		{Op: geom.LineTo, Pts: []geom.Point{pts[len(pts)-1]}},
	}}
}
