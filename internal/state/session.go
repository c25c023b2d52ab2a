package state

import (
	"errors"
	"log"
	"sync"

	"Snowfold/internal/geom"
	"Snowfold/internal/sketch"
)

var (
	ErrOutsideWedge = errors.New("point outside the wedge")
	ErrNoLiveStroke = errors.New("no live stroke for that handle")
)

// DefaultStrokeWidth in canvas units; the toolbar slider overrides it.
const DefaultStrokeWidth = 3.0

// Session owns the authoring state: the single live stroke, the append-only
// history of finished strokes, and the replicator they all feed. All
// lifecycle calls are safe from the UI thread and the websocket readers.
type Session struct {
	mu      sync.Mutex
	rep     *Replicator
	history []*sketch.Stroke
	known   map[string]bool // stroke ids present, for remote dedupe
	seenOps map[string]bool
	live    *sketch.Stroke
	mode    sketch.Mode
	width   float64

	// OnSnap fires when a begin or finish point snapped onto an existing
	// endpoint, for the UI's transient indicator.
	OnSnap func(geom.Point)
}

func NewSession() *Session {
	return &Session{
		rep:     NewReplicator(),
		known:   make(map[string]bool),
		seenOps: make(map[string]bool),
		mode:    sketch.Freehand,
		width:   DefaultStrokeWidth,
	}
}

func (s *Session) SetMode(m sketch.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = m
}

func (s *Session) Mode() sketch.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *Session) SetWidth(w float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = w
}

// BeginStroke starts a stroke at p. Points outside the wedge are rejected
// with ErrOutsideWedge and no stroke starts. The start point is snapped to
// the nearest baked endpoint within range. Returns the stroke id as handle.
func (s *Session) BeginStroke(p geom.Point) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !geom.Contains(p) {
		return "", ErrOutsideWedge
	}
	if s.live != nil {
		// A new stroke cannot begin while one is still down; finish the
		// stale one rather than leaking it.
		log.Printf("[session] begin with live stroke %s pending, finalizing it", s.live.ID)
		s.finishLocked(s.live.ID)
	}

	if snapped, ok := Snap(p, s.rep.BakedEndpoints()); ok {
		p = snapped
		if s.OnSnap != nil {
			s.OnSnap(p)
		}
	}

	s.live = sketch.New(s.mode, p, s.width)
	s.rep.AddStroke(s.live)
	return s.live.ID, nil
}

// ExtendStroke feeds one drag sample into the live stroke and refreshes all
// twelve replicas. Freehand samples outside the wedge are ignored; line-mode
// end points are clipped to the wedge boundary. Intermediate points are never
// snapped.
func (s *Session) ExtendStroke(handle string, p geom.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.live == nil || s.live.ID != handle {
		return ErrNoLiveStroke
	}
	switch s.live.Mode {
	case sketch.Line:
		clipped, ok := geom.ClipSegment(s.live.Points[0], p)
		if !ok {
			log.Printf("[session] clip fallback on stroke %s", handle)
		}
		s.live.Extend(clipped)
	default:
		if !geom.Contains(p) {
			return nil // sample ignored, stroke stays valid
		}
		s.live.Extend(p)
	}
	s.rep.UpdateStroke(s.live)
	return nil
}

// FinishStroke finalizes the live stroke: freehand points are simplified, the
// last point is snapped against every endpoint except the stroke's own, the
// replicas are rebuilt one last time and the stroke joins the history.
func (s *Session) FinishStroke(handle string) (*sketch.Stroke, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.live == nil || s.live.ID != handle {
		return nil, ErrNoLiveStroke
	}
	return s.finishLocked(handle), nil
}

func (s *Session) finishLocked(handle string) *sketch.Stroke {
	st := s.live
	st.Simplify()

	if len(st.Points) > 1 {
		last := st.Points[len(st.Points)-1]
		if snapped, ok := Snap(last, s.rep.BakedEndpointsExcluding(st.ID)); ok {
			st.ReplaceLast(snapped)
			if s.OnSnap != nil {
				s.OnSnap(snapped)
			}
		}
	}

	s.rep.UpdateStroke(st)
	s.history = append(s.history, st)
	s.known[st.ID] = true
	s.live = nil

	EmitLocal(Op{Type: OpInsertStroke, Stroke: st})
	return st
}

// UndoLast removes the most recent finished stroke and its twelve replicas.
// Single-step only; returns false when there is nothing to undo.
func (s *Session) UndoLast() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.history) == 0 {
		return false
	}
	st := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	delete(s.known, st.ID)
	s.rep.RemoveStroke(st.ID)

	EmitLocal(Op{Type: OpDeleteStroke, Target: st.ID})
	return true
}

// ClearAll drops every stroke and replica.
func (s *Session) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = nil
	s.known = make(map[string]bool)
	s.live = nil
	s.rep.ClearAll()

	EmitLocal(Op{Type: OpClearAll})
}

// ApplyRemote merges an op received from a peer. Returns true when the
// drawing changed and the UI should redraw. Duplicate ops and strokes are
// ignored; the Lamport clock is merged either way.
func (s *Session) ApplyRemote(op Op) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	observeLamport(op.Lamport)
	if op.ID != "" {
		if s.seenOps[op.ID] {
			return false
		}
		s.seenOps[op.ID] = true
	}

	switch op.Type {
	case OpInsertStroke:
		if op.Stroke == nil {
			return false
		}
		return s.insertRemoteLocked(op.Stroke)
	case OpDeleteStroke:
		return s.deleteLocked(op.Target)
	case OpClearAll:
		changed := len(s.history) > 0
		s.history = nil
		s.known = make(map[string]bool)
		s.rep.ClearAll()
		if s.live != nil {
			s.rep.AddStroke(s.live)
		}
		return changed
	case OpSync:
		changed := false
		for _, st := range op.Strokes {
			if st != nil && s.insertRemoteLocked(st) {
				changed = true
			}
		}
		return changed
	}
	log.Printf("[session] ignoring unknown op type %q from %s", op.Type, op.Site)
	return false
}

func (s *Session) insertRemoteLocked(st *sketch.Stroke) bool {
	if s.known[st.ID] {
		return false
	}
	s.known[st.ID] = true
	s.history = append(s.history, st)
	s.rep.AddStroke(st)
	return true
}

func (s *Session) deleteLocked(id string) bool {
	for i, st := range s.history {
		if st.ID == id {
			s.history = append(s.history[:i], s.history[i+1:]...)
			delete(s.known, id)
			s.rep.RemoveStroke(id)
			return true
		}
	}
	return false
}

// Strokes returns the finished strokes, oldest first.
func (s *Session) Strokes() []*sketch.Stroke {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*sketch.Stroke, len(s.history))
	copy(out, s.history)
	return out
}

// StrokeCount is the number of finished strokes.
func (s *Session) StrokeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

// Replicas exposes the current replica set for rendering.
func (s *Session) Replicas() []Replica { return s.rep.Replicas() }

// BakedPaths derives the flattened replica geometry for export and fill.
func (s *Session) BakedPaths() []BakedPath { return s.rep.BakedPaths() }

// BakedEndpoints derives the snap candidate set.
func (s *Session) BakedEndpoints() []geom.Point { return s.rep.BakedEndpoints() }
