// Package state owns the authoritative drawing state: the symmetry
// replicator, the authoring session with its stroke history, endpoint
// snapping, and the ops shared with remote peers.
package state

import (
	"sync"

	"Snowfold/internal/geom"
	"Snowfold/internal/sketch"
)

// Rotations is the number of rotational copies; with the mirror each source
// stroke has 2*Rotations replicas.
const Rotations = 6

const ReplicasPerStroke = 2 * Rotations

// Replica is one symmetric copy of a source stroke. Geometry is the stroke's
// untransformed curve; the transform is kept declarative until a consumer
// bakes it.
type Replica struct {
	StrokeID  string
	Mirrored  bool
	Transform geom.Transform
	Geometry  geom.Path
	Width     float64
}

// BakedPath is a replica's geometry with its transform flattened into the
// coordinates.
type BakedPath struct {
	Path  geom.Path
	Width float64
}

// ReplicaTransforms returns the twelve transforms of the dihedral group:
// six rotations at 60 degree steps, each with and without the mirror across
// x=500. For mirrored replicas the rotate is outermost, so the slice order is
// Rotate then MirrorX.
func ReplicaTransforms() []geom.Transform {
	out := make([]geom.Transform, 0, ReplicasPerStroke)
	for i := 0; i < Rotations; i++ {
		angle := float64(i) * 360 / Rotations
		out = append(out, geom.Transform{
			geom.Rotate{Angle: angle, Cx: geom.CenterX, Cy: geom.CenterY},
		})
		out = append(out, geom.Transform{
			geom.Rotate{Angle: angle, Cx: geom.CenterX, Cy: geom.CenterY},
			geom.MirrorX{Axis: geom.CenterX},
		})
	}
	return out
}

// Replicator maintains twelve replicas per source stroke, continuously,
// including while the stroke is still being dragged.
type Replicator struct {
	mu       sync.RWMutex
	order    []string // stroke ids in insertion order, for stable iteration
	replicas map[string][]Replica
}

func NewReplicator() *Replicator {
	return &Replicator{replicas: make(map[string][]Replica)}
}

// AddStroke registers twelve replicas for the stroke's current geometry.
// Adding an id that already has replicas replaces them atomically.
func (r *Replicator) AddStroke(s *sketch.Stroke) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addLocked(s)
}

func (r *Replicator) addLocked(s *sketch.Stroke) {
	if _, exists := r.replicas[s.ID]; !exists {
		r.order = append(r.order, s.ID)
	}
	path := s.Path()
	set := make([]Replica, 0, ReplicasPerStroke)
	for i, tr := range ReplicaTransforms() {
		set = append(set, Replica{
			StrokeID:  s.ID,
			Mirrored:  i%2 == 1,
			Transform: tr,
			Geometry:  path.Clone(),
			Width:     s.Width,
		})
	}
	r.replicas[s.ID] = set
}

// UpdateStroke replaces the stroke's replicas wholesale with its current
// geometry. There is never a window where replicas are individually
// half-updated.
func (r *Replicator) UpdateStroke(s *sketch.Stroke) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.replicas, s.ID)
	r.addLocked(s)
}

func (r *Replicator) RemoveStroke(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.replicas, id)
	for i, sid := range r.order {
		if sid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *Replicator) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replicas = make(map[string][]Replica)
	r.order = nil
}

// Replicas returns every replica in stroke insertion order.
func (r *Replicator) Replicas() []Replica {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Replica, 0, len(r.order)*ReplicasPerStroke)
	for _, id := range r.order {
		out = append(out, r.replicas[id]...)
	}
	return out
}

// ReplicasFor returns the replicas of one stroke, nil if unknown.
func (r *Replicator) ReplicasFor(id string) []Replica {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set := r.replicas[id]
	out := make([]Replica, len(set))
	copy(out, set)
	return out
}

// BakedPaths flattens every replica's transform into literal coordinates.
// Recomputed on every call; baked output is derived, never cached state.
func (r *Replicator) BakedPaths() []BakedPath {
	reps := r.Replicas()
	out := make([]BakedPath, 0, len(reps))
	for _, rep := range reps {
		out = append(out, BakedPath{
			Path:  rep.Transform.Bake(rep.Geometry),
			Width: rep.Width,
		})
	}
	return out
}

// BakedEndpoints returns the first and last baked coordinate of every
// replica, the candidate set for endpoint snapping.
func (r *Replicator) BakedEndpoints() []geom.Point {
	return r.bakedEndpoints("")
}

// BakedEndpointsExcluding skips the given stroke's own replicas, so a stroke
// being finalized snaps to its neighbors rather than trivially to itself.
func (r *Replicator) BakedEndpointsExcluding(id string) []geom.Point {
	return r.bakedEndpoints(id)
}

func (r *Replicator) bakedEndpoints(exclude string) []geom.Point {
	var out []geom.Point
	for _, rep := range r.Replicas() {
		if exclude != "" && rep.StrokeID == exclude {
			continue
		}
		first, last, ok := rep.Geometry.Endpoints()
		if !ok {
			continue
		}
		out = append(out, rep.Transform.Apply(first), rep.Transform.Apply(last))
	}
	return out
}
