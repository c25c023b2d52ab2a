package state

import (
	"fmt"
	"testing"

	"Snowfold/internal/geom"
	"Snowfold/internal/sketch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineStroke(a, b geom.Point) *sketch.Stroke {
	s := sketch.New(sketch.Line, a, 3)
	s.Extend(b)
	return s
}

func TestReplicaCountAndTransformSet(t *testing.T) {
	r := NewReplicator()
	st := lineStroke(geom.Point{550, 450}, geom.Point{600, 480})
	r.AddStroke(st)

	reps := r.Replicas()
	require.Len(t, reps, ReplicasPerStroke)

	// Each (angle, mirrored) combination appears exactly once.
	seen := make(map[string]bool)
	for _, rep := range reps {
		rot, ok := rep.Transform[0].(geom.Rotate)
		require.True(t, ok, "outermost primitive must be the rotation")
		key := fmt.Sprintf("%v/%v", rot.Angle, rep.Mirrored)
		assert.False(t, seen[key], "duplicate transform %s", key)
		seen[key] = true
		assert.Contains(t, []float64{0, 60, 120, 180, 240, 300}, rot.Angle)
		if rep.Mirrored {
			require.Len(t, rep.Transform, 2)
			assert.Equal(t, geom.MirrorX{Axis: geom.CenterX}, rep.Transform[1])
		} else {
			require.Len(t, rep.Transform, 1)
		}
	}
	assert.Len(t, seen, ReplicasPerStroke)
}

func TestAddExistingStrokeReplaces(t *testing.T) {
	r := NewReplicator()
	st := lineStroke(geom.Point{550, 450}, geom.Point{600, 480})
	r.AddStroke(st)
	st.Extend(geom.Point{590, 470})
	r.AddStroke(st)

	reps := r.Replicas()
	require.Len(t, reps, ReplicasPerStroke)
	_, last, ok := reps[0].Geometry.Endpoints()
	require.True(t, ok)
	assert.Equal(t, geom.Point{X: 590, Y: 470}, last)
}

func TestUpdateStrokeTracksLiveGeometry(t *testing.T) {
	r := NewReplicator()
	st := sketch.New(sketch.Freehand, geom.Point{550, 450}, 3)
	r.AddStroke(st)

	for _, p := range []geom.Point{{560, 452}, {571, 456}, {584, 462}} {
		st.Extend(p)
		r.UpdateStroke(st)
		reps := r.Replicas()
		require.Len(t, reps, ReplicasPerStroke)
		for _, rep := range reps {
			_, last, ok := rep.Geometry.Endpoints()
			require.True(t, ok)
			assert.Equal(t, p, last)
		}
	}
}

func TestLineStrokeScenario(t *testing.T) {
	// A single line stroke (550,450)->(600,480) yields exactly 12 baked
	// paths; rotation 0 unmirrored is the original segment, rotation 0
	// mirrored lands at (450,450)->(400,480).
	r := NewReplicator()
	r.AddStroke(lineStroke(geom.Point{550, 450}, geom.Point{600, 480}))

	baked := r.BakedPaths()
	require.Len(t, baked, 12)

	var identity, mirrored *BakedPath
	for i, rep := range r.Replicas() {
		rot := rep.Transform[0].(geom.Rotate)
		if rot.Angle == 0 {
			b := baked[i]
			if rep.Mirrored {
				mirrored = &b
			} else {
				identity = &b
			}
		}
	}
	require.NotNil(t, identity)
	require.NotNil(t, mirrored)

	first, last, ok := identity.Path.Endpoints()
	require.True(t, ok)
	assert.Equal(t, geom.Point{X: 550, Y: 450}, first)
	assert.Equal(t, geom.Point{X: 600, Y: 480}, last)

	first, last, ok = mirrored.Path.Endpoints()
	require.True(t, ok)
	assert.Equal(t, geom.Point{X: 450, Y: 450}, first)
	assert.Equal(t, geom.Point{X: 400, Y: 480}, last)
}

func TestRemoveStrokeLeavesOthersUntouched(t *testing.T) {
	r := NewReplicator()
	var ids []string
	for i := 0; i < 3; i++ {
		st := lineStroke(geom.Point{550, 450 - float64(i)*10}, geom.Point{600, 480})
		r.AddStroke(st)
		ids = append(ids, st.ID)
	}
	require.Len(t, r.Replicas(), 3*ReplicasPerStroke)

	r.RemoveStroke(ids[2])
	reps := r.Replicas()
	require.Len(t, reps, 2*ReplicasPerStroke)
	for _, rep := range reps {
		assert.NotEqual(t, ids[2], rep.StrokeID)
	}

	r.ClearAll()
	assert.Empty(t, r.Replicas())
	assert.Empty(t, r.BakedPaths())
}

func TestBakedEndpointsExcluding(t *testing.T) {
	r := NewReplicator()
	a := lineStroke(geom.Point{550, 450}, geom.Point{600, 480})
	b := lineStroke(geom.Point{520, 430}, geom.Point{540, 420})
	r.AddStroke(a)
	r.AddStroke(b)

	all := r.BakedEndpoints()
	assert.Len(t, all, 2*2*ReplicasPerStroke)

	excl := r.BakedEndpointsExcluding(a.ID)
	assert.Len(t, excl, 2*ReplicasPerStroke)
	assert.NotContains(t, excl, geom.Point{X: 550, Y: 450})
}
