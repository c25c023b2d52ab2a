package net

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"Snowfold/internal/geom"
	"Snowfold/internal/sketch"
	"Snowfold/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStroke() *sketch.Stroke {
	s := sketch.New(sketch.Line, geom.Point{520, 400}, 3)
	s.Extend(geom.Point{560, 330})
	return s
}

func startHub(t *testing.T, hub *Hub) string {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.serveWS)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return strings.TrimPrefix(srv.URL, "http://")
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestJoinReceivesSnapshot(t *testing.T) {
	hostSession := state.NewSession()
	require.True(t, hostSession.ApplyRemote(state.Op{
		ID: "seed-1", Type: state.OpInsertStroke, Stroke: testStroke(), Lamport: 1, Site: "seed",
	}))

	hub := NewHub()
	hub.Snapshot = func() state.Op {
		return state.Op{Type: state.OpSync, Strokes: hostSession.Strokes(), Site: "host"}
	}
	addr := startHub(t, hub)

	peerSession := state.NewSession()
	client, err := Join(addr, func(op state.Op) {
		peerSession.ApplyRemote(op)
	})
	require.NoError(t, err)
	defer client.Close()

	waitFor(t, func() bool { return peerSession.StrokeCount() == 1 })
	assert.Len(t, peerSession.BakedPaths(), 12)
}

func TestHubAppliesAndRelaysPeerOps(t *testing.T) {
	hostSession := state.NewSession()
	hub := NewHub()
	hub.OnOp = hostSession.ApplyRemote
	hub.Snapshot = func() state.Op {
		return state.Op{Type: state.OpSync, Strokes: hostSession.Strokes(), Site: "host"}
	}
	addr := startHub(t, hub)

	otherSession := state.NewSession()
	other, err := Join(addr, func(op state.Op) { otherSession.ApplyRemote(op) })
	require.NoError(t, err)
	defer other.Close()

	sender, err := Join(addr, nil)
	require.NoError(t, err)
	defer sender.Close()

	op := state.Op{
		ID: "peer-1", Type: state.OpInsertStroke, Stroke: testStroke(), Lamport: 1, Site: "peer",
	}
	require.NoError(t, sender.Send(op))

	// The hub applies the op locally and relays it to the other peer.
	waitFor(t, func() bool { return hostSession.StrokeCount() == 1 })
	waitFor(t, func() bool { return otherSession.StrokeCount() == 1 })
}
