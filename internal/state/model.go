package state

import "Snowfold/internal/sketch"

// OpType names the operations exchanged with remote peers.
type OpType string

const (
	OpInsertStroke OpType = "insert_stroke"
	OpDeleteStroke OpType = "delete_stroke"
	OpClearAll     OpType = "clear_all"
	OpSync         OpType = "sync" // full state, sent to newly joined peers
)

// Op is one shared drawing operation. Remote strokes always arrive finalized,
// so the single-live-stroke invariant stays local.
type Op struct {
	ID      string           `json:"id"`
	Type    OpType           `json:"type"`
	Stroke  *sketch.Stroke   `json:"stroke,omitempty"`
	Target  string           `json:"target,omitempty"` // id of stroke to delete
	Strokes []*sketch.Stroke `json:"strokes,omitempty"`
	Lamport uint64           `json:"lamport"`
	Site    string           `json:"site"`
}
