package state

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

var (
	siteID  = uuid.NewString()
	lamport uint64

	// OnLocalOp is set by main to broadcast ops to connected peers.
	OnLocalOp func(Op)
)

// SiteID identifies this session on the wire.
func SiteID() string { return siteID }

func nextLamport() uint64 {
	return atomic.AddUint64(&lamport, 1)
}

// observeLamport merges a remote timestamp into the local clock.
func observeLamport(ts uint64) {
	for {
		cur := atomic.LoadUint64(&lamport)
		if ts <= cur || atomic.CompareAndSwapUint64(&lamport, cur, ts) {
			return
		}
	}
}

// EmitLocal stamps a locally generated op and hands it to the broadcaster.
func EmitLocal(op Op) {
	op.Lamport = nextLamport()
	op.Site = siteID
	op.ID = fmt.Sprintf("%s-%d", siteID, op.Lamport)
	if OnLocalOp != nil {
		OnLocalOp(op)
	}
}
