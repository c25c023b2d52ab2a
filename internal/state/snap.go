package state

import "Snowfold/internal/geom"

// SnapRadius is how close, in canvas units, a candidate point must be to an
// existing baked endpoint to snap onto it.
const SnapRadius = 20.0

// Snap returns the nearest endpoint when it is within SnapRadius of the
// candidate, otherwise the candidate unchanged. The first endpoint
// encountered at the minimum distance wins.
func Snap(candidate geom.Point, endpoints []geom.Point) (geom.Point, bool) {
	best := candidate
	bestDist := SnapRadius
	snapped := false
	for _, e := range endpoints {
		if d := candidate.Dist(e); d < bestDist {
			best = e
			bestDist = d
			snapped = true
		}
	}
	return best, snapped
}
