package effects

import (
	"math"

	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/state"
)

// AdjustTemporaryMarker changes a marker's value, clamped to [0, max] or to a
// minimum of 0 when the marker has no max. It returns the marker and the
// delta actually applied, or nil and 0 if the marker does not exist.
func AdjustTemporaryMarker(s *state.GameState, markerID string, delta int) (*state.TemporaryMarker, int) {
	marker := s.Marker(markerID)
	if marker == nil {
		return nil, 0
	}

	upper := math.MaxInt
	if marker.Max != nil {
		upper = *marker.Max
	}

	previous := marker.Value
	marker.Value = state.Clamp(marker.Value+delta, 0, upper)
	return marker, marker.Value - previous
}

// ActionPenalty is the number of actions a marker removes at the start of a turn.
func ActionPenalty(marker *state.TemporaryMarker) int {
	if marker == nil || marker.ActionPenaltyPerStack <= 0 || marker.Value <= 0 {
		return 0
	}
	return marker.Value * marker.ActionPenaltyPerStack
}
