// Package effects contains the mutation primitives commands compose: clamped
// stat, track and action changes, temporary markers, card modifiers, endings
// and the keyed event-choice effect dispatcher.
package effects

import (
	"fmt"

	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/state"
)

// Log types shared by the rules.
const (
	LogSystem = "[System]"
	LogEvent  = "[Event]"
	LogDeck   = "[Deck]"
	LogTurn   = "[Turn]"
	LogFinale = "[Finale]"
	LogAction = "[Action]"
	LogClue   = "[Clue]"
	LogEffect = "[Effect]"
)

// ApplyStatDeltas applies each delta to the matching character stat, clamped
// to [0, max]. Sanity losses are reduced by active modifiers first. Stat
// endings are checked once all deltas are applied.
func ApplyStatDeltas(m *state.Mutation, deltas []state.StatDelta) {
	if len(deltas) == 0 {
		return
	}

	for _, delta := range deltas {
		stat := m.State.Stat(delta.StatID)
		if stat == nil {
			continue
		}

		amount := delta.Delta
		if stat.ID == state.StatSanityID && amount < 0 {
			var prevented int
			amount, prevented = MitigateSanityLoss(m.State, amount)
			if prevented > 0 {
				m.Log(LogEffect, fmt.Sprintf("Your focus holds: %d sanity loss prevented.", prevented), state.VariantEffect)
			}
		}

		stat.Value = state.Clamp(stat.Value+amount, 0, stat.Max)
	}

	CheckStatEndings(m)
}

// AdjustTrack moves a world track by delta, clamped to [0, max]. Moving the
// doom track checks the doom ending.
func AdjustTrack(m *state.Mutation, trackID string, delta int) {
	track := m.State.Track(trackID)
	if track == nil {
		return
	}

	track.Value = state.Clamp(track.Value+delta, 0, track.Max)
	if track.ID == state.TrackDoomID {
		CheckDoomEnding(m)
	}
}

// AdjustActions changes the remaining actions, clamped to [0, total].
func AdjustActions(s *state.GameState, delta int) {
	pool := &s.Turn.Actions
	pool.Remaining = state.Clamp(pool.Remaining+delta, 0, pool.Total)
}
