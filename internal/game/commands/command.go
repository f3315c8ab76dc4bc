// Package commands implements the player-facing state transitions. Every
// command validates its preconditions against the working copy and either
// logs why it refused or mutates the copy and returns it.
package commands

import (
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/rules"
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/state"
)

// Type tags recorded in the engine history.
const (
	TypeAdvanceJournal     = "advance-journal"
	TypeEndTurn            = "end-turn"
	TypePlayCard           = "play-card"
	TypeResolveEventChoice = "resolve-event-choice"
	TypeStartNewGame       = rules.StartNewGameType
	TypeToggleSound        = "toggle-sound"
	TypeAppendLogEntry     = "append-log"
)

// Command is a single state transition. Execute receives a working copy it
// may mutate freely and returns the state that becomes canonical.
type Command interface {
	Type() string
	Execute(m *state.Mutation) *state.GameState
}

// Roll reports whether a chance check succeeds. A nil chance always succeeds
// without consuming randomness; otherwise success requires roll < chance.
func Roll(r state.Random, chance *float64) bool {
	if chance == nil {
		return true
	}
	return r.Float64() < *chance
}
