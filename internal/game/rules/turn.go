package rules

import (
	"fmt"

	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/effects"
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/state"
)

// StartPlayerTurn opens the next player turn: it bumps the turn number,
// resets the action pool, expires card modifiers, applies marker action
// penalties and draws HandSize cards. It does nothing once an outcome is set.
func StartPlayerTurn(m *state.Mutation) {
	s := m.State
	if s.Finished() {
		return
	}

	s.LoopStage = state.StagePlayer
	s.EventResolutionPending = false
	s.Turn.Number++
	s.Turn.Actions.Remaining = s.Turn.Actions.Total

	for _, expired := range effects.TickModifiers(s) {
		m.Log(effects.LogEffect, fmt.Sprintf("%s wears off.", expired.Label), state.VariantEffect)
	}

	for i := range s.TemporaryMarkers {
		marker := &s.TemporaryMarkers[i]
		if penalty := effects.ActionPenalty(marker); penalty > 0 {
			effects.AdjustActions(s, -penalty)
			m.Log(effects.LogEffect, fmt.Sprintf("%s costs you %d action(s) this turn.", marker.Label, penalty), state.VariantEffect)
		}
	}

	s.Phase = state.Phase{
		Icon:     "🂠",
		Name:     fmt.Sprintf("Turn %d", s.Turn.Number),
		Subtitle: "Play your cards and prepare",
	}

	drawn := DrawPlayerCards(m, HandSize)
	m.Log(effects.LogTurn, fmt.Sprintf("Turn %d begins. You drew %d card(s).", s.Turn.Number, drawn), state.VariantSystem)
}

// DecayMarkers lowers every temporary marker by its DecayPerTurn.
func DecayMarkers(m *state.Mutation) {
	for i := range m.State.TemporaryMarkers {
		marker := m.State.TemporaryMarkers[i]
		if marker.DecayPerTurn <= 0 || marker.Value == 0 {
			continue
		}
		if _, applied := effects.AdjustTemporaryMarker(m.State, marker.ID, -marker.DecayPerTurn); applied != 0 {
			m.Log(effects.LogEffect, fmt.Sprintf("%s eases (%d).", marker.Label, applied), state.VariantEffect)
		}
	}
}
