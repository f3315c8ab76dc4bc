package commands

import (
	"fmt"

	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/effects"
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/rules"
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/state"
)

// EndTurnCommand discards the hand and opens the event phase.
type EndTurnCommand struct{}

// NewEndTurn creates an EndTurnCommand.
func NewEndTurn() *EndTurnCommand {
	return &EndTurnCommand{}
}

func (c *EndTurnCommand) Type() string { return TypeEndTurn }

func (c *EndTurnCommand) Execute(m *state.Mutation) *state.GameState {
	s := m.State
	if !s.JournalScript.Completed {
		m.Log(effects.LogSystem, "Finish the prologue first.", state.VariantSystem)
		return s
	}
	if s.Finished() {
		m.Log(effects.LogSystem, "The game is already over.", state.VariantSystem)
		return s
	}
	if s.LoopStage != state.StagePlayer {
		m.Log(effects.LogSystem, "You cannot end the turn right now.", state.VariantSystem)
		return s
	}

	if discarded := rules.DiscardHand(m); discarded > 0 {
		m.Log(effects.LogDeck, fmt.Sprintf("You discard %d card(s).", discarded), state.VariantSystem)
	}
	rules.DecayMarkers(m)

	event := rules.BeginEventPhase(m)
	if event == nil {
		m.Log(effects.LogEvent, "No events remain. You wait out the fog.", state.VariantSystem)
		rules.StartPlayerTurn(m)
		return s
	}

	if len(event.Choices) == 0 {
		rules.ResolveImmediateEvent(m, event)
	}
	return s
}
