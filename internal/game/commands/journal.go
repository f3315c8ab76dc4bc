package commands

import (
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/effects"
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/rules"
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/state"
)

// AdvanceJournalCommand plays the next prologue entry. Finishing the
// prologue starts the first player turn.
type AdvanceJournalCommand struct{}

// NewAdvanceJournal creates an AdvanceJournalCommand.
func NewAdvanceJournal() *AdvanceJournalCommand {
	return &AdvanceJournalCommand{}
}

func (c *AdvanceJournalCommand) Type() string { return TypeAdvanceJournal }

func (c *AdvanceJournalCommand) Execute(m *state.Mutation) *state.GameState {
	script := &m.State.JournalScript
	if len(script.Entries) == 0 || script.Completed {
		m.Log(effects.LogSystem, "The prologue is already over.", state.VariantSystem)
		return m.State
	}

	if script.NextIndex >= len(script.Entries) {
		script.Completed = true
		rules.StartPlayerTurn(m)
		return m.State
	}

	entry := script.Entries[script.NextIndex]
	m.Log(entry.Type, entry.Body, entry.Variant)
	script.NextIndex++

	if script.NextIndex >= len(script.Entries) {
		script.Completed = true
		rules.StartPlayerTurn(m)
	}
	return m.State
}
