package commands

import (
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/effects"
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/state"
)

// AppendLogEntryCommand writes a free-form entry to the log.
type AppendLogEntryCommand struct {
	EntryType string
	Body      string
	Variant   state.LogVariant
}

// NewAppendLogEntry creates an AppendLogEntryCommand with the story variant.
func NewAppendLogEntry(entryType, body string) *AppendLogEntryCommand {
	return &AppendLogEntryCommand{EntryType: entryType, Body: body}
}

func (c *AppendLogEntryCommand) Type() string { return TypeAppendLogEntry }

func (c *AppendLogEntryCommand) Execute(m *state.Mutation) *state.GameState {
	m.Log(c.EntryType, c.Body, c.Variant)
	return m.State
}

// ToggleSoundCommand flips the sound flag.
type ToggleSoundCommand struct{}

// NewToggleSound creates a ToggleSoundCommand.
func NewToggleSound() *ToggleSoundCommand {
	return &ToggleSoundCommand{}
}

func (c *ToggleSoundCommand) Type() string { return TypeToggleSound }

func (c *ToggleSoundCommand) Execute(m *state.Mutation) *state.GameState {
	m.State.SoundEnabled = !m.State.SoundEnabled
	body := "Sound off."
	if m.State.SoundEnabled {
		body = "Sound on."
	}
	m.Log(effects.LogSystem, body, state.VariantSystem)
	return m.State
}

// StartNewGameCommand replaces the state with a copy of a starting snapshot.
type StartNewGameCommand struct {
	snapshot *state.GameState
}

// NewStartNewGame creates a StartNewGameCommand. The snapshot is copied so
// later changes to it do not leak into the restarted game.
func NewStartNewGame(snapshot *state.GameState) *StartNewGameCommand {
	return &StartNewGameCommand{snapshot: snapshot.Clone()}
}

func (c *StartNewGameCommand) Type() string { return TypeStartNewGame }

func (c *StartNewGameCommand) Execute(m *state.Mutation) *state.GameState {
	if c.snapshot == nil {
		m.Log(effects.LogSystem, "No starting snapshot is available.", state.VariantSystem)
		return m.State
	}

	next := c.snapshot.Clone()
	next.Turn.Actions.Remaining = next.Turn.Actions.Total
	m.State = next
	m.Log(effects.LogSystem, "A new game begins. The investigators draw their first breath.", state.VariantSystem)
	return next
}
