package rules

import (
	"fmt"

	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/effects"
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/state"
)

// PlaceholderEventID identifies the calm event shown between event phases.
const PlaceholderEventID = "no-event"

// EventPlaceholder returns the event shown when no event is active.
func EventPlaceholder() state.EventCard {
	return state.EventCard{
		ID:     PlaceholderEventID,
		Title:  "The fog is quiet",
		Flavor: "For now nothing stirs in the streets.",
		Effect: "No event is active.",
		Type:   "calm",
	}
}

// BeginEventPhase draws the next event and makes it current. It returns nil
// when an outcome is already set or no event can be drawn.
func BeginEventPhase(m *state.Mutation) *state.EventCard {
	s := m.State
	if s.Finished() {
		return nil
	}

	next, ok := drawEventCard(m)
	if !ok {
		return nil
	}

	s.Event = next
	s.LoopStage = state.StageEvent
	s.EventResolutionPending = len(next.Choices) > 0
	s.EventResolutionSummary = nil
	s.Turn.Actions.Remaining = 0
	s.Phase = state.Phase{Icon: "☄️", Name: "Event phase", Subtitle: next.Title}
	m.Log(effects.LogEvent, fmt.Sprintf("Event revealed: %q.", next.Title), state.VariantStory)
	return &s.Event
}

// EvaluateOutcome checks the victory track first and the doom track second.
// It returns the outcome already set, if any, without re-evaluating.
func EvaluateOutcome(m *state.Mutation) state.Outcome {
	s := m.State
	if s.Finished() {
		return s.GameOutcome
	}

	if victory := s.TrackOfType(state.TrackVictory); victory != nil && victory.Max > 0 && victory.Value >= victory.Max {
		s.GameOutcome = state.OutcomeVictory
		s.LoopStage = state.StageFinished
		s.Phase = state.Phase{Icon: "🏆", Name: "Victory", Subtitle: "The investigators uncovered the truth"}
		m.Log(effects.LogFinale, "You gathered enough clues to stop the fog.", state.VariantStory)
		return state.OutcomeVictory
	}

	if doom := s.TrackOfType(state.TrackDoom); doom != nil && doom.Max > 0 && doom.Value >= doom.Max {
		s.GameOutcome = state.OutcomeDefeat
		s.LoopStage = state.StageFinished
		s.Phase = state.Phase{Icon: "☠️", Name: "Defeat", Subtitle: "The fog swallowed the Old Quarter"}
		m.Log(effects.LogFinale, "The destruction reaches its peak. There is no way out.", state.VariantStory)
		return state.OutcomeDefeat
	}

	return state.OutcomeNone
}

// CompleteEventPhase discards the current event and either ends the game or
// hands control back to the player.
func CompleteEventPhase(m *state.Mutation) {
	s := m.State
	if s.Event.ID != PlaceholderEventID {
		s.Decks.Event.DiscardPile = append(s.Decks.Event.DiscardPile, s.Event)
	}
	SyncEventDeck(s)
	s.EventResolutionPending = false

	if outcome := EvaluateOutcome(m); outcome != state.OutcomeNone {
		s.Turn.Actions.Remaining = 0
		s.Event = EventPlaceholder()
		return
	}

	s.Event = EventPlaceholder()
	StartPlayerTurn(m)
}

// ResolveImmediateEvent applies the immediate effects of a choice-less event,
// logs its text and completes the event phase.
func ResolveImmediateEvent(m *state.Mutation, event *state.EventCard) {
	logType, variant := effects.ApplyEventChoiceEffects(m, event.ImmediateEffects, nil)
	if variant == "" {
		variant = state.VariantStory
	}
	m.Log(logType, event.Effect, variant)
	m.State.EventResolutionSummary = &state.EventSummary{Title: event.Title, Body: event.Effect, Variant: variant}
	CompleteEventPhase(m)
}
