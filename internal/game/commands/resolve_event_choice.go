package commands

import (
	"fmt"
	"math"

	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/effects"
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/rules"
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/state"
)

// ResolveEventChoiceCommand resolves one choice of the current event. The
// event phase completes once every choice is resolved.
type ResolveEventChoiceCommand struct {
	ChoiceID string
}

// NewResolveEventChoice creates a ResolveEventChoiceCommand for the given choice.
func NewResolveEventChoice(choiceID string) *ResolveEventChoiceCommand {
	return &ResolveEventChoiceCommand{ChoiceID: choiceID}
}

func (c *ResolveEventChoiceCommand) Type() string { return TypeResolveEventChoice }

func (c *ResolveEventChoiceCommand) Execute(m *state.Mutation) *state.GameState {
	s := m.State
	if s.Finished() {
		m.Log(effects.LogSystem, "The game is already over.", state.VariantSystem)
		return s
	}
	if s.LoopStage != state.StageEvent {
		m.Log(effects.LogSystem, "There is no event to resolve right now.", state.VariantSystem)
		return s
	}
	if !s.EventResolutionPending {
		m.Log(effects.LogSystem, "This event needs no decision.", state.VariantSystem)
		return s
	}

	choice := s.Event.Choice(c.ChoiceID)
	if choice == nil {
		m.Log(effects.LogSystem, "Event choice not found.", state.VariantSystem)
		return s
	}
	if choice.Resolved {
		logType := effects.LogEvent
		if choice.Effects != nil && choice.Effects.LogType != "" {
			logType = choice.Effects.LogType
		}
		m.Log(logType, "This fork has already been decided.", state.VariantSystem)
		return s
	}

	choice.Resolved = true

	var (
		logType string
		variant state.LogVariant
		text    string
	)
	if choice.Chance != nil {
		success := Roll(m.Rand, choice.Chance)
		chosen, outcomeText, label := choice.FailEffects, choice.FailText, "fail"
		choice.Outcome = state.ChoiceFail
		if success {
			chosen, outcomeText, label = choice.SuccessEffects, choice.SuccessText, "success"
			choice.Outcome = state.ChoiceSuccess
		}
		if chosen == nil {
			chosen = choice.Effects
		}
		if outcomeText == "" {
			outcomeText = choice.Result
		}
		if outcomeText == "" {
			outcomeText = choice.Label
		}

		logType, variant = effects.ApplyEventChoiceEffects(m, chosen, nil)
		percent := int(math.Round(*choice.Chance * 100))
		text = fmt.Sprintf("%s Chance %d%%, result: %s.", outcomeText, percent, label)
	} else {
		logType, variant = effects.ApplyEventChoiceEffects(m, choice.Effects, nil)
		text = choice.Result
		if text == "" {
			text = choice.Label
		}
	}
	if variant == "" {
		variant = state.VariantStory
	}

	m.Log(logType, text, variant)
	s.EventResolutionSummary = &state.EventSummary{Title: s.Event.Title, Body: text, Variant: variant}

	s.EventResolutionPending = s.Event.HasUnresolvedChoices()
	if !s.EventResolutionPending || s.Finished() {
		rules.CompleteEventPhase(m)
	}
	return s
}
