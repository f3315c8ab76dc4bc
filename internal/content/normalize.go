package content

import "github.com/alexander-topilskii/Whisper-of-Horror/internal/game/state"

// NormalizeOptionEffect converts authoring units into an EventChoiceEffect.
// It returns nil when the effect changes nothing.
func NormalizeOptionEffect(raw *RawOptionEffect) *state.EventChoiceEffect {
	if raw == nil {
		return nil
	}

	var (
		effect  state.EventChoiceEffect
		changed bool
	)
	if raw.Sanity != 0 {
		effect.StatDeltas = append(effect.StatDeltas, state.StatDelta{StatID: state.StatSanityID, Delta: -raw.Sanity})
		changed = true
	}
	if raw.Wound != 0 {
		effect.StatDeltas = append(effect.StatDeltas, state.StatDelta{StatID: state.StatHealthID, Delta: -raw.Wound})
		changed = true
	}
	if raw.Clue != 0 {
		effect.CluesGained = raw.Clue
		changed = true
	}
	if raw.Omen != 0 {
		effect.DoomDelta = raw.Omen
		changed = true
	}
	if raw.Cold != 0 {
		effect.ColdDelta = raw.Cold
		changed = true
	}
	if raw.Fear != 0 {
		effect.FearDelta = raw.Fear
		changed = true
	}

	if !changed {
		return nil
	}
	return &effect
}

// NormalizeOption converts an authored option into a choice. An option
// without a chance always succeeds, so its success effect and text become
// the plain effect and result.
func NormalizeOption(option RawEventOption) state.EventChoice {
	choice := state.EventChoice{
		ID:             option.ID,
		Label:          option.Label,
		Result:         option.Result,
		Chance:         option.Chance,
		SuccessText:    option.SuccessText,
		FailText:       option.FailText,
		SuccessEffects: NormalizeOptionEffect(option.Effect.OnSuccess),
		FailEffects:    NormalizeOptionEffect(option.Effect.OnFail),
	}
	if choice.Chance == nil {
		choice.Effects = choice.SuccessEffects
		if choice.Result == "" {
			choice.Result = choice.SuccessText
		}
	}
	return choice
}

// NormalizeEventCard replaces authored options with choices. Cards without
// options are returned unchanged.
func NormalizeEventCard(raw RawEventCard) state.EventCard {
	card := raw.EventCard
	if len(raw.Options) == 0 {
		return card
	}

	card.Choices = make([]state.EventChoice, 0, len(raw.Options))
	for _, option := range raw.Options {
		card.Choices = append(card.Choices, NormalizeOption(option))
	}
	return card
}

// NormalizeEventDeck normalizes every card of a deck.
func NormalizeEventDeck(deck []RawEventCard) []state.EventCard {
	cards := make([]state.EventCard, 0, len(deck))
	for _, raw := range deck {
		cards = append(cards, NormalizeEventCard(raw))
	}
	return cards
}
