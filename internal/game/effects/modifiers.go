package effects

import (
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/state"
)

// ModifierID is the id of the modifier a card creates. Replaying the same card
// refreshes its modifier instead of stacking a second one.
func ModifierID(cardID string) string {
	return "mod-" + cardID
}

// AddModifier creates or refreshes the modifier for a card. Specs lasting
// fewer than one turn are ignored.
func AddModifier(s *state.GameState, cardID string, spec *state.ModifierSpec) *state.CardModifier {
	if spec == nil || spec.Turns <= 0 {
		return nil
	}

	id := ModifierID(cardID)
	for i := range s.Modifiers {
		if s.Modifiers[i].ID == id {
			s.Modifiers[i].Label = spec.Label
			s.Modifiers[i].RemainingTurns = spec.Turns
			s.Modifiers[i].ReduceSanityLoss = spec.ReduceSanityLoss
			return &s.Modifiers[i]
		}
	}

	s.Modifiers = append(s.Modifiers, state.CardModifier{
		ID:               id,
		SourceCardID:     cardID,
		Label:            spec.Label,
		RemainingTurns:   spec.Turns,
		ReduceSanityLoss: spec.ReduceSanityLoss,
	})
	return &s.Modifiers[len(s.Modifiers)-1]
}

// TickModifiers decrements every modifier and removes those that reach zero.
// The expired modifiers are returned.
func TickModifiers(s *state.GameState) []state.CardModifier {
	if len(s.Modifiers) == 0 {
		return nil
	}

	var expired []state.CardModifier
	kept := s.Modifiers[:0]
	for _, modifier := range s.Modifiers {
		modifier.RemainingTurns--
		if modifier.RemainingTurns <= 0 {
			expired = append(expired, modifier)
			continue
		}
		kept = append(kept, modifier)
	}
	s.Modifiers = kept
	return expired
}

// MitigateSanityLoss reduces a negative sanity delta by the summed
// ReduceSanityLoss of active modifiers. The result never exceeds zero.
// It returns the adjusted delta and the amount prevented.
func MitigateSanityLoss(s *state.GameState, delta int) (int, int) {
	if delta >= 0 {
		return delta, 0
	}

	reduction := 0
	for _, modifier := range s.Modifiers {
		if modifier.RemainingTurns > 0 && modifier.ReduceSanityLoss > 0 {
			reduction += modifier.ReduceSanityLoss
		}
	}
	if reduction == 0 {
		return delta, 0
	}

	prevented := reduction
	if prevented > -delta {
		prevented = -delta
	}
	return delta + prevented, prevented
}
