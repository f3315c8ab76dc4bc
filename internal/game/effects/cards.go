package effects

import (
	"fmt"
	"strings"

	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/state"
)

// CardCategory selects the built-in success and failure behaviour of a card.
type CardCategory int

const (
	CategoryNone CardCategory = iota
	CategoryInvestigation
	CategoryHealing
	CategoryTherapy
	CategorySupport
)

func (c CardCategory) String() string {
	switch c {
	case CategoryInvestigation:
		return "investigation"
	case CategoryHealing:
		return "healing"
	case CategoryTherapy:
		return "therapy"
	case CategorySupport:
		return "support"
	default:
		return "none"
	}
}

var categoryNames = map[string]CardCategory{
	"исследование":  CategoryInvestigation,
	"investigation": CategoryInvestigation,
	"лечение":       CategoryHealing,
	"healing":       CategoryHealing,
	"терапия":       CategoryTherapy,
	"therapy":       CategoryTherapy,
	"поддержка":     CategorySupport,
	"support":       CategorySupport,
}

// ParseCardCategory maps a card type string to its category. Unknown types
// map to CategoryNone.
func ParseCardCategory(cardType string) CardCategory {
	return categoryNames[strings.ToLower(strings.TrimSpace(cardType))]
}

type categoryBehavior struct {
	success func(m *state.Mutation, amount int)
	failure func(m *state.Mutation)
}

var categoryBehaviors = map[CardCategory]categoryBehavior{
	CategoryInvestigation: {
		success: func(m *state.Mutation, amount int) { AdjustTrack(m, state.TrackVictoryID, amount) },
		failure: func(m *state.Mutation) { AdjustTrack(m, state.TrackDoomID, 1) },
	},
	CategoryHealing: {
		success: func(m *state.Mutation, amount int) {
			ApplyStatDeltas(m, []state.StatDelta{{StatID: state.StatHealthID, Delta: amount}})
		},
		failure: func(m *state.Mutation) {
			ApplyStatDeltas(m, []state.StatDelta{{StatID: state.StatHealthID, Delta: -1}})
		},
	},
	CategoryTherapy: {
		success: func(m *state.Mutation, amount int) {
			ApplyStatDeltas(m, []state.StatDelta{{StatID: state.StatSanityID, Delta: amount}})
		},
		failure: func(m *state.Mutation) {
			ApplyStatDeltas(m, []state.StatDelta{{StatID: state.StatSanityID, Delta: -1}})
		},
	},
	CategorySupport: {
		success: func(m *state.Mutation, amount int) { AdjustTrack(m, state.TrackDoomID, -amount) },
		failure: func(m *state.Mutation) { adjustMarkerAndLog(m, state.MarkerFearID, 1) },
	},
}

// ApplyCardCategory runs the category behaviour for a resolved card.
func ApplyCardCategory(m *state.Mutation, card state.CardDefinition, success bool) {
	behavior, ok := categoryBehaviors[ParseCardCategory(card.Type)]
	if !ok {
		return
	}
	if success {
		behavior.success(m, card.Effect.Amount)
		return
	}
	behavior.failure(m)
}

// ApplyPlayerCardEffect applies the structured effect of a card, if any.
func ApplyPlayerCardEffect(m *state.Mutation, card state.CardDefinition) {
	effect := card.Effect.Player
	if effect == nil {
		return
	}

	var deltas []state.StatDelta
	if effect.RestoreSanity != 0 {
		deltas = append(deltas, state.StatDelta{StatID: state.StatSanityID, Delta: effect.RestoreSanity})
	}
	if effect.RestoreHealth != 0 {
		deltas = append(deltas, state.StatDelta{StatID: state.StatHealthID, Delta: effect.RestoreHealth})
	}
	ApplyStatDeltas(m, deltas)

	if len(effect.RemoveStatuses) > 0 {
		removed := RemoveStatuses(m.State, effect.RemoveStatuses)
		if len(removed) > 0 {
			m.Log(LogEffect, fmt.Sprintf("Conditions lifted: %s.", strings.Join(removed, ", ")), state.VariantEffect)
		}
	}

	if modifier := AddModifier(m.State, card.ID, effect.Modifier); modifier != nil {
		m.Log(LogEffect, fmt.Sprintf("%s active for %d turn(s).", modifier.Label, modifier.RemainingTurns), state.VariantEffect)
	}
}

// RemoveStatuses drops statuses whose id is listed and clears temporary
// markers sharing one of those ids. It returns the names of what was removed.
func RemoveStatuses(s *state.GameState, ids []string) []string {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	var removed []string
	kept := s.Statuses[:0]
	for _, status := range s.Statuses {
		if _, ok := wanted[status.ID]; ok {
			removed = append(removed, status.Name)
			continue
		}
		kept = append(kept, status)
	}
	s.Statuses = kept

	for i := range s.TemporaryMarkers {
		marker := &s.TemporaryMarkers[i]
		if _, ok := wanted[marker.ID]; ok && marker.Value > 0 {
			marker.Value = 0
			removed = append(removed, marker.Label)
		}
	}
	return removed
}
