package commands

import (
	"fmt"

	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/effects"
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/rules"
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/state"
)

// PlayCardCommand plays one card from the hand.
type PlayCardCommand struct {
	CardID string
}

// NewPlayCard creates a PlayCardCommand for the given card.
func NewPlayCard(cardID string) *PlayCardCommand {
	return &PlayCardCommand{CardID: cardID}
}

func (c *PlayCardCommand) Type() string { return TypePlayCard }

func (c *PlayCardCommand) Execute(m *state.Mutation) *state.GameState {
	s := m.State
	if s.Finished() {
		m.Log(effects.LogSystem, "The game is already over.", state.VariantSystem)
		return s
	}
	if s.LoopStage != state.StagePlayer {
		m.Log(effects.LogSystem, "You cannot play cards right now.", state.VariantSystem)
		return s
	}

	index := s.HandIndex(c.CardID)
	if index < 0 {
		m.Log(effects.LogSystem, "That card is no longer in your hand.", state.VariantSystem)
		return s
	}

	card := s.Hand[index]
	if !card.Playable {
		m.Log(effects.LogAction, fmt.Sprintf("%q is locked for now.", card.Name), state.VariantSystem)
		return s
	}
	cost := card.Cost()
	if s.Turn.Actions.Remaining < cost {
		m.Log(effects.LogAction, "Not enough actions to play this card.", state.VariantSystem)
		return s
	}

	s.Hand = append(s.Hand[:index:index], s.Hand[index+1:]...)
	effects.AdjustActions(s, -cost)

	success := Roll(m.Rand, card.Chance)
	logType, variant := effects.LogAction, state.VariantPlayer
	effects.ApplyCardCategory(m, card, success)
	if success {
		effects.ApplyPlayerCardEffect(m, card)
		if card.Effects != nil {
			effectType, override := effects.ApplyEventChoiceEffects(m, card.Effects, nil)
			if card.Effects.LogType != "" {
				logType = effectType
			}
			if override != "" {
				variant = override
			}
		}
	}

	text := cardNarrative(card, success)
	m.Log(logType, text, variant)

	serial := 1
	if s.LastCardPlay != nil {
		serial = s.LastCardPlay.Serial + 1
	}
	s.LastCardPlay = &state.CardPlay{Serial: serial, CardID: card.ID, Name: card.Name, Success: success, Text: text}

	if exhausted := consumeUse(&card, success); exhausted {
		m.Log(effects.LogDeck, fmt.Sprintf("%q vanishes from the game.", card.Name), state.VariantSystem)
	} else {
		s.Decks.Player.DiscardPile = append(s.Decks.Player.DiscardPile, card)
	}
	rules.SyncPlayerDeck(s)
	return s
}

func cardNarrative(card state.CardDefinition, success bool) string {
	if success {
		text := card.SuccessText
		if text == "" {
			text = fmt.Sprintf("%s works as intended.", card.Name)
		}
		return text + " ✅"
	}
	text := card.FailText
	if text == "" {
		text = fmt.Sprintf("%s does not go as planned.", card.Name)
	}
	return text + " ❌"
}

// consumeUse decrements the counter matching the result and reports whether
// the card is used up. Cards without that counter are never used up.
func consumeUse(card *state.CardDefinition, success bool) bool {
	counter := card.FailCount
	if success {
		counter = card.SuccessCount
	}
	if counter == nil {
		return false
	}

	remaining := *counter - 1
	if success {
		card.SuccessCount = &remaining
	} else {
		card.FailCount = &remaining
	}
	return remaining <= 0
}
