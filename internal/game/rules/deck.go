package rules

import (
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/effects"
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/state"
)

// HandSize is the number of cards drawn at the start of every player turn.
const HandSize = 3

// Shuffle permutes items in place with Fisher-Yates using r.
func Shuffle[T any](r state.Random, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// SyncPlayerDeck refreshes the player deck counters.
func SyncPlayerDeck(s *state.GameState) {
	s.Decks.Player.Sync()
}

// SyncEventDeck refreshes the event deck counters and the next-event preview.
func SyncEventDeck(s *state.GameState) {
	s.Decks.Event.Sync()
}

func reshufflePlayerDiscard(m *state.Mutation) bool {
	deck := &m.State.Decks.Player
	if len(deck.DiscardPile) == 0 {
		m.Log(effects.LogDeck, "The deck is exhausted and the discard pile is empty. Rest before the next turn.", state.VariantSystem)
		return false
	}

	Shuffle(m.Rand, deck.DiscardPile)
	deck.DrawPile = deck.DiscardPile
	deck.DiscardPile = nil
	m.Log(effects.LogDeck, "The discard pile is shuffled back into the deck.", state.VariantSystem)
	SyncPlayerDeck(m.State)
	return true
}

func reshuffleEventDiscard(m *state.Mutation) bool {
	deck := &m.State.Decks.Event
	if len(deck.DiscardPile) == 0 {
		m.Log(effects.LogEvent, "The event deck is empty. The fog falls silent.", state.VariantSystem)
		return false
	}

	Shuffle(m.Rand, deck.DiscardPile)
	deck.DrawPile = deck.DiscardPile
	deck.DiscardPile = nil
	m.Log(effects.LogEvent, "The event discard pile is reshuffled.", state.VariantSystem)
	SyncEventDeck(m.State)
	return true
}

// DrawPlayerCards moves up to n cards from the draw pile into the hand,
// reshuffling the discard pile when the draw pile runs out. It returns the
// number of cards actually drawn.
func DrawPlayerCards(m *state.Mutation, n int) int {
	s := m.State
	drawn := 0
	for i := 0; i < n; i++ {
		if len(s.Decks.Player.DrawPile) == 0 && !reshufflePlayerDiscard(m) {
			break
		}

		card := s.Decks.Player.DrawPile[0]
		s.Decks.Player.DrawPile = s.Decks.Player.DrawPile[1:]
		s.Hand = append(s.Hand, card)
		drawn++
	}

	SyncPlayerDeck(s)
	return drawn
}

func drawEventCard(m *state.Mutation) (state.EventCard, bool) {
	deck := &m.State.Decks.Event
	if len(deck.DrawPile) == 0 && !reshuffleEventDiscard(m) {
		return state.EventCard{}, false
	}

	card := deck.DrawPile[0]
	deck.DrawPile = deck.DrawPile[1:]
	SyncEventDeck(m.State)
	return card, true
}

// DiscardHand moves the whole hand to the discard pile and returns how many
// cards were discarded.
func DiscardHand(m *state.Mutation) int {
	s := m.State
	if len(s.Hand) == 0 {
		return 0
	}

	discarded := len(s.Hand)
	s.Decks.Player.DiscardPile = append(s.Decks.Player.DiscardPile, s.Hand...)
	s.Hand = nil
	SyncPlayerDeck(s)
	return discarded
}
