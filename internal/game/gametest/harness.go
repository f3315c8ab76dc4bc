// Package gametest provides state fixtures and deterministic collaborators
// for tests across the game packages.
package gametest

import (
	"fmt"

	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/state"
)

// Rolls is a Random that returns scripted Float64 values in order, then
// repeats the last one. Intn always returns n-1 so shuffles keep order.
type Rolls struct {
	values []float64
	next   int
	calls  int
}

// NewRolls returns a Random yielding the given rolls.
func NewRolls(values ...float64) *Rolls {
	if len(values) == 0 {
		values = []float64{0}
	}
	return &Rolls{values: values}
}

// Float64 returns the next scripted roll.
func (r *Rolls) Float64() float64 {
	r.calls++
	v := r.values[r.next]
	if r.next < len(r.values)-1 {
		r.next++
	}
	return v
}

// Intn returns n-1, which makes a Fisher-Yates shuffle the identity.
func (r *Rolls) Intn(n int) int {
	return n - 1
}

// Calls is the number of Float64 calls made so far.
func (r *Rolls) Calls() int {
	return r.calls
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }

// FloatPtr returns a pointer to v.
func FloatPtr(v float64) *float64 { return &v }

// Card builds a playable card of the given type.
func Card(id, cardType string, effect int) state.CardDefinition {
	return state.CardDefinition{
		ID:       id,
		Name:     "Card " + id,
		Type:     cardType,
		Playable: true,
		Effect:   state.CardEffect{Amount: effect},
	}
}

// Cards builds n generic cards named prefix-1..prefix-n.
func Cards(prefix string, n int) []state.CardDefinition {
	cards := make([]state.CardDefinition, n)
	for i := range cards {
		cards[i] = Card(fmt.Sprintf("%s-%d", prefix, i+1), "investigation", 1)
	}
	return cards
}

// TwoChoiceEvent builds an event with two deterministic choices.
func TwoChoiceEvent(id string) state.EventCard {
	return state.EventCard{
		ID:     id,
		Title:  "Event " + id,
		Effect: "Something stirs.",
		Choices: []state.EventChoice{
			{ID: "first", Label: "First", Result: "You act first.", Effects: &state.EventChoiceEffect{VictoryDelta: 1}},
			{ID: "second", Label: "Second", Result: "You act second.", Effects: &state.EventChoiceEffect{DoomDelta: 1}},
		},
	}
}

// ImmediateEvent builds a choice-less event.
func ImmediateEvent(id string, effects *state.EventChoiceEffect) state.EventCard {
	return state.EventCard{
		ID:               id,
		Title:            "Event " + id,
		Effect:           "The fog moves on its own.",
		ImmediateEffects: effects,
	}
}

// NewState returns a state sitting in the player stage of turn 1 with an
// empty hand, eight cards in the player draw pile and two events.
func NewState() *state.GameState {
	s := &state.GameState{
		Turn: state.Turn{Number: 1, Actions: state.ActionPool{Remaining: 3, Total: 3}},
		Decks: state.Decks{
			Player: state.Deck[state.CardDefinition]{DrawPile: Cards("card", 8)},
			Event: state.EventDeck{Deck: state.Deck[state.EventCard]{
				DrawPile: []state.EventCard{TwoChoiceEvent("e1"), TwoChoiceEvent("e2")},
			}},
		},
		WorldTracks: []state.Track{
			{ID: state.TrackVictoryID, Label: "Clues", Value: 0, Max: 5, Type: state.TrackVictory},
			{ID: state.TrackDoomID, Label: "Doom", Value: 0, Max: 6, Type: state.TrackDoom},
		},
		CharacterStats: []state.CharacterStat{
			{ID: state.StatHealthID, Label: "Health", Value: 5, Max: 6},
			{ID: state.StatSanityID, Label: "Sanity", Value: 5, Max: 6},
		},
		TemporaryMarkers: []state.TemporaryMarker{
			{ID: state.MarkerColdID, Label: "Cold", Max: IntPtr(3), Tone: state.ToneNegative, ActionPenaltyPerStack: 1, DecayPerTurn: 1},
			{ID: state.MarkerFearID, Label: "Fear", Max: IntPtr(4), Tone: state.ToneNegative, DecayPerTurn: 1},
		},
		Event:         state.EventCard{ID: "no-event", Title: "Calm"},
		JournalScript: state.JournalScript{Completed: true},
		LoopStage:     state.StagePlayer,
	}
	s.Decks.Player.Sync()
	s.Decks.Event.Sync()
	return s
}

// NewMutation wraps s with scripted rolls and sequential ids.
func NewMutation(s *state.GameState, rolls ...float64) *state.Mutation {
	return &state.Mutation{State: s, Rand: NewRolls(rolls...), IDs: &state.SequenceIDs{}}
}

// HasLog reports whether any log entry has the given type and body.
func HasLog(s *state.GameState, entryType, body string) bool {
	for _, entry := range s.Log {
		if entry.Type == entryType && entry.Body == body {
			return true
		}
	}
	return false
}

// HasLogType reports whether any log entry has the given type.
func HasLogType(s *state.GameState, entryType string) bool {
	for _, entry := range s.Log {
		if entry.Type == entryType {
			return true
		}
	}
	return false
}
