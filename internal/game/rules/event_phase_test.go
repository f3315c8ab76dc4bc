package rules

import (
	"testing"

	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/effects"
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/gametest"
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeginEventPhase(t *testing.T) {
	s := gametest.NewState()
	m := gametest.NewMutation(s)

	event := BeginEventPhase(m)

	require.NotNil(t, event)
	assert.Equal(t, "e1", s.Event.ID)
	assert.Equal(t, state.StageEvent, s.LoopStage)
	assert.True(t, s.EventResolutionPending)
	assert.Equal(t, 0, s.Turn.Actions.Remaining)
	assert.Equal(t, 1, s.Decks.Event.Draw)
	assert.Equal(t, "Event e2", s.Decks.Event.Next)
	assert.True(t, gametest.HasLog(s, effects.LogEvent, `Event revealed: "Event e1".`))
}

func TestBeginEventPhaseReshufflesAndExhausts(t *testing.T) {
	s := gametest.NewState()
	s.Decks.Event.DiscardPile = s.Decks.Event.DrawPile
	s.Decks.Event.DrawPile = nil
	m := gametest.NewMutation(s)

	require.NotNil(t, BeginEventPhase(m))
	assert.True(t, gametest.HasLog(s, effects.LogEvent, "The event discard pile is reshuffled."))

	empty := gametest.NewState()
	empty.Decks.Event = state.EventDeck{}
	assert.Nil(t, BeginEventPhase(gametest.NewMutation(empty)))
	assert.Equal(t, state.StagePlayer, empty.LoopStage)
}

func TestBeginEventPhaseNoopWhenFinished(t *testing.T) {
	s := gametest.NewState()
	s.GameOutcome = state.OutcomeVictory
	assert.Nil(t, BeginEventPhase(gametest.NewMutation(s)))
	assert.Equal(t, 2, s.Decks.Event.Draw)
}

func TestEvaluateOutcomeVictoryBeforeDoom(t *testing.T) {
	s := gametest.NewState()
	s.Track(state.TrackVictoryID).Value = 5
	s.Track(state.TrackDoomID).Value = 6
	m := gametest.NewMutation(s)

	assert.Equal(t, state.OutcomeVictory, EvaluateOutcome(m))
	assert.Equal(t, state.StageFinished, s.LoopStage)
	logSize := len(s.Log)

	assert.Equal(t, state.OutcomeVictory, EvaluateOutcome(m))
	assert.Len(t, s.Log, logSize)
}

func TestEvaluateOutcomeIgnoresZeroMax(t *testing.T) {
	s := gametest.NewState()
	s.Track(state.TrackVictoryID).Max = 0
	assert.Equal(t, state.OutcomeNone, EvaluateOutcome(gametest.NewMutation(s)))
}

func TestCompleteEventPhaseReturnsToPlayer(t *testing.T) {
	s := gametest.NewState()
	m := gametest.NewMutation(s)
	BeginEventPhase(m)
	s.EventResolutionSummary = &state.EventSummary{Title: "Event e1", Body: "Done"}

	CompleteEventPhase(m)

	assert.Equal(t, state.StagePlayer, s.LoopStage)
	assert.Equal(t, 2, s.Turn.Number)
	assert.Equal(t, PlaceholderEventID, s.Event.ID)
	assert.Equal(t, 1, s.Decks.Event.Discard)
	require.NotNil(t, s.EventResolutionSummary, "the summary outlives the event phase")
	assert.Equal(t, "Done", s.EventResolutionSummary.Body)

	BeginEventPhase(m)
	assert.Nil(t, s.EventResolutionSummary, "opening the next event clears it")
	assert.Len(t, s.Hand, HandSize)
}

func TestCompleteEventPhaseEndsGame(t *testing.T) {
	s := gametest.NewState()
	m := gametest.NewMutation(s)
	BeginEventPhase(m)
	s.Track(state.TrackDoomID).Value = 6

	CompleteEventPhase(m)

	assert.Equal(t, state.OutcomeDefeat, s.GameOutcome)
	assert.Equal(t, state.StageFinished, s.LoopStage)
	assert.Equal(t, 0, s.Turn.Actions.Remaining)
	assert.Equal(t, PlaceholderEventID, s.Event.ID)
	assert.Equal(t, 1, s.Turn.Number)
	assert.Empty(t, s.Hand)
}

func TestResolveImmediateEvent(t *testing.T) {
	s := gametest.NewState()
	s.Decks.Event.DrawPile = []state.EventCard{
		gametest.ImmediateEvent("storm", &state.EventChoiceEffect{ColdDelta: 1, LogType: "[Weather]"}),
	}
	SyncEventDeck(s)
	m := gametest.NewMutation(s)

	event := BeginEventPhase(m)
	require.NotNil(t, event)
	assert.False(t, s.EventResolutionPending)

	ResolveImmediateEvent(m, event)

	assert.Equal(t, 1, s.Marker(state.MarkerColdID).Value)
	assert.True(t, gametest.HasLog(s, "[Weather]", "The fog moves on its own."))
	assert.Equal(t, state.StagePlayer, s.LoopStage)
	assert.Equal(t, 1, s.Decks.Event.Discard)
	// cold applies its penalty at the start of the new turn
	assert.Equal(t, 2, s.Turn.Actions.Remaining)
}
