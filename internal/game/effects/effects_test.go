package effects

import (
	"testing"

	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/gametest"
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyStatDeltasClamps(t *testing.T) {
	m := gametest.NewMutation(gametest.NewState())

	ApplyStatDeltas(m, []state.StatDelta{
		{StatID: state.StatHealthID, Delta: 100},
		{StatID: state.StatSanityID, Delta: -2},
		{StatID: "unknown", Delta: -5},
	})

	assert.Equal(t, 6, m.State.Stat(state.StatHealthID).Value)
	assert.Equal(t, 3, m.State.Stat(state.StatSanityID).Value)
	assert.Equal(t, state.OutcomeNone, m.State.GameOutcome)
}

func TestApplyStatDeltasTriggersHealthEnding(t *testing.T) {
	m := gametest.NewMutation(gametest.NewState())

	ApplyStatDeltas(m, []state.StatDelta{{StatID: state.StatHealthID, Delta: -100}})

	assert.Equal(t, 0, m.State.Stat(state.StatHealthID).Value)
	assert.Equal(t, state.OutcomeDefeat, m.State.GameOutcome)
	assert.Equal(t, state.StageFinished, m.State.LoopStage)
	assert.Equal(t, 0, m.State.Turn.Actions.Remaining)
	require.NotNil(t, m.State.Ending)
	assert.Equal(t, string(state.EndingHealthDepleted), m.State.Ending.ID)
	assert.True(t, gametest.HasLogType(m.State, LogFinale))
}

func TestScenarioEndingOverridesFallback(t *testing.T) {
	s := gametest.NewState()
	s.Scenario.Endings = map[state.EndingKey]state.Ending{
		state.EndingSanityDepleted: {ID: "lost", Title: "Lost", Text: "The fog keeps you."},
	}
	m := gametest.NewMutation(s)

	ApplyStatDeltas(m, []state.StatDelta{{StatID: state.StatSanityID, Delta: -10}})

	require.NotNil(t, s.Ending)
	assert.Equal(t, "lost", s.Ending.ID)
	assert.True(t, gametest.HasLog(s, LogFinale, "The fog keeps you."))
}

func TestEndingChecksAreIdempotent(t *testing.T) {
	m := gametest.NewMutation(gametest.NewState())
	m.State.Track(state.TrackDoomID).Value = 6

	assert.True(t, CheckDoomEnding(m))
	logSize := len(m.State.Log)

	assert.True(t, CheckDoomEnding(m))
	assert.True(t, CheckStatEndings(m))
	assert.Len(t, m.State.Log, logSize)
}

func TestAdjustTrackTriggersDoomEnding(t *testing.T) {
	s := gametest.NewState()
	s.Track(state.TrackDoomID).Value = 5
	m := gametest.NewMutation(s)

	AdjustTrack(m, state.TrackDoomID, 1)

	assert.Equal(t, state.OutcomeDefeat, s.GameOutcome)
	assert.Equal(t, state.StageFinished, s.LoopStage)
	assert.Equal(t, 0, s.Turn.Actions.Remaining)
	assert.Equal(t, string(state.EndingDoomReached), s.Ending.ID)
}

func TestAdjustTrackClampsAndIgnoresUnknown(t *testing.T) {
	m := gametest.NewMutation(gametest.NewState())

	AdjustTrack(m, state.TrackVictoryID, -3)
	AdjustTrack(m, "missing", 3)
	assert.Equal(t, 0, m.State.Track(state.TrackVictoryID).Value)

	AdjustTrack(m, state.TrackVictoryID, 99)
	assert.Equal(t, 5, m.State.Track(state.TrackVictoryID).Value)
}

func TestAdjustActionsClamps(t *testing.T) {
	s := gametest.NewState()
	AdjustActions(s, 10)
	assert.Equal(t, 3, s.Turn.Actions.Remaining)
	AdjustActions(s, -10)
	assert.Equal(t, 0, s.Turn.Actions.Remaining)
}

func TestAdjustTemporaryMarker(t *testing.T) {
	s := gametest.NewState()

	marker, applied := AdjustTemporaryMarker(s, state.MarkerColdID, 5)
	require.NotNil(t, marker)
	assert.Equal(t, 3, applied)
	assert.Equal(t, 3, marker.Value)

	_, applied = AdjustTemporaryMarker(s, state.MarkerColdID, -10)
	assert.Equal(t, -3, applied)

	marker, applied = AdjustTemporaryMarker(s, "missing", 1)
	assert.Nil(t, marker)
	assert.Equal(t, 0, applied)

	s.TemporaryMarkers = append(s.TemporaryMarkers, state.TemporaryMarker{ID: "unbounded"})
	_, applied = AdjustTemporaryMarker(s, "unbounded", 40)
	assert.Equal(t, 40, applied)
}

func TestModifierLifecycle(t *testing.T) {
	s := gametest.NewState()
	spec := &state.ModifierSpec{Label: "Calm", Turns: 2, ReduceSanityLoss: 1}

	AddModifier(s, "c1", spec)
	AddModifier(s, "c1", spec)
	require.Len(t, s.Modifiers, 1)
	assert.Nil(t, AddModifier(s, "c2", &state.ModifierSpec{Turns: 0}))

	assert.Empty(t, TickModifiers(s))
	assert.Equal(t, 1, s.Modifiers[0].RemainingTurns)

	expired := TickModifiers(s)
	require.Len(t, expired, 1)
	assert.Equal(t, "Calm", expired[0].Label)
	assert.Empty(t, s.Modifiers)
}

func TestMitigateSanityLoss(t *testing.T) {
	s := gametest.NewState()
	s.Modifiers = []state.CardModifier{
		{ID: "a", RemainingTurns: 1, ReduceSanityLoss: 1},
		{ID: "b", RemainingTurns: 2, ReduceSanityLoss: 2},
	}

	delta, prevented := MitigateSanityLoss(s, -5)
	assert.Equal(t, -2, delta)
	assert.Equal(t, 3, prevented)

	delta, prevented = MitigateSanityLoss(s, -2)
	assert.Equal(t, 0, delta)
	assert.Equal(t, 2, prevented)

	delta, prevented = MitigateSanityLoss(s, 2)
	assert.Equal(t, 2, delta)
	assert.Equal(t, 0, prevented)
}

func TestSanityLossMitigatedThroughStatDeltas(t *testing.T) {
	s := gametest.NewState()
	s.Modifiers = []state.CardModifier{{ID: "a", RemainingTurns: 1, ReduceSanityLoss: 1}}
	m := gametest.NewMutation(s)

	ApplyStatDeltas(m, []state.StatDelta{{StatID: state.StatSanityID, Delta: -3}})

	assert.Equal(t, 3, s.Stat(state.StatSanityID).Value)
	assert.True(t, gametest.HasLog(s, LogEffect, "Your focus holds: 1 sanity loss prevented."))
}

func TestApplyEventChoiceEffectsDefaults(t *testing.T) {
	m := gametest.NewMutation(gametest.NewState())

	logType, variant := ApplyEventChoiceEffects(m, &state.EventChoiceEffect{
		StatDeltas:   []state.StatDelta{{StatID: state.StatHealthID, Delta: -1}},
		DoomDelta:    2,
		ColdDelta:    1,
		FearDelta:    2,
		ActionsDelta: -1,
		CluesGained:  1,
		Noise:        1,
	}, nil)

	assert.Equal(t, LogEvent, logType)
	assert.Equal(t, state.LogVariant(""), variant)
	s := m.State
	assert.Equal(t, 4, s.Stat(state.StatHealthID).Value)
	assert.Equal(t, 2, s.Track(state.TrackDoomID).Value)
	assert.Equal(t, 1, s.Track(state.TrackVictoryID).Value)
	assert.Equal(t, 1, s.Marker(state.MarkerColdID).Value)
	assert.Equal(t, 2, s.Marker(state.MarkerFearID).Value)
	assert.Equal(t, 2, s.Turn.Actions.Remaining)
	assert.True(t, gametest.HasLog(s, LogClue, "Clues gained: 1."))
	assert.True(t, gametest.HasLog(s, LogEffect, "Cold +1."))
	assert.True(t, gametest.HasLog(s, LogEffect, "Fear +2."))
	assert.True(t, gametest.HasLog(s, LogEffect, "Noise +1."))
}

func TestApplyEventChoiceEffectsNilAndOverride(t *testing.T) {
	m := gametest.NewMutation(gametest.NewState())

	logType, _ := ApplyEventChoiceEffects(m, nil, nil)
	assert.Equal(t, LogEvent, logType)

	logType, variant := ApplyEventChoiceEffects(m, &state.EventChoiceEffect{LogType: "[Omen]", LogVariant: state.VariantEffect}, nil)
	assert.Equal(t, "[Omen]", logType)
	assert.Equal(t, state.VariantEffect, variant)
	assert.Empty(t, m.State.Log)
}

func TestApplyEventChoiceEffectsCustomHandlers(t *testing.T) {
	m := gametest.NewMutation(gametest.NewState())
	var seen []EffectKind

	handlers := Handlers{
		EffectDoomDelta: func(m *state.Mutation, e *state.EventChoiceEffect) { seen = append(seen, EffectDoomDelta) },
		EffectNoise:     func(m *state.Mutation, e *state.EventChoiceEffect) { seen = append(seen, EffectNoise) },
	}

	ApplyEventChoiceEffects(m, &state.EventChoiceEffect{DoomDelta: 1, VictoryDelta: 1}, handlers)

	assert.Equal(t, []EffectKind{EffectDoomDelta}, seen)
	assert.Equal(t, 0, m.State.Track(state.TrackDoomID).Value)
	assert.Equal(t, 0, m.State.Track(state.TrackVictoryID).Value)
}

func TestNoiseAdvancesNoiseTrackWhenPresent(t *testing.T) {
	s := gametest.NewState()
	s.WorldTracks = append(s.WorldTracks, state.Track{ID: state.TrackNoiseID, Max: 4, Type: state.TrackGeneric})
	m := gametest.NewMutation(s)

	ApplyEventChoiceEffects(m, &state.EventChoiceEffect{Noise: 2}, nil)
	assert.Equal(t, 2, s.Track(state.TrackNoiseID).Value)
}

func TestParseCardCategory(t *testing.T) {
	cases := map[string]CardCategory{
		"Исследование":  CategoryInvestigation,
		"investigation": CategoryInvestigation,
		"Лечение":       CategoryHealing,
		"Healing":       CategoryHealing,
		"Терапия":       CategoryTherapy,
		"therapy":       CategoryTherapy,
		"Поддержка":     CategorySupport,
		" support ":     CategorySupport,
		"ritual":        CategoryNone,
	}
	for input, want := range cases {
		assert.Equal(t, want, ParseCardCategory(input), input)
	}
}

func TestCardCategoryBehaviours(t *testing.T) {
	type check func(t *testing.T, s *state.GameState)

	cases := []struct {
		name    string
		card    state.CardDefinition
		success bool
		check   check
	}{
		{"investigation success", gametest.Card("c", "Исследование", 2), true, func(t *testing.T, s *state.GameState) {
			assert.Equal(t, 2, s.Track(state.TrackVictoryID).Value)
		}},
		{"investigation failure", gametest.Card("c", "investigation", 2), false, func(t *testing.T, s *state.GameState) {
			assert.Equal(t, 4, s.Track(state.TrackDoomID).Value)
		}},
		{"healing success", gametest.Card("c", "Лечение", 1), true, func(t *testing.T, s *state.GameState) {
			assert.Equal(t, 6, s.Stat(state.StatHealthID).Value)
		}},
		{"healing failure", gametest.Card("c", "healing", 1), false, func(t *testing.T, s *state.GameState) {
			assert.Equal(t, 4, s.Stat(state.StatHealthID).Value)
		}},
		{"therapy success", gametest.Card("c", "Терапия", 1), true, func(t *testing.T, s *state.GameState) {
			assert.Equal(t, 6, s.Stat(state.StatSanityID).Value)
		}},
		{"therapy failure", gametest.Card("c", "therapy", 1), false, func(t *testing.T, s *state.GameState) {
			assert.Equal(t, 4, s.Stat(state.StatSanityID).Value)
		}},
		{"support success", gametest.Card("c", "Поддержка", 2), true, func(t *testing.T, s *state.GameState) {
			assert.Equal(t, 1, s.Track(state.TrackDoomID).Value)
		}},
		{"support failure", gametest.Card("c", "support", 2), false, func(t *testing.T, s *state.GameState) {
			assert.Equal(t, 1, s.Marker(state.MarkerFearID).Value)
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := gametest.NewState()
			s.Track(state.TrackDoomID).Value = 3
			ApplyCardCategory(gametest.NewMutation(s), tc.card, tc.success)
			tc.check(t, s)
		})
	}
}

func TestApplyPlayerCardEffect(t *testing.T) {
	s := gametest.NewState()
	s.Stat(state.StatSanityID).Value = 2
	s.Statuses = []state.StatusEffect{{ID: "shaken", Name: "Shaken"}, {ID: "wet", Name: "Wet"}}
	s.Marker(state.MarkerFearID).Value = 2
	m := gametest.NewMutation(s)

	card := gametest.Card("tea", "therapy", 0)
	card.Effect = state.CardEffect{Player: &state.PlayerCardEffect{
		RestoreSanity:  2,
		RestoreHealth:  1,
		RemoveStatuses: []string{"shaken", state.MarkerFearID},
		Modifier:       &state.ModifierSpec{Label: "Warm tea", Turns: 2, ReduceSanityLoss: 1},
	}}

	ApplyPlayerCardEffect(m, card)

	assert.Equal(t, 4, s.Stat(state.StatSanityID).Value)
	assert.Equal(t, 6, s.Stat(state.StatHealthID).Value)
	require.Len(t, s.Statuses, 1)
	assert.Equal(t, "wet", s.Statuses[0].ID)
	assert.Equal(t, 0, s.Marker(state.MarkerFearID).Value)
	require.Len(t, s.Modifiers, 1)
	assert.Equal(t, "tea", s.Modifiers[0].SourceCardID)
	assert.True(t, gametest.HasLog(s, LogEffect, "Conditions lifted: Shaken, Fear."))
	assert.True(t, gametest.HasLog(s, LogEffect, "Warm tea active for 2 turn(s)."))
}

func TestActionPenalty(t *testing.T) {
	assert.Equal(t, 0, ActionPenalty(nil))
	assert.Equal(t, 2, ActionPenalty(&state.TemporaryMarker{Value: 2, ActionPenaltyPerStack: 1}))
	assert.Equal(t, 0, ActionPenalty(&state.TemporaryMarker{Value: 2}))
}
