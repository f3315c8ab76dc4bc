package content

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/gametest"
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/rules"
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/state"
)

func buildDefault(t *testing.T) (*File, *state.GameState) {
	t.Helper()
	f, err := LoadDefault()
	require.NoError(t, err)

	s, err := Build(f, gametest.NewRolls(), &state.SequenceIDs{})
	require.NoError(t, err)
	return f, s
}

func TestDefaultScenarioBuilds(t *testing.T) {
	f, s := buildDefault(t)

	assert.Equal(t, state.StageStory, s.LoopStage)
	assert.Equal(t, 0, s.Turn.Number)
	assert.Equal(t, 3, s.Turn.Actions.Remaining)
	assert.Empty(t, s.Hand)
	assert.Equal(t, rules.PlaceholderEventID, s.Event.ID)

	assert.Len(t, s.Decks.Player.DrawPile, len(f.PlayerDeck.DrawPile))
	assert.Equal(t, len(f.PlayerDeck.DrawPile), s.Decks.Player.Draw)
	assert.Len(t, s.Decks.Event.DrawPile, len(f.EventDeck))
	assert.Equal(t, s.Decks.Event.DrawPile[0].Title, s.Decks.Event.Next)

	victory := s.Track(state.TrackVictoryID)
	require.NotNil(t, victory)
	assert.Equal(t, 6, victory.Max)
	assert.Equal(t, state.TrackVictory, victory.Type)
	doom := s.Track(state.TrackDoomID)
	require.NotNil(t, doom)
	assert.Equal(t, 1, doom.Value)
	assert.Equal(t, 8, doom.Max)
	assert.NotNil(t, s.Track(state.TrackNoiseID))

	assert.NotNil(t, s.Marker(state.MarkerColdID))
	assert.NotNil(t, s.Marker(state.MarkerFearID))
	assert.Contains(t, s.Scenario.Endings, state.EndingDoomReached)

	require.Len(t, s.JournalScript.Entries, 3)
	assert.Equal(t, "[Prologue] The Fog Comes Down", s.JournalScript.Entries[0].Type)
	assert.Equal(t, "[Task] Find the source of the whispers", s.JournalScript.Entries[1].Type)
	assert.False(t, s.JournalScript.Completed)
}

func TestDefaultScenarioCardEffects(t *testing.T) {
	f, err := LoadDefault()
	require.NoError(t, err)

	byID := make(map[string]state.CardDefinition)
	for _, card := range f.PlayerDeck.DrawPile {
		byID[card.ID] = card
	}

	assert.Equal(t, 2, byID["question-witness"].Effect.Amount)
	charm := byID["warding-charm"].Effect.Player
	require.NotNil(t, charm)
	assert.Equal(t, 1, charm.RestoreSanity)
	require.NotNil(t, charm.Modifier)
	assert.Equal(t, 2, charm.Modifier.Turns)
	assert.Equal(t, 2, byID["follow-lights"].Cost())
}

func TestBuildCopiesContent(t *testing.T) {
	f, s := buildDefault(t)

	s.Decks.Player.DrawPile[0].Name = "changed"
	s.CharacterStats[0].Value = 0

	for _, card := range f.PlayerDeck.DrawPile {
		assert.NotEqual(t, "changed", card.Name)
	}
	assert.Equal(t, 6, f.Character.Stats[0].Value)
}

func TestNormalizeOptionEffect(t *testing.T) {
	effect := NormalizeOptionEffect(&RawOptionEffect{Clue: 1, Sanity: 2, Omen: 1, Wound: 3, Cold: 1, Fear: 2})

	require.NotNil(t, effect)
	assert.Equal(t, []state.StatDelta{
		{StatID: state.StatSanityID, Delta: -2},
		{StatID: state.StatHealthID, Delta: -3},
	}, effect.StatDeltas)
	assert.Equal(t, 1, effect.CluesGained)
	assert.Equal(t, 1, effect.DoomDelta)
	assert.Equal(t, 1, effect.ColdDelta)
	assert.Equal(t, 2, effect.FearDelta)

	assert.Nil(t, NormalizeOptionEffect(nil))
	assert.Nil(t, NormalizeOptionEffect(&RawOptionEffect{}))
}

func TestNormalizeEventCard(t *testing.T) {
	raw := RawEventCard{
		EventCard: state.EventCard{ID: "gate", Title: "The Gate"},
		Options: []RawEventOption{
			{ID: "open", Label: "Open it", Chance: gametest.FloatPtr(0.5), SuccessText: "It opens.", FailText: "It bites."},
			{ID: "leave", Label: "Leave", SuccessText: "You walk away."},
		},
	}
	raw.Options[0].Effect.OnFail = &RawOptionEffect{Wound: 1}
	raw.Options[1].Effect.OnSuccess = &RawOptionEffect{Fear: 1}

	card := NormalizeEventCard(raw)

	require.Len(t, card.Choices, 2)
	assert.Equal(t, "The Gate", card.Title)
	assert.Nil(t, card.Choices[0].SuccessEffects)
	require.NotNil(t, card.Choices[0].FailEffects)
	assert.Nil(t, card.Choices[0].Effects)
	require.NotNil(t, card.Choices[1].Effects)
	assert.Equal(t, 1, card.Choices[1].Effects.FearDelta)
	assert.Equal(t, "You walk away.", card.Choices[1].Result)

	plain := RawEventCard{EventCard: state.EventCard{ID: "calm", Title: "Calm"}}
	assert.Equal(t, plain.EventCard, NormalizeEventCard(plain))
}

func TestJournalEntriesFormatTask(t *testing.T) {
	f := &File{Scenario: ScenarioSpec{FirstTask: &TaskSpec{
		Label:         "Survive",
		Summary:       "Hold out.",
		Goal:          "Two clues.",
		FailCondition: "Three doom.",
	}}}

	entries := JournalEntries(f)

	require.Len(t, entries, 1)
	assert.Equal(t, "scenario-task", entries[0].ID)
	assert.Equal(t, "Hold out.\nGoal: Two clues.\nFailure: Three doom.", entries[0].Body)
}

func TestBuildWithoutPrologueStartsFirstTurn(t *testing.T) {
	f, err := Load("testdata/minimal.yaml")
	require.NoError(t, err)

	s, err := Build(f, gametest.NewRolls(), &state.SequenceIDs{})
	require.NoError(t, err)

	require.Len(t, s.JournalScript.Entries, 1, "the first task still becomes an entry")

	f.Scenario.FirstTask = nil
	s, err = Build(f, gametest.NewRolls(), &state.SequenceIDs{})
	require.NoError(t, err)

	assert.True(t, s.JournalScript.Completed)
	assert.Equal(t, state.StagePlayer, s.LoopStage)
	assert.Equal(t, 1, s.Turn.Number)
	assert.Len(t, s.Hand, rules.HandSize)
	assert.Equal(t, "Clues", s.Track(state.TrackVictoryID).Label)
	assert.Equal(t, 0, s.Track(state.TrackVictoryID).Max)
}

func TestValidateRejectsBadContent(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *File)
	}{
		{name: "empty deck", mutate: func(f *File) { f.PlayerDeck = PlayerDeckSpec{} }},
		{name: "duplicate card", mutate: func(f *File) {
			f.PlayerDeck.Hand = []state.CardDefinition{f.PlayerDeck.DrawPile[0]}
		}},
		{name: "chance out of range", mutate: func(f *File) { f.PlayerDeck.DrawPile[0].Chance = gametest.FloatPtr(1.5) }},
		{name: "reserved event id", mutate: func(f *File) { f.EventDeck[0].ID = rules.PlaceholderEventID }},
		{name: "event without id", mutate: func(f *File) { f.EventDeck[0].ID = "" }},
		{name: "stat out of range", mutate: func(f *File) { f.Character.Stats[0].Value = 10 }},
		{name: "no stats", mutate: func(f *File) { f.Character.Stats = nil }},
		{name: "track over max", mutate: func(f *File) {
			f.World.Tracks = []state.Track{{ID: "noise", Value: 9, Max: 5}}
		}},
		{name: "negative track", mutate: func(f *File) {
			f.World.Tracks = []state.Track{{ID: "noise", Value: -1}}
		}},
		{name: "goal already past requirement", mutate: func(f *File) {
			f.Scenario.FirstTask.TechnicalGoal.CurrentAmount = 3
		}},
		{name: "doom already past requirement", mutate: func(f *File) {
			f.Scenario.FirstTask.TechnicalFailCondition.CurrentAmount = 4
		}},
		{name: "marker over max", mutate: func(f *File) {
			f.Markers = []state.TemporaryMarker{{ID: "cold", Value: 4, Max: gametest.IntPtr(3)}}
		}},
		{name: "negative marker", mutate: func(f *File) {
			f.Markers = []state.TemporaryMarker{{ID: "fear", Value: -1}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Load("testdata/minimal.yaml")
			require.NoError(t, err)
			tt.mutate(f)

			err = Validate(f)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidScenario))

			_, err = Build(f, gametest.NewRolls(), &state.SequenceIDs{})
			assert.ErrorIs(t, err, ErrInvalidScenario)
		})
	}
}

func TestValidateAcceptsValuesAtTheirLimits(t *testing.T) {
	f, err := Load("testdata/minimal.yaml")
	require.NoError(t, err)
	f.Scenario.FirstTask.TechnicalGoal.CurrentAmount = 2
	f.World.Tracks = []state.Track{{ID: "noise", Value: 5, Max: 5}, {ID: "echo", Value: 7}}
	f.Markers = []state.TemporaryMarker{{ID: "cold", Value: 3, Max: gametest.IntPtr(3)}, {ID: "fear", Value: 2}}

	assert.NoError(t, Validate(f))
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("scenario:\n  title: x\nunknown_section: true\n"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/does-not-exist.yaml")
	assert.Error(t, err)
}

func TestLoadStateUsesBundledScenario(t *testing.T) {
	s, err := LoadState("", gametest.NewRolls(), &state.SequenceIDs{})
	require.NoError(t, err)
	assert.Equal(t, "Whispers in the Old Quarter", s.Scenario.Title)

	s, err = LoadState("testdata/minimal.yaml", gametest.NewRolls(), &state.SequenceIDs{})
	require.NoError(t, err)
	assert.Equal(t, "Minimal", s.Scenario.Title)
}
