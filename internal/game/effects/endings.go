package effects

import (
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/state"
)

var fallbackEndings = map[state.EndingKey]state.Ending{
	state.EndingHealthDepleted: {
		ID:    string(state.EndingHealthDepleted),
		Title: "Defeat: the body gives out",
		Text:  "Your body gives up and the investigation ends.",
	},
	state.EndingSanityDepleted: {
		ID:    string(state.EndingSanityDepleted),
		Title: "Defeat: the mind is shattered",
		Text:  "You can no longer tell yourself apart from the whisper of the fog.",
	},
	state.EndingDoomReached: {
		ID:    string(state.EndingDoomReached),
		Title: "Defeat: too much horror",
		Text:  "The fog swallows the Old Quarter and the game is over.",
	},
}

// FallbackEnding returns the built-in ending for a defeat cause.
func FallbackEnding(key state.EndingKey) state.Ending {
	return fallbackEndings[key]
}

func resolveEnding(m *state.Mutation, key state.EndingKey) bool {
	s := m.State
	if s.Finished() {
		return false
	}

	ending, ok := s.Scenario.Endings[key]
	if !ok {
		ending = FallbackEnding(key)
	}

	s.GameOutcome = state.OutcomeDefeat
	s.LoopStage = state.StageFinished
	s.Phase = state.Phase{Icon: "☠️", Name: ending.Title, Subtitle: "Outcome of the investigation"}
	s.Turn.Actions.Remaining = 0
	s.Ending = &ending
	m.Log(LogFinale, ending.Text, state.VariantStory)
	return true
}

// CheckStatEndings ends the game in defeat when health or sanity is depleted.
// Once an outcome is set it only reports whether that outcome is a defeat.
func CheckStatEndings(m *state.Mutation) bool {
	if m.State.Finished() {
		return m.State.GameOutcome == state.OutcomeDefeat
	}

	if health := m.State.Stat(state.StatHealthID); health != nil && health.Value <= 0 {
		return resolveEnding(m, state.EndingHealthDepleted)
	}
	if sanity := m.State.Stat(state.StatSanityID); sanity != nil && sanity.Value <= 0 {
		return resolveEnding(m, state.EndingSanityDepleted)
	}
	return false
}

// CheckDoomEnding ends the game in defeat when the doom track is full.
func CheckDoomEnding(m *state.Mutation) bool {
	if m.State.Finished() {
		return m.State.GameOutcome == state.OutcomeDefeat
	}

	doom := m.State.Track(state.TrackDoomID)
	if doom == nil || doom.Max <= 0 {
		return false
	}
	if doom.Value >= doom.Max {
		return resolveEnding(m, state.EndingDoomReached)
	}
	return false
}
