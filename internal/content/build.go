package content

import (
	"fmt"
	"strings"

	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/rules"
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/state"
)

// DefaultActionsPerTurn is used when the scenario does not set an action pool.
const DefaultActionsPerTurn = 3

// DefaultMarkers returns the cold and fear markers every scenario starts with
// unless it declares its own.
func DefaultMarkers() []state.TemporaryMarker {
	coldMax, fearMax := 3, 4
	return []state.TemporaryMarker{
		{
			ID:                    state.MarkerColdID,
			Label:                 "Cold",
			Description:           "Each stack of cold costs 1 action at the start of your turn.",
			Tone:                  state.ToneNegative,
			Max:                   &coldMax,
			ActionPenaltyPerStack: 1,
			DecayPerTurn:          1,
		},
		{
			ID:           state.MarkerFearID,
			Label:        "Fear",
			Description:  "Short-lived terror. Eases by 1 at the end of your turn.",
			Tone:         state.ToneNegative,
			Max:          &fearMax,
			DecayPerTurn: 1,
		},
	}
}

// Validate checks the invariants Build relies on. Every error wraps
// ErrInvalidScenario.
func Validate(f *File) error {
	cards := len(f.PlayerDeck.Hand) + len(f.PlayerDeck.DrawPile) + len(f.PlayerDeck.DiscardPile)
	if cards == 0 {
		return fmt.Errorf("%w: player deck is empty", ErrInvalidScenario)
	}

	seen := make(map[string]bool, cards)
	for _, pile := range [][]state.CardDefinition{f.PlayerDeck.Hand, f.PlayerDeck.DrawPile, f.PlayerDeck.DiscardPile} {
		for _, card := range pile {
			if card.ID == "" {
				return fmt.Errorf("%w: card %q has no id", ErrInvalidScenario, card.Name)
			}
			if seen[card.ID] {
				return fmt.Errorf("%w: duplicate card id %q", ErrInvalidScenario, card.ID)
			}
			seen[card.ID] = true
			if err := validateChance(card.Chance, "card "+card.ID); err != nil {
				return err
			}
			if card.ActionCost != nil && *card.ActionCost < 0 {
				return fmt.Errorf("%w: card %q has a negative action cost", ErrInvalidScenario, card.ID)
			}
		}
	}

	events := make(map[string]bool, len(f.EventDeck))
	for _, raw := range f.EventDeck {
		if raw.ID == "" {
			return fmt.Errorf("%w: event %q has no id", ErrInvalidScenario, raw.Title)
		}
		if raw.ID == rules.PlaceholderEventID {
			return fmt.Errorf("%w: event id %q is reserved", ErrInvalidScenario, raw.ID)
		}
		if events[raw.ID] {
			return fmt.Errorf("%w: duplicate event id %q", ErrInvalidScenario, raw.ID)
		}
		events[raw.ID] = true

		choices := make(map[string]bool)
		for _, choice := range NormalizeEventCard(raw).Choices {
			if choice.ID == "" {
				return fmt.Errorf("%w: event %q has a choice without id", ErrInvalidScenario, raw.ID)
			}
			if choices[choice.ID] {
				return fmt.Errorf("%w: event %q repeats choice %q", ErrInvalidScenario, raw.ID, choice.ID)
			}
			choices[choice.ID] = true
			if err := validateChance(choice.Chance, "choice "+raw.ID+"/"+choice.ID); err != nil {
				return err
			}
		}
	}

	if len(f.Character.Stats) == 0 {
		return fmt.Errorf("%w: character has no stats", ErrInvalidScenario)
	}
	for _, stat := range f.Character.Stats {
		if stat.Max <= 0 || stat.Value < 0 || stat.Value > stat.Max {
			return fmt.Errorf("%w: stat %q value %d is outside [0, %d]", ErrInvalidScenario, stat.ID, stat.Value, stat.Max)
		}
	}

	if task := f.Scenario.FirstTask; task != nil {
		for _, condition := range []*ConditionSpec{task.TechnicalGoal, task.TechnicalFailCondition} {
			if condition == nil {
				continue
			}
			if condition.RequiredAmount < 0 || condition.CurrentAmount < 0 {
				return fmt.Errorf("%w: task %q has a negative condition", ErrInvalidScenario, task.ID)
			}
			if condition.RequiredAmount > 0 && condition.CurrentAmount > condition.RequiredAmount {
				return fmt.Errorf("%w: task %q condition starts at %d past its requirement %d",
					ErrInvalidScenario, task.ID, condition.CurrentAmount, condition.RequiredAmount)
			}
		}
	}

	// A max of zero leaves a track unbounded above.
	for _, track := range f.World.Tracks {
		if track.Max < 0 || track.Value < 0 || (track.Max > 0 && track.Value > track.Max) {
			return fmt.Errorf("%w: track %q value %d is outside [0, %d]", ErrInvalidScenario, track.ID, track.Value, track.Max)
		}
	}

	for _, marker := range f.Markers {
		if marker.Value < 0 {
			return fmt.Errorf("%w: marker %q has a negative value", ErrInvalidScenario, marker.ID)
		}
		if marker.Max != nil && (*marker.Max < 0 || marker.Value > *marker.Max) {
			return fmt.Errorf("%w: marker %q value %d is outside [0, %d]", ErrInvalidScenario, marker.ID, marker.Value, *marker.Max)
		}
	}
	return nil
}

func validateChance(chance *float64, owner string) error {
	if chance != nil && (*chance < 0 || *chance > 1) {
		return fmt.Errorf("%w: %s chance %v is outside [0, 1]", ErrInvalidScenario, owner, *chance)
	}
	return nil
}

// Build validates f and assembles the starting GameState. Decks are
// shuffled with r. A scenario without prologue entries starts directly in
// the first player turn.
func Build(f *File, r state.Random, ids state.IDGenerator) (*state.GameState, error) {
	if err := Validate(f); err != nil {
		return nil, err
	}

	s := &state.GameState{
		Turn:           f.World.Turn,
		CharacterStats: append([]state.CharacterStat(nil), f.Character.Stats...),
		Statuses:       append([]state.StatusEffect(nil), f.Character.Statuses...),
		Event:          rules.EventPlaceholder(),
		Scenario: state.Scenario{
			ActID:   f.Scenario.ActID,
			Title:   f.Scenario.Title,
			Endings: f.Scenario.Endings,
		},
		AutoScrollLog: true,
		SoundEnabled:  f.World.SoundEnabled,
		Phase: state.Phase{
			Icon:     "📜",
			Name:     "Prologue",
			Subtitle: f.Scenario.Title,
		},
	}
	if s.Turn.Actions.Total <= 0 {
		s.Turn.Actions.Total = DefaultActionsPerTurn
	}
	s.Turn.Actions.Remaining = s.Turn.Actions.Total

	playerCards := make([]state.CardDefinition, 0, len(f.PlayerDeck.Hand)+len(f.PlayerDeck.DrawPile))
	playerCards = append(playerCards, f.PlayerDeck.Hand...)
	playerCards = append(playerCards, f.PlayerDeck.DrawPile...)
	rules.Shuffle(r, playerCards)
	s.Decks.Player.DrawPile = playerCards
	s.Decks.Player.DiscardPile = append([]state.CardDefinition(nil), f.PlayerDeck.DiscardPile...)

	events := NormalizeEventDeck(f.EventDeck)
	rules.Shuffle(r, events)
	s.Decks.Event.DrawPile = events

	s.WorldTracks = buildTracks(f)
	s.TemporaryMarkers = f.Markers
	if len(s.TemporaryMarkers) == 0 {
		s.TemporaryMarkers = DefaultMarkers()
	}

	entries := JournalEntries(f)
	s.JournalScript = state.JournalScript{Entries: entries, Completed: len(entries) == 0}

	// The returned state must not share memory with f.
	s = s.Clone()
	rules.SyncPlayerDeck(s)
	rules.SyncEventDeck(s)

	s.LoopStage = state.StageStory
	if s.JournalScript.Completed {
		rules.StartPlayerTurn(&state.Mutation{State: s, Rand: r, IDs: ids})
	}
	return s, nil
}

func buildTracks(f *File) []state.Track {
	var goal, fail ConditionSpec
	if task := f.Scenario.FirstTask; task != nil {
		if task.TechnicalGoal != nil {
			goal = *task.TechnicalGoal
		}
		if task.TechnicalFailCondition != nil {
			fail = *task.TechnicalFailCondition
		}
	}
	if goal.Label == "" {
		goal.Label = "Clues"
	}
	if fail.Label == "" {
		fail.Label = "Doom"
	}

	tracks := []state.Track{
		conditionTrack(state.TrackVictoryID, state.TrackVictory, goal),
		conditionTrack(state.TrackDoomID, state.TrackDoom, fail),
	}
	return append(tracks, f.World.Tracks...)
}

func conditionTrack(id string, kind state.TrackType, condition ConditionSpec) state.Track {
	track := state.Track{
		ID:    id,
		Label: condition.Label,
		Value: condition.CurrentAmount,
		Max:   condition.RequiredAmount,
		Type:  kind,
	}
	if condition.RequiredAmount > 0 {
		threshold := condition.RequiredAmount
		track.CriticalThreshold = &threshold
	}
	return track
}

// JournalEntries flattens the scenario intro, the first task and the
// authored journal into the prologue script, in that order.
func JournalEntries(f *File) []state.JournalEntry {
	var entries []state.JournalEntry

	if intro := f.Scenario.Intro; intro != nil && len(intro.Flavor) > 0 {
		title := intro.Title
		if title == "" {
			title = f.Scenario.Title
		}
		if title == "" {
			title = "Scenario"
		}
		entries = append(entries, state.JournalEntry{
			ID:      "scenario-intro",
			Type:    "[Prologue] " + title,
			Body:    strings.Join(intro.Flavor, "\n\n"),
			Variant: state.VariantStory,
		})
	}

	if task := f.Scenario.FirstTask; task != nil {
		id := task.ID
		if id == "" {
			id = "scenario-task"
		}
		parts := []string{task.Summary}
		if task.Goal != "" {
			parts = append(parts, "Goal: "+task.Goal)
		}
		if task.FailCondition != "" {
			parts = append(parts, "Failure: "+task.FailCondition)
		}
		entries = append(entries, state.JournalEntry{
			ID:      id,
			Type:    "[Task] " + task.Label,
			Body:    joinNonEmpty(parts, "\n"),
			Variant: state.VariantStory,
		})
	}

	for _, entry := range f.Journal {
		if entry.Variant == "" {
			entry.Variant = state.VariantStory
		}
		entries = append(entries, entry)
	}
	return entries
}

func joinNonEmpty(parts []string, sep string) string {
	kept := parts[:0:0]
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, sep)
}
