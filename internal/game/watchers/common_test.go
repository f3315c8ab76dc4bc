package watchers

import (
	"testing"

	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/gametest"
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/rules"
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/state"
)

func TestSessionStatsWatcher(t *testing.T) {
	s := gametest.NewState()
	watcher := NewSessionStatsWatcher()

	if watcher.ConditionMet() {
		t.Fatal("watcher should not have condition met initially")
	}

	watcher.Watch(rules.NewEvent(rules.EventCommandDispatched, "play-card", s))
	watcher.Watch(rules.NewEvent(rules.EventCommandDispatched, "play-card", s))
	watcher.Watch(rules.NewEvent(rules.EventCommandDispatched, "end-turn", s))
	watcher.Watch(rules.NewEvent(rules.EventTurnStarted, "end-turn", s))
	watcher.Watch(rules.NewEvent(rules.EventEventOpened, "end-turn", s))

	played := rules.NewEvent(rules.EventCardPlayed, "play-card", s)
	played.TargetID = "card-1"
	played.Flag = true
	watcher.Watch(played)
	played.Flag = false
	watcher.Watch(played)

	stats := watcher.Stats()
	if stats.Commands["play-card"] != 2 || stats.Commands["end-turn"] != 1 {
		t.Fatalf("unexpected command counts %v", stats.Commands)
	}
	if stats.TurnsStarted != 1 || stats.EventsOpened != 1 {
		t.Fatalf("unexpected turn/event counts %+v", stats)
	}
	if stats.CardsPlayed != 2 || stats.CardsSucceeded != 1 {
		t.Fatalf("unexpected card counts %+v", stats)
	}

	outcome := rules.NewEvent(rules.EventOutcomeReached, "play-card", s)
	outcome.Outcome = state.OutcomeVictory
	watcher.Watch(outcome)
	if !watcher.ConditionMet() || watcher.Stats().Outcome != state.OutcomeVictory {
		t.Fatal("watcher should record the outcome")
	}

	stats.Commands["play-card"] = 99
	if watcher.Stats().Commands["play-card"] != 2 {
		t.Fatal("stats copy must not alias the watcher")
	}

	watcher.Reset()
	if watcher.ConditionMet() || watcher.Stats().CardsPlayed != 0 || len(watcher.Stats().Commands) != 0 {
		t.Fatal("watcher should be empty after reset")
	}
}

func TestCardsPlayedThisTurnWatcher(t *testing.T) {
	s := gametest.NewState()
	registry := rules.NewWatcherRegistry()
	watcher := NewCardsPlayedThisTurnWatcher()
	registry.AddWatcher(watcher)

	played := rules.NewEvent(rules.EventCardPlayed, "play-card", s)
	played.TargetID = "card-1"
	registry.NotifyWatchers(played)
	played.TargetID = "card-2"
	registry.NotifyWatchers(played)

	if watcher.Count() != 2 || !watcher.ConditionMet() {
		t.Fatalf("expected 2 cards, got %v", watcher.Cards())
	}

	registry.NotifyWatchers(rules.NewEvent(rules.EventTurnStarted, "end-turn", s))
	if watcher.Count() != 0 || watcher.ConditionMet() {
		t.Fatalf("expected reset on turn start, got %v", watcher.Cards())
	}
}
