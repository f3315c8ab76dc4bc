package watchers

import (
	"sync"

	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/rules"
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/state"
)

// SessionStats is a point-in-time copy of what a SessionStatsWatcher has seen.
type SessionStats struct {
	TurnsStarted   int
	EventsOpened   int
	CardsPlayed    int
	CardsSucceeded int
	Commands       map[string]int
	Outcome        state.Outcome
}

// SessionStatsWatcher accumulates statistics for the current game.
type SessionStatsWatcher struct {
	*rules.BaseWatcher
	mu    sync.Mutex
	stats SessionStats
}

// NewSessionStatsWatcher creates a new session statistics watcher.
func NewSessionStatsWatcher() *SessionStatsWatcher {
	return &SessionStatsWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeGame, "SessionStatsWatcher"),
		stats:       SessionStats{Commands: make(map[string]int)},
	}
}

// Watch implements the Watcher interface.
func (w *SessionStatsWatcher) Watch(event rules.Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch event.Type {
	case rules.EventCommandDispatched:
		w.stats.Commands[event.Command]++
	case rules.EventTurnStarted:
		w.stats.TurnsStarted++
	case rules.EventEventOpened:
		w.stats.EventsOpened++
	case rules.EventCardPlayed:
		w.stats.CardsPlayed++
		if event.Flag {
			w.stats.CardsSucceeded++
		}
	case rules.EventOutcomeReached:
		w.stats.Outcome = event.Outcome
		w.SetCondition(true)
	}
}

// Reset clears the watcher's state.
func (w *SessionStatsWatcher) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.BaseWatcher.Reset()
	w.stats = SessionStats{Commands: make(map[string]int)}
}

// Stats returns a copy of the accumulated statistics.
func (w *SessionStatsWatcher) Stats() SessionStats {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := w.stats
	out.Commands = make(map[string]int, len(w.stats.Commands))
	for k, v := range w.stats.Commands {
		out.Commands[k] = v
	}
	return out
}

// CardsPlayedThisTurnWatcher tracks the cards played during the current turn.
type CardsPlayedThisTurnWatcher struct {
	*rules.BaseWatcher
	mu    sync.Mutex
	cards []string
}

// NewCardsPlayedThisTurnWatcher creates a new turn-scoped card watcher.
func NewCardsPlayedThisTurnWatcher() *CardsPlayedThisTurnWatcher {
	return &CardsPlayedThisTurnWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeTurn, "CardsPlayedThisTurnWatcher"),
	}
}

// Watch implements the Watcher interface.
func (w *CardsPlayedThisTurnWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventCardPlayed || event.TargetID == "" {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cards = append(w.cards, event.TargetID)
	w.SetCondition(true)
}

// Reset clears the watcher's state.
func (w *CardsPlayedThisTurnWatcher) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.BaseWatcher.Reset()
	w.cards = nil
}

// Cards returns the ids of the cards played this turn, in order.
func (w *CardsPlayedThisTurnWatcher) Cards() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.cards...)
}

// Count returns the number of cards played this turn.
func (w *CardsPlayedThisTurnWatcher) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.cards)
}
