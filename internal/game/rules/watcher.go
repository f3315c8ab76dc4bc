package rules

import (
	"sort"
	"sync"
)

// WatcherScope defines how long a watcher's tracking lasts.
type WatcherScope int

const (
	// WatcherScopeGame tracks events until a new game starts.
	WatcherScopeGame WatcherScope = iota
	// WatcherScopeTurn tracks events for the current player turn only.
	WatcherScopeTurn
)

// String returns the string representation of the watcher scope.
func (ws WatcherScope) String() string {
	switch ws {
	case WatcherScopeGame:
		return "GAME"
	case WatcherScopeTurn:
		return "TURN"
	default:
		return "UNKNOWN"
	}
}

// Watcher observes domain events and tracks a condition.
type Watcher interface {
	// Watch is called for every published event.
	Watch(event Event)

	// Reset clears the watcher's condition and counters.
	Reset()

	// ConditionMet returns true if the tracked condition has been met.
	ConditionMet() bool

	// GetScope returns the scope of this watcher.
	GetScope() WatcherScope

	// GetKey returns a unique key for this watcher instance.
	GetKey() string
}

// BaseWatcher provides the scope, key and condition plumbing for watchers.
type BaseWatcher struct {
	scope     WatcherScope
	condition bool
	key       string
}

// NewBaseWatcher creates a new base watcher with the specified scope and key.
func NewBaseWatcher(scope WatcherScope, key string) *BaseWatcher {
	return &BaseWatcher{scope: scope, key: key}
}

// GetScope returns the watcher's scope.
func (bw *BaseWatcher) GetScope() WatcherScope {
	return bw.scope
}

// ConditionMet returns whether the condition has been met.
func (bw *BaseWatcher) ConditionMet() bool {
	return bw.condition
}

// SetCondition sets the condition flag.
func (bw *BaseWatcher) SetCondition(condition bool) {
	bw.condition = condition
}

// Reset clears the condition.
func (bw *BaseWatcher) Reset() {
	bw.condition = false
}

// GetKey returns the unique key for this watcher.
func (bw *BaseWatcher) GetKey() string {
	return bw.key
}

// WatcherRegistry fans domain events out to registered watchers and resets
// turn-scoped watchers whenever a turn starts.
type WatcherRegistry struct {
	mu       sync.RWMutex
	watchers map[string]Watcher
}

// NewWatcherRegistry creates a new watcher registry.
func NewWatcherRegistry() *WatcherRegistry {
	return &WatcherRegistry{watchers: make(map[string]Watcher)}
}

// AddWatcher adds a watcher, replacing any watcher with the same key.
func (wr *WatcherRegistry) AddWatcher(watcher Watcher) {
	if watcher == nil {
		return
	}
	wr.mu.Lock()
	defer wr.mu.Unlock()
	wr.watchers[watcher.GetKey()] = watcher
}

// RemoveWatcher removes a watcher from the registry.
func (wr *WatcherRegistry) RemoveWatcher(key string) {
	wr.mu.Lock()
	defer wr.mu.Unlock()
	delete(wr.watchers, key)
}

// GetWatcher retrieves a watcher by key.
func (wr *WatcherRegistry) GetWatcher(key string) Watcher {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	return wr.watchers[key]
}

// GetWatchersByScope returns the watchers of a scope ordered by key.
func (wr *WatcherRegistry) GetWatchersByScope(scope WatcherScope) []Watcher {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	var result []Watcher
	for _, watcher := range wr.watchers {
		if watcher.GetScope() == scope {
			result = append(result, watcher)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].GetKey() < result[j].GetKey() })
	return result
}

// ResetWatchers resets every watcher.
func (wr *WatcherRegistry) ResetWatchers() {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	for _, watcher := range wr.watchers {
		watcher.Reset()
	}
}

// ResetWatchersByScope resets all watchers of a given scope.
func (wr *WatcherRegistry) ResetWatchersByScope(scope WatcherScope) {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	for _, watcher := range wr.watchers {
		if watcher.GetScope() == scope {
			watcher.Reset()
		}
	}
}

// NotifyWatchers delivers an event to every watcher. A TURN_STARTED event
// first resets turn-scoped watchers; a new game resets all of them.
func (wr *WatcherRegistry) NotifyWatchers(event Event) {
	switch {
	case event.Type == EventCommandDispatched && event.Command == StartNewGameType:
		wr.ResetWatchers()
	case event.Type == EventTurnStarted:
		wr.ResetWatchersByScope(WatcherScopeTurn)
	}

	wr.mu.RLock()
	defer wr.mu.RUnlock()
	for _, watcher := range wr.watchers {
		watcher.Watch(event)
	}
}

// Attach subscribes the registry to every event on bus and returns the handle.
func (wr *WatcherRegistry) Attach(bus *EventBus) int {
	return bus.Subscribe(wr.NotifyWatchers)
}

// StartNewGameType is the type tag of the restart command; the registry
// treats it as a game boundary.
const StartNewGameType = "start-new-game"
