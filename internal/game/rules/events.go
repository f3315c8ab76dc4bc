package rules

import (
	"sync"
	"time"

	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/state"
)

// EventType indicates the category of a domain event published after a dispatch.
type EventType string

const (
	EventCommandDispatched EventType = "COMMAND_DISPATCHED"
	EventStageChanged      EventType = "STAGE_CHANGED"
	EventTurnStarted       EventType = "TURN_STARTED"
	EventOutcomeReached    EventType = "OUTCOME_REACHED"
	EventCardPlayed        EventType = "CARD_PLAYED"
	EventEventOpened       EventType = "EVENT_OPENED"
)

// Event is a domain notification describing one observable change.
type Event struct {
	Type        EventType
	Command     string          // Type tag of the command that caused the event
	Turn        int             // Turn number after the dispatch
	Stage       state.LoopStage // Loop stage after the dispatch
	TargetID    string          // Card or event id, when relevant
	Outcome     state.Outcome   // Set on OUTCOME_REACHED
	Amount      int             // Numeric value such as the new turn number
	Flag        bool            // Card play success
	Timestamp   time.Time
	Metadata    map[string]string
	Description string
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

// TypedListener defines a callback that reacts to a specific event type.
type TypedListener struct {
	Handle    int
	EventType EventType
	Callback  func(Event)
}

// EventBus provides a synchronous publish/subscribe implementation with type filtering.
type EventBus struct {
	mu             sync.RWMutex
	listeners      map[int]Listener
	typedListeners map[EventType][]TypedListener
	nextHandle     int
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{
		listeners:      make(map[int]Listener),
		typedListeners: make(map[EventType][]TypedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners[handle] = listener
	return handle
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, callback func(Event)) int {
	if callback == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], TypedListener{
		Handle:    handle,
		EventType: eventType,
		Callback:  callback,
	})
	return handle
}

// Unsubscribe removes the listener identified by the provided handle,
// whether it was registered with Subscribe or SubscribeTyped.
func (bus *EventBus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	delete(bus.listeners, handle)
	for eventType, listeners := range bus.typedListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].Handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers the event to all registered listeners synchronously.
// Listeners run outside the bus lock so they may subscribe or unsubscribe.
func (bus *EventBus) Publish(event Event) {
	bus.mu.RLock()
	callbacks := make([]func(Event), 0, len(bus.listeners)+len(bus.typedListeners[event.Type]))
	for _, listener := range bus.listeners {
		callbacks = append(callbacks, listener)
	}
	for _, listener := range bus.typedListeners[event.Type] {
		callbacks = append(callbacks, listener.Callback)
	}
	bus.mu.RUnlock()

	for _, callback := range callbacks {
		callback(event)
	}
}

// PublishBatch publishes events in order.
func (bus *EventBus) PublishBatch(events []Event) {
	for _, event := range events {
		bus.Publish(event)
	}
}

// NewEvent creates an event carrying the command, turn and stage of s.
func NewEvent(eventType EventType, command string, s *state.GameState) Event {
	return Event{
		Type:      eventType,
		Command:   command,
		Turn:      s.Turn.Number,
		Stage:     s.LoopStage,
		Timestamp: time.Now(),
		Metadata:  make(map[string]string),
	}
}

// DiffEvents derives the domain events produced by a command by comparing
// the state before and after it ran. COMMAND_DISPATCHED is always first.
func DiffEvents(command string, before, after *state.GameState) []Event {
	events := []Event{NewEvent(EventCommandDispatched, command, after)}

	if before.LoopStage != after.LoopStage {
		evt := NewEvent(EventStageChanged, command, after)
		evt.Metadata["from"] = string(before.LoopStage)
		evt.Metadata["to"] = string(after.LoopStage)
		events = append(events, evt)
	}

	if after.LastCardPlay != nil && (before.LastCardPlay == nil || before.LastCardPlay.Serial != after.LastCardPlay.Serial) {
		evt := NewEvent(EventCardPlayed, command, after)
		evt.TargetID = after.LastCardPlay.CardID
		evt.Flag = after.LastCardPlay.Success
		evt.Description = after.LastCardPlay.Text
		events = append(events, evt)
	}

	if after.LoopStage == state.StageEvent && after.Event.ID != before.Event.ID {
		evt := NewEvent(EventEventOpened, command, after)
		evt.TargetID = after.Event.ID
		evt.Description = after.Event.Title
		events = append(events, evt)
	}

	if after.Turn.Number != before.Turn.Number && after.LoopStage == state.StagePlayer {
		evt := NewEvent(EventTurnStarted, command, after)
		evt.Amount = after.Turn.Number
		events = append(events, evt)
	}

	if before.GameOutcome != after.GameOutcome && after.GameOutcome != state.OutcomeNone {
		evt := NewEvent(EventOutcomeReached, command, after)
		evt.Outcome = after.GameOutcome
		if after.Ending != nil {
			evt.TargetID = after.Ending.ID
			evt.Description = after.Ending.Title
		}
		events = append(events, evt)
	}

	return events
}
