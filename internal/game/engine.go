// Package game hosts the GameEngine, the single owner of the canonical game
// state, and the in-memory replay of every state it has held.
package game

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/commands"
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/rules"
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/state"
)

var (
	// ErrNilCommand is returned when Dispatch receives a nil command.
	ErrNilCommand = errors.New("game: nil command")
	// ErrReentrantDispatch is returned when Dispatch is called while a command is executing.
	ErrReentrantDispatch = errors.New("game: dispatch while a command is executing")
)

// Listener receives a private copy of the state after every dispatch.
// Implementations must be comparable; subscribing the same listener twice
// registers it once.
type Listener interface {
	OnState(s *state.GameState)
}

// ListenerFunc is a callback registered with SubscribeFunc.
type ListenerFunc func(s *state.GameState)

type subscription struct {
	id       int
	listener Listener
	fn       ListenerFunc
}

// GameEngine owns the canonical GameState. It is mutated only through
// Dispatch; readers always receive deep copies.
type GameEngine struct {
	logger    *zap.Logger
	rand      state.Random
	ids       state.IDGenerator
	bus       *rules.EventBus
	sessionID string

	mu            sync.RWMutex
	current       *state.GameState
	initial       *state.GameState
	history       []string
	subscriptions []subscription
	nextSubID     int

	executing atomic.Bool
	replay    *Replay
}

// Option configures a GameEngine.
type Option func(*GameEngine)

// WithLogger sets the engine logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *GameEngine) { e.logger = logger }
}

// WithRandom sets the random source handed to commands.
func WithRandom(r state.Random) Option {
	return func(e *GameEngine) { e.rand = r }
}

// WithIDGenerator sets the log entry id source.
func WithIDGenerator(ids state.IDGenerator) Option {
	return func(e *GameEngine) { e.ids = ids }
}

// WithEventBus sets the bus domain events are published on.
func WithEventBus(bus *rules.EventBus) Option {
	return func(e *GameEngine) { e.bus = bus }
}

// NewGameEngine creates an engine owning a copy of initial.
func NewGameEngine(initial *state.GameState, opts ...Option) *GameEngine {
	if initial == nil {
		initial = &state.GameState{}
	}

	e := &GameEngine{
		sessionID: uuid.NewString(),
		current:   initial.Clone(),
		initial:   initial.Clone(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	if e.rand == nil {
		e.rand = state.NewRandom(time.Now().UnixNano())
	}
	if e.ids == nil {
		e.ids = state.UUIDIDs{}
	}
	if e.bus == nil {
		e.bus = rules.NewEventBus()
	}

	e.replay = NewReplay(e.sessionID)
	e.replay.RecordState(e.current.Clone())

	e.logger.Info("game engine created",
		zap.String("session_id", e.sessionID),
		zap.String("stage", string(e.current.LoopStage)),
		zap.Int("turn", e.current.Turn.Number),
	)
	return e
}

// SessionID identifies this engine in logs and replays.
func (e *GameEngine) SessionID() string {
	return e.sessionID
}

// State returns a deep copy of the canonical state.
func (e *GameEngine) State() *state.GameState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current.Clone()
}

// InitialSnapshot returns a deep copy of the state the engine was created with.
func (e *GameEngine) InitialSnapshot() *state.GameState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.initial.Clone()
}

// Events returns the bus domain events are published on.
func (e *GameEngine) Events() *rules.EventBus {
	return e.bus
}

// Subscribe registers a listener and returns a function removing it.
// Subscribing an already registered listener returns a remover for the
// existing registration. Listeners of a non-comparable type cannot be
// matched, so each call registers them again.
func (e *GameEngine) Subscribe(listener Listener) func() {
	if listener == nil {
		return func() {}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !reflect.TypeOf(listener).Comparable() {
		return e.addSubscription(subscription{listener: listener})
	}
	for _, sub := range e.subscriptions {
		if sub.listener != nil && sub.listener == listener {
			return e.unsubscriber(sub.id)
		}
	}
	return e.addSubscription(subscription{listener: listener})
}

// SubscribeFunc registers a callback. Every call adds a new registration.
func (e *GameEngine) SubscribeFunc(fn ListenerFunc) func() {
	if fn == nil {
		return func() {}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.addSubscription(subscription{fn: fn})
}

func (e *GameEngine) addSubscription(sub subscription) func() {
	e.nextSubID++
	sub.id = e.nextSubID
	e.subscriptions = append(e.subscriptions, sub)
	return e.unsubscriber(sub.id)
}

func (e *GameEngine) unsubscriber(id int) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			for i, sub := range e.subscriptions {
				if sub.id == id {
					e.subscriptions = append(e.subscriptions[:i:i], e.subscriptions[i+1:]...)
					return
				}
			}
		})
	}
}

// Dispatch runs cmd against a copy of the canonical state and stores the
// result. Gameplay misuse never fails: commands log it instead. Dispatch
// only returns ErrNilCommand or ErrReentrantDispatch.
func (e *GameEngine) Dispatch(cmd commands.Command) error {
	if cmd == nil {
		return ErrNilCommand
	}
	if !e.executing.CompareAndSwap(false, true) {
		e.logger.Warn("rejected reentrant dispatch", zap.String("command", cmd.Type()))
		return ErrReentrantDispatch
	}

	before, next := e.execute(cmd)

	e.replay.RecordState(next.Clone())
	e.logDispatch(cmd.Type(), before, next)
	e.bus.PublishBatch(rules.DiffEvents(cmd.Type(), before, next))
	e.notify(next)
	return nil
}

func (e *GameEngine) execute(cmd commands.Command) (*state.GameState, *state.GameState) {
	defer e.executing.Store(false)

	e.mu.RLock()
	before := e.current
	e.mu.RUnlock()

	m := &state.Mutation{State: before.Clone(), Rand: e.rand, IDs: e.ids}
	next := cmd.Execute(m)
	if next == nil {
		next = m.State
	}

	e.mu.Lock()
	e.current = next
	e.history = append(e.history, cmd.Type())
	e.mu.Unlock()
	return before, next
}

func (e *GameEngine) logDispatch(command string, before, next *state.GameState) {
	fields := []zap.Field{
		zap.String("session_id", e.sessionID),
		zap.String("command", command),
		zap.String("stage", string(next.LoopStage)),
		zap.Int("turn", next.Turn.Number),
	}
	if sum, err := next.ComputeChecksum(); err != nil {
		e.logger.Warn("failed to checksum state", append(fields, zap.Error(err))...)
	} else {
		fields = append(fields, zap.String("checksum", sum.Hash))
	}
	e.logger.Debug("command dispatched", fields...)

	if !before.Finished() && next.Finished() {
		e.logger.Info("game finished",
			zap.String("session_id", e.sessionID),
			zap.String("outcome", string(next.GameOutcome)),
			zap.Int("turn", next.Turn.Number),
		)
	}
}

func (e *GameEngine) notify(next *state.GameState) {
	e.mu.RLock()
	subs := make([]subscription, len(e.subscriptions))
	copy(subs, e.subscriptions)
	e.mu.RUnlock()

	for _, sub := range subs {
		snapshot := next.Clone()
		if sub.listener != nil {
			sub.listener.OnState(snapshot)
			continue
		}
		sub.fn(snapshot)
	}
}

// History returns the command type tags in dispatch order.
func (e *GameEngine) History() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	history := make([]string, len(e.history))
	copy(history, e.history)
	return history
}

// Replay returns the recorded states: the initial state followed by one
// state per dispatch.
func (e *GameEngine) Replay() *Replay {
	return e.replay
}
