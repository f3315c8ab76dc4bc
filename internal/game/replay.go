package game

import (
	"fmt"
	"sync"

	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/state"
)

// Replay is a recorded session: one state snapshot per step, played back
// with a cursor.
type Replay struct {
	SessionID    string
	States       []*state.GameState
	CurrentIndex int
	mu           sync.RWMutex
}

// NewReplay creates an empty replay.
func NewReplay(sessionID string) *Replay {
	return &Replay{
		SessionID: sessionID,
		States:    make([]*state.GameState, 0),
	}
}

// RecordState appends a snapshot. The replay keeps the pointer; callers
// pass a copy they no longer mutate.
func (r *Replay) RecordState(snapshot *state.GameState) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.States = append(r.States, snapshot)
}

// Start rewinds the cursor to the first state.
func (r *Replay) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.CurrentIndex = 0
}

// Next returns the state under the cursor and advances it.
func (r *Replay) Next() *state.GameState {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CurrentIndex < len(r.States) {
		s := r.States[r.CurrentIndex]
		r.CurrentIndex++
		return s.Clone()
	}
	return nil
}

// Previous moves the cursor back and returns the state under it.
func (r *Replay) Previous() *state.GameState {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CurrentIndex > 0 {
		r.CurrentIndex--
		return r.States[r.CurrentIndex].Clone()
	}
	return nil
}

// Skip moves the cursor by count, clamped to the recorded range.
func (r *Replay) Skip(count int) *state.GameState {
	r.mu.Lock()
	defer r.mu.Unlock()

	newIndex := r.CurrentIndex + count
	if newIndex >= len(r.States) {
		newIndex = len(r.States) - 1
	}
	if newIndex < 0 {
		newIndex = 0
	}

	r.CurrentIndex = newIndex
	if r.CurrentIndex < len(r.States) {
		return r.States[r.CurrentIndex].Clone()
	}
	return nil
}

// Size returns the number of recorded states.
func (r *Replay) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.States)
}

// GetStateAt returns a copy of the state at index, or nil when out of range.
func (r *Replay) GetStateAt(index int) *state.GameState {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index >= 0 && index < len(r.States) {
		return r.States[index].Clone()
	}
	return nil
}

// Verify compares the checksum of the state at index with expected.
func (r *Replay) Verify(index int, expected *state.Checksum) (bool, error) {
	s := r.GetStateAt(index)
	if s == nil {
		return false, fmt.Errorf("replay %s: no state at index %d", r.SessionID, index)
	}
	return s.VerifyChecksum(expected)
}
