package state

import (
	"math/rand"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// LogLimit is the number of entries the log keeps. Older entries are dropped.
const LogLimit = 20

// Random is the source used for shuffles and success rolls.
// *rand.Rand satisfies it.
type Random interface {
	Float64() float64
	Intn(n int) int
}

// NewRandom returns a seeded math/rand source.
func NewRandom(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// IDGenerator produces log entry ids.
type IDGenerator interface {
	NextID() string
}

// SequenceIDs yields log-1, log-2, ... and is safe for concurrent use.
type SequenceIDs struct {
	next atomic.Int64
}

// NextID returns the next id in the sequence.
func (g *SequenceIDs) NextID() string {
	return "log-" + strconv.FormatInt(g.next.Add(1), 10)
}

// UUIDIDs yields random uuid-based ids.
type UUIDIDs struct{}

// NextID returns a fresh uuid-based id.
func (UUIDIDs) NextID() string {
	return "log-" + uuid.NewString()
}

// Mutation is a working copy of the state together with the collaborators
// commands need while changing it.
type Mutation struct {
	State *GameState
	Rand  Random
	IDs   IDGenerator
}

// Log prepends an entry to the log and truncates it to LogLimit.
// An empty variant defaults to story.
func (m *Mutation) Log(entryType, body string, variant LogVariant) {
	PushLogEntry(m.State, m.IDs, entryType, body, variant)
}

// PushLogEntry prepends an entry to the state log, keeping the newest LogLimit entries.
func PushLogEntry(s *GameState, ids IDGenerator, entryType, body string, variant LogVariant) {
	if variant == "" {
		variant = VariantStory
	}
	entry := LogEntry{
		ID:      ids.NextID(),
		Type:    entryType,
		Body:    body,
		Variant: variant,
	}

	size := len(s.Log) + 1
	if size > LogLimit {
		size = LogLimit
	}
	log := make([]LogEntry, 0, size)
	log = append(log, entry)
	log = append(log, s.Log[:size-1]...)
	s.Log = log
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
