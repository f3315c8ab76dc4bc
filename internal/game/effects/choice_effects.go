package effects

import (
	"fmt"

	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/state"
)

// EffectKind names one field of an EventChoiceEffect.
type EffectKind string

const (
	EffectStatDeltas   EffectKind = "statDeltas"
	EffectDoomDelta    EffectKind = "doomDelta"
	EffectVictoryDelta EffectKind = "victoryDelta"
	EffectColdDelta    EffectKind = "coldDelta"
	EffectFearDelta    EffectKind = "fearDelta"
	EffectActionsDelta EffectKind = "actionsDelta"
	EffectCluesGained  EffectKind = "cluesGained"
	EffectNoise        EffectKind = "noise"
)

// EffectKinds is the order handlers run in.
var EffectKinds = []EffectKind{
	EffectStatDeltas,
	EffectDoomDelta,
	EffectVictoryDelta,
	EffectColdDelta,
	EffectFearDelta,
	EffectActionsDelta,
	EffectCluesGained,
	EffectNoise,
}

// Present reports whether the field named by k is set to a non-zero value.
func (k EffectKind) Present(e *state.EventChoiceEffect) bool {
	switch k {
	case EffectStatDeltas:
		return len(e.StatDeltas) > 0
	case EffectDoomDelta:
		return e.DoomDelta != 0
	case EffectVictoryDelta:
		return e.VictoryDelta != 0
	case EffectColdDelta:
		return e.ColdDelta != 0
	case EffectFearDelta:
		return e.FearDelta != 0
	case EffectActionsDelta:
		return e.ActionsDelta != 0
	case EffectCluesGained:
		return e.CluesGained != 0
	case EffectNoise:
		return e.Noise != 0
	default:
		return false
	}
}

// Handler applies one effect field to the working state.
type Handler func(m *state.Mutation, e *state.EventChoiceEffect)

// Handlers maps effect kinds to their handlers.
type Handlers map[EffectKind]Handler

// DefaultHandlers returns the built-in handler set.
func DefaultHandlers() Handlers {
	return Handlers{
		EffectStatDeltas: func(m *state.Mutation, e *state.EventChoiceEffect) {
			ApplyStatDeltas(m, e.StatDeltas)
		},
		EffectDoomDelta: func(m *state.Mutation, e *state.EventChoiceEffect) {
			AdjustTrack(m, state.TrackDoomID, e.DoomDelta)
		},
		EffectVictoryDelta: func(m *state.Mutation, e *state.EventChoiceEffect) {
			AdjustTrack(m, state.TrackVictoryID, e.VictoryDelta)
		},
		EffectColdDelta: func(m *state.Mutation, e *state.EventChoiceEffect) {
			adjustMarkerAndLog(m, state.MarkerColdID, e.ColdDelta)
		},
		EffectFearDelta: func(m *state.Mutation, e *state.EventChoiceEffect) {
			adjustMarkerAndLog(m, state.MarkerFearID, e.FearDelta)
		},
		EffectActionsDelta: func(m *state.Mutation, e *state.EventChoiceEffect) {
			AdjustActions(m.State, e.ActionsDelta)
		},
		EffectCluesGained: func(m *state.Mutation, e *state.EventChoiceEffect) {
			m.Log(LogClue, fmt.Sprintf("Clues gained: %d.", e.CluesGained), state.VariantEffect)
			AdjustTrack(m, state.TrackVictoryID, e.CluesGained)
		},
		EffectNoise: func(m *state.Mutation, e *state.EventChoiceEffect) {
			if m.State.Track(state.TrackNoiseID) != nil {
				AdjustTrack(m, state.TrackNoiseID, e.Noise)
			}
			m.Log(LogEffect, fmt.Sprintf("Noise %s.", signed(e.Noise)), state.VariantEffect)
		},
	}
}

var defaultHandlers = DefaultHandlers()

func adjustMarkerAndLog(m *state.Mutation, markerID string, delta int) {
	marker, applied := AdjustTemporaryMarker(m.State, markerID, delta)
	if marker == nil || applied == 0 {
		return
	}
	m.Log(LogEffect, fmt.Sprintf("%s %s.", marker.Label, signed(applied)), state.VariantEffect)
}

func signed(v int) string {
	if v > 0 {
		return fmt.Sprintf("+%d", v)
	}
	return fmt.Sprintf("%d", v)
}

// ApplyEventChoiceEffects runs the handler of every present field of e, in
// EffectKinds order. A nil handlers map selects DefaultHandlers. It returns
// the log type and variant callers should use for the narrative entry.
func ApplyEventChoiceEffects(m *state.Mutation, e *state.EventChoiceEffect, handlers Handlers) (string, state.LogVariant) {
	if e == nil {
		return LogEvent, ""
	}
	if handlers == nil {
		handlers = defaultHandlers
	}

	for _, kind := range EffectKinds {
		handler, ok := handlers[kind]
		if !ok || handler == nil || !kind.Present(e) {
			continue
		}
		handler(m, e)
	}

	logType := e.LogType
	if logType == "" {
		logType = LogEvent
	}
	return logType, e.LogVariant
}
