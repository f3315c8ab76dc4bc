// Package content turns scenario files into the initial GameState: it parses
// the YAML scenario format, normalizes raw event options into choices and
// assembles decks, tracks, markers and the prologue script.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/state"
)

// ErrInvalidScenario is wrapped by every validation failure.
var ErrInvalidScenario = errors.New("invalid scenario")

// File is the on-disk scenario format.
type File struct {
	Scenario   ScenarioSpec            `yaml:"scenario"`
	World      WorldSpec               `yaml:"world"`
	Character  CharacterSpec           `yaml:"character"`
	PlayerDeck PlayerDeckSpec          `yaml:"player_deck"`
	EventDeck  []RawEventCard          `yaml:"event_deck"`
	Journal    []state.JournalEntry    `yaml:"journal"`
	Markers    []state.TemporaryMarker `yaml:"markers"`
}

// ScenarioSpec holds the narrative frame of a scenario.
type ScenarioSpec struct {
	ActID     string                           `yaml:"act_id"`
	Title     string                           `yaml:"title"`
	Intro     *IntroSpec                       `yaml:"intro"`
	FirstTask *TaskSpec                        `yaml:"first_task"`
	Endings   map[state.EndingKey]state.Ending `yaml:"endings"`
}

// IntroSpec becomes the first prologue entry.
type IntroSpec struct {
	Title  string   `yaml:"title"`
	Flavor []string `yaml:"flavor"`
}

// TaskSpec describes the first task. Its technical goal and fail condition
// become the victory and doom tracks.
type TaskSpec struct {
	ID                     string         `yaml:"id"`
	Label                  string         `yaml:"label"`
	Summary                string         `yaml:"summary"`
	Goal                   string         `yaml:"goal"`
	FailCondition          string         `yaml:"fail_condition"`
	TechnicalGoal          *ConditionSpec `yaml:"technical_goal"`
	TechnicalFailCondition *ConditionSpec `yaml:"technical_fail_condition"`
}

// ConditionSpec is a counter the scenario wins or loses on.
type ConditionSpec struct {
	Label          string `yaml:"label"`
	CurrentAmount  int    `yaml:"current_amount"`
	RequiredAmount int    `yaml:"required_amount"`
}

// WorldSpec holds the turn setup and any extra world tracks.
type WorldSpec struct {
	Turn         state.Turn    `yaml:"turn"`
	Tracks       []state.Track `yaml:"tracks"`
	SoundEnabled bool          `yaml:"sound_enabled"`
}

// CharacterSpec holds the investigator.
type CharacterSpec struct {
	Stats    []state.CharacterStat `yaml:"stats"`
	Statuses []state.StatusEffect  `yaml:"statuses"`
}

// PlayerDeckSpec lists the player cards. Hand and draw pile are shuffled
// together into the starting draw pile.
type PlayerDeckSpec struct {
	Hand        []state.CardDefinition `yaml:"hand"`
	DrawPile    []state.CardDefinition `yaml:"draw_pile"`
	DiscardPile []state.CardDefinition `yaml:"discard_pile"`
}

// RawEventCard is an event as authored. Cards with options are normalized
// into cards with choices.
type RawEventCard struct {
	state.EventCard `yaml:",inline"`
	Options         []RawEventOption `yaml:"options"`
}

// RawEventOption is one authored option of an event.
type RawEventOption struct {
	ID          string   `yaml:"id"`
	Label       string   `yaml:"label"`
	Result      string   `yaml:"result"`
	Chance      *float64 `yaml:"chance"`
	SuccessText string   `yaml:"success_text"`
	FailText    string   `yaml:"fail_text"`
	Effect      struct {
		OnSuccess *RawOptionEffect `yaml:"on_success"`
		OnFail    *RawOptionEffect `yaml:"on_fail"`
	} `yaml:"effect"`
}

// RawOptionEffect uses authoring units: sanity and wound are losses, omen
// feeds the doom track.
type RawOptionEffect struct {
	Clue   int `yaml:"clue"`
	Sanity int `yaml:"sanity"`
	Omen   int `yaml:"omen"`
	Wound  int `yaml:"wound"`
	Cold   int `yaml:"cold"`
	Fear   int `yaml:"fear"`
}

// Parse decodes a scenario. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var f File
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}
	return &f, nil
}

// Load reads and parses a scenario file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}
