// Package state holds the game state aggregate and the small utilities every
// command shares: cloning, clamping, the bounded log and the injected random
// and id sources.
package state

// LoopStage is the top-level phase discriminator governing which commands are legal.
type LoopStage string

const (
	StageStory    LoopStage = "story"
	StagePlayer   LoopStage = "player"
	StageEvent    LoopStage = "event"
	StageFinished LoopStage = "finished"
)

// Outcome is the terminal result of a game. The zero value means the game is still running.
type Outcome string

const (
	OutcomeNone    Outcome = ""
	OutcomeVictory Outcome = "victory"
	OutcomeDefeat  Outcome = "defeat"
)

// LogVariant tags the tone of a log entry.
type LogVariant string

const (
	VariantStory  LogVariant = "story"
	VariantSystem LogVariant = "system"
	VariantEffect LogVariant = "effect"
	VariantPlayer LogVariant = "player"
)

// ChoiceOutcome records how a chance-based event choice resolved.
type ChoiceOutcome string

const (
	ChoicePending ChoiceOutcome = ""
	ChoiceSuccess ChoiceOutcome = "success"
	ChoiceFail    ChoiceOutcome = "fail"
)

// TrackType marks a world track as a win condition, a loss condition or neither.
type TrackType string

const (
	TrackVictory TrackType = "victory"
	TrackDoom    TrackType = "doom"
	TrackGeneric TrackType = "generic"
)

// Tone is the presentation hint for statuses and markers.
type Tone string

const (
	TonePositive Tone = "positive"
	ToneNegative Tone = "negative"
	ToneNeutral  Tone = "neutral"
)

// Well-known ids the rules refer to directly.
const (
	TrackVictoryID = "victory"
	TrackDoomID    = "doom"
	TrackNoiseID   = "noise"

	StatHealthID = "health"
	StatSanityID = "sanity"

	MarkerColdID = "cold"
	MarkerFearID = "fear"
)

// ActionPool is the number of actions available in the current turn.
type ActionPool struct {
	Remaining int `yaml:"remaining"`
	Total     int `yaml:"total"`
}

// Turn tracks the turn counter and the action pool.
type Turn struct {
	Number  int        `yaml:"number"`
	Actions ActionPool `yaml:"actions"`
}

// Deck is a draw pile and a discard pile with their cached counters.
// Draw and Discard are only guaranteed to match the piles after Sync.
type Deck[T any] struct {
	Draw        int `yaml:"draw"`
	Discard     int `yaml:"discard"`
	DrawPile    []T `yaml:"draw_pile"`
	DiscardPile []T `yaml:"discard_pile"`
}

// Sync refreshes the cached counters from the piles.
func (d *Deck[T]) Sync() {
	d.Draw = len(d.DrawPile)
	d.Discard = len(d.DiscardPile)
}

// Total returns the number of cards held by both piles.
func (d *Deck[T]) Total() int {
	return len(d.DrawPile) + len(d.DiscardPile)
}

// EventDeck is the narrative event deck. Next holds the title of the top card.
type EventDeck struct {
	Deck[EventCard] `yaml:",inline"`
	Next            string `yaml:"next"`
}

// Sync refreshes counters and the next-card preview.
func (d *EventDeck) Sync() {
	d.Deck.Sync()
	d.Next = ""
	if len(d.DrawPile) > 0 {
		d.Next = d.DrawPile[0].Title
	}
}

// Decks groups the player and event decks.
type Decks struct {
	Player Deck[CardDefinition] `yaml:"player"`
	Event  EventDeck            `yaml:"event"`
}

// ModifierSpec describes a timed modifier a card creates when played.
type ModifierSpec struct {
	Label            string `yaml:"label"`
	Turns            int    `yaml:"turns"`
	ReduceSanityLoss int    `yaml:"reduce_sanity_loss"`
}

// PlayerCardEffect is the structured form of a card effect.
type PlayerCardEffect struct {
	RestoreSanity  int           `yaml:"restore_sanity"`
	RestoreHealth  int           `yaml:"restore_health"`
	RemoveStatuses []string      `yaml:"remove_statuses"`
	Modifier       *ModifierSpec `yaml:"modifier"`
}

// CardEffect is either a flat amount or a structured PlayerCardEffect.
type CardEffect struct {
	Amount int
	Player *PlayerCardEffect
}

// CardDefinition is a card of the player deck.
type CardDefinition struct {
	ID           string             `yaml:"id"`
	Name         string             `yaml:"name"`
	Description  string             `yaml:"description"`
	Type         string             `yaml:"type"`
	Flavor       string             `yaml:"flavor"`
	Playable     bool               `yaml:"playable"`
	ActionCost   *int               `yaml:"action_cost"`
	Chance       *float64           `yaml:"chance"`
	SuccessCount *int               `yaml:"success_count"`
	FailCount    *int               `yaml:"fail_count"`
	Effect       CardEffect         `yaml:"effect"`
	Effects      *EventChoiceEffect `yaml:"effects"`
	SuccessText  string             `yaml:"success_text"`
	FailText     string             `yaml:"fail_text"`
}

// Cost returns the action cost of the card, defaulting to 1.
func (c CardDefinition) Cost() int {
	if c.ActionCost == nil {
		return 1
	}
	return *c.ActionCost
}

// StatDelta changes one character stat.
type StatDelta struct {
	StatID string `yaml:"stat_id"`
	Delta  int    `yaml:"delta"`
}

// EventChoiceEffect is a sparse bag of deltas. Zero fields are skipped.
type EventChoiceEffect struct {
	LogType      string      `yaml:"log_type"`
	LogVariant   LogVariant  `yaml:"log_variant"`
	StatDeltas   []StatDelta `yaml:"stat_deltas"`
	DoomDelta    int         `yaml:"doom_delta"`
	VictoryDelta int         `yaml:"victory_delta"`
	ColdDelta    int         `yaml:"cold_delta"`
	FearDelta    int         `yaml:"fear_delta"`
	ActionsDelta int         `yaml:"actions_delta"`
	CluesGained  int         `yaml:"clues_gained"`
	Noise        int         `yaml:"noise"`
}

// EventChoice is one branch of a multi-choice event.
type EventChoice struct {
	ID             string             `yaml:"id"`
	Label          string             `yaml:"label"`
	Result         string             `yaml:"result"`
	Chance         *float64           `yaml:"chance"`
	SuccessText    string             `yaml:"success_text"`
	FailText       string             `yaml:"fail_text"`
	Effects        *EventChoiceEffect `yaml:"effects"`
	SuccessEffects *EventChoiceEffect `yaml:"success_effects"`
	FailEffects    *EventChoiceEffect `yaml:"fail_effects"`
	Resolved       bool               `yaml:"resolved"`
	Outcome        ChoiceOutcome      `yaml:"outcome"`
}

// EventCard is a narrative event. Cards without choices resolve immediately.
type EventCard struct {
	ID               string             `yaml:"id"`
	Title            string             `yaml:"title"`
	Flavor           string             `yaml:"flavor"`
	Effect           string             `yaml:"effect"`
	Type             string             `yaml:"type"`
	Choices          []EventChoice      `yaml:"choices"`
	ImmediateEffects *EventChoiceEffect `yaml:"immediate_effects"`
}

// Choice returns the choice with the given id.
func (e *EventCard) Choice(id string) *EventChoice {
	for i := range e.Choices {
		if e.Choices[i].ID == id {
			return &e.Choices[i]
		}
	}
	return nil
}

// HasUnresolvedChoices reports whether any choice is still open.
func (e *EventCard) HasUnresolvedChoices() bool {
	for _, choice := range e.Choices {
		if !choice.Resolved {
			return true
		}
	}
	return false
}

// Track is a bounded world progress meter.
type Track struct {
	ID                string    `yaml:"id"`
	Label             string    `yaml:"label"`
	Value             int       `yaml:"value"`
	Max               int       `yaml:"max"`
	Type              TrackType `yaml:"type"`
	CriticalThreshold *int      `yaml:"critical_threshold"`
}

// CharacterStat is a bounded character attribute such as health or sanity.
type CharacterStat struct {
	ID                string `yaml:"id"`
	Label             string `yaml:"label"`
	Value             int    `yaml:"value"`
	Max               int    `yaml:"max"`
	CriticalThreshold *int   `yaml:"critical_threshold"`
}

// StatusEffect is a discrete named condition.
type StatusEffect struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Tone        Tone   `yaml:"tone"`
}

// TemporaryMarker is a stacking condition such as cold or fear.
type TemporaryMarker struct {
	ID                    string `yaml:"id"`
	Label                 string `yaml:"label"`
	Description           string `yaml:"description"`
	Value                 int    `yaml:"value"`
	Max                   *int   `yaml:"max"`
	Tone                  Tone   `yaml:"tone"`
	ActionPenaltyPerStack int    `yaml:"action_penalty_per_stack"`
	DecayPerTurn          int    `yaml:"decay_per_turn"`
}

// CardModifier is a timed buff created by playing a card.
type CardModifier struct {
	ID               string `yaml:"id"`
	SourceCardID     string `yaml:"source_card_id"`
	Label            string `yaml:"label"`
	RemainingTurns   int    `yaml:"remaining_turns"`
	ReduceSanityLoss int    `yaml:"reduce_sanity_loss"`
}

// JournalEntry is one line of the prologue script.
type JournalEntry struct {
	ID      string     `yaml:"id"`
	Type    string     `yaml:"type"`
	Body    string     `yaml:"body"`
	Variant LogVariant `yaml:"variant"`
}

// JournalScript is consumed one entry per AdvanceJournal dispatch.
type JournalScript struct {
	Entries   []JournalEntry `yaml:"entries"`
	NextIndex int            `yaml:"next_index"`
	Completed bool           `yaml:"completed"`
}

// LogEntry is one line of the game log.
type LogEntry struct {
	ID      string     `yaml:"id"`
	Type    string     `yaml:"type"`
	Body    string     `yaml:"body"`
	Variant LogVariant `yaml:"variant"`
}

// EndingKey names a built-in defeat cause.
type EndingKey string

const (
	EndingHealthDepleted EndingKey = "health_depleted"
	EndingSanityDepleted EndingKey = "sanity_depleted"
	EndingDoomReached    EndingKey = "doom_reached"
)

// Ending is the narrative payload shown when the game ends.
type Ending struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Text  string `yaml:"text"`
}

// Scenario carries the scenario metadata the rules consult at runtime.
type Scenario struct {
	ActID   string               `yaml:"act_id"`
	Title   string               `yaml:"title"`
	Endings map[EndingKey]Ending `yaml:"endings"`
}

// Phase is the banner describing the current phase.
type Phase struct {
	Icon     string `yaml:"icon"`
	Name     string `yaml:"name"`
	Subtitle string `yaml:"subtitle"`
}

// CardPlay summarises the most recent card play. Serial counts plays within a game.
type CardPlay struct {
	Serial  int    `yaml:"serial"`
	CardID  string `yaml:"card_id"`
	Name    string `yaml:"name"`
	Success bool   `yaml:"success"`
	Text    string `yaml:"text"`
}

// EventSummary summarises the most recently completed event.
type EventSummary struct {
	Title   string     `yaml:"title"`
	Body    string     `yaml:"body"`
	Variant LogVariant `yaml:"variant"`
}

// GameState is the single root aggregate owned by the engine.
type GameState struct {
	Turn                   Turn              `yaml:"turn"`
	Decks                  Decks             `yaml:"decks"`
	Hand                   []CardDefinition  `yaml:"hand"`
	Phase                  Phase             `yaml:"phase"`
	WorldTracks            []Track           `yaml:"world_tracks"`
	CharacterStats         []CharacterStat   `yaml:"character_stats"`
	Statuses               []StatusEffect    `yaml:"statuses"`
	TemporaryMarkers       []TemporaryMarker `yaml:"temporary_markers"`
	Modifiers              []CardModifier    `yaml:"modifiers"`
	Event                  EventCard         `yaml:"event"`
	Scenario               Scenario          `yaml:"scenario"`
	Log                    []LogEntry        `yaml:"log"`
	JournalScript          JournalScript     `yaml:"journal_script"`
	LoopStage              LoopStage         `yaml:"loop_stage"`
	EventResolutionPending bool              `yaml:"event_resolution_pending"`
	EventResolutionSummary *EventSummary     `yaml:"event_resolution_summary"`
	LastCardPlay           *CardPlay         `yaml:"last_card_play"`
	GameOutcome            Outcome           `yaml:"game_outcome"`
	Ending                 *Ending           `yaml:"ending"`
	AutoScrollLog          bool              `yaml:"auto_scroll_log"`
	SoundEnabled           bool              `yaml:"sound_enabled"`
}

// Finished reports whether an outcome has been reached.
func (s *GameState) Finished() bool {
	return s.GameOutcome != OutcomeNone
}

// Track returns the world track with the given id.
func (s *GameState) Track(id string) *Track {
	for i := range s.WorldTracks {
		if s.WorldTracks[i].ID == id {
			return &s.WorldTracks[i]
		}
	}
	return nil
}

// TrackOfType returns the first world track of the given type.
func (s *GameState) TrackOfType(kind TrackType) *Track {
	for i := range s.WorldTracks {
		if s.WorldTracks[i].Type == kind {
			return &s.WorldTracks[i]
		}
	}
	return nil
}

// Stat returns the character stat with the given id.
func (s *GameState) Stat(id string) *CharacterStat {
	for i := range s.CharacterStats {
		if s.CharacterStats[i].ID == id {
			return &s.CharacterStats[i]
		}
	}
	return nil
}

// Marker returns the temporary marker with the given id.
func (s *GameState) Marker(id string) *TemporaryMarker {
	for i := range s.TemporaryMarkers {
		if s.TemporaryMarkers[i].ID == id {
			return &s.TemporaryMarkers[i]
		}
	}
	return nil
}

// HandIndex returns the position of a card in hand, or -1.
func (s *GameState) HandIndex(cardID string) int {
	for i, card := range s.Hand {
		if card.ID == cardID {
			return i
		}
	}
	return -1
}
