package state

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Checksum is a deterministic digest of a state snapshot.
// The log is excluded because its ids depend on the id generator.
type Checksum struct {
	Hash    string
	Version int
}

// ComputeChecksum hashes a canonical representation of the state.
func (s *GameState) ComputeChecksum() (*Checksum, error) {
	hash := sha256.New()
	if _, err := hash.Write([]byte(s.deterministicRepresentation())); err != nil {
		return nil, fmt.Errorf("failed to compute hash: %w", err)
	}
	return &Checksum{
		Hash:    hex.EncodeToString(hash.Sum(nil)),
		Version: 2,
	}, nil
}

// VerifyChecksum reports whether the state still matches a previously computed checksum.
func (s *GameState) VerifyChecksum(expected *Checksum) (bool, error) {
	computed, err := s.ComputeChecksum()
	if err != nil {
		return false, fmt.Errorf("failed to compute checksum: %w", err)
	}
	return computed.Hash == expected.Hash, nil
}

func (s *GameState) deterministicRepresentation() string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "GAME:%s|%s|%d|%d/%d|%t|%t|%t\n",
		s.LoopStage,
		s.GameOutcome,
		s.Turn.Number,
		s.Turn.Actions.Remaining,
		s.Turn.Actions.Total,
		s.EventResolutionPending,
		s.JournalScript.Completed,
		s.SoundEnabled,
	)
	fmt.Fprintf(&buf, "JOURNAL:%d/%d\n", s.JournalScript.NextIndex, len(s.JournalScript.Entries))

	// Piles are ordered, so ids are written in pile order.
	writeIDs(&buf, "HAND", cardIDs(s.Hand))
	writeIDs(&buf, "PLAYER_DRAW", cardIDs(s.Decks.Player.DrawPile))
	writeIDs(&buf, "PLAYER_DISCARD", cardIDs(s.Decks.Player.DiscardPile))
	writeIDs(&buf, "EVENT_DRAW", eventIDs(s.Decks.Event.DrawPile))
	writeIDs(&buf, "EVENT_DISCARD", eventIDs(s.Decks.Event.DiscardPile))

	fmt.Fprintf(&buf, "EVENT:%s\n", s.Event.ID)
	for _, choice := range s.Event.Choices {
		fmt.Fprintf(&buf, "  CHOICE:%s|%t|%s\n", choice.ID, choice.Resolved, choice.Outcome)
	}

	tracks := append([]Track(nil), s.WorldTracks...)
	sort.Slice(tracks, func(i, j int) bool { return tracks[i].ID < tracks[j].ID })
	for _, track := range tracks {
		fmt.Fprintf(&buf, "TRACK:%s|%d|%d\n", track.ID, track.Value, track.Max)
	}

	stats := append([]CharacterStat(nil), s.CharacterStats...)
	sort.Slice(stats, func(i, j int) bool { return stats[i].ID < stats[j].ID })
	for _, stat := range stats {
		fmt.Fprintf(&buf, "STAT:%s|%d|%d\n", stat.ID, stat.Value, stat.Max)
	}

	markers := append([]TemporaryMarker(nil), s.TemporaryMarkers...)
	sort.Slice(markers, func(i, j int) bool { return markers[i].ID < markers[j].ID })
	for _, marker := range markers {
		fmt.Fprintf(&buf, "MARKER:%s|%d\n", marker.ID, marker.Value)
	}

	statusIDs := make([]string, len(s.Statuses))
	for i, status := range s.Statuses {
		statusIDs[i] = status.ID
	}
	sort.Strings(statusIDs)
	writeIDs(&buf, "STATUSES", statusIDs)

	for _, modifier := range s.Modifiers {
		fmt.Fprintf(&buf, "MODIFIER:%s|%s|%d|%d\n",
			modifier.ID, modifier.SourceCardID, modifier.RemainingTurns, modifier.ReduceSanityLoss)
	}

	if play := s.LastCardPlay; play != nil {
		fmt.Fprintf(&buf, "LAST_PLAY:%d|%s|%t\n", play.Serial, play.CardID, play.Success)
	}

	if s.Ending != nil {
		fmt.Fprintf(&buf, "ENDING:%s\n", s.Ending.ID)
	}

	return buf.String()
}

func writeIDs(buf *bytes.Buffer, label string, ids []string) {
	buf.WriteString(label)
	buf.WriteString(":")
	buf.WriteString(strings.Join(ids, ","))
	buf.WriteString("\n")
}

// cardIDs writes each card id with its remaining use counters.
func cardIDs(cards []CardDefinition) []string {
	ids := make([]string, len(cards))
	for i, card := range cards {
		ids[i] = card.ID + "#" + counter(card.SuccessCount) + "/" + counter(card.FailCount)
	}
	return ids
}

func counter(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func eventIDs(events []EventCard) []string {
	ids := make([]string, len(events))
	for i, event := range events {
		ids[i] = event.ID
	}
	return ids
}

// MarshalSnapshot encodes the state as YAML.
func MarshalSnapshot(s *GameState) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// UnmarshalSnapshot decodes a state previously encoded with MarshalSnapshot.
func UnmarshalSnapshot(data []byte) (*GameState, error) {
	var s GameState
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &s, nil
}

// ValidateSnapshotRoundtrip checks that a state survives encoding without losing data.
func ValidateSnapshotRoundtrip(s *GameState) error {
	original, err := s.ComputeChecksum()
	if err != nil {
		return fmt.Errorf("failed to compute original checksum: %w", err)
	}

	data, err := MarshalSnapshot(s)
	if err != nil {
		return err
	}
	decoded, err := UnmarshalSnapshot(data)
	if err != nil {
		return err
	}

	ok, err := decoded.VerifyChecksum(original)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("checksum mismatch after roundtrip")
	}
	return nil
}

// UnmarshalYAML accepts either a scalar amount or a structured effect mapping.
func (e *CardEffect) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var amount int
		if err := node.Decode(&amount); err != nil {
			return fmt.Errorf("card effect: %w", err)
		}
		*e = CardEffect{Amount: amount}
		return nil
	case yaml.MappingNode:
		var player PlayerCardEffect
		if err := node.Decode(&player); err != nil {
			return fmt.Errorf("card effect: %w", err)
		}
		*e = CardEffect{Player: &player}
		return nil
	default:
		return fmt.Errorf("card effect: unexpected yaml node kind %d at line %d", node.Kind, node.Line)
	}
}

// MarshalYAML mirrors UnmarshalYAML.
func (e CardEffect) MarshalYAML() (interface{}, error) {
	if e.Player != nil {
		return e.Player, nil
	}
	return e.Amount, nil
}
