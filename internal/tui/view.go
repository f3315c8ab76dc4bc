package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/state"
)

func (m Model) View() string {
	s := m.feed.State()

	sideWidth := m.width / 3
	if sideWidth < 24 {
		sideWidth = 24
	}
	mainWidth := m.width - sideWidth - 3
	if mainWidth < 30 {
		mainWidth = 30
	}

	hand := renderHand(s)
	if m.opts.Played != nil && s.LoopStage == state.StagePlayer {
		hand += "\n" + dimStyle.Render(fmt.Sprintf("  played this turn: %d", m.opts.Played.Count()))
	}
	main := []string{renderEvent(s, mainWidth), hand}
	if m.opts.ShowSummary {
		if summary := renderSummary(s); summary != "" {
			main = append(main, summary)
		}
	}
	if s.Ending != nil {
		main = append(main, endingStyle.Width(mainWidth-2).Render(
			titleStyle.Render(s.Ending.Title)+"\n"+s.Ending.Text))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(mainWidth).Render(strings.Join(main, "\n\n")),
		panelStyle.Width(sideWidth).Render(renderSide(s)),
	)

	parts := []string{renderHeader(s), body, titleStyle.Render("LOG"), m.viewport.View()}
	if m.err != nil {
		parts = append(parts, errorStyle.Render(m.err.Error()))
	}
	parts = append(parts, m.help.View(keys))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderHeader(s *state.GameState) string {
	sound := "off"
	if s.SoundEnabled {
		sound = "on"
	}
	title := strings.TrimSpace(fmt.Sprintf("%s %s", s.Phase.Icon, s.Phase.Name))
	if s.Scenario.Title != "" {
		title += " · " + s.Scenario.Title
	}
	line := fmt.Sprintf("Turn %d  Actions %d/%d  Sound %s",
		s.Turn.Number, s.Turn.Actions.Remaining, s.Turn.Actions.Total, sound)
	if s.Phase.Subtitle != "" {
		line = s.Phase.Subtitle + "  " + line
	}
	return headerStyle.Render(title) + "\n" + dimStyle.Render(line) + "\n"
}

func renderEvent(s *state.GameState, width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("EVENT"))
	b.WriteString("\n")
	b.WriteString(s.Event.Title)
	if s.Event.Flavor != "" {
		b.WriteString("\n")
		b.WriteString(dimStyle.Width(width).Render(s.Event.Flavor))
	}
	if s.Event.Effect != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Render(s.Event.Effect))
	}
	for i, choice := range s.Event.Choices {
		line := fmt.Sprintf("\n  %d. %s", i+1, choice.Label)
		if choice.Chance != nil {
			line += fmt.Sprintf(" (%s)", percent(*choice.Chance))
		}
		if choice.Resolved {
			mark := "chosen"
			if choice.Outcome != state.ChoicePending {
				mark = string(choice.Outcome)
			}
			line = dimStyle.Render(line + " [" + mark + "]")
		}
		b.WriteString(line)
	}
	return b.String()
}

func renderHand(s *state.GameState) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("HAND"))
	deck := fmt.Sprintf("  draw %d · discard %d", s.Decks.Player.Draw, s.Decks.Player.Discard)
	b.WriteString(dimStyle.Render(deck))
	if len(s.Hand) == 0 {
		b.WriteString("\n  (empty)")
		return b.String()
	}
	for i, card := range s.Hand {
		line := fmt.Sprintf("\n  %d. %s [%s] cost %d", i+1, card.Name, card.Type, card.Cost())
		if card.Chance != nil {
			line += " · " + percent(*card.Chance)
		}
		if !card.Playable {
			line = dimStyle.Render(line + " · locked")
		}
		b.WriteString(line)
	}
	return b.String()
}

func renderSummary(s *state.GameState) string {
	var lines []string
	if play := s.LastCardPlay; play != nil {
		lines = append(lines, fmt.Sprintf("Last card: %s", play.Text))
	}
	if summary := s.EventResolutionSummary; summary != nil {
		lines = append(lines, variantStyle(summary.Variant).Render(
			fmt.Sprintf("%s: %s", summary.Title, summary.Body)))
	}
	if s.Decks.Event.Next != "" {
		lines = append(lines, dimStyle.Render("Next event: "+s.Decks.Event.Next))
	}
	return strings.Join(lines, "\n")
}

func renderSide(s *state.GameState) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("WORLD"))
	for _, track := range s.WorldTracks {
		critical := track.CriticalThreshold != nil && track.Value >= *track.CriticalThreshold
		b.WriteString("\n" + meter(track.Label, track.Value, track.Max, critical))
	}

	b.WriteString("\n\n" + titleStyle.Render("CHARACTER"))
	for _, stat := range s.CharacterStats {
		critical := stat.CriticalThreshold != nil && stat.Value <= *stat.CriticalThreshold
		b.WriteString("\n" + meter(stat.Label, stat.Value, stat.Max, critical))
	}
	for _, status := range s.Statuses {
		b.WriteString("\n" + toneStyle(status.Tone).Render("• "+status.Name))
	}

	var active []string
	for _, marker := range s.TemporaryMarkers {
		if marker.Value > 0 {
			active = append(active, toneStyle(marker.Tone).Render(fmt.Sprintf("%s ×%d", marker.Label, marker.Value)))
		}
	}
	for _, mod := range s.Modifiers {
		active = append(active, toneStyle(state.TonePositive).Render(
			fmt.Sprintf("%s (%d)", mod.Label, mod.RemainingTurns)))
	}
	if len(active) > 0 {
		b.WriteString("\n\n" + titleStyle.Render("CONDITIONS"))
		for _, line := range active {
			b.WriteString("\n" + line)
		}
	}
	return b.String()
}

func renderLog(s *state.GameState, width int) string {
	lines := make([]string, 0, len(s.Log))
	for _, entry := range s.Log {
		style := variantStyle(entry.Variant)
		if width > 0 {
			style = style.Width(width)
		}
		lines = append(lines, style.Render(entry.Type+" "+entry.Body))
	}
	return strings.Join(lines, "\n")
}

func meter(label string, value, limit int, critical bool) string {
	text := fmt.Sprintf("%-8s %d", label, value)
	if limit > 0 {
		filled := state.Clamp(value, 0, limit)
		text = fmt.Sprintf("%-8s %s %d/%d", label,
			strings.Repeat("█", filled)+strings.Repeat("░", limit-filled), value, limit)
	}
	if critical {
		return criticalStyle.Render(text)
	}
	return text
}

func percent(chance float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(chance*100)))
}
