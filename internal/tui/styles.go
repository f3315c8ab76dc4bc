package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/state"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1).
			PaddingRight(1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	criticalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F")).
			Bold(true)

	endingStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF5F5F")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F")).
			Italic(true)

	variantStyles = map[state.LogVariant]lipgloss.Style{
		state.VariantStory:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")),
		state.VariantSystem: lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Italic(true),
		state.VariantEffect: lipgloss.NewStyle().Foreground(lipgloss.Color("#AF87FF")),
		state.VariantPlayer: lipgloss.NewStyle().Foreground(lipgloss.Color("#87D7AF")),
	}

	toneStyles = map[state.Tone]lipgloss.Style{
		state.TonePositive: lipgloss.NewStyle().Foreground(lipgloss.Color("#87D7AF")),
		state.ToneNegative: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8787")),
		state.ToneNeutral:  lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")),
	}
)

func variantStyle(v state.LogVariant) lipgloss.Style {
	if style, ok := variantStyles[v]; ok {
		return style
	}
	return variantStyles[state.VariantStory]
}

func toneStyle(t state.Tone) lipgloss.Style {
	if style, ok := toneStyles[t]; ok {
		return style
	}
	return toneStyles[state.ToneNeutral]
}
