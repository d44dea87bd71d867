package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/grayman/dealflows/internal/version"
)

// Layout constants for responsive terminal width
const (
	MinTerminalWidth = 60  // Minimum supported terminal width
	MaxContentWidth  = 100 // Maximum content width before capping
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#2563EB") // Blue - brand, primary actions
	SecondaryColor = lipgloss.Color("#34D399") // Green - status, counters
	ErrorColor     = lipgloss.Color("#F87171") // Red - field errors
	WarningColor   = lipgloss.Color("#FFA500") // Orange - warnings
	TextColor      = lipgloss.Color("#E5E7EB") // Off-white
	SubtleColor    = lipgloss.Color("#6B7280") // Gray
	BorderColor    = lipgloss.Color("#374151") // Dark gray
)

var (
	BrandStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	MenuIconStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	NavItemStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			PaddingLeft(2)

	NavPrimaryStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			PaddingLeft(2)

	HeadlineStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	SectionTitleStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true).
				MarginTop(1)

	StatValueStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	StatLabelStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	StatBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 2).
			Align(lipgloss.Center)

	ServiceTitleStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Bold(true)

	FieldLabelStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Width(10)

	FocusedLabelStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true).
				Width(10)

	FieldErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	StatusStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(SubtleColor).
			Padding(0, 2)

	FocusedButtonStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(PrimaryColor).
				Bold(true).
				Padding(0, 2)

	FooterStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			BorderTop(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(BorderColor).
			MarginTop(1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Padding(1, 0, 0, 0)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Padding(1, 0)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(SecondaryColor).
				Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)
)

// GetTerminalWidth returns the current terminal width, clamped to the supported range
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return MinTerminalWidth
	}
	return clampWidth(width)
}

func clampWidth(width int) int {
	if width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}

// RenderFooterLine renders the version line shown under every screen
func RenderFooterLine(width int) string {
	left := "dealflows " + version.Version
	right := "q to quit"
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return SubtitleStyle.Render(left + strings.Repeat(" ", gap) + right)
}
