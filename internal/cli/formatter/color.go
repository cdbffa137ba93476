package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/planpush/planpush/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// KindBadge returns a colored label for a node kind.
func KindBadge(kind domain.NodeKind) string {
	switch kind {
	case domain.KindPlan:
		return StylePurple.Render("PLAN")
	case domain.KindSuite:
		return StyleBlue.Render("SUITE")
	case domain.KindCase:
		return StyleGreen.Render("CASE")
	case domain.KindWorkItem:
		return StyleYellow.Render("ITEM")
	default:
		return StyleDim.Render(strings.ToUpper(string(kind)))
	}
}

// OutcomePill returns a colored indicator for a publish outcome.
func OutcomePill(outcome domain.PublishOutcome) string {
	switch outcome {
	case domain.PublishSucceeded:
		return StyleGreen.Render("✔ succeeded")
	case domain.PublishFailed:
		return StyleRed.Render("✖ failed")
	default:
		return StyleDim.Render(string(outcome))
	}
}

// StatusMark returns the per-node completion indicator for publish output.
func StatusMark(status domain.CreateStatus) string {
	if status == domain.StatusCreatedUnlinked {
		return StyleYellow.Render("!")
	}
	return StyleGreen.Render("✔")
}

// ActivePill marks the active profile in listings.
func ActivePill(active bool) string {
	if active {
		return StyleGreen.Render("● active")
	}
	return StyleDim.Render("○")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
