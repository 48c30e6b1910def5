package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/goalplan/internal/domain"
)

// Colors
var (
	ColorPrimary = lipgloss.Color("#87CEEB")
	ColorSuccess = lipgloss.Color("#10B981")
	ColorWarning = lipgloss.Color("#F59E0B")
	ColorDanger  = lipgloss.Color("#EF4444")
	ColorMuted   = lipgloss.Color("#9CA3AF")
	ColorValue   = lipgloss.Color("#D1D5DB")
	ColorBorder  = lipgloss.Color("#6B7280")
)

var (
	TitleStyle   = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	SectionStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).MarginTop(1)
	LabelStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	ValueStyle   = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	MutedStyle   = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)
)

const scoreBarWidth = 20

// ScoreColor picks green, amber or red for a 0-100 score.
func ScoreColor(score int) lipgloss.Color {
	switch {
	case score >= 70:
		return ColorSuccess
	case score >= 40:
		return ColorWarning
	default:
		return ColorDanger
	}
}

// ScoreBar renders a score as a filled bar followed by "n/100".
func ScoreBar(score int) string {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	filled := score * scoreBarWidth / 100
	empty := scoreBarWidth - filled

	barStyle := lipgloss.NewStyle().Foreground(ScoreColor(score))
	emptyStyle := lipgloss.NewStyle().Foreground(ColorBorder)

	var b strings.Builder
	b.WriteString("[")
	if filled > 0 {
		b.WriteString(barStyle.Render(strings.Repeat("█", filled)))
	}
	if empty > 0 {
		b.WriteString(emptyStyle.Render(strings.Repeat("░", empty)))
	}
	b.WriteString("] ")
	b.WriteString(barStyle.Bold(true).Render(fmt.Sprintf("%d/100", score)))
	return b.String()
}

// MetricCard renders a bordered label/value card.
func MetricCard(label, value string) string {
	return CardStyle.Render(LabelStyle.Render(label) + "\n" + ValueStyle.Render(value))
}

// InsightStyle colours an insight by its type.
func InsightStyle(insightType string) lipgloss.Style {
	switch insightType {
	case domain.InsightWarning:
		return lipgloss.NewStyle().Foreground(ColorWarning)
	case domain.InsightSuccess:
		return lipgloss.NewStyle().Foreground(ColorSuccess)
	default:
		return lipgloss.NewStyle().Foreground(ColorPrimary)
	}
}

// InsightIcon returns the bullet used for an insight type.
func InsightIcon(insightType string) string {
	switch insightType {
	case domain.InsightWarning:
		return "⚠"
	case domain.InsightSuccess:
		return "✓"
	default:
		return "•"
	}
}
