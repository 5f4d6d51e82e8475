// Package tuistyles holds the lipgloss palette shared by the TUI packages.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fiscalite/taxsim/internal/output"
	"github.com/shopspring/decimal"
)

// Colors
var (
	ColorPrimary   = lipgloss.Color("#003366")
	ColorSecondary = lipgloss.Color("#4A6FA5")
	ColorAccent    = lipgloss.Color("#E1A100")
	ColorSuccess   = lipgloss.Color("#2E8B57")
	ColorDanger    = lipgloss.Color("#C0392B")
	ColorInfo      = lipgloss.Color("#2980B9")

	ColorForeground = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#EAEAEA"}
	ColorMuted      = lipgloss.AdaptiveColor{Light: "#777777", Dark: "#8A8A8A"}
	ColorBorder     = lipgloss.AdaptiveColor{Light: "#CCCCCC", Dark: "#444444"}
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(ColorBorder)

	StatusKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	ActiveBorderStyle = BorderStyle.
				BorderForeground(ColorPrimary)

	SelectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary)

	UnselectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground)

	FieldLabelStyle = lipgloss.NewStyle().
			Width(28).
			Foreground(ColorForeground)

	FocusedFieldLabelStyle = FieldLabelStyle.
				Bold(true).
				Foreground(ColorPrimary)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)

	SectionTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSecondary).
				MarginTop(1)
)

// MetricTrendStyle colors a change green when favorable.
func MetricTrendStyle(isPositive bool) lipgloss.Style {
	if isPositive {
		return lipgloss.NewStyle().Foreground(ColorSuccess)
	}
	return lipgloss.NewStyle().Foreground(ColorDanger)
}

// TrendIndicator returns an arrow for a change direction.
func TrendIndicator(isPositive bool) string {
	if isPositive {
		return "▲"
	}
	return "▼"
}

// FormatEuro formats an amount for display.
func FormatEuro(amount decimal.Decimal) string {
	return output.FormatEuro(amount)
}
