// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/walkthrough/internal/core/domain"
)

// Theme defines the colour palette and styling for the TUI.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Secondary is the secondary accent colour.
	Secondary lipgloss.Color

	// Background is the background colour.
	Background lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text and untouched items.
	Muted lipgloss.Color

	// Success marks passed items and completed sections.
	Success lipgloss.Color

	// Info marks informational items.
	Info lipgloss.Color

	// Warning marks items needing attention.
	Warning lipgloss.Color

	// Moderate marks moderate issues.
	Moderate lipgloss.Color

	// Error marks dangerous items and failures.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#2563EB"), // Blue
		Secondary:  lipgloss.Color("#06B6D4"), // Cyan
		Background: lipgloss.Color("#1E1E2E"), // Dark gray
		Foreground: lipgloss.Color("#CDD6F4"), // Light gray
		Muted:      lipgloss.Color("#6C7086"), // Medium gray
		Success:    lipgloss.Color("#A6E3A1"), // Green
		Info:       lipgloss.Color("#89B4FA"), // Light blue
		Warning:    lipgloss.Color("#F9E2AF"), // Yellow
		Moderate:   lipgloss.Color("#FAB387"), // Orange
		Error:      lipgloss.Color("#F38BA8"), // Red
		Border:     lipgloss.Color("#45475A"), // Border gray
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for headers.
	Title lipgloss.Style

	// Subtitle style for secondary headers.
	Subtitle lipgloss.Style

	// Normal style for regular text.
	Normal lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// Selected style for highlighted items.
	Selected lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// Success style for success messages.
	Success lipgloss.Style

	// Warning style for warning messages.
	Warning lipgloss.Style

	// InputField style for input areas.
	InputField lipgloss.Style

	// StatusBar style for the status bar.
	StatusBar lipgloss.Style

	// Help style for help text.
	Help lipgloss.Style

	// Border style for bordered containers.
	Border lipgloss.Style

	// ActiveTab and Tab style the section tabs.
	ActiveTab lipgloss.Style
	Tab       lipgloss.Style

	// status holds one badge style per item status.
	status map[domain.ItemStatus]lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	badge := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Bold(true).Foreground(c)
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(lipgloss.Color("#181825")).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary).
			Padding(0, 1),

		Tab: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		status: map[domain.ItemStatus]lipgloss.Style{
			domain.ItemStatusUntouched: badge(theme.Muted),
			domain.ItemStatusPass:      badge(theme.Success),
			domain.ItemStatusInfo:      badge(theme.Info),
			domain.ItemStatusAttention: badge(theme.Warning),
			domain.ItemStatusModerate:  badge(theme.Moderate),
			domain.ItemStatusDangerous: badge(theme.Error),
		},
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Status returns the badge style for an item status.
// Unknown statuses render like untouched items.
func (s *Styles) Status(status domain.ItemStatus) lipgloss.Style {
	if st, ok := s.status[status]; ok {
		return st
	}
	return s.status[domain.ItemStatusUntouched]
}

// SectionStatus returns the style for a section rollup.
func (s *Styles) SectionStatus(status domain.SectionStatus) lipgloss.Style {
	switch status {
	case domain.SectionStatusCompleted:
		return s.Success
	case domain.SectionStatusInProgress:
		return s.Warning
	default:
		return s.Muted
	}
}

// StatusBadge returns a short fixed-width marker for an item status.
func StatusBadge(status domain.ItemStatus) string {
	switch status {
	case domain.ItemStatusPass:
		return "[PASS]"
	case domain.ItemStatusInfo:
		return "[INFO]"
	case domain.ItemStatusAttention:
		return "[ATTN]"
	case domain.ItemStatusModerate:
		return "[MOD ]"
	case domain.ItemStatusDangerous:
		return "[DANG]"
	default:
		return "[    ]"
	}
}
