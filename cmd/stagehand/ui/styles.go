// Package ui provides the visual styling for the stagehand wizard.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Light mode colors
	LightForeground = lipgloss.Color("#1a1d23")
	LightPrimary    = lipgloss.Color("#5a3fb8") // stage violet
	LightAccent     = lipgloss.Color("#e8791a") // spotlight amber
	LightMuted      = lipgloss.Color("#8a8f98")
	LightBorder     = lipgloss.Color("#d8dbe0")
	LightCard       = lipgloss.Color("#f5f5f7")

	// Dark mode colors
	DarkForeground = lipgloss.Color("#e8e8ec")
	DarkPrimary    = lipgloss.Color("#a890f0")
	DarkAccent     = lipgloss.Color("#f2a250")
	DarkMuted      = lipgloss.Color("#6b7280")
	DarkBorder     = lipgloss.Color("#34384a")
	DarkCard       = lipgloss.Color("#20232e")

	// Semantic colors, same in both modes
	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#4caf50")
	Warning     = lipgloss.Color("#FFC107")
)

// Theme holds the current color scheme.
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// DetectTheme picks a theme from terminal hints, defaulting to dark.
func DetectTheme() Theme {
	if os.Getenv("STAGEHAND_LIGHT_MODE") == "1" {
		return LightTheme()
	}
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		// Format is usually "foreground;background".
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				if bgIdx >= 7 && bgIdx != 8 {
					return LightTheme()
				}
			}
		}
	}
	return DarkTheme()
}

// Styles holds all the styled components of the wizard.
type Styles struct {
	Theme Theme

	// Layout
	ChatPane      lipgloss.Style
	ChecklistPane lipgloss.Style
	Footer        lipgloss.Style

	// Text
	Title lipgloss.Style
	Muted lipgloss.Style

	// Chat
	UserTurn      lipgloss.Style
	AssistantTurn lipgloss.Style

	// Checklist rows
	RowLabel    lipgloss.Style
	RowValue    lipgloss.Style
	RowEmpty    lipgloss.Style
	RowSelected lipgloss.Style
	RowEditing  lipgloss.Style
	MarkDone    lipgloss.Style
	MarkPending lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Spinner lipgloss.Style
}

// NewStyles creates a Styles instance for the given theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		ChatPane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		ChecklistPane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		UserTurn: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		AssistantTurn: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			PaddingLeft(2).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(theme.Primary),

		RowLabel: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		RowValue: lipgloss.NewStyle().
			Foreground(theme.Primary),

		RowEmpty: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		RowSelected: lipgloss.NewStyle().
			Background(theme.Card).
			Bold(true),

		RowEditing: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		MarkDone: lipgloss.NewStyle().
			Foreground(Success),

		MarkPending: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),
	}
}

// DefaultStyles returns styles with the detected theme.
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}
