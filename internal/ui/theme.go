package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the panel.
type Theme struct {
	Name string

	Background string
	Surface    string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Accent  string
	Success string
	Warning string
	Danger  string
}

// Styles holds the lipgloss styles derived from a theme. Built once per
// theme change, not per frame.
type Styles struct {
	Tab       lipgloss.Style
	TabActive lipgloss.Style

	Header    lipgloss.Style
	StatusBar lipgloss.Style
	Panel     lipgloss.Style

	Text    lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style

	Selected lipgloss.Style
	Queued   lipgloss.Style
}

// Styles returns the lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),
		TabActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true).
			Padding(0, 1),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)),
		StatusBar: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),

		Text:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)),

		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)).
			Background(lipgloss.Color(t.Border)).
			Bold(true),
		Queued: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),
	}
}

var themes = []Theme{
	{
		Name:        "Void",
		Background:  "#0b0b12",
		Surface:     "#1a1a26",
		Border:      "#33334d",
		BorderFocus: "#7f5af0",
		Text:        "#e8e8f0",
		Muted:       "#8a8aa3",
		Accent:      "#7f5af0",
		Success:     "#2cb67d",
		Warning:     "#ffb454",
		Danger:      "#ef4565",
	},
	{
		Name:        "Slate",
		Background:  "#111418",
		Surface:     "#1d2329",
		Border:      "#3a4450",
		BorderFocus: "#61afef",
		Text:        "#d7dde4",
		Muted:       "#7c8894",
		Accent:      "#61afef",
		Success:     "#98c379",
		Warning:     "#e5c07b",
		Danger:      "#e06c75",
	},
}

// ThemeByName returns the named theme, falling back to the first theme
// when the name is unknown. Matching is exact; preference files carry
// the canonical name.
func ThemeByName(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// NextTheme cycles to the theme after the named one.
func NextTheme(name string) Theme {
	for i, t := range themes {
		if t.Name == name {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}
