package tui

import "github.com/charmbracelet/lipgloss"

// Colors defines the color palette for the TUI.
var Colors = struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
	Success   lipgloss.Color
	Text      lipgloss.Color
}{
	Primary:   lipgloss.Color("#6C5CE7"), // Purple
	Secondary: lipgloss.Color("#A29BFE"), // Lavender
	Muted:     lipgloss.Color("#636E72"), // Gray
	Error:     lipgloss.Color("#D63031"), // Red
	Success:   lipgloss.Color("#00B894"), // Green
	Text:      lipgloss.Color("#DFE6E9"), // Light gray
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	App    lipgloss.Style
	Header lipgloss.Style
	Today  lipgloss.Style

	// Timeline rows
	Period      lipgloss.Style
	Origin      lipgloss.Style
	Duration    lipgloss.Style
	Description lipgloss.Style
	Tag         lipgloss.Style

	Footer   lipgloss.Style
	Empty    lipgloss.Style
	ErrorMsg lipgloss.Style
}

// DefaultStyles returns the default styles for the TUI.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary).
			MarginBottom(1),

		Today: lipgloss.NewStyle().
			Foreground(Colors.Success),

		Period: lipgloss.NewStyle().
			Foreground(Colors.Text).
			Width(15),

		Origin: lipgloss.NewStyle().
			Foreground(Colors.Secondary).
			Italic(true).
			Width(14),

		Duration: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Width(7).
			Align(lipgloss.Right).
			MarginRight(2),

		Description: lipgloss.NewStyle().
			Foreground(Colors.Text),

		Tag: lipgloss.NewStyle().
			Foreground(Colors.Primary),

		Footer: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			MarginTop(1),

		Empty: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Italic(true),

		ErrorMsg: lipgloss.NewStyle().
			Foreground(Colors.Error).
			Bold(true),
	}
}
