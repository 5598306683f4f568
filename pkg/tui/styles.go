package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the demo.
type Styles struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Row     lipgloss.Style
	Empty   lipgloss.Style
	Status  lipgloss.Style
	Spinner lipgloss.Style
}

// DefaultStyles returns the demo palette.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#1a73e8", Dark: "#8ab4f8"}
	muted := lipgloss.AdaptiveColor{Light: "#80868b", Dark: "#6e7681"}
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(primary),
		Header:  lipgloss.NewStyle().Foreground(muted).Italic(true),
		Footer:  lipgloss.NewStyle().Foreground(muted).Italic(true),
		Row:     lipgloss.NewStyle(),
		Empty:   lipgloss.NewStyle().Foreground(muted),
		Status:  lipgloss.NewStyle().Foreground(muted),
		Spinner: lipgloss.NewStyle().Foreground(primary),
	}
}
