package summary

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	pizza      lipgloss.Style
	detail     lipgloss.Style
	ingredient lipgloss.Style
	total      lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	failure    lipgloss.Style
	turn       lipgloss.Style
	turnMeta   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		pizza:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ingredient: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		total:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("159")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		failure:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		turn:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		turnMeta:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}
