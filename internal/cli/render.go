package cli

import "github.com/charmbracelet/lipgloss"

// headerColor is the accent used for table headers.
func headerColor() lipgloss.Color { return lipgloss.Color("39") }

// modifiedColor marks values changed from their defaults.
func modifiedColor() lipgloss.Color { return lipgloss.Color("214") }

func headerStyle(s string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(headerColor()).Render(s)
}

func modifiedStyle(s string) string {
	return lipgloss.NewStyle().Foreground(modifiedColor()).Render(s)
}
