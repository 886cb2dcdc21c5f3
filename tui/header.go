package tui

import "github.com/charmbracelet/lipgloss"

// renderHeader draws the title bar with the "new food" trigger. The
// trigger itself is bound to keys.New.
func renderHeader(width int) string {
	title := headerStyle.Render("food catalog")
	trigger := triggerStyle.Render("+ new food (n)")

	gap := width - lipgloss.Width(title) - lipgloss.Width(trigger)
	if gap < 1 {
		gap = 1
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, lipgloss.NewStyle().Width(gap).Render(""), trigger)
}
