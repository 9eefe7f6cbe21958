package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7aa2f7"))
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e0af68"))
	invalidStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89"))
	periodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a"))
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f7768e"))
	helpStyle     = mutedStyle.Italic(true)
	confirmStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e0af68"))
	unsetImageTxt = mutedStyle.Render("(no image)")
)

func cursor(selected bool) string {
	if selected {
		return cursorStyle.Render(">")
	}
	return " "
}
