package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorPrimary  = "#5A9BD4"
	colorSuccess  = "#04B575"
	colorWarn     = "#D4A017"
	colorError    = "#D95555"
	colorCritical = "#FF2D2D"
	colorMuted    = "#626262"
	colorActive   = "#FAFAFA"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorPrimary)).
			MarginBottom(1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted)).
			Padding(0, 1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorActive)).
			Background(lipgloss.Color(colorPrimary)).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorMuted))

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorActive)).
			Background(lipgloss.Color(colorPrimary))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorError))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorSuccess))

	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorWarn))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorPrimary)).
			Padding(0, 1)
)

func statusStyle(status string) lipgloss.Style {
	switch status {
	case "COMPLETED":
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorSuccess))
	case "FAILED":
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorError))
	case "PROCESSING":
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorWarn))
	default:
		return mutedStyle
	}
}

func riskStyle(level string) lipgloss.Style {
	switch level {
	case "CRITICAL":
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorCritical))
	case "HIGH":
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorError))
	case "MEDIUM":
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorWarn))
	default:
		return mutedStyle
	}
}
