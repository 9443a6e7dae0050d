// Package tui provides the terminal user interface for tlochat.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	colorPrimary  = lipgloss.Color("#54a0ff")
	colorAccent   = lipgloss.Color("#1dd1a1")
	colorWarning  = lipgloss.Color("#feca57")
	colorError    = lipgloss.Color("#ff6b6b")
	colorBorder   = lipgloss.Color("#3a3f4b")
	colorText     = lipgloss.Color("#e8e8e8")
	colorTextDim  = lipgloss.Color("#9a9fa8")
	colorTextMute = lipgloss.Color("#5c616b")
)

var (
	headerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	hintStyle = lipgloss.NewStyle().
			Foreground(colorTextMute)

	messagesAreaStyle = lipgloss.NewStyle().
				Padding(0, 1)

	userLabelStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	userBubbleStyle = lipgloss.NewStyle().
			Foreground(colorText).
			PaddingLeft(2)

	assistantLabelStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	assistantBubbleStyle = lipgloss.NewStyle().
				PaddingLeft(2)

	attachmentTagStyle = lipgloss.NewStyle().
				Foreground(colorWarning)

	timestampStyle = lipgloss.NewStyle().
			Foreground(colorTextMute)

	inputPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	inputLabelStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	loadingStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorTextMute)

	statusKeyStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	statusDescStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	welcomeStyle = lipgloss.NewStyle().
			Foreground(colorTextDim).
			Align(lipgloss.Center)

	welcomeTitleStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true).
				Align(lipgloss.Center)

	selectorTitleStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	selectorItemStyle = lipgloss.NewStyle().
				Foreground(colorText)

	selectorSelectedStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	selectorCursorStyle = lipgloss.NewStyle().
				Foreground(colorAccent)

	selectorPreviewStyle = lipgloss.NewStyle().
				Foreground(colorTextMute)
)

// Gradient colors for the loading animation
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#ff6b6b"),
	lipgloss.Color("#feca57"),
	lipgloss.Color("#48dbfb"),
	lipgloss.Color("#ff9ff3"),
	lipgloss.Color("#54a0ff"),
	lipgloss.Color("#5f27cd"),
	lipgloss.Color("#00d2d3"),
	lipgloss.Color("#1dd1a1"),
}
