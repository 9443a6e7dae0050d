package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmarques/tlochat/internal/models"
)

// updateConvSelection handles updates while the conversation switcher
// is open
func (m Model) updateConvSelection(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			m.selectingConv = false
			m.convCursor = 0
			m.convFilter = ""

		case "up", "k":
			if n := len(m.filteredConversations()); n > 0 {
				m.convCursor--
				if m.convCursor < 0 {
					m.convCursor = n - 1
				}
			}

		case "down", "j":
			if n := len(m.filteredConversations()); n > 0 {
				m.convCursor++
				if m.convCursor >= n {
					m.convCursor = 0
				}
			}

		case "enter":
			filtered := m.filteredConversations()
			if len(filtered) > 0 && m.convCursor < len(filtered) {
				m.ctrl.SetActive(filtered[m.convCursor].ID)
				m.selectingConv = false
				m.convCursor = 0
				m.convFilter = ""
				m.updateViewport()
				m.viewport.GotoBottom()
			}

		case "backspace":
			if len(m.convFilter) > 0 {
				m.convFilter = m.convFilter[:len(m.convFilter)-1]
				m.convCursor = 0
			}

		default:
			if len(msg.String()) == 1 {
				r := []rune(msg.String())[0]
				if r >= ' ' && r <= '~' {
					m.convFilter += msg.String()
					m.convCursor = 0
				}
			}
		}
	}

	return m, nil
}

func (m Model) filteredConversations() []models.Conversation {
	all := m.ctrl.Store().List()
	if m.convFilter == "" {
		return all
	}

	filter := strings.ToLower(m.convFilter)
	var filtered []models.Conversation
	for _, conv := range all {
		if strings.Contains(strings.ToLower(conv.Title), filter) ||
			strings.Contains(strings.ToLower(conv.Preview), filter) {
			filtered = append(filtered, conv)
		}
	}
	return filtered
}

// renderConvSelector renders the conversation switcher overlay
func (m Model) renderConvSelector() string {
	width := m.width - 8
	if width < 40 {
		width = 40
	}

	var content strings.Builder

	content.WriteString(selectorTitleStyle.Render("💬 Conversations"))
	content.WriteString("\n\n")

	if m.convFilter != "" {
		content.WriteString(inputLabelStyle.Render("🔍 ") + m.convFilter + "_")
		content.WriteString("\n\n")
	}

	filtered := m.filteredConversations()
	if len(filtered) == 0 {
		content.WriteString(hintStyle.Render("  No conversations"))
		content.WriteString("\n")
	} else {
		maxItems := 8
		startIdx := 0
		if m.convCursor >= maxItems {
			startIdx = m.convCursor - maxItems + 1
		}
		endIdx := startIdx + maxItems
		if endIdx > len(filtered) {
			endIdx = len(filtered)
		}

		if startIdx > 0 {
			content.WriteString(hintStyle.Render("  ↑ more above"))
			content.WriteString("\n")
		}

		activeID := m.ctrl.Store().ActiveID()
		for i := startIdx; i < endIdx; i++ {
			conv := filtered[i]
			cursor := "  "
			nameStyle := selectorItemStyle
			if i == m.convCursor {
				cursor = selectorCursorStyle.Render("▸ ")
				nameStyle = selectorSelectedStyle
			}

			marker := ""
			if conv.ID == activeID {
				marker = selectorCursorStyle.Render(" ●")
			}

			line := fmt.Sprintf("%s%s%s", cursor, nameStyle.Render(conv.Title), marker)

			maxPreview := width - len(conv.Title) - 10
			if maxPreview > 10 && conv.Preview != "" {
				preview := conv.Preview
				if len(preview) > maxPreview {
					preview = models.TruncateRunes(preview, maxPreview-3) + "..."
				}
				line += selectorPreviewStyle.Render("  " + preview)
			}

			content.WriteString(line)
			content.WriteString("\n")
		}

		if endIdx < len(filtered) {
			content.WriteString(hintStyle.Render("  ↓ more below"))
			content.WriteString("\n")
		}
	}

	content.WriteString("\n")

	shortcuts := []string{
		statusKeyStyle.Render("↑↓") + statusDescStyle.Render(" Navigate"),
		statusKeyStyle.Render("Enter") + statusDescStyle.Render(" Open"),
		statusKeyStyle.Render("Esc") + statusDescStyle.Render(" Cancel"),
	}
	content.WriteString(strings.Join(shortcuts, "  │  "))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(1, 2).
		Width(width)

	return boxStyle.Render(content.String())
}
