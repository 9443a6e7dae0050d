package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmarques/tlochat/internal/attachment"
	apierrors "github.com/dmarques/tlochat/internal/errors"
	"github.com/dmarques/tlochat/internal/models"
	"github.com/dmarques/tlochat/internal/render"
	"github.com/dmarques/tlochat/internal/session"
)

// Animation tick message
type animationTickMsg time.Time

// Message types for the TUI
type (
	sendDoneMsg struct {
		err error
	}
	regenDoneMsg struct {
		err error
	}
	noticeMsg session.Notice
)

// Model represents the chat TUI state
type Model struct {
	ctrl     *session.Controller
	renderer *render.Renderer
	timeout  time.Duration

	downloadDir string

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	loading        bool
	ready          bool
	err            error
	notice         string
	noticeIsError  bool
	animationFrame int

	// Pending attachment for the next send
	pendingAttachment *models.Attachment

	// Conversation switcher state
	selectingConv bool
	convCursor    int
	convFilter    string

	// Dimensions
	width  int
	height int
}

// NewChatModel creates a new chat TUI model
func NewChatModel(ctrl *session.Controller, renderer *render.Renderer, downloadDir string, timeout time.Duration) Model {
	ta := textarea.New()
	ta.Placeholder = "Type your message here..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	ctrl.Store().EnsureActive()

	return Model{
		ctrl:        ctrl,
		renderer:    renderer,
		timeout:     timeout,
		downloadDir: downloadDir,
		textarea:    ta,
		spinner:     s,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if m.selectingConv {
		return m.updateConvSelection(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4
		inputHeight := 6
		statusHeight := 1
		padding := 2

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - padding
		if vpHeight < 5 {
			vpHeight = 5
		}

		contentWidth := m.width - 4

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.textarea.SetWidth(contentWidth - 4)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
			m.textarea.SetWidth(contentWidth - 4)
		}
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.loading {
				m.loading = false
			} else {
				return m, tea.Quit
			}

		case "enter":
			if m.loading {
				break
			}
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" && m.pendingAttachment == nil {
				break
			}
			if handled, model, c := m.handleCommand(input); handled {
				return model, c
			}

			m.textarea.Reset()
			m.err = nil
			m.notice = ""
			m.loading = true
			m.animationFrame = 0

			att := m.pendingAttachment
			m.pendingAttachment = nil

			return m, tea.Batch(
				m.sendMessage(input, att),
				m.spinner.Tick,
				animationTick(),
			)
		}

	case sendDoneMsg:
		m.loading = false
		// Failed sends are already recorded in the conversation; only
		// surface errors that never produced an exchange.
		if msg.err != nil && apierrors.IsValidationError(msg.err) {
			m.err = msg.err
		}
		m.updateViewport()
		m.viewport.GotoBottom()

	case regenDoneMsg:
		m.loading = false
		m.updateViewport()
		m.viewport.GotoBottom()

	case noticeMsg:
		m.notice = msg.Message
		m.noticeIsError = msg.IsError

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.loading {
			m.animationFrame++
			// The exchange mutates the store from its own goroutine;
			// repaint so the optimistic user message and the
			// regenerating label are visible while it runs.
			m.updateViewport()
			m.viewport.GotoBottom()
			cmds = append(cmds, animationTick())
		}
	}

	// Only pass KeyMsg to the textarea to prevent escape sequence leaks
	if !m.loading {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleCommand intercepts slash commands typed into the input
func (m Model) handleCommand(input string) (bool, tea.Model, tea.Cmd) {
	switch {
	case input == "exit" || input == "quit" || input == "/exit" || input == "/quit":
		return true, m, tea.Quit

	case input == "/new":
		m.textarea.Reset()
		m.ctrl.NewChat()
		m.pendingAttachment = nil
		m.notice = ""
		m.err = nil
		m.updateViewport()
		return true, m, nil

	case input == "/clear":
		m.textarea.Reset()
		if err := m.ctrl.ClearConversation(m.ctrl.Store().ActiveID()); err != nil {
			m.err = err
		}
		m.updateViewport()
		return true, m, nil

	case strings.HasPrefix(input, "/title "):
		m.textarea.Reset()
		title := strings.TrimPrefix(input, "/title ")
		if err := m.ctrl.RenameConversation(m.ctrl.Store().ActiveID(), title); err != nil {
			m.err = err
		} else {
			m.notice = "Conversation renamed"
			m.noticeIsError = false
		}
		return true, m, nil

	case input == "/export":
		m.textarea.Reset()
		m.exportActive()
		return true, m, nil

	case strings.HasPrefix(input, "/attach "):
		m.textarea.Reset()
		m.attachFile(strings.TrimSpace(strings.TrimPrefix(input, "/attach ")))
		return true, m, nil

	case input == "/regen":
		m.textarea.Reset()
		m.err = nil
		m.notice = ""
		if cmd := m.regenerateLast(); cmd != nil {
			m.loading = true
			m.animationFrame = 0
			return true, m, tea.Batch(cmd, m.spinner.Tick, animationTick())
		}
		return true, m, nil

	case input == "/chats":
		m.textarea.Reset()
		m.selectingConv = true
		m.convCursor = 0
		m.convFilter = ""
		return true, m, nil
	}

	return false, m, nil
}

// exportActive writes the active conversation transcript to the
// download directory
func (m *Model) exportActive() {
	name, content, err := m.ctrl.ExportConversation(m.ctrl.Store().ActiveID())
	if err != nil {
		m.err = err
		return
	}
	if err := os.MkdirAll(m.downloadDir, 0o755); err != nil {
		m.err = err
		return
	}
	path := filepath.Join(m.downloadDir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		m.err = err
		return
	}
	m.notice = "Exported to " + path
	m.noticeIsError = false
}

// attachFile stages a file for the next send
func (m *Model) attachFile(path string) {
	if path == "" {
		m.err = apierrors.NewValidationError("path", "usage: /attach <file>")
		return
	}
	if kind := models.KindOf("", path); kind != models.KindPlainText && kind != models.KindWordDocument {
		m.err = apierrors.NewValidationError("file", "only .txt and .docx files are supported")
		return
	}
	att, err := attachment.EncodeFile(path)
	if err != nil {
		m.err = err
		return
	}
	m.pendingAttachment = att
	m.err = nil
	m.notice = "Attached " + att.Name
	m.noticeIsError = false
}

// regenerateLast regenerates the newest assistant reply, when there is
// one worth regenerating
func (m *Model) regenerateLast() tea.Cmd {
	conv, ok := m.ctrl.Store().Active()
	if !ok {
		return nil
	}
	for i := len(conv.Messages) - 1; i >= 0; i-- {
		msg := conv.Messages[i]
		if msg.CanRegenerate() {
			convID, msgID := conv.ID, msg.ID
			return func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
				defer cancel()
				return regenDoneMsg{err: m.ctrl.Regenerate(ctx, convID, msgID)}
			}
		}
	}
	m.notice = "Nothing to regenerate"
	m.noticeIsError = false
	return nil
}

// sendMessage creates a command that performs the exchange
func (m Model) sendMessage(text string, att *models.Attachment) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		return sendDoneMsg{err: m.ctrl.SendMessage(ctx, text, att)}
	}
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	if m.selectingConv {
		return m.renderConvSelector()
	}

	var sections []string
	contentWidth := m.width - 4

	conv, _ := m.ctrl.Store().Active()
	headerParts := []string{
		titleStyle.Render("✦ TLO Chat"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(conv.Title),
	}
	headerContent := lipgloss.JoinHorizontal(lipgloss.Center, headerParts...)
	sections = append(sections, headerStyle.Width(contentWidth).Render(headerContent))

	var messagesContent string
	if len(conv.Messages) == 0 {
		messagesContent = m.renderWelcome()
	} else {
		messagesContent = m.viewport.View()
	}
	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent))

	var inputContent string
	if m.loading {
		inputContent = m.renderLoadingAnimation()
	} else {
		label := inputLabelStyle.Render("You")
		if m.pendingAttachment != nil {
			label += attachmentTagStyle.Render("  📎 " + m.pendingAttachment.Name)
		}
		inputContent = lipgloss.JoinVertical(
			lipgloss.Left,
			label,
			m.textarea.View(),
		)
	}
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))

	sections = append(sections, m.renderStatusBar(contentWidth))

	if m.err != nil {
		sections = append(sections, errorStyle.Render(fmt.Sprintf("⚠ Error: %v", m.err)))
	} else if m.notice != "" {
		style := noticeStyle
		if m.noticeIsError {
			style = errorStyle
		}
		sections = append(sections, style.Render("• "+m.notice))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	title := welcomeTitleStyle.Width(width).Render("Welcome to TLO Chat")
	subtitle := welcomeStyle.Width(width).Render("Start a new conversation")
	hints := welcomeStyle.Width(width).Render("/new  /chats  /attach <file>  /export")

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		"",
		title,
		"",
		subtitle,
		"",
		hints,
		"",
	)

	contentHeight := lipgloss.Height(content)
	topPadding := (height - contentHeight) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	return strings.Repeat("\n", topPadding) + content
}

// renderLoadingAnimation renders the animated thinking indicator
func (m Model) renderLoadingAnimation() string {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}
	barChars := []string{"█", "█", "█", "█", "█", "█", "█", "█", "▓", "▒", "░"}

	frame := m.animationFrame

	spinIdx := frame % len(chars)
	spinColor := gradientColors[frame%len(gradientColors)]
	spin := lipgloss.NewStyle().Foreground(spinColor).Bold(true).Render(chars[spinIdx])

	barWidth := 20
	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		colorIdx := (i + frame) % len(gradientColors)
		charIdx := (i + frame/2) % len(barChars)
		style := lipgloss.NewStyle().Foreground(gradientColors[colorIdx])
		bar.WriteString(style.Render(barChars[charIdx]))
	}

	dots := ""
	numDots := (frame / 3) % 4
	for i := 0; i < numDots; i++ {
		dotColor := gradientColors[(frame+i)%len(gradientColors)]
		dots += lipgloss.NewStyle().Foreground(dotColor).Render("●")
	}
	for i := numDots; i < 3; i++ {
		dots += lipgloss.NewStyle().Foreground(colorTextMute).Render("○")
	}

	text := lipgloss.NewStyle().Foreground(colorText).Render(" TLO is thinking ")

	return fmt.Sprintf("%s %s %s %s", spin, bar.String(), text, dots)
}

func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"/chats", "Switch"},
		{"/regen", "Retry"},
		{"Esc", "Quit"},
	}

	var items []string
	for _, s := range shortcuts {
		item := lipgloss.JoinHorizontal(
			lipgloss.Center,
			statusKeyStyle.Render(s.key),
			statusDescStyle.Render(" "+s.desc),
		)
		items = append(items, item)
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(items, "  │  "))
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// updateViewport refreshes the viewport content from the active
// conversation
func (m *Model) updateViewport() {
	conv, ok := m.ctrl.Store().Active()
	if !ok {
		m.viewport.SetContent("")
		return
	}

	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6

	for i := range conv.Messages {
		msg := &conv.Messages[i]
		if i > 0 {
			content.WriteString("\n")
		}

		ts := timestampStyle.Render(" " + msg.Timestamp)
		if msg.Author == models.AuthorUser {
			label := userLabelStyle.Render("⬤ You") + ts
			if msg.Attachment != nil {
				label += attachmentTagStyle.Render("  📎 " + msg.Attachment.Name)
			}
			bubble := userBubbleStyle.Width(bubbleWidth).Render(msg.Content)
			content.WriteString(label + "\n" + bubble)
		} else {
			label := assistantLabelStyle.Render("✦ TLO") + ts
			if msg.Regenerating {
				label += noticeStyle.Render("  regenerating...")
			}

			rendered := msg.Content
			if m.renderer != nil {
				rendered = m.renderer.Render(msg.Content)
			}
			bubble := assistantBubbleStyle.Width(bubbleWidth).Render(rendered)
			content.WriteString(label + "\n" + bubble)
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}
