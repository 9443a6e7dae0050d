package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmarques/tlochat/internal/chat"
	"github.com/dmarques/tlochat/internal/render"
	"github.com/dmarques/tlochat/internal/session"
)

// RunChat starts the interactive chat TUI. Controller notices are
// forwarded into the program as toast messages.
func RunChat(store *chat.Store, gateway session.ChatGateway, regen session.RegenerateGateway, renderer *render.Renderer, downloadDir string, timeout time.Duration) error {
	var p *tea.Program

	ctrl := session.NewController(store, gateway, regen, session.NotifierFunc(func(n session.Notice) {
		if p != nil {
			p.Send(noticeMsg(n))
		}
	}))

	m := NewChatModel(ctrl, renderer, downloadDir, timeout)
	p = tea.NewProgram(m, tea.WithAltScreen())

	_, err := p.Run()
	return err
}
