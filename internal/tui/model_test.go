package tui

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmarques/tlochat/internal/api"
	"github.com/dmarques/tlochat/internal/chat"
	"github.com/dmarques/tlochat/internal/session"
)

type stubGateway struct{ reply string }

func (s stubGateway) Chat(context.Context, *api.ChatRequest) (string, error) {
	return s.reply, nil
}

type stubRegen struct{}

func (stubRegen) Regenerate(context.Context, *api.RegenerateRequest) (*api.RegenerateResult, error) {
	return &api.RegenerateResult{ShouldRegenerate: false}, nil
}

func newTestModel(t *testing.T) (Model, *chat.Store) {
	t.Helper()
	store := chat.NewStore()
	ctrl := session.NewController(store, stubGateway{reply: "hi"}, stubRegen{}, nil)
	m := NewChatModel(ctrl, nil, t.TempDir(), time.Minute)
	return m, store
}

func sized(m Model) Model {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model)
}

func TestNewChatModel_EnsuresConversation(t *testing.T) {
	_, store := newTestModel(t)
	if len(store.List()) != 1 {
		t.Errorf("conversations = %d, want 1", len(store.List()))
	}
}

func TestView_BeforeReady(t *testing.T) {
	m, _ := newTestModel(t)
	if !strings.Contains(m.View(), "Initializing") {
		t.Errorf("view = %q", m.View())
	}
}

func TestView_WelcomeWhenEmpty(t *testing.T) {
	m, _ := newTestModel(t)
	m = sized(m)
	if !strings.Contains(m.View(), "Welcome to TLO Chat") {
		t.Error("welcome screen not shown")
	}
}

func TestHandleCommand_NewChat(t *testing.T) {
	m, store := newTestModel(t)
	m = sized(m)

	handled, model, _ := m.handleCommand("/new")
	if !handled {
		t.Fatal("'/new' not handled")
	}
	m = model.(Model)
	if len(store.List()) != 2 {
		t.Errorf("conversations = %d, want 2", len(store.List()))
	}
}

func TestHandleCommand_Quit(t *testing.T) {
	m, _ := newTestModel(t)
	for _, input := range []string{"exit", "quit", "/exit", "/quit"} {
		handled, _, cmd := m.handleCommand(input)
		if !handled || cmd == nil {
			t.Errorf("%q should quit", input)
		}
	}
}

func TestHandleCommand_Title(t *testing.T) {
	m, store := newTestModel(t)
	m = sized(m)

	handled, model, _ := m.handleCommand("/title Budget notes")
	if !handled {
		t.Fatal("'/title' not handled")
	}
	m = model.(Model)
	conv, _ := store.Active()
	if conv.Title != "Budget notes" {
		t.Errorf("title = %q", conv.Title)
	}
	if m.notice == "" {
		t.Error("expected a confirmation notice")
	}
}

func TestHandleCommand_Chats(t *testing.T) {
	m, _ := newTestModel(t)
	m = sized(m)

	handled, model, _ := m.handleCommand("/chats")
	if !handled {
		t.Fatal("'/chats' not handled")
	}
	m = model.(Model)
	if !m.selectingConv {
		t.Error("switcher not opened")
	}
	if !strings.Contains(m.View(), "Conversations") {
		t.Error("switcher overlay not rendered")
	}
}

func TestConvSelector_EscCloses(t *testing.T) {
	m, _ := newTestModel(t)
	m = sized(m)
	m.selectingConv = true

	updated, _ := m.updateConvSelection(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	if m.selectingConv {
		t.Error("esc should close the switcher")
	}
}

func TestConvSelector_FilterByTitle(t *testing.T) {
	m, store := newTestModel(t)
	m = sized(m)

	first := store.CreateConversation()
	store.UpdateConversation(first.ID, chat.Patch{Title: titlePtr("Malaria burden")})
	second := store.CreateConversation()
	store.UpdateConversation(second.ID, chat.Patch{Title: titlePtr("Vaccine rollout")})

	m.convFilter = "malaria"
	filtered := m.filteredConversations()
	if len(filtered) != 1 || filtered[0].Title != "Malaria burden" {
		t.Errorf("filtered = %+v", filtered)
	}
}

type blockingGateway struct {
	release chan struct{}
	reply   string
}

func (g blockingGateway) Chat(context.Context, *api.ChatRequest) (string, error) {
	<-g.release
	return g.reply, nil
}

func TestView_ShowsOptimisticMessageWhileLoading(t *testing.T) {
	release := make(chan struct{})
	store := chat.NewStore()
	ctrl := session.NewController(store, blockingGateway{release: release, reply: "done"}, stubRegen{}, nil)
	m := NewChatModel(ctrl, nil, t.TempDir(), time.Minute)
	m = sized(m)
	m.loading = true

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = ctrl.SendMessage(context.Background(), "Hello from a slow network", nil)
	}()

	deadline := time.After(5 * time.Second)
	for {
		conv, _ := store.Active()
		if len(conv.Messages) > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("user message never appended")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	updated, _ := m.Update(animationTickMsg(time.Now()))
	m = updated.(Model)
	if !strings.Contains(m.View(), "Hello from a slow network") {
		t.Error("transcript does not show the user message while the reply is in flight")
	}

	close(release)
	<-done

	updated, _ = m.Update(sendDoneMsg{})
	m = updated.(Model)
	if !strings.Contains(m.View(), "done") {
		t.Error("reply not shown after the exchange settles")
	}
}

func TestConvSelector_TruncatesPreviewRuneSafe(t *testing.T) {
	m, store := newTestModel(t)
	m = sized(m)
	m.selectingConv = true

	conv, _ := store.Active()
	longPreview := "You: " + strings.Repeat("é", 120)
	store.UpdateConversation(conv.ID, chat.Patch{Preview: &longPreview})

	view := m.renderConvSelector()
	if !utf8.ValidString(view) {
		t.Error("selector output contains a split rune")
	}
	if !strings.Contains(view, "...") {
		t.Error("long preview not truncated")
	}
}

func TestAttachFile_RejectsUnsupported(t *testing.T) {
	m, _ := newTestModel(t)
	m = sized(m)

	m.attachFile("notes.pdf")
	if m.err == nil {
		t.Error("pdf should be rejected")
	}
	if m.pendingAttachment != nil {
		t.Error("rejected file must not be staged")
	}
}

func titlePtr(s string) *string { return &s }
