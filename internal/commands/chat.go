package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmarques/tlochat/internal/chat"
	"github.com/dmarques/tlochat/internal/history"
	"github.com/dmarques/tlochat/internal/models"
	"github.com/dmarques/tlochat/internal/render"
	"github.com/dmarques/tlochat/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat session with the TLO assistant.

Conversations are saved to local history and restored on the next run.
Type 'exit', 'quit', or press Ctrl+C to end the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

func runChat() error {
	client, cfg, err := newServiceClient()
	if err != nil {
		return err
	}

	historyStore, err := history.DefaultStore()
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}

	store := chat.NewStore(chat.WithPersister(historyStore))
	if saved, err := historyStore.ListConversations(); err == nil && len(saved) > 0 {
		restored := make([]models.Conversation, 0, len(saved))
		for _, conv := range saved {
			restored = append(restored, *conv)
		}
		store.Restore(restored)
	}

	renderer, err := render.NewRenderer(cfg.MarkdownStyle, 76)
	if err != nil {
		renderer = nil
	}

	timeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	return tui.RunChat(store, client, client, renderer, cfg.DownloadDir, timeout)
}
