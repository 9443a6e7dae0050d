package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmarques/tlochat/internal/attachment"
	"github.com/dmarques/tlochat/internal/chat"
	"github.com/dmarques/tlochat/internal/config"
	"github.com/dmarques/tlochat/internal/history"
	"github.com/dmarques/tlochat/internal/models"
)

var historyFormatFlag string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage conversation history",
	Long:  `View, search, export, and manage your local conversation history.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all conversations",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a conversation",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historySearchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search conversations by title",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistorySearch,
}

var historyExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a conversation transcript",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryExport,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a conversation",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all conversations",
	RunE:  runHistoryClear,
}

func init() {
	historyExportCmd.Flags().StringVar(&historyFormatFlag, "format", "text", "Export format (text, markdown, json)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historySearchCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyClearCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := history.DefaultStore()
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}

	conversations, err := store.ListConversations()
	if err != nil {
		return fmt.Errorf("failed to list conversations: %w", err)
	}

	return printConversationTable(os.Stdout, conversations)
}

func runHistorySearch(cmd *cobra.Command, args []string) error {
	store, err := history.DefaultStore()
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}

	conversations, err := store.ListConversations()
	if err != nil {
		return fmt.Errorf("failed to list conversations: %w", err)
	}

	term := strings.ToLower(args[0])
	var matched []*models.Conversation
	for _, conv := range conversations {
		if strings.Contains(strings.ToLower(conv.Title), term) {
			matched = append(matched, conv)
		}
	}

	return printConversationTable(os.Stdout, matched)
}

func printConversationTable(out io.Writer, conversations []*models.Conversation) error {
	if len(conversations) == 0 {
		_, _ = fmt.Fprintln(out, "No conversations found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTITLE\tMESSAGES\tUPDATED")
	_, _ = fmt.Fprintln(w, "--\t-----\t--------\t-------")

	for _, conv := range conversations {
		updated := conv.UpdatedAt.Format("2006-01-02 15:04")
		title := conv.Title
		if len(title) > 40 {
			title = models.TruncateRunes(title, 40) + "..."
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			conv.ID, title, len(conv.Messages), updated)
	}

	return w.Flush()
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	store, err := history.DefaultStore()
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}

	conv, err := store.GetConversation(args[0])
	if err != nil {
		return fmt.Errorf("conversation not found: %w", err)
	}

	fmt.Printf("ID: %s\n", conv.ID)
	fmt.Printf("Title: %s\n", conv.Title)
	fmt.Printf("Created: %s\n", conv.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Updated: %s\n", conv.UpdatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Messages: %d\n", len(conv.Messages))
	fmt.Println()

	for i, msg := range conv.Messages {
		role := "You"
		if msg.Author == models.AuthorAI {
			role = "TLO"
		}
		fmt.Printf("[%d] %s (%s):\n", i+1, role, msg.Timestamp)

		if msg.Attachment != nil {
			if data, err := attachment.DecodePayload(msg.Attachment); err == nil {
				fmt.Printf("  📎 %s (%d bytes)\n", msg.Attachment.Name, len(data))
			} else {
				fmt.Printf("  📎 %s\n", msg.Attachment.Name)
			}
		}

		content := msg.Content
		if len(content) > 500 {
			content = content[:500] + "..."
		}
		fmt.Printf("  %s\n\n", content)
	}

	return nil
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	store, err := history.DefaultStore()
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}

	conv, err := store.GetConversation(args[0])
	if err != nil {
		return fmt.Errorf("conversation not found: %w", err)
	}

	var content, ext string
	switch history.ExportFormat(historyFormatFlag) {
	case history.ExportFormatText:
		content = chat.ExportText(conv)
		ext = ".txt"
	case history.ExportFormatMarkdown:
		content, err = store.ExportToMarkdown(conv.ID)
		ext = ".md"
	case history.ExportFormatJSON:
		var data []byte
		data, err = store.ExportToJSON(conv.ID)
		content = string(data)
		ext = ".json"
	default:
		return fmt.Errorf("unknown format: %s", historyFormatFlag)
	}
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := os.MkdirAll(cfg.DownloadDir, 0o755); err != nil {
		return fmt.Errorf("failed to create export dir: %w", err)
	}

	name := chat.ExportFileName(conv)
	name = strings.TrimSuffix(name, ".txt") + ext
	path := filepath.Join(cfg.DownloadDir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	fmt.Printf("Exported to %s\n", path)
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	store, err := history.DefaultStore()
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}

	if err := store.DeleteConversation(args[0]); err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}

	fmt.Printf("Deleted conversation: %s\n", args[0])
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	store, err := history.DefaultStore()
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}

	if err := store.ClearAll(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	fmt.Println("All conversations deleted.")
	return nil
}
