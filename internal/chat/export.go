package chat

import (
	"strings"

	"github.com/dmarques/tlochat/internal/models"
)

// ExportText serializes a conversation as line-oriented plain text,
// one "[timestamp] AUTHOR: content" line per message in list order.
// Purely derived; no state is touched.
func ExportText(conv *models.Conversation) string {
	lines := make([]string, 0, len(conv.Messages))
	for i := range conv.Messages {
		msg := &conv.Messages[i]
		lines = append(lines, "["+msg.Timestamp+"] "+strings.ToUpper(string(msg.Author))+": "+msg.Content)
	}
	return strings.Join(lines, "\n")
}

// ExportFileName derives the download file name for a conversation
func ExportFileName(conv *models.Conversation) string {
	title := conv.Title
	if title == "" {
		title = models.DefaultTitle
	}
	return strings.ReplaceAll(title, " ", "_") + ".txt"
}
