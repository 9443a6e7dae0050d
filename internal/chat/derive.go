package chat

import (
	"strings"

	"github.com/dmarques/tlochat/internal/models"
)

// DeriveTitle produces a conversation title from the first sent message.
// Attachment-only sends fall back to the attachment's file name.
func DeriveTitle(text string, att *models.Attachment) string {
	if strings.TrimSpace(text) == "" && att != nil {
		return models.TruncateRunes(att.Name, models.TitleMaxLen)
	}
	return models.TruncateRunes(text, models.TitleMaxLen)
}

// UserPreview renders the sidebar preview for an outgoing message
func UserPreview(text string) string {
	return "You: " + models.TruncateRunes(text, models.PreviewMaxLen) + "..."
}

// AIPreview renders the sidebar preview for an assistant reply.
// Failed replies show an ellipsis instead of the error text.
func AIPreview(reply string, ok bool) string {
	if !ok {
		return "AI: ......"
	}
	return "AI: " + models.TruncateRunes(reply, models.PreviewMaxLen) + "..."
}
