package history

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmarques/tlochat/internal/models"
)

// ExportFormat selects the output format for saved conversations
type ExportFormat string

const (
	ExportFormatText     ExportFormat = "text"
	ExportFormatMarkdown ExportFormat = "markdown"
	ExportFormatJSON     ExportFormat = "json"
)

// ExportToMarkdown renders a saved conversation as Markdown
func (s *Store) ExportToMarkdown(id string) (string, error) {
	conv, err := s.GetConversation(id)
	if err != nil {
		return "", err
	}

	var sb strings.Builder

	sb.WriteString("# ")
	sb.WriteString(conv.Title)
	sb.WriteString("\n\n")

	sb.WriteString("**Created:** ")
	sb.WriteString(conv.CreatedAt.Format("2006-01-02 15:04:05"))
	sb.WriteString("\n")
	sb.WriteString("**Updated:** ")
	sb.WriteString(conv.UpdatedAt.Format("2006-01-02 15:04:05"))
	sb.WriteString("\n")
	sb.WriteString("**Messages:** ")
	sb.WriteString(fmt.Sprintf("%d", len(conv.Messages)))
	sb.WriteString("\n\n---\n\n")

	for i := range conv.Messages {
		msg := &conv.Messages[i]

		role := "User"
		if msg.Author == models.AuthorAI {
			role = "Assistant"
		}

		sb.WriteString("## ")
		sb.WriteString(role)
		if msg.Timestamp != "" {
			sb.WriteString(" (")
			sb.WriteString(msg.Timestamp)
			sb.WriteString(")")
		}
		sb.WriteString("\n\n")

		if msg.Attachment != nil {
			sb.WriteString("*Attachment: ")
			sb.WriteString(msg.Attachment.Name)
			sb.WriteString("*\n\n")
		}

		sb.WriteString(msg.Content)
		sb.WriteString("\n")

		if i < len(conv.Messages)-1 {
			sb.WriteString("\n---\n\n")
		}
	}

	return sb.String(), nil
}

// ExportToJSON renders a saved conversation as indented JSON.
// Attachment payloads are stripped; exports are for reading, not replay.
func (s *Store) ExportToJSON(id string) ([]byte, error) {
	conv, err := s.GetConversation(id)
	if err != nil {
		return nil, err
	}

	out := *conv
	out.Messages = append([]models.Message{}, conv.Messages...)
	for i := range out.Messages {
		if out.Messages[i].Attachment != nil {
			att := *out.Messages[i].Attachment
			att.Data = ""
			out.Messages[i].Attachment = &att
		}
	}

	return json.MarshalIndent(&out, "", "  ")
}
