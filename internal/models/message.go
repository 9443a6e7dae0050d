package models

// Author identifies who wrote a message.
type Author string

const (
	AuthorUser Author = "user"
	AuthorAI   Author = "ai"
)

// HistoryRole returns the role tag used by the chat flow API.
// User turns map to "user", assistant turns map to "model".
func (a Author) HistoryRole() string {
	if a == AuthorUser {
		return "user"
	}
	return "model"
}

// Message represents a single authored turn within a conversation
type Message struct {
	ID         string `json:"id"`
	Author     Author `json:"author"`
	Content    string `json:"content"`
	Timestamp  string `json:"timestamp"` // display time, e.g. "10:30"
	UserPrompt string `json:"user_prompt,omitempty"`

	// Regenerating is set while a replacement reply is in flight.
	// Transient UI state, never persisted.
	Regenerating bool `json:"-"`

	Attachment *Attachment `json:"attachment,omitempty"`
}

// CanRegenerate reports whether this message is eligible for regeneration.
// Only assistant messages that remember their originating prompt qualify.
func (m *Message) CanRegenerate() bool {
	return m.Author == AuthorAI && m.UserPrompt != ""
}
