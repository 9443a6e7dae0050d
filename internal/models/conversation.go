package models

import "time"

// DefaultTitle is the sentinel title of a conversation before its first message
const DefaultTitle = "New Chat"

// TitleMaxLen is the number of runes of the first message used as the title
const TitleMaxLen = 30

// PreviewMaxLen is the number of runes of a message shown in previews
const PreviewMaxLen = 30

// Conversation is an ordered thread of messages between the user and the
// assistant. Messages appear in insertion order and are never reordered.
type Conversation struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Preview  string    `json:"preview"`
	Messages []Message `json:"messages"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FindMessage returns the index of the message with the given id, or -1
func (c *Conversation) FindMessage(id string) int {
	for i := range c.Messages {
		if c.Messages[i].ID == id {
			return i
		}
	}
	return -1
}

// Untitled reports whether the conversation still carries the sentinel title
func (c *Conversation) Untitled() bool {
	return c.Title == DefaultTitle
}

// TruncateRunes cuts s to at most n runes
func TruncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
