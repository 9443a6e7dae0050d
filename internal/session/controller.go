// Package session coordinates chat state transitions with the remote
// service: sending messages, regenerating replies, and the
// conversation lifecycle around them.
package session

import (
	"context"
	"strings"

	"github.com/dmarques/tlochat/internal/api"
	"github.com/dmarques/tlochat/internal/chat"
	apierrors "github.com/dmarques/tlochat/internal/errors"
	"github.com/dmarques/tlochat/internal/models"
)

// ErrorReplyPrefix opens the assistant message recorded when a send fails
const ErrorReplyPrefix = "Sorry, something went wrong. "

// RegenerateFailedNotice is surfaced when no better response is available
const RegenerateFailedNotice = "Could not regenerate a better response."

// ChatGateway sends a message with history to the service
type ChatGateway interface {
	Chat(ctx context.Context, req *api.ChatRequest) (string, error)
}

// RegenerateGateway asks the service for a replacement reply
type RegenerateGateway interface {
	Regenerate(ctx context.Context, req *api.RegenerateRequest) (*api.RegenerateResult, error)
}

// Controller drives a chat session. State lives in the store; the
// controller owns the transitions that involve the service. Methods
// block until the exchange completes, so callers run them off the UI
// goroutine.
type Controller struct {
	store      *chat.Store
	gateway    ChatGateway
	regenerate RegenerateGateway
	notifier   Notifier
}

// NewController wires a controller over the given store and gateways.
// A nil notifier is replaced with a no-op.
func NewController(store *chat.Store, gateway ChatGateway, regen RegenerateGateway, notifier Notifier) *Controller {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Controller{
		store:      store,
		gateway:    gateway,
		regenerate: regen,
		notifier:   notifier,
	}
}

// Store exposes the underlying session store
func (c *Controller) Store() *chat.Store {
	return c.store
}

// NewChat starts a fresh conversation and makes it active
func (c *Controller) NewChat() models.Conversation {
	return c.store.CreateConversation()
}

// SetActive switches the active conversation
func (c *Controller) SetActive(conversationID string) {
	c.store.SetActive(conversationID)
}

// SendMessage records the user's message, sends it with the prior
// history, and records the assistant's reply. A failed exchange is
// recorded too: every send leaves exactly one user message and one
// assistant message, whatever the outcome. The returned error reflects
// the exchange; conversation state is already settled either way.
func (c *Controller) SendMessage(ctx context.Context, text string, att *models.Attachment) error {
	if strings.TrimSpace(text) == "" && att == nil {
		return apierrors.ErrEmptyMessage
	}

	conv := c.store.EnsureActive()
	convID := conv.ID

	c.store.BeginSend(convID)
	defer c.store.EndSend(convID)

	// History is the conversation as it stood before this message.
	history := api.BuildHistory(conv.Messages)

	userMsg := models.Message{
		ID:         c.store.NewMessageID(),
		Author:     models.AuthorUser,
		Content:    text,
		Timestamp:  c.store.Now().Format(models.TimestampLayout),
		Attachment: att,
	}
	c.store.AppendMessage(convID, userMsg)

	patch := chat.Patch{Preview: strptr(chat.UserPreview(text))}
	if conv.Untitled() {
		patch.Title = strptr(chat.DeriveTitle(text, att))
	}
	c.store.UpdateConversation(convID, patch)

	reply, err := c.gateway.Chat(ctx, &api.ChatRequest{
		Message:    text,
		History:    history,
		Attachment: api.BuildAttachmentPayload(att),
	})

	aiMsg := models.Message{
		ID:         c.store.NewMessageID(),
		Author:     models.AuthorAI,
		Timestamp:  c.store.Now().Format(models.TimestampLayout),
		UserPrompt: text,
	}
	if err != nil {
		aiMsg.Content = ErrorReplyPrefix + err.Error()
	} else {
		aiMsg.Content = reply
	}

	// The exchange belongs to the conversation it started in, even if
	// the user switched away while it was in flight.
	c.store.AppendMessage(convID, aiMsg)
	c.store.UpdateConversation(convID, chat.Patch{Preview: strptr(chat.AIPreview(reply, err == nil))})

	return err
}

// Regenerate replaces an assistant reply with a better one when the
// service offers it. Only assistant messages that remember their
// prompt qualify; anything else is a silent no-op. Regeneration is
// refused while the conversation has a send in flight.
func (c *Controller) Regenerate(ctx context.Context, conversationID, messageID string) error {
	conv, ok := c.store.Get(conversationID)
	if !ok {
		return nil
	}
	idx := conv.FindMessage(messageID)
	if idx < 0 {
		return nil
	}
	msg := conv.Messages[idx]
	if !msg.CanRegenerate() {
		return nil
	}
	if c.store.SendPending(conversationID) {
		c.notifier.Notify(Notice{Title: "Busy", Message: "Wait for the current response to finish.", IsError: true})
		return apierrors.ErrSendInFlight
	}

	if !c.store.SetRegenerating(conversationID, messageID, true) {
		return nil
	}
	defer c.store.SetRegenerating(conversationID, messageID, false)

	result, err := c.regenerate.Regenerate(ctx, &api.RegenerateRequest{
		PreviousResponse: msg.Content,
		UserPrompt:       msg.UserPrompt,
	})
	if err != nil {
		c.notifier.Notify(Notice{Title: "Regeneration Failed", Message: RegenerateFailedNotice, IsError: true})
		return err
	}
	if !result.ShouldRegenerate {
		c.notifier.Notify(Notice{Title: "No Change", Message: RegenerateFailedNotice})
		return nil
	}

	c.store.ReplaceMessageContent(conversationID, messageID, result.NewResponse)
	c.store.UpdateConversation(conversationID, chat.Patch{Preview: strptr(chat.AIPreview(result.NewResponse, true))})
	return nil
}

// ClearConversation empties a conversation's messages. The title
// stays. Clearing an already empty conversation is fine.
func (c *Controller) ClearConversation(conversationID string) error {
	if _, ok := c.store.Get(conversationID); !ok {
		return apierrors.ErrConversationNotFound
	}
	empty := []models.Message{}
	c.store.UpdateConversation(conversationID, chat.Patch{
		Messages: &empty,
		Preview:  strptr(chat.ClearedPreview),
	})
	return nil
}

// RenameConversation sets a conversation's title. Blank titles are
// rejected.
func (c *Controller) RenameConversation(conversationID, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return apierrors.NewValidationError("title", "must not be empty")
	}
	if _, ok := c.store.Get(conversationID); !ok {
		return apierrors.ErrConversationNotFound
	}
	c.store.UpdateConversation(conversationID, chat.Patch{Title: &title})
	return nil
}

// ExportConversation renders a conversation as a text transcript and
// the file name it should be saved under
func (c *Controller) ExportConversation(conversationID string) (fileName, content string, err error) {
	conv, ok := c.store.Get(conversationID)
	if !ok {
		return "", "", apierrors.ErrConversationNotFound
	}
	return chat.ExportFileName(&conv), chat.ExportText(&conv), nil
}

func strptr(s string) *string { return &s }
