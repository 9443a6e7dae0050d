package api

import (
	"context"
	"encoding/json"
	"fmt"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/dmarques/tlochat/internal/errors"
	"github.com/dmarques/tlochat/internal/models"
)

// HistoryPart is one text fragment of a history turn
type HistoryPart struct {
	Text string `json:"text"`
}

// HistoryTurn is a role-tagged entry of prior conversation history
type HistoryTurn struct {
	Role    string        `json:"role"` // "user" or "model"
	Content []HistoryPart `json:"content"`
}

// AttachmentPayload is the wire form of a message attachment
type AttachmentPayload struct {
	DataURI     string `json:"dataUri"`
	ContentType string `json:"contentType"`
}

// ChatRequest is the input to the chat flow
type ChatRequest struct {
	Message    string             `json:"message"`
	History    []HistoryTurn      `json:"history"`
	Attachment *AttachmentPayload `json:"attachment,omitempty"`
}

// BuildHistory translates conversation messages into the role-tagged
// sequence the flow expects: user turns become "user", assistant turns
// become "model"
func BuildHistory(messages []models.Message) []HistoryTurn {
	history := make([]HistoryTurn, 0, len(messages))
	for i := range messages {
		msg := &messages[i]
		history = append(history, HistoryTurn{
			Role:    msg.Author.HistoryRole(),
			Content: []HistoryPart{{Text: msg.Content}},
		})
	}
	return history
}

// BuildAttachmentPayload converts an attachment to its wire form
func BuildAttachmentPayload(att *models.Attachment) *AttachmentPayload {
	if att == nil {
		return nil
	}
	return &AttachmentPayload{
		DataURI:     att.Data,
		ContentType: att.Type,
	}
}

// Chat invokes the chat flow and returns the assistant's reply text
func (c *Client) Chat(ctx context.Context, req *ChatRequest) (string, error) {
	if req == nil || req.Message == "" && req.Attachment == nil {
		return "", apierrors.NewValidationError("message", "must not be empty without an attachment")
	}
	if req.History == nil {
		req.History = []HistoryTurn{}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	respBody, err := c.doRequest(ctx, fhttp.MethodPost, models.PathChatFlow, "application/json", body)
	if err != nil {
		return "", err
	}

	parsed := gjson.ParseBytes(respBody)
	response := parsed.Get("response")
	if !response.Exists() {
		if errMsg := parsed.Get("error"); errMsg.Exists() {
			return "", apierrors.NewAPIError(0, models.PathChatFlow, errMsg.String())
		}
		return "", apierrors.NewParseError("no response field in chat flow output", "response")
	}

	return response.String(), nil
}
