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

// RegenerateRequest is the input to the regenerate flow
type RegenerateRequest struct {
	PreviousResponse string `json:"previousResponse"`
	UserPrompt       string `json:"userPrompt"`
}

// RegenerateResult is the regenerate flow's decision. When
// ShouldRegenerate is false the previous response stands and
// NewResponse is empty.
type RegenerateResult struct {
	ShouldRegenerate bool
	NewResponse      string
}

// Regenerate asks the service for a replacement reply to a previously
// answered prompt
func (c *Client) Regenerate(ctx context.Context, req *RegenerateRequest) (*RegenerateResult, error) {
	if req == nil || req.UserPrompt == "" {
		return nil, apierrors.NewValidationError("userPrompt", "must not be empty")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal regenerate request: %w", err)
	}

	respBody, err := c.doRequest(ctx, fhttp.MethodPost, models.PathRegenerateFlow, "application/json", body)
	if err != nil {
		return nil, err
	}

	parsed := gjson.ParseBytes(respBody)
	should := parsed.Get("shouldRegenerate")
	if !should.Exists() {
		if errMsg := parsed.Get("error"); errMsg.Exists() {
			return nil, apierrors.NewAPIError(0, models.PathRegenerateFlow, errMsg.String())
		}
		return nil, apierrors.NewParseError("no shouldRegenerate field in regenerate flow output", "shouldRegenerate")
	}

	result := &RegenerateResult{
		ShouldRegenerate: should.Bool(),
		NewResponse:      parsed.Get("newResponse").String(),
	}

	// A yes without content is a malformed payload, not a usable answer
	if result.ShouldRegenerate && result.NewResponse == "" {
		return nil, apierrors.NewParseError("shouldRegenerate is true but newResponse is missing", "newResponse")
	}

	return result, nil
}
