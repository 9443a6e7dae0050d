// Package api implements the HTTP gateways to the hosted TLO chat service.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"

	apierrors "github.com/dmarques/tlochat/internal/errors"
	"github.com/dmarques/tlochat/internal/models"
)

// Client talks to the chat service flows and the knowledge-base
// file collection. Safe for concurrent use.
type Client struct {
	httpClient tls_client.HttpClient
	baseURL    string
	apiKey     string
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithHTTPClient injects a pre-built HTTP client (used by tests)
func WithHTTPClient(hc tls_client.HttpClient) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a client for the service at baseURL.
// timeout bounds every request end to end.
func NewClient(baseURL, apiKey string, timeout time.Duration, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		baseURL = models.DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(int(timeout.Seconds())),
			tls_client.WithClientProfile(profiles.Chrome_120),
			tls_client.WithNotFollowRedirects(),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// BaseURL returns the configured service root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest performs an HTTP request and returns the response body.
// Non-200 responses and transport failures map onto the error taxonomy.
func (c *Client) doRequest(ctx context.Context, method, path, contentType string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := fhttp.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.apiKey != "" {
		req.Header.Set(models.APIKeyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded || apierrors.IsTimeoutError(err) {
			return nil, apierrors.NewTimeoutError(path)
		}
		if strings.Contains(strings.ToLower(err.Error()), "timeout") {
			return nil, apierrors.NewTimeoutError(path)
		}
		return nil, apierrors.NewNetworkError(path, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.NewNetworkError(path, err)
	}

	if resp.StatusCode != fhttp.StatusOK {
		return nil, apierrors.NewAPIErrorWithBody(
			resp.StatusCode, path,
			fmt.Sprintf("%s failed", method),
			string(respBody),
		)
	}

	return respBody, nil
}
