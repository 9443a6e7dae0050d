package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/dmarques/tlochat/internal/errors"
	"github.com/dmarques/tlochat/internal/models"
)

// FileDescriptor describes a document in the knowledge base. The client
// never reads stored file content; the service injects it into the
// assistant's context on its own side.
type FileDescriptor struct {
	ID        string
	Name      string
	URL       string
	Size      int64
	CreatedAt time.Time
}

// ListKnowledgeFiles returns the documents currently in the knowledge base
func (c *Client) ListKnowledgeFiles(ctx context.Context) ([]FileDescriptor, error) {
	respBody, err := c.doRequest(ctx, fhttp.MethodGet, models.PathKnowledgeFiles, "", nil)
	if err != nil {
		return nil, err
	}

	parsed := gjson.ParseBytes(respBody)
	files := parsed.Get("files")
	if !files.Exists() || !files.IsArray() {
		return nil, apierrors.NewParseError("no files array in knowledge listing", "files")
	}

	var out []FileDescriptor
	files.ForEach(func(_, value gjson.Result) bool {
		fd := FileDescriptor{
			ID:   value.Get("id").String(),
			Name: value.Get("name").String(),
			URL:  value.Get("url").String(),
			Size: value.Get("size").Int(),
		}
		if ts := value.Get("createdAt").String(); ts != "" {
			if t, err := time.Parse(time.RFC3339, ts); err == nil {
				fd.CreatedAt = t
			}
		}
		out = append(out, fd)
		return true
	})

	return out, nil
}

// UploadKnowledgeFile adds a document to the knowledge base
func (c *Client) UploadKnowledgeFile(ctx context.Context, data []byte, name string) (*FileDescriptor, error) {
	if name == "" {
		return nil, apierrors.NewValidationError("name", "must not be empty")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	respBody, err := c.doRequest(ctx, fhttp.MethodPost, models.PathKnowledgeFiles, writer.FormDataContentType(), body.Bytes())
	if err != nil {
		return nil, err
	}

	parsed := gjson.ParseBytes(respBody)
	file := parsed.Get("file")
	if !file.Exists() {
		return nil, apierrors.NewParseError("no file descriptor in upload response", "file")
	}

	fd := &FileDescriptor{
		ID:   file.Get("id").String(),
		Name: file.Get("name").String(),
		URL:  file.Get("url").String(),
		Size: file.Get("size").Int(),
	}
	if ts := file.Get("createdAt").String(); ts != "" {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			fd.CreatedAt = t
		}
	}

	return fd, nil
}
