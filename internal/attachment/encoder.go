// Package attachment turns local files into self-contained inline payloads.
package attachment

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmarques/tlochat/internal/models"
)

const (
	// MaxAttachmentSize bounds inline payloads. Attachments travel base64
	// encoded inside the request body, so they stay small.
	MaxAttachmentSize = 10 * 1024 * 1024 // 10MB
)

// EncodeFile reads a file from disk and encodes it as an attachment
func EncodeFile(filePath string) (*models.Attachment, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	if fileInfo.Size() > MaxAttachmentSize {
		return nil, fmt.Errorf("file size exceeds maximum %d bytes", MaxAttachmentSize)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	name := filepath.Base(filePath)
	return EncodeBytes(data, name, mimeTypeFor(name))
}

// EncodeFromReader encodes an attachment from an io.Reader
func EncodeFromReader(reader io.Reader, fileName, mimeType string) (*models.Attachment, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	return EncodeBytes(data, fileName, mimeType)
}

// EncodeBytes builds an attachment from raw bytes. The payload is a
// data URI so the attachment is self-describing on the wire.
func EncodeBytes(data []byte, fileName, mimeType string) (*models.Attachment, error) {
	if int64(len(data)) > MaxAttachmentSize {
		return nil, fmt.Errorf("data size exceeds maximum %d bytes", MaxAttachmentSize)
	}
	if mimeType == "" {
		mimeType = mimeTypeFor(fileName)
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	return &models.Attachment{
		Name: fileName,
		Type: mimeType,
		Data: fmt.Sprintf("data:%s;base64,%s", mimeType, encoded),
	}, nil
}

// DecodePayload extracts the raw bytes from an attachment's data URI
func DecodePayload(a *models.Attachment) ([]byte, error) {
	const marker = ";base64,"
	idx := strings.Index(a.Data, marker)
	if !strings.HasPrefix(a.Data, "data:") || idx < 0 {
		return nil, fmt.Errorf("attachment %q has a malformed data URI", a.Name)
	}

	data, err := base64.StdEncoding.DecodeString(a.Data[idx+len(marker):])
	if err != nil {
		return nil, fmt.Errorf("failed to decode attachment payload: %w", err)
	}
	return data, nil
}

func mimeTypeFor(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))

	// The platform mime table does not always know about docx
	switch ext {
	case ".txt":
		return "text/plain"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}

	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		return "application/octet-stream"
	}
	return mimeType
}
