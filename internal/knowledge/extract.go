// Package knowledge handles knowledge-base documents: validating
// uploads and extracting plain text from supported formats so the
// assistant can be grounded on them.
package knowledge

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	apierrors "github.com/dmarques/tlochat/internal/errors"
	"github.com/dmarques/tlochat/internal/models"
)

// MaxUploadSize caps knowledge-base uploads at 10MB.
const MaxUploadSize = 10 * 1024 * 1024

// ValidateUpload checks that a file is acceptable for the knowledge
// base. Only plain text and Word documents are supported.
func ValidateUpload(name string, size int64) error {
	if name == "" {
		return apierrors.NewValidationError("name", "must not be empty")
	}
	if size > MaxUploadSize {
		return apierrors.NewValidationError("file", fmt.Sprintf("exceeds maximum size of %d bytes", MaxUploadSize))
	}
	switch models.KindOf("", name) {
	case models.KindPlainText, models.KindWordDocument:
		return nil
	default:
		return apierrors.NewValidationError("file", "only .txt and .docx files are supported")
	}
}

// ExtractText pulls the readable text out of a document. Plain text
// passes through; Word documents are unpacked and their paragraph
// text collected. Anything else is rejected.
func ExtractText(data []byte, kind models.AttachmentKind) (string, error) {
	switch kind {
	case models.KindPlainText:
		if !utf8.Valid(data) {
			return "", apierrors.NewValidationError("file", "text file is not valid UTF-8")
		}
		return string(data), nil
	case models.KindWordDocument:
		return extractDocxText(data)
	default:
		return "", apierrors.NewValidationError("file", "unsupported document type")
	}
}

// docx files are zip archives; the body lives in word/document.xml as
// WordprocessingML, with runs of text inside <w:t> elements grouped
// into <w:p> paragraphs.
func extractDocxText(data []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open document archive: %w", err)
	}

	var doc *zip.File
	for _, f := range reader.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return "", apierrors.NewValidationError("file", "document has no word/document.xml entry")
	}

	rc, err := doc.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open document body: %w", err)
	}
	defer rc.Close()

	return collectParagraphText(rc)
}

func collectParagraphText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var paragraphs []string
	var current strings.Builder
	inText := false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse document body: %w", err)
		}

		switch tok := token.(type) {
		case xml.StartElement:
			if tok.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch tok.Name.Local {
			case "t":
				inText = false
			case "p":
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		case xml.CharData:
			if inText {
				current.Write(tok)
			}
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}

	// Drop empty paragraphs from the tail but keep interior blank
	// lines so paragraph breaks survive.
	for len(paragraphs) > 0 && paragraphs[len(paragraphs)-1] == "" {
		paragraphs = paragraphs[:len(paragraphs)-1]
	}

	return strings.Join(paragraphs, "\n"), nil
}
