package models

import "strings"

// AttachmentKind is a closed classification of attachment content.
// New kinds must be added here and handled at every dispatch site.
type AttachmentKind int

const (
	KindPlainText AttachmentKind = iota
	KindWordDocument
	KindOther
)

// String returns a human-readable name for the kind
func (k AttachmentKind) String() string {
	switch k {
	case KindPlainText:
		return "plain text"
	case KindWordDocument:
		return "word document"
	default:
		return "other"
	}
}

// Attachment is an inline file payload carried by a message.
// Data holds a self-describing data URI ("data:<mime>;base64,<bytes>").
// Immutable once created.
type Attachment struct {
	Name string `json:"name"`
	Type string `json:"type"` // MIME type
	Data string `json:"data"`
}

// Kind classifies the attachment by MIME type, falling back to the
// file extension when the type is generic or missing.
func (a *Attachment) Kind() AttachmentKind {
	return KindOf(a.Type, a.Name)
}

// KindOf classifies a MIME type / file name pair
func KindOf(mimeType, name string) AttachmentKind {
	mt := mimeType
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	mt = strings.TrimSpace(strings.ToLower(mt))

	switch mt {
	case "text/plain":
		return KindPlainText
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return KindWordDocument
	}

	switch {
	case strings.HasSuffix(strings.ToLower(name), ".txt"):
		return KindPlainText
	case strings.HasSuffix(strings.ToLower(name), ".docx"):
		return KindWordDocument
	}

	return KindOther
}
