package knowledge

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	apierrors "github.com/dmarques/tlochat/internal/errors"
	"github.com/dmarques/tlochat/internal/models"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	entry, err := writer.Create("word/document.xml")
	if err != nil {
		t.Fatalf("zip create failed: %v", err)
	}
	if _, err := entry.Write([]byte(documentXML)); err != nil {
		t.Fatalf("zip write failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("zip close failed: %v", err)
	}
	return buf.Bytes()
}

func TestExtractText_PlainText(t *testing.T) {
	text, err := ExtractText([]byte("hello\nworld"), models.KindPlainText)
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}
	if text != "hello\nworld" {
		t.Errorf("text = %q", text)
	}
}

func TestExtractText_InvalidUTF8(t *testing.T) {
	_, err := ExtractText([]byte{0xff, 0xfe, 0x00}, models.KindPlainText)
	if !apierrors.IsValidationError(err) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestExtractText_WordDocument(t *testing.T) {
	doc := buildDocx(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph.</w:t></w:r></w:p>
    <w:p/>
  </w:body>
</w:document>`)

	text, err := ExtractText(doc, models.KindWordDocument)
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}
	want := "First paragraph.\nSecond paragraph."
	if text != want {
		t.Errorf("text = %q, want %q", text, want)
	}
}

func TestExtractText_DocxMissingBody(t *testing.T) {
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	entry, _ := writer.Create("word/styles.xml")
	_, _ = entry.Write([]byte("<x/>"))
	_ = writer.Close()

	_, err := ExtractText(buf.Bytes(), models.KindWordDocument)
	if !apierrors.IsValidationError(err) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestExtractText_NotAZip(t *testing.T) {
	_, err := ExtractText([]byte("not a zip"), models.KindWordDocument)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestExtractText_UnsupportedKind(t *testing.T) {
	_, err := ExtractText([]byte("data"), models.KindOther)
	if !apierrors.IsValidationError(err) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		size     int64
		wantErr  bool
	}{
		{"txt", "notes.txt", 100, false},
		{"docx", "report.docx", 4096, false},
		{"pdf rejected", "paper.pdf", 100, true},
		{"no extension", "README", 100, true},
		{"empty name", "", 100, true},
		{"too large", "big.txt", MaxUploadSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpload(tt.fileName, tt.size)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUpload(%q, %d) = %v, wantErr %v", tt.fileName, tt.size, err, tt.wantErr)
			}
		})
	}
}

func TestExtractText_LongDocument(t *testing.T) {
	var body strings.Builder
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for i := 0; i < 50; i++ {
		body.WriteString(`<w:p><w:r><w:t>line</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	text, err := ExtractText(buildDocx(t, body.String()), models.KindWordDocument)
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}
	if got := strings.Count(text, "line"); got != 50 {
		t.Errorf("paragraph count = %d, want 50", got)
	}
}
