package attachment

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmarques/tlochat/internal/models"
)

func TestEncodeBytes(t *testing.T) {
	att, err := EncodeBytes([]byte("hello"), "notes.txt", "")
	if err != nil {
		t.Fatalf("EncodeBytes failed: %v", err)
	}

	if att.Name != "notes.txt" {
		t.Errorf("Name = %q", att.Name)
	}
	if att.Type != "text/plain" {
		t.Errorf("Type = %q, want text/plain", att.Type)
	}
	if !strings.HasPrefix(att.Data, "data:text/plain;base64,") {
		t.Errorf("Data = %q, want data URI prefix", att.Data)
	}
	if att.Kind() != models.KindPlainText {
		t.Errorf("Kind = %v, want KindPlainText", att.Kind())
	}
}

func TestEncodeBytes_DocxMime(t *testing.T) {
	att, err := EncodeBytes([]byte{0x50, 0x4b}, "report.docx", "")
	if err != nil {
		t.Fatalf("EncodeBytes failed: %v", err)
	}
	if att.Kind() != models.KindWordDocument {
		t.Errorf("Kind = %v, want KindWordDocument", att.Kind())
	}
}

func TestEncodeBytes_TooLarge(t *testing.T) {
	data := make([]byte, MaxAttachmentSize+1)
	if _, err := EncodeBytes(data, "big.bin", "application/octet-stream"); err == nil {
		t.Error("oversized payload should be rejected")
	}
}

func TestEncodeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("knowledge"), 0o644); err != nil {
		t.Fatal(err)
	}

	att, err := EncodeFile(path)
	if err != nil {
		t.Fatalf("EncodeFile failed: %v", err)
	}
	if att.Name != "notes.txt" {
		t.Errorf("Name = %q", att.Name)
	}

	raw, err := DecodePayload(att)
	if err != nil {
		t.Fatalf("DecodePayload failed: %v", err)
	}
	if string(raw) != "knowledge" {
		t.Errorf("payload = %q", raw)
	}
}

func TestEncodeFile_Missing(t *testing.T) {
	if _, err := EncodeFile(filepath.Join(t.TempDir(), "ghost.txt")); err == nil {
		t.Error("missing file should error")
	}
}

func TestEncodeFromReader(t *testing.T) {
	att, err := EncodeFromReader(bytes.NewReader([]byte("abc")), "a.txt", "text/plain")
	if err != nil {
		t.Fatalf("EncodeFromReader failed: %v", err)
	}
	raw, err := DecodePayload(att)
	if err != nil {
		t.Fatalf("DecodePayload failed: %v", err)
	}
	if string(raw) != "abc" {
		t.Errorf("payload = %q", raw)
	}
}

func TestDecodePayload_Malformed(t *testing.T) {
	att := &models.Attachment{Name: "x", Type: "text/plain", Data: "not a data uri"}
	if _, err := DecodePayload(att); err == nil {
		t.Error("malformed data URI should error")
	}
}
