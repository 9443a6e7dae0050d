package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	apierrors "github.com/dmarques/tlochat/internal/errors"
)

func TestListKnowledgeFiles(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s", r.Method)
		}
		_, _ = w.Write([]byte(`{"files":[
			{"id":"f1","name":"report.txt","url":"https://cdn/report.txt","size":120,"createdAt":"2026-01-15T10:30:00Z"},
			{"id":"f2","name":"notes.docx","url":"https://cdn/notes.docx","size":2048}
		]}`))
	})

	files, err := client.ListKnowledgeFiles(context.Background())
	if err != nil {
		t.Fatalf("ListKnowledgeFiles failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("len = %d", len(files))
	}
	if files[0].ID != "f1" || files[0].Name != "report.txt" || files[0].Size != 120 {
		t.Errorf("files[0] = %+v", files[0])
	}
	if files[0].CreatedAt.IsZero() {
		t.Error("createdAt not parsed")
	}
	if !files[1].CreatedAt.IsZero() {
		t.Error("missing createdAt should stay zero")
	}
}

func TestListKnowledgeFiles_Empty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"files":[]}`))
	})

	files, err := client.ListKnowledgeFiles(context.Background())
	if err != nil {
		t.Fatalf("ListKnowledgeFiles failed: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("len = %d, want 0", len(files))
	}
}

func TestListKnowledgeFiles_MalformedListing(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"weird":1}`))
	})

	_, err := client.ListKnowledgeFiles(context.Background())
	if !errors.Is(err, apierrors.ErrInvalidResponse) {
		t.Errorf("err = %v, want parse error", err)
	}
}

func TestUploadKnowledgeFile(t *testing.T) {
	var gotName string
	var gotContent []byte

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("ParseMultipartForm failed: %v", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("FormFile failed: %v", err)
		}
		defer file.Close()
		gotName = header.Filename
		gotContent, _ = io.ReadAll(file)
		_, _ = w.Write([]byte(`{"file":{"id":"f9","name":"guide.txt","url":"https://cdn/guide.txt","size":11,"createdAt":"2026-02-01T09:00:00Z"}}`))
	})

	fd, err := client.UploadKnowledgeFile(context.Background(), []byte("hello world"), "guide.txt")
	if err != nil {
		t.Fatalf("UploadKnowledgeFile failed: %v", err)
	}
	if fd.ID != "f9" || fd.Name != "guide.txt" || fd.Size != 11 {
		t.Errorf("descriptor = %+v", fd)
	}
	if gotName != "guide.txt" || string(gotContent) != "hello world" {
		t.Errorf("server saw name=%q content=%q", gotName, gotContent)
	}
}

func TestUploadKnowledgeFile_EmptyName(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("empty name must not reach the network")
	})

	_, err := client.UploadKnowledgeFile(context.Background(), []byte("x"), "")
	if !apierrors.IsValidationError(err) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	client, err := NewClient("https://example.test/", "k", 0)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if strings.HasSuffix(client.BaseURL(), "/") {
		t.Errorf("BaseURL = %q", client.BaseURL())
	}
}
