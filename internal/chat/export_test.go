package chat

import (
	"testing"

	"github.com/dmarques/tlochat/internal/models"
)

func TestExportText(t *testing.T) {
	conv := &models.Conversation{
		Title: "Greetings",
		Messages: []models.Message{
			{Author: models.AuthorUser, Content: "Hi", Timestamp: "10:00"},
			{Author: models.AuthorAI, Content: "Hello", Timestamp: "10:01"},
		},
	}

	got := ExportText(conv)
	want := "[10:00] USER: Hi\n[10:01] AI: Hello"
	if got != want {
		t.Errorf("ExportText = %q, want %q", got, want)
	}
}

func TestExportText_Empty(t *testing.T) {
	conv := &models.Conversation{Title: "Empty"}
	if got := ExportText(conv); got != "" {
		t.Errorf("ExportText(empty) = %q, want empty string", got)
	}
}

func TestExportFileName(t *testing.T) {
	conv := &models.Conversation{Title: "Exploring React Hooks"}
	if got := ExportFileName(conv); got != "Exploring_React_Hooks.txt" {
		t.Errorf("ExportFileName = %q", got)
	}

	conv.Title = ""
	if got := ExportFileName(conv); got != "New_Chat.txt" {
		t.Errorf("ExportFileName(empty title) = %q", got)
	}
}

func TestDeriveTitle(t *testing.T) {
	if got := DeriveTitle("Explain DALYs in detail please", nil); got != "Explain DALYs in detail please" {
		t.Errorf("DeriveTitle short = %q", got)
	}

	long := "Explain disability-adjusted life years to me in detail"
	got := DeriveTitle(long, nil)
	if len([]rune(got)) != models.TitleMaxLen {
		t.Errorf("DeriveTitle long length = %d, want %d", len([]rune(got)), models.TitleMaxLen)
	}

	att := &models.Attachment{Name: "burden_report.docx"}
	if got := DeriveTitle("  ", att); got != "burden_report.docx" {
		t.Errorf("DeriveTitle attachment-only = %q", got)
	}
}

func TestPreviews(t *testing.T) {
	if got := UserPreview("What are DALYs?"); got != "You: What are DALYs?..." {
		t.Errorf("UserPreview = %q", got)
	}
	if got := AIPreview("DALYs are a burden measure", true); got != "AI: DALYs are a burden measure..." {
		t.Errorf("AIPreview = %q", got)
	}
	if got := AIPreview("ignored", false); got != "AI: ......" {
		t.Errorf("AIPreview failure = %q", got)
	}
}
