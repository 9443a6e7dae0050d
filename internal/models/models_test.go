package models

import (
	"strings"
	"testing"
)

func TestAuthorHistoryRole(t *testing.T) {
	if got := AuthorUser.HistoryRole(); got != "user" {
		t.Errorf("AuthorUser.HistoryRole() = %q, want user", got)
	}
	if got := AuthorAI.HistoryRole(); got != "model" {
		t.Errorf("AuthorAI.HistoryRole() = %q, want model", got)
	}
}

func TestMessageCanRegenerate(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want bool
	}{
		{"assistant with prompt", Message{Author: AuthorAI, UserPrompt: "hi"}, true},
		{"assistant without prompt", Message{Author: AuthorAI}, false},
		{"user message", Message{Author: AuthorUser, UserPrompt: "hi"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.msg.CanRegenerate(); got != tt.want {
				t.Errorf("CanRegenerate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		fileName string
		want     AttachmentKind
	}{
		{"plain text mime", "text/plain", "notes", KindPlainText},
		{"plain text with charset", "text/plain; charset=utf-8", "notes", KindPlainText},
		{"docx mime", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "report", KindWordDocument},
		{"txt extension fallback", "application/octet-stream", "notes.txt", KindPlainText},
		{"docx extension fallback", "", "Report.DOCX", KindWordDocument},
		{"pdf", "application/pdf", "paper.pdf", KindOther},
		{"empty", "", "", KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.mimeType, tt.fileName); got != tt.want {
				t.Errorf("KindOf(%q, %q) = %v, want %v", tt.mimeType, tt.fileName, got, tt.want)
			}
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := TruncateRunes("short", 30); got != "short" {
		t.Errorf("TruncateRunes(short) = %q", got)
	}

	long := "Explain DALYs in detail please and also QALYs"
	got := TruncateRunes(long, TitleMaxLen)
	if len([]rune(got)) != TitleMaxLen {
		t.Errorf("truncated length = %d, want %d", len([]rune(got)), TitleMaxLen)
	}

	// Rune-safe truncation must not split multi-byte characters
	accented := strings.Repeat("a", 29) + "çx"
	got = TruncateRunes(accented, 30)
	if got != strings.Repeat("a", 29)+"ç" {
		t.Errorf("TruncateRunes(accented) = %q", got)
	}
}

func TestConversationFindMessage(t *testing.T) {
	conv := Conversation{
		Messages: []Message{
			{ID: "a"},
			{ID: "b"},
		},
	}

	if i := conv.FindMessage("b"); i != 1 {
		t.Errorf("FindMessage(b) = %d, want 1", i)
	}
	if i := conv.FindMessage("missing"); i != -1 {
		t.Errorf("FindMessage(missing) = %d, want -1", i)
	}
}

func TestConversationUntitled(t *testing.T) {
	conv := Conversation{Title: DefaultTitle}
	if !conv.Untitled() {
		t.Error("sentinel title should be untitled")
	}
	conv.Title = "Exploring React Hooks"
	if conv.Untitled() {
		t.Error("named conversation should not be untitled")
	}
}
