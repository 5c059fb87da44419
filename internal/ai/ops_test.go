package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/waxca059-max/MyNotes/internal/apperr"
)

func TestSummarize_ShortContentIsInvalidWithoutNetworkCall(t *testing.T) {
	p := &stubProvider{name: "primary", text: "unused"}
	adapter, _ := testAdapter(t, p)

	for _, content := range []string{"", "short"} {
		if _, err := adapter.Summarize(context.Background(), content); !errors.Is(err, apperr.ErrInvalidInput) {
			t.Errorf("Summarize(%q) = %v, want ErrInvalidInput", content, err)
		}
	}
	if p.calls != 0 {
		t.Errorf("provider called %d times for invalid input", p.calls)
	}
}

func TestSummarize_CapsAt100Runes(t *testing.T) {
	p := &stubProvider{name: "primary", text: strings.Repeat("长", 150)}
	adapter, _ := testAdapter(t, p)

	out, err := adapter.Summarize(context.Background(), "a note with plenty of content")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if n := len([]rune(out)); n != 100 {
		t.Errorf("summary runes = %d, want 100", n)
	}
}

func TestSuggestTags_SplitsBothCommaKinds(t *testing.T) {
	p := &stubProvider{name: "primary", text: " go ，web, notes ,，, sqlite "}
	adapter, _ := testAdapter(t, p)

	tags := adapter.SuggestTags(context.Background(), "some note content")
	want := []string{"go", "web", "notes", "sqlite"}
	if len(tags) != len(want) {
		t.Fatalf("tags = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("tags[%d] = %q, want %q", i, tags[i], want[i])
		}
	}
}

func TestSuggestTags_EmptyContentAndFailuresDegradeToEmpty(t *testing.T) {
	failing := &stubProvider{name: "primary", err: errors.New("down")}
	adapter, _ := testAdapter(t, failing)

	if tags := adapter.SuggestTags(context.Background(), ""); len(tags) != 0 {
		t.Errorf("empty content should give no tags, got %v", tags)
	}
	if failing.calls != 0 {
		t.Error("empty content must not reach a provider")
	}

	if tags := adapter.SuggestTags(context.Background(), "real content"); tags == nil || len(tags) != 0 {
		t.Errorf("provider failure must degrade to empty slice, got %v", tags)
	}
}

func TestChat_RequiresQuestion(t *testing.T) {
	p := &stubProvider{name: "primary", text: "hi"}
	adapter, _ := testAdapter(t, p)

	if _, err := adapter.Chat(context.Background(), "content", "  ", nil); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestChat_TruncatesHistoryAndEmbedsNote(t *testing.T) {
	p := &stubProvider{name: "primary", text: "reply"}
	adapter, _ := testAdapter(t, p)

	history := make([]Message, 15)
	for i := range history {
		history[i] = Message{Role: RoleUser, Content: strings.Repeat("x", i+1)}
	}

	out, err := adapter.Chat(context.Background(), "the note body", "what?", history)
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if out != "reply" {
		t.Errorf("out = %q", out)
	}

	// system + 10 history + question
	if len(p.lastMsg) != 12 {
		t.Fatalf("messages sent = %d, want 12", len(p.lastMsg))
	}
	if p.lastMsg[0].Role != RoleSystem || !strings.Contains(p.lastMsg[0].Content, "the note body") {
		t.Errorf("system message = %+v", p.lastMsg[0])
	}
	// Oldest retained turn is history[5].
	if p.lastMsg[1].Content != strings.Repeat("x", 6) {
		t.Errorf("history not truncated to last 10: first kept = %q", p.lastMsg[1].Content)
	}
	if last := p.lastMsg[len(p.lastMsg)-1]; last.Role != RoleUser || last.Content != "what?" {
		t.Errorf("question not last: %+v", last)
	}
}

func TestChat_EmptyNoteUsesPlaceholder(t *testing.T) {
	p := &stubProvider{name: "primary", text: "reply"}
	adapter, _ := testAdapter(t, p)

	if _, err := adapter.Chat(context.Background(), "", "q", nil); err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if !strings.Contains(p.lastMsg[0].Content, chatEmptyNotePlaceholder) {
		t.Errorf("system message missing placeholder: %q", p.lastMsg[0].Content)
	}
}

func TestFormat_Validation(t *testing.T) {
	p := &stubProvider{name: "primary", text: "formatted"}
	adapter, _ := testAdapter(t, p)

	if _, err := adapter.Format(context.Background(), "  ab  "); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}

	out, err := adapter.Format(context.Background(), "some note text")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if out != "formatted" {
		t.Errorf("format output must be returned verbatim, got %q", out)
	}
	if !strings.Contains(p.lastMsg[0].Content, "full-width spaces") {
		t.Error("format prompt template not used")
	}
}
