package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/waxca059-max/MyNotes/internal/apperr"
)

const (
	summarizeMinLen = 10
	formatMinLen    = 5
	summaryMaxRunes = 100
	chatHistoryMax  = 10

	chatEmptyNotePlaceholder = "(the note is empty)"
)

const formatPromptTemplate = `Rewrite the following Markdown note according to these rules:
1. Insert a space between CJK and Latin text or digits.
2. Fix broken or irregular Markdown syntax (headings, lists, code fences, links).
3. Improve paragraph and section structure where it helps readability.
4. Correct obvious typos.
5. Preserve the original meaning exactly; do not add or remove information.
6. Indent the first line of each paragraph with two full-width spaces (　　).
Reply with the rewritten note only, no commentary.

%s`

// Summarize returns a summary of content capped at 100 characters.
func (a *Adapter) Summarize(ctx context.Context, content string) (string, error) {
	if len([]rune(strings.TrimSpace(content))) < summarizeMinLen {
		return "", fmt.Errorf("content must be at least %d characters: %w", summarizeMinLen, apperr.ErrInvalidInput)
	}
	prompt := "Summarize the following note in one sentence of no more than 100 characters. Reply with the summary only.\n\n" + content
	res, err := a.CallAI(ctx, Prompt(prompt))
	if err != nil {
		return "", err
	}
	if r := []rune(res.Text); len(r) > summaryMaxRunes {
		return string(r[:summaryMaxRunes]), nil
	}
	return res.Text, nil
}

// SuggestTags asks the model for comma-separated tags and splits the answer.
// It never surfaces an error: empty content and every underlying failure
// degrade to an empty slice.
func (a *Adapter) SuggestTags(ctx context.Context, content string) []string {
	if strings.TrimSpace(content) == "" {
		return []string{}
	}
	prompt := "Suggest 3 to 5 short tags for the following note. Reply with the tags only, separated by commas.\n\n" + content
	res, err := a.CallAI(ctx, Prompt(prompt))
	if err != nil {
		return []string{}
	}
	return splitTags(res.Text)
}

// Chat answers a question about the note content, carrying over at most the
// last 10 turns of history.
func (a *Adapter) Chat(ctx context.Context, content, question string, history []Message) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("question is required: %w", apperr.ErrInvalidInput)
	}
	noteContext := content
	if strings.TrimSpace(noteContext) == "" {
		noteContext = chatEmptyNotePlaceholder
	}

	msgs := []Message{{
		Role:    RoleSystem,
		Content: "You are an assistant answering questions about the user's note. Note content:\n\n" + noteContext,
	}}
	if len(history) > chatHistoryMax {
		history = history[len(history)-chatHistoryMax:]
	}
	msgs = append(msgs, history...)
	msgs = append(msgs, Message{Role: RoleUser, Content: question})

	res, err := a.CallAI(ctx, msgs)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// Format rewrites the note with the fixed formatting prompt and returns the
// model output verbatim, with no validation of the rewritten structure.
func (a *Adapter) Format(ctx context.Context, content string) (string, error) {
	if len([]rune(strings.TrimSpace(content))) < formatMinLen {
		return "", fmt.Errorf("content must be at least %d characters: %w", formatMinLen, apperr.ErrInvalidInput)
	}
	res, err := a.CallAI(ctx, Prompt(fmt.Sprintf(formatPromptTemplate, content)))
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// splitTags splits on ASCII and full-width commas, trims whitespace, and
// drops empties. Duplicates pass through untouched.
func splitTags(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '，'
	})
	tags := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			tags = append(tags, f)
		}
	}
	return tags
}
