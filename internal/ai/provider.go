// Package ai resolves model completions from an ordered list of providers
// with best-effort fallback, and builds the note operations (summarize,
// tag suggestion, chat, reformat) on top of that single choke point.
package ai

import (
	"context"
	"encoding/json"
	"strings"
)

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Prompt wraps a flat prompt string into a single-message conversation.
func Prompt(text string) []Message {
	return []Message{{Role: RoleUser, Content: text}}
}

// Attempt is the outcome of one provider call, carrying the raw wire bodies
// for the call log where the provider exposes them.
type Attempt struct {
	Text         string
	RequestBody  json.RawMessage
	ResponseBody json.RawMessage
}

// Provider is one completion backend. Implementations must treat every
// failure as a returned error so the adapter can continue down the list.
type Provider interface {
	Name() string
	Complete(ctx context.Context, msgs []Message) (*Attempt, error)
}

// Flatten renders a conversation as a single textual prompt for providers
// that take plain text. A lone user message passes through unchanged.
func Flatten(msgs []Message) string {
	if len(msgs) == 1 && msgs[0].Role == RoleUser {
		return msgs[0].Content
	}
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case RoleSystem:
			parts = append(parts, "Instruction: "+m.Content)
		case RoleAssistant:
			parts = append(parts, "Assistant: "+m.Content)
		default:
			parts = append(parts, "User: "+m.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}
