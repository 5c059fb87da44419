package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultOpenAIModel = openai.ChatModelGPT4oMini

// OpenAIClient is the secondary provider, backed by the official OpenAI SDK.
// Conversations are flattened to a single textual prompt before the call.
type OpenAIClient struct {
	client openai.Client
	model  openai.ChatModel
}

// NewOpenAIClient creates the fallback provider. model may be empty.
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	m := defaultOpenAIModel
	if model != "" {
		m = openai.ChatModel(model)
	}
	return &OpenAIClient{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  m,
	}
}

// Name identifies this provider in results and log entries.
func (c *OpenAIClient) Name() string { return "secondary" }

// Complete flattens the conversation and calls the chat-completions API
// through the SDK.
func (c *OpenAIClient) Complete(ctx context.Context, msgs []Message) (*Attempt, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(Flatten(msgs)),
		},
		Temperature: openai.Float(chatTemperature),
	})
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return nil, fmt.Errorf("openai: empty completion")
	}
	return &Attempt{
		Text:         strings.TrimSpace(resp.Choices[0].Message.Content),
		ResponseBody: json.RawMessage(resp.RawJSON()),
	}, nil
}
