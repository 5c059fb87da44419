package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultChatTimeout = 60 * time.Second
	chatTemperature    = 0.7
)

// ChatClient is the primary provider: an OpenAI-compatible chat-completions
// endpoint called over raw HTTP, configured by API key, base URL, and model.
type ChatClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewChatClient creates the primary chat provider.
func NewChatClient(apiKey, baseURL, model string) *ChatClient {
	return &ChatClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: defaultChatTimeout},
	}
}

// Name identifies this provider in results and log entries.
func (c *ChatClient) Name() string { return "primary" }

// Complete issues one chat-completions request. The returned Attempt always
// carries the raw request body, and the raw response body when one was read,
// so failed attempts still leave a full trace in the call log.
func (c *ChatClient) Complete(ctx context.Context, msgs []Message) (*Attempt, error) {
	wire := make([]chatMessage, len(msgs))
	for i, m := range msgs {
		wire[i] = chatMessage{Role: m.Role, Content: m.Content}
	}
	body, err := json.Marshal(chatRequest{Model: c.model, Messages: wire, Temperature: chatTemperature})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	attempt := &Attempt{RequestBody: body}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return attempt, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return attempt, fmt.Errorf("http request failed: %w", err)
	}
	respBody, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return attempt, fmt.Errorf("read response: %w", err)
	}
	attempt.ResponseBody = respBody

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return attempt, fmt.Errorf("decode response (%d): %s", resp.StatusCode, truncateForErr(respBody))
	}
	if parsed.Error != nil && parsed.Error.Message != "" {
		return attempt, fmt.Errorf("provider error (%d): %s", resp.StatusCode, parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return attempt, fmt.Errorf("provider error (%d): %s", resp.StatusCode, truncateForErr(respBody))
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return attempt, fmt.Errorf("empty completion")
	}

	attempt.Text = strings.TrimSpace(parsed.Choices[0].Message.Content)
	return attempt, nil
}

func truncateForErr(body []byte) string {
	const max = 200
	s := string(body)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
