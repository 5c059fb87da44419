package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func chatServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer key" {
			t.Errorf("auth header = %q", got)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestChatClient_Success(t *testing.T) {
	srv := chatServer(t, http.StatusOK, `{"choices":[{"message":{"content":"  hello there  "}}]}`)
	c := NewChatClient("key", srv.URL, "test-model")

	attempt, err := c.Complete(context.Background(), Prompt("hi"))
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if attempt.Text != "hello there" {
		t.Errorf("text = %q, want trimmed completion", attempt.Text)
	}

	var req chatRequest
	if err := json.Unmarshal(attempt.RequestBody, &req); err != nil {
		t.Fatalf("request body not recorded: %v", err)
	}
	if req.Model != "test-model" || req.Temperature != chatTemperature {
		t.Errorf("request = %+v", req)
	}
	if len(attempt.ResponseBody) == 0 {
		t.Error("raw response body not recorded")
	}
}

func TestChatClient_ErrorBodyIsFailure(t *testing.T) {
	srv := chatServer(t, http.StatusOK, `{"error":{"message":"invalid api key"}}`)
	c := NewChatClient("key", srv.URL, "m")

	attempt, err := c.Complete(context.Background(), Prompt("hi"))
	if err == nil || !strings.Contains(err.Error(), "invalid api key") {
		t.Fatalf("err = %v, want provider error text", err)
	}
	if attempt == nil || len(attempt.ResponseBody) == 0 {
		t.Error("failed attempt must still carry the raw response for the log")
	}
}

func TestChatClient_EmptyCompletionIsFailure(t *testing.T) {
	srv := chatServer(t, http.StatusOK, `{"choices":[]}`)
	c := NewChatClient("key", srv.URL, "m")

	if _, err := c.Complete(context.Background(), Prompt("hi")); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestChatClient_Non200(t *testing.T) {
	srv := chatServer(t, http.StatusBadGateway, `upstream unavailable`)
	c := NewChatClient("key", srv.URL, "m")

	if _, err := c.Complete(context.Background(), Prompt("hi")); err == nil {
		t.Fatal("expected error for 502")
	}
}
