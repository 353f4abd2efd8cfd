package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/openai/openai-go/v3"
)

// chatCompletionJSON builds a minimal chat-completion payload.
func chatCompletionJSON(content string) string {
	return `{"id":"chatcmpl-test","object":"chat.completion","created":1,"model":"test",` +
		`"choices":[{"index":0,"message":{"role":"assistant","content":"` + content + `"},"finish_reason":"stop"}]}`
}

func decodeChatBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		t.Fatalf("decoding request body: %v", err)
	}
	return body
}

func TestCappedChatStrategy_RequestShape(t *testing.T) {
	t.Parallel()

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s, want /chat/completions", r.URL.Path)
		}
		body := decodeChatBody(t, r)
		if body["model"] != "o3-mini" {
			t.Errorf("model = %v, want o3-mini", body["model"])
		}
		if got, ok := body["max_completion_tokens"].(float64); !ok || got != 2000 {
			t.Errorf("max_completion_tokens = %v, want 2000", body["max_completion_tokens"])
		}
		if _, ok := body["temperature"]; ok {
			t.Error("temperature transmitted on the capped path, want it absent")
		}
		if _, ok := body["max_tokens"]; ok {
			t.Error("max_tokens transmitted on the capped path, want max_completion_tokens only")
		}
		msgs, ok := body["messages"].([]any)
		if !ok || len(msgs) != 1 {
			t.Fatalf("messages = %v, want exactly one user message", body["messages"])
		}
		msg := msgs[0].(map[string]any)
		if msg["role"] != "user" || msg["content"] != "ping" {
			t.Errorf("message = %v, want user/ping", msg)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chatCompletionJSON("pong")))
	}))
	defer srv.Close()

	got, err := cappedChatStrategy{}.Run(context.Background(), discardLogger(), queryRequest{
		Model:       "o3-mini",
		Prompt:      "ping",
		APIKey:      "test-key",
		BaseURL:     srv.URL,
		MaxTokens:   2000,
		Temperature: 0.7, // accepted by the CLI, must not reach the wire
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got != "pong" {
		t.Errorf("Run = %q, want %q", got, "pong")
	}
	if calls != 1 {
		t.Errorf("request count = %d, want exactly 1", calls)
	}
}

func TestGeneralChatStrategy_RequestShape(t *testing.T) {
	t.Parallel()

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s, want /chat/completions", r.URL.Path)
		}
		body := decodeChatBody(t, r)
		if body["model"] != "gpt-4" {
			t.Errorf("model = %v, want gpt-4", body["model"])
		}
		if got, ok := body["max_tokens"].(float64); !ok || got != 2000 {
			t.Errorf("max_tokens = %v, want 2000", body["max_tokens"])
		}
		if got, ok := body["temperature"].(float64); !ok || got != 0.7 {
			t.Errorf("temperature = %v, want 0.7", body["temperature"])
		}
		if _, ok := body["max_completion_tokens"]; ok {
			t.Error("max_completion_tokens transmitted on the general path, want max_tokens only")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chatCompletionJSON("pong")))
	}))
	defer srv.Close()

	got, err := generalChatStrategy{}.Run(context.Background(), discardLogger(), queryRequest{
		Model:       "gpt-4",
		Prompt:      "ping",
		APIKey:      "test-key",
		BaseURL:     srv.URL,
		MaxTokens:   2000,
		Temperature: 0.7,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got != "pong" {
		t.Errorf("Run = %q, want %q", got, "pong")
	}
	if calls != 1 {
		t.Errorf("request count = %d, want exactly 1", calls)
	}
}

func TestFirstChoiceContent_ZeroChoices(t *testing.T) {
	t.Parallel()

	_, err := firstChoiceContent(&openai.ChatCompletion{})
	if err == nil {
		t.Fatal("firstChoiceContent on zero choices = nil error, want failure")
	}
	if !strings.Contains(err.Error(), "no completion choices") {
		t.Errorf("error = %q, want it to name the missing choices", err)
	}
}

func TestCappedChatStrategy_ZeroChoicesIsError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"chatcmpl-test","object":"chat.completion","created":1,"model":"test","choices":[]}`))
	}))
	defer srv.Close()

	_, err := cappedChatStrategy{}.Run(context.Background(), discardLogger(), queryRequest{
		Model: "o3-mini", Prompt: "ping", APIKey: "k", BaseURL: srv.URL, MaxTokens: 10,
	})
	if err == nil {
		t.Fatal("Run on zero choices = nil error, want propagated failure")
	}
	if !strings.Contains(err.Error(), "no completion choices") {
		t.Errorf("error = %q, want it to name the missing choices", err)
	}
}
