package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRunQuery_MissingKeyFailsBeforeNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("network call issued despite missing credential")
	}))
	defer srv.Close()

	t.Setenv(apiKeyEnv, "")

	var out strings.Builder
	err := runQuery(context.Background(), discardLogger(), &out, appConfig{BaseURL: srv.URL}, queryOpts{
		Query:           "ping",
		Model:           defaultModel,
		ReasoningEffort: defaultEffort,
		MaxTokens:       defaultMaxTokens,
		Temperature:     defaultTemperature,
	})
	if err == nil {
		t.Fatal("runQuery without a key = nil error, want failure")
	}
	if !strings.Contains(err.Error(), apiKeyEnv) {
		t.Errorf("error = %q, want remediation mentioning %s", err, apiKeyEnv)
	}
	if out.Len() != 0 {
		t.Errorf("stdout = %q, want nothing printed", out.String())
	}
}

func TestRunQuery_ConfigKeyFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer from-config" {
			t.Errorf("Authorization = %q, want key from config file", got)
		}
		w.Write([]byte(`{"output":[]}`))
	}))
	defer srv.Close()

	t.Setenv(apiKeyEnv, "")

	var out strings.Builder
	err := runQuery(context.Background(), discardLogger(), &out, appConfig{APIKey: "from-config", BaseURL: srv.URL}, queryOpts{
		Query: "ping", Model: defaultModel, ReasoningEffort: defaultEffort, MaxTokens: 10,
	})
	if err != nil {
		t.Fatalf("runQuery: %v", err)
	}
}

func TestRunQuery_EndToEndDefaultModel(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path != "/responses" {
			t.Errorf("path = %s, want the default model routed to /responses", r.URL.Path)
		}
		var body responsesRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if body.Input != "ping" {
			t.Errorf("input = %q, want bare query with no context template", body.Input)
		}
		json.NewEncoder(w).Encode(responsesPayload{
			Output: []responsesOutput{{
				Type:    "message",
				Content: []responsesContent{{Type: "output_text", Text: "pong"}},
			}},
		})
	}))
	defer srv.Close()

	t.Setenv(apiKeyEnv, "test-key")

	var out strings.Builder
	err := runQuery(context.Background(), discardLogger(), &out, appConfig{BaseURL: srv.URL}, queryOpts{
		Query:           "ping",
		Model:           defaultModel,
		ReasoningEffort: defaultEffort,
		MaxTokens:       defaultMaxTokens,
		Temperature:     defaultTemperature,
	})
	if err != nil {
		t.Fatalf("runQuery: %v", err)
	}
	if calls != 1 {
		t.Errorf("request count = %d, want exactly 1", calls)
	}

	banner := strings.Repeat("=", 50)
	text := out.String()
	if !strings.Contains(text, banner+"\npong\n"+banner) {
		t.Errorf("stdout = %q, want response between 50-char banners", text)
	}
}

func TestRunQuery_ContextFlowsIntoPrompt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body responsesRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		want := "Context:\nsome facts\n\nQuery: ping"
		if body.Input != want {
			t.Errorf("input = %q, want %q", body.Input, want)
		}
		w.Write([]byte(`{"output":[]}`))
	}))
	defer srv.Close()

	t.Setenv(apiKeyEnv, "test-key")

	var out strings.Builder
	err := runQuery(context.Background(), discardLogger(), &out, appConfig{BaseURL: srv.URL}, queryOpts{
		Query: "ping", Context: "some facts", Model: defaultModel, ReasoningEffort: defaultEffort, MaxTokens: 10,
	})
	if err != nil {
		t.Fatalf("runQuery: %v", err)
	}
	if !strings.Contains(out.String(), noContentSentinel) {
		t.Errorf("stdout = %q, want the sentinel printed on empty output", out.String())
	}
}
