package advisor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCompleteSuccess(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cmpl-1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"BTC is going sideways."}}]}`))
	}))
	defer server.Close()

	c := NewClientWithBaseURL("sk-test", "gpt-4o-mini", server.URL)
	text, err := c.Complete(context.Background(), "system text", "user text")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if text != "BTC is going sideways." {
		t.Fatalf("unexpected completion text: %q", text)
	}

	if gotBody["model"] != "gpt-4o-mini" {
		t.Fatalf("unexpected model: %v", gotBody["model"])
	}
	messages, ok := gotBody["messages"].([]any)
	if !ok || len(messages) != 2 {
		t.Fatalf("expected system+user messages, got %v", gotBody["messages"])
	}
	first := messages[0].(map[string]any)
	second := messages[1].(map[string]any)
	if first["role"] != "system" || first["content"] != "system text" {
		t.Fatalf("unexpected system message: %v", first)
	}
	if second["role"] != "user" || second["content"] != "user text" {
		t.Fatalf("unexpected user message: %v", second)
	}
}

func TestCompleteUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Incorrect API key provided"}}`))
	}))
	defer server.Close()

	c := NewClientWithBaseURL("sk-bad", "gpt-4o-mini", server.URL)
	if _, err := c.Complete(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error for unauthorized response")
	}
}

func TestCompleteNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cmpl-2","object":"chat.completion","choices":[]}`))
	}))
	defer server.Close()

	c := NewClientWithBaseURL("sk-test", "gpt-4o-mini", server.URL)
	if _, err := c.Complete(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}
