package provider

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kowshik24/email-draft/config"
)

func openaiTestServer(t *testing.T, capture *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, capture); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"drafted text"}}]}`))
	}))
}

func TestOpenAITemperatureSent(t *testing.T) {
	var captured map[string]any
	srv := openaiTestServer(t, &captured)
	defer srv.Close()

	client := NewOpenAIClient(config.LLMProvider{APIKey: "sk-test", Model: "gpt-4o", Temperature: 0.5, BaseURL: srv.URL})
	out, err := client.Complete(context.Background(), "hello", "", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if out != "drafted text" {
		t.Errorf("out = %q", out)
	}
	if _, ok := captured["temperature"]; !ok {
		t.Error("temperature missing from request for a non gpt-5 model")
	}
}

func TestOpenAITemperatureOmittedForGPT5(t *testing.T) {
	var captured map[string]any
	srv := openaiTestServer(t, &captured)
	defer srv.Close()

	client := NewOpenAIClient(config.LLMProvider{APIKey: "sk-test", Model: "gpt-5-mini", Temperature: 0.5, BaseURL: srv.URL})
	if _, err := client.Complete(context.Background(), "hello", "", Options{}); err != nil {
		t.Fatal(err)
	}
	if _, ok := captured["temperature"]; ok {
		t.Error("temperature must be omitted for gpt-5 family models")
	}
}

func TestOpenAICompleteStructured(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &captured)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"ok\":true}"}}]}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient(config.LLMProvider{APIKey: "sk-test", Model: "gpt-4o", BaseURL: srv.URL})
	schema := json.RawMessage(`{"type":"object"}`)
	out, err := client.CompleteStructured(context.Background(), "hello", "sys", schema, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"ok":true}` {
		t.Errorf("out = %s", out)
	}
	rf, ok := captured["response_format"].(map[string]any)
	if !ok {
		t.Fatal("response_format missing from request")
	}
	if rf["type"] != "json_schema" {
		t.Errorf("response_format type = %v", rf["type"])
	}
	msgs, _ := captured["messages"].([]any)
	if len(msgs) != 2 {
		t.Errorf("got %d messages, want system + user", len(msgs))
	}
}

func TestOpenAIUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewOpenAIClient(config.LLMProvider{APIKey: "sk-test", Model: "gpt-4o", BaseURL: srv.URL})
	if _, err := client.Complete(context.Background(), "hello", "", Options{}); err == nil {
		t.Fatal("want error for non-2xx response")
	}
}
