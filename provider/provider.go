package provider

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/kowshik24/email-draft/config"
	"github.com/kowshik24/email-draft/models"
)

// Client represents different LLM providers
type Client string

const (
	OpenAI Client = "openai"
	Gemini Client = "gemini"
)

// Options tunes a single completion request. A nil Temperature means "use
// the provider default, unless the model rejects the parameter entirely".
type Options struct {
	Model       string
	Temperature *float64
	MaxTokens   int
}

// Provider is the interface that all LLM implementations must satisfy.
type Provider interface {
	// Complete sends a prompt (plus optional system prompt) and returns text.
	Complete(ctx context.Context, prompt, systemPrompt string, opts Options) (string, error)

	// CompleteStructured requests a response constrained to the given JSON
	// schema and returns the raw JSON object.
	CompleteStructured(ctx context.Context, prompt, systemPrompt string, schema json.RawMessage, opts Options) (json.RawMessage, error)

	// Models returns the models this provider is configured with.
	Models() []string
}

// NewProvider creates a new LLM client based on the provided configuration.
func NewProvider(client Client, cfg config.LLMConfig) (Provider, error) {
	pc, ok := cfg.Providers[string(client)]
	if !ok {
		return nil, &models.ConfigError{Field: "llm.provider", Reason: "unsupported LLM provider " + string(client)}
	}
	if pc.APIKey == "" {
		return nil, &models.ConfigError{Field: "llm.providers." + string(client) + ".api_key", Reason: "API key not set"}
	}
	switch client {
	case OpenAI:
		return NewOpenAIClient(pc), nil
	case Gemini:
		return NewGeminiClient(pc), nil
	default:
		return nil, &models.ConfigError{Field: "llm.provider", Reason: "unsupported LLM provider " + string(client)}
	}
}

// OptionsFor derives request options from a provider configuration.
// GPT-5 family models never get a temperature; other models get one when
// the configuration sets it.
func OptionsFor(pc config.LLMProvider) Options {
	opts := Options{Model: pc.Model, MaxTokens: pc.MaxTokens}
	if !IsGPT5Model(pc.Model) && pc.Temperature != 0 {
		t := pc.Temperature
		opts.Temperature = &t
	}
	return opts
}

// IsGPT5Model reports whether the model belongs to the GPT-5 family, which
// rejects an explicit temperature parameter entirely.
func IsGPT5Model(model string) bool {
	if model == "" {
		return false
	}
	m := strings.ToLower(model)
	return strings.HasPrefix(m, "gpt-5") || strings.HasPrefix(m, "gpt5")
}
