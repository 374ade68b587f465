package provider

import (
	"testing"

	"github.com/kowshik24/email-draft/config"
)

func TestIsGPT5Model(t *testing.T) {
	tests := []struct {
		model string
		want  bool
	}{
		{"gpt-5", true},
		{"gpt-5-mini", true},
		{"gpt-5-nano", true},
		{"GPT-5", true},
		{"gpt5", true},
		{"gpt5-turbo", true},
		{"gpt-4o", false},
		{"gpt-4o-mini", false},
		{"gpt-4-turbo", false},
		{"gemini-1.5-pro-latest", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			if got := IsGPT5Model(tt.model); got != tt.want {
				t.Errorf("IsGPT5Model(%q) = %v, want %v", tt.model, got, tt.want)
			}
		})
	}
}

func TestOptionsFor(t *testing.T) {
	opts := OptionsFor(config.LLMProvider{Model: "gpt-4o", Temperature: 0.7, MaxTokens: 2048})
	if opts.Temperature == nil || *opts.Temperature != 0.7 {
		t.Errorf("Temperature = %v, want 0.7", opts.Temperature)
	}
	if opts.MaxTokens != 2048 {
		t.Errorf("MaxTokens = %d", opts.MaxTokens)
	}

	opts = OptionsFor(config.LLMProvider{Model: "gpt-5-mini", Temperature: 0.7})
	if opts.Temperature != nil {
		t.Errorf("Temperature = %v, want nil for a gpt-5 model", *opts.Temperature)
	}
}

func TestNewProvider(t *testing.T) {
	cfg := config.LLMConfig{
		Provider: "openai",
		Providers: map[string]config.LLMProvider{
			"openai": {Type: "openai", APIKey: "sk-test", Model: "gpt-4o-mini"},
			"gemini": {Type: "gemini", Model: "gemini-1.5-flash-latest"},
		},
	}
	if _, err := NewProvider(OpenAI, cfg); err != nil {
		t.Errorf("NewProvider(openai) error: %v", err)
	}
	if _, err := NewProvider(Gemini, cfg); err == nil {
		t.Error("NewProvider must fail when the API key is missing")
	}
	if _, err := NewProvider(Client("cohere"), cfg); err == nil {
		t.Error("NewProvider must fail for unsupported providers")
	}
}
