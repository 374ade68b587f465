package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/kowshik24/email-draft/config"
	"github.com/kowshik24/email-draft/models"
)

const openaiAPIURL = "https://api.openai.com/v1/chat/completions"

// openaiClient implements the Provider interface using OpenAI's chat API.
type openaiClient struct {
	cfg        config.LLMProvider
	httpClient *http.Client
}

// NewOpenAIClient creates a new OpenAI client.
func NewOpenAIClient(cfg config.LLMProvider) Provider {
	return &openaiClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    *float64        `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat json.RawMessage `json:"response_format,omitempty"`
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

func (c *openaiClient) Complete(ctx context.Context, prompt, systemPrompt string, opts Options) (string, error) {
	return c.send(ctx, prompt, systemPrompt, nil, opts)
}

func (c *openaiClient) CompleteStructured(ctx context.Context, prompt, systemPrompt string, schema json.RawMessage, opts Options) (json.RawMessage, error) {
	format, err := json.Marshal(map[string]any{
		"type": "json_schema",
		"json_schema": map[string]any{
			"name":   "response",
			"schema": json.RawMessage(schema),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal response format: %w", err)
	}
	out, err := c.send(ctx, prompt, systemPrompt, format, opts)
	if err != nil {
		return nil, err
	}
	if !json.Valid([]byte(out)) {
		return nil, &models.UnparseableError{Op: "structured completion", Raw: out, Err: fmt.Errorf("response is not valid JSON")}
	}
	return json.RawMessage(out), nil
}

func (c *openaiClient) Models() []string { return c.cfg.Models }

func (c *openaiClient) send(ctx context.Context, prompt, systemPrompt string, responseFormat json.RawMessage, opts Options) (string, error) {
	model := opts.Model
	if model == "" {
		model = c.cfg.Model
	}

	var messages []chatMessage
	if systemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: systemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	reqBody := chatRequest{
		Model:          model,
		Messages:       messages,
		MaxTokens:      c.cfg.MaxTokens,
		ResponseFormat: responseFormat,
	}
	if opts.MaxTokens > 0 {
		reqBody.MaxTokens = opts.MaxTokens
	}
	// GPT-5 family models reject the temperature parameter outright, so it
	// is omitted rather than sent as an invalid request.
	if !IsGPT5Model(model) {
		t := c.cfg.Temperature
		if opts.Temperature != nil {
			t = *opts.Temperature
		}
		reqBody.Temperature = &t
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := openaiAPIURL
	if c.cfg.BaseURL != "" {
		url = c.cfg.BaseURL + "/chat/completions"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &models.UpstreamError{Op: "openai completion", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &models.UpstreamError{Op: "openai completion", Err: fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))}
	}

	var openaiResp chatResponse
	if err := json.Unmarshal(body, &openaiResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if openaiResp.Error != nil {
		return "", &models.UpstreamError{Op: "openai completion", Err: fmt.Errorf("%s", openaiResp.Error.Message)}
	}
	if len(openaiResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return openaiResp.Choices[0].Message.Content, nil
}
