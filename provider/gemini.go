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

const geminiAPIBase = "https://generativelanguage.googleapis.com/v1beta/models"

// geminiClient implements the Provider interface using the Gemini REST API.
type geminiClient struct {
	cfg        config.LLMProvider
	httpClient *http.Client
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(cfg config.LLMProvider) Provider {
	return &geminiClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  *geminiGenCfg   `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenCfg struct {
	Temperature      *float64 `json:"temperature,omitempty"`
	MaxOutputTokens  int      `json:"maxOutputTokens,omitempty"`
	ResponseMimeType string   `json:"responseMimeType,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *geminiClient) Complete(ctx context.Context, prompt, systemPrompt string, opts Options) (string, error) {
	return c.send(ctx, prompt, systemPrompt, "", opts)
}

// CompleteStructured asks for application/json output. Gemini's REST API
// has no strict schema enforcement here, so the schema is folded into the
// prompt and callers run the same normalization pass as for freeform JSON.
func (c *geminiClient) CompleteStructured(ctx context.Context, prompt, systemPrompt string, schema json.RawMessage, opts Options) (json.RawMessage, error) {
	full := fmt.Sprintf("%s\n\nRespond ONLY with a JSON object matching this schema:\n%s", prompt, string(schema))
	out, err := c.send(ctx, full, systemPrompt, "application/json", opts)
	if err != nil {
		return nil, err
	}
	if !json.Valid([]byte(out)) {
		return nil, &models.UnparseableError{Op: "structured completion", Raw: out, Err: fmt.Errorf("response is not valid JSON")}
	}
	return json.RawMessage(out), nil
}

func (c *geminiClient) Models() []string { return c.cfg.Models }

func (c *geminiClient) send(ctx context.Context, prompt, systemPrompt, mimeType string, opts Options) (string, error) {
	model := opts.Model
	if model == "" {
		model = c.cfg.Model
	}

	t := c.cfg.Temperature
	if opts.Temperature != nil {
		t = *opts.Temperature
	}
	reqBody := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: &geminiGenCfg{
			Temperature:      &t,
			MaxOutputTokens:  c.cfg.MaxTokens,
			ResponseMimeType: mimeType,
		},
	}
	if systemPrompt != "" {
		reqBody.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: systemPrompt}}}
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	base := geminiAPIBase
	if c.cfg.BaseURL != "" {
		base = c.cfg.BaseURL
	}
	url := fmt.Sprintf("%s/%s:generateContent?key=%s", base, model, c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &models.UpstreamError{Op: "gemini completion", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &models.UpstreamError{Op: "gemini completion", Err: fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))}
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if geminiResp.Error != nil {
		return "", &models.UpstreamError{Op: "gemini completion", Err: fmt.Errorf("%s", geminiResp.Error.Message)}
	}
	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}
	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}
