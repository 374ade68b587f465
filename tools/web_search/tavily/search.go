package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/kowshik24/email-draft/tools/web_search/models"
)

const (
	searchURL  = "https://api.tavily.com/search"
	extractURL = "https://api.tavily.com/extract"
)

type Search struct {
	ApiKey string
}

func (s Search) Search(ctx context.Context, q string, opts models.Options) ([]models.Result, error) {
	// https://docs.tavily.com/docs/rest-api
	payload := map[string]any{
		"api_key":             s.ApiKey,
		"query":               q,
		"include_raw_content": opts.IncludeRaw,
	}
	if opts.Depth != "" {
		payload["search_depth"] = opts.Depth
	}
	if opts.MaxResults > 0 {
		payload["max_results"] = opts.MaxResults
	}
	if len(opts.IncludeDomains) > 0 {
		payload["include_domains"] = opts.IncludeDomains
	}

	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, searchURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tavily search status %d", resp.StatusCode)
	}

	var raw struct {
		Results []struct {
			Title      string `json:"title"`
			URL        string `json:"url"`
			Content    string `json:"content"`
			RawContent string `json:"raw_content"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}
	out := make([]models.Result, 0, len(raw.Results))
	for i, r := range raw.Results {
		if opts.MaxResults > 0 && i >= opts.MaxResults {
			break
		}
		out = append(out, models.Result{Title: r.Title, URL: r.URL, Snippet: r.Content, RawContent: r.RawContent})
	}
	return out, nil
}

// Extract fetches readable page text through Tavily's extract endpoint.
func (s Search) Extract(ctx context.Context, url string, depth string) (string, error) {
	payload := map[string]any{
		"api_key": s.ApiKey,
		"urls":    []string{url},
		"format":  "text",
	}
	if depth != "" {
		payload["extract_depth"] = depth
	}
	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, extractURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tavily extract status %d", resp.StatusCode)
	}

	var raw struct {
		Results []struct {
			RawContent string `json:"raw_content"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", err
	}
	if len(raw.Results) == 0 || raw.Results[0].RawContent == "" {
		return "", errors.New("extract returned no content")
	}
	return raw.Results[0].RawContent, nil
}
