package discovery

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/kowshik24/email-draft/config"
	"github.com/kowshik24/email-draft/provider"
	searchmodels "github.com/kowshik24/email-draft/tools/web_search/models"
)

// fakeSearcher serves canned hits keyed by query substring and canned
// page text keyed by URL. It implements both Search and Extract, like
// the tavily client does.
type fakeSearcher struct {
	hits       map[string][]searchmodels.Result
	pages      map[string]string
	searchErr  error
	extractErr error
	queries    []string
}

func (f *fakeSearcher) Search(ctx context.Context, q string, opts searchmodels.Options) ([]searchmodels.Result, error) {
	f.queries = append(f.queries, q)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	for key, hits := range f.hits {
		if strings.Contains(q, key) {
			return hits, nil
		}
	}
	return nil, nil
}

func (f *fakeSearcher) Extract(ctx context.Context, url string, depth string) (string, error) {
	if f.extractErr != nil {
		return "", f.extractErr
	}
	if text, ok := f.pages[url]; ok {
		return text, nil
	}
	return "", errors.New("page not found")
}

func newTestGateway(searcher *fakeSearcher) *Gateway {
	return NewGateway(searcher, nil, "tavily", config.SearchConfig{MaxResults: 10}, nil, nil)
}

// fakeLLM returns fixed payloads. structuredErr forces the freeform
// fallback path.
type fakeLLM struct {
	structured    string
	structuredErr error
	completion    string
	completionErr error
	prompts       []string
}

func (f *fakeLLM) Complete(ctx context.Context, prompt, systemPrompt string, opts provider.Options) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.completionErr != nil {
		return "", f.completionErr
	}
	return f.completion, nil
}

func (f *fakeLLM) CompleteStructured(ctx context.Context, prompt, systemPrompt string, schema json.RawMessage, opts provider.Options) (json.RawMessage, error) {
	f.prompts = append(f.prompts, prompt)
	if f.structuredErr != nil {
		return nil, f.structuredErr
	}
	return json.RawMessage(f.structured), nil
}

func (f *fakeLLM) Models() []string { return []string{"fake-model"} }
