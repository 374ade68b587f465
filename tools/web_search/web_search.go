package web_search

import (
	"context"

	"github.com/kowshik24/email-draft/tools/web_search/brave"
	"github.com/kowshik24/email-draft/tools/web_search/models"
	"github.com/kowshik24/email-draft/tools/web_search/serper"
	"github.com/kowshik24/email-draft/tools/web_search/tavily"
)

// Searcher executes one query against a web search provider.
type Searcher interface {
	Search(ctx context.Context, q string, opts models.Options) ([]models.Result, error)
}

// Extractor pulls readable page text for a URL. Only providers with a
// native extract endpoint implement it; callers fall back elsewhere.
type Extractor interface {
	Extract(ctx context.Context, url string, depth string) (string, error)
}

type Provider string

const (
	TavilyProvider Provider = "tavily"
	SerperProvider Provider = "serper"
	BraveProvider  Provider = "brave"
)

var ErrUnsupportedProvider = &Error{"unsupported provider"}

func NewSearcher(provider Provider, apiKey string) (Searcher, error) {
	switch provider {
	case TavilyProvider:
		return tavily.Search{ApiKey: apiKey}, nil
	case SerperProvider:
		return serper.Search{ApiKey: apiKey}, nil
	case BraveProvider:
		return brave.Search{ApiKey: apiKey}, nil
	default:
		return nil, ErrUnsupportedProvider
	}
}
