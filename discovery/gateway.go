package discovery

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/kowshik24/email-draft/config"
	"github.com/kowshik24/email-draft/internal/telemetry"
	"github.com/kowshik24/email-draft/tools/web_fetch"
	"github.com/kowshik24/email-draft/tools/web_search"
	searchmodels "github.com/kowshik24/email-draft/tools/web_search/models"
)

// Gateway wraps the external search/extract capability. Search providers
// are flaky and rate-limited, so one bad query must not abort a whole
// discovery run: Search soft-fails into an empty result set and Extract
// walks a fallback chain.
type Gateway struct {
	searcher  web_search.Searcher
	extractor web_search.Extractor // nil when the provider has no extract endpoint
	fetcher   web_fetch.WebFetcher // nil disables the headless fallback
	provider  string
	cfg       config.SearchConfig
	tele      *telemetry.Telemetry
	logger    *log.Logger
}

func NewGateway(searcher web_search.Searcher, fetcher web_fetch.WebFetcher, provider string, cfg config.SearchConfig, tele *telemetry.Telemetry, logger *log.Logger) *Gateway {
	extractor, _ := searcher.(web_search.Extractor)
	if logger == nil {
		logger = log.Default()
	}
	return &Gateway{
		searcher:  searcher,
		extractor: extractor,
		fetcher:   fetcher,
		provider:  provider,
		cfg:       cfg,
		tele:      tele,
		logger:    logger,
	}
}

// Search executes one query. A failed query logs a warning and yields an
// empty slice rather than an error.
func (g *Gateway) Search(ctx context.Context, query string, opts searchmodels.Options) []searchmodels.Result {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	g.tele.SearchIssued(g.provider)
	hits, err := g.searcher.Search(ctx, query, opts)
	if err != nil {
		g.tele.SearchFailed(g.provider)
		g.logger.Printf("WARN: search %q failed: %v", query, err)
		return nil
	}
	return hits
}

// Extract returns readable text for a hit. Fallback order: provider
// extract endpoint, headless fetch + readability, the hit's snippet, the
// hit's raw content. An empty return means the hit should be skipped.
func (g *Gateway) Extract(ctx context.Context, hit searchmodels.Result) string {
	if g.extractor != nil {
		ectx, cancel := g.withTimeout(ctx)
		text, err := g.extractor.Extract(ectx, hit.URL, g.cfg.SearchDepth)
		cancel()
		if err == nil && strings.TrimSpace(text) != "" {
			return g.clip(text)
		}
		if err != nil {
			g.logger.Printf("WARN: extract %s failed: %v", hit.URL, err)
		}
	}
	if g.fetcher != nil {
		fctx, cancel := g.withTimeout(ctx)
		res, err := g.fetcher.Exec(fctx, hit.URL)
		cancel()
		if err == nil && strings.TrimSpace(res.Text) != "" {
			return g.clip(res.Text)
		}
		if err != nil {
			g.logger.Printf("WARN: fetch %s failed: %v", hit.URL, err)
		}
	}
	if strings.TrimSpace(hit.Snippet) != "" {
		return g.clip(hit.Snippet)
	}
	if strings.TrimSpace(hit.RawContent) != "" {
		return g.clip(hit.RawContent)
	}
	return ""
}

func (g *Gateway) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := g.cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

func (g *Gateway) clip(text string) string {
	max := g.cfg.FetchMaxSize
	if max <= 0 {
		max = 20000
	}
	if len(text) > max {
		return text[:max]
	}
	return text
}

// Options returns the default search options derived from config.
func (g *Gateway) Options() searchmodels.Options {
	return searchmodels.Options{
		Depth:      g.cfg.SearchDepth,
		MaxResults: g.cfg.MaxResults,
		IncludeRaw: true,
	}
}
