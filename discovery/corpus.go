package discovery

import (
	"context"
	"fmt"
	"strings"

	"github.com/kowshik24/email-draft/models"
	searchmodels "github.com/kowshik24/email-draft/tools/web_search/models"
)

const corpusDelimiter = "\n\n---\n\n"

// Corpus is the aggregated faculty text assembled from the search fan-out,
// with provenance for later citation.
type Corpus struct {
	CombinedText string
	SourceURLs   []string
}

// BuildCorpus runs every query through the gateway, aggregates hits in
// query-then-rank order, de-duplicates by URL, and extracts text for the
// top hits up to the extraction budget. Only the top hits are attempted
// at all: a hit past the budget is never fetched, even when earlier ones
// yield nothing.
//
// Zero hits across all queries is a hard stop (models.ErrNoResults):
// matching against an empty corpus produces hallucinated output.
func BuildCorpus(ctx context.Context, gateway *Gateway, queries []string, extractionBudget int) (*Corpus, error) {
	if extractionBudget <= 0 {
		extractionBudget = 5
	}

	var hits []searchmodels.Result
	seen := make(map[string]bool)
	for _, q := range queries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, hit := range gateway.Search(ctx, q, gateway.Options()) {
			if hit.URL == "" || seen[hit.URL] {
				continue
			}
			seen[hit.URL] = true
			hits = append(hits, hit)
		}
	}
	if len(hits) == 0 {
		return nil, models.ErrNoResults
	}

	if len(hits) > extractionBudget {
		hits = hits[:extractionBudget]
	}

	var blocks []string
	var sources []string
	for _, hit := range hits {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text := gateway.Extract(ctx, hit)
		if strings.TrimSpace(text) == "" {
			continue
		}
		blocks = append(blocks, fmt.Sprintf("Source: %s\n\n%s", hit.URL, text))
		sources = append(sources, hit.URL)
	}
	if len(blocks) == 0 {
		// Hits existed but nothing was extractable, even via fallbacks.
		return nil, models.ErrNoResults
	}

	return &Corpus{
		CombinedText: strings.Join(blocks, corpusDelimiter),
		SourceURLs:   sources,
	}, nil
}
