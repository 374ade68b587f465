package discovery

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kowshik24/email-draft/models"
	searchmodels "github.com/kowshik24/email-draft/tools/web_search/models"
)

func TestBuildCorpusNoHits(t *testing.T) {
	gateway := newTestGateway(&fakeSearcher{})
	_, err := BuildCorpus(context.Background(), gateway, []string{"q1", "q2"}, 5)
	if !errors.Is(err, models.ErrNoResults) {
		t.Fatalf("err = %v, want ErrNoResults", err)
	}
}

func TestBuildCorpusSearchErrorSoftFails(t *testing.T) {
	gateway := newTestGateway(&fakeSearcher{searchErr: errors.New("rate limited")})
	_, err := BuildCorpus(context.Background(), gateway, []string{"q1"}, 5)
	if !errors.Is(err, models.ErrNoResults) {
		t.Fatalf("err = %v, want ErrNoResults after soft-failed searches", err)
	}
}

func TestBuildCorpusDeduplicatesByURL(t *testing.T) {
	hit := searchmodels.Result{URL: "https://cs.example.edu/faculty", Title: "Faculty"}
	searcher := &fakeSearcher{
		hits: map[string][]searchmodels.Result{
			"": {hit, hit},
		},
		pages: map[string]string{
			"https://cs.example.edu/faculty": "Dr. Jane Doe works on robotics.",
		},
	}
	corpus, err := BuildCorpus(context.Background(), newTestGateway(searcher), []string{"a", "b"}, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(corpus.SourceURLs) != 1 {
		t.Errorf("SourceURLs = %v, want one deduplicated entry", corpus.SourceURLs)
	}
	if !strings.Contains(corpus.CombinedText, "Source: https://cs.example.edu/faculty") {
		t.Errorf("corpus missing provenance header:\n%s", corpus.CombinedText)
	}
}

func TestBuildCorpusExtractionBudget(t *testing.T) {
	hits := make([]searchmodels.Result, 0, 8)
	pages := map[string]string{}
	for _, u := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		url := "https://example.edu/" + u
		hits = append(hits, searchmodels.Result{URL: url})
		pages[url] = "page " + u
	}
	searcher := &fakeSearcher{hits: map[string][]searchmodels.Result{"": hits}, pages: pages}
	corpus, err := BuildCorpus(context.Background(), newTestGateway(searcher), []string{"q"}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(corpus.SourceURLs) != 3 {
		t.Errorf("extracted %d sources, want budget of 3", len(corpus.SourceURLs))
	}
}

func TestBuildCorpusSnippetFallback(t *testing.T) {
	searcher := &fakeSearcher{
		hits: map[string][]searchmodels.Result{
			"": {{URL: "https://example.edu/p", Snippet: "Prof. Smith studies NLP."}},
		},
		// no pages: extract fails, snippet should carry the block
	}
	corpus, err := BuildCorpus(context.Background(), newTestGateway(searcher), []string{"q"}, 5)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(corpus.CombinedText, "Prof. Smith studies NLP.") {
		t.Errorf("snippet fallback not used:\n%s", corpus.CombinedText)
	}
}

func TestBuildCorpusNeverAttemptsBeyondBudget(t *testing.T) {
	// Only the top hits within the budget are candidates. When all of
	// them come up empty the run fails rather than walking further down
	// the ranking.
	searcher := &fakeSearcher{
		hits: map[string][]searchmodels.Result{
			"": {
				{URL: "https://example.edu/dead-1"},
				{URL: "https://example.edu/dead-2"},
				{URL: "https://example.edu/alive"},
			},
		},
		pages: map[string]string{
			"https://example.edu/alive": "Faculty directory with real text.",
		},
	}
	_, err := BuildCorpus(context.Background(), newTestGateway(searcher), []string{"q"}, 2)
	if !errors.Is(err, models.ErrNoResults) {
		t.Errorf("err = %v, want ErrNoResults when the top-ranked hits are unextractable", err)
	}
}
