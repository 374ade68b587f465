package discovery

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kowshik24/email-draft/config"
	"github.com/kowshik24/email-draft/internal/telemetry"
	searchmodels "github.com/kowshik24/email-draft/tools/web_search/models"
)

func TestPipelineCountsRunsAndLLMRequests(t *testing.T) {
	tele := telemetry.New(prometheus.NewRegistry())
	searcher := &fakeSearcher{
		hits:  map[string][]searchmodels.Result{"faculty": {{URL: "https://cs.example.edu/f"}}},
		pages: map[string]string{"https://cs.example.edu/f": "Dr. A works on systems."},
	}
	gateway := NewGateway(searcher, nil, "tavily", config.SearchConfig{MaxResults: 10}, tele, nil)
	llm := &fakeLLM{structured: `{"university":"U","professors":[{"name":"A"}]}`}
	cfg := &config.Config{}
	cfg.LLM.Provider = "openai"
	cfg.Discovery.MinProfessors = 1

	if _, err := NewPipeline(gateway, llm, cfg, tele, nil).Run(context.Background(), "distributed systems cv", "U"); err != nil {
		t.Fatal(err)
	}

	if got := testutil.ToFloat64(tele.DiscoveryRuns); got != 1 {
		t.Errorf("DiscoveryRuns = %v, want 1", got)
	}
	if got := testutil.ToFloat64(tele.LLMRequests.WithLabelValues("openai")); got != 1 {
		t.Errorf("LLMRequests[openai] = %v, want 1", got)
	}
	if got := testutil.ToFloat64(tele.SearchRequests.WithLabelValues("tavily")); got == 0 {
		t.Error("SearchRequests[tavily] not incremented")
	}
}

func TestHiringLookupFailureCountsSoftFailure(t *testing.T) {
	tele := telemetry.New(prometheus.NewRegistry())
	gateway := NewGateway(&fakeSearcher{}, nil, "tavily", config.SearchConfig{}, tele, nil)

	NewHiringAnalyzer(gateway, nil).Analyze(context.Background(), "Jane Doe", "Example University")

	if got := testutil.ToFloat64(tele.SoftFailures.WithLabelValues("hiring")); got != 1 {
		t.Errorf("SoftFailures[hiring] = %v, want 1", got)
	}
}
