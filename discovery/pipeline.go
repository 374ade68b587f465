package discovery

import (
	"context"
	"log"
	"strings"

	"github.com/kowshik24/email-draft/config"
	"github.com/kowshik24/email-draft/internal/telemetry"
	"github.com/kowshik24/email-draft/models"
	"github.com/kowshik24/email-draft/provider"
)

// Pipeline runs the full professor-discovery flow: research-area
// extraction from the CV, query planning, corpus building, LLM matching,
// profile enrichment, and hiring-status analysis. Stages after matching
// are best-effort; only an empty corpus or an unusable LLM response
// aborts a run.
type Pipeline struct {
	gateway *Gateway
	matcher *Matcher
	enrich  *Enricher
	hiring  *HiringAnalyzer
	llm     provider.Provider
	cfg     *config.Config
	tele    *telemetry.Telemetry
	logger  *log.Logger
	model   string // per-run model override, empty uses config
}

func NewPipeline(gateway *Gateway, llm provider.Provider, cfg *config.Config, tele *telemetry.Telemetry, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.Default()
	}
	return &Pipeline{
		gateway: gateway,
		matcher: NewMatcher(llm, cfg.Discovery, logger),
		enrich:  NewEnricher(gateway, logger),
		hiring:  NewHiringAnalyzer(gateway, logger),
		llm:     llm,
		cfg:     cfg,
		tele:    tele,
		logger:  logger,
	}
}

// Run executes a discovery for one university against one CV. Input
// validation happens before any network call so bad requests fail fast
// and cheap.
func (p *Pipeline) Run(ctx context.Context, cvText, university string) (*models.DiscoveryResult, error) {
	if strings.TrimSpace(cvText) == "" {
		return nil, &models.ConfigError{Field: "cv_text", Reason: "must not be empty"}
	}
	if strings.TrimSpace(university) == "" {
		return nil, &models.ConfigError{Field: "university", Reason: "must not be empty"}
	}
	p.tele.RunStarted()

	areas := ExtractResearchAreas(cvText)
	p.logger.Printf("INFO: extracted %d research area(s) from CV", len(areas))

	queries := PlanQueries(university, areas)
	p.logger.Printf("INFO: planned %d search queries for %q", len(queries), university)

	corpus, err := BuildCorpus(ctx, p.gateway, queries, p.cfg.Discovery.ExtractionBudget)
	if err != nil {
		return nil, err
	}
	p.logger.Printf("INFO: corpus built from %d source(s)", len(corpus.SourceURLs))

	p.tele.LLMIssued(p.cfg.LLM.Provider)
	result, err := p.matcher.Match(ctx, cvText, university, corpus, p.llmOptions())
	if err != nil {
		return nil, err
	}
	p.logger.Printf("INFO: matched %d professor(s)", len(result.Professors))

	result.Professors = p.enrich.Enrich(ctx, result.Professors, university)
	result.HiringAnalysis = p.hiring.AnalyzeAll(ctx, result.Professors, university)

	minP := p.cfg.Discovery.MinProfessors
	if minP <= 0 {
		minP = 6
	}
	if len(result.Professors) < minP {
		result.Partial = true
		p.logger.Printf("WARN: run %s is partial: %d professor(s), wanted at least %d", result.ID, len(result.Professors), minP)
	}
	return result, nil
}

// WithModel returns a Pipeline that runs its LLM calls on a different
// model for the next run.
func (p *Pipeline) WithModel(model string) *Pipeline {
	if model == "" {
		return p
	}
	cp := *p
	cp.model = model
	return &cp
}

func (p *Pipeline) llmOptions() provider.Options {
	opts := provider.OptionsFor(p.cfg.LLM.Active())
	if p.model != "" {
		opts.Model = p.model
		if provider.IsGPT5Model(p.model) {
			opts.Temperature = nil
		}
	}
	return opts
}
