package discovery

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/kowshik24/email-draft/models"
)

// Enricher backfills missing profile links with targeted, domain-filtered
// searches. Already-populated fields are never overwritten, and one
// professor's search failure never blocks the others.
type Enricher struct {
	gateway *Gateway
	logger  *log.Logger
}

func NewEnricher(gateway *Gateway, logger *log.Logger) *Enricher {
	if logger == nil {
		logger = log.Default()
	}
	return &Enricher{gateway: gateway, logger: logger}
}

// Enrich fills google_scholar and linkedin links in place and returns the
// same slice in the same order.
func (e *Enricher) Enrich(ctx context.Context, professors []models.ProfessorRecord, university string) []models.ProfessorRecord {
	results, failed := RunBatch(ctx, len(professors), func(ctx context.Context, i int) (models.ProfessorRecord, error) {
		p := professors[i]
		if p.GoogleScholar == nil {
			if link := e.findProfile(ctx, p.Name, university, "scholar.google.com", "scholar.google.com"); link != "" {
				p.GoogleScholar = &link
			}
		}
		if p.LinkedIn == nil {
			if link := e.findProfile(ctx, p.Name, university, "linkedin.com", "linkedin.com/in/"); link != "" {
				p.LinkedIn = &link
			}
		}
		return p, nil
	})
	if failed > 0 {
		e.logger.Printf("WARN: enrichment soft-failed for %d professor(s)", failed)
		for i := 0; i < failed; i++ {
			e.gateway.tele.SoftFailed("enrich")
		}
	}
	for _, r := range results {
		professors[r.Index] = r.Value
	}
	return professors
}

// findProfile issues one domain-restricted query and returns the first
// hit whose URL matches the expected path pattern.
func (e *Enricher) findProfile(ctx context.Context, name, university, domain, pathPattern string) string {
	opts := e.gateway.Options()
	opts.MaxResults = 3
	opts.IncludeDomains = []string{domain}
	query := fmt.Sprintf("%s %s %s", name, university, domain)
	for _, hit := range e.gateway.Search(ctx, query, opts) {
		if strings.Contains(hit.URL, pathPattern) {
			return hit.URL
		}
	}
	return ""
}
