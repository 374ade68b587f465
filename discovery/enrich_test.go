package discovery

import (
	"context"
	"testing"

	"github.com/kowshik24/email-draft/models"
	searchmodels "github.com/kowshik24/email-draft/tools/web_search/models"
)

func strPtr(s string) *string { return &s }

func TestEnrichFillsMissingLinks(t *testing.T) {
	searcher := &fakeSearcher{
		hits: map[string][]searchmodels.Result{
			"Jane Doe Example University scholar.google.com": {
				{URL: "https://scholar.google.com/citations?user=jd"},
			},
			"Jane Doe Example University linkedin.com": {
				{URL: "https://www.linkedin.com/in/jane-doe"},
			},
		},
	}
	professors := []models.ProfessorRecord{{Name: "Jane Doe"}}

	got := NewEnricher(newTestGateway(searcher), nil).Enrich(context.Background(), professors, "Example University")

	if got[0].GoogleScholar == nil || *got[0].GoogleScholar != "https://scholar.google.com/citations?user=jd" {
		t.Errorf("GoogleScholar = %v, want scholar citation URL", got[0].GoogleScholar)
	}
	if got[0].LinkedIn == nil || *got[0].LinkedIn != "https://www.linkedin.com/in/jane-doe" {
		t.Errorf("LinkedIn = %v, want profile URL", got[0].LinkedIn)
	}
}

func TestEnrichNeverOverwritesPopulatedLinks(t *testing.T) {
	searcher := &fakeSearcher{
		hits: map[string][]searchmodels.Result{
			"scholar.google.com": {{URL: "https://scholar.google.com/citations?user=other"}},
			"linkedin.com":       {{URL: "https://www.linkedin.com/in/someone-else"}},
		},
	}
	professors := []models.ProfessorRecord{{
		Name:          "Jane Doe",
		GoogleScholar: strPtr("https://scholar.google.com/citations?user=jd"),
		LinkedIn:      strPtr("https://www.linkedin.com/in/jane-doe"),
	}}

	got := NewEnricher(newTestGateway(searcher), nil).Enrich(context.Background(), professors, "Example University")

	if *got[0].GoogleScholar != "https://scholar.google.com/citations?user=jd" {
		t.Errorf("GoogleScholar overwritten: %s", *got[0].GoogleScholar)
	}
	if *got[0].LinkedIn != "https://www.linkedin.com/in/jane-doe" {
		t.Errorf("LinkedIn overwritten: %s", *got[0].LinkedIn)
	}
	if len(searcher.queries) != 0 {
		t.Errorf("issued %d queries for a fully populated record, want 0", len(searcher.queries))
	}
}

func TestEnrichRejectsOffPatternHits(t *testing.T) {
	// Company pages and university homepages come back from the
	// domain-filtered searches too; only profile-shaped URLs count.
	searcher := &fakeSearcher{
		hits: map[string][]searchmodels.Result{
			"Jane Doe Example University linkedin.com": {
				{URL: "https://www.linkedin.com/company/example-university"},
				{URL: "https://www.linkedin.com/school/example-university"},
			},
			"Jane Doe Example University scholar.google.com": {
				{URL: "https://www.example.edu/~jdoe"},
			},
		},
	}
	professors := []models.ProfessorRecord{{Name: "Jane Doe"}}

	got := NewEnricher(newTestGateway(searcher), nil).Enrich(context.Background(), professors, "Example University")

	if got[0].LinkedIn != nil {
		t.Errorf("LinkedIn = %s, want nil for non-profile hits", *got[0].LinkedIn)
	}
	if got[0].GoogleScholar != nil {
		t.Errorf("GoogleScholar = %s, want nil for off-domain hit", *got[0].GoogleScholar)
	}
}

func TestEnrichEmptyResultsDoNotBlockOthers(t *testing.T) {
	searcher := &fakeSearcher{
		hits: map[string][]searchmodels.Result{
			"Bob Lee Example University scholar.google.com": {
				{URL: "https://scholar.google.com/citations?user=bl"},
			},
		},
	}
	professors := []models.ProfessorRecord{
		{Name: "Alice Chen"}, // no hits at all
		{Name: "Bob Lee"},
	}

	got := NewEnricher(newTestGateway(searcher), nil).Enrich(context.Background(), professors, "Example University")

	if got[0].Name != "Alice Chen" || got[1].Name != "Bob Lee" {
		t.Fatalf("order changed: %s, %s", got[0].Name, got[1].Name)
	}
	if got[0].GoogleScholar != nil {
		t.Errorf("Alice Chen GoogleScholar = %v, want nil", got[0].GoogleScholar)
	}
	if got[1].GoogleScholar == nil || *got[1].GoogleScholar != "https://scholar.google.com/citations?user=bl" {
		t.Errorf("Bob Lee GoogleScholar = %v, want citation URL", got[1].GoogleScholar)
	}
}
