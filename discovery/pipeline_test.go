package discovery

import (
	"context"
	"errors"
	"testing"

	"github.com/kowshik24/email-draft/config"
	"github.com/kowshik24/email-draft/models"
	"github.com/kowshik24/email-draft/provider"
	searchmodels "github.com/kowshik24/email-draft/tools/web_search/models"
)

func newTestPipeline(searcher *fakeSearcher, llm provider.Provider) *Pipeline {
	cfg := &config.Config{}
	cfg.Discovery.MinProfessors = 1
	return NewPipeline(newTestGateway(searcher), llm, cfg, nil, nil)
}

func TestPipelineEndToEnd(t *testing.T) {
	searcher := &fakeSearcher{
		hits: map[string][]searchmodels.Result{
			"faculty": {{URL: "https://cs.example.edu/faculty"}},
			"Jane Doe": {
				{URL: "https://scholar.google.com/citations?user=jd", Title: "Jane Doe - Google Scholar"},
			},
		},
		pages: map[string]string{
			"https://cs.example.edu/faculty": "Dr. Jane Doe is a Professor of Robotics at Example University. She is currently accepting PhD students.",
		},
	}
	llm := &fakeLLM{
		structured: `{"university":"Example University","professors":[
			{"name":"Jane Doe","title":"Professor","department":"Computer Science",
			 "research_areas":["robotics"]}]}`,
	}

	result, err := newTestPipeline(searcher, llm).Run(context.Background(),
		"My research is in robotics and machine learning.", "Example University")
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Professors) != 1 {
		t.Fatalf("got %d professors, want 1", len(result.Professors))
	}
	if result.Professors[0].Name != "Jane Doe" {
		t.Errorf("professor = %+v", result.Professors[0])
	}
	if len(result.HiringAnalysis) != 1 {
		t.Fatalf("got %d hiring statuses, want one per professor", len(result.HiringAnalysis))
	}
	if result.HiringAnalysis[0].ProfessorName != "Jane Doe" {
		t.Errorf("hiring status = %+v", result.HiringAnalysis[0])
	}
	if result.Partial {
		t.Error("run should not be partial with min_professors=1 satisfied")
	}
}

func TestPipelineNoResults(t *testing.T) {
	llm := &fakeLLM{structured: `{"university":"U","professors":[{"name":"A"}]}`}
	_, err := newTestPipeline(&fakeSearcher{}, llm).Run(context.Background(), "robotics cv", "Nowhere University")
	if !errors.Is(err, models.ErrNoResults) {
		t.Fatalf("err = %v, want ErrNoResults", err)
	}
	if len(llm.prompts) != 0 {
		t.Error("LLM must not be called when the corpus is empty")
	}
}

func TestPipelineValidation(t *testing.T) {
	pipe := newTestPipeline(&fakeSearcher{}, &fakeLLM{})
	tests := []struct {
		name       string
		cvText     string
		university string
	}{
		{"empty cv", "", "MIT"},
		{"blank cv", "   \n", "MIT"},
		{"empty university", "robotics cv", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pipe.Run(context.Background(), tt.cvText, tt.university)
			var cfgErr *models.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("err = %v, want ConfigError", err)
			}
		})
	}
}

func TestPipelinePartialBelowMinimum(t *testing.T) {
	searcher := &fakeSearcher{
		hits:  map[string][]searchmodels.Result{"faculty": {{URL: "https://cs.example.edu/f"}}},
		pages: map[string]string{"https://cs.example.edu/f": "Dr. A works on systems."},
	}
	llm := &fakeLLM{structured: `{"university":"U","professors":[{"name":"A"}]}`}
	cfg := &config.Config{}
	cfg.Discovery.MinProfessors = 6
	pipe := NewPipeline(newTestGateway(searcher), llm, cfg, nil, nil)

	result, err := pipe.Run(context.Background(), "distributed systems cv", "U")
	if err != nil {
		t.Fatal(err)
	}
	if !result.Partial {
		t.Error("run with fewer professors than min_professors must be marked partial")
	}
}
