package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kowshik24/email-draft/compose"
	"github.com/kowshik24/email-draft/config"
	"github.com/kowshik24/email-draft/models"
	"github.com/kowshik24/email-draft/provider"
)

// professorSchema is the response schema for the structured-completion
// strategy. Kept loose on purpose; the normalization pass is what
// actually enforces the record shape.
var professorSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "university": {"type": "string"},
    "professors": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": "string"},
          "title": {"type": "string"},
          "department": {"type": "string"},
          "research_areas": {"type": "array", "items": {"type": "string"}},
          "email": {"type": ["string", "null"]},
          "website": {"type": ["string", "null"]},
          "google_scholar": {"type": ["string", "null"]},
          "linkedin": {"type": ["string", "null"]}
        },
        "required": ["name", "research_areas"]
      }
    }
  },
  "required": ["university", "professors"]
}`)

// Matcher turns the search corpus into a typed DiscoveryResult via the
// LLM capability.
type Matcher struct {
	llm    provider.Provider
	cfg    config.DiscoveryConfig
	logger *log.Logger
}

func NewMatcher(llm provider.Provider, cfg config.DiscoveryConfig, logger *log.Logger) *Matcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Matcher{llm: llm, cfg: cfg, logger: logger}
}

// Match prompts the LLM to select professors strictly from the corpus and
// parses the result. Strategy order: schema-constrained completion, then
// freeform JSON located by the outermost braces. Both failing yields an
// UnparseableError carrying the raw text; a partially-typed object is
// never returned as success.
func (m *Matcher) Match(ctx context.Context, cvText, university string, corpus *Corpus, opts provider.Options) (*models.DiscoveryResult, error) {
	minP, maxP := m.cfg.MinProfessors, m.cfg.MaxProfessors
	if minP <= 0 {
		minP = 6
	}
	if maxP <= 0 {
		maxP = 10
	}
	prompt := compose.MatchPrompt(cvText, university, corpus.CombinedText, minP, maxP)

	raw, err := m.llm.CompleteStructured(ctx, prompt, "", professorSchema, opts)
	if err != nil {
		m.logger.Printf("WARN: structured completion failed, falling back to freeform JSON: %v", err)
		text, terr := m.llm.Complete(ctx, prompt, "", opts)
		if terr != nil {
			return nil, terr
		}
		sliced, serr := sliceJSONObject(text)
		if serr != nil {
			return nil, &models.UnparseableError{Op: "professor list", Raw: text, Err: serr}
		}
		raw = sliced
	}

	var loose struct {
		University string           `json:"university"`
		Professors []map[string]any `json:"professors"`
	}
	if uerr := json.Unmarshal(raw, &loose); uerr != nil {
		return nil, &models.UnparseableError{Op: "professor list", Raw: string(raw), Err: uerr}
	}
	if len(loose.Professors) == 0 {
		return nil, &models.UnparseableError{Op: "professor list", Raw: string(raw), Err: fmt.Errorf("no professors in response")}
	}

	professors, dropped := m.normalize(loose.Professors)
	if dropped > 0 {
		m.logger.Printf("WARN: dropped %d professor record(s) with no resolvable name", dropped)
	}
	if len(professors) == 0 {
		return nil, &models.UnparseableError{Op: "professor list", Raw: string(raw), Err: fmt.Errorf("all %d records missing required name", dropped)}
	}

	return &models.DiscoveryResult{
		ID:             uuid.NewString(),
		University:     university,
		Professors:     professors,
		HiringAnalysis: []models.HiringStatus{},
		SourceURLs:     corpus.SourceURLs,
		CreatedAt:      time.Now(),
	}, nil
}

// normalize runs the documented rename/default table over each loosely
// typed record and constructs strongly typed ProfessorRecords. Records
// with no name after normalization are dropped and counted, never
// silently discarded.
func (m *Matcher) normalize(in []map[string]any) ([]models.ProfessorRecord, int) {
	defaultTitle := m.cfg.DefaultTitle
	if defaultTitle == "" {
		defaultTitle = "Professor"
	}
	defaultDept := m.cfg.DefaultDepartment
	if defaultDept == "" {
		defaultDept = "Computer Science"
	}

	var out []models.ProfessorRecord
	dropped := 0
	for _, rec := range in {
		name := stringField(rec, "name")
		if name == "" {
			// Some models answer with full_name despite instructions.
			name = stringField(rec, "full_name")
		}
		if name == "" {
			dropped++
			continue
		}
		p := models.ProfessorRecord{
			Name:          name,
			Title:         stringField(rec, "title"),
			Department:    stringField(rec, "department"),
			ResearchAreas: stringSliceField(rec, "research_areas"),
			Email:         optionalField(rec, "email"),
			Website:       optionalField(rec, "website"),
			GoogleScholar: optionalField(rec, "google_scholar"),
			LinkedIn:      optionalField(rec, "linkedin"),
		}
		if p.Title == "" {
			p.Title = defaultTitle
		}
		if p.Department == "" {
			p.Department = defaultDept
		}
		if p.ResearchAreas == nil {
			p.ResearchAreas = []string{}
		}
		out = append(out, p)
	}
	return out, dropped
}

// sliceJSONObject extracts the first top-level JSON object from freeform
// model output by locating the first '{' and last '}'.
func sliceJSONObject(text string) (json.RawMessage, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object found in response")
	}
	candidate := text[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return nil, fmt.Errorf("extracted text is not valid JSON")
	}
	return json.RawMessage(candidate), nil
}

func stringField(rec map[string]any, key string) string {
	if v, ok := rec[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func stringSliceField(rec map[string]any, key string) []string {
	raw, ok := rec[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

func optionalField(rec map[string]any, key string) *string {
	if v, ok := rec[key].(string); ok {
		if s := strings.TrimSpace(v); s != "" {
			return &s
		}
	}
	return nil
}
