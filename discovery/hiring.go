package discovery

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/kowshik24/email-draft/models"
)

// hiringKeywords tentatively mark a professor as hiring when present in
// the page text. notHiringKeywords override to not-hiring regardless.
// This is a known-weak substring heuristic (no negation scope handling);
// kept as observed behavior pending product input.
var hiringKeywords = []string{
	"hiring",
	"accepting students",
	"accepting new students",
	"accepting phd students",
	"positions available",
	"openings",
	"open position",
	"recruiting",
	"seeking phd",
	"seeking students",
	"looking for phd",
	"join my lab",
	"join our lab",
	"phd positions",
	"postdoc position",
	"prospective students",
	"funded position",
}

var notHiringKeywords = []string{
	"not hiring",
	"no longer accepting",
	"not accepting",
	"not currently accepting",
	"not taking",
	"no openings",
	"no open positions",
	"positions filled",
	"no funding",
}

var phdKeywords = []string{"phd", "ph.d", "graduate student", "doctoral"}
var postdocKeywords = []string{"postdoc", "post-doc", "postdoctoral"}

// HiringAnalyzer classifies hiring signals from visible web text. The
// contract is best-effort: IsHiring=false means "no positive signal
// found", not confirmed not-hiring.
type HiringAnalyzer struct {
	gateway *Gateway
	logger  *log.Logger
}

func NewHiringAnalyzer(gateway *Gateway, logger *log.Logger) *HiringAnalyzer {
	if logger == nil {
		logger = log.Default()
	}
	return &HiringAnalyzer{gateway: gateway, logger: logger}
}

// Analyze looks up hiring signals for one professor. All failures fold
// into a non-hiring status with the error recorded in Details, so a bad
// lookup never aborts a batch.
func (h *HiringAnalyzer) Analyze(ctx context.Context, professorName, university string) models.HiringStatus {
	status := models.HiringStatus{
		ProfessorName: professorName,
		Sources:       []string{},
		LastUpdated:   time.Now(),
	}

	opts := h.gateway.Options()
	opts.MaxResults = 3
	query := fmt.Sprintf("%s %s hiring PhD students postdoc openings", professorName, university)
	hits := h.gateway.Search(ctx, query, opts)
	if len(hits) == 0 {
		h.gateway.tele.SoftFailed("hiring")
		status.Details = "no search results for hiring signals"
		return status
	}

	text := h.gateway.Extract(ctx, hits[0])
	if strings.TrimSpace(text) == "" {
		h.gateway.tele.SoftFailed("hiring")
		status.Details = "top result had no extractable text"
		return status
	}
	lower := strings.ToLower(text)

	for _, kw := range hiringKeywords {
		if strings.Contains(lower, kw) {
			status.IsHiring = true
			status.PositionType = classifyPosition(lower)
			status.Details = excerptAround(text, kw)
			break
		}
	}
	// The not-hiring list overrides whatever the first pass decided.
	for _, kw := range notHiringKeywords {
		if strings.Contains(lower, kw) {
			status.IsHiring = false
			status.PositionType = ""
			status.Details = excerptAround(text, kw)
			break
		}
	}
	if status.Details == "" {
		status.Details = "no hiring signals found in visible text"
	}
	status.Sources = append(status.Sources, hits[0].URL)
	return status
}

// AnalyzeAll runs Analyze per professor with per-item isolation, keeping
// the professors' order.
func (h *HiringAnalyzer) AnalyzeAll(ctx context.Context, professors []models.ProfessorRecord, university string) []models.HiringStatus {
	results, _ := RunBatch(ctx, len(professors), func(ctx context.Context, i int) (models.HiringStatus, error) {
		return h.Analyze(ctx, professors[i].Name, university), nil
	})
	out := make([]models.HiringStatus, 0, len(results))
	for _, r := range results {
		out = append(out, r.Value)
	}
	return out
}

func classifyPosition(lower string) string {
	for _, kw := range postdocKeywords {
		if strings.Contains(lower, kw) {
			return "Postdoc"
		}
	}
	for _, kw := range phdKeywords {
		if strings.Contains(lower, kw) {
			return "PhD Student"
		}
	}
	return ""
}

// excerptAround returns a short evidence window around the first keyword
// occurrence for human inspection.
func excerptAround(text, keyword string) string {
	lower := strings.ToLower(text)
	idx := strings.Index(lower, keyword)
	if idx < 0 {
		return ""
	}
	start := idx - 80
	if start < 0 {
		start = 0
	}
	end := idx + len(keyword) + 80
	if end > len(text) {
		end = len(text)
	}
	return strings.TrimSpace(strings.Join(strings.Fields(text[start:end]), " "))
}
