package compose

import (
	"context"
	"strings"

	"github.com/kowshik24/email-draft/models"
	"github.com/kowshik24/email-draft/provider"
)

// Drafter produces outreach artifacts with the LLM capability. It is a
// thin layer: prompt construction lives in this package's prompt
// builders, parsing is plain text, and the only post-processing is
// signature appending for email and fence stripping for LaTeX.
type Drafter struct {
	llm  provider.Provider
	opts provider.Options
}

func NewDrafter(llm provider.Provider, opts provider.Options) *Drafter {
	return &Drafter{llm: llm, opts: opts}
}

// WithModel returns a Drafter that uses a different model. Switching to a
// GPT-5 family model drops the temperature, which that family rejects.
func (d *Drafter) WithModel(model string) *Drafter {
	if model == "" {
		return d
	}
	opts := d.opts
	opts.Model = model
	if provider.IsGPT5Model(model) {
		opts.Temperature = nil
	}
	return &Drafter{llm: d.llm, opts: opts}
}

// DraftEmail writes a cold-outreach email for one professor. signature
// may be empty; when present it is appended verbatim after a separator.
func (d *Drafter) DraftEmail(ctx context.Context, cvText, profInfo, studentName, signature string) (string, error) {
	if strings.TrimSpace(cvText) == "" {
		return "", &models.ConfigError{Field: "cv_text", Reason: "must not be empty"}
	}
	if strings.TrimSpace(profInfo) == "" {
		return "", &models.ConfigError{Field: "professor_info", Reason: "must not be empty"}
	}
	body, err := d.llm.Complete(ctx, EmailPrompt(cvText, profInfo, studentName), "", d.opts)
	if err != nil {
		return "", err
	}
	body = strings.TrimSpace(body)
	if signature != "" {
		body = AppendSignature(body, signature)
	}
	return body, nil
}

// EditSOP tailors a LaTeX statement-of-purpose template to one professor
// and returns compilable LaTeX with any markdown code fences removed.
func (d *Drafter) EditSOP(ctx context.Context, cvText, profInfo, sopTemplate, studentName string) (string, error) {
	if strings.TrimSpace(sopTemplate) == "" {
		return "", &models.ConfigError{Field: "sop_template", Reason: "must not be empty"}
	}
	out, err := d.llm.Complete(ctx, SOPPrompt(cvText, profInfo, sopTemplate, studentName), "", d.opts)
	if err != nil {
		return "", err
	}
	return CleanLaTeX(out), nil
}
