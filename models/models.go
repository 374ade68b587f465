package models

import "time"

// ProfessorRecord is a single matched professor within a discovery run.
// Name is the unique key inside one result set; the optional link fields
// stay nil until the enrichment stage fills them.
type ProfessorRecord struct {
	Name          string   `json:"name"`
	Title         string   `json:"title"`
	Department    string   `json:"department"`
	ResearchAreas []string `json:"research_areas"`
	Email         *string  `json:"email"`
	Website       *string  `json:"website"`
	GoogleScholar *string  `json:"google_scholar"`
	LinkedIn      *string  `json:"linkedin"`
}

// HiringStatus is the best-effort hiring classification for one professor.
// IsHiring=false means "no positive signal found", not confirmed not-hiring.
type HiringStatus struct {
	ProfessorName string    `json:"professor_name"`
	IsHiring      bool      `json:"is_hiring"`
	PositionType  string    `json:"position_type,omitempty"`
	Details       string    `json:"details"`
	Sources       []string  `json:"sources"`
	LastUpdated   time.Time `json:"last_updated"`
}

// DiscoveryResult is the product of one user-triggered professor search.
// Professors keep the relevance order returned by the matcher;
// HiringAnalysis mirrors that order once the analysis stage has run.
type DiscoveryResult struct {
	ID             string            `json:"id"`
	University     string            `json:"university"`
	Professors     []ProfessorRecord `json:"professors"`
	HiringAnalysis []HiringStatus    `json:"hiring_analysis"`
	SourceURLs     []string          `json:"source_urls,omitempty"`
	Partial        bool              `json:"partial,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

// SendTimeRecommendation carries a send-time proposal in both the origin
// and the recipient zone. Recommended times never fall on a weekend.
type SendTimeRecommendation struct {
	OriginCurrentTime        time.Time `json:"origin_current_time"`
	RecipientCurrentTime     time.Time `json:"recipient_current_time"`
	RecipientTimezone        string    `json:"recipient_timezone"`
	RecommendedTimeOrigin    time.Time `json:"recommended_time_origin"`
	RecommendedTimeRecipient time.Time `json:"recommended_time_recipient"`
}
