// Package schedule recommends weekday send times for outreach email,
// converted between the sender's zone and the recipient's inferred zone.
package schedule

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/kowshik24/email-draft/config"
	"github.com/kowshik24/email-draft/models"
)

// zoneAliases maps common location words found in professor profiles to
// IANA zone names. Lookup is substring-based over the lowercased hint,
// longest keys first would be overkill; first match in iteration order of
// the alias list wins.
var zoneAliases = []struct {
	alias string
	zone  string
}{
	{"new york", "America/New_York"},
	{"new jersey", "America/New_York"},
	{"boston", "America/New_York"},
	{"massachusetts", "America/New_York"},
	{"pittsburgh", "America/New_York"},
	{"atlanta", "America/New_York"},
	{"florida", "America/New_York"},
	{"chicago", "America/Chicago"},
	{"texas", "America/Chicago"},
	{"austin", "America/Chicago"},
	{"houston", "America/Chicago"},
	{"illinois", "America/Chicago"},
	{"denver", "America/Denver"},
	{"colorado", "America/Denver"},
	{"arizona", "America/Phoenix"},
	{"california", "America/Los_Angeles"},
	{"los angeles", "America/Los_Angeles"},
	{"san francisco", "America/Los_Angeles"},
	{"seattle", "America/Los_Angeles"},
	{"washington state", "America/Los_Angeles"},
	{"vancouver", "America/Vancouver"},
	{"toronto", "America/Toronto"},
	{"montreal", "America/Toronto"},
	{"london", "Europe/London"},
	{"united kingdom", "Europe/London"},
	{"paris", "Europe/Paris"},
	{"france", "Europe/Paris"},
	{"germany", "Europe/Berlin"},
	{"berlin", "Europe/Berlin"},
	{"munich", "Europe/Berlin"},
	{"zurich", "Europe/Zurich"},
	{"switzerland", "Europe/Zurich"},
	{"amsterdam", "Europe/Amsterdam"},
	{"netherlands", "Europe/Amsterdam"},
	{"stockholm", "Europe/Stockholm"},
	{"sweden", "Europe/Stockholm"},
	{"singapore", "Asia/Singapore"},
	{"hong kong", "Asia/Hong_Kong"},
	{"tokyo", "Asia/Tokyo"},
	{"japan", "Asia/Tokyo"},
	{"seoul", "Asia/Seoul"},
	{"korea", "Asia/Seoul"},
	{"beijing", "Asia/Shanghai"},
	{"shanghai", "Asia/Shanghai"},
	{"china", "Asia/Shanghai"},
	{"india", "Asia/Kolkata"},
	{"bangalore", "Asia/Kolkata"},
	{"delhi", "Asia/Kolkata"},
	{"dhaka", "Asia/Dhaka"},
	{"bangladesh", "Asia/Dhaka"},
	{"sydney", "Australia/Sydney"},
	{"melbourne", "Australia/Melbourne"},
	{"australia", "Australia/Sydney"},
	{"usa", "America/New_York"},
	{"united states", "America/New_York"},
}

// Advisor computes send-time recommendations. now is injectable for
// tests; nil means time.Now.
type Advisor struct {
	cfg    config.ScheduleConfig
	logger *log.Logger
	now    func() time.Time
}

func NewAdvisor(cfg config.ScheduleConfig, logger *log.Logger) *Advisor {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.OriginTimezone == "" {
		cfg.OriginTimezone = "Asia/Dhaka"
	}
	if cfg.WindowStartHour == 0 && cfg.WindowStartMin == 0 {
		cfg.WindowStartHour, cfg.WindowStartMin = 9, 30
	}
	if cfg.CutoffHour == 0 {
		cfg.CutoffHour = 11
	}
	return &Advisor{cfg: cfg, logger: logger, now: time.Now}
}

// InferTimezone resolves a free-text location hint (university name,
// profile location line) to an IANA zone name. An unmatched hint falls
// back to the configured fallback zone; no fallback means an error.
func (a *Advisor) InferTimezone(locationHint string) (string, error) {
	lower := strings.ToLower(locationHint)
	for _, entry := range zoneAliases {
		if strings.Contains(lower, entry.alias) {
			return entry.zone, nil
		}
	}
	if a.cfg.FallbackTimezone != "" {
		a.logger.Printf("WARN: no timezone match for %q, using fallback %s", locationHint, a.cfg.FallbackTimezone)
		return a.cfg.FallbackTimezone, nil
	}
	return "", fmt.Errorf("could not infer timezone from %q and no fallback is configured", locationHint)
}

// Recommend proposes the next good send time for a recipient in zoneName.
// The window opens at the configured start (default 09:30 recipient
// time); a recipient clock already past the cutoff (default 11:00) rolls
// to the next day, and weekends always roll forward to Monday.
func (a *Advisor) Recommend(zoneName string) (*models.SendTimeRecommendation, error) {
	recipientLoc, err := time.LoadLocation(zoneName)
	if err != nil {
		return nil, fmt.Errorf("unknown recipient timezone %q: %w", zoneName, err)
	}
	originLoc, err := time.LoadLocation(a.cfg.OriginTimezone)
	if err != nil {
		return nil, &models.ConfigError{Field: "schedule.origin_timezone", Reason: err.Error()}
	}

	now := a.now()
	recipientNow := now.In(recipientLoc)

	target := time.Date(recipientNow.Year(), recipientNow.Month(), recipientNow.Day(),
		a.cfg.WindowStartHour, a.cfg.WindowStartMin, 0, 0, recipientLoc)
	cutoff := time.Date(recipientNow.Year(), recipientNow.Month(), recipientNow.Day(),
		a.cfg.CutoffHour, 0, 0, 0, recipientLoc)
	if !recipientNow.Before(cutoff) {
		target = target.AddDate(0, 0, 1)
	}
	for target.Weekday() == time.Saturday || target.Weekday() == time.Sunday {
		target = target.AddDate(0, 0, 1)
	}

	return &models.SendTimeRecommendation{
		OriginCurrentTime:        now.In(originLoc),
		RecipientCurrentTime:     recipientNow,
		RecipientTimezone:        zoneName,
		RecommendedTimeOrigin:    target.In(originLoc),
		RecommendedTimeRecipient: target,
	}, nil
}

// Advise combines inference and recommendation for one location hint.
func (a *Advisor) Advise(locationHint string) (*models.SendTimeRecommendation, error) {
	zone, err := a.InferTimezone(locationHint)
	if err != nil {
		return nil, err
	}
	return a.Recommend(zone)
}
