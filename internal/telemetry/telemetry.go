// Package telemetry exposes lightweight counters for the pipeline's
// network-facing operations. Served at /metrics in server mode.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Telemetry struct {
	DiscoveryRuns  prometheus.Counter
	SearchRequests *prometheus.CounterVec
	SearchFailures *prometheus.CounterVec
	LLMRequests    *prometheus.CounterVec
	SoftFailures   *prometheus.CounterVec
}

// New registers the counters with reg. Pass prometheus.DefaultRegisterer
// in production; tests use a private registry.
func New(reg prometheus.Registerer) *Telemetry {
	t := &Telemetry{
		DiscoveryRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "outreach_discovery_runs_total",
			Help: "Number of professor discovery runs started.",
		}),
		SearchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "outreach_search_requests_total",
			Help: "Web search requests by provider.",
		}, []string{"provider"}),
		SearchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "outreach_search_failures_total",
			Help: "Web search requests that soft-failed, by provider.",
		}, []string{"provider"}),
		LLMRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "outreach_llm_requests_total",
			Help: "LLM completion requests by provider.",
		}, []string{"provider"}),
		SoftFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "outreach_soft_failures_total",
			Help: "Per-item soft failures by pipeline stage.",
		}, []string{"stage"}),
	}
	reg.MustRegister(t.DiscoveryRuns, t.SearchRequests, t.SearchFailures, t.LLMRequests, t.SoftFailures)
	return t
}

func (t *Telemetry) RunStarted() {
	if t == nil {
		return
	}
	t.DiscoveryRuns.Inc()
}

func (t *Telemetry) SearchIssued(provider string) {
	if t == nil {
		return
	}
	t.SearchRequests.WithLabelValues(provider).Inc()
}

func (t *Telemetry) SearchFailed(provider string) {
	if t == nil {
		return
	}
	t.SearchFailures.WithLabelValues(provider).Inc()
}

func (t *Telemetry) LLMIssued(provider string) {
	if t == nil {
		return
	}
	t.LLMRequests.WithLabelValues(provider).Inc()
}

func (t *Telemetry) SoftFailed(stage string) {
	if t == nil {
		return
	}
	t.SoftFailures.WithLabelValues(stage).Inc()
}
