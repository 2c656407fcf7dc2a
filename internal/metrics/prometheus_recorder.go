package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	assembleDuration *prom.HistogramVec
	assembleOutcomes *prom.CounterVec
	rootFragments    *prom.CounterVec
	regenerations    *prom.CounterVec
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		assembleDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "deckshell",
			Name:      "assemble_duration_seconds",
			Help:      "Duration of index.html shell generation",
			Buckets:   prom.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"mode"}),
		assembleOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "deckshell",
			Name:      "assemble_outcomes_total",
			Help:      "Shell generation outcomes",
		}, []string{"mode", "outcome"}),
		rootFragments: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "deckshell",
			Name:      "root_fragments_total",
			Help:      "Override root index.html handling by result",
		}, []string{"result"}),
		regenerations: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "deckshell",
			Name:      "dev_regenerations_total",
			Help:      "Dev server regenerations triggered by file changes",
		}, []string{"result"}),
	}
	reg.MustRegister(pr.assembleDuration, pr.assembleOutcomes, pr.rootFragments, pr.regenerations)
	return pr
}

func (p *PrometheusRecorder) ObserveAssembleDuration(mode string, d time.Duration) {
	if p == nil || p.assembleDuration == nil {
		return
	}
	p.assembleDuration.WithLabelValues(mode).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncAssembleOutcome(mode string, outcome OutcomeLabel) {
	if p == nil || p.assembleOutcomes == nil {
		return
	}
	p.assembleOutcomes.WithLabelValues(mode, string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncRootFragment(result FragmentResult) {
	if p == nil || p.rootFragments == nil {
		return
	}
	p.rootFragments.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncRegeneration(success bool) {
	if p == nil || p.regenerations == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.regenerations.WithLabelValues(res).Inc()
}
