// Package metrics holds the Prometheus collectors of the pricing service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"capprice/internal/domain"
)

// Outcome labels for SimulationsTotal.
const (
	OutcomeSucceeded   = "succeeded"
	OutcomeNoScenarios = "no_scenarios"
	OutcomeFailed      = "failed"
)

// Recorder groups the collectors. A zero Recorder is not usable; use New.
type Recorder struct {
	simulations     *prometheus.CounterVec
	tiers           *prometheus.CounterVec
	workflowLatency prometheus.Histogram
	purged          prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		simulations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "capprice_simulations_total",
			Help: "Simulations requested, by outcome.",
		}, []string{"outcome"}),
		tiers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "capprice_normalizations_total",
			Help: "Workflow payloads normalized, by the cascade tier that produced the result.",
		}, []string{"tier"}),
		workflowLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "capprice_workflow_request_seconds",
			Help:    "Latency of pricing workflow webhook calls.",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 180, 240, 300},
		}),
		purged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "capprice_simulations_purged_total",
			Help: "Simulations deleted by the retention job.",
		}),
	}
	reg.MustRegister(r.simulations, r.tiers, r.workflowLatency, r.purged)
	return r
}

// Simulation counts one simulation request with the given outcome.
func (r *Recorder) Simulation(outcome string) {
	r.simulations.WithLabelValues(outcome).Inc()
}

// Normalized counts one normalization result.
func (r *Recorder) Normalized(tier domain.NormalizationTier) {
	r.tiers.WithLabelValues(string(tier)).Inc()
}

// WorkflowCall observes the duration of one webhook call.
func (r *Recorder) WorkflowCall(d time.Duration) {
	r.workflowLatency.Observe(d.Seconds())
}

// Purged counts simulations removed by retention.
func (r *Recorder) Purged(n int) {
	r.purged.Add(float64(n))
}
