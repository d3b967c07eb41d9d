package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/acexeno/BuildIT-PC-sub000/internal/models"
	"github.com/acexeno/BuildIT-PC-sub000/pkg/suggestion"
)

type Registry struct {
	reg              *prometheus.Registry
	Evaluations      prometheus.Counter
	FailingChecks    *prometheus.CounterVec
	Score            prometheus.Histogram
	CandidateFetches *prometheus.CounterVec
	StaleSuggestions *prometheus.CounterVec
	SnapshotFailures prometheus.Counter
	ActiveSessions   prometheus.Gauge
	BuildsSaved      prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	evaluations := prometheus.NewCounter(prometheus.CounterOpts{Name: "buildit_evaluations_total"})
	failing := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "buildit_failing_checks_total"}, []string{"check"})
	score := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "buildit_compatibility_score",
		Buckets: []float64{0, 25, 50, 75, 100},
	})
	fetches := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "buildit_candidate_fetches_total"}, []string{"category", "stage", "result"})
	stale := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "buildit_stale_suggestions_dropped_total"}, []string{"category"})
	snapshotFailures := prometheus.NewCounter(prometheus.CounterOpts{Name: "buildit_snapshot_failures_total"})
	sessions := prometheus.NewGauge(prometheus.GaugeOpts{Name: "buildit_active_sessions"})
	saved := prometheus.NewCounter(prometheus.CounterOpts{Name: "buildit_builds_saved_total"})

	r.MustRegister(evaluations, failing, score, fetches, stale, snapshotFailures, sessions, saved)
	return &Registry{
		reg:              r,
		Evaluations:      evaluations,
		FailingChecks:    failing,
		Score:            score,
		CandidateFetches: fetches,
		StaleSuggestions: stale,
		SnapshotFailures: snapshotFailures,
		ActiveSessions:   sessions,
		BuildsSaved:      saved,
	}
}

// ObserveReport records one compatibility evaluation.
func (r *Registry) ObserveReport(rep models.CompatibilityReport) {
	r.Evaluations.Inc()
	r.Score.Observe(float64(rep.Score))
	for _, c := range rep.Failing() {
		r.FailingChecks.WithLabelValues(c.ID).Inc()
	}
}

func (r *Registry) FetchCompleted(category models.Category, stage suggestion.Stage, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.CandidateFetches.WithLabelValues(string(category), stage.String(), result).Inc()
}

func (r *Registry) SnapshotFailed() { r.SnapshotFailures.Inc() }

func (r *Registry) StaleSuggestionDropped(category models.Category) {
	r.StaleSuggestions.WithLabelValues(string(category)).Inc()
}

// Gatherer exposes the underlying registry for tests.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
