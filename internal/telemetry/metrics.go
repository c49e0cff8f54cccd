package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/piwi3910/BoardCut/internal/model"
)

const namespace = "boardcut"

// Plan outcomes recorded in PlansTotal.
const (
	OutcomeComplete  = "complete"
	OutcomeShortfall = "shortfall"
	OutcomeEmpty     = "empty"
	OutcomeError     = "error"
)

var (
	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "HTTP request latency by method, route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "endpoint", "status"})

	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "endpoint", "status"})

	APIActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "api_active_connections",
		Help:      "Requests currently being served.",
	})

	PlansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "plans_total",
		Help:      "Cutting plans computed, by outcome.",
	}, []string{"outcome"})

	PlanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "plan_duration_seconds",
		Help:      "Time spent computing a cutting plan.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
	})

	CutsAssignedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cuts_assigned_total",
		Help:      "Cut instances assigned to boards.",
	})

	ShortfallInchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shortfall_inches_total",
		Help:      "Additional material reported as needed, in inches.",
	})
)

// Handler exposes the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Outcome classifies a finished plan.
func Outcome(result model.PlanResult, err error) string {
	switch {
	case err != nil:
		return OutcomeError
	case result.Message == model.MessageNothingToPlan:
		return OutcomeEmpty
	case result.AdditionalMaterialNeededInches > 0:
		return OutcomeShortfall
	default:
		return OutcomeComplete
	}
}

// RecordPlan updates the plan metrics for one optimizer run.
func RecordPlan(result model.PlanResult, err error, elapsed time.Duration) {
	PlansTotal.WithLabelValues(Outcome(result, err)).Inc()
	PlanDuration.Observe(elapsed.Seconds())
	if err != nil {
		return
	}
	CutsAssignedTotal.Add(float64(len(result.Assignments)))
	ShortfallInchesTotal.Add(result.AdditionalMaterialNeededInches)
}
