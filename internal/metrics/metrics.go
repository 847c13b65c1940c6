package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GuardDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobsportal_guard_decisions_total",
		Help: "Route guard decisions by reason.",
	}, []string{"reason"})

	GuardRedirectsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobsportal_guard_redirects_total",
		Help: "Navigations redirected by the route guard, by destination.",
	}, []string{"to"})

	GuardStorageErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jobsportal_guard_storage_errors_total",
		Help: "Auth token reads that failed and were treated as signed out.",
	})

	GuardDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "jobsportal_guard_duration_seconds",
		Help:    "Time spent evaluating the route guard.",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
	})
)
