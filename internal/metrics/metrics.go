// Package metrics holds the Prometheus collectors for the tracker.
// Collectors register with the default registry and are exposed on /metrics by the server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Completions counts completion attempts by activity and write status.
var Completions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "identityos",
	Subsystem: "tracker",
	Name:      "completions_total",
	Help:      "Total completion writes by activity and outcome (confirmed, failed).",
}, []string{"activity", "status"})

// StoreReads counts daily record reads by status.
var StoreReads = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "identityos",
	Subsystem: "store",
	Name:      "reads_total",
	Help:      "Total daily record reads by status (found, absent, unknown).",
}, []string{"status"})

// StoreWriteFailures counts merge writes the store rejected.
var StoreWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "identityos",
	Subsystem: "store",
	Name:      "write_failures_total",
	Help:      "Total merge writes that were not confirmed.",
})

// CourageTotal tracks the courage counter.
var CourageTotal = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "identityos",
	Subsystem: "tracker",
	Name:      "courage_under_fear",
	Help:      "Current courage-under-fear counter.",
})

// StreakDays tracks the most recently computed streak.
var StreakDays = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "identityos",
	Subsystem: "stats",
	Name:      "streak_days",
	Help:      "Most recently computed consecutive-day streak.",
})

// WeeklyWorkouts tracks the most recently computed weekly workout count.
var WeeklyWorkouts = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "identityos",
	Subsystem: "stats",
	Name:      "weekly_workouts",
	Help:      "Workouts in the most recent 7-day window.",
})

// AssetCacheRequests counts asset requests by cache result.
var AssetCacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "identityos",
	Subsystem: "assets",
	Name:      "cache_requests_total",
	Help:      "Total static asset requests by cache result (hit, miss).",
}, []string{"result"})

// HTTPRequests counts API requests by route pattern and status code.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "identityos",
	Subsystem: "http",
	Name:      "requests_total",
	Help:      "Total HTTP requests by method, route and status code.",
}, []string{"method", "route", "code"})
