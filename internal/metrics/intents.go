// Package metrics provides Prometheus metrics for intent handling and backend calls.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

var (
	intentRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledintent",
		Subsystem: "intent",
		Name:      "requests_total",
		Help:      "Intents handled, by intent and outcome",
	}, []string{"intent", "outcome"})

	backendRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledintent",
		Subsystem: "backend",
		Name:      "requests_total",
		Help:      "LED backend calls, by operation and outcome",
	}, []string{"op", "outcome"})

	backendDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ledintent",
		Subsystem: "backend",
		Name:      "request_duration_seconds",
		Help:      "LED backend call latency",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"op"})

	currentPattern = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "ledintent",
		Subsystem: "leds",
		Name:      "current_pattern_info",
		Help:      "Last pattern accepted by the backend (value is always 1)",
	}, []string{"pattern"})

	// Local counters for the stats API.
	statsMu   sync.RWMutex
	stats     = make(map[string]*IntentStats)
	lastApply string
)

// IntentStats holds per-intent counters.
type IntentStats struct {
	OK     uint64
	Errors uint64
}

// RecordIntent counts one handled intent.
func RecordIntent(intent string, err error) {
	outcome := outcomeOf(err)
	intentRequests.WithLabelValues(intent, outcome).Inc()

	statsMu.Lock()
	defer statsMu.Unlock()
	s, ok := stats[intent]
	if !ok {
		s = &IntentStats{}
		stats[intent] = s
	}
	if err != nil {
		s.Errors++
	} else {
		s.OK++
	}
}

// ObserveBackend records one backend call started at start.
func ObserveBackend(op string, start time.Time, err error) {
	backendRequests.WithLabelValues(op, outcomeOf(err)).Inc()
	backendDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// SetCurrentPattern marks p as the pattern currently shown.
func SetCurrentPattern(p string) {
	statsMu.Lock()
	defer statsMu.Unlock()
	if lastApply != "" && lastApply != p {
		currentPattern.DeleteLabelValues(lastApply)
	}
	currentPattern.WithLabelValues(p).Set(1)
	lastApply = p
}

// CurrentPattern returns the last pattern passed to SetCurrentPattern.
func CurrentPattern() string {
	statsMu.RLock()
	defer statsMu.RUnlock()
	return lastApply
}

// GetIntentStats returns a copy of the per-intent counters.
func GetIntentStats() map[string]IntentStats {
	statsMu.RLock()
	defer statsMu.RUnlock()
	result := make(map[string]IntentStats, len(stats))
	for name, s := range stats {
		result[name] = *s
	}
	return result
}

// Handler returns the Prometheus exposition handler for all promauto metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

func outcomeOf(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}
