package obs

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
)

// Metrics tracks request activity using atomic counters.
type Metrics struct {
	requests  atomic.Int64
	attempts  atomic.Int64
	failures  atomic.Int64
	exhausted atomic.Int64
	logger    *slog.Logger
}

// NewMetrics creates a new Metrics instance.
func NewMetrics(logger *slog.Logger) *Metrics {
	return &Metrics{
		logger: logger,
	}
}

// IncRequests increments the logical request counter.
func (m *Metrics) IncRequests() {
	m.requests.Add(1)
}

// IncAttempts increments the per-attempt counter.
func (m *Metrics) IncAttempts() {
	m.attempts.Add(1)
}

// IncFailures increments the failed-attempt counter.
func (m *Metrics) IncFailures() {
	m.failures.Add(1)
}

// IncExhausted increments the counter of requests that failed on every attempt.
func (m *Metrics) IncExhausted() {
	m.exhausted.Add(1)
}

// Snapshot returns current metric values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Requests:  m.requests.Load(),
		Attempts:  m.attempts.Load(),
		Failures:  m.failures.Load(),
		Exhausted: m.exhausted.Load(),
	}
}

// MetricsSnapshot represents a point-in-time snapshot of metrics.
type MetricsSnapshot struct {
	Requests  int64
	Attempts  int64
	Failures  int64
	Exhausted int64
}

// HealthHandler returns a handler for /healthz requests.
func HealthHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("failed to write health response", "error", err)
		}
	}
}

// MetricsHandler returns a handler for /metrics requests in Prometheus format.
func (m *Metrics) MetricsHandler() http.HandlerFunc {
	counters := []struct {
		name string
		help string
		get  func(MetricsSnapshot) int64
	}{
		{"requests_total", "Total number of logical requests", func(s MetricsSnapshot) int64 { return s.Requests }},
		{"attempts_total", "Total number of request attempts", func(s MetricsSnapshot) int64 { return s.Attempts }},
		{"attempt_failures_total", "Total number of failed attempts", func(s MetricsSnapshot) int64 { return s.Failures }},
		{"requests_exhausted_total", "Total number of requests that failed on every attempt", func(s MetricsSnapshot) int64 { return s.Exhausted }},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := m.Snapshot()

		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		w.WriteHeader(http.StatusOK)

		for _, c := range counters {
			_, err := fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s counter\n%s %d\n",
				c.name, c.help, c.name, c.name, c.get(snapshot))
			if err != nil {
				m.logger.Error("failed to write metrics", "error", err)
				return
			}
		}
	}
}
