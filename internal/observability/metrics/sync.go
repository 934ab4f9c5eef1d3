package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SyncMetrics observes the synchronization core: outbound requests,
// fetch reconciliation outcomes, poller lifecycle and operator
// actions.
type SyncMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	fetchTotal      *prometheus.CounterVec
	actionTotal     *prometheus.CounterVec
	pollTransitions *prometheus.CounterVec
	pollersArmed    prometheus.Gauge
}

func NewSyncMetrics(service string) *SyncMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "finsight",
			Subsystem: "remote",
			Name:      "requests_total",
			Help:      "Total outbound requests by operation and outcome.",
		},
		[]string{"service", "operation", "outcome"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "finsight",
			Subsystem: "remote",
			Name:      "request_duration_seconds",
			Help:      "Outbound request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "operation"},
	)
	fetchTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "finsight",
			Subsystem: "sync",
			Name:      "fetch_results_total",
			Help:      "Fetch results by reconciliation outcome (applied or discarded as stale).",
		},
		[]string{"service", "view", "outcome"},
	)
	actionTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "finsight",
			Subsystem: "sync",
			Name:      "actions_total",
			Help:      "Operator-triggered mutations by kind and status.",
		},
		[]string{"service", "action", "status"},
	)
	pollTransitions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "finsight",
			Subsystem: "sync",
			Name:      "poll_transitions_total",
			Help:      "Status poller arm/disarm transitions.",
		},
		[]string{"service", "direction"},
	)
	pollersArmed := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "finsight",
			Subsystem: "sync",
			Name:      "pollers_armed",
			Help:      "Number of currently armed status pollers.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		fetchTotal,
		actionTotal,
		pollTransitions,
		pollersArmed,
	)

	return &SyncMetrics{
		registry:        registry,
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		fetchTotal:      fetchTotal,
		actionTotal:     actionTotal,
		pollTransitions: pollTransitions,
		pollersArmed:    pollersArmed,
	}
}

func (m *SyncMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *SyncMetrics) ObserveRequest(operation string, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.requestTotal.WithLabelValues("console", operation, outcome).Inc()
	m.requestDuration.WithLabelValues("console", operation).Observe(duration.Seconds())
}

func (m *SyncMetrics) RecordFetch(view string, applied bool) {
	outcome := "applied"
	if !applied {
		outcome = "stale"
	}
	m.fetchTotal.WithLabelValues("console", view, outcome).Inc()
}

func (m *SyncMetrics) RecordAction(action, status string) {
	if status == "" {
		status = "unknown"
	}
	m.actionTotal.WithLabelValues("console", action, status).Inc()
}

func (m *SyncMetrics) RecordPollTransition(direction string, armed int) {
	m.pollTransitions.WithLabelValues("console", direction).Inc()
	m.pollersArmed.Set(float64(armed))
}
