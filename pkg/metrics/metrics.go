// Package metrics provides Prometheus collectors for the detection loop.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "emocam"

// Classification outcomes.
const (
	OutcomeSuccess    = "success"
	OutcomeNoFace     = "no_face"
	OutcomePrediction = "prediction_error"
	OutcomeNetwork    = "network_error"
)

// Reasons a completed response is not painted.
const (
	DropInactive   = "inactive"
	DropSuperseded = "superseded"
)

var (
	// ticksTotal counts poll ticks that fired.
	ticksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_ticks_total",
			Help:      "Total number of poll ticks",
		},
	)

	// snapshotErrorsTotal counts ticks skipped because no frame was available.
	snapshotErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_errors_total",
			Help:      "Total number of ticks skipped because the camera gave no frame",
		},
	)

	// classificationsTotal counts completed requests by outcome.
	classificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifications_total",
			Help:      "Total number of classification requests by outcome",
		},
		[]string{"outcome"},
	)

	// classifyDuration is a histogram of request round-trip time.
	classifyDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "classify_duration_seconds",
			Help:      "Duration of classification requests in seconds",
			Buckets:   []float64{.025, .05, .1, .25, .5, 1, 2, 5},
		},
	)

	// inflight is the number of requests awaiting a response.
	inflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "classify_inflight",
			Help:      "Number of classification requests in flight",
		},
	)

	// droppedTotal counts responses not painted.
	droppedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "responses_dropped_total",
			Help:      "Total number of responses discarded before painting",
		},
		[]string{"reason"},
	)

	// sessionActive is 1 while the camera is on.
	sessionActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "session_active",
			Help:      "Whether a detection session is active",
		},
	)

	// backendReady is 1 when the startup health check found a loaded model.
	backendReady = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "backend_model_loaded",
			Help:      "Whether the backend reported a loaded model at startup",
		},
	)
)

// allCollectors returns every collector for registration.
func allCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		ticksTotal,
		snapshotErrorsTotal,
		classificationsTotal,
		classifyDuration,
		inflight,
		droppedTotal,
		sessionActive,
		backendReady,
	}
}

// NewRegistry returns a registry holding the emocam collectors plus the
// Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(allCollectors()...)
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// RecordTick counts one poll tick.
func RecordTick() {
	ticksTotal.Inc()
}

// RecordSnapshotError counts a skipped tick.
func RecordSnapshotError() {
	snapshotErrorsTotal.Inc()
}

// RecordRequestStart marks a request as in flight.
func RecordRequestStart() {
	inflight.Inc()
}

// RecordRequestEnd records a finished request.
func RecordRequestEnd(outcome string, d time.Duration) {
	inflight.Dec()
	classificationsTotal.WithLabelValues(outcome).Inc()
	classifyDuration.Observe(d.Seconds())
}

// RecordDropped counts a response discarded for reason.
func RecordDropped(reason string) {
	droppedTotal.WithLabelValues(reason).Inc()
}

// SetSessionActive records the session state.
func SetSessionActive(active bool) {
	sessionActive.Set(boolToFloat(active))
}

// SetBackendReady records the startup health check result.
func SetBackendReady(ready bool) {
	backendReady.Set(boolToFloat(ready))
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
