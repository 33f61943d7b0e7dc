package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// EngineMetrics holds every Prometheus collector the effect engine
// records against. Construct one per process with NewEngineMetrics;
// pass nil anywhere a *EngineMetrics is accepted to disable recording
// (every method is a no-op on a nil receiver).
type EngineMetrics struct {
	effectsApplied     *prometheus.CounterVec
	effectsRemoved     *prometheus.CounterVec
	activeEffects      prometheus.Gauge
	stackCount         *prometheus.HistogramVec
	updateDuration     prometheus.Histogram
	cascadePasses      prometheus.Histogram
	cuesDispatched     *prometheus.CounterVec
	contentLoads       *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewEngineMetrics creates and registers the engine's collectors
// against a private registry.
func NewEngineMetrics() *EngineMetrics {
	registry := prometheus.NewRegistry()

	m := &EngineMetrics{
		effectsApplied: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "effectkit_effects_applied_total",
				Help: "Total number of Apply calls by effect name and outcome",
			},
			[]string{"effect", "outcome"}, // outcome: "applied", "denied", "stacked"
		),
		effectsRemoved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "effectkit_effects_removed_total",
				Help: "Total number of active effects removed by effect name and reason",
			},
			[]string{"effect", "reason"}, // reason: "unapply", "expired", "stack_cleared"
		),
		activeEffects: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "effectkit_active_effects",
				Help: "Number of currently active effects across all targets",
			},
		),
		stackCount: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "effectkit_stack_count",
				Help:    "Distribution of stack counts observed on application",
				Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
			},
			[]string{"effect"},
		),
		updateDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "effectkit_update_duration_seconds",
				Help:    "Wall-clock time spent in one Manager.Update call",
				Buckets: prometheus.DefBuckets,
			},
		),
		cascadePasses: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "effectkit_attribute_cascade_passes",
				Help:    "Number of OnValueChanged recompute passes a single propagate triggered",
				Buckets: []float64{1, 2, 3, 4, 5, 6, 7, 8},
			},
		),
		cuesDispatched: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "effectkit_cues_dispatched_total",
				Help: "Total number of cue dispatches by callback type",
			},
			[]string{"callback"},
		),
		contentLoads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "effectkit_content_loads_total",
				Help: "Total number of content catalog load attempts by status",
			},
			[]string{"status"}, // "success", "failure"
		),
		registry: registry,
	}

	m.registry.MustRegister(
		m.effectsApplied,
		m.effectsRemoved,
		m.activeEffects,
		m.stackCount,
		m.updateDuration,
		m.cascadePasses,
		m.cuesDispatched,
		m.contentLoads,
	)

	return m
}

// Handler returns an HTTP handler exposing the engine's metrics in
// Prometheus exposition format.
func (m *EngineMetrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordApplied records an Apply outcome for effect.
func (m *EngineMetrics) RecordApplied(effect, outcome string) {
	if m == nil {
		return
	}
	m.effectsApplied.WithLabelValues(effect, outcome).Inc()
}

// RecordRemoved records an active effect leaving the engine.
func (m *EngineMetrics) RecordRemoved(effect, reason string) {
	if m == nil {
		return
	}
	m.effectsRemoved.WithLabelValues(effect, reason).Inc()
}

// SetActiveEffects updates the live active-effect gauge.
func (m *EngineMetrics) SetActiveEffects(count int) {
	if m == nil {
		return
	}
	m.activeEffects.Set(float64(count))
}

// ObserveStackCount records the stack count an effect settled at after
// an Apply call.
func (m *EngineMetrics) ObserveStackCount(effect string, count int) {
	if m == nil {
		return
	}
	m.stackCount.WithLabelValues(effect).Observe(float64(count))
}

// ObserveUpdateDuration records how long one Manager.Update call took.
func (m *EngineMetrics) ObserveUpdateDuration(seconds float64) {
	if m == nil {
		return
	}
	m.updateDuration.Observe(seconds)
}

// ObserveCascadePasses records how many recompute passes one attribute
// propagate triggered.
func (m *EngineMetrics) ObserveCascadePasses(passes int) {
	if m == nil {
		return
	}
	m.cascadePasses.Observe(float64(passes))
}

// RecordCueDispatched records one cue firing for the given callback
// type ("on_apply", "on_execute", "on_update", "on_remove").
func (m *EngineMetrics) RecordCueDispatched(callback string) {
	if m == nil {
		return
	}
	m.cuesDispatched.WithLabelValues(callback).Inc()
}

// RecordContentLoad records a content catalog load attempt.
func (m *EngineMetrics) RecordContentLoad(status string) {
	if m == nil {
		return
	}
	m.contentLoads.WithLabelValues(status).Inc()
}
