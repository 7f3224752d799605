package provisioning

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "pteronode"

// Metrics records provisioning outcomes for the node-exporter textfile collector.
// Each Metrics owns its registry so repeated runs and tests never collide.
type Metrics struct {
	registry *prometheus.Registry

	phaseDuration *prometheus.HistogramVec
	phaseTotal    *prometheus.CounterVec
	eventsTotal   *prometheus.CounterVec
	lastSuccess   prometheus.Gauge
}

// NewMetrics creates and registers the provisioning metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		phaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "phase_duration_seconds",
				Help:      "Duration of provisioning phases in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
			},
			[]string{"phase"},
		),
		phaseTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "phase_total",
				Help:      "Total number of provisioning phases by result",
			},
			[]string{"phase", "result"},
		),
		eventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "events_total",
				Help:      "Total number of provisioning events by type",
			},
			[]string{"type"},
		),
		lastSuccess: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "last_success_timestamp_seconds",
				Help:      "Unix time of the last successful node registration",
			},
		),
	}

	m.registry.MustRegister(m.phaseDuration, m.phaseTotal, m.eventsTotal, m.lastSuccess)
	return m
}

// Registry returns the registry holding the provisioning metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObservePhase records the duration and result of a phase.
func (m *Metrics) ObservePhase(phase string, d time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	m.phaseDuration.WithLabelValues(phase).Observe(d.Seconds())
	m.phaseTotal.WithLabelValues(phase, result).Inc()
}

// RecordEvent counts an observer event.
func (m *Metrics) RecordEvent(t EventType) {
	m.eventsTotal.WithLabelValues(string(t)).Inc()
}

// MarkSuccess stamps the completion time of a successful run.
func (m *Metrics) MarkSuccess() {
	m.lastSuccess.SetToCurrentTime()
}

// WriteTextfile writes all metrics in the text exposition format to path.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

// Observer wraps inner so that every event is also counted.
func (m *Metrics) Observer(inner Observer) Observer {
	return &metricsObserver{Observer: inner, metrics: m}
}

type metricsObserver struct {
	Observer
	metrics *Metrics
}

func (o *metricsObserver) Event(event Event) {
	o.metrics.RecordEvent(event.Type)
	o.Observer.Event(event)
}

func (o *metricsObserver) WithFields(fields map[string]string) Observer {
	return &metricsObserver{Observer: o.Observer.WithFields(fields), metrics: o.metrics}
}
