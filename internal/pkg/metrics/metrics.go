// Package metrics provides Prometheus metrics for the honeypot service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	MessagesTotal     *prometheus.CounterVec
	TerminationsTotal *prometheus.CounterVec
	IntelItemsTotal   *prometheus.CounterVec
	DeliveriesTotal   *prometheus.CounterVec
	ActiveSessions    prometheus.GaugeFunc

	registry *prometheus.Registry
}

// New creates and registers all metrics. activeSessions is sampled on
// scrape.
func New(activeSessions func() float64) *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		MessagesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "honeypot_messages_total",
				Help: "Total inbound messages processed, by scam verdict.",
			},
			[]string{"scam"},
		),
		TerminationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "honeypot_terminations_total",
				Help: "Total session terminations by reason.",
			},
			[]string{"reason"},
		),
		IntelItemsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "honeypot_intel_items_total",
				Help: "Total extracted intelligence items by field.",
			},
			[]string{"field"},
		),
		DeliveriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "honeypot_report_deliveries_total",
				Help: "Total session report deliveries by outcome.",
			},
			[]string{"outcome"},
		),
		ActiveSessions: prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "honeypot_active_sessions",
				Help: "Number of live sessions in the store.",
			},
			activeSessions,
		),
		registry: reg,
	}

	reg.MustRegister(m.MessagesTotal)
	reg.MustRegister(m.TerminationsTotal)
	reg.MustRegister(m.IntelItemsTotal)
	reg.MustRegister(m.DeliveriesTotal)
	reg.MustRegister(m.ActiveSessions)

	return m
}

// Handler returns an http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordMessage increments the message counter.
func (m *Metrics) RecordMessage(scamDetected bool) {
	label := "false"
	if scamDetected {
		label = "true"
	}
	m.MessagesTotal.WithLabelValues(label).Inc()
}

// RecordTermination increments the termination counter.
func (m *Metrics) RecordTermination(reason string) {
	m.TerminationsTotal.WithLabelValues(reason).Inc()
}

// RecordIntelItems adds extracted item counts per field.
func (m *Metrics) RecordIntelItems(field string, count int) {
	if count > 0 {
		m.IntelItemsTotal.WithLabelValues(field).Add(float64(count))
	}
}

// RecordDelivery increments the delivery counter.
func (m *Metrics) RecordDelivery(outcome string) {
	m.DeliveriesTotal.WithLabelValues(outcome).Inc()
}
