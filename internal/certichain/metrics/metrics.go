// Package metrics holds the service's prometheus collectors. A nil *Metrics
// is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "certichain"

type Metrics struct {
	Registry *prometheus.Registry

	issuance               *prometheus.CounterVec
	issuanceDuration       prometheus.Histogram
	reconciliationRequired prometheus.Counter
	shareVerifications     *prometheus.CounterVec
	publishRetries         prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		issuance: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "issuance_total",
			Help:      "Issuance attempts by outcome and the stage that ended them.",
		}, []string{"outcome", "stage"}),
		issuanceDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "issuance_duration_seconds",
			Help:      "Wall time of successful issuances.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		}),
		reconciliationRequired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconciliation_required_total",
			Help:      "Minted assets whose local record could not be committed.",
		}),
		shareVerifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "share_verifications_total",
			Help:      "Share token verifications by outcome.",
		}, []string{"outcome"}),
		publishRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "metadata_publish_retries_total",
			Help:      "Retried content storage writes.",
		}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.issuance,
		m.issuanceDuration,
		m.reconciliationRequired,
		m.shareVerifications,
		m.publishRetries,
	)
	return m
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

func (m *Metrics) IssuanceSucceeded(d time.Duration) {
	if m == nil {
		return
	}
	m.issuance.WithLabelValues("success", "done").Inc()
	m.issuanceDuration.Observe(d.Seconds())
}

func (m *Metrics) IssuanceFailed(stage string) {
	if m == nil {
		return
	}
	m.issuance.WithLabelValues("failure", stage).Inc()
}

func (m *Metrics) ReconciliationRequired() {
	if m == nil {
		return
	}
	m.reconciliationRequired.Inc()
}

func (m *Metrics) ShareVerified(outcome string) {
	if m == nil {
		return
	}
	m.shareVerifications.WithLabelValues(outcome).Inc()
}

func (m *Metrics) PublishRetried(error) {
	if m == nil {
		return
	}
	m.publishRetries.Inc()
}
