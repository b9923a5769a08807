// Package observability exposes Prometheus metrics for the generator service.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contains the custom PassGuard metrics. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	GeneratedTotal *prometheus.CounterVec
	ErrorsTotal    *prometheus.CounterVec
	EntropyBits    prometheus.Histogram
}

// NewMetrics creates and registers the PassGuard metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		GeneratedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "passguard_passwords_generated_total",
				Help: "Total number of generated passwords by strength label",
			},
			[]string{"strength"},
		),
		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "passguard_generation_errors_total",
				Help: "Total number of failed generation requests by reason",
			},
			[]string{"reason"},
		),
		EntropyBits: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "passguard_password_entropy_bits",
			Help:    "Entropy in bits of the generation process behind each password",
			Buckets: []float64{24, 40, 60, 80, 128, 256},
		}),
	}

	reg.MustRegister(m.GeneratedTotal, m.ErrorsTotal, m.EntropyBits)

	return m
}

// RecordGenerated counts a generated password.
func (m *Metrics) RecordGenerated(strength string, bits float64) {
	if m == nil {
		return
	}
	m.GeneratedTotal.WithLabelValues(strength).Inc()
	m.EntropyBits.Observe(bits)
}

// RecordError counts a failed generation by reason.
func (m *Metrics) RecordError(reason string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(reason).Inc()
}

// NewRegistry returns a registry with the standard Go and process collectors.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return registry
}

// Handler serves the metrics gathered by reg.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}
