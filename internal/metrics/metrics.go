// Package metrics exposes Prometheus counters for the activation flow.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the services report into.
type Recorder interface {
	RecordActivation(kind, status string)
	RecordRegistration(kind, code string)
	RecordDelivery(kind string, ok bool, d time.Duration)
}

// Collector is the Prometheus implementation of Recorder.
type Collector struct {
	activations     *prometheus.CounterVec
	registrations   *prometheus.CounterVec
	deliveries      *prometheus.CounterVec
	deliveryLatency *prometheus.HistogramVec
	gatherer        prometheus.Gatherer
}

// NewCollector registers the activation metrics on reg. gatherer serves
// Handler; pass the same registry in both positions.
func NewCollector(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Collector {
	c := &Collector{
		activations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signup_activation_requests_total",
			Help: "Activation requests by identifier kind and outcome.",
		}, []string{"kind", "status"}),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signup_registrations_total",
			Help: "Registration attempts by identifier kind and result code.",
		}, []string{"kind", "code"}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signup_deliveries_total",
			Help: "Code deliveries by channel and success.",
		}, []string{"kind", "ok"}),
		deliveryLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "signup_delivery_latency_seconds",
			Help:    "Time spent handing a code to the delivery channel.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
		gatherer: gatherer,
	}

	reg.MustRegister(c.activations, c.registrations, c.deliveries, c.deliveryLatency)
	return c
}

func (c *Collector) RecordActivation(kind, status string) {
	c.activations.WithLabelValues(kind, status).Inc()
}

func (c *Collector) RecordRegistration(kind, code string) {
	c.registrations.WithLabelValues(kind, code).Inc()
}

func (c *Collector) RecordDelivery(kind string, ok bool, d time.Duration) {
	c.deliveries.WithLabelValues(kind, strconv.FormatBool(ok)).Inc()
	c.deliveryLatency.WithLabelValues(kind).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordActivation(string, string)            {}
func (Nop) RecordRegistration(string, string)          {}
func (Nop) RecordDelivery(string, bool, time.Duration) {}
