// Package metrics exposes the Prometheus metrics of the guardhouse API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "guardhouse"

// Outcomes of a salary calculation.
const (
	SalaryResultSaved    = "saved"
	SalaryResultRejected = "rejected"
	SalaryResultFailed   = "failed"
)

// Collector is a prometheus.Collector that collects metrics about the HTTP API and the
// payroll.
type Collector struct {
	requests           *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
	salaryCalculations *prometheus.CounterVec
}

// NewCollector returns a new Collector.
func NewCollector() *Collector {
	return &Collector{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "http_requests_total",
				Help:      "The number of HTTP requests served, by route, method and status code.",
			}, []string{"route", "method", "code"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "http_request_duration_seconds",
				Help:      "The time taken to serve an HTTP request.",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			}, []string{"route", "method"},
		),
		salaryCalculations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "salary_calculations_total",
				Help:      "The number of salary calculations, by result.",
			}, []string{"result"},
		),
	}
}

// ObserveRequest records a served request.
func (c *Collector) ObserveRequest(route, method string, code int, elapsed time.Duration) {
	c.requests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	c.requestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// SalaryCalculated records the outcome of a salary calculation.
func (c *Collector) SalaryCalculated(result string) {
	c.salaryCalculations.WithLabelValues(result).Inc()
}

// Describe is part of the prometheus.Collector interface.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.requests.Describe(ch)
	c.requestDuration.Describe(ch)
	c.salaryCalculations.Describe(ch)
}

// Collect is part of the prometheus.Collector interface.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.requests.Collect(ch)
	c.requestDuration.Collect(ch)
	c.salaryCalculations.Collect(ch)
}
