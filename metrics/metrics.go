// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the dashboard API
type Metrics struct {
	registry *prometheus.Registry

	SourceQueries       *prometheus.CounterVec
	SourceQueryDuration *prometheus.HistogramVec
	Requests            *prometheus.CounterVec
	ValidationFailures  prometheus.Counter
	OpenSources         prometheus.Gauge
}

// New creates the metrics on their own registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		SourceQueries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "canvass_source_queries_total",
			Help: "Queries executed against a data source, by operation and outcome",
		}, []string{"source", "operation", "outcome"}),
		SourceQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "canvass_source_query_duration_seconds",
			Help:    "Time spent running one operation against one data source",
			Buckets: prometheus.DefBuckets,
		}, []string{"source", "operation"}),
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "canvass_http_requests_total",
			Help: "HTTP requests served, by route and status code",
		}, []string{"route", "status"}),
		ValidationFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "canvass_filter_validation_failures_total",
			Help: "Requests rejected because a filter parameter was invalid",
		}),
		OpenSources: factory.NewGauge(prometheus.GaugeOpts{
			Name: "canvass_open_sources",
			Help: "Number of data sources opened at startup",
		}),
	}
}

// ObserveQuery records one operation run against one source.
func (m *Metrics) ObserveQuery(source, operation string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.SourceQueries.WithLabelValues(source, operation, outcome).Inc()
	m.SourceQueryDuration.WithLabelValues(source, operation).Observe(elapsed.Seconds())
}

// ObserveRequest counts one served request.
func (m *Metrics) ObserveRequest(route string, status int) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

// IncrementValidationFailures increments the rejected-filter counter by 1
func (m *Metrics) IncrementValidationFailures() {
	if m == nil {
		return
	}
	m.ValidationFailures.Inc()
}

func (m *Metrics) SetOpenSources(count int) {
	if m == nil {
		return
	}
	m.OpenSources.Set(float64(count))
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Gatherer is used by tests to inspect collected values.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}
