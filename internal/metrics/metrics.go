// Package metrics holds the Prometheus collectors of the dashboard process.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	recompute       prometheus.Histogram
	filteredRows    prometheus.Histogram
	datasetRows     *prometheus.GaugeVec
	droppedRows     *prometheus.GaugeVec
}

// New registers every collector on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_http_requests_total",
			Help: "HTTP requests served, by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dashboard_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		recompute: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dashboard_recompute_duration_seconds",
			Help:    "Time spent filtering and aggregating for one selection.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
		}),
		filteredRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dashboard_filtered_rows",
			Help:    "Sales rows matching a selection.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		datasetRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "dashboard_dataset_rows",
			Help: "Rows loaded per dataset.",
		}, []string{"dataset"}),
		droppedRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "dashboard_dataset_rows_dropped",
			Help: "Rows excluded at load time, by dataset and reason.",
		}, []string{"dataset", "reason"}),
	}

	reg.MustRegister(
		m.requests,
		m.requestDuration,
		m.recompute,
		m.filteredRows,
		m.datasetRows,
		m.droppedRows,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) ObserveRecompute(rows int, d time.Duration) {
	m.recompute.Observe(d.Seconds())
	m.filteredRows.Observe(float64(rows))
}

func (m *Metrics) SetDataset(dataset string, loaded int, dropped map[string]int) {
	m.datasetRows.WithLabelValues(dataset).Set(float64(loaded))
	for reason, n := range dropped {
		m.droppedRows.WithLabelValues(dataset, reason).Set(float64(n))
	}
}
