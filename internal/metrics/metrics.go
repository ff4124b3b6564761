// Package metrics exposes Prometheus counters for the journal service and API.
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

// Metrics holds the collectors on a private registry. A nil *Metrics is a
// valid no-op recorder.
//
// Metrics:
//   - voicejournal_entries_saved_total{synced} - entries written locally
//   - voicejournal_titles_total{source} - titles by origin (remote, heuristic)
//   - voicejournal_remote_failures_total{op} - best-effort remote calls that failed
//   - voicejournal_http_requests_total{method,route,status}
//   - voicejournal_http_request_duration_seconds{method,route}
type Metrics struct {
	Registry *prometheus.Registry

	EntriesSaved   *prometheus.CounterVec
	Titles         *prometheus.CounterVec
	RemoteFailures *prometheus.CounterVec
	HTTPRequests   *prometheus.CounterVec
	HTTPDuration   *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		EntriesSaved: f.NewCounterVec(prometheus.CounterOpts{
			Name: "voicejournal_entries_saved_total",
			Help: "Journal entries written to the local store",
		}, []string{"synced"}),
		Titles: f.NewCounterVec(prometheus.CounterOpts{
			Name: "voicejournal_titles_total",
			Help: "Titles produced, by source",
		}, []string{"source"}),
		RemoteFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "voicejournal_remote_failures_total",
			Help: "Best-effort remote store operations that failed",
		}, []string{"op"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "voicejournal_http_requests_total",
			Help: "HTTP requests served",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "voicejournal_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (m *Metrics) EntrySaved(synced bool) {
	if m == nil {
		return
	}
	m.EntriesSaved.WithLabelValues(strconv.FormatBool(synced)).Inc()
}

func (m *Metrics) TitleProduced(source string) {
	if m == nil {
		return
	}
	m.Titles.WithLabelValues(source).Inc()
}

func (m *Metrics) RemoteFailed(op string) {
	if m == nil {
		return
	}
	m.RemoteFailures.WithLabelValues(op).Inc()
}

func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
