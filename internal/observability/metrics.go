package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "creditpath"

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	reg *prometheus.Registry

	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	predictions    *prometheus.CounterVec
	rebuildSeconds prometheus.Histogram
	featureRows    prometheus.Gauge
	ingestedRows   *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "risk_segments_total",
			Help: "Recommendations served, by risk segment.",
		}, []string{"segment"}),
		rebuildSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "feature_rebuild_duration_seconds",
			Help:    "Wall time of full feature-table rebuilds.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
		featureRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "feature_rows",
			Help: "Rows written by the last successful feature rebuild.",
		}),
		ingestedRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "ingested_rows_total",
			Help: "Rows loaded by the storage loader, by table and outcome.",
		}, []string{"table", "outcome"}),
	}
	m.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests, m.httpDuration, m.predictions,
		m.rebuildSeconds, m.featureRows, m.ingestedRows,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveSegment(segment string) {
	m.predictions.WithLabelValues(segment).Inc()
}

func (m *Metrics) ObserveRebuild(d time.Duration, rows int) {
	m.rebuildSeconds.Observe(d.Seconds())
	m.featureRows.Set(float64(rows))
}

func (m *Metrics) ObserveIngest(table string, inserted, failed int) {
	m.ingestedRows.WithLabelValues(table, "inserted").Add(float64(inserted))
	m.ingestedRows.WithLabelValues(table, "failed").Add(float64(failed))
}

// Middleware records count and latency per matched route.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			m.httpRequests.WithLabelValues(route, c.Request().Method, strconv.Itoa(c.Response().Status)).Inc()
			m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}
