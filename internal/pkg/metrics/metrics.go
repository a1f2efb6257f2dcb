// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "intellilab"

type Metrics struct {
	registry *prometheus.Registry

	DetectionLimit   *prometheus.CounterVec
	OCRCache         *prometheus.CounterVec
	InsightRegens    prometheus.Counter
	InsightCount     *prometheus.GaugeVec
	DashboardRefresh prometheus.Histogram
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		DetectionLimit: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "detection_limit_calculations_total",
			Help:      "Detection-limit calculations by method and outcome.",
		}, []string{"method", "result"}),
		OCRCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ocr_cache_requests_total",
			Help:      "OCR analyze requests by cache outcome.",
		}, []string{"result"}),
		InsightRegens: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "insight_regenerations_total",
			Help:      "Correlation regenerations run by the insight aggregator.",
		}),
		InsightCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "insights",
			Help:      "Current correlations by priority.",
		}, []string{"priority"}),
		DashboardRefresh: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dashboard_refresh_seconds",
			Help:      "Duration of dashboard KPI refreshes.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.DetectionLimit,
		m.OCRCache,
		m.InsightRegens,
		m.InsightCount,
		m.DashboardRefresh,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveDetectionLimit(method, result string) {
	if m == nil {
		return
	}
	m.DetectionLimit.WithLabelValues(method, result).Inc()
}

func (m *Metrics) ObserveOCRCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.OCRCache.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveInsights(high, medium int) {
	if m == nil {
		return
	}
	m.InsightRegens.Inc()
	m.InsightCount.WithLabelValues("high").Set(float64(high))
	m.InsightCount.WithLabelValues("medium").Set(float64(medium))
}

func (m *Metrics) ObserveDashboardRefresh(d time.Duration) {
	if m == nil {
		return
	}
	m.DashboardRefresh.Observe(d.Seconds())
}
