package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Grouping metrics
	GroupingRuns     prometheus.Counter
	GroupingDuration prometheus.Histogram
	GroupsCreated    prometheus.Counter
	NodesGrouped     prometheus.Counter
	NodesUngrouped   prometheus.Counter
	RuleMatches      prometheus.Counter
	ContextLinks     prometheus.Counter

	// Anomaly counters (see the engine's error taxonomy)
	MissingAttrSkips prometheus.Counter
	CyclesDetected   prometheus.Counter
	UnknownRuleKinds prometheus.Counter

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),

		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eventforest_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "eventforest_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		RequestSize: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "eventforest_http_request_size_bytes",
				Help:    "HTTP request body size",
				Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
			},
			[]string{"method", "path"},
		),
		ResponseSize: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "eventforest_http_response_size_bytes",
				Help:    "HTTP response body size",
				Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
			},
			[]string{"method", "path"},
		),

		GroupingRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eventforest_grouping_runs_total",
			Help: "Total number of grouping runs",
		}),
		GroupingDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "eventforest_grouping_duration_seconds",
			Help:    "Wall time of a full grouping run",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		GroupsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eventforest_groups_created_total",
			Help: "Total number of groups created",
		}),
		NodesGrouped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eventforest_nodes_grouped_total",
			Help: "Total number of event nodes assigned to a group",
		}),
		NodesUngrouped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eventforest_nodes_ungrouped_total",
			Help: "Total number of event nodes left without a group",
		}),
		RuleMatches: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eventforest_rule_matches_total",
			Help: "Total number of inter-thread rule matches",
		}),
		ContextLinks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eventforest_context_links_total",
			Help: "Total number of producer/consumer context links",
		}),

		MissingAttrSkips: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eventforest_missing_attr_skips_total",
			Help: "Rule candidates skipped because an attribute was absent",
		}),
		CyclesDetected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eventforest_cycles_detected_total",
			Help: "Cycles detected during group propagation",
		}),
		UnknownRuleKinds: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eventforest_unknown_rule_kinds_total",
			Help: "Rules referencing attribute kinds absent from the trace",
		}),

		Uptime: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "eventforest_uptime_seconds",
			Help: "Service uptime",
		}),
	}

	go m.updateUptime()
	return m
}

// updateUptime refreshes the uptime gauge every 10 seconds
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// RecordHTTPRequest records metrics for an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))
}
