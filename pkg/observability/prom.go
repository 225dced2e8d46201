package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus implements every hook interface by recording metrics.
type Prometheus struct {
	stageTotal    *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	latticeSites  prometheus.Histogram

	cacheEvents *prometheus.CounterVec
	cacheBytes  *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewPrometheus registers the metrics with reg and returns the hooks.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	f := promauto.With(reg)
	return &Prometheus{
		stageTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "latticekit_pipeline_stage_total",
			Help: "Pipeline stage executions by stage, label and result",
		}, []string{"stage", "label", "result"}),
		stageDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "latticekit_pipeline_stage_duration_seconds",
			Help:    "Pipeline stage duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10), // 0.1ms to ~26s
		}, []string{"stage"}),
		latticeSites: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "latticekit_lattice_sites",
			Help:    "Number of sites per built lattice",
			Buckets: prometheus.ExponentialBuckets(1, 4, 12),
		}),
		cacheEvents: f.NewCounterVec(prometheus.CounterOpts{
			Name: "latticekit_cache_events_total",
			Help: "Cache lookups and writes by key type and event",
		}, []string{"key_type", "event"}),
		cacheBytes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "latticekit_cache_written_bytes_total",
			Help: "Bytes written to the cache by key type",
		}, []string{"key_type"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "latticekit_http_requests_total",
			Help: "HTTP responses by method, route and status code",
		}, []string{"method", "route", "code"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "latticekit_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (p *Prometheus) OnBuildStart(context.Context, string) {}

func (p *Prometheus) OnBuildComplete(_ context.Context, kind string, sites, _ int, d time.Duration, err error) {
	p.stageTotal.WithLabelValues("build", kind, result(err)).Inc()
	p.stageDuration.WithLabelValues("build").Observe(d.Seconds())
	if err == nil {
		p.latticeSites.Observe(float64(sites))
	}
}

func (p *Prometheus) OnAnalyzeStart(context.Context, int) {}

func (p *Prometheus) OnAnalyzeComplete(_ context.Context, _ int, d time.Duration, err error) {
	p.stageTotal.WithLabelValues("analyze", "", result(err)).Inc()
	p.stageDuration.WithLabelValues("analyze").Observe(d.Seconds())
}

func (p *Prometheus) OnRenderStart(context.Context, string) {}

func (p *Prometheus) OnRenderComplete(_ context.Context, format string, d time.Duration, err error) {
	p.stageTotal.WithLabelValues("render", format, result(err)).Inc()
	p.stageDuration.WithLabelValues("render").Observe(d.Seconds())
}

func (p *Prometheus) OnCacheHit(_ context.Context, keyType string) {
	p.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (p *Prometheus) OnCacheMiss(_ context.Context, keyType string) {
	p.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (p *Prometheus) OnCacheSet(_ context.Context, keyType string, size int) {
	p.cacheEvents.WithLabelValues(keyType, "set").Inc()
	p.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (p *Prometheus) OnRequest(context.Context, string, string) {}

func (p *Prometheus) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	p.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ PipelineHooks = (*Prometheus)(nil)
	_ CacheHooks    = (*Prometheus)(nil)
	_ HTTPHooks     = (*Prometheus)(nil)
)
