package observability

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusHooks implements every hook interface on top of Prometheus
// collectors. One value can be registered for all four hook kinds.
type PrometheusHooks struct {
	// Layout and render metrics
	LayoutsTotal     *prometheus.CounterVec
	LayoutDuration   *prometheus.HistogramVec
	LayoutShapes     *prometheus.HistogramVec
	RendersTotal     *prometheus.CounterVec
	RenderDuration   *prometheus.HistogramVec
	RenderErrorTotal *prometheus.CounterVec

	// Cache metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec
	CacheSetBytes    *prometheus.HistogramVec

	// Runtime metrics
	AcquisitionsTotal   *prometheus.CounterVec
	AcquisitionDuration *prometheus.HistogramVec
	ExecTotal           *prometheus.CounterVec
	ExecDuration        *prometheus.HistogramVec

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPErrorsTotal     *prometheus.CounterVec
}

// NewPrometheusHooks creates the collectors and registers them on registry.
func NewPrometheusHooks(registry *prometheus.Registry) *PrometheusHooks {
	h := &PrometheusHooks{
		LayoutsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "otelviz_layouts_total",
				Help: "Total number of diagram layouts",
			},
			[]string{"kind", "status"},
		),
		LayoutDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "otelviz_layout_duration_seconds",
				Help:    "Diagram layout duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"kind"},
		),
		LayoutShapes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "otelviz_layout_shapes",
				Help:    "Number of top-level shapes per layout",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
			[]string{"kind"},
		),
		RendersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "otelviz_renders_total",
				Help: "Total number of rendered artifacts",
			},
			[]string{"format"},
		),
		RenderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "otelviz_render_duration_seconds",
				Help:    "Document render duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"formats"},
		),
		RenderErrorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "otelviz_render_errors_total",
				Help: "Total number of failed document renders",
			},
			[]string{"formats"},
		),
		CacheHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "otelviz_cache_hits_total",
				Help: "Total number of cache hits",
			},
			[]string{"key_type"},
		),
		CacheMissesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "otelviz_cache_misses_total",
				Help: "Total number of cache misses",
			},
			[]string{"key_type"},
		),
		CacheSetBytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "otelviz_cache_set_bytes",
				Help:    "Size of cache writes in bytes",
				Buckets: prometheus.ExponentialBuckets(256, 4, 8),
			},
			[]string{"key_type"},
		),
		AcquisitionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "otelviz_runtime_acquisitions_total",
				Help: "Total number of runtime acquisitions",
			},
			[]string{"runtime", "status"},
		),
		AcquisitionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "otelviz_runtime_acquisition_duration_seconds",
				Help:    "Runtime acquisition duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"runtime"},
		),
		ExecTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "otelviz_runtime_exec_total",
				Help: "Total number of executed snippets",
			},
			[]string{"runtime", "status"},
		),
		ExecDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "otelviz_runtime_exec_duration_seconds",
				Help:    "Snippet execution duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"runtime"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "otelviz_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "otelviz_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		HTTPErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "otelviz_http_errors_total",
				Help: "Total number of HTTP handler errors",
			},
			[]string{"method", "route"},
		),
	}

	registry.MustRegister(
		h.LayoutsTotal,
		h.LayoutDuration,
		h.LayoutShapes,
		h.RendersTotal,
		h.RenderDuration,
		h.RenderErrorTotal,
		h.CacheHitsTotal,
		h.CacheMissesTotal,
		h.CacheSetBytes,
		h.AcquisitionsTotal,
		h.AcquisitionDuration,
		h.ExecTotal,
		h.ExecDuration,
		h.HTTPRequestsTotal,
		h.HTTPRequestDuration,
		h.HTTPErrorsTotal,
	)

	return h
}

// Register installs h as the pipeline, cache, runtime and HTTP hooks.
func (h *PrometheusHooks) Register() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetRuntimeHooks(h)
	SetHTTPHooks(h)
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// =============================================================================
// PipelineHooks
// =============================================================================

func (h *PrometheusHooks) OnLayoutStart(context.Context, string) {}

func (h *PrometheusHooks) OnLayoutComplete(_ context.Context, kind string, shapes int, d time.Duration, err error) {
	h.LayoutsTotal.WithLabelValues(kind, status(err)).Inc()
	h.LayoutDuration.WithLabelValues(kind).Observe(d.Seconds())
	if err == nil {
		h.LayoutShapes.WithLabelValues(kind).Observe(float64(shapes))
	}
}

func (h *PrometheusHooks) OnRenderStart(context.Context, string, []string) {}

func (h *PrometheusHooks) OnRenderComplete(_ context.Context, _ string, formats []string, d time.Duration, err error) {
	label := strings.Join(formats, ",")
	h.RenderDuration.WithLabelValues(label).Observe(d.Seconds())
	if err != nil {
		h.RenderErrorTotal.WithLabelValues(label).Inc()
		return
	}
	for _, f := range formats {
		h.RendersTotal.WithLabelValues(f).Inc()
	}
}

// =============================================================================
// CacheHooks
// =============================================================================

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.CacheHitsTotal.WithLabelValues(keyType).Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.CacheMissesTotal.WithLabelValues(keyType).Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.CacheSetBytes.WithLabelValues(keyType).Observe(float64(size))
}

// =============================================================================
// RuntimeHooks
// =============================================================================

func (h *PrometheusHooks) OnAcquireStart(context.Context, string) {}

func (h *PrometheusHooks) OnAcquireComplete(_ context.Context, runtime string, d time.Duration, err error) {
	h.AcquisitionsTotal.WithLabelValues(runtime, status(err)).Inc()
	h.AcquisitionDuration.WithLabelValues(runtime).Observe(d.Seconds())
}

func (h *PrometheusHooks) OnExec(_ context.Context, runtime string, failed bool, d time.Duration, err error) {
	s := status(err)
	if err == nil && failed {
		s = "failed"
	}
	h.ExecTotal.WithLabelValues(runtime, s).Inc()
	h.ExecDuration.WithLabelValues(runtime).Observe(d.Seconds())
}

// =============================================================================
// HTTPHooks
// =============================================================================

func (h *PrometheusHooks) OnRequest(context.Context, string, string) {}

func (h *PrometheusHooks) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	h.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	h.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (h *PrometheusHooks) OnError(_ context.Context, method, route string, _ error) {
	h.HTTPErrorsTotal.WithLabelValues(method, route).Inc()
}
