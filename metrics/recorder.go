// Package metrics exposes the site's Prometheus instrumentation.
//
// A nil *Recorder is valid and records nothing, so components can take one
// unconditionally.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "chefsite"

// Result labels for content loads.
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

type Recorder struct {
	registry      *prom.Registry
	contentLoads  *prom.CounterVec
	parseWarnings *prom.CounterVec
	readFailures  *prom.CounterVec
	cacheEvents   *prom.CounterVec
	scanDuration  *prom.HistogramVec
	httpRequests  *prom.CounterVec
	httpDuration  *prom.HistogramVec
	publishes     *prom.CounterVec
}

// NewRecorder registers the site metrics on reg, or on a fresh registry when reg is nil.
func NewRecorder(reg *prom.Registry) *Recorder {
	if reg == nil {
		reg = prom.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	r := &Recorder{
		registry: reg,
		contentLoads: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "content_loads_total",
			Help:      "Content file loads by locale, view and result",
		}, []string{"locale", "view", "result"}),
		parseWarnings: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "front_matter_warnings_total",
			Help:      "Content files whose metadata block was discarded",
		}, []string{"locale"}),
		readFailures: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "content_read_failures_total",
			Help:      "Content files skipped because they could not be read",
		}, []string{"locale"}),
		cacheEvents: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "content_cache_events_total",
			Help:      "Content cache hits, misses and invalidations",
		}, []string{"event"}),
		scanDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "locale_scan_duration_seconds",
			Help:      "Duration of a full locale directory scan",
			Buckets:   prom.DefBuckets,
		}, []string{"locale"}),
		httpRequests: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status code",
		}, []string{"route", "code"}),
		httpDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern",
			Buckets:   prom.DefBuckets,
		}, []string{"route"}),
		publishes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "publish_runs_total",
			Help:      "Static artifact publish runs by outcome",
		}, []string{"result"}),
	}
	reg.MustRegister(r.contentLoads, r.parseWarnings, r.readFailures, r.cacheEvents,
		r.scanDuration, r.httpRequests, r.httpDuration, r.publishes)
	return r
}

func (r *Recorder) IncContentLoad(locale, view, result string) {
	if r == nil {
		return
	}
	r.contentLoads.WithLabelValues(locale, view, result).Inc()
}

func (r *Recorder) IncParseWarning(locale string) {
	if r == nil {
		return
	}
	r.parseWarnings.WithLabelValues(locale).Inc()
}

func (r *Recorder) IncReadFailure(locale string) {
	if r == nil {
		return
	}
	r.readFailures.WithLabelValues(locale).Inc()
}

// IncCache counts a cache event: "hit", "miss" or "invalidate".
func (r *Recorder) IncCache(event string) {
	if r == nil {
		return
	}
	r.cacheEvents.WithLabelValues(event).Inc()
}

func (r *Recorder) ObserveScan(locale string, d time.Duration) {
	if r == nil {
		return
	}
	r.scanDuration.WithLabelValues(locale).Observe(d.Seconds())
}

func (r *Recorder) ObserveHTTP(route string, status int, d time.Duration) {
	if r == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	r.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(route).Observe(d.Seconds())
}

func (r *Recorder) IncPublish(success bool) {
	if r == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	r.publishes.WithLabelValues(res).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (r *Recorder) Registry() *prom.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}
