// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	RateLimitAllowed  = "allowed"
	RateLimitRejected = "rejected"
	RateLimitFailOpen = "fail_open"

	CompletionSuccess     = "success"
	CompletionFailure     = "failure"
	CompletionParseFailed = "parse_error"
)

// Recorder is what services and middleware record through.
type Recorder interface {
	RecordHTTPRequest(method, route string, status int, duration time.Duration)
	RecordRateLimitDecision(outcome string)
	RecordCompletion(outcome string, duration time.Duration)
}

// Collector is the Prometheus implementation of Recorder.
type Collector struct {
	httpRequests       *prometheus.CounterVec
	httpLatency        *prometheus.HistogramVec
	rateLimitDecisions *prometheus.CounterVec
	completions        *prometheus.CounterVec
	completionLatency  prometheus.Histogram
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wardrobe_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wardrobe_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		rateLimitDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wardrobe_rate_limit_decisions_total",
			Help: "Daily quota decisions by outcome.",
		}, []string{"outcome"}),
		completions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wardrobe_llm_completions_total",
			Help: "LLM completion calls by outcome.",
		}, []string{"outcome"}),
		completionLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "wardrobe_llm_completion_duration_seconds",
			Help:    "LLM completion latency.",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpLatency,
		c.rateLimitDecisions,
		c.completions,
		c.completionLatency,
	)

	return c
}

func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpLatency.WithLabelValues(route).Observe(duration.Seconds())
}

func (c *Collector) RecordRateLimitDecision(outcome string) {
	c.rateLimitDecisions.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordCompletion(outcome string, duration time.Duration) {
	c.completions.WithLabelValues(outcome).Inc()
	c.completionLatency.Observe(duration.Seconds())
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything. Used when metrics are not wired, e.g. in tests.
type Nop struct{}

func (Nop) RecordHTTPRequest(string, string, int, time.Duration) {}
func (Nop) RecordRateLimitDecision(string)                       {}
func (Nop) RecordCompletion(string, time.Duration)               {}
