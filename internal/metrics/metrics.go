// Package metrics holds the Prometheus collectors of the configurator
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "configurator"

// Registry owns a private Prometheus registry and every collector the
// services report to.
type Registry struct {
	reg *prometheus.Registry

	// Rules cache
	RulesCacheHits   prometheus.Counter
	RulesCacheMisses prometheus.Counter
	RulesCoalesced   prometheus.Counter
	RulesRetries     prometheus.Counter
	RulesUnavailable prometheus.Counter
	RulesFetchSec    prometheus.Histogram

	// Configuration sessions
	SessionsStarted prometheus.Counter
	SessionOps      *prometheus.CounterVec
	ToggleOutcomes  *prometheus.CounterVec
	LineItemsQuoted prometheus.Counter
}

// NewRegistry creates a registry with all collectors registered
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	hits := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "rules_cache_hits_total",
		Help: "Rules lookups answered from the cache.",
	})
	misses := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "rules_cache_misses_total",
		Help: "Rules lookups that went to the store.",
	})
	coalesced := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "rules_fetch_coalesced_total",
		Help: "Rules lookups that shared an in-flight fetch.",
	})
	retries := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "rules_fetch_retries_total",
		Help: "Rules fetches retried after a transient failure.",
	})
	unavailable := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "rules_unavailable_total",
		Help: "Rules fetches that failed after the retry.",
	})
	fetchSec := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace, Name: "rules_fetch_seconds",
		Help:    "Latency of rules fetches from the store.",
		Buckets: prometheus.DefBuckets,
	})

	started := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "sessions_started_total",
		Help: "Configuration sessions started.",
	})
	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "session_operations_total",
		Help: "Configuration session operations by name.",
	}, []string{"op"})
	toggles := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "option_toggles_total",
		Help: "Option toggles by outcome.",
	}, []string{"outcome"})
	quoted := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "line_items_quoted_total",
		Help: "Checkout line items built from valid configurations.",
	})

	r.MustRegister(hits, misses, coalesced, retries, unavailable, fetchSec, started, ops, toggles, quoted)
	return &Registry{
		reg:              r,
		RulesCacheHits:   hits,
		RulesCacheMisses: misses,
		RulesCoalesced:   coalesced,
		RulesRetries:     retries,
		RulesUnavailable: unavailable,
		RulesFetchSec:    fetchSec,
		SessionsStarted:  started,
		SessionOps:       ops,
		ToggleOutcomes:   toggles,
		LineItemsQuoted:  quoted,
	}
}

// Handler serves the registry in the Prometheus exposition format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
