package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PricingMetrics records how the pricing engine resolves quotes.
type PricingMetrics struct {
	duration   *prometheus.HistogramVec
	strategies *prometheus.CounterVec
	matches    *prometheus.CounterVec
	warnings   *prometheus.CounterVec
	cache      *prometheus.CounterVec
}

// NewPricingMetrics registers the pricing metrics on the provided registerer.
func NewPricingMetrics(reg prometheus.Registerer) *PricingMetrics {
	if reg == nil {
		return &PricingMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pricing_quote_duration_seconds",
		Help:    "Duration of pricing operations in seconds, including snapshot loads.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	strategies := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_strategy_total",
		Help: "Pricing strategies selected by the engine.",
	}, []string{"strategy"})
	matches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_connector_match_total",
		Help: "Connector price lookups by match tier.",
	}, []string{"tier"})
	warnings := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_warnings_total",
		Help: "Soft warnings raised while pricing.",
	}, []string{"kind"})
	cache := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_cache_lookups_total",
		Help: "Catalog snapshot cache lookups by result.",
	}, []string{"result"})
	reg.MustRegister(duration, strategies, matches, warnings, cache)
	return &PricingMetrics{
		duration:   duration,
		strategies: strategies,
		matches:    matches,
		warnings:   warnings,
		cache:      cache,
	}
}

// ObserveDuration records the duration for the named operation.
func (m *PricingMetrics) ObserveDuration(operation string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

func (m *PricingMetrics) IncStrategy(strategy string) {
	if m == nil || m.strategies == nil {
		return
	}
	m.strategies.WithLabelValues(normalizeLabel(strategy)).Inc()
}

// IncMatch counts a connector price lookup. Substring hits are the signal
// that catalog slugs have drifted.
func (m *PricingMetrics) IncMatch(tier string) {
	if m == nil || m.matches == nil {
		return
	}
	m.matches.WithLabelValues(normalizeLabel(tier)).Inc()
}

func (m *PricingMetrics) IncWarning(kind string) {
	if m == nil || m.warnings == nil {
		return
	}
	m.warnings.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncCache counts a snapshot cache lookup; result is "hit" or "miss".
func (m *PricingMetrics) IncCache(result string) {
	if m == nil || m.cache == nil {
		return
	}
	m.cache.WithLabelValues(normalizeLabel(result)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
