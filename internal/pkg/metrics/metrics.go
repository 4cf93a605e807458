// Package metrics holds the Prometheus instruments of the pricing service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics provides observability for pricing and token handling.
type Metrics struct {
	PricingRequests   *prometheus.CounterVec
	PricingDuration   *prometheus.HistogramVec
	TokenResolutions  *prometheus.CounterVec
	TokensRedeemed    prometheus.Counter
	PremiumCacheLooks *prometheus.CounterVec
}

// New creates the instruments and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PricingRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "registry_pricing_requests_total",
			Help: "Pricing requests by command and outcome",
		}, []string{"command", "outcome"}),
		PricingDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "registry_pricing_duration_seconds",
			Help:    "Duration of pricing requests by command",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"command"}),
		TokenResolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "registry_token_resolutions_total",
			Help: "Allocation token resolutions by result (none, explicit, default, rejected)",
		}, []string{"result"}),
		TokensRedeemed: factory.NewCounter(prometheus.CounterOpts{
			Name: "registry_tokens_redeemed_total",
			Help: "Single-use allocation tokens redeemed",
		}),
		PremiumCacheLooks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "registry_premium_cache_lookups_total",
			Help: "Premium list cache lookups by result (hit, miss)",
		}, []string{"result"}),
	}
}

// NewNop creates instruments registered with a private registry.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

// ObservePricing records one pricing request.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObservePricing(command string, start time.Time, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.PricingRequests.WithLabelValues(command, outcome).Inc()
	m.PricingDuration.WithLabelValues(command).Observe(time.Since(start).Seconds())
}

// IncrementTokenResolution records how a request's token was resolved.
func (m *Metrics) IncrementTokenResolution(result string) {
	m.TokenResolutions.WithLabelValues(result).Inc()
}

// IncrementTokensRedeemed records a committed redemption.
func (m *Metrics) IncrementTokensRedeemed() {
	m.TokensRedeemed.Inc()
}

// IncrementPremiumCache records a premium cache hit or miss.
func (m *Metrics) IncrementPremiumCache(hit bool) {
	if hit {
		m.PremiumCacheLooks.WithLabelValues("hit").Inc()
		return
	}
	m.PremiumCacheLooks.WithLabelValues("miss").Inc()
}
