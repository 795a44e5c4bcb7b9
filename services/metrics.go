package services

import "github.com/prometheus/client_golang/prometheus"

const (
	refreshApplied = "applied"
	refreshStale   = "stale"
	refreshFailed  = "failed"
)

// FeedMetrics counts price feed refresh outcomes. A nil *FeedMetrics is valid
// and records nothing.
type FeedMetrics struct {
	refreshes  *prometheus.CounterVec
	currencies prometheus.Gauge
}

func NewFeedMetrics(reg prometheus.Registerer) *FeedMetrics {
	m := &FeedMetrics{
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "currency_swap",
			Subsystem: "price_feed",
			Name:      "refreshes_total",
			Help:      "Price feed refreshes by outcome.",
		}, []string{"outcome"}),
		currencies: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "currency_swap",
			Subsystem: "price_feed",
			Name:      "currencies",
			Help:      "Distinct currencies in the current price table.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.refreshes, m.currencies)
	}

	return m
}

func (m *FeedMetrics) observe(outcome string) {
	if m == nil {
		return
	}

	m.refreshes.WithLabelValues(outcome).Inc()
}

func (m *FeedMetrics) setCurrencies(n int) {
	if m == nil {
		return
	}

	m.currencies.Set(float64(n))
}
