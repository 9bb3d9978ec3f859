package metrics

import "github.com/prometheus/client_golang/prometheus"

// Claim outcomes.
const (
	OutcomeClaimed        = "claimed"
	OutcomeAlreadyClaimed = "already_claimed"
	OutcomeNotFound       = "not_found"
	OutcomeError          = "error"
)

// GiftMetrics counts registry mutations.
type GiftMetrics struct {
	claims            *prometheus.CounterVec
	unclaims          *prometheus.CounterVec
	claimsLogFailures prometheus.Counter
}

// NewGiftMetrics registers the registry counters on reg. A nil reg yields
// a no-op recorder.
func NewGiftMetrics(reg prometheus.Registerer) *GiftMetrics {
	if reg == nil {
		return &GiftMetrics{}
	}
	claims := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gift_claims_total",
		Help: "Gift claim attempts by gift kind and outcome.",
	}, []string{"kind", "outcome"})
	unclaims := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gift_unclaims_total",
		Help: "Gift unclaims by gift kind.",
	}, []string{"kind"})
	claimsLogFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "claims_log_append_failures_total",
		Help: "Claims audit rows that could not be appended.",
	})
	reg.MustRegister(claims, unclaims, claimsLogFailures)
	return &GiftMetrics{
		claims:            claims,
		unclaims:          unclaims,
		claimsLogFailures: claimsLogFailures,
	}
}

func (g *GiftMetrics) IncClaim(kind, outcome string) {
	if g == nil || g.claims == nil {
		return
	}
	g.claims.WithLabelValues(normalizeLabel(kind), normalizeLabel(outcome)).Inc()
}

func (g *GiftMetrics) IncUnclaim(kind string) {
	if g == nil || g.unclaims == nil {
		return
	}
	g.unclaims.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncClaimsLogFailure counts a swallowed Claims append failure.
func (g *GiftMetrics) IncClaimsLogFailure() {
	if g == nil || g.claimsLogFailures == nil {
		return
	}
	g.claimsLogFailures.Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
