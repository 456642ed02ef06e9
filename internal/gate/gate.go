package gate

import (
	"github.com/Theworldzyours/TRADE-SOURCER/internal/contracts"
	"github.com/Theworldzyours/TRADE-SOURCER/internal/strategy"
	"github.com/Theworldzyours/TRADE-SOURCER/pkg/logger"
)

// Gate evaluates the fixed, ordered list of eligibility predicates
// against a metric bundle. All predicates must pass; a single
// failure disqualifies the instrument regardless of its scores.
// Missing required fields fail their predicate (fail-safe).
type Gate struct {
	cfg strategy.Gate
	log *logger.Logger
}

// New creates a quality gate.
func New(cfg strategy.Gate, log *logger.Logger) *Gate {
	return &Gate{cfg: cfg, log: log}
}

// predicate is one named gating rule. check returns true when the
// instrument passes; ok=false on the metric lookup means the field is
// missing and the predicate fails.
type predicate struct {
	name  string
	check func(*Gate, *contracts.MetricBundle) bool
}

// Predicates run in this fixed order; the verdict collects every
// failing name, not just the first.
var predicates = []predicate{
	{"min_market_cap", func(g *Gate, b *contracts.MetricBundle) bool {
		v, ok := b.Fundamental(contracts.MetricMarketCap)
		return ok && v >= g.cfg.MinMarketCap
	}},
	{"min_avg_volume", func(g *Gate, b *contracts.MetricBundle) bool {
		v, ok := b.Fundamental(contracts.MetricAvgVolume)
		return ok && v >= g.cfg.MinAvgVolume
	}},
	{"min_price", func(g *Gate, b *contracts.MetricBundle) bool {
		return b.CurrentPrice >= g.cfg.MinPrice
	}},
	{"min_revenue_growth", func(g *Gate, b *contracts.MetricBundle) bool {
		v, ok := b.Fundamental(contracts.MetricRevenueGrowth)
		return ok && v >= g.cfg.MinRevenueGrowth
	}},
	{"max_debt_to_equity", func(g *Gate, b *contracts.MetricBundle) bool {
		v, ok := b.Fundamental(contracts.MetricDebtToEquity)
		return ok && v <= g.cfg.MaxDebtToEquity
	}},
	{"min_current_ratio", func(g *Gate, b *contracts.MetricBundle) bool {
		v, ok := b.Fundamental(contracts.MetricCurrentRatio)
		return ok && v >= g.cfg.MinCurrentRatio
	}},
	{"min_gross_margin", func(g *Gate, b *contracts.MetricBundle) bool {
		v, ok := b.Fundamental(contracts.MetricGrossMargin)
		return ok && v >= g.cfg.MinGrossMargin
	}},
	{"min_altman_z", func(g *Gate, b *contracts.MetricBundle) bool {
		v, ok := b.Fundamental(contracts.MetricAltmanZ)
		return ok && v >= g.cfg.MinAltmanZ
	}},
}

// PredicateNames returns the ordered predicate names.
func PredicateNames() []string {
	names := make([]string, len(predicates))
	for i, p := range predicates {
		names[i] = p.name
	}
	return names
}

// Evaluate runs every predicate against the bundle and returns the
// verdict with all failing predicate names for explainability.
func (g *Gate) Evaluate(bundle *contracts.MetricBundle) contracts.EligibilityVerdict {
	verdict := contracts.EligibilityVerdict{
		Ticker: bundle.Ticker,
		Passed: true,
	}

	for _, p := range predicates {
		if !p.check(g, bundle) {
			verdict.Passed = false
			verdict.FailedPredicates = append(verdict.FailedPredicates, p.name)
		}
	}

	if !verdict.Passed {
		g.log.WithFields(map[string]interface{}{
			"ticker": bundle.Ticker,
			"failed": verdict.FailedPredicates,
		}).Debug("instrument rejected by quality gate")
	}

	return verdict
}
