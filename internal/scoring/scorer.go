package scoring

import (
	"math"

	"github.com/Theworldzyours/TRADE-SOURCER/internal/contracts"
	"github.com/Theworldzyours/TRADE-SOURCER/internal/strategy"
	"github.com/Theworldzyours/TRADE-SOURCER/pkg/logger"
)

const neutralScore = 50.0

// Sectors with structurally higher disruption potential. The sector
// label is taken verbatim from the snapshot provider.
var highInnovationSectors = map[string]bool{
	"Technology":             true,
	"Healthcare":             true,
	"Communication Services": true,
}

var moderateInnovationSectors = map[string]bool{
	"Consumer Cyclical": true,
	"Industrials":       true,
}

// Scorer computes the five-factor composite for eligible instruments.
// It never fails: missing optional figures degrade the affected
// sub-score toward neutral instead of erroring.
type Scorer struct {
	weights strategy.Weights
	log     *logger.Logger
}

// NewScorer creates a composite scorer. Weights are assumed validated
// (they sum to 1.0).
func NewScorer(cfg strategy.Scoring, log *logger.Logger) *Scorer {
	return &Scorer{weights: cfg.Weights, log: log}
}

// Score computes the weighted composite breakdown for one bundle.
func (s *Scorer) Score(bundle *contracts.MetricBundle) contracts.ScoreBreakdown {
	b := contracts.ScoreBreakdown{
		Innovation: innovationScore(bundle),
		Growth:     growthScore(bundle),
		Team:       teamScore(bundle),
		RiskReward: riskRewardScore(bundle),
		Technical:  technicalScore(bundle),
	}

	composite := b.Innovation*s.weights.Innovation +
		b.Growth*s.weights.Growth +
		b.Team*s.weights.Team +
		b.RiskReward*s.weights.RiskReward +
		b.Technical*s.weights.Technical

	b.Composite = round2(clamp(composite, 0, 100))
	b.Grade = Grade(b.Composite)

	return b
}

// innovationScore measures disruptive potential and moat: sector,
// pricing power via gross margin, market leadership, and operating
// leverage. Starts neutral, each signal adds on top.
func innovationScore(b *contracts.MetricBundle) float64 {
	score := neutralScore

	switch {
	case highInnovationSectors[b.Sector]:
		score += 20
	case moderateInnovationSectors[b.Sector]:
		score += 10
	}

	if gm, ok := b.Fundamental(contracts.MetricGrossMargin); ok {
		switch {
		case gm > 0.70:
			score += 15
		case gm > 0.50:
			score += 10
		case gm > 0.40:
			score += 5
		}
	}

	if mc, ok := b.Fundamental(contracts.MetricMarketCap); ok {
		switch {
		case mc > 100_000_000_000:
			score += 10
		case mc > 10_000_000_000:
			score += 5
		}
	}

	if om, ok := b.Fundamental(contracts.MetricOperatingMargin); ok {
		switch {
		case om > 0.30:
			score += 10
		case om > 0.20:
			score += 5
		}
	}

	return clamp(score, 0, 100)
}

// growthScore measures the revenue and earnings trajectory. Unlike
// the other factors it builds up from zero: revenue growth is worth
// up to 50 points, earnings growth 30, margin expansion 20. With no
// growth figures at all it is neutral rather than zero.
func growthScore(b *contracts.MetricBundle) float64 {
	rev, hasRev := b.Fundamental(contracts.MetricRevenueGrowth)
	earn, hasEarn := b.Fundamental(contracts.MetricEarningsGrowth)
	om, hasOM := b.Fundamental(contracts.MetricOperatingMargin)
	if !hasRev && !hasEarn && !hasOM {
		return neutralScore
	}

	score := 0.0

	if hasRev {
		switch {
		case rev > 0.50:
			score += 50
		case rev > 0.40:
			score += 45
		case rev > 0.30:
			score += 40
		case rev > 0.20:
			score += 30
		case rev > 0.15:
			score += 20
		case rev > 0.10:
			score += 10
		case rev > 0:
			score += 5
		}
	}

	if hasEarn {
		switch {
		case earn > 0.50:
			score += 30
		case earn > 0.30:
			score += 25
		case earn > 0.20:
			score += 20
		case earn > 0.15:
			score += 15
		case earn > 0:
			score += 10
		}
	}

	if hasOM {
		switch {
		case om > 0.20:
			score += 20
		case om > 0.10:
			score += 15
		case om > 0:
			score += 10
		}
	}

	return clamp(score, 0, 100)
}

// teamScore proxies management quality through capital allocation:
// ROIC, ROE, and sustained profitability.
func teamScore(b *contracts.MetricBundle) float64 {
	score := neutralScore

	if roic, ok := b.Fundamental(contracts.MetricROIC); ok {
		switch {
		case roic > 0.20:
			score += 20
		case roic > 0.15:
			score += 15
		case roic > 0.10:
			score += 10
		}
	}

	if roe, ok := b.Fundamental(contracts.MetricROE); ok {
		switch {
		case roe > 0.25:
			score += 15
		case roe > 0.15:
			score += 10
		case roe > 0.10:
			score += 5
		}
	}

	if pm, ok := b.Fundamental(contracts.MetricProfitMargin); ok {
		switch {
		case pm > 0.15:
			score += 10
		case pm > 0.05:
			score += 5
		}
	}

	return clamp(score, 0, 100)
}

// riskRewardScore weighs asymmetric upside against downside:
// valuation (PEG), balance sheet strength, leverage, and the
// technical setup (trend and RSI entry conditions).
func riskRewardScore(b *contracts.MetricBundle) float64 {
	score := neutralScore

	if peg, ok := b.Fundamental(contracts.MetricPEGRatio); ok {
		switch {
		case peg > 0 && peg < 1.0:
			score += 20
		case peg < 1.5:
			score += 15
		case peg < 2.0:
			score += 10
		case peg > 3.0:
			score -= 10
		}
	}

	if cr, ok := b.Fundamental(contracts.MetricCurrentRatio); ok {
		switch {
		case cr > 2.0:
			score += 10
		case cr > 1.5:
			score += 5
		case cr < 1.0:
			score -= 10
		}
	}

	if de, ok := b.Fundamental(contracts.MetricDebtToEquity); ok {
		switch {
		case de < 0.3:
			score += 10
		case de < 0.5:
			score += 5
		case de > 2.0:
			score -= 15
		}
	}

	if b.HasTechnicals() {
		t := b.Technicals

		switch t.Trend {
		case contracts.TrendStrongUptrend:
			score += 10
		case contracts.TrendUptrend:
			score += 5
		case contracts.TrendDowntrend:
			score -= 10
		}

		// Oversold RSI is an entry opportunity, overbought a caution.
		switch {
		case t.RSI < 30:
			score += 10
		case t.RSI > 70:
			score -= 5
		}
	}

	return clamp(score, 0, 100)
}

// technicalScore condenses the indicator snapshot into one number.
// Bundles without technicals stay neutral.
func technicalScore(b *contracts.MetricBundle) float64 {
	if !b.HasTechnicals() {
		return neutralScore
	}
	t := b.Technicals

	score := neutralScore

	switch {
	case t.RSI < 30:
		score += 10
	case t.RSI > 70:
		score -= 10
	}

	if t.MACDBullish {
		score += 15
	} else {
		score -= 15
	}

	uptrend := false
	switch t.Trend {
	case contracts.TrendStrongUptrend:
		score += 20
		uptrend = true
	case contracts.TrendUptrend:
		score += 10
		uptrend = true
	case contracts.TrendDowntrend:
		score -= 15
	}

	// Above-average volume only counts when it confirms an uptrend.
	if t.VolumeRatio > 1.5 && uptrend {
		score += 10
	}

	return clamp(score, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
