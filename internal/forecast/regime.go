package forecast

import (
	"sort"

	"github.com/Theworldzyours/TRADE-SOURCER/internal/contracts"
	"github.com/Theworldzyours/TRADE-SOURCER/internal/strategy"
)

// rollingVolHistory computes the annualized volatility of each
// trailing window across the close series, one entry per step. The
// current (final) window is the last entry.
func rollingVolHistory(closes []float64, window, tradingDays int) []float64 {
	if len(closes) < window+1 {
		return nil
	}
	history := make([]float64, 0, len(closes)-window)
	for end := window + 1; end <= len(closes); end++ {
		history = append(history, historicalVol(closes[:end], window, tradingDays))
	}
	return history
}

// classifyRegime labels the current volatility against the
// instrument's own history. With enough history the label comes from
// the percentile rank of the current estimate within its rolling
// distribution; below MinHistory points the classification degrades
// to the fixed absolute thresholds. That branch is explicit because
// it changes the contract for young instruments.
func classifyRegime(closes []float64, currentVol float64, cfg strategy.Forecast) contracts.VolRegime {
	if len(closes) < cfg.Regime.MinHistory {
		return classifyRegimeFixed(currentVol, cfg.Regime)
	}

	history := rollingVolHistory(closes, cfg.VolWindow, cfg.TradingDaysPerYear)
	if len(history) < 2 {
		return classifyRegimeFixed(currentVol, cfg.Regime)
	}

	rank := percentileRank(history, currentVol)
	switch {
	case rank < cfg.Regime.LowPercentile:
		return contracts.RegimeLow
	case rank > cfg.Regime.HighPercentile:
		return contracts.RegimeHigh
	default:
		return contracts.RegimeNormal
	}
}

// classifyRegimeFixed is the short-history fallback using absolute
// annualized thresholds.
func classifyRegimeFixed(currentVol float64, cfg strategy.Regime) contracts.VolRegime {
	switch {
	case currentVol < cfg.FallbackLowVol:
		return contracts.RegimeLow
	case currentVol > cfg.FallbackHighVol:
		return contracts.RegimeHigh
	default:
		return contracts.RegimeNormal
	}
}

// percentileRank returns the fraction of values strictly below v.
func percentileRank(values []float64, v float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	below := sort.SearchFloat64s(sorted, v)
	return float64(below) / float64(len(sorted))
}
