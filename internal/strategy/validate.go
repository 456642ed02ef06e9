package strategy

import (
	"fmt"
	"math"
)

// ValidationError is a fatal configuration error. It aborts startup
// before any instrument is processed, since a bad configuration would
// silently corrupt every result.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

const weightEpsilon = 1e-6

// Validate checks all required constraints on a strategy Config.
func Validate(cfg *Config) error {
	// === Meta ===
	if cfg.Meta.StrategyID == "" {
		return ValidationError{"meta.strategy_id", "required"}
	}

	// === Gate ===
	if cfg.Gate.MinMarketCap < 0 {
		return ValidationError{"gate.min_market_cap", "must be >= 0"}
	}
	if cfg.Gate.MinPrice <= 0 {
		return ValidationError{"gate.min_price", "must be > 0"}
	}
	if cfg.Gate.MaxDebtToEquity <= 0 {
		return ValidationError{"gate.max_debt_to_equity", "must be > 0"}
	}

	// === Scoring ===
	w := cfg.Scoring.Weights
	if w.Innovation < 0 || w.Growth < 0 || w.Team < 0 || w.RiskReward < 0 || w.Technical < 0 {
		return ValidationError{"scoring.weights", "must all be >= 0"}
	}
	if math.Abs(w.Sum()-1.0) > weightEpsilon {
		return ValidationError{"scoring.weights", fmt.Sprintf("must sum to 1.0, got %.4f", w.Sum())}
	}

	// === Forecast ===
	if cfg.Forecast.VolWindow < 2 {
		return ValidationError{"forecast.vol_window", "must be >= 2"}
	}
	if cfg.Forecast.ATRPeriod < 1 {
		return ValidationError{"forecast.atr_period", "must be >= 1"}
	}
	if cfg.Forecast.BollingerPeriod < 2 {
		return ValidationError{"forecast.bollinger_period", "must be >= 2"}
	}
	if cfg.Forecast.HorizonDays < 1 {
		return ValidationError{"forecast.horizon_days", "must be >= 1"}
	}
	if cfg.Forecast.TradingDaysPerYear < 1 {
		return ValidationError{"forecast.trading_days_per_year", "must be >= 1"}
	}

	r := cfg.Forecast.Regime
	if r.LowPercentile <= 0 || r.LowPercentile >= 1 {
		return ValidationError{"forecast.regime.low_percentile", "must be in (0, 1)"}
	}
	if r.HighPercentile <= 0 || r.HighPercentile >= 1 {
		return ValidationError{"forecast.regime.high_percentile", "must be in (0, 1)"}
	}
	if r.LowPercentile >= r.HighPercentile {
		return ValidationError{"forecast.regime", "low_percentile must be < high_percentile"}
	}
	if r.FallbackLowVol <= 0 || r.FallbackHighVol <= 0 || r.FallbackLowVol >= r.FallbackHighVol {
		return ValidationError{"forecast.regime", "fallback thresholds must satisfy 0 < low < high"}
	}

	// === Selection ===
	if cfg.Selection.ShortlistSize <= 0 {
		return ValidationError{"selection.shortlist_size", "must be > 0"}
	}
	if cfg.Selection.SectorCapPct <= 0 || cfg.Selection.SectorCapPct > 1 {
		return ValidationError{"selection.sector_cap_pct", "must be in (0, 1]"}
	}
	if cfg.Selection.MinComposite < 0 || cfg.Selection.MinComposite > 100 {
		return ValidationError{"selection.min_composite", "must be in [0, 100]"}
	}

	// === Sizing ===
	s := cfg.Sizing
	if len(s.Bands) == 0 {
		return ValidationError{"sizing.bands", "required"}
	}
	prev := math.Inf(1)
	for i, band := range s.Bands {
		if band.MinScore >= prev {
			return ValidationError{
				Field:   fmt.Sprintf("sizing.bands[%d].min_score", i),
				Message: "bands must be in strictly descending min_score order",
			}
		}
		if band.BasePct < 0 || band.BasePct > 100 {
			return ValidationError{
				Field:   fmt.Sprintf("sizing.bands[%d].base_pct", i),
				Message: "must be in [0, 100]",
			}
		}
		prev = band.MinScore
	}
	if s.Bands[len(s.Bands)-1].MinScore != 0 {
		return ValidationError{"sizing.bands", "last band must have min_score 0 so the table is exhaustive"}
	}

	if s.ConservativeMult <= 0 || s.AggressiveMult <= 0 {
		return ValidationError{"sizing", "multipliers must be > 0"}
	}
	if s.MaxPositionPct <= 0 || s.MaxPositionPct > 100 {
		return ValidationError{"sizing.max_position_pct", "must be in (0, 100]"}
	}
	if s.TotalExposurePct <= 0 || s.TotalExposurePct > 100 {
		return ValidationError{"sizing.total_exposure_pct", "must be in (0, 100]"}
	}
	if s.SectorExposurePct <= 0 || s.SectorExposurePct > 100 {
		return ValidationError{"sizing.sector_exposure_pct", "must be in (0, 100]"}
	}
	if s.SectorExposurePct > s.TotalExposurePct {
		return ValidationError{"sizing", fmt.Sprintf(
			"sector_exposure_pct=%.1f exceeds total_exposure_pct=%.1f", s.SectorExposurePct, s.TotalExposurePct)}
	}

	return nil
}
