package strategy

// Config is the full strategy configuration for one scan: gate
// thresholds, scoring weights, forecast parameters, selection and
// sizing constraints. Loaded once at startup, validated, then passed
// read-only into each component, never held as ambient state, so
// concurrent per-instrument workers can read it without synchronization.
type Config struct {
	Meta      Meta      `yaml:"meta" json:"meta"`
	Gate      Gate      `yaml:"gate" json:"gate"`
	Scoring   Scoring   `yaml:"scoring" json:"scoring"`
	Forecast  Forecast  `yaml:"forecast" json:"forecast"`
	Selection Selection `yaml:"selection" json:"selection"`
	Sizing    Sizing    `yaml:"sizing" json:"sizing"`
}

// Meta identifies the strategy for reproducibility.
type Meta struct {
	StrategyID string `yaml:"strategy_id" json:"strategy_id"`
	Version    string `yaml:"version" json:"version"`
}

// Gate holds the eligibility predicate thresholds. All predicates
// must pass; a missing bundle field fails its predicate.
type Gate struct {
	MinMarketCap     float64 `yaml:"min_market_cap" json:"min_market_cap"`
	MinAvgVolume     float64 `yaml:"min_avg_volume" json:"min_avg_volume"`
	MinPrice         float64 `yaml:"min_price" json:"min_price"`
	MinRevenueGrowth float64 `yaml:"min_revenue_growth" json:"min_revenue_growth"`
	MaxDebtToEquity  float64 `yaml:"max_debt_to_equity" json:"max_debt_to_equity"`
	MinCurrentRatio  float64 `yaml:"min_current_ratio" json:"min_current_ratio"`
	MinGrossMargin   float64 `yaml:"min_gross_margin" json:"min_gross_margin"`
	MinAltmanZ       float64 `yaml:"min_altman_z" json:"min_altman_z"`
}

// Scoring holds the composite weights. They must sum to 1.0.
type Scoring struct {
	Weights Weights `yaml:"weights" json:"weights"`
}

// Weights for the five sub-scores.
type Weights struct {
	Innovation float64 `yaml:"innovation" json:"innovation"`
	Growth     float64 `yaml:"growth" json:"growth"`
	Team       float64 `yaml:"team" json:"team"`
	RiskReward float64 `yaml:"risk_reward" json:"risk_reward"`
	Technical  float64 `yaml:"technical" json:"technical"`
}

// Sum returns the total of all five weights.
func (w Weights) Sum() float64 {
	return w.Innovation + w.Growth + w.Team + w.RiskReward + w.Technical
}

// Forecast holds the volatility estimation parameters.
type Forecast struct {
	VolWindow          int `yaml:"vol_window" json:"vol_window"`                     // close-to-close window (20)
	ATRPeriod          int `yaml:"atr_period" json:"atr_period"`                     // 14
	BollingerPeriod    int `yaml:"bollinger_period" json:"bollinger_period"`         // 20
	HorizonDays        int `yaml:"horizon_days" json:"horizon_days"`                 // 5-day decision horizon
	TradingDaysPerYear int `yaml:"trading_days_per_year" json:"trading_days_per_year"` // 252

	Regime Regime `yaml:"regime" json:"regime"`
}

// Regime holds the percentile thresholds for regime classification
// and the fixed-threshold fallback used when the instrument's history
// is too short for percentiles. The fallback is an explicit,
// documented branch (it changes the contract for young instruments).
type Regime struct {
	LowPercentile   float64 `yaml:"low_percentile" json:"low_percentile"`       // 0.33
	HighPercentile  float64 `yaml:"high_percentile" json:"high_percentile"`     // 0.67
	MinHistory      int     `yaml:"min_history" json:"min_history"`             // points needed for percentiles
	FallbackLowVol  float64 `yaml:"fallback_low_vol" json:"fallback_low_vol"`   // annualized, e.g. 0.20
	FallbackHighVol float64 `yaml:"fallback_high_vol" json:"fallback_high_vol"` // annualized, e.g. 0.45
}

// Selection holds the shortlist constraints.
type Selection struct {
	ShortlistSize int     `yaml:"shortlist_size" json:"shortlist_size"`
	SectorCapPct  float64 `yaml:"sector_cap_pct" json:"sector_cap_pct"` // max sector share of shortlist slots
	MinComposite  float64 `yaml:"min_composite" json:"min_composite"`   // floor below which nothing is shortlisted
}

// SizingBand maps a composite-score floor to a base position size.
// Bands must be listed in strictly descending MinScore order.
type SizingBand struct {
	MinScore float64 `yaml:"min_score" json:"min_score"`
	BasePct  float64 `yaml:"base_pct" json:"base_pct"`
}

// Sizing holds the position-sizing policy: the grade-band table, the
// per-risk-category multipliers, and the global caps.
type Sizing struct {
	Bands []SizingBand `yaml:"bands" json:"bands"`

	ConservativeMult float64 `yaml:"conservative_mult" json:"conservative_mult"`
	AggressiveMult   float64 `yaml:"aggressive_mult" json:"aggressive_mult"`

	MaxPositionPct    float64 `yaml:"max_position_pct" json:"max_position_pct"`
	TotalExposurePct  float64 `yaml:"total_exposure_pct" json:"total_exposure_pct"`
	SectorExposurePct float64 `yaml:"sector_exposure_pct" json:"sector_exposure_pct"`
}

// Default returns the reference configuration. Gate thresholds and
// the sizing table follow the weekly sourcing policy; the forecast
// parameters are the standard 20-day window with a one-week horizon.
func Default() Config {
	return Config{
		Meta: Meta{
			StrategyID: "weekly_sourcer_v1",
			Version:    "1.0.0",
		},
		Gate: Gate{
			MinMarketCap:     100_000_000, // $100M
			MinAvgVolume:     100_000,
			MinPrice:         1.0,
			MinRevenueGrowth: 0.15,
			MaxDebtToEquity:  2.0,
			MinCurrentRatio:  1.0,
			MinGrossMargin:   0.20,
			MinAltmanZ:       1.8,
		},
		Scoring: Scoring{
			Weights: Weights{
				Innovation: 0.25,
				Growth:     0.25,
				Team:       0.15,
				RiskReward: 0.20,
				Technical:  0.15,
			},
		},
		Forecast: Forecast{
			VolWindow:          20,
			ATRPeriod:          14,
			BollingerPeriod:    20,
			HorizonDays:        5,
			TradingDaysPerYear: 252,
			Regime: Regime{
				LowPercentile:   0.33,
				HighPercentile:  0.67,
				MinHistory:      60,
				FallbackLowVol:  0.20,
				FallbackHighVol: 0.45,
			},
		},
		Selection: Selection{
			ShortlistSize: 20,
			SectorCapPct:  0.40,
			MinComposite:  60,
		},
		Sizing: Sizing{
			Bands: []SizingBand{
				{MinScore: 85, BasePct: 15},
				{MinScore: 75, BasePct: 12},
				{MinScore: 65, BasePct: 8},
				{MinScore: 55, BasePct: 5},
				{MinScore: 0, BasePct: 2},
			},
			ConservativeMult:  0.7,
			AggressiveMult:    1.3,
			MaxPositionPct:    15,
			TotalExposurePct:  80, // leaves a 20% cash buffer
			SectorExposurePct: 40,
		},
	}
}
