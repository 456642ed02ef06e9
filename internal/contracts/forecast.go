package contracts

import "math"

// VolRegime is the discrete volatility regime label for an instrument
// relative to its own trailing history.
type VolRegime string

const (
	RegimeLow    VolRegime = "low"
	RegimeNormal VolRegime = "normal"
	RegimeHigh   VolRegime = "high"
)

// Scenario names.
const (
	ScenarioBear = "bear"
	ScenarioBase = "base"
	ScenarioBull = "bull"
)

// ForecastScenario is one named, weighted price projection for the
// next decision horizon.
type ForecastScenario struct {
	Name        string  `json:"name"`
	TargetPrice float64 `json:"target_price"`
	PctChange   float64 `json:"pct_change"`
	Probability float64 `json:"probability"`
}

// VolatilityProfile holds the volatility estimates, regime label, and
// next-week range forecast for one instrument. Produced by the
// forecast analyzer, consumed read-only downstream. Never persisted.
type VolatilityProfile struct {
	// Volatility estimates
	HistoricalVol     float64 `json:"historical_vol"`      // annualized, close-to-close
	ParkinsonVol      float64 `json:"parkinson_vol"`       // annualized, range-based
	ATRPct            float64 `json:"atr_pct"`             // ATR as % of current price
	BollingerWidthPct float64 `json:"bollinger_width_pct"` // band width as % of middle band
	WeeklyVol         float64 `json:"weekly_vol"`          // 5-day horizon, fraction of price

	Regime VolRegime `json:"regime"`

	// Expected range at ±1σ, extreme range at ±2σ
	ExpectedLow  float64 `json:"expected_low"`
	ExpectedHigh float64 `json:"expected_high"`
	ExtremeLow   float64 `json:"extreme_low"`
	ExtremeHigh  float64 `json:"extreme_high"`

	Bear ForecastScenario `json:"bear"`
	Base ForecastScenario `json:"base"`
	Bull ForecastScenario `json:"bull"`

	// OpportunityScore prefers moderate volatility over both extremes.
	OpportunityScore float64 `json:"opportunity_score"`
}

// Scenarios returns the three scenarios in bear/base/bull order.
func (p *VolatilityProfile) Scenarios() []ForecastScenario {
	return []ForecastScenario{p.Bear, p.Base, p.Bull}
}

// ProbabilitySum returns the sum of the three scenario probabilities.
// The invariant is that it equals exactly 1.0.
func (p *VolatilityProfile) ProbabilitySum() float64 {
	return p.Bear.Probability + p.Base.Probability + p.Bull.Probability
}

// Ordered reports whether bear ≤ base ≤ bull holds on target prices.
func (p *VolatilityProfile) Ordered() bool {
	return p.Bear.TargetPrice <= p.Base.TargetPrice && p.Base.TargetPrice <= p.Bull.TargetPrice
}

// RangeWidthPct returns the one-sigma expected range width as a
// percentage of the midpoint.
func (p *VolatilityProfile) RangeWidthPct() float64 {
	mid := (p.ExpectedLow + p.ExpectedHigh) / 2
	if mid == 0 {
		return 0
	}
	return math.Abs(p.ExpectedHigh-p.ExpectedLow) / mid * 100
}
