package forecast

import (
	"fmt"
	"math"

	"github.com/Theworldzyours/TRADE-SOURCER/internal/contracts"
	"github.com/Theworldzyours/TRADE-SOURCER/internal/strategy"
	"github.com/Theworldzyours/TRADE-SOURCER/pkg/logger"
)

// Scenario probability weights: the standard normal one-sigma split.
// A fixed modeling simplification, independent of the instrument;
// not a fitted estimate.
const (
	probBear = 0.16
	probBase = 0.68
	probBull = 0.16
)

// driftLag is the SMA slope lookback (points) for the base-case
// trend signal.
const driftLag = 5

// Analyzer derives a VolatilityProfile per instrument: several
// volatility estimates, a regime label, and the next-week range with
// bear/base/bull scenarios.
type Analyzer struct {
	cfg strategy.Forecast
	log *logger.Logger
}

// NewAnalyzer creates a forecast analyzer.
func NewAnalyzer(cfg strategy.Forecast, log *logger.Logger) *Analyzer {
	return &Analyzer{cfg: cfg, log: log}
}

// Analyze produces the VolatilityProfile for one instrument.
// Malformed series fail with ErrInvalidSeries, series shorter than
// the volatility window with ErrInsufficientHistory; both exclude
// only this instrument from forecasting.
func (a *Analyzer) Analyze(bundle *contracts.MetricBundle) (*contracts.VolatilityProfile, error) {
	if err := validateSeries(bundle.Candles); err != nil {
		return nil, err
	}
	if len(bundle.Candles) < a.cfg.VolWindow {
		return nil, fmt.Errorf("%w: have %d candles, need %d",
			ErrInsufficientHistory, len(bundle.Candles), a.cfg.VolWindow)
	}

	closes := bundle.Closes()
	price := bundle.CurrentPrice
	if price <= 0 {
		price = closes[len(closes)-1]
	}

	histVol := historicalVol(closes, a.cfg.VolWindow, a.cfg.TradingDaysPerYear)
	weekly := dailyVol(closes, a.cfg.VolWindow) * math.Sqrt(float64(a.cfg.HorizonDays))
	drift := smaDrift(closes, a.cfg.BollingerPeriod, driftLag)

	profile := buildProfile(price, weekly, drift)
	profile.HistoricalVol = histVol
	profile.ParkinsonVol = parkinsonVol(bundle.Candles, a.cfg.VolWindow, a.cfg.TradingDaysPerYear)
	profile.ATRPct = atrPct(bundle.Candles, a.cfg.ATRPeriod, price)
	profile.BollingerWidthPct = bollingerWidthPct(closes, a.cfg.BollingerPeriod)
	profile.Regime = classifyRegime(closes, histVol, a.cfg)
	profile.OpportunityScore = opportunityScore(histVol, volRatio(closes, a.cfg))

	a.log.WithFields(map[string]interface{}{
		"ticker":     bundle.Ticker,
		"hist_vol":   histVol,
		"weekly_vol": weekly,
		"regime":     profile.Regime,
	}).Debug("volatility profile computed")

	return profile, nil
}

// buildProfile derives the range forecast and the three scenarios
// from the current price, the horizon volatility, and the trend
// drift. Bear and bull sit at the ∓1σ bounds; the base case follows
// the drift signal, clamped into the one-sigma band so the
// bear ≤ base ≤ bull ordering always holds.
func buildProfile(price, weeklyVol, drift float64) *contracts.VolatilityProfile {
	expectedLow := price * (1 - weeklyVol)
	expectedHigh := price * (1 + weeklyVol)
	extremeLow := price * (1 - 2*weeklyVol)
	extremeHigh := price * (1 + 2*weeklyVol)

	baseTarget := price * (1 + drift)
	if baseTarget < expectedLow {
		baseTarget = expectedLow
	}
	if baseTarget > expectedHigh {
		baseTarget = expectedHigh
	}

	return &contracts.VolatilityProfile{
		WeeklyVol:    weeklyVol,
		ExpectedLow:  expectedLow,
		ExpectedHigh: expectedHigh,
		ExtremeLow:   extremeLow,
		ExtremeHigh:  extremeHigh,
		Bear:         scenario(contracts.ScenarioBear, price, expectedLow, probBear),
		Base:         scenario(contracts.ScenarioBase, price, baseTarget, probBase),
		Bull:         scenario(contracts.ScenarioBull, price, expectedHigh, probBull),
	}
}

func scenario(name string, price, target, prob float64) contracts.ForecastScenario {
	return contracts.ForecastScenario{
		Name:        name,
		TargetPrice: target,
		PctChange:   (target - price) / price * 100,
		Probability: prob,
	}
}

// volRatio compares short-window volatility to a 3x-longer window.
// Above 1.0 means volatility is expanding.
func volRatio(closes []float64, cfg strategy.Forecast) float64 {
	short := historicalVol(closes, cfg.VolWindow, cfg.TradingDaysPerYear)
	long := historicalVol(closes, cfg.VolWindow*3, cfg.TradingDaysPerYear)
	if long == 0 {
		return 1.0
	}
	return short / long
}

// opportunityScore prefers moderate volatility: enough movement to
// matter, not enough to be untradeable. Annualized vol is taken as a
// fraction (0.30 = 30%).
func opportunityScore(annualVol, ratio float64) float64 {
	score := 50.0

	volPct := annualVol * 100
	switch {
	case volPct >= 20 && volPct <= 40:
		score += 20
	case (volPct >= 15 && volPct < 20) || (volPct > 40 && volPct <= 50):
		score += 10
	case volPct > 60:
		score -= 10
	}

	switch {
	case ratio >= 0.8 && ratio <= 1.2:
		score += 10
	case ratio > 1.2 && ratio <= 1.5:
		score += 5
	case ratio > 2.0:
		score -= 15
	}

	return clamp(score, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
