package ranking

import "github.com/Theworldzyours/TRADE-SOURCER/internal/contracts"

// riskCategory maps volatility regime and composite score to the
// three-way risk label. High-regime instruments are never
// conservative regardless of score. An instrument with no volatility
// profile is treated as high regime (fail-safe).
func riskCategory(profile *contracts.VolatilityProfile, composite float64) contracts.RiskCategory {
	regime := contracts.RegimeHigh
	if profile != nil {
		regime = profile.Regime
	}

	switch regime {
	case contracts.RegimeLow:
		switch {
		case composite >= 75:
			return contracts.RiskConservative
		case composite >= 60:
			return contracts.RiskModerate
		default:
			return contracts.RiskAggressive
		}
	case contracts.RegimeNormal:
		if composite >= 60 {
			return contracts.RiskModerate
		}
		return contracts.RiskAggressive
	default:
		return contracts.RiskAggressive
	}
}
