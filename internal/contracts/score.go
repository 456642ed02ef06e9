package contracts

// ScoreBreakdown holds the five sub-scores and the weighted composite
// for one eligible instrument. All scores are bounded to [0, 100].
type ScoreBreakdown struct {
	Innovation float64 `json:"innovation"`
	Growth     float64 `json:"growth"`
	Team       float64 `json:"team"`
	RiskReward float64 `json:"risk_reward"`
	Technical  float64 `json:"technical"`

	Composite float64 `json:"composite"`
	Grade     string  `json:"grade"` // A+ .. F
}

// SubScores returns the five sub-scores keyed by factor name.
func (s ScoreBreakdown) SubScores() map[string]float64 {
	return map[string]float64{
		"innovation":  s.Innovation,
		"growth":      s.Growth,
		"team":        s.Team,
		"risk_reward": s.RiskReward,
		"technical":   s.Technical,
	}
}

// ConvictionLevel maps the composite score to a coarse conviction
// label for reporting.
func (s ScoreBreakdown) ConvictionLevel() string {
	switch {
	case s.Composite >= 85:
		return "very_high"
	case s.Composite >= 75:
		return "high"
	case s.Composite >= 65:
		return "medium"
	case s.Composite >= 55:
		return "low"
	default:
		return "very_low"
	}
}
