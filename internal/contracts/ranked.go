package contracts

// RiskCategory classifies a shortlisted instrument by the combination
// of its volatility regime and composite score.
type RiskCategory string

const (
	RiskConservative RiskCategory = "conservative"
	RiskModerate     RiskCategory = "moderate"
	RiskAggressive   RiskCategory = "aggressive"
)

// ScoredInstrument pairs an eligible instrument's score breakdown with
// its volatility profile. Profile is nil when forecasting failed for
// the instrument; it can still be ranked but carries no scenario data.
type ScoredInstrument struct {
	Ticker    string             `json:"ticker"`
	Sector    string             `json:"sector"`
	Breakdown ScoreBreakdown     `json:"breakdown"`
	Profile   *VolatilityProfile `json:"profile,omitempty"`
}

// RankedOpportunity is the terminal entity of the pipeline: one
// shortlisted instrument with every display-relevant number attached.
// The reporting collaborator never re-derives a score or scenario.
type RankedOpportunity struct {
	Ticker    string             `json:"ticker"`
	Sector    string             `json:"sector"`
	Breakdown ScoreBreakdown     `json:"breakdown"`
	Profile   *VolatilityProfile `json:"profile,omitempty"`

	RiskCategory RiskCategory `json:"risk_category"`
	Rank         int          `json:"rank"`         // dense 1..N
	PositionPct  float64      `json:"position_pct"` // recommended allocation, 0-100
	Conviction   string       `json:"conviction"`
}
