package contracts

import "time"

// EligibilityVerdict is the quality-gate outcome for one instrument.
// A single failed predicate disqualifies it; FailedPredicates carries
// every failing rule name for explainability.
type EligibilityVerdict struct {
	Ticker           string   `json:"ticker"`
	Passed           bool     `json:"passed"`
	FailedPredicates []string `json:"failed_predicates,omitempty"`
}

// RejectedInstrument is one gate rejection kept for the audit output.
type RejectedInstrument struct {
	Ticker           string   `json:"ticker"`
	Sector           string   `json:"sector"`
	FailedPredicates []string `json:"failed_predicates"`
}

// ForecastFailure is one instrument excluded from forecasting, with
// the error kind that excluded it.
type ForecastFailure struct {
	Ticker string `json:"ticker"`
	Reason string `json:"reason"` // invalid_series | insufficient_history
}

// ScanCounts are the user-visible batch totals. They are always
// reported so silent data loss is never possible.
type ScanCounts struct {
	Input          int `json:"input"`
	Processed      int `json:"processed"`
	Rejected       int `json:"rejected"`
	ForecastFailed int `json:"forecast_failed"`
	Shortlisted    int `json:"shortlisted"`
}

// SectorAllocation summarizes one sector's share of the shortlist.
type SectorAllocation struct {
	Sector    string  `json:"sector"`
	Count     int     `json:"count"`
	WeightPct float64 `json:"weight_pct"` // summed position sizes
}

// ScanResult is the full pipeline output: the ordered shortlist plus
// the audit collections.
type ScanResult struct {
	GeneratedAt time.Time `json:"generated_at"`
	StrategyID  string    `json:"strategy_id"`
	ConfigHash  string    `json:"config_hash"`

	Opportunities     []RankedOpportunity  `json:"opportunities"`
	Rejected          []RejectedInstrument `json:"rejected"`
	ForecastFailures  []ForecastFailure    `json:"forecast_failures"`
	SectorAllocations []SectorAllocation   `json:"sector_allocations"`
	Warnings          []string             `json:"warnings,omitempty"`

	Counts ScanCounts `json:"counts"`
}

// TotalExposure returns the summed position sizes of the shortlist.
func (r *ScanResult) TotalExposure() float64 {
	total := 0.0
	for _, o := range r.Opportunities {
		total += o.PositionPct
	}
	return total
}

// SectorExposure returns the summed position sizes for one sector.
func (r *ScanResult) SectorExposure(sector string) float64 {
	total := 0.0
	for _, o := range r.Opportunities {
		if o.Sector == sector {
			total += o.PositionPct
		}
	}
	return total
}
