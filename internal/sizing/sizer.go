package sizing

import (
	"math"

	"github.com/Theworldzyours/TRADE-SOURCER/internal/contracts"
	"github.com/Theworldzyours/TRADE-SOURCER/internal/strategy"
	"github.com/Theworldzyours/TRADE-SOURCER/pkg/logger"
)

// Sizer assigns position-size percentages to the final shortlist.
// It never fails: caps are enforced by proportional scale-down, which
// is linear and therefore feasible in one pass per cap.
type Sizer struct {
	cfg strategy.Sizing
	log *logger.Logger
}

// New creates a position sizer. The sizing bands are assumed
// validated (strictly descending, exhaustive down to zero).
func New(cfg strategy.Sizing, log *logger.Logger) *Sizer {
	return &Sizer{cfg: cfg, log: log}
}

// Apply fills PositionPct on every opportunity in place, then scales
// allocations down as needed to satisfy the total-exposure cap and
// the per-sector caps. Sizes are never scaled up.
func (s *Sizer) Apply(shortlist []contracts.RankedOpportunity) {
	for i := range shortlist {
		shortlist[i].PositionPct = s.baseSize(shortlist[i].Breakdown.Composite, shortlist[i].RiskCategory)
	}

	s.scaleToTotalCap(shortlist)
	s.scaleToSectorCaps(shortlist)

	for i := range shortlist {
		shortlist[i].PositionPct = round2(shortlist[i].PositionPct)
	}
}

// baseSize looks up the score band, applies the risk-category
// multiplier, and caps the result at the per-position maximum.
func (s *Sizer) baseSize(composite float64, risk contracts.RiskCategory) float64 {
	base := 0.0
	for _, band := range s.cfg.Bands {
		if composite >= band.MinScore {
			base = band.BasePct
			break
		}
	}

	switch risk {
	case contracts.RiskConservative:
		base *= s.cfg.ConservativeMult
	case contracts.RiskAggressive:
		base *= s.cfg.AggressiveMult
	}

	return math.Min(base, s.cfg.MaxPositionPct)
}

func (s *Sizer) scaleToTotalCap(shortlist []contracts.RankedOpportunity) {
	total := 0.0
	for i := range shortlist {
		total += shortlist[i].PositionPct
	}
	if total <= s.cfg.TotalExposurePct || total == 0 {
		return
	}

	factor := s.cfg.TotalExposurePct / total
	for i := range shortlist {
		shortlist[i].PositionPct *= factor
	}

	s.log.WithFields(map[string]interface{}{
		"total":  total,
		"cap":    s.cfg.TotalExposurePct,
		"factor": factor,
	}).Debug("scaled allocations to total exposure cap")
}

func (s *Sizer) scaleToSectorCaps(shortlist []contracts.RankedOpportunity) {
	sectorTotals := make(map[string]float64)
	for i := range shortlist {
		sectorTotals[shortlist[i].Sector] += shortlist[i].PositionPct
	}

	for sector, total := range sectorTotals {
		if total <= s.cfg.SectorExposurePct || total == 0 {
			continue
		}
		factor := s.cfg.SectorExposurePct / total
		for i := range shortlist {
			if shortlist[i].Sector == sector {
				shortlist[i].PositionPct *= factor
			}
		}
		s.log.WithFields(map[string]interface{}{
			"sector": sector,
			"total":  total,
			"cap":    s.cfg.SectorExposurePct,
		}).Debug("scaled sector allocation to cap")
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
