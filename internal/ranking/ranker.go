package ranking

import (
	"math"
	"sort"

	"github.com/Theworldzyours/TRADE-SOURCER/internal/contracts"
	"github.com/Theworldzyours/TRADE-SOURCER/internal/strategy"
	"github.com/Theworldzyours/TRADE-SOURCER/pkg/logger"
)

// Ranker orders scored instruments and builds the sector-capped
// shortlist. It runs single-threaded after the scoring stage drains.
type Ranker struct {
	cfg strategy.Selection
	log *logger.Logger
}

// New creates a ranker.
func New(cfg strategy.Selection, log *logger.Logger) *Ranker {
	return &Ranker{cfg: cfg, log: log}
}

// less is the total ordering for candidates: composite descending,
// growth sub-score descending, ticker ascending. The ticker leg makes
// the sort deterministic for identical inputs.
func less(a, b contracts.ScoredInstrument) bool {
	if a.Breakdown.Composite != b.Breakdown.Composite {
		return a.Breakdown.Composite > b.Breakdown.Composite
	}
	if a.Breakdown.Growth != b.Breakdown.Growth {
		return a.Breakdown.Growth > b.Breakdown.Growth
	}
	return a.Ticker < b.Ticker
}

func sortCandidates(list []contracts.ScoredInstrument) {
	sort.Slice(list, func(i, j int) bool { return less(list[i], list[j]) })
}

// Shortlist selects up to cfg.ShortlistSize instruments, applies the
// sector cap, and assigns ranks, risk categories, and conviction
// labels. Instruments below the composite floor never make the list.
func (r *Ranker) Shortlist(scored []contracts.ScoredInstrument) []contracts.RankedOpportunity {
	eligible := make([]contracts.ScoredInstrument, 0, len(scored))
	for _, s := range scored {
		if s.Breakdown.Composite >= r.cfg.MinComposite {
			eligible = append(eligible, s)
		}
	}
	sortCandidates(eligible)

	selected := r.selectWithSectorCap(eligible)

	// The refill pass can admit deferred instruments out of order, so
	// restore the canonical ordering before assigning ranks.
	sortCandidates(selected)

	out := make([]contracts.RankedOpportunity, len(selected))
	for i, s := range selected {
		out[i] = contracts.RankedOpportunity{
			Ticker:       s.Ticker,
			Sector:       s.Sector,
			Breakdown:    s.Breakdown,
			Profile:      s.Profile,
			RiskCategory: riskCategory(s.Profile, s.Breakdown.Composite),
			Rank:         i + 1,
			Conviction:   s.Breakdown.ConvictionLevel(),
		}
	}

	r.log.WithFields(map[string]interface{}{
		"candidates":  len(scored),
		"eligible":    len(eligible),
		"shortlisted": len(out),
	}).Info("shortlist built")

	return out
}

// selectWithSectorCap walks the sorted candidates greedily, deferring
// any instrument whose sector has already filled its share of slots.
// Deferred instruments are reconsidered only when the first pass left
// the list under-filled. Greedy by intent: a globally optimal
// selection is not worth the complexity for a weekly shortlist.
func (r *Ranker) selectWithSectorCap(eligible []contracts.ScoredInstrument) []contracts.ScoredInstrument {
	size := r.cfg.ShortlistSize
	if len(eligible) < size {
		size = len(eligible)
	}
	if size <= 0 {
		return nil
	}

	maxPerSector := int(math.Ceil(r.cfg.SectorCapPct * float64(r.cfg.ShortlistSize)))
	if maxPerSector < 1 {
		maxPerSector = 1
	}

	selected := make([]contracts.ScoredInstrument, 0, size)
	var deferred []contracts.ScoredInstrument
	perSector := make(map[string]int)

	for _, s := range eligible {
		if len(selected) == size {
			break
		}
		if perSector[s.Sector] >= maxPerSector {
			deferred = append(deferred, s)
			r.log.WithFields(map[string]interface{}{
				"ticker": s.Ticker,
				"sector": s.Sector,
			}).Debug("deferred by sector cap")
			continue
		}
		perSector[s.Sector]++
		selected = append(selected, s)
	}

	// Under-filled shortlist: diversification yields to filling the
	// book, still in score order.
	for _, s := range deferred {
		if len(selected) == size {
			break
		}
		selected = append(selected, s)
	}

	return selected
}
