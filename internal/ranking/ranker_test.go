package ranking

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Theworldzyours/TRADE-SOURCER/internal/contracts"
	"github.com/Theworldzyours/TRADE-SOURCER/internal/strategy"
	"github.com/Theworldzyours/TRADE-SOURCER/pkg/logger"
)

func testRanker(cfg strategy.Selection) *Ranker {
	return New(cfg, logger.NewWithWriter(&bytes.Buffer{}, "error"))
}

func scoredWith(ticker, sector string, composite, growth float64) contracts.ScoredInstrument {
	return contracts.ScoredInstrument{
		Ticker: ticker,
		Sector: sector,
		Breakdown: contracts.ScoreBreakdown{
			Composite: composite,
			Growth:    growth,
		},
	}
}

func profileWithRegime(regime contracts.VolRegime) *contracts.VolatilityProfile {
	return &contracts.VolatilityProfile{Regime: regime}
}

func TestShortlist_OrderAndRanks(t *testing.T) {
	r := testRanker(strategy.Default().Selection)

	list := r.Shortlist([]contracts.ScoredInstrument{
		scoredWith("CCC", "Technology", 70, 40),
		scoredWith("AAA", "Technology", 88, 60),
		scoredWith("BBB", "Healthcare", 75, 50),
	})

	require.Len(t, list, 3)
	assert.Equal(t, "AAA", list[0].Ticker)
	assert.Equal(t, "BBB", list[1].Ticker)
	assert.Equal(t, "CCC", list[2].Ticker)
	for i, opp := range list {
		assert.Equal(t, i+1, opp.Rank)
	}
	// Composite never increases down the list.
	for i := 1; i < len(list); i++ {
		assert.LessOrEqual(t, list[i].Breakdown.Composite, list[i-1].Breakdown.Composite)
	}
}

func TestShortlist_TieBrokenByGrowthThenTicker(t *testing.T) {
	r := testRanker(strategy.Default().Selection)

	t.Run("growth breaks composite tie", func(t *testing.T) {
		list := r.Shortlist([]contracts.ScoredInstrument{
			scoredWith("LOWG", "Technology", 82.0, 70),
			scoredWith("HIGHG", "Technology", 82.0, 75),
		})
		require.Len(t, list, 2)
		assert.Equal(t, "HIGHG", list[0].Ticker)
		assert.Equal(t, "LOWG", list[1].Ticker)
	})

	t.Run("ticker breaks full tie", func(t *testing.T) {
		list := r.Shortlist([]contracts.ScoredInstrument{
			scoredWith("ZZZ", "Technology", 82.0, 70),
			scoredWith("AAA", "Healthcare", 82.0, 70),
		})
		require.Len(t, list, 2)
		assert.Equal(t, "AAA", list[0].Ticker)
	})
}

func TestShortlist_CompositeFloor(t *testing.T) {
	r := testRanker(strategy.Default().Selection) // floor 60

	list := r.Shortlist([]contracts.ScoredInstrument{
		scoredWith("PASS", "Technology", 60, 50),
		scoredWith("FAIL", "Technology", 59.99, 90),
	})

	require.Len(t, list, 1)
	assert.Equal(t, "PASS", list[0].Ticker)
}

func TestShortlist_SectorCap(t *testing.T) {
	// Shortlist 20 with a 40% sector cap admits at most 8 per sector.
	cfg := strategy.Default().Selection
	r := testRanker(cfg)

	// Technology dominates the top of the ordering; the cap must
	// defer its 9th-best candidate in favor of other sectors.
	var scored []contracts.ScoredInstrument
	for i := 0; i < 15; i++ {
		scored = append(scored, scoredWith(fmt.Sprintf("TEC%02d", i), "Technology", 95-float64(i), 50))
	}
	for i := 0; i < 15; i++ {
		scored = append(scored, scoredWith(fmt.Sprintf("HLT%02d", i), "Healthcare", 78.5-float64(i), 50))
	}
	for i := 0; i < 15; i++ {
		scored = append(scored, scoredWith(fmt.Sprintf("NRG%02d", i), "Energy", 78.3-float64(i), 50))
	}

	list := r.Shortlist(scored)
	require.Len(t, list, cfg.ShortlistSize)

	perSector := make(map[string]int)
	for _, opp := range list {
		perSector[opp.Sector]++
	}
	for sector, n := range perSector {
		assert.LessOrEqual(t, n, 8, sector)
	}
	// The 9th-best Technology candidate is deferred in favor of the
	// next eligible instrument from another sector.
	for _, opp := range list {
		assert.NotEqual(t, "TEC08", opp.Ticker)
	}
}

func TestShortlist_RefillExceedsCapOnlyWhenUnderFilled(t *testing.T) {
	// Two sectors cannot fill 20 slots within an 8-per-sector cap.
	// Diversification yields to filling the book.
	cfg := strategy.Default().Selection
	r := testRanker(cfg)

	var scored []contracts.ScoredInstrument
	for i := 0; i < 15; i++ {
		scored = append(scored, scoredWith(fmt.Sprintf("TEC%02d", i), "Technology", 95-float64(i), 50))
		scored = append(scored, scoredWith(fmt.Sprintf("HLT%02d", i), "Healthcare", 94.5-float64(i), 50))
	}

	list := r.Shortlist(scored)
	assert.Len(t, list, cfg.ShortlistSize)
}

func TestShortlist_RefillWhenSingleSector(t *testing.T) {
	cfg := strategy.Selection{ShortlistSize: 5, SectorCapPct: 0.40, MinComposite: 0}
	r := testRanker(cfg)

	var scored []contracts.ScoredInstrument
	for i := 0; i < 5; i++ {
		scored = append(scored, scoredWith(fmt.Sprintf("T%d", i), "Technology", 90-float64(i), 50))
	}

	// Only one sector available: the cap defers, the refill pass fills
	// the book anyway instead of returning a short list.
	list := r.Shortlist(scored)
	assert.Len(t, list, 5)

	// Order is still canonical after refill.
	for i := 1; i < len(list); i++ {
		assert.LessOrEqual(t, list[i].Breakdown.Composite, list[i-1].Breakdown.Composite)
	}
}

func TestShortlist_TruncatesToSize(t *testing.T) {
	cfg := strategy.Selection{ShortlistSize: 3, SectorCapPct: 1.0, MinComposite: 0}
	r := testRanker(cfg)

	var scored []contracts.ScoredInstrument
	for i := 0; i < 10; i++ {
		scored = append(scored, scoredWith(fmt.Sprintf("S%d", i), "Energy", 90-float64(i), 50))
	}

	list := r.Shortlist(scored)
	require.Len(t, list, 3)
	assert.Equal(t, "S0", list[0].Ticker)
}

func TestShortlist_EmptyInput(t *testing.T) {
	r := testRanker(strategy.Default().Selection)
	assert.Empty(t, r.Shortlist(nil))
}

func TestRiskCategory_Table(t *testing.T) {
	tests := []struct {
		name      string
		profile   *contracts.VolatilityProfile
		composite float64
		want      contracts.RiskCategory
	}{
		{"low regime high score", profileWithRegime(contracts.RegimeLow), 80, contracts.RiskConservative},
		{"low regime boundary 75", profileWithRegime(contracts.RegimeLow), 75, contracts.RiskConservative},
		{"low regime mid score", profileWithRegime(contracts.RegimeLow), 65, contracts.RiskModerate},
		{"low regime weak score", profileWithRegime(contracts.RegimeLow), 55, contracts.RiskAggressive},
		{"normal regime high score", profileWithRegime(contracts.RegimeNormal), 80, contracts.RiskModerate},
		{"normal regime mid score", profileWithRegime(contracts.RegimeNormal), 65, contracts.RiskModerate},
		{"normal regime weak score", profileWithRegime(contracts.RegimeNormal), 50, contracts.RiskAggressive},
		{"high regime never conservative", profileWithRegime(contracts.RegimeHigh), 99, contracts.RiskAggressive},
		{"high regime weak score", profileWithRegime(contracts.RegimeHigh), 40, contracts.RiskAggressive},
		{"nil profile treated as high", nil, 99, contracts.RiskAggressive},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, riskCategory(tc.profile, tc.composite))
		})
	}
}

func TestShortlist_AnnotatesRiskAndConviction(t *testing.T) {
	r := testRanker(strategy.Default().Selection)

	s := scoredWith("ANN", "Technology", 86, 80)
	s.Profile = profileWithRegime(contracts.RegimeLow)

	list := r.Shortlist([]contracts.ScoredInstrument{s})
	require.Len(t, list, 1)
	assert.Equal(t, contracts.RiskConservative, list[0].RiskCategory)
	assert.Equal(t, "very_high", list[0].Conviction)
}
