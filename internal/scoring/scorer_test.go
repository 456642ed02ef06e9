package scoring

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Theworldzyours/TRADE-SOURCER/internal/contracts"
	"github.com/Theworldzyours/TRADE-SOURCER/internal/strategy"
	"github.com/Theworldzyours/TRADE-SOURCER/pkg/logger"
)

func testScorer() *Scorer {
	return NewScorer(strategy.Default().Scoring, logger.NewWithWriter(&bytes.Buffer{}, "error"))
}

func strongBundle() *contracts.MetricBundle {
	return &contracts.MetricBundle{
		Ticker:       "GRWT",
		Sector:       "Technology",
		CurrentPrice: 120,
		Fundamentals: map[string]float64{
			contracts.MetricGrossMargin:     0.60,
			contracts.MetricMarketCap:       50_000_000_000,
			contracts.MetricOperatingMargin: 0.25,
			contracts.MetricRevenueGrowth:   0.35,
			contracts.MetricEarningsGrowth:  0.25,
			contracts.MetricROIC:            0.18,
			contracts.MetricROE:             0.20,
			contracts.MetricProfitMargin:    0.10,
			contracts.MetricPEGRatio:        0.8,
			contracts.MetricCurrentRatio:    1.8,
			contracts.MetricDebtToEquity:    0.25,
		},
		Technicals: &contracts.Technicals{
			RSI:         50,
			Trend:       contracts.TrendStrongUptrend,
			MACDBullish: true,
			VolumeRatio: 2.0,
		},
	}
}

func TestScore_StrongBundle(t *testing.T) {
	b := testScorer().Score(strongBundle())

	assert.Equal(t, 90.0, b.Innovation)
	assert.Equal(t, 80.0, b.Growth)
	assert.Equal(t, 80.0, b.Team)
	assert.Equal(t, 95.0, b.RiskReward)
	assert.Equal(t, 95.0, b.Technical)

	// 90*0.25 + 80*0.25 + 80*0.15 + 95*0.20 + 95*0.15
	assert.Equal(t, 87.75, b.Composite)
	assert.Equal(t, "A", b.Grade)
}

func TestScore_EmptyBundleIsNeutral(t *testing.T) {
	b := testScorer().Score(&contracts.MetricBundle{Ticker: "NONE", CurrentPrice: 10})

	assert.Equal(t, 50.0, b.Innovation)
	assert.Equal(t, 50.0, b.Growth)
	assert.Equal(t, 50.0, b.Team)
	assert.Equal(t, 50.0, b.RiskReward)
	assert.Equal(t, 50.0, b.Technical)
	assert.Equal(t, 50.0, b.Composite)
	assert.Equal(t, "C-", b.Grade)
}

func TestScore_MissingTechnicalsStayNeutral(t *testing.T) {
	bundle := strongBundle()
	bundle.Technicals = nil

	b := testScorer().Score(bundle)

	assert.Equal(t, 50.0, b.Technical)
	// Risk/reward loses its trend and RSI contributions only.
	assert.Equal(t, 85.0, b.RiskReward)
}

func TestScore_GrowthNeutralWithoutGrowthFigures(t *testing.T) {
	bundle := strongBundle()
	delete(bundle.Fundamentals, contracts.MetricRevenueGrowth)
	delete(bundle.Fundamentals, contracts.MetricEarningsGrowth)
	delete(bundle.Fundamentals, contracts.MetricOperatingMargin)

	b := testScorer().Score(bundle)
	assert.Equal(t, 50.0, b.Growth)
}

func TestScore_SubScoresBounded(t *testing.T) {
	tests := []struct {
		name   string
		bundle *contracts.MetricBundle
	}{
		{"strong", strongBundle()},
		{"empty", &contracts.MetricBundle{Ticker: "E", CurrentPrice: 1}},
		{"distressed", &contracts.MetricBundle{
			Ticker:       "DIST",
			CurrentPrice: 2,
			Fundamentals: map[string]float64{
				contracts.MetricPEGRatio:      5.0,
				contracts.MetricCurrentRatio:  0.5,
				contracts.MetricDebtToEquity:  3.0,
				contracts.MetricRevenueGrowth: -0.10,
			},
			Technicals: &contracts.Technicals{
				RSI:         80,
				Trend:       contracts.TrendDowntrend,
				MACDBullish: false,
			},
		}},
		{"megacap margins", &contracts.MetricBundle{
			Ticker:       "MEGA",
			Sector:       "Technology",
			CurrentPrice: 500,
			Fundamentals: map[string]float64{
				contracts.MetricGrossMargin:     0.85,
				contracts.MetricMarketCap:       2_000_000_000_000,
				contracts.MetricOperatingMargin: 0.40,
				contracts.MetricRevenueGrowth:   0.60,
				contracts.MetricEarningsGrowth:  0.80,
				contracts.MetricROIC:            0.35,
				contracts.MetricROE:             0.40,
				contracts.MetricProfitMargin:    0.30,
			},
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := testScorer().Score(tc.bundle)
			for name, v := range b.SubScores() {
				assert.GreaterOrEqual(t, v, 0.0, name)
				assert.LessOrEqual(t, v, 100.0, name)
			}
			assert.GreaterOrEqual(t, b.Composite, 0.0)
			assert.LessOrEqual(t, b.Composite, 100.0)
		})
	}
}

func TestScore_DistressedRiskRewardFloorsAtZero(t *testing.T) {
	bundle := &contracts.MetricBundle{
		Ticker:       "DIST",
		CurrentPrice: 2,
		Fundamentals: map[string]float64{
			contracts.MetricPEGRatio:     5.0,
			contracts.MetricCurrentRatio: 0.5,
			contracts.MetricDebtToEquity: 3.0,
		},
		Technicals: &contracts.Technicals{RSI: 80, Trend: contracts.TrendDowntrend},
	}

	b := testScorer().Score(bundle)
	assert.Equal(t, 0.0, b.RiskReward)
}

func TestGradeBands(t *testing.T) {
	tests := []struct {
		score float64
		grade string
	}{
		{100, "A+"}, {90, "A+"},
		{89.99, "A"}, {85, "A"},
		{84.99, "A-"}, {80, "A-"},
		{79.99, "B+"}, {75, "B+"},
		{74.99, "B"}, {70, "B"},
		{69.99, "B-"}, {65, "B-"},
		{64.99, "C+"}, {60, "C+"},
		{59.99, "C"}, {55, "C"},
		{54.99, "C-"}, {50, "C-"},
		{49.99, "D+"}, {45, "D+"},
		{44.99, "D"}, {40, "D"},
		{39.99, "F"}, {0, "F"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.grade, Grade(tc.score), "score %.2f", tc.score)
	}
}

func TestConvictionFollowsComposite(t *testing.T) {
	b := testScorer().Score(strongBundle())
	assert.Equal(t, "very_high", b.ConvictionLevel())
}
