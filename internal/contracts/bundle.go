package contracts

import "time"

// Fundamentals map keys. Providers populate whichever figures they
// have; consumers look keys up and degrade when one is absent.
const (
	MetricMarketCap       = "market_cap"
	MetricAvgVolume       = "avg_volume"
	MetricRevenueGrowth   = "revenue_growth"
	MetricEarningsGrowth  = "earnings_growth"
	MetricGrossMargin     = "gross_margin"
	MetricOperatingMargin = "operating_margin"
	MetricProfitMargin    = "profit_margin"
	MetricROIC            = "roic"
	MetricROE             = "roe"
	MetricDebtToEquity    = "debt_to_equity"
	MetricCurrentRatio    = "current_ratio"
	MetricPEGRatio        = "peg_ratio"
	MetricAltmanZ         = "altman_z"
)

// Trend labels emitted by upstream technical analysis.
const (
	TrendStrongUptrend = "strong_uptrend"
	TrendUptrend       = "uptrend"
	TrendNeutral       = "neutral"
	TrendDowntrend     = "downtrend"
)

// Candle is a single OHLCV bar. Series are ordered by ascending
// timestamp.
type Candle struct {
	Timestamp time.Time `json:"timestamp" validate:"required"`
	Open      float64   `json:"open" validate:"gt=0"`
	High      float64   `json:"high" validate:"gt=0"`
	Low       float64   `json:"low" validate:"gt=0"`
	Close     float64   `json:"close" validate:"gt=0"`
	Volume    float64   `json:"volume" validate:"gte=0"`
}

// Technicals carries the latest indicator snapshot for an instrument.
// Optional: a bundle without technicals is still scoreable.
type Technicals struct {
	RSI         float64 `json:"rsi"`
	Trend       string  `json:"trend"`
	MACDBullish bool    `json:"macd_bullish"`
	SMA20       float64 `json:"sma_20"`
	SMA50       float64 `json:"sma_50"`
	SMA200      float64 `json:"sma_200"`
	VolumeRatio float64 `json:"volume_ratio"`
}

// MetricBundle is the per-instrument input record: identity, price
// history, and whatever fundamental and technical figures the
// snapshot provider had. It is the only thing the pipeline consumes.
type MetricBundle struct {
	Ticker       string             `json:"ticker" validate:"required"`
	Sector       string             `json:"sector"`
	CurrentPrice float64            `json:"current_price" validate:"gt=0"`
	Candles      []Candle           `json:"candles" validate:"required,min=1,dive"`
	Fundamentals map[string]float64 `json:"fundamentals,omitempty"`
	Technicals   *Technicals        `json:"technicals,omitempty"`
}

// Fundamental looks up a named figure. The second return reports
// whether the snapshot carried it.
func (b *MetricBundle) Fundamental(key string) (float64, bool) {
	v, ok := b.Fundamentals[key]
	return v, ok
}

func (b *MetricBundle) HasTechnicals() bool {
	return b.Technicals != nil
}

// Closes extracts the close series in candle order.
func (b *MetricBundle) Closes() []float64 {
	closes := make([]float64, len(b.Candles))
	for i, c := range b.Candles {
		closes[i] = c.Close
	}
	return closes
}
