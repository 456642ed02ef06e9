package forecast

import (
	"math"

	"github.com/Theworldzyours/TRADE-SOURCER/internal/contracts"
)

// historicalVol is the annualized close-to-close volatility: the
// sample standard deviation of log returns over the trailing window,
// scaled by the square root of the trading periods per year.
func historicalVol(closes []float64, window, tradingDays int) float64 {
	returns := logReturns(closes, window)
	return stdDev(returns) * math.Sqrt(float64(tradingDays))
}

// dailyVol returns the unannualized daily volatility over the window.
func dailyVol(closes []float64, window int) float64 {
	return stdDev(logReturns(closes, window))
}

// parkinsonVol is the annualized range-based estimator: the scaled
// mean of squared log(high/low) ratios over the trailing window. It
// is less biased by close-to-close gaps than historicalVol.
func parkinsonVol(candles []contracts.Candle, window, tradingDays int) float64 {
	start := len(candles) - window
	if start < 0 {
		start = 0
	}
	tail := candles[start:]

	sumSq := 0.0
	for _, c := range tail {
		hl := math.Log(c.High / c.Low)
		sumSq += hl * hl
	}
	daily := math.Sqrt(sumSq / (4 * math.Ln2 * float64(len(tail))))
	return daily * math.Sqrt(float64(tradingDays))
}

// atrPct is the average true range over the trailing period as a
// percentage of the current price.
func atrPct(candles []contracts.Candle, period int, currentPrice float64) float64 {
	if len(candles) < 2 || currentPrice <= 0 {
		return 0
	}
	start := len(candles) - period
	if start < 1 {
		start = 1
	}

	sum := 0.0
	n := 0
	for i := start; i < len(candles); i++ {
		prevClose := candles[i-1].Close
		tr := candles[i].High - candles[i].Low
		if hc := math.Abs(candles[i].High - prevClose); hc > tr {
			tr = hc
		}
		if lc := math.Abs(candles[i].Low - prevClose); lc > tr {
			tr = lc
		}
		sum += tr
		n++
	}
	return sum / float64(n) / currentPrice * 100
}

// bollingerWidthPct is the Bollinger Band (period, 2σ) width as a
// percentage of the middle band.
func bollingerWidthPct(closes []float64, period int) float64 {
	start := len(closes) - period
	if start < 0 {
		start = 0
	}
	tail := closes[start:]

	middle := mean(tail)
	if middle == 0 {
		return 0
	}
	sd := stdDev(tail)
	// upper - lower = 4σ around the middle band
	return 4 * sd / middle * 100
}

// sma returns the simple moving average of the trailing period ending
// at index end (exclusive).
func sma(closes []float64, period, end int) float64 {
	start := end - period
	if start < 0 {
		start = 0
	}
	if end > len(closes) {
		end = len(closes)
	}
	if end <= start {
		return 0
	}
	return mean(closes[start:end])
}

// smaDrift is the short-term trend signal used for the base-case
// scenario: the fractional slope of the trailing SMA over the last
// lag points.
func smaDrift(closes []float64, period, lag int) float64 {
	now := sma(closes, period, len(closes))
	then := sma(closes, period, len(closes)-lag)
	if then == 0 {
		return 0
	}
	return (now - then) / then
}
