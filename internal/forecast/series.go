package forecast

import (
	"fmt"
	"math"

	"github.com/Theworldzyours/TRADE-SOURCER/internal/contracts"
)

// validateSeries fails fast on a malformed candle series. A series
// that fails here is dropped from forecasting, not repaired.
func validateSeries(candles []contracts.Candle) error {
	for i, c := range candles {
		if c.Close <= 0 || c.Open <= 0 || c.High <= 0 || c.Low <= 0 {
			return fmt.Errorf("%w: non-positive price at index %d", ErrInvalidSeries, i)
		}
		if c.High < c.Low {
			return fmt.Errorf("%w: high %.4f below low %.4f at index %d", ErrInvalidSeries, c.High, c.Low, i)
		}
		if i > 0 && !candles[i-1].Timestamp.Before(c.Timestamp) {
			return fmt.Errorf("%w: non-ascending timestamp at index %d", ErrInvalidSeries, i)
		}
	}
	return nil
}

// logReturns computes ln(p[i]/p[i-1]) for the trailing window of the
// close series. The result has window entries (requires window+1
// closes).
func logReturns(closes []float64, window int) []float64 {
	start := len(closes) - window - 1
	if start < 0 {
		start = 0
	}
	tail := closes[start:]

	returns := make([]float64, 0, len(tail)-1)
	for i := 1; i < len(tail); i++ {
		returns = append(returns, math.Log(tail[i]/tail[i-1]))
	}
	return returns
}

// mean of a non-empty slice.
func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stdDev is the sample standard deviation.
func stdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	sumSq := 0.0
	for _, x := range xs {
		d := x - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(xs)-1))
}
