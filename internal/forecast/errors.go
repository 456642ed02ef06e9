package forecast

import "errors"

// Per-instrument failure kinds. Both are non-fatal to the batch: the
// instrument is excluded from forecasting, the failure is recorded in
// the audit output, and the run continues.
var (
	// ErrInvalidSeries marks a malformed price history: non-positive
	// prices, high below low, or non-ascending timestamps.
	ErrInvalidSeries = errors.New("invalid price series")

	// ErrInsufficientHistory marks a series shorter than the minimum
	// volatility window.
	ErrInsufficientHistory = errors.New("insufficient price history")
)

// FailureReason maps a forecast error to its audit label.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidSeries):
		return "invalid_series"
	case errors.Is(err, ErrInsufficientHistory):
		return "insufficient_history"
	default:
		return "unknown"
	}
}
