package advisory

import "errors"

var (
	// ErrInvalidMetric indicates a non-finite or out-of-domain reading, or malformed thresholds
	ErrInvalidMetric = errors.New("invalid metric")

	// ErrNoMetrics indicates an aggregate was requested over zero signals
	ErrNoMetrics = errors.New("no metrics to classify")

	// ErrIncompleteProfile indicates a crop profile lacks a field required for scoring
	ErrIncompleteProfile = errors.New("incomplete crop profile")

	// ErrDivisionByZero indicates a trend was requested against a zero baseline
	ErrDivisionByZero = errors.New("division by zero: previous price is zero")
)
