package advisory

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"farmadvisor/internal/models"
)

var hundred = decimal.NewFromInt(100)

// EvaluateTrend computes the percent change from previous to current, rounded
// to one decimal place. Direction follows the sign of current - previous, so a
// small move that rounds to 0.0 still reports its direction.
func EvaluateTrend(current, previous decimal.Decimal) (models.Trend, error) {
	if previous.IsZero() {
		return models.Trend{}, ErrDivisionByZero
	}
	if current.IsNegative() || previous.IsNegative() {
		return models.Trend{}, fmt.Errorf("negative price (current %s, previous %s): %w", current, previous, ErrInvalidMetric)
	}

	// Division keeps 16 digits of precision before the final rounding
	pct := current.Sub(previous).Div(previous).Mul(hundred).Round(1)

	direction := models.Stable
	switch current.Cmp(previous) {
	case 1:
		direction = models.Rising
	case -1:
		direction = models.Falling
	}

	return models.Trend{PercentChange: pct, Direction: direction}, nil
}

// TrendFloat is EvaluateTrend for plain float prices
func TrendFloat(current, previous float64) (models.Trend, error) {
	for _, v := range []float64{current, previous} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return models.Trend{}, fmt.Errorf("non-finite price %v: %w", v, ErrInvalidMetric)
		}
	}
	return EvaluateTrend(decimal.NewFromFloat(current), decimal.NewFromFloat(previous))
}

// TrendOf evaluates the trend of a single price observation
func TrendOf(obs models.PriceObservation) (models.Trend, error) {
	t, err := EvaluateTrend(obs.Current, obs.Previous)
	if err != nil {
		return models.Trend{}, fmt.Errorf("trend %s: %w", obs.Crop, err)
	}
	return t, nil
}

// Insight reads a trend as market sentiment. Changes within ±stableBand
// percent are neutral; a non-finite band reads every change as neutral.
func Insight(t models.Trend, stableBand float64) models.Sentiment {
	if math.IsNaN(stableBand) || math.IsInf(stableBand, 0) {
		return models.Neutral
	}
	band := decimal.NewFromFloat(math.Abs(stableBand))
	switch {
	case t.PercentChange.GreaterThan(band):
		return models.Positive
	case t.PercentChange.LessThan(band.Neg()):
		return models.Negative
	}
	return models.Neutral
}
