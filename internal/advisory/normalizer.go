package advisory

import (
	"fmt"
	"math"

	"farmadvisor/internal/models"
)

// Normalize bands a raw metric against its thresholds and returns a 0-1 scalar.
// Good readings score 1.0, warning readings are interpolated toward the nearest
// good boundary and critical readings score 0.
func Normalize(metric models.Metric, t models.Thresholds) (models.Normalized, error) {
	if err := ValidateThresholds(t); err != nil {
		return models.Normalized{}, fmt.Errorf("%s: %w", metric.Name, err)
	}
	if !metric.InRange() {
		return models.Normalized{}, fmt.Errorf("%s: value %v %s outside domain: %w", metric.Name, metric.Value, metric.Unit, ErrInvalidMetric)
	}

	v := metric.Value
	switch {
	case v >= t.GoodMin && v <= t.GoodMax:
		return models.Normalized{Scalar: 1, Band: models.Good}, nil

	case v >= t.WarnMin && v < t.GoodMin:
		return models.Normalized{Scalar: interpolate(v-t.WarnMin, t.GoodMin-t.WarnMin), Band: models.Warning}, nil

	case v > t.GoodMax && v <= t.WarnMax:
		return models.Normalized{Scalar: interpolate(t.WarnMax-v, t.WarnMax-t.GoodMax), Band: models.Warning}, nil
	}

	return models.Normalized{Scalar: 0, Band: models.Critical}, nil
}

// ValidateThresholds checks that the good range is well formed and sits inside the warning range
func ValidateThresholds(t models.Thresholds) error {
	for _, v := range []float64{t.GoodMin, t.GoodMax, t.WarnMin, t.WarnMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("non-finite threshold: %w", ErrInvalidMetric)
		}
	}
	if t.GoodMin > t.GoodMax {
		return fmt.Errorf("good_min %v > good_max %v: %w", t.GoodMin, t.GoodMax, ErrInvalidMetric)
	}
	if t.WarnMin > t.GoodMin || t.WarnMax < t.GoodMax {
		return fmt.Errorf("warning range [%v,%v] does not enclose good range [%v,%v]: %w",
			t.WarnMin, t.WarnMax, t.GoodMin, t.GoodMax, ErrInvalidMetric)
	}
	return nil
}

// interpolate returns distance/span clamped to [0,1]
func interpolate(distance, span float64) float64 {
	if span <= 0 {
		return 0
	}
	return clamp01(distance / span)
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
