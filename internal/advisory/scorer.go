package advisory

import (
	"fmt"
	"math"
	"strings"

	"farmadvisor/internal/models"
)

// Factor weights. They sum to 1 and season carries 0.25, so a crop planted
// out of season tops out at 75 and can never reach the top tier.
const (
	MoistureWeight    = 0.40
	TemperatureWeight = 0.35
	SeasonWeight      = 0.25
)

// Tier boundaries, inclusive on the lower bound
const (
	HighlyRecommendedMin = 80
	GoodOptionMin        = 60
)

// SoilMoisture wraps a soil moisture percentage as a bounded metric
func SoilMoisture(percent float64) models.Metric {
	return models.Metric{Name: "soil_moisture", Value: percent, Unit: "%", Min: 0, Max: 100}
}

// AirTemperature wraps an air temperature as a bounded metric
func AirTemperature(celsius float64) models.Metric {
	return models.Metric{Name: "air_temperature", Value: celsius, Unit: "°C", Min: -60, Max: 60}
}

// Score computes the 0-100 suitability of a crop under the given conditions
func Score(profile models.CropProfile, cond models.Conditions) (models.SuitabilityScore, error) {
	if err := checkProfile(profile); err != nil {
		return models.SuitabilityScore{}, err
	}
	if strings.TrimSpace(string(cond.Season)) == "" {
		return models.SuitabilityScore{}, fmt.Errorf("current season not set: %w", ErrInvalidMetric)
	}

	moisture, err := Normalize(SoilMoisture(cond.SoilMoisture), *profile.Moisture)
	if err != nil {
		return models.SuitabilityScore{}, fmt.Errorf("score %s: %w", profile.Name, err)
	}
	temperature, err := Normalize(AirTemperature(cond.Temperature), *profile.Temperature)
	if err != nil {
		return models.SuitabilityScore{}, fmt.Errorf("score %s: %w", profile.Name, err)
	}

	season := models.Normalized{Scalar: 0, Band: models.Critical}
	if strings.EqualFold(string(profile.Season), string(cond.Season)) {
		season = models.Normalized{Scalar: 1, Band: models.Good}
	}

	factors := []models.Factor{
		{Name: "moisture", Weight: MoistureWeight, Fitness: moisture.Scalar, Band: moisture.Band},
		{Name: "temperature", Weight: TemperatureWeight, Fitness: temperature.Scalar, Band: temperature.Band},
		{Name: "season", Weight: SeasonWeight, Fitness: season.Scalar, Band: season.Band},
	}

	score := Combine(factors)
	return models.SuitabilityScore{
		Crop:    profile,
		Score:   score,
		Tier:    TierOf(score),
		Factors: factors,
	}, nil
}

// Combine folds weighted fitness values into an integer 0-100 score
func Combine(factors []models.Factor) int {
	total := 0.0
	for _, f := range factors {
		total += f.Weight * clamp01(f.Fitness)
	}
	score := int(math.Round(total * 100))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// TierOf buckets a score for display ranking
func TierOf(score int) models.Tier {
	switch {
	case score >= HighlyRecommendedMin:
		return models.HighlyRecommended
	case score >= GoodOptionMin:
		return models.GoodOption
	}
	return models.ConsiderLater
}

func checkProfile(p models.CropProfile) error {
	var missing []string
	if strings.TrimSpace(p.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(string(p.Season)) == "" {
		missing = append(missing, "season")
	}
	if p.Moisture == nil {
		missing = append(missing, "moisture thresholds")
	}
	if p.Temperature == nil {
		missing = append(missing, "temperature thresholds")
	}
	if len(missing) > 0 {
		return fmt.Errorf("crop %q missing %s: %w", p.Name, strings.Join(missing, ", "), ErrIncompleteProfile)
	}
	return nil
}
