// Package catalog holds the static crop reference data used for scoring.
package catalog

import (
	"fmt"
	"strings"

	"farmadvisor/internal/advisory"
	"farmadvisor/internal/models"
)

func th(goodMin, goodMax, warnMin, warnMax float64) *models.Thresholds {
	return &models.Thresholds{GoodMin: goodMin, GoodMax: goodMax, WarnMin: warnMin, WarnMax: warnMax}
}

// Default returns the built-in crop catalog. A fresh slice is returned on
// every call so callers cannot mutate shared reference data.
func Default() []models.CropProfile {
	return []models.CropProfile{
		{
			Name: "Tomatoes", Season: models.Spring, Difficulty: models.Easy,
			WaterNeed: models.NeedMedium, Sunlight: models.NeedHigh,
			GrowthDays:  models.DayRange{Min: 75, Max: 85},
			Moisture:    th(50, 75, 30, 90),
			Temperature: th(20, 26, 12, 40),
		},
		{
			Name: "Bell Peppers", Season: models.Spring, Difficulty: models.Medium,
			WaterNeed: models.NeedMedium, Sunlight: models.NeedHigh,
			GrowthDays:  models.DayRange{Min: 70, Max: 80},
			Moisture:    th(45, 60, 30, 100),
			Temperature: th(21, 26, 15, 36),
		},
		{
			Name: "Lettuce", Season: models.Spring, Difficulty: models.Easy,
			WaterNeed: models.NeedHigh, Sunlight: models.NeedMedium,
			GrowthDays:  models.DayRange{Min: 45, Max: 55},
			Moisture:    th(60, 80, 40, 95),
			Temperature: th(15, 22, 7, 36),
		},
		{
			Name: "Carrots", Season: models.Spring, Difficulty: models.Medium,
			WaterNeed: models.NeedMedium, Sunlight: models.NeedMedium,
			GrowthDays:  models.DayRange{Min: 70, Max: 80},
			Moisture:    th(40, 60, 20, 70),
			Temperature: th(18, 26, 10, 40),
		},
		{
			Name: "Spinach", Season: models.Spring, Difficulty: models.Easy,
			WaterNeed: models.NeedHigh, Sunlight: models.NeedMedium,
			GrowthDays:  models.DayRange{Min: 40, Max: 50},
			Moisture:    th(55, 75, 35, 90),
			Temperature: th(10, 22, 4, 29),
		},
		{
			Name: "Eggplant", Season: models.Summer, Difficulty: models.Hard,
			WaterNeed: models.NeedHigh, Sunlight: models.NeedHigh,
			GrowthDays:  models.DayRange{Min: 100, Max: 120},
			Moisture:    th(50, 60, 30, 70),
			Temperature: th(22, 26, 15, 33),
		},
	}
}

// Validate checks a catalog before it replaces the default one.
// Crop names must be unique (case-insensitive) and every profile must carry
// well-formed thresholds and a sane growth range.
func Validate(crops []models.CropProfile) error {
	if len(crops) == 0 {
		return fmt.Errorf("catalog is empty")
	}

	seen := make(map[string]bool, len(crops))
	for i, c := range crops {
		key := strings.ToLower(strings.TrimSpace(c.Name))
		if key == "" {
			return fmt.Errorf("crop %d: %w", i, advisory.ErrIncompleteProfile)
		}
		if seen[key] {
			return fmt.Errorf("duplicate crop %q", c.Name)
		}
		seen[key] = true

		if c.Moisture == nil || c.Temperature == nil || c.Season == "" {
			return fmt.Errorf("crop %q: %w", c.Name, advisory.ErrIncompleteProfile)
		}
		if err := advisory.ValidateThresholds(*c.Moisture); err != nil {
			return fmt.Errorf("crop %q moisture: %w", c.Name, err)
		}
		if err := advisory.ValidateThresholds(*c.Temperature); err != nil {
			return fmt.Errorf("crop %q temperature: %w", c.Name, err)
		}
		if c.GrowthDays.Min > c.GrowthDays.Max {
			return fmt.Errorf("crop %q: growth days min %d > max %d", c.Name, c.GrowthDays.Min, c.GrowthDays.Max)
		}
	}
	return nil
}

// Resolve returns the configured catalog when one is set, otherwise the default
func Resolve(configured []models.CropProfile) ([]models.CropProfile, error) {
	if len(configured) == 0 {
		return Default(), nil
	}
	if err := Validate(configured); err != nil {
		return nil, err
	}
	return configured, nil
}
