// Package sample provides the demonstration farm used by the report command
// and by the server when no live collaborators are attached.
package sample

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"farmadvisor/internal/advisory"
	"farmadvisor/internal/config"
	"farmadvisor/internal/dashboard"
	"farmadvisor/internal/models"
)

// OwnCrops are the crops grown on the sample farm
var OwnCrops = []string{"Tomatoes", "Bell Peppers", "Lettuce"}

func reading(name string, value float64, unit string, min, max float64, t models.Thresholds) advisory.Reading {
	return advisory.Reading{
		Metric:     models.Metric{Name: name, Value: value, Unit: unit, Min: min, Max: max},
		Thresholds: t,
	}
}

func price(crop string, current, previous int64, unit, market string, at time.Time) models.PriceObservation {
	return models.PriceObservation{
		Crop:       crop,
		Current:    decimal.NewFromInt(current),
		Previous:   decimal.NewFromInt(previous),
		Currency:   "INR",
		Unit:       unit,
		Market:     market,
		ObservedAt: at,
	}
}

// Snapshot returns the sample farm's readings judged against the given thresholds
func Snapshot(th config.ThresholdSet, now time.Time) dashboard.Snapshot {
	return dashboard.Snapshot{
		Farmer:  "Rajesh",
		TakenAt: now,
		Soil: []advisory.Reading{
			{Metric: advisory.SoilMoisture(65), Thresholds: th.SoilMoisture},
			reading("soil_ph", 6.8, "", 0, 14, th.SoilPH),
			reading("nitrogen", 82, "ppm", 0, 1000, th.Nitrogen),
			reading("organic_matter", 4.2, "%", 0, 100, th.OrganicMatter),
		},
		Weather: []advisory.Reading{
			{Metric: advisory.AirTemperature(28), Thresholds: th.AirTemperature},
			reading("humidity", 45, "%", 0, 100, th.Humidity),
			reading("wind_speed", 12, "km/h", 0, 400, th.WindSpeed),
		},
		Forecast: []dashboard.ForecastDay{
			{Label: "Today", Summary: "Sunny", HighC: 28, LowC: 18},
			{Label: "Tomorrow", Summary: "Partly Cloudy", HighC: 26, LowC: 17},
			{Label: "Thursday", Summary: "Light Rain", HighC: 23, LowC: 16},
		},
		Conditions: models.Conditions{SoilMoisture: 65, Temperature: 28, Season: models.Spring},
		Scans: []models.ScanResult{
			{
				Crop: "Tomato Plant", Finding: "Early Blight Detected", Severity: models.Warning, Confidence: 87,
				Treatment: "Apply copper-based fungicide and remove affected leaves",
				ScannedAt: now.Add(-2 * time.Hour),
			},
			{
				Crop: "Bell Pepper", Finding: "Healthy Plant", Severity: models.Good, Confidence: 95,
				ScannedAt: now.Add(-24 * time.Hour),
			},
			{
				Crop: "Lettuce", Finding: "Aphid Infestation", Severity: models.Critical, Confidence: 92,
				Treatment: "Spray neem oil solution and introduce ladybugs",
				ScannedAt: now.Add(-72 * time.Hour),
			},
		},
		Prices: []models.PriceObservation{
			price("Tomatoes", 45, 42, "kg", "Local Market", now),
			price("Bell Peppers", 60, 58, "kg", "Local Market", now),
			price("Lettuce", 80, 85, "kg", "Local Market", now),
			price("Wheat", 2150, 2100, "quintal", "Regional Hub", now),
			price("Onions", 25, 28, "kg", "Regional Hub", now),
			price("Potatoes", 18, 16, "kg", "Regional Hub", now),
		},
		OwnCrops: slices.Clone(OwnCrops),
	}
}
