package models

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// StatusLevel is the tri-state classification shared by every dashboard.
// The zero value is Good; higher values are more severe.
type StatusLevel int

const (
	Good StatusLevel = iota
	Warning
	Critical
)

// String returns the lowercase label used on the wire ("good", "warning", "critical")
func (s StatusLevel) String() string {
	switch s {
	case Good:
		return "good"
	case Warning:
		return "warning"
	case Critical:
		return "critical"
	}
	return "unknown"
}

// Valid reports whether s is one of the three known levels
func (s StatusLevel) Valid() bool {
	return s >= Good && s <= Critical
}

// Urgency maps a status onto the treatment urgency scale
func (s StatusLevel) Urgency() string {
	switch s {
	case Good:
		return "low"
	case Warning:
		return "medium"
	}
	return "high"
}

// MarshalText lets StatusLevel render as its label in JSON
func (s StatusLevel) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Metric represents a single raw measurement handed over by a feed
type Metric struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
	// Min and Max bound the metric's physical domain. A zero range means unbounded.
	Min float64 `json:"min,omitempty"`
	Max float64 `json:"max,omitempty"`
}

// HasRange reports whether the metric carries a valid-range constraint
func (m Metric) HasRange() bool {
	return m.Min != 0 || m.Max != 0
}

// InRange reports whether the value lies inside the metric's domain
func (m Metric) InRange() bool {
	if math.IsNaN(m.Value) || math.IsInf(m.Value, 0) {
		return false
	}
	if !m.HasRange() {
		return true
	}
	return m.Value >= m.Min && m.Value <= m.Max
}

// Thresholds configures the banding of one metric
type Thresholds struct {
	GoodMin float64 `json:"good_min" yaml:"good_min"`
	GoodMax float64 `json:"good_max" yaml:"good_max"`
	WarnMin float64 `json:"warn_min" yaml:"warn_min"`
	WarnMax float64 `json:"warn_max" yaml:"warn_max"`
}

// Normalized is the output of the metric normalizer
type Normalized struct {
	Scalar float64     `json:"scalar"` // 0-1
	Band   StatusLevel `json:"band"`
}

// Season of the year used for crop season matching
type Season string

const (
	Spring Season = "Spring"
	Summer Season = "Summer"
	Autumn Season = "Autumn"
	Winter Season = "Winter"
)

// NeedLevel is a coarse requirement band ("Low", "Medium", "High")
type NeedLevel string

const (
	NeedLow    NeedLevel = "Low"
	NeedMedium NeedLevel = "Medium"
	NeedHigh   NeedLevel = "High"
)

// Difficulty of growing a crop
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// DayRange is a nominal growth time in days
type DayRange struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// CropProfile is static reference data describing one crop
type CropProfile struct {
	Name        string      `json:"name" yaml:"name"`
	Season      Season      `json:"season" yaml:"season"`
	WaterNeed   NeedLevel   `json:"water_need" yaml:"water_need"`
	Sunlight    NeedLevel   `json:"sunlight" yaml:"sunlight"`
	Difficulty  Difficulty  `json:"difficulty" yaml:"difficulty"`
	GrowthDays  DayRange    `json:"growth_days" yaml:"growth_days"`
	Moisture    *Thresholds `json:"moisture,omitempty" yaml:"moisture"`
	Temperature *Thresholds `json:"temperature,omitempty" yaml:"temperature"`
}

// Conditions are the current farm readings a crop is scored against
type Conditions struct {
	SoilMoisture float64 `json:"soil_moisture"` // percent
	Temperature  float64 `json:"temperature"`   // degrees Celsius
	Season       Season  `json:"season"`
}

// Tier is a recommendation bucket
type Tier string

const (
	HighlyRecommended Tier = "Highly Recommended"
	GoodOption        Tier = "Good"
	ConsiderLater     Tier = "Consider Later"
)

// Factor is one weighted contribution to a suitability score
type Factor struct {
	Name    string      `json:"name"`
	Weight  float64     `json:"weight"`
	Fitness float64     `json:"fitness"`
	Band    StatusLevel `json:"band"`
}

// SuitabilityScore is derived per render and never persisted
type SuitabilityScore struct {
	Crop    CropProfile `json:"crop"`
	Score   int         `json:"score"` // 0-100
	Tier    Tier        `json:"tier"`
	Factors []Factor    `json:"factors"`
}

// PriceObservation is one current/previous price pair from the market feed
type PriceObservation struct {
	Crop       string          `json:"crop"`
	Current    decimal.Decimal `json:"current"`
	Previous   decimal.Decimal `json:"previous"`
	Currency   string          `json:"currency"`
	Unit       string          `json:"unit"`
	Market     string          `json:"market"`
	ObservedAt time.Time       `json:"observed_at"`
}

// Direction of a price trend
type Direction string

const (
	Rising  Direction = "rising"
	Falling Direction = "falling"
	Stable  Direction = "stable"
)

// Trend is the signed change between two observations of the same crop
type Trend struct {
	PercentChange decimal.Decimal `json:"percent_change"`
	Direction     Direction       `json:"direction"`
}

// Sentiment is the market-insight reading of a trend
type Sentiment string

const (
	Positive Sentiment = "positive"
	Neutral  Sentiment = "neutral"
	Negative Sentiment = "negative"
)

// ScanResult is one disease-detection result
type ScanResult struct {
	Crop       string      `json:"crop"`
	Finding    string      `json:"finding"`
	Severity   StatusLevel `json:"severity"`   // Good means healthy
	Confidence float64     `json:"confidence"` // percent
	Treatment  string      `json:"treatment,omitempty"`
	ScannedAt  time.Time   `json:"scanned_at"`
}
