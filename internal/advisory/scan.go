package advisory

import (
	"fmt"

	"farmadvisor/internal/models"
)

// ScanAssessment is the display classification of a disease scan
type ScanAssessment struct {
	Scan       models.ScanResult  `json:"scan"`
	Confidence models.Normalized  `json:"confidence"`
	Status     models.StatusLevel `json:"status"`
	Urgency    string             `json:"urgency"`
}

// ScanConfidence wraps a detection confidence percentage as a bounded metric
func ScanConfidence(percent float64) models.Metric {
	return models.Metric{Name: "scan_confidence", Value: percent, Unit: "%", Min: 0, Max: 100}
}

// AssessScan combines the finding's severity with how sure the detector was.
// A healthy result with low confidence still surfaces as a warning.
func AssessScan(scan models.ScanResult, confidence models.Thresholds) (ScanAssessment, error) {
	conf, err := Normalize(ScanConfidence(scan.Confidence), confidence)
	if err != nil {
		return ScanAssessment{}, fmt.Errorf("scan %s: %w", scan.Crop, err)
	}

	status, err := Classify([]models.StatusLevel{scan.Severity, conf.Band})
	if err != nil {
		return ScanAssessment{}, fmt.Errorf("scan %s: %w", scan.Crop, err)
	}

	return ScanAssessment{
		Scan:       scan,
		Confidence: conf,
		Status:     status,
		Urgency:    status.Urgency(),
	}, nil
}
