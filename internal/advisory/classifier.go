package advisory

import (
	"fmt"

	"farmadvisor/internal/models"
)

// Classify rolls a set of bands up into one status: the worst band wins
func Classify(bands []models.StatusLevel) (models.StatusLevel, error) {
	if len(bands) == 0 {
		return models.Good, ErrNoMetrics
	}

	worst := models.Good
	for _, b := range bands {
		if !b.Valid() {
			return models.Good, fmt.Errorf("unknown status level %d: %w", int(b), ErrInvalidMetric)
		}
		if b > worst {
			worst = b
		}
	}
	return worst, nil
}
