package advisory

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/shopspring/decimal"

	"farmadvisor/internal/models"
)

func TestNewAdvisor(t *testing.T) {
	a := NewAdvisor(DefaultOptions())

	if a == nil {
		t.Fatal("NewAdvisor() returned nil")
	}
	if a.Options().StableBand != 5.0 {
		t.Errorf("Expected stable band 5.0, got %v", a.Options().StableBand)
	}
}

func TestRecommendCrops_ContinuesPastFailures(t *testing.T) {
	a := NewAdvisor(DefaultOptions())

	broken := tomatoes()
	broken.Name = "Mystery Crop"
	broken.Temperature = nil

	lettuce := tomatoes()
	lettuce.Name = "Lettuce"
	lettuce.Season = models.Summer

	ranked, failures := a.RecommendCrops(
		[]models.CropProfile{lettuce, broken, tomatoes()},
		models.Conditions{SoilMoisture: 65, Temperature: 28, Season: models.Spring},
	)

	if len(failures) != 1 {
		t.Fatalf("Expected 1 failure, got %d", len(failures))
	}
	if failures[0].Item != "Mystery Crop" {
		t.Errorf("Expected failure for 'Mystery Crop', got '%s'", failures[0].Item)
	}
	if !errors.Is(failures[0], ErrIncompleteProfile) {
		t.Errorf("Expected ErrIncompleteProfile, got %v", failures[0].Err)
	}

	got := names(slices.Collect(ranked))
	if !slices.Equal(got, []string{"Tomatoes", "Lettuce"}) {
		t.Errorf("RecommendCrops() = %v, want [Tomatoes Lettuce]", got)
	}
}

func TestEvaluateReadings(t *testing.T) {
	a := NewAdvisor(DefaultOptions())

	readings := []Reading{
		{Metric: SoilMoisture(65), Thresholds: moistureThresholds},
		{Metric: SoilMoisture(-3), Thresholds: moistureThresholds},
		{Metric: SoilMoisture(85), Thresholds: moistureThresholds},
	}

	got, failures := a.EvaluateReadings(readings)
	if len(got) != 2 {
		t.Fatalf("Expected 2 evaluated readings, got %d", len(got))
	}
	if len(failures) != 1 || !errors.Is(failures[0], ErrInvalidMetric) {
		t.Errorf("Expected 1 ErrInvalidMetric failure, got %v", failures)
	}
	if got[0].Band != models.Good || got[1].Band != models.Warning {
		t.Errorf("Expected bands [good warning], got [%v %v]", got[0].Band, got[1].Band)
	}
}

func TestEvaluatePrices(t *testing.T) {
	a := NewAdvisor(DefaultOptions())

	obs := func(crop string, current, previous int64) models.PriceObservation {
		return models.PriceObservation{Crop: crop, Current: decimal.NewFromInt(current), Previous: decimal.NewFromInt(previous)}
	}

	got, failures := a.EvaluatePrices([]models.PriceObservation{
		obs("Tomatoes", 45, 42),
		obs("Saffron", 10, 0),
		obs("Bell Peppers", 60, 58),
		obs("Lettuce", 80, 85),
	})

	if len(failures) != 1 || failures[0].Item != "Saffron" || !errors.Is(failures[0], ErrDivisionByZero) {
		t.Errorf("Expected Saffron ErrDivisionByZero failure, got %v", failures)
	}

	want := []models.Sentiment{models.Positive, models.Neutral, models.Negative}
	if len(got) != len(want) {
		t.Fatalf("Expected %d price trends, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].Sentiment != w {
			t.Errorf("%s sentiment = %v, want %v", got[i].Observation.Crop, got[i].Sentiment, w)
		}
	}
}

func TestAssessScans(t *testing.T) {
	a := NewAdvisor(DefaultOptions())

	got, failures := a.AssessScans([]models.ScanResult{
		{Crop: "Tomato Plant", Severity: models.Warning, Confidence: 87},
		{Crop: "Bad Camera", Severity: models.Good, Confidence: 180},
	})

	if len(got) != 1 || got[0].Status != models.Warning {
		t.Errorf("Expected 1 warning assessment, got %+v", got)
	}
	if len(failures) != 1 || failures[0].Item != "Bad Camera" {
		t.Errorf("Expected 'Bad Camera' failure, got %v", failures)
	}
}

func TestRollup(t *testing.T) {
	a := NewAdvisor(DefaultOptions())

	if _, err := a.Rollup(nil); !errors.Is(err, ErrNoMetrics) {
		t.Errorf("Rollup(nil) error = %v, want ErrNoMetrics", err)
	}
	got, err := a.Rollup([]models.StatusLevel{models.Good, models.Warning})
	if err != nil || got != models.Warning {
		t.Errorf("Rollup() = %v, %v; want warning, nil", got, err)
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: nil, want: "ok"},
		{err: fmt.Errorf("wrapped: %w", ErrInvalidMetric), want: "invalid_metric"},
		{err: ErrNoMetrics, want: "no_metrics"},
		{err: ErrIncompleteProfile, want: "incomplete_profile"},
		{err: ErrDivisionByZero, want: "division_by_zero"},
		{err: errors.New("boom"), want: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Outcome(tt.err); got != tt.want {
				t.Errorf("Outcome(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestItemError(t *testing.T) {
	e := ItemError{Item: "Tomatoes", Err: ErrDivisionByZero}

	if e.Error() != "Tomatoes: "+ErrDivisionByZero.Error() {
		t.Errorf("Error() = %q", e.Error())
	}
	if !errors.Is(e, ErrDivisionByZero) {
		t.Error("Expected ItemError to unwrap to ErrDivisionByZero")
	}
}
