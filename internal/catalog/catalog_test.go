package catalog

import (
	"errors"
	"testing"

	"farmadvisor/internal/advisory"
	"farmadvisor/internal/models"
)

func TestDefault_SpringScores(t *testing.T) {
	cond := models.Conditions{SoilMoisture: 65, Temperature: 28, Season: models.Spring}

	want := map[string]struct {
		score int
		tier  models.Tier
	}{
		"Tomatoes":     {95, models.HighlyRecommended},
		"Bell Peppers": {88, models.HighlyRecommended},
		"Lettuce":      {85, models.HighlyRecommended},
		"Carrots":      {75, models.GoodOption},
		"Spinach":      {70, models.GoodOption},
		"Eggplant":     {45, models.ConsiderLater},
	}

	crops := Default()
	if len(crops) != len(want) {
		t.Fatalf("Default() returned %d crops, want %d", len(crops), len(want))
	}

	for _, crop := range crops {
		t.Run(crop.Name, func(t *testing.T) {
			w, ok := want[crop.Name]
			if !ok {
				t.Fatalf("unexpected crop %q", crop.Name)
			}
			got, err := advisory.Score(crop, cond)
			if err != nil {
				t.Fatalf("Score() unexpected error: %v", err)
			}
			if got.Score != w.score {
				t.Errorf("Score() = %d, want %d", got.Score, w.score)
			}
			if got.Tier != w.tier {
				t.Errorf("Tier = %v, want %v", got.Tier, w.tier)
			}
		})
	}
}

func TestDefault_IsValid(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Errorf("Validate(Default()) = %v", err)
	}
}

func TestDefault_ReturnsFreshCopy(t *testing.T) {
	a := Default()
	a[0].Name = "Weeds"
	a[0].Moisture.GoodMin = 0

	b := Default()
	if b[0].Name != "Tomatoes" || b[0].Moisture.GoodMin != 50 {
		t.Errorf("Default() shares state between calls: %+v", b[0])
	}
}

func TestValidate(t *testing.T) {
	valid := func() models.CropProfile { return Default()[0] }

	tests := []struct {
		name    string
		crops   func() []models.CropProfile
		wantErr error
	}{
		{
			name:  "empty catalog",
			crops: func() []models.CropProfile { return nil },
		},
		{
			name: "duplicate names ignore case",
			crops: func() []models.CropProfile {
				dup := valid()
				dup.Name = "TOMATOES"
				return []models.CropProfile{valid(), dup}
			},
		},
		{
			name: "missing name",
			crops: func() []models.CropProfile {
				c := valid()
				c.Name = "  "
				return []models.CropProfile{c}
			},
			wantErr: advisory.ErrIncompleteProfile,
		},
		{
			name: "missing temperature",
			crops: func() []models.CropProfile {
				c := valid()
				c.Temperature = nil
				return []models.CropProfile{c}
			},
			wantErr: advisory.ErrIncompleteProfile,
		},
		{
			name: "missing season",
			crops: func() []models.CropProfile {
				c := valid()
				c.Season = ""
				return []models.CropProfile{c}
			},
			wantErr: advisory.ErrIncompleteProfile,
		},
		{
			name: "inverted moisture range",
			crops: func() []models.CropProfile {
				c := valid()
				c.Moisture = &models.Thresholds{GoodMin: 80, GoodMax: 50, WarnMin: 30, WarnMax: 90}
				return []models.CropProfile{c}
			},
			wantErr: advisory.ErrInvalidMetric,
		},
		{
			name: "inverted growth days",
			crops: func() []models.CropProfile {
				c := valid()
				c.GrowthDays = models.DayRange{Min: 90, Max: 60}
				return []models.CropProfile{c}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.crops())
			if err == nil {
				t.Fatal("Validate() expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	got, err := Resolve(nil)
	if err != nil {
		t.Fatalf("Resolve(nil) unexpected error: %v", err)
	}
	if len(got) != len(Default()) {
		t.Errorf("Resolve(nil) returned %d crops, want the default catalog", len(got))
	}

	custom := []models.CropProfile{Default()[2]}
	got, err = Resolve(custom)
	if err != nil {
		t.Fatalf("Resolve(custom) unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Lettuce" {
		t.Errorf("Resolve(custom) = %v, want [Lettuce]", got)
	}

	bad := Default()[:1]
	bad[0].Moisture = nil
	if _, err := Resolve(bad); !errors.Is(err, advisory.ErrIncompleteProfile) {
		t.Errorf("Resolve(bad) error = %v, want ErrIncompleteProfile", err)
	}
}
