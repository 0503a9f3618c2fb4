package advisory

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"farmadvisor/internal/models"
)

func TestTrendFloat(t *testing.T) {
	tests := []struct {
		name          string
		current       float64
		previous      float64
		wantPct       string
		wantDirection models.Direction
	}{
		{name: "tomatoes rising", current: 45, previous: 42, wantPct: "7.1", wantDirection: models.Rising},
		{name: "bell peppers rising", current: 60, previous: 58, wantPct: "3.4", wantDirection: models.Rising},
		{name: "lettuce falling", current: 80, previous: 85, wantPct: "-5.9", wantDirection: models.Falling},
		{name: "wheat per quintal", current: 2150, previous: 2100, wantPct: "2.4", wantDirection: models.Rising},
		{name: "onions falling", current: 25, previous: 28, wantPct: "-10.7", wantDirection: models.Falling},
		{name: "potatoes rising", current: 18, previous: 16, wantPct: "12.5", wantDirection: models.Rising},
		{name: "unchanged", current: 30, previous: 30, wantPct: "0", wantDirection: models.Stable},
		{name: "small rise rounds to zero", current: 1000.1, previous: 1000, wantPct: "0", wantDirection: models.Rising},
		{name: "small fall rounds to zero", current: 999.9, previous: 1000, wantPct: "0", wantDirection: models.Falling},
		{name: "half rounds away from zero", current: 100.25, previous: 100, wantPct: "0.3", wantDirection: models.Rising},
		{name: "price collapse to zero", current: 0, previous: 40, wantPct: "-100", wantDirection: models.Falling},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TrendFloat(tt.current, tt.previous)
			if err != nil {
				t.Fatalf("TrendFloat() unexpected error: %v", err)
			}
			want := decimal.RequireFromString(tt.wantPct)
			if !got.PercentChange.Equal(want) {
				t.Errorf("TrendFloat(%v, %v) percent = %v, want %v", tt.current, tt.previous, got.PercentChange, want)
			}
			if got.Direction != tt.wantDirection {
				t.Errorf("TrendFloat(%v, %v) direction = %v, want %v", tt.current, tt.previous, got.Direction, tt.wantDirection)
			}
		})
	}
}

func TestTrendFloat_Errors(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		wantErr  error
	}{
		{name: "zero baseline", current: 10, previous: 0, wantErr: ErrDivisionByZero},
		{name: "zero baseline and zero current", current: 0, previous: 0, wantErr: ErrDivisionByZero},
		{name: "negative previous", current: 10, previous: -5, wantErr: ErrInvalidMetric},
		{name: "negative current", current: -1, previous: 5, wantErr: ErrInvalidMetric},
		{name: "NaN current", current: math.NaN(), previous: 5, wantErr: ErrInvalidMetric},
		{name: "infinite previous", current: 5, previous: math.Inf(1), wantErr: ErrInvalidMetric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TrendFloat(tt.current, tt.previous)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("TrendFloat() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTrendOf(t *testing.T) {
	obs := models.PriceObservation{
		Crop:     "Tomatoes",
		Current:  decimal.NewFromInt(45),
		Previous: decimal.NewFromInt(42),
		Currency: "INR",
		Unit:     "kg",
	}

	got, err := TrendOf(obs)
	if err != nil {
		t.Fatalf("TrendOf() unexpected error: %v", err)
	}
	if got.PercentChange.String() != "7.1" {
		t.Errorf("TrendOf() percent = %v, want 7.1", got.PercentChange)
	}

	obs.Previous = decimal.Zero
	if _, err := TrendOf(obs); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("TrendOf() error = %v, want ErrDivisionByZero", err)
	}
}

func TestTrend_DirectionMatchesPriceDelta(t *testing.T) {
	currents := []float64{49.99, 50, 50.01}
	for c := 1.0; c <= 100; c += 3.7 {
		currents = append(currents, c)
	}

	for _, current := range currents {
		got, err := TrendFloat(current, 50)
		if err != nil {
			t.Fatalf("TrendFloat() unexpected error: %v", err)
		}

		want := models.Stable
		switch {
		case current > 50:
			want = models.Rising
		case current < 50:
			want = models.Falling
		}
		if got.Direction != want {
			t.Errorf("TrendFloat(%v, 50) direction = %v, want %v", current, got.Direction, want)
		}

		// a non-zero rounded change never contradicts the direction
		if sign := got.PercentChange.Sign(); (sign > 0 && want != models.Rising) || (sign < 0 && want != models.Falling) {
			t.Errorf("TrendFloat(%v, 50) = %v %v, sign disagrees with direction", current, got.PercentChange, got.Direction)
		}
	}
}

func TestInsight(t *testing.T) {
	tests := []struct {
		name string
		pct  string
		band float64
		want models.Sentiment
	}{
		{name: "strong rise", pct: "7.1", band: 5, want: models.Positive},
		{name: "modest rise is neutral", pct: "3.4", band: 5, want: models.Neutral},
		{name: "decline beyond band", pct: "-5.9", band: 5, want: models.Negative},
		{name: "edge of band is neutral", pct: "5", band: 5, want: models.Neutral},
		{name: "zero band makes any rise positive", pct: "0.1", band: 0, want: models.Positive},
		{name: "negative band treated as magnitude", pct: "-6", band: -5, want: models.Negative},
		{name: "infinite band is neutral", pct: "7.1", band: math.Inf(1), want: models.Neutral},
		{name: "negative infinite band is neutral", pct: "-7.1", band: math.Inf(-1), want: models.Neutral},
		{name: "NaN band is neutral", pct: "7.1", band: math.NaN(), want: models.Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trend := models.Trend{PercentChange: decimal.RequireFromString(tt.pct)}
			if got := Insight(trend, tt.band); got != tt.want {
				t.Errorf("Insight(%s, %v) = %v, want %v", tt.pct, tt.band, got, tt.want)
			}
		})
	}
}
