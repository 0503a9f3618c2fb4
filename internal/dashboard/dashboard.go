// Package dashboard assembles the five advisory screens from a farm snapshot.
// Every number and status shown comes from the advisory package; failed items
// are listed as unavailable rather than failing the whole screen.
package dashboard

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"farmadvisor/internal/advisory"
	"farmadvisor/internal/metrics"
	"farmadvisor/internal/models"
)

// Unavailable is the label shown when a status cannot be computed
const Unavailable = "unavailable"

// ForecastDay is one day of the weather outlook, shown as supplied
type ForecastDay struct {
	Label   string  `json:"label"`
	Summary string  `json:"summary"`
	HighC   float64 `json:"high_c"`
	LowC    float64 `json:"low_c"`
}

// Snapshot is everything the collaborators hand over for one render pass
type Snapshot struct {
	Farmer     string                    `json:"farmer"`
	TakenAt    time.Time                 `json:"taken_at"`
	Soil       []advisory.Reading        `json:"-"`
	Weather    []advisory.Reading        `json:"-"`
	Forecast   []ForecastDay             `json:"forecast"`
	Conditions models.Conditions         `json:"conditions"`
	Scans      []models.ScanResult       `json:"scans"`
	Prices     []models.PriceObservation `json:"prices"`
	// OwnCrops names the crops the farmer grows; their prices lead the market screen
	OwnCrops []string `json:"own_crops"`
}

// Failure is an item that could not be evaluated
type Failure struct {
	Item   string `json:"item"`
	Reason string `json:"reason"`
}

func failuresOf(errs []advisory.ItemError) []Failure {
	out := make([]Failure, 0, len(errs))
	for _, e := range errs {
		out = append(out, Failure{Item: e.Item, Reason: advisory.Outcome(e.Err)})
	}
	return out
}

// SoilWeatherView is the soil and weather screen
type SoilWeatherView struct {
	Soil          []advisory.EvaluatedReading `json:"soil"`
	SoilStatus    string                      `json:"soil_status"`
	Weather       []advisory.EvaluatedReading `json:"weather"`
	WeatherStatus string                      `json:"weather_status"`
	Forecast      []ForecastDay               `json:"forecast"`
	Unavailable   []Failure                   `json:"unavailable"`
}

// CropsView is the crop suggestions screen
type CropsView struct {
	Conditions  models.Conditions    `json:"conditions"`
	Tiers       []advisory.TierGroup `json:"tiers"`
	Unavailable []Failure            `json:"unavailable"`
}

// Treatment is a recommended action for a detected problem
type Treatment struct {
	Crop      string `json:"crop"`
	Disease   string `json:"disease"`
	Treatment string `json:"treatment"`
	Urgency   string `json:"urgency"`
	severity  models.StatusLevel
}

// DiseaseView is the disease detection screen
type DiseaseView struct {
	Scans       []advisory.ScanAssessment `json:"scans"`
	Status      string                    `json:"status"`
	Treatments  []Treatment               `json:"treatments"`
	Unavailable []Failure                 `json:"unavailable"`
}

// MarketInsight is a one-line reading of a crop's price movement
type MarketInsight struct {
	Crop      string           `json:"crop"`
	Title     string           `json:"title"`
	Sentiment models.Sentiment `json:"sentiment"`
}

// MarketView is the market prices screen
type MarketView struct {
	YourCrops   []advisory.PriceTrend `json:"your_crops"`
	Regional    []advisory.PriceTrend `json:"regional"`
	Insights    []MarketInsight       `json:"insights"`
	Unavailable []Failure             `json:"unavailable"`
}

// StatusCard is one tile of the overview screen
type StatusCard struct {
	Title  string `json:"title"`
	Value  string `json:"value"`
	Status string `json:"status"`
	Link   string `json:"link"`
}

// OverviewView is the landing screen
type OverviewView struct {
	Farmer      string       `json:"farmer"`
	Date        string       `json:"date"`
	SoilHealth  *int         `json:"soil_health_pct"`
	Temperature float64      `json:"temperature_c"`
	Alerts      int          `json:"alerts"`
	Cards       []StatusCard `json:"cards"`
}

// Builder renders dashboards. It holds only immutable reference data.
type Builder struct {
	advisor *advisory.Advisor
	crops   []models.CropProfile
}

// NewBuilder creates a dashboard builder over a crop catalog
func NewBuilder(advisor *advisory.Advisor, crops []models.CropProfile) *Builder {
	return &Builder{advisor: advisor, crops: slices.Clone(crops)}
}

// SoilWeather builds the soil and weather screen
func (b *Builder) SoilWeather(s Snapshot) SoilWeatherView {
	defer metrics.RecordDashboardBuild("soil-weather")

	soil, soilErrs := b.advisor.EvaluateReadings(s.Soil)
	weather, weatherErrs := b.advisor.EvaluateReadings(s.Weather)

	return SoilWeatherView{
		Soil:          soil,
		SoilStatus:    b.rollup(bandsOf(soil)),
		Weather:       weather,
		WeatherStatus: b.rollup(bandsOf(weather)),
		Forecast:      s.Forecast,
		Unavailable:   failuresOf(append(soilErrs, weatherErrs...)),
	}
}

// Crops builds the crop suggestions screen
func (b *Builder) Crops(s Snapshot) CropsView {
	defer metrics.RecordDashboardBuild("crops")

	ranked, errs := b.advisor.RecommendCrops(b.crops, s.Conditions)
	return CropsView{
		Conditions:  s.Conditions,
		Tiers:       advisory.GroupByTier(ranked),
		Unavailable: failuresOf(errs),
	}
}

// Disease builds the disease detection screen
func (b *Builder) Disease(s Snapshot) DiseaseView {
	defer metrics.RecordDashboardBuild("disease")

	scans, errs := b.advisor.AssessScans(s.Scans)

	levels := make([]models.StatusLevel, 0, len(scans))
	var treatments []Treatment
	for _, a := range scans {
		levels = append(levels, a.Status)
		if a.Scan.Severity == models.Good || a.Scan.Treatment == "" {
			continue
		}
		treatments = append(treatments, Treatment{
			Crop:      a.Scan.Crop,
			Disease:   a.Scan.Finding,
			Treatment: a.Scan.Treatment,
			Urgency:   a.Status.Urgency(),
			severity:  a.Status,
		})
	}
	slices.SortStableFunc(treatments, func(x, y Treatment) int {
		if c := cmp.Compare(y.severity, x.severity); c != 0 {
			return c
		}
		return cmp.Compare(x.Crop, y.Crop)
	})

	return DiseaseView{
		Scans:       scans,
		Status:      b.rollup(levels),
		Treatments:  treatments,
		Unavailable: failuresOf(errs),
	}
}

// Market builds the market prices screen
func (b *Builder) Market(s Snapshot) MarketView {
	defer metrics.RecordDashboardBuild("market")

	trends, errs := b.advisor.EvaluatePrices(s.Prices)

	view := MarketView{Unavailable: failuresOf(errs)}
	for _, pt := range trends {
		if !isOwnCrop(s.OwnCrops, pt.Observation.Crop) {
			view.Regional = append(view.Regional, pt)
			continue
		}
		view.YourCrops = append(view.YourCrops, pt)
		view.Insights = append(view.Insights, MarketInsight{
			Crop:      pt.Observation.Crop,
			Title:     insightTitle(pt.Observation.Crop, pt.Sentiment),
			Sentiment: pt.Sentiment,
		})
	}
	return view
}

// Overview builds the landing screen from the other four
func (b *Builder) Overview(s Snapshot) OverviewView {
	defer metrics.RecordDashboardBuild("overview")

	sw := b.SoilWeather(s)
	crops := b.Crops(s)
	disease := b.Disease(s)
	market := b.Market(s)

	alerts := 0
	for _, r := range append(slices.Clone(sw.Soil), sw.Weather...) {
		if r.Band != models.Good {
			alerts++
		}
	}
	for _, a := range disease.Scans {
		if a.Status != models.Good {
			alerts++
		}
	}

	return OverviewView{
		Farmer:      s.Farmer,
		Date:        s.TakenAt.Format("January 2, 2006"),
		SoilHealth:  soilHealth(sw.Soil),
		Temperature: s.Conditions.Temperature,
		Alerts:      alerts,
		Cards: []StatusCard{
			{Title: "Soil Health", Value: readingSummary(sw.Soil), Status: sw.SoilStatus, Link: "/dashboard/soil-weather"},
			{Title: "Weather Forecast", Value: readingSummary(sw.Weather), Status: sw.WeatherStatus, Link: "/dashboard/soil-weather"},
			{Title: "Crop Suggestions", Value: cropSummary(crops), Status: cropStatus(crops), Link: "/dashboard/crops"},
			{Title: "Disease Detection", Value: diseaseSummary(disease), Status: disease.Status, Link: "/dashboard/disease"},
			{Title: "Market Prices", Value: marketSummary(market), Status: b.marketStatus(market), Link: "/dashboard/market"},
		},
	}
}

func (b *Builder) rollup(levels []models.StatusLevel) string {
	status, err := b.advisor.Rollup(levels)
	if err != nil {
		return Unavailable
	}
	return status.String()
}

// marketStatus warns when any of the farmer's own crops is losing value
func (b *Builder) marketStatus(m MarketView) string {
	levels := make([]models.StatusLevel, 0, len(m.Insights))
	for _, in := range m.Insights {
		if in.Sentiment == models.Negative {
			levels = append(levels, models.Warning)
		} else {
			levels = append(levels, models.Good)
		}
	}
	return b.rollup(levels)
}

func bandsOf(readings []advisory.EvaluatedReading) []models.StatusLevel {
	out := make([]models.StatusLevel, 0, len(readings))
	for _, r := range readings {
		out = append(out, r.Band)
	}
	return out
}

// soilHealth is the mean soil scalar as a percentage, nil when nothing was readable
func soilHealth(soil []advisory.EvaluatedReading) *int {
	if len(soil) == 0 {
		return nil
	}
	sum := 0.0
	for _, r := range soil {
		sum += r.Scalar
	}
	pct := int(math.Round(sum / float64(len(soil)) * 100))
	return &pct
}

func isOwnCrop(own []string, crop string) bool {
	return slices.ContainsFunc(own, func(c string) bool { return strings.EqualFold(c, crop) })
}

func insightTitle(crop string, s models.Sentiment) string {
	switch s {
	case models.Positive:
		return crop + " prices rising"
	case models.Negative:
		return crop + " prices declining"
	}
	return crop + " market stable"
}

func readingSummary(readings []advisory.EvaluatedReading) string {
	if len(readings) == 0 {
		return Unavailable
	}
	parts := make([]string, 0, len(readings))
	for _, r := range readings {
		parts = append(parts, fmt.Sprintf("%s: %g%s", r.Metric.Name, r.Metric.Value, r.Metric.Unit))
	}
	return strings.Join(parts, " • ")
}

func cropSummary(v CropsView) string {
	var top []string
	for _, g := range v.Tiers {
		for _, s := range g.Crops {
			if len(top) == 2 {
				break
			}
			top = append(top, s.Crop.Name)
		}
	}
	if len(top) == 0 {
		return Unavailable
	}
	return strings.Join(top, ", ") + " recommended"
}

// cropStatus reflects the best tier available this season
func cropStatus(v CropsView) string {
	for _, g := range v.Tiers {
		if len(g.Crops) == 0 {
			continue
		}
		switch g.Tier {
		case models.HighlyRecommended:
			return models.Good.String()
		case models.GoodOption:
			return models.Warning.String()
		default:
			return models.Critical.String()
		}
	}
	return Unavailable
}

func diseaseSummary(v DiseaseView) string {
	flagged := 0
	for _, a := range v.Scans {
		if a.Status != models.Good {
			flagged++
		}
	}
	if flagged == 0 {
		return fmt.Sprintf("%d scans, no issues", len(v.Scans))
	}
	return fmt.Sprintf("%d of %d scans need attention", flagged, len(v.Scans))
}

func marketSummary(v MarketView) string {
	if len(v.YourCrops) == 0 {
		return Unavailable
	}
	pt := v.YourCrops[0]
	return fmt.Sprintf("%s: %s/%s (%s%%)", pt.Observation.Crop, pt.Observation.Current, pt.Observation.Unit, signed(pt.Trend))
}

func signed(t models.Trend) string {
	if t.PercentChange.IsPositive() {
		return "+" + t.PercentChange.String()
	}
	return t.PercentChange.String()
}
