package advisory

import (
	"errors"
	"iter"
	"time"

	"github.com/rs/zerolog/log"

	"farmadvisor/internal/metrics"
	"farmadvisor/internal/models"
)

// Reading pairs a metric with the thresholds it is judged against
type Reading struct {
	Metric     models.Metric
	Thresholds models.Thresholds
}

// EvaluatedReading is a reading after normalization
type EvaluatedReading struct {
	Metric models.Metric `json:"metric"`
	models.Normalized
}

// PriceTrend is a price observation with its evaluated trend and sentiment
type PriceTrend struct {
	Observation models.PriceObservation `json:"observation"`
	Trend       models.Trend            `json:"trend"`
	Sentiment   models.Sentiment        `json:"sentiment"`
}

// ItemError records the failure of a single item in a batch
type ItemError struct {
	Item string `json:"item"`
	Err  error  `json:"-"`
}

func (e ItemError) Error() string {
	return e.Item + ": " + e.Err.Error()
}

func (e ItemError) Unwrap() error {
	return e.Err
}

// Options configures an Advisor
type Options struct {
	// StableBand is the ± percent change still read as a neutral market
	StableBand float64
	// ScanConfidence bands disease-detection confidence
	ScanConfidence models.Thresholds
}

// DefaultOptions returns the built-in advisory settings
func DefaultOptions() Options {
	return Options{
		StableBand:     5.0,
		ScanConfidence: models.Thresholds{GoodMin: 80, GoodMax: 100, WarnMin: 60, WarnMax: 100},
	}
}

// Advisor evaluates batches of metrics, crops, prices and scans.
// A failure on one item is logged and reported but never stops the batch.
// Advisor holds no mutable state and is safe for concurrent use.
type Advisor struct {
	opts Options
}

// NewAdvisor creates a new advisor
func NewAdvisor(opts Options) *Advisor {
	return &Advisor{opts: opts}
}

// Options returns the advisor's settings
func (a *Advisor) Options() Options {
	return a.opts
}

// RecommendCrops scores every crop in the catalog and ranks the ones that scored
func (a *Advisor) RecommendCrops(catalog []models.CropProfile, cond models.Conditions) (iter.Seq[models.SuitabilityScore], []ItemError) {
	scores := make([]models.SuitabilityScore, 0, len(catalog))
	var failures []ItemError

	for _, crop := range catalog {
		start := time.Now()
		s, err := Score(crop, cond)
		observe("score", start, err)
		if err != nil {
			failures = append(failures, a.fail("score", crop.Name, err))
			continue
		}
		scores = append(scores, s)
	}

	log.Debug().
		Int("scored", len(scores)).
		Int("failed", len(failures)).
		Str("season", string(cond.Season)).
		Msg("crop recommendations computed")

	return Rank(scores), failures
}

// EvaluateReadings normalizes each reading against its own thresholds
func (a *Advisor) EvaluateReadings(readings []Reading) ([]EvaluatedReading, []ItemError) {
	var out []EvaluatedReading
	var failures []ItemError

	for _, r := range readings {
		start := time.Now()
		n, err := Normalize(r.Metric, r.Thresholds)
		observe("normalize", start, err)
		if err != nil {
			failures = append(failures, a.fail("normalize", r.Metric.Name, err))
			continue
		}
		out = append(out, EvaluatedReading{Metric: r.Metric, Normalized: n})
	}
	return out, failures
}

// EvaluatePrices computes the trend and market sentiment of each observation
func (a *Advisor) EvaluatePrices(observations []models.PriceObservation) ([]PriceTrend, []ItemError) {
	var out []PriceTrend
	var failures []ItemError

	for _, obs := range observations {
		start := time.Now()
		t, err := TrendOf(obs)
		observe("trend", start, err)
		if err != nil {
			failures = append(failures, a.fail("trend", obs.Crop, err))
			continue
		}
		out = append(out, PriceTrend{
			Observation: obs,
			Trend:       t,
			Sentiment:   Insight(t, a.opts.StableBand),
		})
	}
	return out, failures
}

// AssessScans classifies each disease scan
func (a *Advisor) AssessScans(scans []models.ScanResult) ([]ScanAssessment, []ItemError) {
	var out []ScanAssessment
	var failures []ItemError

	for _, scan := range scans {
		start := time.Now()
		s, err := AssessScan(scan, a.opts.ScanConfidence)
		observe("scan", start, err)
		if err != nil {
			failures = append(failures, a.fail("scan", scan.Crop, err))
			continue
		}
		out = append(out, s)
	}
	return out, failures
}

// Rollup classifies a set of bands, recording the evaluation
func (a *Advisor) Rollup(bands []models.StatusLevel) (models.StatusLevel, error) {
	start := time.Now()
	status, err := Classify(bands)
	observe("classify", start, err)
	return status, err
}

func (a *Advisor) fail(component, item string, err error) ItemError {
	log.Warn().
		Err(err).
		Str("component", component).
		Str("item", item).
		Msg("advisory evaluation failed")
	return ItemError{Item: item, Err: err}
}

func observe(component string, start time.Time, err error) {
	metrics.RecordEvaluation(component, Outcome(err), time.Since(start))
}

// Outcome maps an evaluation error onto a metrics label
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidMetric):
		return "invalid_metric"
	case errors.Is(err, ErrNoMetrics):
		return "no_metrics"
	case errors.Is(err, ErrIncompleteProfile):
		return "incomplete_profile"
	case errors.Is(err, ErrDivisionByZero):
		return "division_by_zero"
	}
	return "error"
}
