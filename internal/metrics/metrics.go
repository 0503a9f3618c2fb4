package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Advisory evaluation metrics
var (
	// EvaluationsTotal tracks every normalize/score/trend/scan evaluation
	EvaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisory_evaluations_total",
			Help: "Total number of advisory evaluations by component and outcome",
		},
		[]string{"component", "outcome"},
	)

	// EvaluationDuration tracks how long evaluations take
	EvaluationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "advisory_evaluation_duration_seconds",
			Help:    "Duration of advisory evaluations in seconds",
			Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
		},
		[]string{"component"},
	)

	// DashboardBuildsTotal tracks dashboard renders
	DashboardBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisory_dashboard_builds_total",
			Help: "Total number of dashboard builds by dashboard",
		},
		[]string{"dashboard"},
	)

	// AppInfo provides static information about the application
	AppInfo = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "advisory_app_info",
			Help: "Application information (always 1)",
		},
	)

	// AppStartTime records when the application started
	AppStartTime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "advisory_app_start_time_seconds",
			Help: "Unix timestamp of when the application started",
		},
	)
)

func init() {
	AppInfo.Set(1)
	AppStartTime.SetToCurrentTime()
}

// RecordEvaluation records one advisory evaluation
func RecordEvaluation(component, outcome string, duration time.Duration) {
	EvaluationsTotal.WithLabelValues(component, outcome).Inc()
	EvaluationDuration.WithLabelValues(component).Observe(duration.Seconds())
}

// RecordDashboardBuild records one dashboard render
func RecordDashboardBuild(dashboard string) {
	DashboardBuildsTotal.WithLabelValues(dashboard).Inc()
}
