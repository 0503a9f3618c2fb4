package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"farmadvisor/internal/advisory"
	"farmadvisor/internal/dashboard"
	"farmadvisor/internal/models"
)

// SnapshotFunc supplies the farm state to render at the given time
type SnapshotFunc func(now time.Time) dashboard.Snapshot

type TrendRequest struct {
	Current  decimal.Decimal `json:"current"`
	Previous decimal.Decimal `json:"previous"`
}

type TrendResponse struct {
	models.Trend
	Sentiment models.Sentiment `json:"sentiment"`
}

type NormalizeRequest struct {
	Metric     models.Metric     `json:"metric"`
	Thresholds models.Thresholds `json:"thresholds"`
}

// Server represents the HTTP server
type Server struct {
	advisor  *advisory.Advisor
	builder  *dashboard.Builder
	snapshot SnapshotFunc
	mux      *http.ServeMux
	http     *http.Server
}

// NewServer creates a new HTTP server
func NewServer(advisor *advisory.Advisor, builder *dashboard.Builder, snapshot SnapshotFunc) *Server {
	s := &Server{
		advisor:  advisor,
		builder:  builder,
		snapshot: snapshot,
		mux:      http.NewServeMux(),
	}

	// Register routes
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/dashboard/overview", s.dashboardHandler(func(snap dashboard.Snapshot) any { return s.builder.Overview(snap) }))
	s.mux.HandleFunc("/dashboard/soil-weather", s.dashboardHandler(func(snap dashboard.Snapshot) any { return s.builder.SoilWeather(snap) }))
	s.mux.HandleFunc("/dashboard/crops", s.dashboardHandler(func(snap dashboard.Snapshot) any { return s.builder.Crops(snap) }))
	s.mux.HandleFunc("/dashboard/disease", s.dashboardHandler(func(snap dashboard.Snapshot) any { return s.builder.Disease(snap) }))
	s.mux.HandleFunc("/dashboard/market", s.dashboardHandler(func(snap dashboard.Snapshot) any { return s.builder.Market(snap) }))
	s.mux.HandleFunc("/evaluate/trend", s.handleEvaluateTrend)
	s.mux.HandleFunc("/evaluate/normalize", s.handleEvaluateNormalize)
	s.mux.Handle("/metrics", promhttp.Handler())

	s.http = &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// Handler exposes the route table
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start(addr string) error {
	s.http.Addr = addr
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// handleHealth returns the server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().String(),
	})
}

func (s *Server) dashboardHandler(build func(dashboard.Snapshot) any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, build(s.snapshot(time.Now())))
	}
}

// handleEvaluateTrend computes the trend between two prices
func (s *Server) handleEvaluateTrend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req TrendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	trend, err := advisory.EvaluateTrend(req.Current, req.Previous)
	if err != nil {
		log.Debug().Err(err).Msg("trend request rejected")
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	writeJSON(w, TrendResponse{
		Trend:     trend,
		Sentiment: advisory.Insight(trend, s.advisor.Options().StableBand),
	})
}

// handleEvaluateNormalize bands a single metric against caller-supplied thresholds
func (s *Server) handleEvaluateNormalize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req NormalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	readings, failures := s.advisor.EvaluateReadings([]advisory.Reading{{Metric: req.Metric, Thresholds: req.Thresholds}})
	if len(failures) > 0 {
		http.Error(w, failures[0].Error(), statusFor(failures[0]))
		return
	}

	writeJSON(w, readings[0])
}

// statusFor maps advisory errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, advisory.ErrInvalidMetric),
		errors.Is(err, advisory.ErrDivisionByZero),
		errors.Is(err, advisory.ErrIncompleteProfile),
		errors.Is(err, advisory.ErrNoMetrics):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
