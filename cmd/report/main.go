package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"farmadvisor/internal/advisory"
	"farmadvisor/internal/catalog"
	"farmadvisor/internal/config"
	"farmadvisor/internal/dashboard"
	"farmadvisor/internal/logging"
	"farmadvisor/internal/sample"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatal().Err(err).Str("path", config.Path()).Msg("failed to load config")
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Pretty)

	crops, err := catalog.Resolve(cfg.Crops)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid crop catalog")
	}

	builder := dashboard.NewBuilder(advisory.NewAdvisor(cfg.AdvisorOptions()), crops)
	snapshot := sample.Snapshot(cfg.Thresholds, time.Now())

	log.Info().Str("farmer", snapshot.Farmer).Msg("building advisory report")

	report := buildReport(builder, snapshot)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		log.Fatal().Err(err).Msg("failed to write report")
	}
}

// Section is one rendered dashboard
type Section struct {
	Name           string
	View           any
	Unavailable    int
	ProcessingTime time.Duration
}

var sections = []string{"overview", "soil-weather", "crops", "disease", "market"}

// buildReport renders every dashboard concurrently and returns them keyed by name
func buildReport(builder *dashboard.Builder, snapshot dashboard.Snapshot) map[string]any {
	startTime := time.Now()

	jobs := make(chan string, len(sections))
	results := make(chan Section, len(sections))

	var wg sync.WaitGroup
	for i := 0; i < len(sections); i++ {
		wg.Add(1)
		go worker(builder, snapshot, jobs, results, &wg)
	}

	for _, name := range sections {
		jobs <- name
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	report := make(map[string]any, len(sections))
	totalUnavailable := 0
	for result := range results {
		report[result.Name] = result.View
		totalUnavailable += result.Unavailable

		log.Info().
			Str("dashboard", result.Name).
			Int("unavailable", result.Unavailable).
			Dur("took", result.ProcessingTime).
			Msg("dashboard built")
	}

	log.Info().
		Int("dashboards", len(report)).
		Int("unavailable", totalUnavailable).
		Dur("took", time.Since(startTime)).
		Msg("report complete")

	return report
}

// worker renders dashboards from the jobs channel
func worker(builder *dashboard.Builder, snapshot dashboard.Snapshot, jobs <-chan string, results chan<- Section, wg *sync.WaitGroup) {
	defer wg.Done()

	for name := range jobs {
		startTime := time.Now()
		view, unavailable := render(builder, snapshot, name)
		results <- Section{
			Name:           name,
			View:           view,
			Unavailable:    unavailable,
			ProcessingTime: time.Since(startTime),
		}
	}
}

func render(builder *dashboard.Builder, snapshot dashboard.Snapshot, name string) (any, int) {
	switch name {
	case "overview":
		return builder.Overview(snapshot), 0
	case "soil-weather":
		v := builder.SoilWeather(snapshot)
		return v, len(v.Unavailable)
	case "crops":
		v := builder.Crops(snapshot)
		return v, len(v.Unavailable)
	case "disease":
		v := builder.Disease(snapshot)
		return v, len(v.Unavailable)
	case "market":
		v := builder.Market(snapshot)
		return v, len(v.Unavailable)
	}
	panic(fmt.Sprintf("unknown dashboard %q", name))
}
