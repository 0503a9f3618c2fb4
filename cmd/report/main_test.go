package main

import (
	"testing"
	"time"

	"farmadvisor/internal/advisory"
	"farmadvisor/internal/catalog"
	"farmadvisor/internal/config"
	"farmadvisor/internal/dashboard"
	"farmadvisor/internal/sample"
)

func TestBuildReport(t *testing.T) {
	builder := dashboard.NewBuilder(advisory.NewAdvisor(advisory.DefaultOptions()), catalog.Default())
	snapshot := sample.Snapshot(config.Default().Thresholds, time.Now())

	report := buildReport(builder, snapshot)

	if len(report) != len(sections) {
		t.Fatalf("buildReport() returned %d sections, want %d", len(report), len(sections))
	}
	for _, name := range sections {
		if report[name] == nil {
			t.Errorf("buildReport() missing %q", name)
		}
	}

	market, ok := report["market"].(dashboard.MarketView)
	if !ok {
		t.Fatalf("market section has type %T", report["market"])
	}
	if len(market.Insights) != 3 {
		t.Errorf("Expected 3 market insights, got %d", len(market.Insights))
	}
}

func TestRender_UnavailableCount(t *testing.T) {
	builder := dashboard.NewBuilder(advisory.NewAdvisor(advisory.DefaultOptions()), catalog.Default())
	snapshot := sample.Snapshot(config.Default().Thresholds, time.Now())
	snapshot.Scans[0].Confidence = 120

	_, unavailable := render(builder, snapshot, "disease")
	if unavailable != 1 {
		t.Errorf("render(disease) unavailable = %d, want 1", unavailable)
	}
}
