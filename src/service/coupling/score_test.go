package coupling

import (
	"math"
	"testing"

	"migration-advisor/src/config"
	"migration-advisor/src/model"
)

func TestClampScore(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-5, 0},
		{0, 0},
		{50, 50},
		{100, 100},
		{150, 100},
	}
	for _, tt := range tests {
		if got := clampScore(tt.in); got != tt.want {
			t.Errorf("clampScore(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestComplexityScoreWeighting(t *testing.T) {
	e := NewEngine(config.DefaultConfig().Metrics)
	summary := model.CouplingSummary{
		MaxAfferent:     10,  // sub-score 20
		MaxEfferent:     5,   // sub-score 10
		MeanInstability: 0.4, // sub-score 40
		MeanDistance:    0.2, // sub-score 20
		CycleCount:      3,   // sub-score 30
	}

	want := 20*0.25 + 10*0.20 + 40*0.15 + 20*0.15 + 30*0.25
	if got := e.complexityScore(summary); math.Abs(got-want) > 1e-9 {
		t.Errorf("score = %v, want %v", got, want)
	}
}

func TestComplexityScoreSaturates(t *testing.T) {
	e := NewEngine(config.DefaultConfig().Metrics)
	summary := model.CouplingSummary{
		MaxAfferent:     1000,
		MaxEfferent:     1000,
		MeanInstability: 1.0,
		MeanDistance:    1.0,
		CycleCount:      50,
	}

	// Every sub-score clamps to 100, so the weighted total is 100 regardless
	// of how far past the scale the raw values go.
	if got := e.complexityScore(summary); math.Abs(got-100) > 1e-9 {
		t.Errorf("score = %v, want 100", got)
	}
}

func TestComplexityScoreCustomWeights(t *testing.T) {
	cfg := config.DefaultConfig().Metrics
	cfg.Weights = config.WeightsConfig{CycleCount: 1.0}
	e := NewEngine(cfg)

	summary := model.CouplingSummary{
		MaxAfferent:     500,
		MaxEfferent:     500,
		MeanInstability: 1.0,
		MeanDistance:    1.0,
		CycleCount:      4,
	}
	if got := e.complexityScore(summary); math.Abs(got-40) > 1e-9 {
		t.Errorf("score = %v, want 40 with all weight on cycles", got)
	}
}
