package config

import (
	"fmt"
	"math"
)

// Config is the root configuration structure
type Config struct {
	Tool        ToolConfig        `yaml:"tool"`
	Extractor   ExtractorConfig   `yaml:"extractor"`
	Graph       GraphConfig       `yaml:"graph"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Store       StoreConfig       `yaml:"store"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// ToolConfig contains tool metadata
type ToolConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
}

// ExtractorConfig contains source extraction settings
type ExtractorConfig struct {
	// Extensions lists the file extensions scanned for type declarations
	Extensions []string `yaml:"extensions"`

	// ExcludePatterns are glob patterns (** supported) matched against
	// root-relative paths; matching files are skipped, not parsed
	ExcludePatterns []string `yaml:"exclude_patterns"`

	// ConcernMarkers maps a structural concern category to the bare
	// annotation names that mark it (dependency injection, persistence,
	// web routing, ...). Used for cross-cutting-concern detection only;
	// it never affects dependency resolution.
	ConcernMarkers map[string][]string `yaml:"concern_markers"`
}

// GraphConfig contains dependency graph settings
type GraphConfig struct {
	External ExternalPatternsConfig `yaml:"external"`

	// SimilarNameMaxDistance bounds the edit distance used when hinting
	// that an external reference shadows an internal type name. 0 disables
	// the hint.
	SimilarNameMaxDistance int `yaml:"similar_name_max_distance"`
}

// ExternalPatternsConfig classifies external references by qualified-name
// prefix. Categories are checked in declaration order here; the first match
// wins, anything unmatched is classified as "library".
type ExternalPatternsConfig struct {
	Framework   []string `yaml:"framework"`
	Persistence []string `yaml:"persistence"`
	Logging     []string `yaml:"logging"`
	Testing     []string `yaml:"testing"`
	Stdlib      []string `yaml:"stdlib"`
}

// MetricsConfig contains coupling metric thresholds and score weights
type MetricsConfig struct {
	// Hotspot predicate thresholds: a component is a hotspot when its
	// afferent count exceeds AfferentThreshold, its efferent count exceeds
	// EfferentThreshold, or its distance exceeds DistanceThreshold.
	AfferentThreshold int     `yaml:"afferent_threshold"`
	EfferentThreshold int     `yaml:"efferent_threshold"`
	DistanceThreshold float64 `yaml:"distance_threshold"`

	// HotspotMinCoupling suppresses hotspot report entries for components
	// whose total coupling (Ca+Ce) falls below it. The per-record hotspot
	// flag is unaffected.
	HotspotMinCoupling int `yaml:"hotspot_min_coupling"`

	// Cycle severity: a cycle with at least CycleSizeCritical distinct
	// types is critical, at least CycleSizeHigh is high, otherwise medium.
	CycleSizeHigh     int `yaml:"cycle_size_high"`
	CycleSizeCritical int `yaml:"cycle_size_critical"`

	Weights WeightsConfig `yaml:"weights"`
}

// WeightsConfig holds the migration-complexity sub-score weights.
// The five weights must sum to 1.0.
type WeightsConfig struct {
	MaxAfferent     float64 `yaml:"max_afferent"`
	MaxEfferent     float64 `yaml:"max_efferent"`
	MeanInstability float64 `yaml:"mean_instability"`
	MeanDistance    float64 `yaml:"mean_distance"`
	CycleCount      float64 `yaml:"cycle_count"`
}

// Sum returns the total of all five weights
func (w WeightsConfig) Sum() float64 {
	return w.MaxAfferent + w.MaxEfferent + w.MeanInstability + w.MeanDistance + w.CycleCount
}

// ConcurrencyConfig contains concurrency settings
type ConcurrencyConfig struct {
	// ExtractWorkers is the number of files parsed concurrently
	ExtractWorkers int `yaml:"extract_workers"`
}

// StoreConfig contains run persistence settings
type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// OutputConfig contains report output settings
type OutputConfig struct {
	Formats         []string `yaml:"formats"` // json, markdown, mermaid
	OutputDir       string   `yaml:"output_dir"`
	HotspotsTopN    int      `yaml:"hotspots_top_n"`
	IncludeExternal bool     `yaml:"include_external"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level            string `yaml:"level"`
	File             string `yaml:"file"`
	IncludeTimestamp bool   `yaml:"include_timestamp"`
}

const weightTolerance = 1e-9

var knownFormats = map[string]bool{
	"json":     true,
	"markdown": true,
	"md":       true,
	"mermaid":  true,
	"mmd":      true,
}

// Validate rejects configurations that must not reach the analysis engine.
// Called by the loader after unmarshalling; an error here is fatal before
// any source file is read.
func (c *Config) Validate() error {
	if sum := c.Metrics.Weights.Sum(); math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("metric weights must sum to 1.0, got %.6f", sum)
	}
	w := c.Metrics.Weights
	for name, v := range map[string]float64{
		"max_afferent":     w.MaxAfferent,
		"max_efferent":     w.MaxEfferent,
		"mean_instability": w.MeanInstability,
		"mean_distance":    w.MeanDistance,
		"cycle_count":      w.CycleCount,
	} {
		if v < 0 {
			return fmt.Errorf("metric weight %s must not be negative, got %.6f", name, v)
		}
	}

	if c.Metrics.AfferentThreshold < 0 {
		return fmt.Errorf("afferent_threshold must not be negative, got %d", c.Metrics.AfferentThreshold)
	}
	if c.Metrics.EfferentThreshold < 0 {
		return fmt.Errorf("efferent_threshold must not be negative, got %d", c.Metrics.EfferentThreshold)
	}
	if c.Metrics.DistanceThreshold < 0 || c.Metrics.DistanceThreshold > 1 {
		return fmt.Errorf("distance_threshold must be in [0,1], got %.3f", c.Metrics.DistanceThreshold)
	}
	if c.Metrics.HotspotMinCoupling < 0 {
		return fmt.Errorf("hotspot_min_coupling must not be negative, got %d", c.Metrics.HotspotMinCoupling)
	}
	if c.Metrics.CycleSizeHigh < 2 {
		return fmt.Errorf("cycle_size_high must be at least 2, got %d", c.Metrics.CycleSizeHigh)
	}
	if c.Metrics.CycleSizeCritical < c.Metrics.CycleSizeHigh {
		return fmt.Errorf("cycle_size_critical (%d) must not be below cycle_size_high (%d)",
			c.Metrics.CycleSizeCritical, c.Metrics.CycleSizeHigh)
	}

	if c.Concurrency.ExtractWorkers < 1 {
		return fmt.Errorf("extract_workers must be at least 1, got %d", c.Concurrency.ExtractWorkers)
	}

	if len(c.Extractor.Extensions) == 0 {
		return fmt.Errorf("extractor must declare at least one file extension")
	}

	for _, f := range c.Output.Formats {
		if !knownFormats[f] {
			return fmt.Errorf("unknown output format %q (supported: json, markdown, mermaid)", f)
		}
	}

	if c.Graph.SimilarNameMaxDistance < 0 {
		return fmt.Errorf("similar_name_max_distance must not be negative, got %d", c.Graph.SimilarNameMaxDistance)
	}

	return nil
}
