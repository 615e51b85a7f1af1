package coupling

import (
	"math"
	"sort"

	"migration-advisor/src/config"
	"migration-advisor/src/model"
	"migration-advisor/src/util"
)

// Engine computes coupling metrics over the dependency graphs. Analysis is a
// pure function of its inputs; every run recomputes all records from scratch.
type Engine struct {
	cfg config.MetricsConfig
}

// NewEngine creates a metrics engine
func NewEngine(cfg config.MetricsConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Result carries everything the metrics stage produces
type Result struct {
	TypeRecords     []model.CouplingRecord
	PackageRecords  []model.CouplingRecord
	Summary         model.CouplingSummary
	Hotspots        []model.Hotspot
	Concerns        model.ConcernSummary
	ComplexityScore float64
}

// Analyze produces per-type and per-package coupling records, the aggregate
// summary, the hotspot report, the concern summary and the migration
// complexity score.
func (e *Engine) Analyze(extraction *model.ExtractionResult, graphs *model.GraphResult) *Result {
	pkgAbstractness := packageAbstractness(extraction.Types, graphs.Packages)

	typeRecords := e.computeRecords(graphs.TypeGraph, model.GranularityType, func(name string) (string, float64) {
		pkg := extraction.Types[name].Package
		return pkg, pkgAbstractness[pkg]
	})
	packageRecords := e.computeRecords(graphs.PackageGraph, model.GranularityPackage, func(name string) (string, float64) {
		return "", pkgAbstractness[name]
	})

	summary := e.summarize(typeRecords, len(graphs.Cycles))

	result := &Result{
		TypeRecords:     typeRecords,
		PackageRecords:  packageRecords,
		Summary:         summary,
		Hotspots:        e.buildHotspots(typeRecords, graphs),
		Concerns:        summarizeConcerns(extraction.Types),
		ComplexityScore: e.complexityScore(summary),
	}

	util.Info("coupling metrics: %d type records, %d package records, %d hotspots, complexity %.1f",
		len(typeRecords), len(packageRecords), len(result.Hotspots), result.ComplexityScore)
	return result
}

// computeRecords walks a graph's nodes in order and derives one coupling
// record per node. The abstractness callback supplies the component's package
// (empty at package granularity) and that package's abstractness.
func (e *Engine) computeRecords(g *model.DependencyGraph, granularity model.ComponentGranularity, abstractness func(string) (string, float64)) []model.CouplingRecord {
	records := make([]model.CouplingRecord, 0, len(g.Nodes))
	for _, name := range g.Nodes {
		ca := len(g.Dependents(name))
		ce := len(g.Dependencies(name))
		pkg, a := abstractness(name)

		// Instability is Ce/(Ca+Ce); a component with no edges at all sits at
		// the neutral origin: zero instability, zero distance, zero risk.
		instability := 0.0
		distance := 0.0
		if ca+ce > 0 {
			instability = float64(ce) / float64(ca+ce)
			distance = math.Abs(a + instability - 1)
		}

		records = append(records, model.CouplingRecord{
			Name:         name,
			Package:      pkg,
			Granularity:  granularity,
			Afferent:     ca,
			Efferent:     ce,
			Instability:  instability,
			Abstractness: a,
			Distance:     distance,
			Strength:     strengthBucket(ca + ce),
			IsHotspot:    e.isHotspot(ca, ce, distance),
			RiskScore:    riskScore(ca, ce, distance),
		})
	}
	return records
}

// strengthBucket classifies total coupling Ca+Ce
func strengthBucket(total int) model.CouplingStrength {
	switch {
	case total >= 40:
		return model.StrengthVeryStrong
	case total >= 25:
		return model.StrengthStrong
	case total >= 15:
		return model.StrengthModerate
	case total >= 5:
		return model.StrengthWeak
	default:
		return model.StrengthVeryWeak
	}
}

func (e *Engine) isHotspot(ca, ce int, distance float64) bool {
	return ca > e.cfg.AfferentThreshold ||
		ce > e.cfg.EfferentThreshold ||
		distance > e.cfg.DistanceThreshold
}

// riskScore sums capped contributions: afferent up to 50, efferent up to 30,
// distance scaled by 20. The total is not capped further.
func riskScore(ca, ce int, distance float64) float64 {
	return math.Min(float64(ca)*5, 50) + math.Min(float64(ce)*3, 30) + distance*20
}

// packageAbstractness computes, per package, the fraction of its types that
// are interfaces or abstract classes.
func packageAbstractness(types map[string]*model.TypeDeclaration, packages map[string][]string) map[string]float64 {
	out := make(map[string]float64, len(packages))
	for pkg, members := range packages {
		if len(members) == 0 {
			out[pkg] = 0
			continue
		}
		abstract := 0
		for _, name := range members {
			if types[name].IsAbstractLike() {
				abstract++
			}
		}
		out[pkg] = float64(abstract) / float64(len(members))
	}
	return out
}

// summarize aggregates the type-level records. With no components the means
// report the neutral middle 0.5 rather than dividing by zero; downstream
// scoring depends on exactly these defaults.
func (e *Engine) summarize(records []model.CouplingRecord, cycleCount int) model.CouplingSummary {
	summary := model.CouplingSummary{
		ComponentCount:  len(records),
		CycleCount:      cycleCount,
		MeanInstability: 0.5,
		MeanDistance:    0.5,
	}
	if len(records) == 0 {
		return summary
	}

	var sumCe, sumInstability, sumDistance float64
	for _, r := range records {
		sumCe += float64(r.Efferent)
		sumInstability += r.Instability
		sumDistance += r.Distance
		if r.Afferent > summary.MaxAfferent {
			summary.MaxAfferent = r.Afferent
			summary.MaxAfferentName = r.Name
		}
		if r.Efferent > summary.MaxEfferent {
			summary.MaxEfferent = r.Efferent
			summary.MaxEfferentName = r.Name
		}
	}

	n := float64(len(records))
	summary.MeanInstability = sumInstability / n
	summary.MeanDistance = sumDistance / n
	if len(records) > 1 {
		summary.CouplingDensity = sumCe / (n * (n - 1))
	}
	return summary
}

// summarizeConcerns aggregates the structural-marker categories attached at
// extraction time. Types carrying two or more categories are surfaced as
// decomposition blockers.
func summarizeConcerns(types map[string]*model.TypeDeclaration) model.ConcernSummary {
	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	sort.Strings(names)

	summary := model.ConcernSummary{}
	for _, name := range names {
		decl := types[name]
		if len(decl.Concerns) == 0 {
			continue
		}
		if summary.TypesByConcern == nil {
			summary.TypesByConcern = make(map[string]int)
		}
		for _, c := range decl.Concerns {
			summary.TypesByConcern[c]++
		}
		if len(decl.Concerns) >= 2 {
			summary.MixedTypes = append(summary.MixedTypes, model.MixedConcernType{
				Name:     name,
				Concerns: decl.Concerns,
			})
		}
	}
	return summary
}
