package coupling

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"migration-advisor/src/config"
	"migration-advisor/src/model"
	"migration-advisor/src/service/depgraph"
)

func declare(qualified string, abstract bool, imports ...string) *model.TypeDeclaration {
	pkg, name := "", qualified
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		pkg, name = qualified[:i], qualified[i+1:]
	}
	return &model.TypeDeclaration{
		QualifiedName: qualified,
		Package:       pkg,
		Name:          name,
		Kind:          model.KindClass,
		Abstract:      abstract,
		Imports:       imports,
	}
}

func analyze(t *testing.T, decls ...*model.TypeDeclaration) *Result {
	t.Helper()
	types := make(map[string]*model.TypeDeclaration, len(decls))
	for _, d := range decls {
		types[d.QualifiedName] = d
	}
	graphs := depgraph.NewBuilder(config.DefaultConfig().Graph).Build(types)
	extraction := &model.ExtractionResult{Types: types}
	return NewEngine(config.DefaultConfig().Metrics).Analyze(extraction, graphs)
}

func findRecord(records []model.CouplingRecord, name string) *model.CouplingRecord {
	for i := range records {
		if records[i].Name == name {
			return &records[i]
		}
	}
	return nil
}

func TestTwoPackageScenario(t *testing.T) {
	result := analyze(t,
		declare("pkg.a.Foo", false, "pkg.b.Bar"),
		declare("pkg.a.Base", true),
		declare("pkg.b.Bar", false),
	)

	a := findRecord(result.PackageRecords, "pkg.a")
	if a == nil {
		t.Fatal("no record for pkg.a")
	}
	if a.Efferent != 1 {
		t.Errorf("efferent(pkg.a) = %d, want 1", a.Efferent)
	}
	if a.Abstractness != 0.5 {
		t.Errorf("abstractness(pkg.a) = %v, want 0.5", a.Abstractness)
	}
	if a.Instability != 1.0 {
		t.Errorf("instability(pkg.a) = %v, want 1.0 (pure efferent)", a.Instability)
	}
	if a.Distance != 0.5 {
		t.Errorf("distance(pkg.a) = %v, want 0.5", a.Distance)
	}

	b := findRecord(result.PackageRecords, "pkg.b")
	if b == nil {
		t.Fatal("no record for pkg.b")
	}
	if b.Afferent != 1 {
		t.Errorf("afferent(pkg.b) = %d, want 1", b.Afferent)
	}
	if b.Instability != 0 {
		t.Errorf("instability(pkg.b) = %v, want 0", b.Instability)
	}
}

func TestIsolatedTypeBoundary(t *testing.T) {
	result := analyze(t, declare("p.Lone", false))

	r := findRecord(result.TypeRecords, "p.Lone")
	if r == nil {
		t.Fatal("no record for p.Lone")
	}
	if r.Afferent != 0 || r.Efferent != 0 {
		t.Errorf("Ca/Ce = %d/%d, want 0/0", r.Afferent, r.Efferent)
	}
	if r.Instability != 0 {
		t.Errorf("instability = %v, want 0", r.Instability)
	}
	if r.Strength != model.StrengthVeryWeak {
		t.Errorf("strength = %s, want very_weak", r.Strength)
	}
	if r.IsHotspot {
		t.Error("an isolated type must not be a hotspot")
	}
	if r.RiskScore != 0 {
		t.Errorf("risk = %v, want 0", r.RiskScore)
	}
}

func TestMetricInvariantsAndCrossCheck(t *testing.T) {
	result := analyze(t,
		declare("m.A", false, "m.B", "m.C"),
		declare("m.B", true, "m.C"),
		declare("m.C", false, "m.A"),
		declare("n.D", false, "m.A"),
	)

	graphs := depgraph.NewBuilder(config.DefaultConfig().Graph).Build(map[string]*model.TypeDeclaration{
		"m.A": declare("m.A", false, "m.B", "m.C"),
		"m.B": declare("m.B", true, "m.C"),
		"m.C": declare("m.C", false, "m.A"),
		"n.D": declare("n.D", false, "m.A"),
	})

	for _, records := range [][]model.CouplingRecord{result.TypeRecords, result.PackageRecords} {
		for _, r := range records {
			for metric, v := range map[string]float64{
				"instability":  r.Instability,
				"abstractness": r.Abstractness,
				"distance":     r.Distance,
			} {
				if v < 0 || v > 1 {
					t.Errorf("%s(%s) = %v out of [0,1]", metric, r.Name, v)
				}
			}
			if r.Afferent < 0 || r.Efferent < 0 {
				t.Errorf("negative degree on %s", r.Name)
			}
		}
	}

	// Ca must equal the number of distinct components whose outgoing sets
	// contain the node: cross-check the two directions of the same graph.
	for _, r := range result.TypeRecords {
		incoming := 0
		for _, src := range graphs.TypeGraph.Nodes {
			for _, dst := range graphs.TypeGraph.Dependencies(src) {
				if dst == r.Name {
					incoming++
				}
			}
		}
		if r.Afferent != incoming {
			t.Errorf("Ca(%s) = %d, full edge scan found %d", r.Name, r.Afferent, incoming)
		}
	}
}

func TestStrengthBuckets(t *testing.T) {
	tests := []struct {
		total int
		want  model.CouplingStrength
	}{
		{0, model.StrengthVeryWeak},
		{4, model.StrengthVeryWeak},
		{5, model.StrengthWeak},
		{14, model.StrengthWeak},
		{15, model.StrengthModerate},
		{24, model.StrengthModerate},
		{25, model.StrengthStrong},
		{39, model.StrengthStrong},
		{40, model.StrengthVeryStrong},
		{120, model.StrengthVeryStrong},
	}
	for _, tt := range tests {
		if got := strengthBucket(tt.total); got != tt.want {
			t.Errorf("strengthBucket(%d) = %s, want %s", tt.total, got, tt.want)
		}
	}
}

func TestRiskScoreCaps(t *testing.T) {
	if got := riskScore(20, 20, 1.0); got != 100 {
		t.Errorf("saturated risk = %v, want 100 (50+30+20)", got)
	}
	if got := riskScore(1, 1, 0); got != 8 {
		t.Errorf("risk(1,1,0) = %v, want 8", got)
	}
	if got := riskScore(10, 10, 0); got != 80 {
		t.Errorf("risk(10,10,0) = %v, want 80", got)
	}
	// Afferent caps at 50 regardless of count, efferent at 30
	if got := riskScore(1000, 1000, 0); got != 80 {
		t.Errorf("risk(1000,1000,0) = %v, want 80", got)
	}
}

func TestHotspotPredicateIsStrict(t *testing.T) {
	e := NewEngine(config.DefaultConfig().Metrics) // thresholds 10/10/0.7

	tests := []struct {
		ca, ce int
		d      float64
		want   bool
	}{
		{10, 0, 0, false}, // equal is not over
		{11, 0, 0, true},
		{0, 10, 0, false},
		{0, 11, 0, true},
		{0, 0, 0.7, false},
		{0, 0, 0.71, true},
		{0, 0, 0, false},
	}
	for _, tt := range tests {
		if got := e.isHotspot(tt.ca, tt.ce, tt.d); got != tt.want {
			t.Errorf("isHotspot(%d,%d,%v) = %v, want %v", tt.ca, tt.ce, tt.d, got, tt.want)
		}
	}
}

func TestCouplingDensity(t *testing.T) {
	// Three components, two edges: density = 2 / (3*2)
	result := analyze(t,
		declare("p.A", false, "p.B"),
		declare("p.B", false, "p.C"),
		declare("p.C", false),
	)
	want := 2.0 / 6.0
	if math.Abs(result.Summary.CouplingDensity-want) > 1e-12 {
		t.Errorf("density = %v, want %v", result.Summary.CouplingDensity, want)
	}

	// A single component cannot have density
	single := analyze(t, declare("p.Only", false))
	if single.Summary.CouplingDensity != 0 {
		t.Errorf("density with N=1 = %v, want 0", single.Summary.CouplingDensity)
	}
}

func TestSummaryMaxima(t *testing.T) {
	result := analyze(t,
		declare("p.Hub", false),
		declare("p.U1", false, "p.Hub"),
		declare("p.U2", false, "p.Hub"),
		declare("p.Fan", false, "p.Hub", "p.U1", "p.U2"),
	)

	s := result.Summary
	if s.MaxAfferent != 3 || s.MaxAfferentName != "p.Hub" {
		t.Errorf("max afferent = %d (%s), want 3 (p.Hub)", s.MaxAfferent, s.MaxAfferentName)
	}
	if s.MaxEfferent != 3 || s.MaxEfferentName != "p.Fan" {
		t.Errorf("max efferent = %d (%s), want 3 (p.Fan)", s.MaxEfferent, s.MaxEfferentName)
	}
	if s.ComponentCount != 4 {
		t.Errorf("component count = %d", s.ComponentCount)
	}
}

func TestEmptyInputNeutralDefaults(t *testing.T) {
	types := map[string]*model.TypeDeclaration{}
	graphs := depgraph.NewBuilder(config.DefaultConfig().Graph).Build(types)
	result := NewEngine(config.DefaultConfig().Metrics).Analyze(&model.ExtractionResult{Types: types}, graphs)

	s := result.Summary
	if s.ComponentCount != 0 {
		t.Errorf("component count = %d", s.ComponentCount)
	}
	if s.MeanInstability != 0.5 || s.MeanDistance != 0.5 {
		t.Errorf("neutral means = %v/%v, want 0.5/0.5", s.MeanInstability, s.MeanDistance)
	}
	if s.CouplingDensity != 0 {
		t.Errorf("density = %v, want 0", s.CouplingDensity)
	}

	// Score from the neutral middle: both mean sub-scores at 50, weighted
	// 0.15 each under the default weights.
	if math.Abs(result.ComplexityScore-15.0) > 1e-9 {
		t.Errorf("complexity = %v, want 15.0", result.ComplexityScore)
	}
}

func TestConcernSummary(t *testing.T) {
	blended := declare("p.OrderFacade", false)
	blended.Concerns = []string{"injection", "persistence", "web"}
	repo := declare("p.OrderRepo", false)
	repo.Concerns = []string{"persistence"}
	plain := declare("p.Money", false)

	result := analyze(t, blended, repo, plain)

	want := map[string]int{"injection": 1, "persistence": 2, "web": 1}
	if !reflect.DeepEqual(result.Concerns.TypesByConcern, want) {
		t.Errorf("types by concern = %v, want %v", result.Concerns.TypesByConcern, want)
	}
	if len(result.Concerns.MixedTypes) != 1 || result.Concerns.MixedTypes[0].Name != "p.OrderFacade" {
		t.Errorf("mixed types = %v", result.Concerns.MixedTypes)
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	decls := func() []*model.TypeDeclaration {
		return []*model.TypeDeclaration{
			declare("a.A", false, "b.B"),
			declare("b.B", true, "a.A"),
			declare("c.C", false, "a.A", "b.B"),
		}
	}

	first := analyze(t, decls()...)
	second := analyze(t, decls()...)
	if !reflect.DeepEqual(first, second) {
		t.Error("two analyses over identical input differ")
	}
}
