package model

import "time"

// Severity represents the severity level of a finding
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// CouplingStrength buckets a component by its total coupling (Ca+Ce)
type CouplingStrength string

const (
	StrengthVeryStrong CouplingStrength = "very_strong"
	StrengthStrong     CouplingStrength = "strong"
	StrengthModerate   CouplingStrength = "moderate"
	StrengthWeak       CouplingStrength = "weak"
	StrengthVeryWeak   CouplingStrength = "very_weak"
)

// ComponentGranularity says whether a coupling record describes a single type
// or a whole package
type ComponentGranularity string

const (
	GranularityType    ComponentGranularity = "type"
	GranularityPackage ComponentGranularity = "package"
)

// CouplingRecord holds the coupling metrics for one component. Derived
// entirely from the dependency graph; recomputed in full on every run.
type CouplingRecord struct {
	Name        string               `json:"name"`
	Package     string               `json:"package,omitempty"` // set for type records
	Granularity ComponentGranularity `json:"granularity"`

	Afferent     int     `json:"afferent"`
	Efferent     int     `json:"efferent"`
	Instability  float64 `json:"instability"`
	Abstractness float64 `json:"abstractness"`
	Distance     float64 `json:"distance"`

	Strength  CouplingStrength `json:"strength"`
	IsHotspot bool             `json:"is_hotspot"`
	RiskScore float64          `json:"risk_score"`
}

// TotalCoupling returns Ca + Ce
func (r CouplingRecord) TotalCoupling() int {
	return r.Afferent + r.Efferent
}

// HotspotCategory is the kind of migration hotspot
type HotspotCategory string

const (
	HotspotHighAfferent HotspotCategory = "high_afferent"
	HotspotHighEfferent HotspotCategory = "high_efferent"
	HotspotCycle        HotspotCategory = "dependency_cycle"
)

// Hotspot is one entry of the migration hotspot report. Severity, effort and
// suggestion are presentation hints layered on top of the numeric metrics.
type Hotspot struct {
	Category  HotspotCategory `json:"category"`
	Component string          `json:"component"`
	Severity  Severity        `json:"severity"`

	// TriggerCount is the value that tripped the threshold: the dependent
	// count, the dependency count, or the cycle size.
	TriggerCount int `json:"trigger_count"`

	// Related lists up to five dependents (high_afferent), up to five
	// dependencies (high_efferent), or the full cycle path.
	Related []string `json:"related,omitempty"`

	EffortHours float64 `json:"effort_hours"`
	Suggestion  string  `json:"suggestion"`
}

// SourceSummary is the serializable digest of the extraction stage
type SourceSummary struct {
	FileCount    int         `json:"file_count"`
	SkippedFiles int         `json:"skipped_files"`
	TypeCount    int         `json:"type_count"`
	MethodCount  int         `json:"method_count"`
	FieldCount   int         `json:"field_count"`
	PackageCount int         `json:"package_count"`
	ParseErrors  []FileError `json:"parse_errors,omitempty"`
}

// CouplingSummary aggregates the per-component metrics
type CouplingSummary struct {
	ComponentCount  int     `json:"component_count"`
	CouplingDensity float64 `json:"coupling_density"`
	MaxAfferent     int     `json:"max_afferent"`
	MaxAfferentName string  `json:"max_afferent_name,omitempty"`
	MaxEfferent     int     `json:"max_efferent"`
	MaxEfferentName string  `json:"max_efferent_name,omitempty"`
	MeanInstability float64 `json:"mean_instability"`
	MeanDistance    float64 `json:"mean_distance"`
	CycleCount      int     `json:"cycle_count"`
}

// MixedConcernType is a type whose annotations span two or more structural
// concern categories.
type MixedConcernType struct {
	Name     string   `json:"name"`
	Concerns []string `json:"concerns"`
}

// ConcernSummary aggregates structural-marker annotations across the codebase
type ConcernSummary struct {
	TypesByConcern map[string]int     `json:"types_by_concern,omitempty"`
	MixedTypes     []MixedConcernType `json:"mixed_types,omitempty"`
}

// AssessmentReport is the complete output of one assessment run. Everything in
// it is nested maps, lists and primitives so downstream consumers can
// serialize it without reaching into engine internals.
type AssessmentReport struct {
	RootPath    string    `json:"root_path"`
	GeneratedAt time.Time `json:"generated_at"`
	DurationMS  int64     `json:"duration_ms"`

	Source SourceSummary `json:"source"`

	TypeAdjacency    map[string][]string  `json:"type_adjacency"`
	PackageAdjacency map[string][]string  `json:"package_adjacency"`
	External         []ExternalDependency `json:"external,omitempty"`
	Cycles           []CycleChain         `json:"cycles,omitempty"`

	TypeRecords    []CouplingRecord `json:"type_records"`
	PackageRecords []CouplingRecord `json:"package_records"`

	Coupling CouplingSummary `json:"coupling"`
	Concerns ConcernSummary  `json:"concerns"`
	Hotspots []Hotspot       `json:"hotspots,omitempty"`

	// ComplexityScore is the aggregate migration complexity in [0,100].
	ComplexityScore float64 `json:"complexity_score"`
}
