package model

// DependencyGraph is a directed graph over component names (qualified type
// names at the type level, package names at the package level). Adjacency maps
// each node to its sorted, de-duplicated set of targets; every endpoint of
// every edge is a node of the graph. Cycles are ordinary data here: nodes
// reference each other by name, never by pointer.
type DependencyGraph struct {
	Nodes     []string            `json:"nodes"`
	Adjacency map[string][]string `json:"adjacency"`

	// Reverse is the incoming-edge index, maintained alongside Adjacency so
	// afferent lookups do not require a full edge scan.
	Reverse map[string][]string `json:"-"`
}

// NewDependencyGraph returns an empty graph
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		Adjacency: make(map[string][]string),
		Reverse:   make(map[string][]string),
	}
}

// HasNode reports whether name is a node of the graph
func (g *DependencyGraph) HasNode(name string) bool {
	_, ok := g.Adjacency[name]
	return ok
}

// Dependencies returns the outgoing edge set of a node (efferent side)
func (g *DependencyGraph) Dependencies(name string) []string {
	return g.Adjacency[name]
}

// Dependents returns the incoming edge set of a node (afferent side)
func (g *DependencyGraph) Dependents(name string) []string {
	return g.Reverse[name]
}

// EdgeCount returns the total number of directed edges
func (g *DependencyGraph) EdgeCount() int {
	n := 0
	for _, targets := range g.Adjacency {
		n += len(targets)
	}
	return n
}

// CycleChain is an ordered dependency loop: the first and last element are the
// same qualified name. Never mutated after detection.
type CycleChain struct {
	Path []string `json:"path"`
}

// Size returns the number of distinct components in the chain
func (c CycleChain) Size() int {
	if len(c.Path) == 0 {
		return 0
	}
	return len(c.Path) - 1
}

// ExternalCategory is the coarse classification of an unresolved reference
type ExternalCategory string

const (
	ExternalFramework   ExternalCategory = "framework"
	ExternalPersistence ExternalCategory = "persistence"
	ExternalLogging     ExternalCategory = "logging"
	ExternalTesting     ExternalCategory = "testing"
	ExternalStdlib      ExternalCategory = "stdlib"
	ExternalLibrary     ExternalCategory = "library"
)

// ExternalDependency records one reference from an internal type to a target
// outside the analyzed codebase. These never become graph edges.
type ExternalDependency struct {
	Source   string           `json:"source"`
	Target   string           `json:"target"`
	Category ExternalCategory `json:"category"`

	// SimilarInternal is set when an internal type's simple name is within a
	// small edit distance of the target's simple name, hinting that the
	// import-suffix resolution may be shadowing an internal type.
	SimilarInternal string `json:"similar_internal,omitempty"`
}

// GraphResult is the complete output of the dependency graph builder
type GraphResult struct {
	TypeGraph    *DependencyGraph `json:"type_graph"`
	PackageGraph *DependencyGraph `json:"package_graph"`

	// Packages maps each package name to the sorted qualified names of its
	// member types (grouping only; declarations stay owned by the extraction
	// result).
	Packages map[string][]string `json:"packages"`

	External []ExternalDependency `json:"external,omitempty"`
	Cycles   []CycleChain         `json:"cycles,omitempty"`

	// Closure maps each type to the sorted set of all internal types reachable
	// from it, directly or transitively.
	Closure map[string][]string `json:"closure"`
}
