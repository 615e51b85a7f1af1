package depgraph

import (
	"sort"
	"strings"

	"migration-advisor/src/config"
	"migration-advisor/src/model"
	"migration-advisor/src/util"
)

// Builder constructs the type-level and package-level dependency graphs from
// an extracted type model. Building is a pure function of its input; the
// builder holds only configuration.
type Builder struct {
	cfg config.GraphConfig
}

// NewBuilder creates a graph builder
func NewBuilder(cfg config.GraphConfig) *Builder {
	return &Builder{cfg: cfg}
}

// Build resolves every type reference and assembles the full graph result:
// type graph, package graph, external-dependency records, cycles and
// transitive closure.
//
// Resolution never guesses: a raw reference resolves to an internal type only
// by exact qualified-name match or through an import whose final segment
// equals the reference's base name. Anything else contributes no edge.
func (b *Builder) Build(types map[string]*model.TypeDeclaration) *model.GraphResult {
	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	sort.Strings(names)

	typeGraph := model.NewDependencyGraph()
	typeGraph.Nodes = names
	for _, name := range names {
		typeGraph.Adjacency[name] = []string{}
	}

	externals := newExternalRecorder(b.cfg, types)

	for _, name := range names {
		decl := types[name]
		typeGraph.Adjacency[name] = b.collectEdges(decl, types, externals)
	}
	fillReverse(typeGraph)

	pkgGraph, packages := buildPackageGraph(types, typeGraph)

	result := &model.GraphResult{
		TypeGraph:    typeGraph,
		PackageGraph: pkgGraph,
		Packages:     packages,
		External:     externals.records(),
		Cycles:       DetectCycles(typeGraph),
		Closure:      TransitiveClosure(typeGraph),
	}

	util.Info("dependency graph: %d types, %d edges, %d packages, %d external references, %d cycles",
		len(names), typeGraph.EdgeCount(), len(packages), len(result.External), len(result.Cycles))
	return result
}

// collectEdges gathers one type's outgoing internal edges. Sources are
// visited in a fixed order (internal imports, field types, method returns,
// method parameters, extends, implements) and unioned into one sorted set.
func (b *Builder) collectEdges(decl *model.TypeDeclaration, types map[string]*model.TypeDeclaration, ext *externalRecorder) []string {
	seen := make(map[string]bool)
	var targets []string
	add := func(target string) {
		// Self-references carry no coupling information and would surface
		// as single-type cycles.
		if target == "" || target == decl.QualifiedName || seen[target] {
			return
		}
		seen[target] = true
		targets = append(targets, target)
	}
	resolve := func(raw string) {
		internal, external := resolveRef(raw, decl.Imports, types)
		if internal != "" {
			add(internal)
		} else if external != "" {
			ext.record(decl.QualifiedName, external)
		}
	}

	for _, imp := range decl.Imports {
		if _, ok := types[imp]; ok {
			add(imp)
		} else {
			ext.record(decl.QualifiedName, imp)
		}
	}

	for _, m := range decl.Members {
		if m.Kind == model.MemberField {
			resolve(m.TypeName)
		}
	}
	for _, m := range decl.Members {
		if m.Kind == model.MemberMethod {
			resolve(m.TypeName)
		}
	}
	for _, m := range decl.Members {
		if m.Kind == model.MemberMethod {
			for _, p := range m.Parameters {
				resolve(p.TypeName)
			}
		}
	}

	resolve(decl.Extends)
	for _, ref := range decl.Implements {
		resolve(ref)
	}

	sort.Strings(targets)
	return targets
}

// resolveRef applies the resolution rule to one raw type reference. It
// returns the internal qualified name, or the external qualified name an
// import mapped it to, or neither when the reference cannot be placed.
func resolveRef(raw string, imports []string, types map[string]*model.TypeDeclaration) (internal, external string) {
	base := normalizeRef(raw)
	if base == "" {
		return "", ""
	}

	if _, ok := types[base]; ok {
		return base, ""
	}

	for _, imp := range imports {
		if finalSegment(imp) == base {
			if _, ok := types[imp]; ok {
				return imp, ""
			}
			return "", imp
		}
	}
	return "", ""
}

// normalizeRef strips array brackets and everything from the first generic
// parameter list, leaving the base name used for lookup.
func normalizeRef(raw string) string {
	if i := strings.Index(raw, "<"); i >= 0 {
		raw = raw[:i]
	}
	raw = strings.ReplaceAll(raw, "[]", "")
	return strings.TrimSpace(raw)
}

func finalSegment(qualified string) string {
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}

// fillReverse populates the incoming-edge index. Iterating sources in node
// order keeps each dependent list sorted.
func fillReverse(g *model.DependencyGraph) {
	for _, name := range g.Nodes {
		g.Reverse[name] = []string{}
	}
	for _, src := range g.Nodes {
		for _, dst := range g.Adjacency[src] {
			g.Reverse[dst] = append(g.Reverse[dst], src)
		}
	}
}

// buildPackageGraph derives the package-level graph: an edge A -> B exists
// iff some type in A depends on some type in B and A != B. Dependencies
// between types of the same package never produce package self-loops.
func buildPackageGraph(types map[string]*model.TypeDeclaration, typeGraph *model.DependencyGraph) (*model.DependencyGraph, map[string][]string) {
	packages := make(map[string][]string)
	for _, name := range typeGraph.Nodes {
		pkg := types[name].Package
		packages[pkg] = append(packages[pkg], name)
	}

	pkgNames := make([]string, 0, len(packages))
	for pkg := range packages {
		sort.Strings(packages[pkg])
		pkgNames = append(pkgNames, pkg)
	}
	sort.Strings(pkgNames)

	g := model.NewDependencyGraph()
	g.Nodes = pkgNames
	edges := make(map[string]map[string]bool, len(pkgNames))
	for _, pkg := range pkgNames {
		g.Adjacency[pkg] = []string{}
		edges[pkg] = make(map[string]bool)
	}

	for _, src := range typeGraph.Nodes {
		srcPkg := types[src].Package
		for _, dst := range typeGraph.Adjacency[src] {
			dstPkg := types[dst].Package
			if srcPkg != dstPkg && !edges[srcPkg][dstPkg] {
				edges[srcPkg][dstPkg] = true
				g.Adjacency[srcPkg] = append(g.Adjacency[srcPkg], dstPkg)
			}
		}
	}
	for _, pkg := range pkgNames {
		sort.Strings(g.Adjacency[pkg])
	}
	fillReverse(g)

	return g, packages
}
