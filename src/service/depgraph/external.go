package depgraph

import (
	"sort"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"

	"migration-advisor/src/config"
	"migration-advisor/src/model"
)

// internalName pairs a type's simple name with its qualified name for
// shadow-name lookups
type internalName struct {
	simple    string
	qualified string
}

// externalRecorder accumulates references to targets outside the analyzed
// codebase: imports that match no internal type, and type references an
// import mapped onto such a target.
type externalRecorder struct {
	cfg       config.GraphConfig
	internals []internalName
	seen      map[string]map[string]bool
	found     []model.ExternalDependency
}

func newExternalRecorder(cfg config.GraphConfig, types map[string]*model.TypeDeclaration) *externalRecorder {
	internals := make([]internalName, 0, len(types))
	for qualified, decl := range types {
		internals = append(internals, internalName{simple: decl.Name, qualified: qualified})
	}
	sort.Slice(internals, func(i, j int) bool {
		return internals[i].qualified < internals[j].qualified
	})
	return &externalRecorder{
		cfg:       cfg,
		internals: internals,
		seen:      make(map[string]map[string]bool),
	}
}

// record notes one external reference, de-duplicated per (source, target)
func (r *externalRecorder) record(source, target string) {
	if r.seen[source] == nil {
		r.seen[source] = make(map[string]bool)
	}
	if r.seen[source][target] {
		return
	}
	r.seen[source][target] = true

	r.found = append(r.found, model.ExternalDependency{
		Source:          source,
		Target:          target,
		Category:        r.classify(target),
		SimilarInternal: r.similarInternal(target),
	})
}

// records returns all external dependencies sorted by source then target
func (r *externalRecorder) records() []model.ExternalDependency {
	sort.Slice(r.found, func(i, j int) bool {
		if r.found[i].Source != r.found[j].Source {
			return r.found[i].Source < r.found[j].Source
		}
		return r.found[i].Target < r.found[j].Target
	})
	return r.found
}

// classify buckets a target by qualified-name prefix. Category lists are
// checked most-specific first so java.sql lands in persistence, not stdlib.
func (r *externalRecorder) classify(target string) model.ExternalCategory {
	ext := r.cfg.External
	checks := []struct {
		prefixes []string
		category model.ExternalCategory
	}{
		{ext.Framework, model.ExternalFramework},
		{ext.Persistence, model.ExternalPersistence},
		{ext.Logging, model.ExternalLogging},
		{ext.Testing, model.ExternalTesting},
		{ext.Stdlib, model.ExternalStdlib},
	}
	for _, check := range checks {
		for _, prefix := range check.prefixes {
			if strings.HasPrefix(target, prefix) {
				return check.category
			}
		}
	}
	return model.ExternalLibrary
}

// similarInternal returns the qualified name of the internal type whose
// simple name is closest to the target's, when within the configured edit
// distance. A hit means the import-suffix resolution may be shadowing an
// internal type of (nearly) the same name.
func (r *externalRecorder) similarInternal(target string) string {
	maxDist := r.cfg.SimilarNameMaxDistance
	if maxDist <= 0 {
		return ""
	}
	simple := finalSegment(target)
	if simple == "*" || simple == "" {
		return ""
	}

	best := ""
	bestDist := maxDist + 1
	for _, in := range r.internals {
		d := levenshtein.DistanceForStrings([]rune(simple), []rune(in.simple), levenshtein.DefaultOptions)
		if d < bestDist {
			bestDist = d
			best = in.qualified
		}
	}
	return best
}
