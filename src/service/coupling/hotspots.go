package coupling

import (
	"sort"

	"migration-advisor/src/model"
)

// Remediation texts are fixed per category; they are presentation hints, not
// part of the numeric contract.
const (
	suggestionAfferent = "Introduce an interface seam and migrate dependents onto it before extracting this component."
	suggestionEfferent = "Consolidate outgoing calls behind a facade or move tightly coupled collaborators into the same service."
	suggestionCycle    = "Break the cycle by inverting one dependency or extracting the shared portion into its own component."
)

const maxRelated = 5

// buildHotspots assembles the migration hotspot report: one entry per
// component over the afferent threshold, one per component over the efferent
// threshold, and one per dependency cycle. Components whose total coupling
// falls below the minimum-coupling floor are left out of the report; the
// per-record hotspot flag is unaffected by that floor.
func (e *Engine) buildHotspots(records []model.CouplingRecord, graphs *model.GraphResult) []model.Hotspot {
	var afferent, efferent []model.Hotspot

	for _, r := range records {
		if r.TotalCoupling() < e.cfg.HotspotMinCoupling {
			continue
		}
		if r.Afferent > e.cfg.AfferentThreshold {
			afferent = append(afferent, model.Hotspot{
				Category:     model.HotspotHighAfferent,
				Component:    r.Name,
				Severity:     e.thresholdSeverity(r.Afferent, e.cfg.AfferentThreshold),
				TriggerCount: r.Afferent,
				Related:      firstN(graphs.TypeGraph.Dependents(r.Name), maxRelated),
				EffortHours:  float64(r.Afferent) * 4,
				Suggestion:   suggestionAfferent,
			})
		}
		if r.Efferent > e.cfg.EfferentThreshold {
			efferent = append(efferent, model.Hotspot{
				Category:     model.HotspotHighEfferent,
				Component:    r.Name,
				Severity:     e.thresholdSeverity(r.Efferent, e.cfg.EfferentThreshold),
				TriggerCount: r.Efferent,
				Related:      firstN(graphs.TypeGraph.Dependencies(r.Name), maxRelated),
				EffortHours:  float64(r.Efferent) * 2,
				Suggestion:   suggestionEfferent,
			})
		}
	}

	sortHotspots(afferent)
	sortHotspots(efferent)

	hotspots := append(afferent, efferent...)
	for _, cycle := range graphs.Cycles {
		hotspots = append(hotspots, model.Hotspot{
			Category:     model.HotspotCycle,
			Component:    cycle.Path[0],
			Severity:     e.cycleSeverity(cycle.Size()),
			TriggerCount: cycle.Size(),
			Related:      cycle.Path,
			EffortHours:  float64(cycle.Size()) * 6,
			Suggestion:   suggestionCycle,
		})
	}
	return hotspots
}

// thresholdSeverity grades how far a count sits beyond its threshold
func (e *Engine) thresholdSeverity(count, threshold int) model.Severity {
	switch {
	case count > threshold*3:
		return model.SeverityCritical
	case count > threshold*2:
		return model.SeverityHigh
	default:
		return model.SeverityMedium
	}
}

func (e *Engine) cycleSeverity(size int) model.Severity {
	switch {
	case size >= e.cfg.CycleSizeCritical:
		return model.SeverityCritical
	case size >= e.cfg.CycleSizeHigh:
		return model.SeverityHigh
	default:
		return model.SeverityMedium
	}
}

// sortHotspots orders entries by trigger count descending, name ascending on
// ties, so reports lead with the worst offenders.
func sortHotspots(entries []model.Hotspot) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TriggerCount != entries[j].TriggerCount {
			return entries[i].TriggerCount > entries[j].TriggerCount
		}
		return entries[i].Component < entries[j].Component
	})
}

func firstN(values []string, n int) []string {
	if len(values) <= n {
		return values
	}
	return values[:n]
}
