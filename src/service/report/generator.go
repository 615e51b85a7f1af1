package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"migration-advisor/src/config"
	"migration-advisor/src/model"
	"migration-advisor/src/util"
)

// Generator renders an assessment report in the configured output formats
type Generator struct {
	cfg config.OutputConfig
}

// NewGenerator creates a new report generator
func NewGenerator(cfg config.OutputConfig) *Generator {
	return &Generator{cfg: cfg}
}

// Generate renders the report in the given format
func (g *Generator) Generate(report *model.AssessmentReport, format string) (string, error) {
	util.Debug("Generating report in %s format (%d hotspots)", format, len(report.Hotspots))
	switch format {
	case "json":
		return g.generateJSON(report)
	case "markdown", "md":
		return g.generateMarkdown(report)
	case "mermaid", "mmd":
		return g.generateMermaid(report), nil
	default:
		util.Warn("Unsupported report format requested: %s", format)
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// Extension returns the file extension for a format, without the dot
func Extension(format string) string {
	switch format {
	case "markdown", "md":
		return "md"
	case "mermaid", "mmd":
		return "mmd"
	default:
		return format
	}
}

func (g *Generator) generateJSON(report *model.AssessmentReport) (string, error) {
	out := *report
	if !g.cfg.IncludeExternal {
		out.External = nil
	}
	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (g *Generator) generateMarkdown(report *model.AssessmentReport) (string, error) {
	var sb strings.Builder

	// Header
	sb.WriteString("# Migration Readiness Assessment\n\n")
	sb.WriteString(fmt.Sprintf("**Codebase:** %s\n", report.RootPath))
	sb.WriteString(fmt.Sprintf("**Generated:** %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC")))
	sb.WriteString(fmt.Sprintf("**Duration:** %dms\n\n", report.DurationMS))

	// Summary
	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Migration Complexity:** %.1f/100\n", report.ComplexityScore))
	sb.WriteString(fmt.Sprintf("- **Files Scanned:** %s\n", humanize.Comma(int64(report.Source.FileCount))))
	sb.WriteString(fmt.Sprintf("- **Types:** %s across %s packages\n",
		humanize.Comma(int64(report.Source.TypeCount)), humanize.Comma(int64(report.Source.PackageCount))))
	sb.WriteString(fmt.Sprintf("- **Methods / Fields:** %s / %s\n",
		humanize.Comma(int64(report.Source.MethodCount)), humanize.Comma(int64(report.Source.FieldCount))))
	sb.WriteString(fmt.Sprintf("- **Coupling Density:** %.3f\n", report.Coupling.CouplingDensity))
	sb.WriteString(fmt.Sprintf("- **Dependency Cycles:** %d\n", report.Coupling.CycleCount))
	if len(report.Source.ParseErrors) > 0 {
		sb.WriteString(fmt.Sprintf("- **Parse Errors:** %d\n", len(report.Source.ParseErrors)))
	}
	sb.WriteString("\n")

	// Coupling extremes
	sb.WriteString("### Coupling Profile\n\n")
	sb.WriteString("| Metric | Value | Component |\n")
	sb.WriteString("|--------|-------|----------|\n")
	sb.WriteString(fmt.Sprintf("| Max afferent | %d | %s |\n", report.Coupling.MaxAfferent, codeOrDash(report.Coupling.MaxAfferentName)))
	sb.WriteString(fmt.Sprintf("| Max efferent | %d | %s |\n", report.Coupling.MaxEfferent, codeOrDash(report.Coupling.MaxEfferentName)))
	sb.WriteString(fmt.Sprintf("| Mean instability | %.3f | |\n", report.Coupling.MeanInstability))
	sb.WriteString(fmt.Sprintf("| Mean distance | %.3f | |\n", report.Coupling.MeanDistance))
	sb.WriteString("\n")

	// Packages ranked by risk
	if len(report.PackageRecords) > 0 {
		sb.WriteString("### Packages by Risk\n\n")
		sb.WriteString("| Package | Ca | Ce | Instability | Abstractness | Distance | Strength | Risk |\n")
		sb.WriteString("|---------|----|----|-------------|--------------|----------|----------|------|\n")
		for _, r := range topByRisk(report.PackageRecords, g.cfg.HotspotsTopN) {
			sb.WriteString(fmt.Sprintf("| `%s` | %d | %d | %.2f | %.2f | %.2f | %s | %.0f |\n",
				r.Name, r.Afferent, r.Efferent, r.Instability, r.Abstractness, r.Distance, r.Strength, r.RiskScore))
		}
		sb.WriteString("\n")
	}

	// Hotspots
	hotspots := report.Hotspots
	if g.cfg.HotspotsTopN > 0 && len(hotspots) > g.cfg.HotspotsTopN {
		hotspots = hotspots[:g.cfg.HotspotsTopN]
	}
	if len(hotspots) > 0 {
		sb.WriteString("## Migration Hotspots\n\n")
		for _, hs := range hotspots {
			sb.WriteString(fmt.Sprintf("### %s `%s`\n\n", severityTag(hs.Severity), hs.Component))
			sb.WriteString(fmt.Sprintf("- **Category:** %s\n", hs.Category))
			sb.WriteString(fmt.Sprintf("- **Trigger:** %d\n", hs.TriggerCount))
			sb.WriteString(fmt.Sprintf("- **Estimated Effort:** %.0fh\n", hs.EffortHours))
			if len(hs.Related) > 0 {
				sb.WriteString(fmt.Sprintf("- **Related:** %s\n", strings.Join(hs.Related, ", ")))
			}
			sb.WriteString(fmt.Sprintf("- **Suggestion:** %s\n\n", hs.Suggestion))
		}
	}

	// Cycles
	if len(report.Cycles) > 0 {
		sb.WriteString("## Dependency Cycles\n\n")
		for _, cycle := range report.Cycles {
			sb.WriteString(fmt.Sprintf("- `%s` (%d types)\n", strings.Join(cycle.Path, " -> "), cycle.Size()))
		}
		sb.WriteString("\n")
	}

	// Concerns
	if len(report.Concerns.TypesByConcern) > 0 {
		sb.WriteString("## Structural Concerns\n\n")
		sb.WriteString("| Concern | Types |\n")
		sb.WriteString("|---------|-------|\n")
		for _, concern := range sortedKeys(report.Concerns.TypesByConcern) {
			sb.WriteString(fmt.Sprintf("| %s | %d |\n", concern, report.Concerns.TypesByConcern[concern]))
		}
		sb.WriteString("\n")
		if len(report.Concerns.MixedTypes) > 0 {
			sb.WriteString("### Mixed-Concern Types\n\n")
			for _, mt := range report.Concerns.MixedTypes {
				sb.WriteString(fmt.Sprintf("- `%s`: %s\n", mt.Name, strings.Join(mt.Concerns, ", ")))
			}
			sb.WriteString("\n")
		}
	}

	// External dependencies
	if g.cfg.IncludeExternal && len(report.External) > 0 {
		sb.WriteString("## External Dependencies\n\n")
		sb.WriteString("| Category | References |\n")
		sb.WriteString("|----------|------------|\n")
		counts := make(map[model.ExternalCategory]int)
		for _, ext := range report.External {
			counts[ext.Category]++
		}
		for _, cat := range []model.ExternalCategory{
			model.ExternalFramework, model.ExternalPersistence, model.ExternalLogging,
			model.ExternalTesting, model.ExternalStdlib, model.ExternalLibrary,
		} {
			if counts[cat] > 0 {
				sb.WriteString(fmt.Sprintf("| %s | %d |\n", cat, counts[cat]))
			}
		}
		sb.WriteString("\n")

		shadowed := false
		for _, ext := range report.External {
			if ext.SimilarInternal == "" {
				continue
			}
			if !shadowed {
				sb.WriteString("### Possible Internal Shadows\n\n")
				shadowed = true
			}
			sb.WriteString(fmt.Sprintf("- `%s` resembles internal `%s`\n", ext.Target, ext.SimilarInternal))
		}
		if shadowed {
			sb.WriteString("\n")
		}
	}

	return sb.String(), nil
}

// generateMermaid renders the package dependency graph as a Mermaid flowchart.
// Hotspot packages are styled so the riskiest nodes stand out in the diagram.
func (g *Generator) generateMermaid(report *model.AssessmentReport) string {
	var sb strings.Builder

	sb.WriteString("graph LR\n")

	packages := make([]string, 0, len(report.PackageAdjacency))
	for pkg := range report.PackageAdjacency {
		packages = append(packages, pkg)
	}
	sort.Strings(packages)

	for _, pkg := range packages {
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", mermaidID(pkg), mermaidLabel(pkg)))
	}
	sb.WriteString("\n")

	for _, pkg := range packages {
		for _, dep := range report.PackageAdjacency[pkg] {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", mermaidID(pkg), mermaidID(dep)))
		}
	}

	var flagged []string
	for _, r := range report.PackageRecords {
		if r.IsHotspot {
			flagged = append(flagged, mermaidID(r.Name))
		}
	}
	if len(flagged) > 0 {
		sb.WriteString("\n")
		sb.WriteString("    classDef hotspot fill:#f96,stroke:#333\n")
		sb.WriteString(fmt.Sprintf("    class %s hotspot\n", strings.Join(flagged, ",")))
	}

	return sb.String()
}

// mermaidID makes a package name safe as a Mermaid node identifier
func mermaidID(pkg string) string {
	if pkg == "" {
		return "default_pkg"
	}
	return strings.ReplaceAll(pkg, ".", "_")
}

func mermaidLabel(pkg string) string {
	if pkg == "" {
		return "(default)"
	}
	return pkg
}

// topByRisk returns up to n records ordered by risk descending, name
// ascending on ties. The input slice is left untouched.
func topByRisk(records []model.CouplingRecord, n int) []model.CouplingRecord {
	ranked := make([]model.CouplingRecord, len(records))
	copy(ranked, records)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].RiskScore != ranked[j].RiskScore {
			return ranked[i].RiskScore > ranked[j].RiskScore
		}
		return ranked[i].Name < ranked[j].Name
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func codeOrDash(name string) string {
	if name == "" {
		return "-"
	}
	return "`" + name + "`"
}

func severityTag(s model.Severity) string {
	switch s {
	case model.SeverityCritical:
		return "[CRITICAL]"
	case model.SeverityHigh:
		return "[HIGH]"
	case model.SeverityMedium:
		return "[MEDIUM]"
	default:
		return "[LOW]"
	}
}
