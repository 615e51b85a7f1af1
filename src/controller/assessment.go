package controller

import (
	"context"
	"path/filepath"
	"time"

	"migration-advisor/src/config"
	"migration-advisor/src/model"
	"migration-advisor/src/service/coupling"
	"migration-advisor/src/service/depgraph"
	"migration-advisor/src/service/source"
	"migration-advisor/src/service/store"
	"migration-advisor/src/util"
)

// AssessmentController orchestrates the assessment pipeline
type AssessmentController struct {
	cfg *config.Config
}

// NewAssessmentController creates a new assessment controller
func NewAssessmentController(cfg *config.Config) *AssessmentController {
	return &AssessmentController{cfg: cfg}
}

// AssessRequest represents a request to assess a codebase
type AssessRequest struct {
	RootPath string
	Save     bool // persist the run even when the store is disabled in config
}

// Assess runs the full pipeline: extract the source model, build the
// dependency graphs, compute coupling metrics, and assemble the report.
func (c *AssessmentController) Assess(ctx context.Context, req AssessRequest) (*model.AssessmentReport, error) {
	startTime := time.Now()

	root, err := filepath.Abs(req.RootPath)
	if err != nil {
		return nil, err
	}
	util.Info("Starting assessment for %s", root)

	extractor := source.NewExtractor(c.cfg.Extractor, c.cfg.Concurrency.ExtractWorkers)
	extraction, err := extractor.Extract(ctx, root)
	if err != nil {
		util.Error("Extraction failed: %v", err)
		return nil, err
	}

	graphs := depgraph.NewBuilder(c.cfg.Graph).Build(extraction.Types)
	analysis := coupling.NewEngine(c.cfg.Metrics).Analyze(extraction, graphs)

	report := assembleReport(root, startTime, extraction, graphs, analysis)

	if c.cfg.Store.Enabled || req.Save {
		id, err := c.saveRun(report)
		if err != nil {
			util.Error("Failed to persist run: %v", err)
			return nil, err
		}
		util.Info("Run persisted: %s", id)
	}

	util.Info("Assessment complete: %d types, %d hotspots, complexity %.1f (took %v)",
		report.Source.TypeCount, len(report.Hotspots), report.ComplexityScore, time.Since(startTime))

	return report, nil
}

// ListRuns returns the stored run history for a codebase, newest first
func (c *AssessmentController) ListRuns(rootPath string, limit int) ([]store.RunSummary, error) {
	root, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(c.resolveStorePath(root))
	if err != nil {
		return nil, err
	}
	defer st.Close()

	return st.ListRuns(limit)
}

func (c *AssessmentController) saveRun(report *model.AssessmentReport) (string, error) {
	st, err := store.Open(c.resolveStorePath(report.RootPath))
	if err != nil {
		return "", err
	}
	defer st.Close()

	return st.SaveRun(report)
}

// resolveStorePath anchors a relative store path inside the assessed
// codebase, so each project keeps its own run history.
func (c *AssessmentController) resolveStorePath(root string) string {
	if filepath.IsAbs(c.cfg.Store.Path) {
		return c.cfg.Store.Path
	}
	return filepath.Join(root, c.cfg.Store.Path)
}

func assembleReport(root string, startTime time.Time, extraction *model.ExtractionResult, graphs *model.GraphResult, analysis *coupling.Result) *model.AssessmentReport {
	methodCount, fieldCount := 0, 0
	for _, decl := range extraction.Types {
		methodCount += decl.MethodCount()
		fieldCount += decl.FieldCount()
	}

	return &model.AssessmentReport{
		RootPath:    root,
		GeneratedAt: time.Now().UTC(),
		DurationMS:  time.Since(startTime).Milliseconds(),
		Source: model.SourceSummary{
			FileCount:    extraction.FilesScanned,
			SkippedFiles: extraction.FilesSkipped,
			TypeCount:    len(extraction.Types),
			MethodCount:  methodCount,
			FieldCount:   fieldCount,
			PackageCount: len(graphs.Packages),
			ParseErrors:  extraction.Errors,
		},
		TypeAdjacency:    graphs.TypeGraph.Adjacency,
		PackageAdjacency: graphs.PackageGraph.Adjacency,
		External:         graphs.External,
		Cycles:           graphs.Cycles,
		TypeRecords:      analysis.TypeRecords,
		PackageRecords:   analysis.PackageRecords,
		Coupling:         analysis.Summary,
		Concerns:         analysis.Concerns,
		Hotspots:         analysis.Hotspots,
		ComplexityScore:  analysis.ComplexityScore,
	}
}
