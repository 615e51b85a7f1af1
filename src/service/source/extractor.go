package source

import (
	"context"
	"os"
	"sort"

	"golang.org/x/sync/errgroup"

	"migration-advisor/src/config"
	"migration-advisor/src/model"
	"migration-advisor/src/util"
)

// Extractor builds the normalized type model for a source tree. Parsing is
// fanned out across a bounded worker group; each file writes only its own
// slot, and results are merged sequentially afterwards so the outcome does
// not depend on completion order.
type Extractor struct {
	scanner *Scanner
	markers map[string][]string
	workers int
}

// NewExtractor creates an extractor with the given parallelism
func NewExtractor(cfg config.ExtractorConfig, workers int) *Extractor {
	if workers < 1 {
		workers = 1
	}
	return &Extractor{
		scanner: NewScanner(cfg),
		markers: cfg.ConcernMarkers,
		workers: workers,
	}
}

type fileOutcome struct {
	decl    *model.TypeDeclaration
	failure *model.FileError
	skipped bool
}

// Extract parses every source file under root. A file that fails to parse is
// recorded in the result's error list and never aborts the run; a file with
// no recognizable top-level declaration is counted as skipped.
func (e *Extractor) Extract(ctx context.Context, root string) (*model.ExtractionResult, error) {
	files, err := e.scanner.Scan(root)
	if err != nil {
		return nil, err
	}
	util.Info("extracting %d source files from %s", len(files), root)

	outcomes := make([]fileOutcome, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcomes[i] = e.extractFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &model.ExtractionResult{
		Types:        make(map[string]*model.TypeDeclaration),
		FilesScanned: len(files),
	}
	for _, o := range outcomes {
		switch {
		case o.failure != nil:
			util.Warn("parse failed for %s: %s", o.failure.FilePath, o.failure.Message)
			result.Errors = append(result.Errors, *o.failure)
		case o.skipped:
			result.FilesSkipped++
		default:
			if prev, ok := result.Types[o.decl.QualifiedName]; ok {
				util.Warn("duplicate type %s in %s shadows %s", o.decl.QualifiedName, o.decl.FilePath, prev.FilePath)
			}
			result.Types[o.decl.QualifiedName] = o.decl
		}
	}

	util.Info("extracted %d types across %d packages (%d skipped, %d failed)",
		len(result.Types), len(result.PackageNames()), result.FilesSkipped, len(result.Errors))
	return result, nil
}

func (e *Extractor) extractFile(path string) fileOutcome {
	src, err := os.ReadFile(path)
	if err != nil {
		return fileOutcome{failure: &model.FileError{FilePath: path, Message: err.Error()}}
	}

	decl, err := ParseFile(src, path)
	if err != nil {
		return fileOutcome{failure: &model.FileError{FilePath: path, Message: err.Error()}}
	}
	if decl == nil {
		util.Debug("no top-level type declaration in %s", path)
		return fileOutcome{skipped: true}
	}

	decl.Concerns = e.matchConcerns(decl.Annotations)
	return fileOutcome{decl: decl}
}

// matchConcerns maps a type's annotations onto the configured structural
// concern categories, in stable category order.
func (e *Extractor) matchConcerns(annotations []string) []string {
	if len(e.markers) == 0 || len(annotations) == 0 {
		return nil
	}
	present := make(map[string]bool, len(annotations))
	for _, a := range annotations {
		present[a] = true
	}

	categories := make([]string, 0, len(e.markers))
	for c := range e.markers {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var matched []string
	for _, c := range categories {
		for _, marker := range e.markers[c] {
			if present[marker] {
				matched = append(matched, c)
				break
			}
		}
	}
	return matched
}
