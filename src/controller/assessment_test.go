package controller

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"migration-advisor/src/config"
	"migration-advisor/src/util"
)

func writeFixtureTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"core/Order.java": `package shop.core;

import shop.db.OrderRepository;

public class Order {
    private OrderRepository repository;

    public void save() {
        repository.persist();
    }
}
`,
		"db/OrderRepository.java": `package shop.db;

public interface OrderRepository {
    void persist();
}
`,
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Logging.Level = "error"
	util.SetDefaultLogger(cfg.Logging)
	return cfg
}

func TestAssessEndToEnd(t *testing.T) {
	root := writeFixtureTree(t)
	cfg := testConfig()

	controller := NewAssessmentController(cfg)
	report, err := controller.Assess(context.Background(), AssessRequest{RootPath: root})
	if err != nil {
		t.Fatalf("Assess: %v", err)
	}

	if !filepath.IsAbs(report.RootPath) {
		t.Errorf("root path not absolute: %s", report.RootPath)
	}
	if report.Source.FileCount != 2 || report.Source.TypeCount != 2 || report.Source.PackageCount != 2 {
		t.Errorf("source summary = %+v", report.Source)
	}
	if report.Source.MethodCount != 2 || report.Source.FieldCount != 1 {
		t.Errorf("member counts = %d methods / %d fields", report.Source.MethodCount, report.Source.FieldCount)
	}

	deps := report.TypeAdjacency["shop.core.Order"]
	if len(deps) != 1 || deps[0] != "shop.db.OrderRepository" {
		t.Errorf("Order dependencies = %v", deps)
	}
	if pkgDeps := report.PackageAdjacency["shop.core"]; len(pkgDeps) != 1 || pkgDeps[0] != "shop.db" {
		t.Errorf("package adjacency = %v", report.PackageAdjacency)
	}

	if len(report.TypeRecords) != 2 || len(report.PackageRecords) != 2 {
		t.Errorf("records = %d types / %d packages", len(report.TypeRecords), len(report.PackageRecords))
	}
	if report.ComplexityScore < 0 || report.ComplexityScore > 100 {
		t.Errorf("complexity = %v out of range", report.ComplexityScore)
	}
	if report.DurationMS < 0 {
		t.Errorf("duration = %d", report.DurationMS)
	}
}

func TestAssessPersistsRun(t *testing.T) {
	root := writeFixtureTree(t)
	cfg := testConfig()
	cfg.Store.Enabled = true

	controller := NewAssessmentController(cfg)
	if _, err := controller.Assess(context.Background(), AssessRequest{RootPath: root}); err != nil {
		t.Fatalf("Assess: %v", err)
	}

	dbPath := filepath.Join(root, cfg.Store.Path)
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("store not created at %s: %v", dbPath, err)
	}

	runs, err := controller.ListRuns(root, 0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 stored run, got %d", len(runs))
	}
	if runs[0].TypeCount != 2 {
		t.Errorf("stored run = %+v", runs[0])
	}
}

func TestAssessSaveFlagOverridesDisabledStore(t *testing.T) {
	root := writeFixtureTree(t)
	cfg := testConfig()
	cfg.Store.Enabled = false

	controller := NewAssessmentController(cfg)
	if _, err := controller.Assess(context.Background(), AssessRequest{RootPath: root, Save: true}); err != nil {
		t.Fatalf("Assess: %v", err)
	}

	runs, err := controller.ListRuns(root, 0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 stored run, got %d", len(runs))
	}
}

func TestAssessMissingRoot(t *testing.T) {
	cfg := testConfig()
	controller := NewAssessmentController(cfg)

	_, err := controller.Assess(context.Background(), AssessRequest{
		RootPath: filepath.Join(t.TempDir(), "does-not-exist"),
	})
	if err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestGenerateReports(t *testing.T) {
	root := writeFixtureTree(t)
	cfg := testConfig()
	cfg.Output.Formats = []string{"json", "markdown", "mermaid"}
	cfg.Output.OutputDir = filepath.Join(t.TempDir(), "reports")

	assessment, err := NewAssessmentController(cfg).Assess(context.Background(), AssessRequest{RootPath: root})
	if err != nil {
		t.Fatalf("Assess: %v", err)
	}

	paths, err := NewReportController(cfg).GenerateReports(assessment)
	if err != nil {
		t.Fatalf("GenerateReports: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("expected 3 reports, got %v", paths)
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("report not written: %v", err)
		}
		switch {
		case strings.HasSuffix(path, ".json"):
			var decoded map[string]any
			if err := json.Unmarshal(data, &decoded); err != nil {
				t.Errorf("JSON report invalid: %v", err)
			}
		case strings.HasSuffix(path, ".md"):
			if !strings.Contains(string(data), "# Migration Readiness Assessment") {
				t.Error("markdown report missing header")
			}
		case strings.HasSuffix(path, ".mmd"):
			if !strings.Contains(string(data), "graph LR") {
				t.Error("mermaid report missing graph header")
			}
		default:
			t.Errorf("unexpected report path %s", path)
		}
	}
}
