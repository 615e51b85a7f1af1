package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"migration-advisor/src/model"
)

func testReport(root string, at time.Time, score float64) *model.AssessmentReport {
	return &model.AssessmentReport{
		RootPath:    root,
		GeneratedAt: at,
		DurationMS:  120,
		Source: model.SourceSummary{
			FileCount:    4,
			TypeCount:    3,
			PackageCount: 2,
		},
		TypeRecords: []model.CouplingRecord{
			{Name: "shop.core.A", Package: "shop.core", Granularity: model.GranularityType, Afferent: 1, Efferent: 2, Instability: 0.667, RiskScore: 11},
			{Name: "shop.db.B", Package: "shop.db", Granularity: model.GranularityType, Afferent: 12, Efferent: 0, RiskScore: 50, IsHotspot: true},
		},
		PackageRecords: []model.CouplingRecord{
			{Name: "shop.core", Granularity: model.GranularityPackage, Afferent: 0, Efferent: 1, Instability: 1, Distance: 0.5, RiskScore: 13},
		},
		Coupling: model.CouplingSummary{ComponentCount: 3, CycleCount: 1},
		Hotspots: []model.Hotspot{
			{Category: model.HotspotHighAfferent, Component: "shop.db.B", Severity: model.SeverityHigh, TriggerCount: 12, EffortHours: 48},
			{Category: model.HotspotCycle, Component: "shop.core.A", Severity: model.SeverityMedium, TriggerCount: 2, EffortHours: 12},
		},
		ComplexityScore: score,
	}
}

func TestOpenCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "deep", "runs.db")

	st, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
	if st.Path() != path {
		t.Errorf("Path() = %s, want %s", st.Path(), path)
	}
}

func TestSaveAndListRuns(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()

	older := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)

	if _, err := st.SaveRun(testReport("/repo-a", older, 30)); err != nil {
		t.Fatalf("failed to save first run: %v", err)
	}
	id, err := st.SaveRun(testReport("/repo-b", newer, 45))
	if err != nil {
		t.Fatalf("failed to save second run: %v", err)
	}

	runs, err := st.ListRuns(0)
	if err != nil {
		t.Fatalf("failed to list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}

	latest := runs[0]
	if latest.ID != id {
		t.Errorf("newest run first: got %s, want %s", latest.ID, id)
	}
	if latest.RootPath != "/repo-b" || latest.ComplexityScore != 45 {
		t.Errorf("run summary = %+v", latest)
	}
	if !latest.GeneratedAt.Equal(newer) {
		t.Errorf("generated_at = %v, want %v", latest.GeneratedAt, newer)
	}
	if latest.HotspotCount != 2 || latest.CycleCount != 1 || latest.TypeCount != 3 {
		t.Errorf("counts = %+v", latest)
	}
}

func TestListRunsLimit(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()

	for day := 1; day <= 3; day++ {
		at := time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC)
		if _, err := st.SaveRun(testReport("/repo", at, float64(day))); err != nil {
			t.Fatalf("failed to save run %d: %v", day, err)
		}
	}

	runs, err := st.ListRuns(1)
	if err != nil {
		t.Fatalf("failed to list runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].ComplexityScore != 3 {
		t.Errorf("limit kept run with score %v, want the newest (3)", runs[0].ComplexityScore)
	}
}

func TestGetRunRoundTrip(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()

	at := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	id, err := st.SaveRun(testReport("/repo", at, 62.5))
	if err != nil {
		t.Fatalf("failed to save run: %v", err)
	}

	report, err := st.GetRun(id)
	if err != nil {
		t.Fatalf("failed to load run: %v", err)
	}
	if report.RootPath != "/repo" || report.ComplexityScore != 62.5 {
		t.Errorf("report = %s / %v", report.RootPath, report.ComplexityScore)
	}
	if !report.GeneratedAt.Equal(at) {
		t.Errorf("generated_at = %v, want %v", report.GeneratedAt, at)
	}
	if len(report.Hotspots) != 2 || report.Hotspots[0].Component != "shop.db.B" {
		t.Errorf("hotspots = %+v", report.Hotspots)
	}
}

func TestGetRunMissing(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()

	if _, err := st.GetRun("no-such-run"); err == nil {
		t.Fatal("expected error for unknown run ID")
	}
}

func TestSaveRunWritesHotspotRows(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()

	id, err := st.SaveRun(testReport("/repo", time.Now().UTC(), 10))
	if err != nil {
		t.Fatalf("failed to save run: %v", err)
	}

	var count int
	if err := st.db.QueryRow("SELECT COUNT(*) FROM run_hotspots WHERE run_id = ?", id).Scan(&count); err != nil {
		t.Fatalf("failed to count hotspot rows: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 hotspot rows, got %d", count)
	}
}

func TestSaveRunWritesComponentRows(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()

	id, err := st.SaveRun(testReport("/repo", time.Now().UTC(), 10))
	if err != nil {
		t.Fatalf("failed to save run: %v", err)
	}

	var count int
	if err := st.db.QueryRow("SELECT COUNT(*) FROM run_components WHERE run_id = ?", id).Scan(&count); err != nil {
		t.Fatalf("failed to count component rows: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 component rows, got %d", count)
	}

	var risk float64
	var hotspot bool
	err = st.db.QueryRow(`
		SELECT risk_score, is_hotspot FROM run_components
		WHERE run_id = ? AND granularity = 'type' AND name = 'shop.db.B'
	`, id).Scan(&risk, &hotspot)
	if err != nil {
		t.Fatalf("failed to load component row: %v", err)
	}
	if risk != 50 || !hotspot {
		t.Errorf("shop.db.B row = risk %v, hotspot %v", risk, hotspot)
	}
}
