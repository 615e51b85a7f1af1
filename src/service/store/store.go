package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"migration-advisor/src/model"
)

// Store persists assessment runs to SQLite so successive runs over the same
// codebase can be compared.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or opens the run history database at the given path,
// creating parent directories as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the path to the database file
func (s *Store) Path() string {
	return s.path
}

// SaveRun persists a completed assessment and returns its run ID
func (s *Store) SaveRun(report *model.AssessmentReport) (string, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("marshaling report: %w", err)
	}

	id := uuid.NewString()
	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO runs (id, root_path, generated_at, duration_ms, file_count,
			type_count, package_count, cycle_count, hotspot_count,
			complexity_score, report_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, report.RootPath, report.GeneratedAt.UTC().Format(time.RFC3339Nano),
		report.DurationMS, report.Source.FileCount, report.Source.TypeCount,
		report.Source.PackageCount, report.Coupling.CycleCount,
		len(report.Hotspots), report.ComplexityScore, string(data))
	if err != nil {
		tx.Rollback()
		return "", fmt.Errorf("inserting run: %w", err)
	}

	for _, records := range [][]model.CouplingRecord{report.TypeRecords, report.PackageRecords} {
		for _, r := range records {
			_, err = tx.Exec(`
				INSERT INTO run_components (run_id, name, granularity, afferent,
					efferent, instability, distance, risk_score, is_hotspot)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, id, r.Name, string(r.Granularity), r.Afferent, r.Efferent,
				r.Instability, r.Distance, r.RiskScore, r.IsHotspot)
			if err != nil {
				tx.Rollback()
				return "", fmt.Errorf("inserting metrics for %s: %w", r.Name, err)
			}
		}
	}

	for _, hs := range report.Hotspots {
		_, err = tx.Exec(`
			INSERT INTO run_hotspots (run_id, category, component, severity,
				trigger_count, effort_hours)
			VALUES (?, ?, ?, ?, ?, ?)
		`, id, string(hs.Category), hs.Component, string(hs.Severity),
			hs.TriggerCount, hs.EffortHours)
		if err != nil {
			tx.Rollback()
			return "", fmt.Errorf("inserting hotspot for %s: %w", hs.Component, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return id, nil
}

// RunSummary is one row of the run history listing
type RunSummary struct {
	ID              string    `json:"id"`
	RootPath        string    `json:"root_path"`
	GeneratedAt     time.Time `json:"generated_at"`
	DurationMS      int64     `json:"duration_ms"`
	FileCount       int       `json:"file_count"`
	TypeCount       int       `json:"type_count"`
	PackageCount    int       `json:"package_count"`
	CycleCount      int       `json:"cycle_count"`
	HotspotCount    int       `json:"hotspot_count"`
	ComplexityScore float64   `json:"complexity_score"`
}

// ListRuns returns stored runs, newest first. A non-positive limit returns
// all of them.
func (s *Store) ListRuns(limit int) ([]RunSummary, error) {
	query := `
		SELECT id, root_path, generated_at, duration_ms, file_count,
			type_count, package_count, cycle_count, hotspot_count,
			complexity_score
		FROM runs
		ORDER BY generated_at DESC, id
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var run RunSummary
		var generatedAt string
		if err := rows.Scan(&run.ID, &run.RootPath, &generatedAt, &run.DurationMS,
			&run.FileCount, &run.TypeCount, &run.PackageCount, &run.CycleCount,
			&run.HotspotCount, &run.ComplexityScore); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if run.GeneratedAt, err = time.Parse(time.RFC3339Nano, generatedAt); err != nil {
			return nil, fmt.Errorf("parsing timestamp for run %s: %w", run.ID, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun loads the full report of a stored run
func (s *Store) GetRun(id string) (*model.AssessmentReport, error) {
	var data string
	err := s.db.QueryRow("SELECT report_json FROM runs WHERE id = ?", id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying run %s: %w", id, err)
	}

	var report model.AssessmentReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, fmt.Errorf("unmarshaling run %s: %w", id, err)
	}
	return &report, nil
}
