package store

// schema contains the SQL statements to create the run history database.
const schema = `
-- One row per completed assessment run
CREATE TABLE IF NOT EXISTS runs (
    id               TEXT PRIMARY KEY,
    root_path        TEXT NOT NULL,
    generated_at     TEXT NOT NULL,
    duration_ms      INTEGER NOT NULL,
    file_count       INTEGER NOT NULL,
    type_count       INTEGER NOT NULL,
    package_count    INTEGER NOT NULL,
    cycle_count      INTEGER NOT NULL,
    hotspot_count    INTEGER NOT NULL,
    complexity_score REAL NOT NULL,
    report_json      TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_generated_at ON runs(generated_at);
CREATE INDEX IF NOT EXISTS idx_runs_root_path ON runs(root_path);

-- Per-component coupling metrics denormalized per run, so a component's
-- trend across runs can be queried without unpacking report_json
CREATE TABLE IF NOT EXISTS run_components (
    run_id      TEXT NOT NULL,
    name        TEXT NOT NULL,
    granularity TEXT NOT NULL,
    afferent    INTEGER NOT NULL,
    efferent    INTEGER NOT NULL,
    instability REAL NOT NULL,
    distance    REAL NOT NULL,
    risk_score  REAL NOT NULL,
    is_hotspot  INTEGER NOT NULL,
    PRIMARY KEY (run_id, granularity, name),
    FOREIGN KEY (run_id) REFERENCES runs(id)
);

CREATE INDEX IF NOT EXISTS idx_run_components_name ON run_components(name);

-- Hotspot entries denormalized per run
CREATE TABLE IF NOT EXISTS run_hotspots (
    run_id        TEXT NOT NULL,
    category      TEXT NOT NULL,
    component     TEXT NOT NULL,
    severity      TEXT NOT NULL,
    trigger_count INTEGER NOT NULL,
    effort_hours  REAL NOT NULL,
    FOREIGN KEY (run_id) REFERENCES runs(id)
);

CREATE INDEX IF NOT EXISTS idx_run_hotspots_run ON run_hotspots(run_id);
CREATE INDEX IF NOT EXISTS idx_run_hotspots_component ON run_hotspots(component);
`
