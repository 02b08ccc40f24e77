package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Runs: one row per analysis invocation, successful or not
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    source TEXT NOT NULL,
    available_height REAL NOT NULL,
    detected BOOLEAN NOT NULL,
    is_balanced BOOLEAN,
    column_1_pct REAL,
    column_2_pct REAL,
    column_3_pct REAL,
    max_height_px REAL,
    min_height_px REAL,
    diff_px REAL,
    diff_pct REAL,
    overall_status TEXT,
    error_type TEXT
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_runs_source ON runs(source);
`
