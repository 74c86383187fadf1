// Package storage provides SQLite-based persistence for bench run history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// World state is never stored: worlds are regenerated from their config.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for bench history.
type Store struct {
	db *sql.DB
}

// BenchRun is one `tileview bench` invocation.
type BenchRun struct {
	ID        int64
	RunID     string // UUID
	Generator string
	Layout    string
	WorldW    int // Tiles
	WorldH    int // Tiles
	TileSize  int
	ViewW     int // Pixels
	ViewH     int // Pixels
	Frames    int // Frames per sample
	Budget    time.Duration
	CPU       string
	Cores     int
	Samples   []BenchSample
	CreatedAt time.Time
}

// BenchSample is the timing of one camera position within a run.
type BenchSample struct {
	Name       string
	CamX, CamY int
	Tiles      int
	Mean       time.Duration
	P99        time.Duration
	Max        time.Duration
	OverBudget int // Frames slower than the budget
}

// Passed reports whether every sample stayed within budget at p99.
// A run without a budget always passes.
func (r BenchRun) Passed() bool {
	if r.Budget <= 0 {
		return true
	}
	for _, s := range r.Samples {
		if s.P99 > r.Budget {
			return false
		}
	}
	return true
}

// Worst returns the slowest p99 across samples.
func (r BenchRun) Worst() time.Duration {
	var worst time.Duration
	for _, s := range r.Samples {
		worst = max(worst, s.P99)
	}
	return worst
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS bench_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			generator TEXT NOT NULL,
			layout TEXT NOT NULL,
			world_w INTEGER NOT NULL,
			world_h INTEGER NOT NULL,
			tile_size INTEGER NOT NULL,
			view_w INTEGER NOT NULL,
			view_h INTEGER NOT NULL,
			frames INTEGER NOT NULL,
			budget_ns INTEGER NOT NULL,
			cpu TEXT NOT NULL DEFAULT '',
			cores INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_bench_runs_generator ON bench_runs(generator);

		CREATE TABLE IF NOT EXISTS bench_samples (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES bench_runs(run_id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			name TEXT NOT NULL,
			cam_x INTEGER NOT NULL,
			cam_y INTEGER NOT NULL,
			tiles INTEGER NOT NULL,
			mean_ns INTEGER NOT NULL,
			p99_ns INTEGER NOT NULL,
			max_ns INTEGER NOT NULL,
			over_budget INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_bench_samples_run ON bench_samples(run_id, seq);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a bench run and its samples in one transaction.
// Returns the ID of the inserted run.
func (s *Store) SaveRun(run BenchRun) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	// A zero CreatedAt falls back to the database clock.
	var createdAt any
	if !run.CreatedAt.IsZero() {
		createdAt = run.CreatedAt.UTC().Format(timeLayout)
	}

	result, err := tx.Exec(
		`INSERT INTO bench_runs
		 (run_id, generator, layout, world_w, world_h, tile_size, view_w, view_h, frames, budget_ns, cpu, cores, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, COALESCE(?, CURRENT_TIMESTAMP))`,
		run.RunID, run.Generator, run.Layout,
		run.WorldW, run.WorldH, run.TileSize,
		run.ViewW, run.ViewH, run.Frames,
		int64(run.Budget), run.CPU, run.Cores, createdAt,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save bench run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	for i, smp := range run.Samples {
		_, err := tx.Exec(
			`INSERT INTO bench_samples
			 (run_id, seq, name, cam_x, cam_y, tiles, mean_ns, p99_ns, max_ns, over_budget)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.RunID, i, smp.Name, smp.CamX, smp.CamY, smp.Tiles,
			int64(smp.Mean), int64(smp.P99), int64(smp.Max), smp.OverBudget,
		)
		if err != nil {
			return 0, fmt.Errorf("storage: cannot save bench sample: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit bench run: %w", err)
	}
	return id, nil
}

// timeLayout is how created_at is stored, always in UTC.
const timeLayout = "2006-01-02 15:04:05"

const runColumns = `id, run_id, generator, layout, world_w, world_h, tile_size,
		        view_w, view_h, frames, budget_ns, cpu, cores, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (BenchRun, error) {
	var r BenchRun
	var budget int64
	var createdAt any
	err := sc.Scan(
		&r.ID, &r.RunID, &r.Generator, &r.Layout,
		&r.WorldW, &r.WorldH, &r.TileSize,
		&r.ViewW, &r.ViewH, &r.Frames,
		&budget, &r.CPU, &r.Cores, &createdAt,
	)
	if err != nil {
		return r, err
	}
	r.Budget = time.Duration(budget)
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(timeLayout, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// RecentRuns retrieves the most recent runs, newest first, with their samples.
// An empty generator matches every run.
func (s *Store) RecentRuns(generator string, limit int) ([]BenchRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM bench_runs
		 WHERE ? = '' OR generator = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		generator, generator, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query bench runs: %w", err)
	}
	defer rows.Close()

	var runs []BenchRun
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	rows.Close()

	for i := range runs {
		if runs[i].Samples, err = s.samples(runs[i].RunID); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

// RunByID retrieves a run by its UUID or a prefix of it. An exact match wins,
// then the newest run with the prefix. Returns nil if nothing matches.
func (s *Store) RunByID(runID string) (*BenchRun, error) {
	if runID == "" {
		return nil, nil
	}
	r, err := scanRun(s.db.QueryRow(
		`SELECT `+runColumns+` FROM bench_runs
		 WHERE substr(run_id, 1, ?) = ?
		 ORDER BY run_id = ? DESC, id DESC
		 LIMIT 1`,
		len(runID), runID, runID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query bench run: %w", err)
	}

	if r.Samples, err = s.samples(r.RunID); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) samples(runID string) ([]BenchSample, error) {
	rows, err := s.db.Query(
		`SELECT name, cam_x, cam_y, tiles, mean_ns, p99_ns, max_ns, over_budget
		 FROM bench_samples
		 WHERE run_id = ?
		 ORDER BY seq`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query bench samples: %w", err)
	}
	defer rows.Close()

	var out []BenchSample
	for rows.Next() {
		var smp BenchSample
		var mean, p99, worst int64
		if err := rows.Scan(&smp.Name, &smp.CamX, &smp.CamY, &smp.Tiles, &mean, &p99, &worst, &smp.OverBudget); err != nil {
			return nil, fmt.Errorf("storage: cannot scan sample: %w", err)
		}
		smp.Mean, smp.P99, smp.Max = time.Duration(mean), time.Duration(p99), time.Duration(worst)
		out = append(out, smp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// ClearRuns deletes all runs (and their samples) for the given generator,
// or every run when generator is empty.
func (s *Store) ClearRuns(generator string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`DELETE FROM bench_samples WHERE run_id IN
		 (SELECT run_id FROM bench_runs WHERE ? = '' OR generator = ?)`,
		generator, generator,
	); err != nil {
		return fmt.Errorf("storage: cannot clear bench samples: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM bench_runs WHERE ? = '' OR generator = ?", generator, generator); err != nil {
		return fmt.Errorf("storage: cannot clear bench runs: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit clear: %w", err)
	}
	return nil
}

// GeneratorStats contains aggregated bench statistics for one generator.
type GeneratorStats struct {
	Generator string
	Runs      int
	BestMean  time.Duration
	WorstP99  time.Duration
	LastRun   time.Time
}

// AllGeneratorStats retrieves statistics for every generator that has been benchmarked.
func (s *Store) AllGeneratorStats() (map[string]*GeneratorStats, error) {
	rows, err := s.db.Query(
		`SELECT r.generator, COUNT(DISTINCT r.run_id), COALESCE(MIN(sm.mean_ns), 0),
		        COALESCE(MAX(sm.p99_ns), 0), MAX(r.created_at)
		 FROM bench_runs r
		 LEFT JOIN bench_samples sm ON sm.run_id = r.run_id
		 GROUP BY r.generator`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get generator stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GeneratorStats)
	for rows.Next() {
		var gs GeneratorStats
		var best, worst int64
		var lastRun any
		if err := rows.Scan(&gs.Generator, &gs.Runs, &best, &worst, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		gs.BestMean, gs.WorstP99 = time.Duration(best), time.Duration(worst)
		gs.LastRun = parseTime(lastRun)
		stats[gs.Generator] = &gs
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
