// Package storage provides SQLite-based persistence for navigation runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/subnav/internal/core"
	"github.com/vovakirdan/subnav/internal/scan"
	"github.com/vovakirdan/subnav/internal/session"
	"github.com/vovakirdan/subnav/internal/sonarmap"
)

var (
	// ErrRunNotFound is returned when no run has the requested ID.
	ErrRunNotFound = errors.New("storage: run not found")

	// ErrAmbiguousID is returned when an ID prefix matches several runs.
	ErrAmbiguousID = errors.New("storage: ambiguous run id")
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sqlx.DB
}

// Run is one finished navigation run.
type Run struct {
	ID         string    `json:"id"`
	Variant    string    `json:"variant"`
	Source     string    `json:"source"` // Script path, "api", or "ssh:<user>"
	Commands   int       `json:"commands"`
	Horizontal int       `json:"horizontal"`
	Depth      int       `json:"depth"`
	Aim        int       `json:"aim"`
	Result     int       `json:"result"`
	Cells      int       `json:"cells"`
	CreatedAt  time.Time `json:"created_at"`
}

// runRow is the database shape of Run. Timestamps are stored as Unix nanoseconds.
type runRow struct {
	ID         string `db:"id"`
	Variant    string `db:"variant"`
	Source     string `db:"source"`
	Commands   int    `db:"commands"`
	Horizontal int    `db:"horizontal"`
	Depth      int    `db:"depth"`
	Aim        int    `db:"aim"`
	Result     int    `db:"result"`
	Cells      int    `db:"cells"`
	CreatedAt  int64  `db:"created_at"`
}

func (r runRow) run() Run {
	return Run{
		ID:         r.ID,
		Variant:    r.Variant,
		Source:     r.Source,
		Commands:   r.Commands,
		Horizontal: r.Horizontal,
		Depth:      r.Depth,
		Aim:        r.Aim,
		Result:     r.Result,
		Cells:      r.Cells,
		CreatedAt:  time.Unix(0, r.CreatedAt).UTC(),
	}
}

type cellRow struct {
	X      int    `db:"x"`
	Y      int    `db:"y"`
	Symbol string `db:"symbol"`
}

const runColumns = `id, variant, source, commands, horizontal, depth, aim, result, cells, created_at`

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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			variant TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT '',
			commands INTEGER NOT NULL,
			horizontal INTEGER NOT NULL,
			depth INTEGER NOT NULL,
			aim INTEGER NOT NULL DEFAULT 0,
			result INTEGER NOT NULL,
			cells INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_result ON runs(result DESC);

		CREATE TABLE IF NOT EXISTS map_cells (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			symbol TEXT NOT NULL,
			PRIMARY KEY (run_id, x, y)
		);
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

// NewRun summarizes a session as a run record. ID and CreatedAt are left
// for SaveRun to assign.
func NewRun(sess *session.Session, source string) Run {
	state := sess.State()
	return Run{
		Variant:    sess.Variant().String(),
		Source:     source,
		Commands:   sess.Commands(),
		Horizontal: state.Horizontal,
		Depth:      state.Depth,
		Aim:        state.Aim,
		Result:     state.Product(),
		Cells:      sess.Map().Len(),
	}
}

// SaveSession records the session's run and its map cells.
func (s *Store) SaveSession(sess *session.Session, source string) (Run, error) {
	return s.SaveRun(NewRun(sess, source), sess.Map().Points())
}

// SaveRun records a run and its map cells in one transaction.
// An empty ID is replaced with a fresh UUID and a zero CreatedAt with now.
func (s *Store) SaveRun(run Run, points []sonarmap.Point) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	run.Cells = len(points)

	tx, err := s.db.Beginx()
	if err != nil {
		return run, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (`+runColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Variant, run.Source, run.Commands,
		run.Horizontal, run.Depth, run.Aim, run.Result, run.Cells,
		run.CreatedAt.UnixNano(),
	)
	if err != nil {
		return run, fmt.Errorf("storage: cannot save run: %w", err)
	}

	stmt, err := tx.Preparex(`INSERT INTO map_cells (run_id, x, y, symbol) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return run, fmt.Errorf("storage: cannot prepare cell insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range points {
		if _, err := stmt.Exec(run.ID, p.Coord.X, p.Coord.Y, string(p.Symbol)); err != nil {
			return run, fmt.Errorf("storage: cannot save cell %s: %w", p.Coord, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return run, fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return run, nil
}

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows []runRow
	err := s.db.Select(&rows,
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}

	runs := make([]Run, len(rows))
	for i, r := range rows {
		runs[i] = r.run()
	}
	return runs, nil
}

// RunByID retrieves a run by its ID.
func (s *Store) RunByID(id string) (Run, error) {
	var row runRow
	err := s.db.Get(&row, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return row.run(), nil
}

// ResolveID expands an ID prefix to the full ID of the single run it matches.
func (s *Store) ResolveID(prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("%w: empty id", ErrRunNotFound)
	}

	var ids []string
	err := s.db.Select(&ids,
		`SELECT id FROM runs WHERE substr(id, 1, length(?)) = ? LIMIT 2`,
		prefix, prefix,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot resolve id: %w", err)
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrRunNotFound, prefix)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAmbiguousID, prefix)
	}
}

// BestRun returns the run with the highest result. ok is false when no runs exist.
func (s *Store) BestRun() (run Run, ok bool, err error) {
	var row runRow
	err = s.db.Get(&row,
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY result DESC, created_at ASC
		 LIMIT 1`,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, false, nil
	}
	if err != nil {
		return Run{}, false, fmt.Errorf("storage: cannot query best run: %w", err)
	}
	return row.run(), true, nil
}

// RunCells rebuilds the stored map of a run. The returned map has no scan
// source, so it only answers for the saved cells.
func (s *Store) RunCells(id string, opts ...sonarmap.Option) (*sonarmap.Map, error) {
	if _, err := s.RunByID(id); err != nil {
		return nil, err
	}

	var rows []cellRow
	if err := s.db.Select(&rows, `SELECT x, y, symbol FROM map_cells WHERE run_id = ?`, id); err != nil {
		return nil, fmt.Errorf("storage: cannot query cells: %w", err)
	}

	m := sonarmap.New(scan.Empty, opts...)
	for _, r := range rows {
		sym := []rune(r.Symbol)
		if len(sym) != 1 {
			return nil, fmt.Errorf("storage: corrupt cell (%d,%d): symbol %q", r.X, r.Y, r.Symbol)
		}
		m.Set(core.C(r.X, r.Y), sym[0])
	}
	return m, nil
}

// CountRuns returns the number of stored runs.
func (s *Store) CountRuns() (int, error) {
	var n int
	if err := s.db.Get(&n, `SELECT COUNT(*) FROM runs`); err != nil {
		return 0, fmt.Errorf("storage: cannot count runs: %w", err)
	}
	return n, nil
}

// ClearRuns deletes every run and its cells.
func (s *Store) ClearRuns() error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM map_cells"); err != nil {
		return fmt.Errorf("storage: cannot clear cells: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit clear: %w", err)
	}
	return nil
}
