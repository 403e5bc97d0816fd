package session

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/berth-dev/vibe/internal/tracker"
)

// Store provides SQLite-backed persistence for sessions.
type Store struct {
	db *sql.DB
}

// NewStore opens the SQLite database at dbPath and creates tables if they don't exist.
func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := createTables(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		project TEXT NOT NULL,
		stack TEXT NOT NULL,
		phase TEXT NOT NULL,
		debt INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		phase_entered_at DATETIME NOT NULL,
		revision INTEGER NOT NULL DEFAULT 1,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS activities (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		description TEXT NOT NULL,
		debt INTEGER NOT NULL DEFAULT 0,
		phase TEXT NOT NULL,
		timestamp DATETIME NOT NULL,
		UNIQUE (session_id, seq),
		FOREIGN KEY (session_id) REFERENCES sessions(id)
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return err
	}
	return addColumn(db, "sessions", "revision", "INTEGER NOT NULL DEFAULT 1")
}

// addColumn adds a column to a table created by an older version of the
// schema. It is a no-op when the column exists.
func addColumn(db *sql.DB, table, column, decl string) error {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return fmt.Errorf("inspect %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			cid, notNull, pk int
			name, typ        string
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			return fmt.Errorf("inspect %s: %w", table, err)
		}
		if name == column {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("inspect %s: %w", table, err)
	}
	_ = rows.Close()

	if _, err := db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, decl)); err != nil {
		return fmt.Errorf("add %s.%s: %w", table, column, err)
	}
	return nil
}

// Save writes the snapshot's session row and any activities not yet stored.
// Stored activities are never rewritten; a snapshot holding fewer
// activities than the database is rejected.
//
// A snapshot with revision zero creates the session. Any other snapshot
// updates it only if the stored revision still equals the snapshot's;
// otherwise Save returns ErrStale and writes nothing. Save returns the
// new stored revision.
func (s *Store) Save(project string, snap tracker.Snapshot) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	revision := snap.Revision + 1
	if snap.Revision == 0 {
		_, err = tx.Exec(
			`INSERT INTO sessions (id, project, stack, phase, debt, status, started_at, phase_entered_at, revision, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			snap.ID, project, snap.Stack, snap.Phase.String(), snap.CleanupDebt, StatusActive,
			snap.StartedAt.UTC(), snap.PhaseEnteredAt.UTC(), revision, now,
		)
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return 0, fmt.Errorf("session %s already stored: %w", snap.ID, ErrStale)
		}
		if err != nil {
			return 0, fmt.Errorf("insert session: %w", err)
		}
	} else {
		res, err := tx.Exec(
			`UPDATE sessions
			 SET phase = ?, debt = ?, phase_entered_at = ?, revision = ?, updated_at = ?
			 WHERE id = ? AND revision = ?`,
			snap.Phase.String(), snap.CleanupDebt, snap.PhaseEnteredAt.UTC(), revision, now,
			snap.ID, snap.Revision,
		)
		if err != nil {
			return 0, fmt.Errorf("update session: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("check rows affected: %w", err)
		}
		if n == 0 {
			return 0, fmt.Errorf("session %s at revision %d: %w", snap.ID, snap.Revision, ErrStale)
		}
	}

	var stored int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM activities WHERE session_id = ?`, snap.ID).Scan(&stored); err != nil {
		return 0, fmt.Errorf("count activities: %w", err)
	}
	if stored > len(snap.Activities) {
		return 0, fmt.Errorf("session %s: snapshot has %d activities, store has %d", snap.ID, len(snap.Activities), stored)
	}

	for seq := stored; seq < len(snap.Activities); seq++ {
		a := snap.Activities[seq]
		_, err := tx.Exec(
			`INSERT INTO activities (session_id, seq, description, debt, phase, timestamp)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			snap.ID, seq, a.Description, a.DebtIncurring, a.Phase.String(), a.Timestamp.UTC(),
		)
		if err != nil {
			return 0, fmt.Errorf("insert activity %d: %w", seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return revision, nil
}

// Load retrieves a session snapshot by ID. Returns nil, nil if not found.
func (s *Store) Load(id string) (*tracker.Snapshot, error) {
	row := s.db.QueryRow(
		`SELECT id, stack, phase, debt, started_at, phase_entered_at, revision
		 FROM sessions WHERE id = ?`,
		id,
	)
	return s.loadRow(row)
}

// LatestActive returns the most recently updated active session for the
// given project. Returns nil, nil if there is none.
func (s *Store) LatestActive(project string) (*tracker.Snapshot, error) {
	row := s.db.QueryRow(
		`SELECT id, stack, phase, debt, started_at, phase_entered_at, revision
		 FROM sessions
		 WHERE project = ? AND status = ?
		 ORDER BY updated_at DESC
		 LIMIT 1`,
		project, StatusActive,
	)
	return s.loadRow(row)
}

func (s *Store) loadRow(row *sql.Row) (*tracker.Snapshot, error) {
	var (
		snap  tracker.Snapshot
		phase string
	)
	err := row.Scan(&snap.ID, &snap.Stack, &phase, &snap.CleanupDebt, &snap.StartedAt, &snap.PhaseEnteredAt, &snap.Revision)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan session: %w", err)
	}
	if snap.Phase, err = tracker.ParsePhase(phase); err != nil {
		return nil, fmt.Errorf("session %s: %w", snap.ID, err)
	}

	snap.Activities, err = s.activities(snap.ID)
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *Store) activities(sessionID string) ([]tracker.Activity, error) {
	rows, err := s.db.Query(
		`SELECT description, debt, phase, timestamp
		 FROM activities
		 WHERE session_id = ?
		 ORDER BY seq ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query activities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []tracker.Activity
	for rows.Next() {
		var (
			a     tracker.Activity
			phase string
		)
		if err := rows.Scan(&a.Description, &a.DebtIncurring, &phase, &a.Timestamp); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		if a.Phase, err = tracker.ParsePhase(phase); err != nil {
			return nil, fmt.Errorf("activity of %s: %w", sessionID, err)
		}
		out = append(out, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return out, nil
}

// End marks a session as ended so it is no longer picked up as active.
// It bumps the revision, so snapshots loaded before End can no longer be
// saved.
func (s *Store) End(id string) error {
	res, err := s.db.Exec(
		`UPDATE sessions SET status = ?, revision = revision + 1, updated_at = ? WHERE id = ?`,
		StatusEnded, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session %s not found", id)
	}
	return nil
}

// List returns summaries of the most recently updated sessions.
func (s *Store) List(limit int) ([]Summary, error) {
	rows, err := s.db.Query(
		`SELECT s.id, s.project, s.stack, s.phase, s.status, s.debt, s.started_at, s.updated_at,
		        COUNT(a.id) AS activities
		 FROM sessions s
		 LEFT JOIN activities a ON s.id = a.session_id
		 GROUP BY s.id
		 ORDER BY s.updated_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ID, &sum.Project, &sum.Stack, &sum.Phase, &sum.Status, &sum.Debt,
			&sum.StartedAt, &sum.UpdatedAt, &sum.Activities); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		summaries = append(summaries, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return summaries, nil
}
