package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const activityFileName = "activity.sqlite"

// Activity is one recorded outcome of a create/update/delete, as shown to
// the user, plus the failure detail that was only logged.
type Activity struct {
	ID       string    `json:"id"`
	At       time.Time `json:"at"`
	Resource string    `json:"resource"`
	Action   string    `json:"action"`
	EntityID int       `json:"entityId,omitempty"`
	Local    bool      `json:"local,omitempty"`
	Severity string    `json:"severity"`
	Message  string    `json:"message"`
	Detail   string    `json:"detail,omitempty"`
}

func (s Store) activityPath() string {
	return filepath.Join(s.Dir, activityFileName)
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.activityPath())
	if err != nil {
		return nil, err
	}
	// WAL lets the CLI read the log while a TUI session appends to it.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS activity (
			id TEXT PRIMARY KEY,
			at_unixms INTEGER NOT NULL,
			resource TEXT NOT NULL,
			action TEXT NOT NULL,
			entity_id INTEGER NOT NULL DEFAULT 0,
			local INTEGER NOT NULL DEFAULT 0,
			severity TEXT NOT NULL,
			message TEXT NOT NULL,
			detail TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE INDEX IF NOT EXISTS activity_at ON activity(at_unixms);`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migrate activity: %w", err)
		}
	}
	return nil
}

// AppendActivity records a. Missing ID and At are filled in; the stored
// record is returned.
func (s Store) AppendActivity(ctx context.Context, a Activity) (Activity, error) {
	if !s.Enabled() {
		return a, nil
	}
	if strings.TrimSpace(a.ID) == "" {
		a.ID = uuid.NewString()
	}
	if a.At.IsZero() {
		a.At = time.Now().UTC()
	}

	db, err := s.openSQLite(ctx)
	if err != nil {
		return a, err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx,
		`INSERT INTO activity(id, at_unixms, resource, action, entity_id, local, severity, message, detail) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.At.UnixMilli(), a.Resource, a.Action, a.EntityID, boolToInt(a.Local), a.Severity, a.Message, a.Detail,
	)
	if err != nil {
		return a, fmt.Errorf("append activity: %w", err)
	}
	return a, nil
}

// ReadActivity returns up to limit records, newest first. limit <= 0 means all.
func (s Store) ReadActivity(ctx context.Context, limit int) ([]Activity, error) {
	if !s.Enabled() {
		return nil, nil
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT id, at_unixms, resource, action, entity_id, local, severity, message, detail FROM activity ORDER BY at_unixms DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("read activity: %w", err)
	}
	defer rows.Close()

	var out []Activity
	for rows.Next() {
		var a Activity
		var atMs int64
		var local int
		if err := rows.Scan(&a.ID, &atMs, &a.Resource, &a.Action, &a.EntityID, &local, &a.Severity, &a.Message, &a.Detail); err != nil {
			return nil, err
		}
		a.At = time.UnixMilli(atMs).UTC()
		a.Local = local != 0
		out = append(out, a)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
