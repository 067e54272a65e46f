package session

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/etnz/folio"
	_ "modernc.org/sqlite"
)

// SQLite is a Store persisted in a SQLite database.
type SQLite struct {
	db *sql.DB
	mu sync.Mutex // serializes appends
}

// OpenSQLite opens (or creates) the database at dsn and creates the turns
// table if needed.
func OpenSQLite(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	// an in-memory database only lives in its connection
	db.SetMaxOpenConns(1)
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate session db: %w", err)
	}
	return &SQLite{db: db}, nil
}

func migrate(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS turns (
			seq        INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			role       TEXT NOT NULL,
			content    TEXT NOT NULL,
			tool       TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		)
	`); err != nil {
		return err
	}
	_, err := db.Exec("CREATE INDEX IF NOT EXISTS turns_session ON turns (session_id, seq)")
	return err
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) History(ctx context.Context, id string) (folio.History, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT role, content, tool FROM turns WHERE session_id = ? ORDER BY seq", id)
	if err != nil {
		return nil, fmt.Errorf("query session %q: %w", id, err)
	}
	defer rows.Close()

	var h folio.History
	for rows.Next() {
		var t folio.Turn
		var role, tool string
		if err := rows.Scan(&role, &t.Content, &tool); err != nil {
			return nil, fmt.Errorf("scan session %q: %w", id, err)
		}
		t.Role, t.Tool = folio.Role(role), folio.ToolName(tool)
		h = append(h, t)
	}
	return h, rows.Err()
}

func (s *SQLite) Append(ctx context.Context, id string, turns ...folio.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("append to session %q: %w", id, err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, t := range turns {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO turns (session_id, role, content, tool, created_at) VALUES (?, ?, ?, ?, ?)",
			id, string(t.Role), t.Content, string(t.Tool), now,
		); err != nil {
			return fmt.Errorf("append to session %q: %w", id, err)
		}
	}
	return tx.Commit()
}
