// Package storage provides Snapshot implementations for the session store.
// The SQLite variant persists the conversation across restarts; the memory
// variant backs tests and DB-less runs.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/glebarez/go-sqlite"

	"github.com/jalrakshak/jalrakshak-go/internal/session"
)

const schema = `CREATE TABLE IF NOT EXISTS session_messages (
	session_id     TEXT    NOT NULL,
	id             INTEGER NOT NULL,
	role           TEXT    NOT NULL,
	content        TEXT    NOT NULL,
	created_at     DATETIME NOT NULL,
	risk_level     TEXT    NOT NULL DEFAULT '',
	original_query TEXT    NOT NULL DEFAULT '',
	PRIMARY KEY (session_id, id)
);`

// SQLiteSnapshot stores one session's full message sequence in SQLite.
type SQLiteSnapshot struct {
	db        *sql.DB
	sessionID string
}

// NewSQLite opens (and creates if needed) the snapshot database at path for
// the given session.
func NewSQLite(path, sessionID string) (*SQLiteSnapshot, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_busy_timeout=10000&_fk=1")
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create snapshot table: %w", err)
	}
	return &SQLiteSnapshot{db: db, sessionID: sessionID}, nil
}

// Load returns the session's messages in insertion order. An absent snapshot
// yields an empty sequence, not an error.
func (s *SQLiteSnapshot) Load(ctx context.Context) ([]session.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, role, content, created_at, risk_level, original_query
		 FROM session_messages WHERE session_id = ? ORDER BY id ASC;`, s.sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []session.Message
	for rows.Next() {
		var m session.Message
		var role string
		if err := rows.Scan(&m.ID, &role, &m.Content, &m.Timestamp, &m.RiskLevel, &m.OriginalQuery); err != nil {
			return nil, err
		}
		m.Role = session.Role(role)
		out = append(out, m)
	}
	return out, rows.Err()
}

// Save rewrites the session's rows with the given sequence in one
// transaction, so the stored snapshot is always a complete state.
func (s *SQLiteSnapshot) Save(ctx context.Context, messages []session.Message) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM session_messages WHERE session_id = ?;`, s.sessionID); err != nil {
		return err
	}
	for _, m := range messages {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO session_messages (session_id, id, role, content, created_at, risk_level, original_query)
			 VALUES (?,?,?,?,?,?,?);`,
			s.sessionID, m.ID, string(m.Role), m.Content, m.Timestamp, m.RiskLevel, m.OriginalQuery); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Delete removes the session's stored snapshot.
func (s *SQLiteSnapshot) Delete(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session_messages WHERE session_id = ?;`, s.sessionID)
	return err
}

// Close closes the underlying database.
func (s *SQLiteSnapshot) Close() error {
	return s.db.Close()
}
