package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/interfaces"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/logging"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/model"
	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteStore persists one backup blob per session in a single table.
type SQLiteStore struct {
	db     *sql.DB
	logger logging.Logger
}

var _ interfaces.SessionStore = (*SQLiteStore)(nil)

// NewSQLiteStore opens (creating if needed) the backup database under dir.
func NewSQLiteStore(dir string, logger logging.Logger) (*SQLiteStore, error) {
	if logger == nil {
		return nil, errors.New("store: nil logger provided")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	dbPath := filepath.Join(dir, "backups.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	logger.Info("SQLiteStore initialized", logging.Field{Key: "path", Value: dbPath})
	return &SQLiteStore{db: db, logger: logger}, nil
}

func applySchema(db *sql.DB) error {
	stmts := []string{
		`PRAGMA journal_mode = WAL`,
		`PRAGMA busy_timeout = 5000`,
		`CREATE TABLE IF NOT EXISTS session_backups (
			session_id TEXT PRIMARY KEY,
			payload    BLOB NOT NULL,
			updated_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, sessionID string) (*model.Backup, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM session_backups WHERE session_id = ?`, sessionID).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: querying backup for %s: %w", sessionID, err)
	}
	var b model.Backup
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("store: decoding backup for %s: %w", sessionID, err)
	}
	return &b, nil
}

func (s *SQLiteStore) Set(ctx context.Context, sessionID string, backup *model.Backup) error {
	raw, err := json.Marshal(backup)
	if err != nil {
		return fmt.Errorf("store: encoding backup for %s: %w", sessionID, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO session_backups (session_id, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		sessionID, raw, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("store: writing backup for %s: %w", sessionID, err)
	}
	return nil
}

func (s *SQLiteStore) Remove(ctx context.Context, sessionID string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM session_backups WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("store: removing backup for %s: %w", sessionID, err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
