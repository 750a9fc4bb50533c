package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sitebudget/internal/db"
)

// SQLiteSnapshotStore implements SnapshotStore on a SQLite table. Saving
// is an upsert: the store keeps exactly one snapshot per key.
type SQLiteSnapshotStore struct {
	db db.DBTX
}

// NewSQLiteSnapshotStore creates a new SQLiteSnapshotStore.
func NewSQLiteSnapshotStore(dbtx db.DBTX) *SQLiteSnapshotStore {
	return &SQLiteSnapshotStore{db: dbtx}
}

func (s *SQLiteSnapshotStore) SaveSnapshot(ctx context.Context, key string, blob []byte, savedAt time.Time) error {
	query := `INSERT INTO snapshots (key, blob, saved_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET blob = excluded.blob, saved_at = excluded.saved_at`
	_, err := s.db.ExecContext(ctx, query, key, string(blob), savedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

func (s *SQLiteSnapshotStore) LoadSnapshot(ctx context.Context, key string) ([]byte, error) {
	var blob string
	err := s.db.QueryRowContext(ctx, `SELECT blob FROM snapshots WHERE key = ?`, key).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	return []byte(blob), nil
}

func (s *SQLiteSnapshotStore) ClearSnapshot(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("clearing snapshot: %w", err)
	}
	return nil
}
