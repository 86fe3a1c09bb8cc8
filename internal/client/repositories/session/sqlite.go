package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/billed/internal/dbx"
)

var _ Store = (*SQLiteStore)(nil)

// SQLiteStore keeps session items in the session_items table.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session_items WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get session item[%s]: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteStore) SetItem(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session_items (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session item[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) RemoveItem(ctx context.Context, key string) error {
	return removeItem(ctx, s.db, key)
}

func (s *SQLiteStore) Clear(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM session_items`); err != nil {
			return fmt.Errorf("failed to clear session items: %w", err)
		}
		return nil
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, k := range keys {
			if err := removeItem(ctx, tx, k); err != nil {
				return err
			}
		}
		return nil
	})
}

func removeItem(ctx context.Context, db dbx.DBTX, key string) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM session_items WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to remove session item[%s]: %w", key, err)
	}
	return nil
}
