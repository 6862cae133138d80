package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// GetFlag returns the boolean setting under key, or def when the key is
// absent or its value does not parse as a boolean.
func (s *SQLiteStore) GetFlag(ctx context.Context, key string, def bool) (bool, error) {
	if key == "" {
		return def, errors.New("settings key is required")
	}

	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return def, nil
	}
	if err != nil {
		return def, fmt.Errorf("failed to get setting %q: %w", key, err)
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return def, nil
	}
	return parsed, nil
}

// SetFlag stores the boolean setting under key.
func (s *SQLiteStore) SetFlag(ctx context.Context, key string, value bool) error {
	if key == "" {
		return errors.New("settings key is required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO settings (key, value, updated_at_unix_ms)
		VALUES (?, ?, ?)
	`, key, strconv.FormatBool(value), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to set setting %q: %w", key, err)
	}
	return nil
}
