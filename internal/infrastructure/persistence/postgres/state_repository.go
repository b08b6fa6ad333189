package postgres

import (
	"context"
	"fmt"
)

// app_state is a small key/value table for one-off flags.
const legacyImportKey = "legacy_import_done"

func (s *Store) LegacyImportDone(ctx context.Context) (bool, error) {
	var done bool
	err := s.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM app_state WHERE key = $1 AND value = 'true')",
		legacyImportKey).Scan(&done)
	if err != nil {
		return false, fmt.Errorf("failed to read legacy import marker: %w", err)
	}
	return done, nil
}

func (s *Store) MarkLegacyImportDone(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO app_state (key, value)
		VALUES ($1, 'true')
		ON CONFLICT (key) DO UPDATE SET
			value = 'true',
			updated_at = NOW()`,
		legacyImportKey)
	if err != nil {
		return fmt.Errorf("failed to mark legacy import done: %w", err)
	}
	return nil
}
