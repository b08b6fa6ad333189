package postgres

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/epicplan/planner/internal/application/planner"
	"github.com/epicplan/planner/internal/calendar"
)

// Store provides the PostgreSQL implementation of planner.Repository.
// Entities are keyed the way the planner reads them: posts by
// (date, platform), stories by date, newsletters by (type, date), the
// rest by id.
type Store struct {
	pool *pgxpool.Pool
}

// Compile-time verification that Store implements the repository interface.
var _ planner.Repository = (*Store)(nil)

// NewStore creates a new PostgreSQL store with the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Pool returns the underlying connection pool.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// Close closes the database connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// asDate normalizes a scanned DATE column to UTC midnight. pgx hands
// back date values with whatever location the driver chose; the planner
// compares dates by exact instant.
func asDate(t time.Time) time.Time {
	return calendar.DateOf(t.UTC())
}

// asDatePtr is asDate for nullable DATE columns.
func asDatePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := asDate(t.UTC())
	return &d
}
