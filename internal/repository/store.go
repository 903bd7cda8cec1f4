package repository

import (
	"context"

	"github.com/hairstudio/salon/internal/db"
	"github.com/jmoiron/sqlx"
)

// Repositories groups the per-table repositories bound to one querier,
// either the pool or an open transaction.
type Repositories struct {
	Works        WorkRepository
	Reviews      ReviewRepository
	Appointments AppointmentRepository
}

func newRepositories(q sqlx.ExtContext) *Repositories {
	return &Repositories{
		Works:        NewWorkRepository(q),
		Reviews:      NewReviewRepository(q),
		Appointments: NewAppointmentRepository(q),
	}
}

// Store serves reads from the pool and runs mutations through WithTx.
type Store struct {
	*Repositories
	db *sqlx.DB
}

func NewStore(database *sqlx.DB) *Store {
	return &Store{
		Repositories: newRepositories(database),
		db:           database,
	}
}

// WithTx hands fn repositories bound to a single transaction.
func (s *Store) WithTx(ctx context.Context, fn func(r *Repositories) error) error {
	return db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		return fn(newRepositories(tx))
	})
}
