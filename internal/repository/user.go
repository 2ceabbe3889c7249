package repository

import (
	"context"

	"notekeeper/internal/domain"
)

// UserRepository defines persistence operations for User entities. The
// core never updates or deletes users.
type UserRepository interface {
	Init(ctx context.Context) error
	// Create inserts the user and returns the generated id. A username
	// collision yields a conflict-tagged error; the UNIQUE constraint in
	// storage is the final arbiter for concurrent registrations.
	Create(ctx context.Context, user *domain.User) (int64, error)
	// GetByUsername returns a not-found-tagged error when no such user exists.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
