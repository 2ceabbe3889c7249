package repository

import (
	"context"

	"notekeeper/internal/domain"
)

// NoteRepository defines persistence operations for Note entities. Every
// read and mutation is filtered by owner at the query level, so a note
// that exists but belongs to someone else is reported exactly like a note
// that does not exist.
type NoteRepository interface {
	Init(ctx context.Context) error
	// Create inserts the note, generating its id and timestamps.
	Create(ctx context.Context, note *domain.Note) error
	// ListByOwner returns the owner's notes newest-created-first. An owner
	// with no notes gets an empty slice, not an error.
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Note, error)
	// GetOwned returns a not-found-tagged error when no note matches both
	// id and owner.
	GetOwned(ctx context.Context, ownerID int64, id string) (*domain.Note, error)
	// UpdateOwned applies title/content in a single statement filtered by
	// (id, owner); zero matched rows is a not-found-tagged error.
	UpdateOwned(ctx context.Context, ownerID int64, id, title, content string) (*domain.Note, error)
	// DeleteOwned removes the note filtered by (id, owner) and returns the
	// removed record; zero matched rows is a not-found-tagged error.
	DeleteOwned(ctx context.Context, ownerID int64, id string) (*domain.Note, error)
}
