package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"notekeeper/internal/apperr"
	"notekeeper/internal/domain"
	"notekeeper/internal/repository"
)

const (
	createNotesTable = `
CREATE TABLE IF NOT EXISTS notes (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	owner_id INTEGER NOT NULL REFERENCES users(id),
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`
	createNotesOwnerIndex = `
CREATE INDEX IF NOT EXISTS idx_notes_owner ON notes(owner_id, created_at);
`
)

type NoteRepository struct {
	db *sql.DB
}

func NewNoteRepository(db *sql.DB) repository.NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createNotesTable); err != nil {
		return fmt.Errorf("create notes table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createNotesOwnerIndex); err != nil {
		return fmt.Errorf("create notes owner index: %w", err)
	}
	return nil
}

func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) error {
	now := time.Now().UTC()
	note.ID = uuid.NewString()
	note.CreatedAt = now
	note.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO notes (id, title, content, owner_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		note.ID,
		note.Title,
		note.Content,
		note.OwnerID,
		note.CreatedAt,
		note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

func (r *NoteRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Note, error) {
	// rowid tiebreak keeps newest-first stable when timestamps collide
	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, content, owner_id, created_at, updated_at
FROM notes
WHERE owner_id = ?
ORDER BY created_at DESC, rowid DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]domain.Note, 0)
	for rows.Next() {
		var note domain.Note
		if err := rows.Scan(
			&note.ID,
			&note.Title,
			&note.Content,
			&note.OwnerID,
			&note.CreatedAt,
			&note.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}
	return notes, nil
}

func (r *NoteRepository) GetOwned(ctx context.Context, ownerID int64, id string) (*domain.Note, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, title, content, owner_id, created_at, updated_at
FROM notes
WHERE id = ? AND owner_id = ?`,
		id,
		ownerID,
	)
	return scanNote(row)
}

func (r *NoteRepository) UpdateOwned(ctx context.Context, ownerID int64, id, title, content string) (*domain.Note, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE notes
SET title = ?, content = ?, updated_at = ?
WHERE id = ? AND owner_id = ?`,
		title,
		content,
		time.Now().UTC(),
		id,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update note rows affected: %w", err)
	}
	if affected == 0 {
		return nil, apperr.NotFound("note not found")
	}
	return r.GetOwned(ctx, ownerID, id)
}

func (r *NoteRepository) DeleteOwned(ctx context.Context, ownerID int64, id string) (*domain.Note, error) {
	note, err := r.GetOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, `
DELETE FROM notes
WHERE id = ? AND owner_id = ?`,
		id,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("delete note: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("delete note rows affected: %w", err)
	}
	if affected == 0 {
		return nil, apperr.NotFound("note not found")
	}
	return note, nil
}

func scanNote(row interface {
	Scan(dest ...any) error
}) (*domain.Note, error) {
	var note domain.Note
	if err := row.Scan(
		&note.ID,
		&note.Title,
		&note.Content,
		&note.OwnerID,
		&note.CreatedAt,
		&note.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("note not found")
		}
		return nil, fmt.Errorf("scan note: %w", err)
	}
	return &note, nil
}
