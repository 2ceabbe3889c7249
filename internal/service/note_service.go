package service

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"notekeeper/internal/apperr"
	"notekeeper/internal/domain"
	"notekeeper/internal/repository"
)

// NoteService exposes the note operations. Every call takes the acting
// user's id explicitly; the service never derives identity from ambient
// state, and ownership is enforced by the repository's filtered queries.
type NoteService interface {
	List(ctx context.Context, userID int64) ([]domain.Note, error)
	Create(ctx context.Context, userID int64, title, content string) (*domain.Note, error)
	Update(ctx context.Context, userID int64, noteID, title, content string) (*domain.Note, error)
	Delete(ctx context.Context, userID int64, noteID string) (*domain.Note, error)
	GetOwned(ctx context.Context, userID int64, noteID string) (*domain.Note, error)
}

type noteService struct {
	notes repository.NoteRepository
}

func NewNoteService(notes repository.NoteRepository) NoteService {
	return &noteService{notes: notes}
}

func validateNoteInput(title, content string) (string, string, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)

	if title == "" || content == "" {
		return "", "", apperr.Validation("title and content are required")
	}
	if err := validation.Validate(title, validation.Length(1, 40)); err != nil {
		return "", "", apperr.Validation("title must be at most 40 characters")
	}
	if err := validation.Validate(content, validation.Length(1, 2000)); err != nil {
		return "", "", apperr.Validation("content must be at most 2000 characters")
	}
	return title, content, nil
}

func (s *noteService) List(ctx context.Context, userID int64) ([]domain.Note, error) {
	return s.notes.ListByOwner(ctx, userID)
}

func (s *noteService) Create(ctx context.Context, userID int64, title, content string) (*domain.Note, error) {
	title, content, err := validateNoteInput(title, content)
	if err != nil {
		return nil, err
	}

	// owner comes from the resolved identity, never from caller input
	note := &domain.Note{
		Title:   title,
		Content: content,
		OwnerID: userID,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *noteService) Update(ctx context.Context, userID int64, noteID, title, content string) (*domain.Note, error) {
	title, content, err := validateNoteInput(title, content)
	if err != nil {
		return nil, err
	}
	return s.notes.UpdateOwned(ctx, userID, noteID, title, content)
}

func (s *noteService) Delete(ctx context.Context, userID int64, noteID string) (*domain.Note, error) {
	return s.notes.DeleteOwned(ctx, userID, noteID)
}

func (s *noteService) GetOwned(ctx context.Context, userID int64, noteID string) (*domain.Note, error) {
	return s.notes.GetOwned(ctx, userID, noteID)
}
