package service

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"notekeeper/internal/apperr"
	"notekeeper/internal/auth"
	"notekeeper/internal/domain"
	"notekeeper/internal/repository"
	"notekeeper/internal/session"
)

// invalidCredentialsMessage is shared by the unknown-user and
// wrong-password paths so responses cannot be used to enumerate usernames.
const invalidCredentialsMessage = "invalid username or password"

// AuthService handles registration, login, and logout. Successful
// register/login start a session and return it with the signed cookie token.
type AuthService interface {
	Register(ctx context.Context, username, password string) (session.Session, string, error)
	Login(ctx context.Context, username, password string) (session.Session, string, error)
	Logout(sessionID string) error
}

type authService struct {
	users    repository.UserRepository
	hasher   *auth.PasswordHasher
	sessions *session.Manager
}

func NewAuthService(users repository.UserRepository, hasher *auth.PasswordHasher, sessions *session.Manager) AuthService {
	return &authService{
		users:    users,
		hasher:   hasher,
		sessions: sessions,
	}
}

func (s *authService) Register(ctx context.Context, username, password string) (session.Session, string, error) {
	username = strings.TrimSpace(username)

	if username == "" || password == "" {
		return session.Session{}, "", apperr.Validation("username and password are required")
	}
	if err := validation.Validate(username, validation.Length(3, 30)); err != nil {
		return session.Session{}, "", apperr.Validation("username must be between 3 and 30 characters")
	}
	if err := validation.Validate(password, validation.Length(6, 0)); err != nil {
		return session.Session{}, "", apperr.Validation("password must be at least 6 characters")
	}

	// fast rejection path only; the UNIQUE constraint below settles races
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return session.Session{}, "", apperr.Conflict("username already taken")
	} else if apperr.KindOf(err) != apperr.KindNotFound {
		return session.Session{}, "", err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return session.Session{}, "", err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		return session.Session{}, "", err
	}

	return s.sessions.Start(user.ID, user.Username)
}

func (s *authService) Login(ctx context.Context, username, password string) (session.Session, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return session.Session{}, "", apperr.Validation("username and password are required")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return session.Session{}, "", apperr.Unauthorized(invalidCredentialsMessage)
		}
		return session.Session{}, "", err
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return session.Session{}, "", err
	}
	if !ok {
		return session.Session{}, "", apperr.Unauthorized(invalidCredentialsMessage)
	}

	return s.sessions.Start(user.ID, user.Username)
}

func (s *authService) Logout(sessionID string) error {
	return s.sessions.Destroy(sessionID)
}
