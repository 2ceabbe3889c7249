// Package auth provides one-way password hashing for the credential flow.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"notekeeper/internal/apperr"
)

// DefaultCost is the bcrypt cost used when configuration is absent or
// out of range.
const DefaultCost = 10

// PasswordHasher hashes and verifies passwords with bcrypt. A mismatch on
// Verify is an ordinary false result; only infrastructure faults (for
// example a corrupted stored hash) surface as errors.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", apperr.Internal("hash password", err)
	}
	return string(digest), nil
}

func (h *PasswordHasher) Verify(plaintext, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, apperr.Internal("verify password", err)
}

// Cost reports the configured bcrypt cost.
func (h *PasswordHasher) Cost() int {
	return h.cost
}
