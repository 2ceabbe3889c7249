package domain

import "time"

// User represents a registered account. PasswordHash holds the bcrypt
// digest; the plaintext password never reaches the domain layer.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
