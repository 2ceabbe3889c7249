package domain

import "time"

// Note is a private text note. OwnerID is set once at creation and every
// storage access filters on it, so one user's notes are invisible to
// every other user.
type Note struct {
	ID        string
	Title     string
	Content   string
	OwnerID   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
