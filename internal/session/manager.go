// Package session issues and resolves server-side sessions bound to a
// signed client token. The token is an HS256 JWT carrying only the
// session id; identity always comes from the server-side store, so a
// forged or stale token can never mint an identity on its own.
package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"notekeeper/internal/apperr"
)

// CookieName is the cookie the signed token travels in.
const CookieName = "notekeeper_session"

// Identity is the authenticated principal cached in a session. SessionID
// lets the caller hand the session back for destruction at logout.
type Identity struct {
	SessionID string
	UserID    int64
	Username  string
}

// Session binds a server-held id to an identity for the lifetime of a login.
type Session struct {
	ID        string
	UserID    int64
	Username  string
	CreatedAt time.Time
}

type claims struct {
	jwt.RegisteredClaims
}

// Manager starts, resolves, and destroys sessions. Changing the signing
// secret orphans every outstanding token, which reads as "all sessions
// invalidated".
type Manager struct {
	store  Store
	secret []byte
}

func NewManager(store Store, secret string) *Manager {
	return &Manager{store: store, secret: []byte(secret)}
}

// Start creates a session for the identity and returns it together with
// the signed token to place in the client cookie.
func (m *Manager) Start(userID int64, username string) (Session, string, error) {
	s := Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       s.ID,
			IssuedAt: jwt.NewNumericDate(s.CreatedAt),
		},
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return Session{}, "", apperr.Internal("sign session token", err)
	}

	if err := m.store.Put(s); err != nil {
		return Session{}, "", apperr.Internal("store session", err)
	}
	return s, signed, nil
}

// Resolve maps a signed token to the identity of an active session.
// Missing, malformed, forged, and unknown tokens all resolve to absent,
// never to an error.
func (m *Manager) Resolve(token string) (Identity, bool) {
	if token == "" {
		return Identity{}, false
	}

	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid || c.ID == "" {
		return Identity{}, false
	}

	s, ok := m.store.Get(c.ID)
	if !ok {
		return Identity{}, false
	}
	return Identity{SessionID: s.ID, UserID: s.UserID, Username: s.Username}, true
}

// Destroy removes the session's server-side state. The caller is
// responsible for clearing the client cookie afterwards.
func (m *Manager) Destroy(sessionID string) error {
	if err := m.store.Delete(sessionID); err != nil {
		return apperr.Internal("destroy session", err)
	}
	return nil
}
