package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"notekeeper/internal/session"
)

const identityKey = "identity"

// loginPath is where unauthenticated requests to guarded routes land.
const loginPath = "/auth/login"

// RequireAuth resolves the session cookie and either stores the identity
// in the request context or redirects to the login page. It guards every
// note route and none of the auth routes.
func RequireAuth(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(session.CookieName)
		if err != nil {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		identity, ok := sessions.Resolve(token)
		if !ok {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// identityFrom returns the identity stored by RequireAuth.
func identityFrom(c *gin.Context) (session.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return session.Identity{}, false
	}
	identity, ok := v.(session.Identity)
	return identity, ok
}
