package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"notekeeper/internal/auth"
	"notekeeper/internal/repository/sqlite"
	"notekeeper/internal/service"
	"notekeeper/internal/session"
)

// jsonRenderer stands in for the HTML templates so handler tests can
// assert on view names without parsing markup.
type jsonRenderer struct{}

func (jsonRenderer) Render(c *gin.Context, status int, view string, data gin.H) {
	c.JSON(status, gin.H{"view": view})
}

type testApp struct {
	router   *gin.Engine
	notes    service.NoteService
	sessions *session.Manager
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	userRepo := sqlite.NewUserRepository(db)
	require.NoError(t, userRepo.Init(ctx))
	noteRepo := sqlite.NewNoteRepository(db)
	require.NoError(t, noteRepo.Init(ctx))

	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	sessions := session.NewManager(session.NewMemoryStore(), "test-secret")
	authService := service.NewAuthService(userRepo, hasher, sessions)
	noteService := service.NewNoteService(noteRepo)

	logger := logrus.New()
	logger.SetOutput(new(strings.Builder))

	router := gin.New()
	handler := NewHandler(authService, noteService, sessions, jsonRenderer{}, logger)
	handler.RegisterRoutes(router)

	return &testApp{router: router, notes: noteService, sessions: sessions}
}

func (a *testApp) postForm(path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) registerUser(t *testing.T, username, password string) []*http.Cookie {
	t.Helper()
	w := a.postForm("/auth/register", url.Values{
		"username": {username},
		"password": {password},
	}, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func TestRegisterRedirectsToNotesWithSessionCookie(t *testing.T) {
	app := newTestApp(t)

	w := app.postForm("/auth/register", url.Values{
		"username": {"alice"},
		"password": {"secret1"},
	}, nil)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/notes", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, session.CookieName, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
}

func TestRegisterValidationAndConflictStatuses(t *testing.T) {
	app := newTestApp(t)
	app.registerUser(t, "alice", "secret1")

	short := app.postForm("/auth/register", url.Values{
		"username": {"bob"},
		"password": {"12345"},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, short.Code)

	dup := app.postForm("/auth/register", url.Values{
		"username": {"alice"},
		"password": {"another7"},
	}, nil)
	assert.Equal(t, http.StatusConflict, dup.Code)
}

func TestLoginFailureStatuses(t *testing.T) {
	app := newTestApp(t)
	app.registerUser(t, "alice", "secret1")

	wrong := app.postForm("/auth/login", url.Values{
		"username": {"alice"},
		"password": {"not-it"},
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)

	unknown := app.postForm("/auth/login", url.Values{
		"username": {"mallory"},
		"password": {"not-it"},
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	// same status and page for both, nothing to enumerate usernames with
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())
}

func TestNotesRequireAuthentication(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/notes", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))

	forged := []*http.Cookie{{Name: session.CookieName, Value: "forged-token"}}
	w = app.get("/notes", forged)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))
}

func TestNoteLifecycleWithOwnershipIsolation(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	aliceCookies := app.registerUser(t, "alice", "secret1")

	listed := app.get("/notes", aliceCookies)
	assert.Equal(t, http.StatusOK, listed.Code)
	assert.Contains(t, listed.Body.String(), "notes/index")

	created := app.postForm("/notes", url.Values{
		"title":   {"Groceries"},
		"content": {"Milk, eggs"},
	}, aliceCookies)
	assert.Equal(t, http.StatusSeeOther, created.Code)

	// fetch the note id through the service to drive the foreign access
	identity := resolveIdentity(t, app, aliceCookies)
	notes, err := app.notes.List(ctx, identity.UserID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	noteID := notes[0].ID

	bobCookies := app.registerUser(t, "bob", "secret2")

	hijack := app.postForm("/notes/"+noteID+"/edit", url.Values{
		"title":   {"Hijacked"},
		"content": {"Gotcha"},
	}, bobCookies)
	assert.Equal(t, http.StatusNotFound, hijack.Code)

	peek := app.get("/notes/"+noteID+"/edit", bobCookies)
	assert.Equal(t, http.StatusNotFound, peek.Code)

	// alice still sees her note untouched
	unchanged, err := app.notes.GetOwned(ctx, identity.UserID, noteID)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", unchanged.Title)

	deleted := app.postForm("/notes/"+noteID+"/delete", nil, aliceCookies)
	assert.Equal(t, http.StatusSeeOther, deleted.Code)

	gone := app.get("/notes/"+noteID+"/edit", aliceCookies)
	assert.Equal(t, http.StatusNotFound, gone.Code)
}

func TestLogoutEndsSession(t *testing.T) {
	app := newTestApp(t)
	cookies := app.registerUser(t, "alice", "secret1")

	w := app.postForm("/auth/logout", nil, cookies)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))

	// the old signed cookie no longer resolves to a session
	after := app.get("/notes", cookies)
	assert.Equal(t, http.StatusFound, after.Code)
	assert.Equal(t, "/auth/login", after.Header().Get("Location"))
}

func resolveIdentity(t *testing.T, app *testApp, cookies []*http.Cookie) session.Identity {
	t.Helper()
	for _, c := range cookies {
		if c.Name == session.CookieName {
			identity, ok := app.sessions.Resolve(c.Value)
			require.True(t, ok)
			return identity
		}
	}
	t.Fatalf("no session cookie present")
	return session.Identity{}
}
