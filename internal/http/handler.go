// Package http wires the auth and note workflows to gin routes. Handlers
// translate tagged service errors into status codes and rendered pages;
// internal faults are logged here and shown as a generic failure page.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"notekeeper/internal/apperr"
	"notekeeper/internal/service"
	"notekeeper/internal/session"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	auth     service.AuthService
	notes    service.NoteService
	sessions *session.Manager
	render   Renderer
	logger   *logrus.Logger
}

func NewHandler(auth service.AuthService, notes service.NoteService, sessions *session.Manager, render Renderer, logger *logrus.Logger) *Handler {
	return &Handler{
		auth:     auth,
		notes:    notes,
		sessions: sessions,
		render:   render,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/notes")
	})

	auth := router.Group("/auth")
	{
		auth.GET("/register", h.registerPage)
		auth.POST("/register", h.register)
		auth.GET("/login", h.loginPage)
		auth.POST("/login", h.login)
		auth.POST("/logout", h.logout)
	}

	notes := router.Group("/notes", RequireAuth(h.sessions))
	{
		notes.GET("", h.listNotes)
		notes.POST("", h.createNote)
		notes.GET("/new", h.newNotePage)
		notes.GET("/:id/edit", h.editNotePage)
		notes.POST("/:id/edit", h.updateNote)
		notes.GET("/:id/delete", h.deleteNotePage)
		notes.POST("/:id/delete", h.deleteNote)
	}
}

func (h *Handler) registerPage(c *gin.Context) {
	h.render.Render(c, http.StatusOK, "auth/register", gin.H{
		"Title":    "Register",
		"Username": "",
	})
}

func (h *Handler) loginPage(c *gin.Context) {
	h.render.Render(c, http.StatusOK, "auth/login", gin.H{
		"Title":    "Login",
		"Username": "",
	})
}

func (h *Handler) register(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	_, token, err := h.auth.Register(c.Request.Context(), username, password)
	if err != nil {
		h.renderAuthError(c, "auth/register", "Register", username, err)
		return
	}

	h.setSessionCookie(c, token)
	c.Redirect(http.StatusSeeOther, "/notes")
}

func (h *Handler) login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	_, token, err := h.auth.Login(c.Request.Context(), username, password)
	if err != nil {
		h.renderAuthError(c, "auth/login", "Login", username, err)
		return
	}

	h.setSessionCookie(c, token)
	c.Redirect(http.StatusSeeOther, "/notes")
}

func (h *Handler) logout(c *gin.Context) {
	token, err := c.Cookie(session.CookieName)
	if err == nil {
		if identity, ok := h.sessions.Resolve(token); ok {
			if err := h.auth.Logout(identity.SessionID); err != nil {
				h.renderError(c, err)
				return
			}
		}
	}

	h.clearSessionCookie(c)
	c.Redirect(http.StatusSeeOther, loginPath)
}

func (h *Handler) listNotes(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		c.Redirect(http.StatusFound, loginPath)
		return
	}

	notes, err := h.notes.List(c.Request.Context(), identity.UserID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	h.render.Render(c, http.StatusOK, "notes/index", gin.H{
		"Title":    "My Notes",
		"Username": identity.Username,
		"Notes":    notes,
	})
}

func (h *Handler) newNotePage(c *gin.Context) {
	h.render.Render(c, http.StatusOK, "notes/new", gin.H{
		"Title": "New Note",
	})
}

func (h *Handler) createNote(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		c.Redirect(http.StatusFound, loginPath)
		return
	}

	title := c.PostForm("title")
	content := c.PostForm("content")

	if _, err := h.notes.Create(c.Request.Context(), identity.UserID, title, content); err != nil {
		if apperr.KindOf(err) == apperr.KindValidation {
			h.render.Render(c, http.StatusBadRequest, "notes/new", gin.H{
				"Title": "New Note",
				"Error": apperr.Message(err),
				"Note":  gin.H{"Title": title, "Content": content},
			})
			return
		}
		h.renderError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/notes")
}

func (h *Handler) editNotePage(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		c.Redirect(http.StatusFound, loginPath)
		return
	}

	note, err := h.notes.GetOwned(c.Request.Context(), identity.UserID, c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	h.render.Render(c, http.StatusOK, "notes/edit", gin.H{
		"Title": "Edit Note",
		"Note":  note,
	})
}

func (h *Handler) updateNote(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		c.Redirect(http.StatusFound, loginPath)
		return
	}

	noteID := c.Param("id")
	title := c.PostForm("title")
	content := c.PostForm("content")

	if _, err := h.notes.Update(c.Request.Context(), identity.UserID, noteID, title, content); err != nil {
		if apperr.KindOf(err) == apperr.KindValidation {
			h.render.Render(c, http.StatusBadRequest, "notes/edit", gin.H{
				"Title": "Edit Note",
				"Error": apperr.Message(err),
				"Note":  gin.H{"ID": noteID, "Title": title, "Content": content},
			})
			return
		}
		h.renderError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/notes")
}

func (h *Handler) deleteNotePage(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		c.Redirect(http.StatusFound, loginPath)
		return
	}

	note, err := h.notes.GetOwned(c.Request.Context(), identity.UserID, c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	h.render.Render(c, http.StatusOK, "notes/delete", gin.H{
		"Title": "Delete Note",
		"Note":  note,
	})
}

func (h *Handler) deleteNote(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		c.Redirect(http.StatusFound, loginPath)
		return
	}

	if _, err := h.notes.Delete(c.Request.Context(), identity.UserID, c.Param("id")); err != nil {
		h.renderError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/notes")
}

func (h *Handler) renderAuthError(c *gin.Context, view, title, username string, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		h.logger.WithError(err).Error("auth request failed")
	}
	h.render.Render(c, status, view, gin.H{
		"Title":    title,
		"Error":    apperr.Message(err),
		"Username": username,
	})
}

func (h *Handler) renderError(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		h.logger.WithError(err).Error("request failed")
	}
	h.render.Render(c, status, "error", gin.H{
		"Title": "Error",
		"Error": apperr.Message(err),
	})
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(session.CookieName, token, 0, "/", "", false, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
}
