package http

import "github.com/gin-gonic/gin"

// Renderer is the view collaborator: a view name plus a payload the
// handlers treat as opaque. Production uses gin's HTML templates; tests
// substitute their own.
type Renderer interface {
	Render(c *gin.Context, status int, view string, data gin.H)
}

// HTMLRenderer renders through the templates loaded into the gin engine.
type HTMLRenderer struct{}

func (HTMLRenderer) Render(c *gin.Context, status int, view string, data gin.H) {
	c.HTML(status, view, data)
}
