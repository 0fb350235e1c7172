// Package readonly puts the API in maintenance mode: reads keep working and
// every write is refused with 403.
package readonly

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Middleware blocks write operations when read-only mode is on.
// GET, HEAD and OPTIONS always pass, as do the allowlisted routes below.
type Middleware struct {
	enabled bool
}

// NewMiddleware creates a read-only mode middleware.
func NewMiddleware(enabled bool) *Middleware {
	return &Middleware{enabled: enabled}
}

// IsEnabled returns whether read-only mode is active.
func (m *Middleware) IsEnabled() bool {
	return m.enabled
}

// Handler returns a Gin middleware that blocks write operations.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.enabled {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		if isAllowed(c.Request.Method, c.FullPath()) {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":     "the library is in read-only mode",
			"read_only": true,
		})
	}
}

// Login only compares credentials, so it stays available.
var allowedRoutes = map[string]string{
	"/users/login": http.MethodPost,
}

func isAllowed(method, route string) bool {
	allowedMethod, ok := allowedRoutes[route]
	return ok && allowedMethod == method
}

// ContextKeyReadOnly is set on every request so handlers can report the mode.
const ContextKeyReadOnly = "read_only"

// InjectContext middleware adds the read-only flag to the request context.
func (m *Middleware) InjectContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyReadOnly, m.enabled)
		c.Next()
	}
}
