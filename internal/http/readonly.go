package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const readOnlyMessage = "This action is disabled in read-only mode"

// ReadOnlyMiddleware blocks write operations when enabled.
// GET, HEAD and OPTIONS requests always pass through.
type ReadOnlyMiddleware struct {
	enabled bool
}

func NewReadOnlyMiddleware(enabled bool) *ReadOnlyMiddleware {
	return &ReadOnlyMiddleware{enabled: enabled}
}

func (m *ReadOnlyMiddleware) IsEnabled() bool {
	return m.enabled
}

func (m *ReadOnlyMiddleware) Handler() gin.HandlerFunc {
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

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":     readOnlyMessage,
			"read_only": true,
		})
	}
}
