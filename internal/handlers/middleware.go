package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// requestLogger emits one structured line per request.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()
	if h.log == nil {
		return
	}
	h.log.Infow("http_request",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"status", c.Writer.Status(),
		"latency_ms", time.Since(start).Milliseconds(),
		"client_ip", c.ClientIP(),
	)
}

// sharedSecretMiddleware checks "Authorization: Bearer <secret>" against the
// configured bcrypt hash. Without a hash every request passes.
func (h *Handler) sharedSecretMiddleware(c *gin.Context) {
	if h.opts.SharedSecretHash == "" {
		c.Next()
		return
	}

	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.opts.SharedSecretHash), []byte(parts[1])); err != nil {
		if h.log != nil {
			h.log.Warnw("shared_secret_rejected", "path", c.FullPath(), "client_ip", c.ClientIP())
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid shared secret",
		})
		return
	}

	c.Next()
}
