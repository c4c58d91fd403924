package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mkadlec/passvault/internal/logging"
	"github.com/mkadlec/passvault/internal/server/auth"
)

const (
	userIDKey    = "userID"
	requestIDKey = "requestID"
)

// requestID tags every request with a fresh uuid, echoed in the
// X-Request-Id response header and attached to the request logger.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set(requestIDKey, id)
		c.Header("X-Request-Id", id)
		c.Next()
	}
}

// requestLogger logs one line per request through the structured logger.
func requestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info(c.Request.Context(), "request",
			"request_id", c.GetString(requestIDKey),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

// requireToken authenticates the request from the Authorization header and
// stores the subject user id in the gin context. kind selects which token
// flavor the route accepts: access for API routes, refresh only for the
// token-refresh endpoint. The wrong flavor is rejected outright.
func requireToken(kind auth.TokenKind, secretKey []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			respondError(c, http.StatusUnauthorized, "missing token", "authorization header with a bearer token is required")
			c.Abort()
			return
		}

		userID, err := auth.ParseToken(token, kind, secretKey)
		if err != nil {
			respondServiceError(c, err)
			c.Abort()
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

// authedUserID returns the user id the auth middleware resolved.
func authedUserID(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}
