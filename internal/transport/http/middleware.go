package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxHostIDKey = "host_id"
	ctxTokenKey  = "bearer_token"
)

type authenticator interface {
	Authenticate(ctx context.Context, tokenString string) (uuid.UUID, error)
}

// RequireAuth resolves the acting host from the Authorization header and
// stores it in the request context. Handlers read it with currentHostID;
// ambient auth state never reaches the services.
func RequireAuth(auth authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortError(c, http.StatusUnauthorized, "Authentication required")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if tokenString == "" {
			abortError(c, http.StatusUnauthorized, "Authentication required")
			return
		}

		hostID, err := auth.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			abortError(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(ctxHostIDKey, hostID)
		c.Set(ctxTokenKey, tokenString)
		c.Next()
	}
}

func currentHostID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ctxHostIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func currentToken(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxTokenKey)
	if !ok {
		return "", false
	}
	token, ok := v.(string)
	return token, ok
}

// RequestTimeout bounds every request that arrives without a deadline of
// its own, mirroring the booking store's expectation that lock scopes are
// never held indefinitely.
func RequestTimeout(timeout time.Duration) gin.HandlerFunc {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return func(c *gin.Context) {
		if _, ok := c.Request.Context().Deadline(); ok {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
