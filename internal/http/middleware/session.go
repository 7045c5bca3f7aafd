package middleware

import (
	"context"
	"net/http"
	"strings"

	"journeyplanner/internal/app"
	"journeyplanner/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	// SessionTokenHeader carries the session token when Authorization is not used.
	SessionTokenHeader = "X-Session-Token"

	stateKey     = "app_state"
	sessionIDKey = "session_id"
)

// SessionResolver turns a session token into the client state it names.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*app.State, error)
}

// RequireSession loads the caller's client state or aborts with 401.
func RequireSession(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := sessions.Resolve(c.Request.Context(), SessionToken(c))
		if err != nil {
			utils.LogError(c.Request.Context(), "session", "resolve", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "session token missing or invalid",
				"code":       "invalid_session",
				"message":    "create a session with POST /api/session",
				"request_id": GetRequestID(c),
			})
			return
		}
		SetState(c, st)
		c.Next()
	}
}

// SessionToken reads a bearer token, falling back to the session header.
func SessionToken(c *gin.Context) string {
	if h := strings.TrimSpace(c.GetHeader("Authorization")); h != "" {
		if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
			return strings.TrimSpace(h[7:])
		}
	}
	return strings.TrimSpace(c.GetHeader(SessionTokenHeader))
}

// SetState attaches st to the request.
func SetState(c *gin.Context, st *app.State) {
	c.Set(stateKey, st)
	c.Set(sessionIDKey, st.SessionID)
}

// GetState returns the state attached by RequireSession, or nil.
func GetState(c *gin.Context) *app.State {
	if c == nil {
		return nil
	}
	if v, ok := c.Get(stateKey); ok {
		if st, ok := v.(*app.State); ok {
			return st
		}
	}
	return nil
}
