package handlers

import (
	"net/http"

	"journeyplanner/internal/app"
	"journeyplanner/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// RespondError sends standard error payload with request_id included.
// Keeps backward compatibility by always providing "message".
func RespondError(c *gin.Context, status int, message string, err error) {
	reqID := middleware.GetRequestID(c)
	payload := gin.H{
		"message":    message,
		"request_id": reqID,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		RespondError(c, http.StatusBadRequest, "request body is empty", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

// stateOrAbort returns the session state or writes a 500 when the route was
// mounted without the session middleware.
func stateOrAbort(c *gin.Context) (*app.State, bool) {
	st := middleware.GetState(c)
	if st == nil {
		RespondError(c, http.StatusInternalServerError, "session state unavailable", nil)
		return nil, false
	}
	return st, true
}
