package handlers

import (
	"net/http"
	"time"

	"journeyplanner/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// POST /api/session
func (h *Handler) CreateSession(c *gin.Context) {
	issued, err := h.Sessions.Create(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to create session", err)
		return
	}
	middleware.SetState(c, issued.State)
	c.JSON(http.StatusCreated, gin.H{
		"token":      issued.Token,
		"session_id": issued.State.SessionID,
		"expires_at": issued.ExpiresAt.UTC().Format(time.RFC3339),
	})
}
