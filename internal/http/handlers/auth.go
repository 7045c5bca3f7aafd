package handlers

import (
	"net/http"

	"journeyplanner/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// POST /api/auth/register
func (h *Handler) Register(c *gin.Context) {
	st, ok := stateOrAbort(c)
	if !ok {
		return
	}
	var req models.RegisterInput
	if !BindJSONOrError(c, &req) {
		return
	}

	user, err := st.Auth.Register(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "registration successful", "user": user})
}

// POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	st, ok := stateOrAbort(c)
	if !ok {
		return
	}
	var req models.LoginInput
	if !BindJSONOrError(c, &req) {
		return
	}

	user, err := st.Auth.Login(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// POST /api/auth/logout
func (h *Handler) Logout(c *gin.Context) {
	st, ok := stateOrAbort(c)
	if !ok {
		return
	}
	st.Auth.Logout(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "logged out", "state": st.Auth.Snapshot()})
}

// GET /api/auth/state
func (h *Handler) AuthState(c *gin.Context) {
	st, ok := stateOrAbort(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authenticated": st.Auth.IsAuthenticated(),
		"state":         st.Auth.Snapshot(),
	})
}
