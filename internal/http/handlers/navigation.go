package handlers

import (
	"net/http"

	"journeyplanner/internal/navigation"

	"github.com/gin-gonic/gin"
)

// GET /api/navigation
func (h *Handler) Navigation(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.Nav})
}

// GET /api/navigation/resolve?path=
func (h *Handler) ResolveNavigation(c *gin.Context) {
	path := c.Query("path")
	route, ok := navigation.Resolve(h.Nav, path)
	if !ok {
		respondError(c, http.StatusNotFound, "unknown_path", "no view for path "+path, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": route})
}
