package handlers

import (
	"net/http"
	"strings"

	"journeyplanner/internal/domain"
	"journeyplanner/internal/domain/models"
	"journeyplanner/internal/http/middleware"
	"journeyplanner/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/journeys/search?start=&end=
func (h *Handler) SearchJourneys(c *gin.Context) {
	st, ok := stateOrAbort(c)
	if !ok {
		return
	}
	results, err := st.Journeys.SearchJourneys(c.Request.Context(), c.Query("start"), c.Query("end"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": results, "count": len(results)})
}

// GET /api/journeys/saved
// Remote failures come back as 200 with an empty list and the recorded error.
func (h *Handler) SavedJourneys(c *gin.Context) {
	st, ok := stateOrAbort(c)
	if !ok {
		return
	}
	if err := st.Journeys.FetchSavedJourneys(c.Request.Context()); err != nil {
		RespondDomainError(c, err)
		return
	}
	list := st.Journeys.AllSavedJourneys()
	resp := gin.H{"data": list, "count": len(list), "error": nil}
	if msg := st.Journeys.Error(); msg != "" {
		resp["error"] = msg
	}
	c.JSON(http.StatusOK, resp)
}

// POST /api/journeys/saved
func (h *Handler) SaveJourney(c *gin.Context) {
	st, ok := stateOrAbort(c)
	if !ok {
		return
	}
	var req models.SaveJourneyInput
	if !BindJSONOrError(c, &req) {
		return
	}

	saved, err := st.Journeys.SaveJourney(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "journey saved", "data": saved})
}

// DELETE /api/journeys/saved/:id
func (h *Handler) DeleteJourney(c *gin.Context) {
	st, ok := stateOrAbort(c)
	if !ok {
		return
	}
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "journey id is required"})
		return
	}

	if err := st.Journeys.RemoveJourney(c.Request.Context(), models.ID(id)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "journey removed", "data": st.Journeys.AllSavedJourneys()})
}

// GET /api/journeys/saved/export returns the saved journeys as a PDF (inline).
func (h *Handler) ExportSavedJourneys(c *gin.Context) {
	st, ok := stateOrAbort(c)
	if !ok {
		return
	}
	user := st.Auth.User()
	if user == nil {
		RespondDomainError(c, domain.ErrNotAuthenticated)
		return
	}
	if err := st.Journeys.FetchSavedJourneys(c.Request.Context()); err != nil {
		RespondDomainError(c, err)
		return
	}

	svc := services.ItineraryService{RequestID: middleware.GetRequestID(c)}
	pdfBytes, filename, err := svc.Render(*user, st.Journeys.AllSavedJourneys())
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
