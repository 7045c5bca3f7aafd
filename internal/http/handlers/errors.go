package handlers

import (
	"errors"
	"net/http"

	"journeyplanner/internal/domain"
	"journeyplanner/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	resp := ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}
	reqID := middleware.GetRequestID(c)
	if reqID != "" {
		c.JSON(status, gin.H{
			"error":      resp.Error,
			"code":       resp.Code,
			"details":    resp.Details,
			"request_id": reqID,
			"message":    message,
		})
		return
	}
	c.JSON(status, resp)
}

// RespondDomainError maps domain errors to HTTP responses. Remote failures
// keep the server-supplied message.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsPrecondition(err):
		respondError(c, http.StatusUnauthorized, "not_authenticated", err.Error(), nil)
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials", nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	case domain.IsTransport(err):
		var terr domain.TransportError
		errors.As(err, &terr)
		status := http.StatusBadGateway
		if terr.Status >= 400 && terr.Status < 500 {
			status = terr.Status
		}
		respondError(c, status, "upstream_error", domain.Message(err, "upstream service unavailable"), gin.H{"op": terr.Op, "status": terr.Status})
	case domain.IsResponse(err):
		var rerr domain.ResponseError
		errors.As(err, &rerr)
		status := http.StatusBadGateway
		if rerr.Code >= 400 && rerr.Code < 600 {
			status = rerr.Code
		}
		respondError(c, status, "upstream_rejected", domain.Message(err, "request rejected"), gin.H{"op": rerr.Op, "code": rerr.Code})
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "internal error", nil)
	}
}
