package handlers

import (
	"journeyplanner/internal/navigation"
	"journeyplanner/internal/session"
)

// Handler serves the API on top of the session registry.
type Handler struct {
	Sessions *session.Manager
	Nav      []navigation.Route
}

func New(sessions *session.Manager, nav []navigation.Route) *Handler {
	return &Handler{Sessions: sessions, Nav: nav}
}
