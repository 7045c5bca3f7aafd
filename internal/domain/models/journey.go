package models

import (
	"fmt"
	"strings"
	"time"
)

// Placeholders used when a saved route record lacks a nested field.
const (
	UnknownStart       = "Unknown start"
	UnknownDestination = "Unknown destination"
	MixedMode          = "Mixed"
)

// Journey is an unsaved search result.
type Journey struct {
	StartPoint    string  `json:"startPoint"`
	EndPoint      string  `json:"endPoint"`
	TransportMode string  `json:"transportMode"`
	TravelTime    float64 `json:"travelTime"`
	Cost          float64 `json:"cost"`
}

// SavedJourney is a journey persisted for a user, in the shape the views read.
type SavedJourney struct {
	ID            ID        `json:"id"`
	RouteName     string    `json:"routeName"`
	StartPoint    string    `json:"startPoint"`
	EndPoint      string    `json:"endPoint"`
	TransportMode string    `json:"transportMode"`
	TravelTime    float64   `json:"travelTime"`
	Cost          float64   `json:"cost"`
	SavedAt       time.Time `json:"savedAt"`
	UserID        ID        `json:"userId"`
}

// SaveJourneyInput is what a view passes to the save action.
type SaveJourneyInput struct {
	RouteName string  `json:"routeName"`
	Journey   Journey `json:"journey" binding:"required"`
}

// Name returns the caller-supplied route name or one derived from the endpoints.
func (in SaveJourneyInput) Name() string {
	if name := strings.TrimSpace(in.RouteName); name != "" {
		return name
	}
	return fmt.Sprintf("%s to %s", in.Journey.StartPoint, in.Journey.EndPoint)
}

// SaveRequest is the envelope posted to the composite save endpoint.
type SaveRequest struct {
	UserID    ID      `json:"user_id"`
	RouteName string  `json:"route_name"`
	RouteData Journey `json:"route_data"`
}

// RouteData is the journey payload stored inside a saved route record.
type RouteData struct {
	StartPoint    Field[string]  `json:"startPoint"`
	EndPoint      Field[string]  `json:"endPoint"`
	TransportMode Field[string]  `json:"transportMode"`
	TravelTime    Field[float64] `json:"travelTime"`
	Cost          Field[float64] `json:"cost"`
}

// RouteRecord is a saved route as returned by the composite or atomic service.
type RouteRecord struct {
	ID        ID               `json:"id"`
	UserID    ID               `json:"user_id"`
	RouteName Field[string]    `json:"route_name"`
	RouteData Field[RouteData] `json:"route_data"`
	CreatedAt Field[string]    `json:"created_at"`
}

// createdAtLayouts covers ISO timestamps and the RFC1123 form Flask emits.
var createdAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC1123,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
}

// SavedAt parses the record timestamp. ok is false when it is absent or unparsable.
func (r RouteRecord) SavedAt() (t time.Time, ok bool) {
	if !r.CreatedAt.Present {
		return time.Time{}, false
	}
	raw := strings.TrimSpace(r.CreatedAt.Value)
	for _, layout := range createdAtLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// Reshape converts a server record into the saved-journey shape, filling
// absent nested fields with the named placeholders.
func (r RouteRecord) Reshape() SavedJourney {
	data := r.RouteData.OrDefault(RouteData{})
	saved, _ := r.SavedAt()
	return SavedJourney{
		ID:            r.ID,
		RouteName:     r.RouteName.OrDefault(""),
		StartPoint:    data.StartPoint.OrDefault(UnknownStart),
		EndPoint:      data.EndPoint.OrDefault(UnknownDestination),
		TransportMode: data.TransportMode.OrDefault(MixedMode),
		TravelTime:    data.TravelTime.OrDefault(0),
		Cost:          data.Cost.OrDefault(0),
		SavedAt:       saved,
		UserID:        r.UserID,
	}
}
