package services

import (
	"bytes"
	"testing"
	"time"

	"journeyplanner/internal/domain"
	"journeyplanner/internal/domain/models"
)

func TestItineraryServiceRender(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	svc := ItineraryService{Now: func() time.Time { return fixed }}

	journeys := []models.SavedJourney{
		{ID: "1", RouteName: "Changi Airport to Marina Bay Sands", StartPoint: "Changi Airport", EndPoint: "Marina Bay Sands", TransportMode: "MRT", TravelTime: 35, Cost: 2.5},
		{ID: "2", StartPoint: models.UnknownStart, EndPoint: models.UnknownDestination, TransportMode: models.MixedMode},
	}

	pdf, filename, err := svc.Render(models.User{ID: "7", Name: "Alice Tan"}, journeys)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	if filename != "JOURNEYS_7_20240501.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestItineraryServiceRenderEmpty(t *testing.T) {
	pdf, _, err := ItineraryService{}.Render(models.User{ID: "7"}, nil)
	if err != nil || len(pdf) == 0 {
		t.Fatalf("empty itinerary should still render: %v", err)
	}
}

func TestItineraryServiceRequiresUser(t *testing.T) {
	if _, _, err := (ItineraryService{}).Render(models.User{}, nil); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
