package remote

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"journeyplanner/internal/domain/models"
)

// MockBackend serves every remote operation from memory. It backs
// OFFLINE_MODE so the views can be exercised without the microservices.
type MockBackend struct {
	mu     sync.Mutex
	now    func() time.Time
	lastID int64
	users  []models.User
	routes []models.RouteRecord
}

// NewMockBackend returns a backend seeded with sample users and journeys.
// Seeded journeys belong to the first sample user.
func NewMockBackend() *MockBackend {
	m := &MockBackend{
		now: time.Now,
		users: []models.User{
			{ID: "1", Name: "John Doe", Email: "john@example.com", Phone: "81234567"},
			{ID: "2", Name: "Jane Doe", Email: "jane@example.com", Phone: "87654321"},
		},
	}
	seed := []struct {
		id        string
		journey   models.Journey
		createdAt string
	}{
		{"1", models.Journey{StartPoint: "Changi Airport", EndPoint: "Marina Bay Sands", TransportMode: "MRT", TravelTime: 35, Cost: 2.50}, "2023-03-01T08:30:00Z"},
		{"2", models.Journey{StartPoint: "Orchard Road", EndPoint: "Sentosa", TransportMode: "Bus", TravelTime: 45, Cost: 1.80}, "2023-02-15T14:20:00Z"},
		{"3", models.Journey{StartPoint: "Jurong East", EndPoint: "Changi Business Park", TransportMode: "Taxi", TravelTime: 30, Cost: 22.50}, "2023-02-28T18:45:00Z"},
	}
	for _, s := range seed {
		m.routes = append(m.routes, record(models.ID(s.id), "1", s.journey.StartPoint+" to "+s.journey.EndPoint, s.journey, s.createdAt))
	}
	return m
}

func record(id, userID models.ID, name string, j models.Journey, createdAt string) models.RouteRecord {
	return models.RouteRecord{
		ID:        id,
		UserID:    userID,
		RouteName: models.Some(name),
		RouteData: models.Some(models.RouteData{
			StartPoint:    models.Some(j.StartPoint),
			EndPoint:      models.Some(j.EndPoint),
			TransportMode: models.Some(j.TransportMode),
			TravelTime:    models.Some(j.TravelTime),
			Cost:          models.Some(j.Cost),
		}),
		CreatedAt: models.Some(createdAt),
	}
}

// nextID derives an id from the local clock, bumped when two saves share a millisecond.
func (m *MockBackend) nextID() models.ID {
	id := m.now().UnixMilli()
	if id <= m.lastID {
		id = m.lastID + 1
	}
	m.lastID = id
	return models.ID(strconv.FormatInt(id, 10))
}

func (m *MockBackend) SearchJourneys(_ context.Context, start, end string) ([]models.Journey, error) {
	modes := []struct {
		mode string
		time float64
		cost float64
	}{
		{"MRT", 35, 2.10},
		{"Bus", 50, 1.60},
		{"Taxi", 25, 18.40},
	}
	out := make([]models.Journey, 0, len(modes))
	for _, md := range modes {
		out = append(out, models.Journey{
			StartPoint:    start,
			EndPoint:      end,
			TransportMode: md.mode,
			TravelTime:    md.time,
			Cost:          md.cost,
		})
	}
	return out, nil
}

func (m *MockBackend) SaveJourney(_ context.Context, req models.SaveRequest) (models.SaveResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec := record(m.nextID(), req.UserID, req.RouteName, req.RouteData, m.now().UTC().Format(time.RFC3339))
	m.routes = append(m.routes, rec)
	return models.SaveResult{Code: models.CodeCreated, Message: "Route saved successfully", Data: models.Some(rec)}, nil
}

func (m *MockBackend) ListSavedJourneys(_ context.Context, userID models.ID) (models.ListResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []models.RouteRecord{}
	for _, r := range m.routes {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return models.ListResult{Code: models.CodeOK, Routes: out}, nil
}

func (m *MockBackend) DeleteJourney(_ context.Context, routeID models.ID) (models.StatusResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, r := range m.routes {
		if r.ID == routeID {
			m.routes = append(m.routes[:i], m.routes[i+1:]...)
			return models.StatusResult{Code: models.CodeOK, Message: fmt.Sprintf("Route with ID %s deleted successfully.", routeID)}, nil
		}
	}
	return models.StatusResult{Code: 404, Message: fmt.Sprintf("Route with ID %s not found.", routeID)}, nil
}

func (m *MockBackend) CreateUser(_ context.Context, in models.RegisterInput) (models.UserResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if strings.EqualFold(u.Email, in.Email) {
			return models.UserResult{Code: 409, Message: "Email already registered."}, nil
		}
	}
	u := models.User{ID: m.nextID(), Name: in.Name, Email: in.Email, Phone: in.Phone}
	m.users = append(m.users, u)
	return models.UserResult{Code: models.CodeCreated, Message: "Simulated success in user creation.", Data: models.Some(u)}, nil
}

func (m *MockBackend) ListUsers(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.User, len(m.users))
	copy(out, m.users)
	return out, nil
}

func (m *MockBackend) GetUser(_ context.Context, id models.ID) (models.UserResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.ID == id {
			return models.UserResult{Code: models.CodeOK, Data: models.Some(u)}, nil
		}
	}
	return models.UserResult{Code: 404, Message: "User not found."}, nil
}
