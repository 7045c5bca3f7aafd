package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"journeyplanner/internal/domain"
	"journeyplanner/internal/domain/models"
	"journeyplanner/internal/utils"
)

// JourneysState is what the journey views render.
type JourneysState struct {
	Loading       bool                  `json:"loading"`
	SavedJourneys []models.SavedJourney `json:"savedJourneys"`
	SearchResults []models.Journey      `json:"searchResults"`
	Error         *string               `json:"error"`
}

// JourneysStore holds the saved journeys of the current user and the last
// search results.
type JourneysStore struct {
	mu       sync.RWMutex
	state    JourneysState
	api      JourneysAPI
	identity Identity
	now      func() time.Time
}

func NewJourneysStore(api JourneysAPI, identity Identity) *JourneysStore {
	return &JourneysStore{
		api:      api,
		identity: identity,
		now:      utils.NowUTC,
		state: JourneysState{
			SavedJourneys: []models.SavedJourney{},
			SearchResults: []models.Journey{},
		},
	}
}

// mutations

func (s *JourneysStore) setLoading(v bool) {
	s.mu.Lock()
	s.state.Loading = v
	s.mu.Unlock()
}

func (s *JourneysStore) setError(msg string) {
	s.mu.Lock()
	s.state.Error = errorPtr(msg)
	s.mu.Unlock()
}

func (s *JourneysStore) clearError() {
	s.mu.Lock()
	s.state.Error = nil
	s.mu.Unlock()
}

func (s *JourneysStore) setSavedJourneys(list []models.SavedJourney) {
	s.mu.Lock()
	s.state.SavedJourneys = append([]models.SavedJourney{}, list...)
	s.mu.Unlock()
}

func (s *JourneysStore) addJourney(j models.SavedJourney) {
	s.mu.Lock()
	s.state.SavedJourneys = append(s.state.SavedJourneys, j)
	s.mu.Unlock()
}

func (s *JourneysStore) removeJourney(id models.ID) {
	s.mu.Lock()
	kept := make([]models.SavedJourney, 0, len(s.state.SavedJourneys))
	for _, j := range s.state.SavedJourneys {
		if j.ID != id {
			kept = append(kept, j)
		}
	}
	s.state.SavedJourneys = kept
	s.mu.Unlock()
}

func (s *JourneysStore) setSearchResults(list []models.Journey) {
	s.mu.Lock()
	s.state.SearchResults = append([]models.Journey{}, list...)
	s.mu.Unlock()
}

func (s *JourneysStore) requireUser(ctx context.Context, action string) (models.ID, error) {
	if s.identity != nil {
		if id, ok := s.identity.UserID(); ok {
			return id, nil
		}
	}
	utils.LogError(ctx, "journeys", action, domain.ErrNotAuthenticated)
	s.setError(domain.ErrNotAuthenticated.Error())
	return "", domain.ErrNotAuthenticated
}

// actions

// FetchSavedJourneys replaces the saved sequence with the user's saved
// routes. Remote failures are recorded and leave an empty sequence; only the
// missing-user precondition is returned to the caller.
func (s *JourneysStore) FetchSavedJourneys(ctx context.Context) error {
	userID, err := s.requireUser(ctx, "fetch_saved")
	if err != nil {
		return err
	}

	s.setLoading(true)
	s.clearError()
	defer s.setLoading(false)

	res, err := s.api.ListSavedJourneys(ctx, userID)
	if err == nil && res.Code != models.CodeOK {
		err = domain.ResponseError{Op: "list_saved_journeys", Code: res.Code, Message: res.Message}
		utils.LogError(ctx, "journeys", "fetch_saved", err)
	}
	if err != nil {
		s.setError(domain.Message(err, "Failed to fetch saved journeys"))
		s.setSavedJourneys(nil)
		return nil
	}

	list := make([]models.SavedJourney, 0, len(res.Routes))
	for _, rec := range res.Routes {
		list = append(list, rec.Reshape())
	}
	s.setSavedJourneys(list)
	utils.LogEvent(utils.RequestID(ctx), "journeys", "fetch_saved", fmt.Sprintf("user_id=%s count=%d", userID, len(list)))
	return nil
}

// SaveJourney persists a journey for the current user and appends the
// server's record to the saved sequence.
func (s *JourneysStore) SaveJourney(ctx context.Context, in models.SaveJourneyInput) (*models.SavedJourney, error) {
	userID, err := s.requireUser(ctx, "save")
	if err != nil {
		return nil, err
	}

	s.setLoading(true)
	s.clearError()
	defer s.setLoading(false)

	req := models.SaveRequest{UserID: userID, RouteName: in.Name(), RouteData: in.Journey}
	res, err := s.api.SaveJourney(ctx, req)
	if err != nil {
		s.setError(domain.Message(err, "Failed to save journey"))
		return nil, err
	}
	if res.Code != models.CodeCreated || !res.Data.Present {
		rerr := domain.ResponseError{Op: "save_journey", Code: res.Code, Message: res.Message}
		utils.LogError(ctx, "journeys", "save", rerr)
		s.setError(domain.Message(rerr, "Failed to save journey"))
		return nil, rerr
	}

	saved := res.Data.Value.Reshape()
	if saved.SavedAt.IsZero() {
		saved.SavedAt = s.now()
	}
	if saved.UserID.IsZero() {
		saved.UserID = userID
	}
	if saved.RouteName == "" {
		saved.RouteName = req.RouteName
	}
	s.addJourney(saved)
	utils.LogEvent(utils.RequestID(ctx), "journeys", "save", fmt.Sprintf("route_id=%s user_id=%s", saved.ID, userID))
	return &saved, nil
}

// RemoveJourney deletes a saved journey and drops it from the sequence once
// the server confirms.
func (s *JourneysStore) RemoveJourney(ctx context.Context, id models.ID) error {
	s.setLoading(true)
	s.clearError()
	defer s.setLoading(false)

	res, err := s.api.DeleteJourney(ctx, id)
	if err != nil {
		s.setError(domain.Message(err, "Failed to remove journey"))
		return err
	}
	if res.Code != models.CodeOK {
		rerr := domain.ResponseError{Op: "delete_journey", Code: res.Code, Message: res.Message}
		utils.LogError(ctx, "journeys", "remove", rerr)
		s.setError(domain.Message(rerr, "Failed to remove journey"))
		return rerr
	}

	s.removeJourney(id)
	utils.LogEvent(utils.RequestID(ctx), "journeys", "remove", fmt.Sprintf("route_id=%s", id))
	return nil
}

// SearchJourneys queries candidate journeys between two points.
func (s *JourneysStore) SearchJourneys(ctx context.Context, start, end string) ([]models.Journey, error) {
	start, end = utils.NormalizeSpace(start), utils.NormalizeSpace(end)
	if start == "" || end == "" {
		verr := domain.ValidationError{Field: "start,end", Msg: "start and end are required"}
		s.setError(verr.Error())
		return nil, verr
	}

	s.setLoading(true)
	s.clearError()
	defer s.setLoading(false)

	list, err := s.api.SearchJourneys(ctx, start, end)
	if err != nil {
		s.setError(domain.Message(err, "Failed to search journeys"))
		s.setSearchResults(nil)
		return nil, err
	}
	s.setSearchResults(list)
	return s.SearchResults(), nil
}

// getters

func (s *JourneysStore) AllSavedJourneys() []models.SavedJourney {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.SavedJourney{}, s.state.SavedJourneys...)
}

func (s *JourneysStore) SearchResults() []models.Journey {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Journey{}, s.state.SearchResults...)
}

func (s *JourneysStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Loading
}

func (s *JourneysStore) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Error == nil {
		return ""
	}
	return *s.state.Error
}

func (s *JourneysStore) Snapshot() JourneysState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return JourneysState{
		Loading:       s.state.Loading,
		SavedJourneys: append([]models.SavedJourney{}, s.state.SavedJourneys...),
		SearchResults: append([]models.Journey{}, s.state.SearchResults...),
		Error:         s.state.Error,
	}
}
