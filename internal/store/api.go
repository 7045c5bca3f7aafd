package store

import (
	"context"

	"journeyplanner/internal/domain/models"
)

// UsersAPI is the subset of remote access the auth container needs.
type UsersAPI interface {
	CreateUser(ctx context.Context, in models.RegisterInput) (models.UserResult, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id models.ID) (models.UserResult, error)
}

// JourneysAPI is the subset of remote access the journeys container needs.
type JourneysAPI interface {
	SearchJourneys(ctx context.Context, start, end string) ([]models.Journey, error)
	SaveJourney(ctx context.Context, req models.SaveRequest) (models.SaveResult, error)
	ListSavedJourneys(ctx context.Context, userID models.ID) (models.ListResult, error)
	DeleteJourney(ctx context.Context, routeID models.ID) (models.StatusResult, error)
}

// Identity exposes the current user id to containers that act on behalf of a user.
type Identity interface {
	UserID() (models.ID, bool)
}

func errorPtr(msg string) *string {
	if msg == "" {
		return nil
	}
	return &msg
}
