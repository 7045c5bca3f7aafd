package store

import (
	"context"

	"journeyplanner/internal/domain/models"
)

type fakeUsers struct {
	create func(context.Context, models.RegisterInput) (models.UserResult, error)
	list   func(context.Context) ([]models.User, error)
	get    func(context.Context, models.ID) (models.UserResult, error)
	calls  int
}

func (f *fakeUsers) CreateUser(ctx context.Context, in models.RegisterInput) (models.UserResult, error) {
	f.calls++
	return f.create(ctx, in)
}

func (f *fakeUsers) ListUsers(ctx context.Context) ([]models.User, error) {
	f.calls++
	return f.list(ctx)
}

func (f *fakeUsers) GetUser(ctx context.Context, id models.ID) (models.UserResult, error) {
	f.calls++
	return f.get(ctx, id)
}

type fakeJourneys struct {
	search func(context.Context, string, string) ([]models.Journey, error)
	save   func(context.Context, models.SaveRequest) (models.SaveResult, error)
	list   func(context.Context, models.ID) (models.ListResult, error)
	del    func(context.Context, models.ID) (models.StatusResult, error)
	calls  int
}

func (f *fakeJourneys) SearchJourneys(ctx context.Context, start, end string) ([]models.Journey, error) {
	f.calls++
	return f.search(ctx, start, end)
}

func (f *fakeJourneys) SaveJourney(ctx context.Context, req models.SaveRequest) (models.SaveResult, error) {
	f.calls++
	return f.save(ctx, req)
}

func (f *fakeJourneys) ListSavedJourneys(ctx context.Context, id models.ID) (models.ListResult, error) {
	f.calls++
	return f.list(ctx, id)
}

func (f *fakeJourneys) DeleteJourney(ctx context.Context, id models.ID) (models.StatusResult, error) {
	f.calls++
	return f.del(ctx, id)
}

type staticIdentity struct {
	id models.ID
}

func (s staticIdentity) UserID() (models.ID, bool) {
	return s.id, s.id != ""
}
