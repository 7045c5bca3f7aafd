package app

import (
	"context"
	"sync"

	"journeyplanner/internal/storage"
	"journeyplanner/internal/store"
)

// Backend is everything the containers call remotely. Both remote.Client
// and remote.MockBackend satisfy it.
type Backend interface {
	store.UsersAPI
	store.JourneysAPI
}

// State is the client state of one session: the auth container and the
// journeys container reading the current user from it.
type State struct {
	SessionID string
	Auth      *store.AuthStore
	Journeys  *store.JourneysStore

	restore sync.Once
}

// New wires the containers for sessionID over a per-session view of base.
func New(sessionID string, backend Backend, base storage.Storage) *State {
	st := storage.Scoped(base, "session:"+sessionID)
	auth := store.NewAuthStore(backend, st)
	return &State{
		SessionID: sessionID,
		Auth:      auth,
		Journeys:  store.NewJourneysStore(backend, auth),
	}
}

// Restore runs CheckAuthState once per State. Concurrent callers wait for
// the first run to finish.
func (s *State) Restore(ctx context.Context) {
	s.restore.Do(func() {
		s.Auth.CheckAuthState(ctx)
	})
}
