package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"journeyplanner/internal/domain"
	"journeyplanner/internal/domain/models"
	"journeyplanner/internal/storage"
	"journeyplanner/internal/utils"
)

// AuthState is what the auth views render.
type AuthState struct {
	Loading bool         `json:"loading"`
	User    *models.User `json:"user"`
	Error   *string      `json:"error"`
}

// AuthStore holds the current user. Its mutations are only called from its
// own actions; every user write goes through to storage.
type AuthStore struct {
	mu      sync.RWMutex
	state   AuthState
	api     UsersAPI
	storage storage.Storage
}

func NewAuthStore(api UsersAPI, st storage.Storage) *AuthStore {
	return &AuthStore{api: api, storage: st}
}

// mutations

func (s *AuthStore) setLoading(v bool) {
	s.mu.Lock()
	s.state.Loading = v
	s.mu.Unlock()
}

func (s *AuthStore) setError(msg string) {
	s.mu.Lock()
	s.state.Error = errorPtr(msg)
	s.mu.Unlock()
}

func (s *AuthStore) clearError() {
	s.mu.Lock()
	s.state.Error = nil
	s.mu.Unlock()
}

func (s *AuthStore) setUser(ctx context.Context, u *models.User) {
	s.mu.Lock()
	if u == nil {
		s.state.User = nil
	} else {
		cp := *u
		s.state.User = &cp
	}
	s.mu.Unlock()

	if err := s.persistUser(ctx, u); err != nil {
		utils.LogError(ctx, "auth", "persist_user", domain.StorageError{Key: storage.UserKey, Err: err})
	}
}

func (s *AuthStore) persistUser(ctx context.Context, u *models.User) error {
	if s.storage == nil {
		return nil
	}
	if u == nil {
		return s.storage.RemoveItem(ctx, storage.UserKey)
	}
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return s.storage.SetItem(ctx, storage.UserKey, string(b))
}

// actions

// Register creates the user remotely and signs them in on a 201 response.
func (s *AuthStore) Register(ctx context.Context, in models.RegisterInput) (*models.User, error) {
	s.setLoading(true)
	s.clearError()
	defer s.setLoading(false)

	res, err := s.api.CreateUser(ctx, in)
	if err != nil {
		s.setError(domain.Message(err, "Registration failed"))
		return nil, err
	}
	if res.Code != models.CodeCreated || !res.Data.Present {
		rerr := domain.ResponseError{Op: "register", Code: res.Code, Message: res.Message}
		if rerr.Message == "" {
			rerr.Message = "Registration failed"
		}
		utils.LogError(ctx, "auth", "register", rerr)
		s.setError(rerr.Message)
		return nil, rerr
	}

	u := res.Data.Value
	s.setUser(ctx, &u)
	utils.LogEvent(utils.RequestID(ctx), "auth", "register", fmt.Sprintf("user_id=%s", u.ID))
	return &u, nil
}

// Login lists all users and signs in the first whose full name matches
// case-insensitively and whose phone matches exactly.
func (s *AuthStore) Login(ctx context.Context, in models.LoginInput) (*models.User, error) {
	s.setLoading(true)
	s.clearError()
	defer s.setLoading(false)

	users, err := s.api.ListUsers(ctx)
	if err != nil {
		s.setError(domain.Message(err, "Login failed"))
		return nil, err
	}

	for _, u := range users {
		if u.Matches(in) {
			s.setUser(ctx, &u)
			utils.LogEvent(utils.RequestID(ctx), "auth", "login", fmt.Sprintf("user_id=%s", u.ID))
			return &u, nil
		}
	}

	utils.LogError(ctx, "auth", "login", domain.ErrInvalidCredentials)
	s.setError("Invalid credentials")
	return nil, domain.ErrInvalidCredentials
}

// Logout clears the current user and its persisted copy.
func (s *AuthStore) Logout(ctx context.Context) {
	s.setUser(ctx, nil)
	utils.LogEvent(utils.RequestID(ctx), "auth", "logout", "user cleared")
}

// CheckAuthState restores the persisted user, applies it optimistically and
// then verifies it against the user service. A value that cannot be parsed
// is removed from storage and the user stays nil.
func (s *AuthStore) CheckAuthState(ctx context.Context) {
	if s.storage == nil {
		return
	}
	raw, ok, err := s.storage.GetItem(ctx, storage.UserKey)
	if err != nil {
		utils.LogError(ctx, "auth", "check_auth_state", domain.StorageError{Key: storage.UserKey, Err: err})
		return
	}
	if !ok {
		return
	}

	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil || u.ID.IsZero() {
		if err == nil {
			err = fmt.Errorf("persisted user has no id")
		}
		utils.LogError(ctx, "auth", "check_auth_state", domain.StorageError{Key: storage.UserKey, Err: err})
		if rmErr := s.storage.RemoveItem(ctx, storage.UserKey); rmErr != nil {
			utils.LogError(ctx, "auth", "check_auth_state", domain.StorageError{Key: storage.UserKey, Err: rmErr})
		}
		return
	}

	s.setUser(ctx, &u)

	res, err := s.api.GetUser(ctx, u.ID)
	if err != nil {
		s.setUser(ctx, nil)
		return
	}
	if res.Code != models.CodeOK || !res.Data.Present {
		utils.LogError(ctx, "auth", "check_auth_state", domain.NotFoundError{Resource: "user " + u.ID.String()})
		s.setUser(ctx, nil)
		return
	}

	fresh := res.Data.Value
	if fresh.ID.IsZero() {
		fresh.ID = u.ID
	}
	s.setUser(ctx, &fresh)
}

// getters

func (s *AuthStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.User != nil
}

func (s *AuthStore) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return nil
	}
	cp := *s.state.User
	return &cp
}

// UserID implements Identity.
func (s *AuthStore) UserID() (models.ID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil || s.state.User.ID.IsZero() {
		return "", false
	}
	return s.state.User.ID, true
}

func (s *AuthStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Loading
}

func (s *AuthStore) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Error == nil {
		return ""
	}
	return *s.state.Error
}

// Snapshot returns a copy of the whole state.
func (s *AuthStore) Snapshot() AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := AuthState{Loading: s.state.Loading, Error: s.state.Error}
	if s.state.User != nil {
		cp := *s.state.User
		out.User = &cp
	}
	return out
}
