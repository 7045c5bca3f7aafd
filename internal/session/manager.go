package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"journeyplanner/internal/app"
	"journeyplanner/internal/storage"
	"journeyplanner/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidSession is returned for a missing, malformed, expired or
// wrongly signed session token.
var ErrInvalidSession = errors.New("invalid session")

// Claims is the payload of a session token.
type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Issued is a freshly created session.
type Issued struct {
	State     *app.State
	Token     string
	ExpiresAt time.Time
}

type entry struct {
	state    *app.State
	lastSeen time.Time
}

// Manager maps signed session tokens to per-session client state. State
// lost on restart is rebuilt from storage on first use.
type Manager struct {
	secret  []byte
	ttl     time.Duration
	backend app.Backend
	storage storage.Storage
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
}

func NewManager(secret string, ttl time.Duration, backend app.Backend, base storage.Storage) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{
		secret:   []byte(secret),
		ttl:      ttl,
		backend:  backend,
		storage:  base,
		now:      time.Now,
		sessions: map[string]*entry{},
	}
}

// Create starts a new session and signs a token for it.
func (m *Manager) Create(ctx context.Context) (Issued, error) {
	sid := uuid.NewString()
	token, exp, err := m.sign(sid)
	if err != nil {
		return Issued{}, err
	}

	st := m.lookup(sid)
	st.Restore(ctx)
	utils.LogEvent(utils.RequestID(ctx), "session", "create", "sid="+sid)
	return Issued{State: st, Token: token, ExpiresAt: exp}, nil
}

// Resolve verifies token and returns the state of its session.
func (m *Manager) Resolve(ctx context.Context, token string) (*app.State, error) {
	sid, err := m.parse(token)
	if err != nil {
		return nil, err
	}
	st := m.lookup(sid)
	st.Restore(ctx)
	return st, nil
}

// Prune drops sessions idle for longer than the token lifetime and returns
// how many were removed. Their persisted user stays in storage.
func (m *Manager) Prune() int {
	cutoff := m.now().Add(-m.ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for sid, e := range m.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(m.sessions, sid)
			n++
		}
	}
	return n
}

// Len reports the number of sessions held in memory.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) lookup(sid string) *app.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[sid]
	if !ok {
		e = &entry{state: app.New(sid, m.backend, m.storage)}
		m.sessions[sid] = e
	}
	e.lastSeen = m.now()
	return e.state
}

func (m *Manager) sign(sid string) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.ttl)
	claims := Claims{
		SessionID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return signed, exp, nil
}

func (m *Manager) parse(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrInvalidSession
	}
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if _, err := uuid.Parse(claims.SessionID); err != nil {
		return "", fmt.Errorf("%w: bad sid", ErrInvalidSession)
	}
	return claims.SessionID, nil
}
