package storage

import (
	"context"
	"strings"
	"sync"
)

// UserKey is the fixed key the current user is persisted under.
const UserKey = "user"

// Storage is the local-storage equivalent: a string value per key.
type Storage interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// Memory keeps values in process memory.
type Memory struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewMemory() *Memory {
	return &Memory{items: map[string]string{}}
}

func (m *Memory) GetItem(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *Memory) SetItem(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *Memory) RemoveItem(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

type scoped struct {
	base   Storage
	prefix string
}

// Scoped namespaces every key of base under prefix, giving each client
// session its own view of a shared backend.
func Scoped(base Storage, prefix string) Storage {
	return scoped{base: base, prefix: strings.TrimSuffix(prefix, ":") + ":"}
}

func (s scoped) GetItem(ctx context.Context, key string) (string, bool, error) {
	return s.base.GetItem(ctx, s.prefix+key)
}

func (s scoped) SetItem(ctx context.Context, key, value string) error {
	return s.base.SetItem(ctx, s.prefix+key, value)
}

func (s scoped) RemoveItem(ctx context.Context, key string) error {
	return s.base.RemoveItem(ctx, s.prefix+key)
}
