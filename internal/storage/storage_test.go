package storage

import (
	"context"
	"testing"

	"github.com/spf13/afero"
)

func exerciseStorage(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := s.GetItem(ctx, UserKey); err != nil || ok {
		t.Fatalf("expected missing key, ok=%v err=%v", ok, err)
	}
	if err := s.SetItem(ctx, UserKey, `{"id":"1"}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.SetItem(ctx, UserKey, `{"id":"2"}`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := s.GetItem(ctx, UserKey)
	if err != nil || !ok || v != `{"id":"2"}` {
		t.Fatalf("unexpected get: %q ok=%v err=%v", v, ok, err)
	}
	if err := s.RemoveItem(ctx, UserKey); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.RemoveItem(ctx, UserKey); err != nil {
		t.Fatalf("removing a missing key must not fail: %v", err)
	}
	if _, ok, _ := s.GetItem(ctx, UserKey); ok {
		t.Fatalf("expected key removed")
	}
}

func TestMemoryStorage(t *testing.T) {
	exerciseStorage(t, NewMemory())
}

func TestFileStorage(t *testing.T) {
	f, err := NewFile(afero.NewMemMapFs(), "/state")
	if err != nil {
		t.Fatalf("new file storage: %v", err)
	}
	exerciseStorage(t, f)
}

func TestScopedStorageIsolatesPrefixes(t *testing.T) {
	ctx := context.Background()
	base := NewMemory()
	a := Scoped(base, "session-a")
	b := Scoped(base, "session-b:")

	if err := a.SetItem(ctx, UserKey, "alice"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok, _ := b.GetItem(ctx, UserKey); ok {
		t.Fatalf("scopes leaked into each other")
	}
	if v, ok, _ := base.GetItem(ctx, "session-a:user"); !ok || v != "alice" {
		t.Fatalf("unexpected base key layout: %q ok=%v", v, ok)
	}
	exerciseStorage(t, b)
}
