package config

import (
	"testing"
	"time"
)

func TestLoadEnvDefaults(t *testing.T) {
	for _, k := range []string{"APP_ADDR", "API_BASE_URL", "SAVED_ROUTES_URL", "USER_SERVICE_URL", "HTTP_TIMEOUT", "STATE_BACKEND", "OFFLINE_MODE", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(k, "")
	}

	env := LoadEnv()
	if env.AppAddr != ":8080" {
		t.Fatalf("unexpected addr %q", env.AppAddr)
	}
	if env.CompositeBaseURL != "http://localhost:5004" || env.SavedRoutesBaseURL != "http://localhost:5006" {
		t.Fatalf("unexpected base urls: %q %q", env.CompositeBaseURL, env.SavedRoutesBaseURL)
	}
	if env.HTTPTimeout != 30*time.Second {
		t.Fatalf("unexpected timeout %v", env.HTTPTimeout)
	}
	if env.StateBackend != "file" || env.OfflineMode {
		t.Fatalf("unexpected state defaults: %q offline=%v", env.StateBackend, env.OfflineMode)
	}
	if len(env.CORSAllowedOrigins) == 0 {
		t.Fatalf("expected default CORS origins")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://composite.example.com/")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("OFFLINE_MODE", "true")
	t.Setenv("STATE_BACKEND", "MySQL")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	env := LoadEnv()
	if env.CompositeBaseURL != "https://composite.example.com" {
		t.Fatalf("trailing slash not trimmed: %q", env.CompositeBaseURL)
	}
	if env.HTTPTimeout != 5*time.Second || !env.OfflineMode || env.StateBackend != "mysql" {
		t.Fatalf("overrides not applied: %+v", env)
	}
	if len(env.CORSAllowedOrigins) != 2 {
		t.Fatalf("unexpected origins: %v", env.CORSAllowedOrigins)
	}
}
