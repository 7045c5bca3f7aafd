package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Env struct {
	AppAddr string
	GinMode string

	// Composite service and the atomic services used directly.
	CompositeBaseURL   string
	SavedRoutesBaseURL string
	UserServiceBaseURL string
	HTTPTimeout        time.Duration
	OfflineMode        bool

	SessionSecret string
	SessionTTL    time.Duration

	// StateBackend selects where the current user is persisted: memory, file or mysql.
	StateBackend string
	StateDir     string
	MySQLDSN     string

	NavRevision        string
	CORSAllowedOrigins []string
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	return Env{
		AppAddr:            appAddr,
		GinMode:            strings.TrimSpace(os.Getenv("GIN_MODE")),
		CompositeBaseURL:   baseURL("API_BASE_URL", "http://localhost:5004"),
		SavedRoutesBaseURL: baseURL("SAVED_ROUTES_URL", "http://localhost:5006"),
		UserServiceBaseURL: baseURL("USER_SERVICE_URL", "http://localhost:5001"),
		HTTPTimeout:        envDuration("HTTP_TIMEOUT", 30*time.Second),
		OfflineMode:        envBool("OFFLINE_MODE", false),
		SessionSecret:      envString("SESSION_SECRET", "change-me-session-secret"),
		SessionTTL:         envDuration("SESSION_TTL", 24*time.Hour),
		StateBackend:       strings.ToLower(envString("STATE_BACKEND", "file")),
		StateDir:           envString("STATE_DIR", ".journeyplanner"),
		MySQLDSN:           envString("MYSQL_DSN", ""),
		NavRevision:        strings.ToLower(envString("NAV_REVISION", "base")),
		CORSAllowedOrigins: envList("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:8081",
			"http://127.0.0.1:8081",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}),
	}
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func baseURL(key, def string) string {
	return strings.TrimRight(envString(key, def), "/")
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envList(key string, def []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	out := []string{}
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
