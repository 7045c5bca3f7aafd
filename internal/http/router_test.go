package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	intconfig "journeyplanner/internal/config"
	"journeyplanner/internal/remote"
	"journeyplanner/internal/session"
	"journeyplanner/internal/storage"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	env := intconfig.Env{NavRevision: "base", CORSAllowedOrigins: []string{"http://localhost:5173"}}
	sessions := session.NewManager("test-secret", time.Hour, remote.NewMockBackend(), storage.NewMemory())
	return NewRouter(env, sessions)
}

func doJSON(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return out
}

func newSession(t *testing.T, r http.Handler) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/session", "", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create session: %d %s", w.Code, w.Body.String())
	}
	token, _ := decodeBody(t, w)["token"].(string)
	if token == "" {
		t.Fatalf("no token in %s", w.Body.String())
	}
	return token
}

func TestHealthAndRequestID(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health: %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing request id header")
	}
}

func TestNavigationResolve(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/navigation/resolve?path=/saved-journeys/", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"SavedJourneys"`) {
		t.Fatalf("resolve: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/navigation/resolve?path=/test-payment", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("payment view must be absent from the base table, got %d", w.Code)
	}
}

func TestSessionRequired(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/auth/state", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/api/auth/state", "bogus", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad token, got %d", w.Code)
	}
}

func TestSavedJourneysRequiresLogin(t *testing.T) {
	r := newTestRouter(t)
	token := newSession(t, r)

	w := doJSON(t, r, http.MethodGet, "/api/journeys/saved", token, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without user, got %d %s", w.Code, w.Body.String())
	}
	if decodeBody(t, w)["code"] != "not_authenticated" {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestLoginRejectsUnknownUser(t *testing.T) {
	r := newTestRouter(t)
	token := newSession(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", token, map[string]string{"name": "John Doe", "phone": "00000000"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/api/auth/state", token, nil)
	if decodeBody(t, w)["authenticated"] != false {
		t.Fatalf("user must not be authenticated: %s", w.Body.String())
	}
}

func TestJourneyLifecycle(t *testing.T) {
	r := newTestRouter(t)
	token := newSession(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", token, map[string]string{"name": "john doe", "phone": "81234567"})
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/journeys/saved", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("saved: %d %s", w.Code, w.Body.String())
	}
	if n := decodeBody(t, w)["count"]; n != float64(3) {
		t.Fatalf("expected 3 seeded journeys, got %v", n)
	}

	w = doJSON(t, r, http.MethodGet, "/api/journeys/search?start=Orchard+Road&end=Sentosa", token, nil)
	if w.Code != http.StatusOK || decodeBody(t, w)["count"] != float64(3) {
		t.Fatalf("search: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/journeys/saved", token, map[string]any{
		"journey": map[string]any{"startPoint": "Orchard Road", "endPoint": "Sentosa", "transportMode": "Bus", "travelTime": 45, "cost": 1.8},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("save: %d %s", w.Code, w.Body.String())
	}
	data, _ := decodeBody(t, w)["data"].(map[string]any)
	id, _ := data["id"].(string)
	if id == "" || data["routeName"] != "Orchard Road to Sentosa" {
		t.Fatalf("unexpected saved journey %v", data)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/journeys/saved/"+id, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: %d %s", w.Code, w.Body.String())
	}
	left, _ := decodeBody(t, w)["data"].([]any)
	if len(left) != 3 {
		t.Fatalf("expected 3 journeys after delete, got %d", len(left))
	}

	w = doJSON(t, r, http.MethodDelete, "/api/journeys/saved/does-not-exist", token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown journey, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/journeys/saved/export", token, nil)
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "application/pdf" {
		t.Fatalf("export: %d %s", w.Code, w.Header().Get("Content-Type"))
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/logout", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("logout: %d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/api/journeys/saved/export", token, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("export after logout: %d", w.Code)
	}
}

func TestRegisterValidatesPayload(t *testing.T) {
	r := newTestRouter(t)
	token := newSession(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", token, map[string]string{"name": "Alice Tan"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/register", token, map[string]string{"name": "Alice Tan", "email": "alice@example.com", "phone": "91234567"})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", w.Code, w.Body.String())
	}

	other := newSession(t, r)
	w = doJSON(t, r, http.MethodPost, "/api/auth/register", other, map[string]string{"name": "Alice T", "email": "ALICE@example.com", "phone": "91234567"})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate email, got %d %s", w.Code, w.Body.String())
	}
}
