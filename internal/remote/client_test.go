package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"journeyplanner/internal/domain"
	"journeyplanner/internal/domain/models"
)

type fakeServices struct {
	composite   *httptest.Server
	savedRoutes *httptest.Server
	users       *httptest.Server
}

func newFakeServices(t *testing.T, composite, savedRoutes, users http.HandlerFunc) (*Client, fakeServices) {
	t.Helper()
	notFound := func(w http.ResponseWriter, r *http.Request) { http.NotFound(w, r) }
	if composite == nil {
		composite = notFound
	}
	if savedRoutes == nil {
		savedRoutes = notFound
	}
	if users == nil {
		users = notFound
	}
	fs := fakeServices{
		composite:   httptest.NewServer(composite),
		savedRoutes: httptest.NewServer(savedRoutes),
		users:       httptest.NewServer(users),
	}
	t.Cleanup(func() {
		fs.composite.Close()
		fs.savedRoutes.Close()
		fs.users.Close()
	})
	c := NewClient(Options{
		CompositeBaseURL:   fs.composite.URL,
		SavedRoutesBaseURL: fs.savedRoutes.URL + "/",
		UserServiceBaseURL: fs.users.URL,
	})
	return c, fs
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return &buf
}

func TestListSavedJourneysUsesCompositeFirst(t *testing.T) {
	var fallbackHits int32
	c, _ := newFakeServices(t,
		func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/routes/user/u-1" {
				t.Errorf("unexpected composite path %s", r.URL.Path)
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"code": 200,
				"data": map[string]any{"user": map[string]any{"id": "u-1"}, "routes": []any{map[string]any{"id": "r-1"}}},
			})
		},
		func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&fallbackHits, 1)
			writeJSON(w, http.StatusOK, map[string]any{"code": 200, "data": []any{}})
		},
		nil,
	)

	res, err := c.ListSavedJourneys(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Routes) != 1 || res.Routes[0].ID != "r-1" {
		t.Fatalf("unexpected routes: %+v", res.Routes)
	}
	if atomic.LoadInt32(&fallbackHits) != 0 {
		t.Fatalf("fallback must not be called when composite succeeds")
	}
}

func TestListSavedJourneysFallsBackExactlyOnce(t *testing.T) {
	logs := captureLog(t)
	var compositeHits, fallbackHits int32
	c, _ := newFakeServices(t,
		func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&compositeHits, 1)
			writeJSON(w, http.StatusInternalServerError, map[string]any{"code": 500, "message": "composite down"})
		},
		func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&fallbackHits, 1)
			if r.URL.Path != "/saved_routes/user/u-1" {
				t.Errorf("unexpected fallback path %s", r.URL.Path)
			}
			writeJSON(w, http.StatusOK, map[string]any{"code": 200, "data": []any{map[string]any{"id": "r-9"}}})
		},
		nil,
	)

	res, err := c.ListSavedJourneys(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if atomic.LoadInt32(&compositeHits) != 1 || atomic.LoadInt32(&fallbackHits) != 1 {
		t.Fatalf("expected one call each, got composite=%d fallback=%d", compositeHits, fallbackHits)
	}
	if len(res.Routes) != 1 || res.Routes[0].ID != "r-9" {
		t.Fatalf("unexpected routes: %+v", res.Routes)
	}
	if !strings.Contains(logs.String(), "list_saved_journeys/composite") {
		t.Fatalf("composite failure was not logged: %s", logs.String())
	}
}

func TestListSavedJourneysReturnsLastErrorWhenAllFail(t *testing.T) {
	var fallbackHits int32
	c, fs := newFakeServices(t,
		func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadGateway, map[string]any{"code": 502, "message": "composite down"})
		},
		func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&fallbackHits, 1)
			writeJSON(w, http.StatusInternalServerError, map[string]any{"code": 500, "message": "mongo unavailable"})
		},
		nil,
	)

	_, err := c.ListSavedJourneys(context.Background(), "u-1")
	if err == nil {
		t.Fatalf("expected error")
	}
	if atomic.LoadInt32(&fallbackHits) != 1 {
		t.Fatalf("expected exactly one fallback call, got %d", fallbackHits)
	}
	var terr domain.TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected transport error, got %T", err)
	}
	if !strings.HasPrefix(terr.URL, fs.savedRoutes.URL) {
		t.Fatalf("expected last error from fallback, got url %s", terr.URL)
	}
	if domain.Message(err, "") != "mongo unavailable" {
		t.Fatalf("expected server message, got %q", domain.Message(err, ""))
	}
}

func TestDeleteJourneyFallsBack(t *testing.T) {
	var (
		mu      sync.Mutex
		methods []string
	)
	c, _ := newFakeServices(t,
		func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			methods = append(methods, "composite:"+r.Method)
			mu.Unlock()
			w.WriteHeader(http.StatusServiceUnavailable)
		},
		func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			methods = append(methods, "atomic:"+r.Method+":"+r.URL.Path)
			mu.Unlock()
			writeJSON(w, http.StatusOK, map[string]any{"code": 200, "message": "deleted"})
		},
		nil,
	)

	res, err := c.DeleteJourney(context.Background(), "r-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Code != models.CodeOK {
		t.Fatalf("unexpected code %d", res.Code)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(methods) != 2 || methods[0] != "composite:DELETE" || methods[1] != "atomic:DELETE:/saved_routes/r-1" {
		t.Fatalf("unexpected call sequence: %v", methods)
	}
}

func TestSearchJourneysSendsQueryAndNeverFallsBack(t *testing.T) {
	var fallbackHits int32
	c, _ := newFakeServices(t,
		func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/journeys" || r.URL.Query().Get("start") != "Orchard Road" || r.URL.Query().Get("end") != "Sentosa" {
				t.Errorf("unexpected request %s", r.URL.String())
			}
			w.WriteHeader(http.StatusInternalServerError)
		},
		func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&fallbackHits, 1)
		},
		nil,
	)

	if _, err := c.SearchJourneys(context.Background(), "Orchard Road", "Sentosa"); err == nil {
		t.Fatalf("expected error")
	}
	if atomic.LoadInt32(&fallbackHits) != 0 {
		t.Fatalf("search must not fall back")
	}
}

func TestSaveJourneyPostsEnvelope(t *testing.T) {
	c, _ := newFakeServices(t,
		func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/routes/save" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			var req models.SaveRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("decode: %v", err)
			}
			if req.UserID != "u-1" || req.RouteName != "A to B" || req.RouteData.StartPoint != "A" {
				t.Errorf("unexpected payload %+v", req)
			}
			writeJSON(w, http.StatusCreated, map[string]any{
				"code": 201,
				"data": map[string]any{"id": "srv-1", "user_id": "u-1", "route_name": "A to B", "route_data": map[string]any{"startPoint": "A", "endPoint": "B"}},
			})
		},
		nil, nil,
	)

	res, err := c.SaveJourney(context.Background(), models.SaveRequest{
		UserID:    "u-1",
		RouteName: "A to B",
		RouteData: models.Journey{StartPoint: "A", EndPoint: "B"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Code != models.CodeCreated || !res.Data.Present || res.Data.Value.ID != "srv-1" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestCreateUserKeepsServerMessage(t *testing.T) {
	c, _ := newFakeServices(t, nil, nil, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"code": 400, "message": "User should be in JSON."})
	})

	_, err := c.CreateUser(context.Background(), models.RegisterInput{Name: "Alice Tan"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsResponse(err) || !domain.IsTransport(err) {
		t.Fatalf("expected transport error wrapping response error, got %v", err)
	}
	if got := domain.Message(err, "fallback"); got != "User should be in JSON." {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestGetUserAcceptsBareObject(t *testing.T) {
	c, _ := newFakeServices(t, nil, nil, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/42" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": 42, "name": "Alice Tan", "phone": "91234567"})
	})

	res, err := c.GetUser(context.Background(), "42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Code != models.CodeOK || res.Data.Value.ID != "42" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestListUsersBareArray(t *testing.T) {
	c, _ := newFakeServices(t, nil, nil, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []any{
			map[string]any{"id": 1, "name": "John Doe", "email": "john@example.com"},
			map[string]any{"id": 2, "name": "Jane Doe", "email": "jane@example.com"},
		})
	})

	users, err := c.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 || users[1].Name != "Jane Doe" {
		t.Fatalf("unexpected users %+v", users)
	}
}
