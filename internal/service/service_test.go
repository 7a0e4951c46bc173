package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/educa-portal/internal/client"
	"github.com/noah-isme/educa-portal/internal/models"
	"github.com/noah-isme/educa-portal/internal/session"
	"github.com/noah-isme/educa-portal/internal/validation"
	"github.com/noah-isme/educa-portal/pkg/config"
)

const testSID = "sid-1"

// fakeAPI is an in-process EDUCA API keyed by "METHOD /path".
type fakeAPI struct {
	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	calls  []string
	bodies map[string][]byte
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{routes: map[string]http.HandlerFunc{}, bodies: map[string][]byte{}}
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.calls = append(f.calls, key)
	f.bodies[key] = body
	h, ok := f.routes[key]
	f.mu.Unlock()
	if !ok {
		envelope(w, http.StatusNotFound, "Ruta no encontrada", nil)
		return
	}
	h(w, r)
}

func (f *fakeAPI) reply(method, path string, status int, message string, data interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[method+" "+path] = func(w http.ResponseWriter, _ *http.Request) {
		envelope(w, status, message, data)
	}
}

func (f *fakeAPI) raw(method, path string, status int, body interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[method+" "+path] = func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"status": status, "body": body})
	}
}

func (f *fakeAPI) called(method, path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == method+" "+path {
			return true
		}
	}
	return false
}

func (f *fakeAPI) sent(t *testing.T, method, path string) map[string]interface{} {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(f.bodies[method+" "+path], &out))
	return out
}

func (f *fakeAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func envelope(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]interface{}{"message": message}
	if data != nil {
		body["data"] = data
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"status": status, "body": body})
}

// newDeps wires services to api and stores a session for role under testSID.
func newDeps(t *testing.T, api *fakeAPI, role models.Role) Deps {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	sessions := session.NewManager(session.NewMemoryStore(), time.Hour, zap.NewNop())
	require.NoError(t, sessions.SetSession(context.Background(), testSID, session.Record{
		AccessToken: "tok",
		Profile:     session.Profile{Name: "Ana", UserType: role},
	}))
	return Deps{
		API:       client.New(config.APIConfig{BaseURL: srv.URL, Timeout: time.Second}, zap.NewNop()),
		Sessions:  sessions,
		Validator: validation.New(validation.WithClock(func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) })),
		Logger:    zap.NewNop(),
	}
}

func intPtr(n int) *int { return &n }
