package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/outbox"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/settings"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/storage"
)

var testNow = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

type recordingEmitter struct {
	mu     sync.Mutex
	events []outbox.Event
}

func (e *recordingEmitter) Insert(_ context.Context, evt outbox.Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, evt)
	return nil
}

func (e *recordingEmitter) types() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.events))
	for _, evt := range e.events {
		out = append(out, evt.EventType)
	}
	return out
}

type testEnv struct {
	t      *testing.T
	stores *storage.Collections
	events *recordingEmitter
	router http.Handler
}

func newTestEnv(t *testing.T, configure ...func(*Config)) *testEnv {
	t.Helper()
	env := &testEnv{t: t, stores: storage.OpenMemory(), events: &recordingEmitter{}}
	cfg := Config{
		Logger:   slog.New(slog.NewJSONHandler(io.Discard, nil)),
		Stores:   env.stores,
		Settings: settings.Default(),
		Auth:     AuthConfig{Secret: "test-secret", TTL: 24 * time.Hour},
		Events:   env.events,
		Now:      func() time.Time { return testNow },
	}
	for _, fn := range configure {
		fn(&cfg)
	}
	env.router = New(cfg).Router()
	return env
}

func (e *testEnv) do(method, path string, body any, header ...string) *httptest.ResponseRecorder {
	e.t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(e.t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) create(path string, body any) map[string]any {
	e.t.Helper()
	rec := e.do(http.MethodPost, path, body)
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())
	return object(e.t, rec)
}

func object(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func list(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func errorFields(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
		Errors  []struct {
			Field string `json:"field"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Validation error", body.Message)
	fields := make([]string, 0, len(body.Errors))
	for _, e := range body.Errors {
		fields = append(fields, e.Field)
	}
	return fields
}

func TestUnknownRouteIsJSON(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodGet, "/api/nothing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", object(t, rec)["message"])

	rec = env.do(http.MethodPatch, "/api/employee/x", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestInvalidJSONBody(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodPost, "/api/products", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid JSON body", object(t, rec)["message"])
}

func TestGetAndDeleteMissing(t *testing.T) {
	env := newTestEnv(t)
	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		rec := env.do(method, "/api/employee/missing", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Employee not found", object(t, rec)["message"])
	}
	rec := env.do(http.MethodPut, "/api/utility-expenses/missing", map[string]any{"amount": 10})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Utility expense not found", object(t, rec)["message"])
}

func TestEmployeeLifecycle(t *testing.T) {
	env := newTestEnv(t)
	created := env.create("/api/employee", map[string]any{
		"name":      "Nimal Perera",
		"email":     "Nimal@Example.com",
		"phone":     "+94771234567",
		"address":   "12 Galle Road",
		"nicNumber": "199012345678",
	})
	id := created["id"].(string)
	assert.Equal(t, "nimal@example.com", created["email"])
	assert.NotEmpty(t, created["createdAt"])

	rec := env.do(http.MethodPut, "/api/employee/"+id, map[string]any{"phone": "+94770000000"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := object(t, rec)
	assert.Equal(t, "+94770000000", updated["phone"])
	assert.Equal(t, "Nimal Perera", updated["name"])

	rec = env.do(http.MethodPost, "/api/employee", map[string]any{
		"name": "Other", "email": "nimal@example.com", "phone": "+94771234500",
		"address": "Somewhere 1", "nicNumber": "199099999999",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(http.MethodGet, "/api/employee", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, list(t, rec), 1)

	rec = env.do(http.MethodDelete, "/api/employee/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Employee deleted successfully", object(t, rec)["message"])
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/api/employee/"+id, nil).Code)
}

func TestValidationCollectsEveryField(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodPost, "/api/employee", map[string]any{
		"name":  "N",
		"email": "not-an-email",
		"phone": 771234567,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.ElementsMatch(t, []string{"name", "email", "phone", "address", "nicNumber"}, errorFields(t, rec))
}

func TestEmptyListIsArray(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodGet, "/api/service-types/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())
}

func TestServiceTypesMounted(t *testing.T) {
	env := newTestEnv(t)
	created := env.create("/api/service-types", map[string]any{"name": "Body wash", "price": 1200})
	rec := env.do(http.MethodGet, "/api/service-types/"+created["id"].(string), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Body wash", object(t, rec)["name"])
}

func TestRouteTemplate(t *testing.T) {
	env := newTestEnv(t)
	var seen string
	env.router = New(Config{
		Logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
		Stores: env.stores,
	}).Router(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = RouteTemplate(r)
			next.ServeHTTP(w, r)
		})
	})
	env.do(http.MethodGet, "/api/products/abc", nil)
	assert.Equal(t, "/api/products/{id}", seen)
}
