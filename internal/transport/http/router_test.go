package httptransport_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ErlanBelekov/task-tracker/internal/infrastructure/memory"
	httptransport "github.com/ErlanBelekov/task-tracker/internal/transport/http"
	"github.com/ErlanBelekov/task-tracker/internal/transport/http/handler"
	"github.com/ErlanBelekov/task-tracker/internal/transport/http/middleware"
	"github.com/ErlanBelekov/task-tracker/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testKey = "router-test-secret-at-least-32-chars"

func newServer(limiter middleware.Limiter) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	users := memory.NewUserRepository()
	tasks := memory.NewTaskRepository()

	auth := usecase.NewAuthUsecase(users, []byte(testKey), time.Hour)
	h := httptransport.Handlers{
		Auth:  handler.NewAuthHandler(auth, logger),
		Tasks: handler.NewTaskHandler(usecase.NewTaskUsecase(tasks), logger),
		Stats: handler.NewStatsHandler(usecase.NewStatsUsecase(tasks, time.UTC), logger),
	}

	router := httptransport.NewRouter(logger, h, auth, limiter)
	return httptransport.WithCORS(router, []string{"https://app.example"})
}

type alwaysDeny struct{}

func (alwaysDeny) Allow(context.Context, string) (bool, time.Duration, error) {
	return false, time.Second, nil
}

func request(srv http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	srv.ServeHTTP(w, req)
	return w
}

func TestRouter_EndToEnd(t *testing.T) {
	srv := newServer(nil)

	w := request(srv, http.MethodPost, "/api/auth/register", "", `{"email":"alice@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = request(srv, http.MethodPost, "/api/auth/login", "", `{"email":"alice@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := extract(t, w.Body.String(), "token")

	w = request(srv, http.MethodPost, "/api/tasks", token, `{"title":"first"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = request(srv, http.MethodGet, "/api/tasks/stats", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"pending":1`)

	w = request(srv, http.MethodGet, "/api/auth/me", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice@x.com")

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestRouter_ProtectedRoutesNeedToken(t *testing.T) {
	srv := newServer(nil)

	for _, path := range []string{"/api/tasks", "/api/tasks/stats", "/api/tasks/abc", "/api/auth/me"} {
		w := request(srv, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestRouter_LoginIsRateLimited(t *testing.T) {
	srv := newServer(alwaysDeny{})

	w := request(srv, http.MethodPost, "/api/auth/login", "", `{"email":"alice@x.com","password":"secret1"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestWithCORS_Preflight(t *testing.T) {
	srv := newServer(nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/tasks", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/tasks", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func extract(t *testing.T, body, key string) string {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &m))
	s, ok := m[key].(string)
	require.True(t, ok, "missing %q in %s", key, body)
	return s
}

func TestRouter_RegisterNormalizesPaddedEmail(t *testing.T) {
	srv := newServer(nil)

	w := request(srv, http.MethodPost, "/api/auth/register", "", `{"email":" Bob@X.com ","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = request(srv, http.MethodPost, "/api/auth/login", "", `{"email":"bob@x.com","password":"secret1"}`)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
