package middleware_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ErlanBelekov/task-tracker/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type countingLimiter struct {
	limit int
	hits  map[string]int
	err   error
}

func (l *countingLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	if l.err != nil {
		return false, 0, l.err
	}
	l.hits[key]++
	if l.hits[key] > l.limit {
		return false, 1500 * time.Millisecond, nil
	}
	return true, 0, nil
}

func limitedEngine(l middleware.Limiter) *gin.Engine {
	r := gin.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r.POST("/login", middleware.RateLimit(l, logger), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func post(engine *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	return w
}

func TestRateLimit_BlocksOverLimit(t *testing.T) {
	engine := limitedEngine(&countingLimiter{limit: 2, hits: map[string]int{}})

	assert.Equal(t, http.StatusOK, post(engine).Code)
	assert.Equal(t, http.StatusOK, post(engine).Code)

	w := post(engine)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2", w.Header().Get("Retry-After"))
}

func TestRateLimit_FailsOpenOnLimiterError(t *testing.T) {
	engine := limitedEngine(&countingLimiter{err: errors.New("redis down")})

	assert.Equal(t, http.StatusOK, post(engine).Code)
}
