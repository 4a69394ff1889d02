package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrSnakeDoc/poetry/internal/logger"
)

func TestMatchHost(t *testing.T) {
	tests := []struct {
		host, pattern string
		want          bool
	}{
		{"poetry.local", "poetry.local", true},
		{"a.poetry.local", "*.poetry.local", true},
		{"poetry.local", "*.poetry.local", false},
		{"evilpoetry.local", "*.poetry.local", false},
		{"other.local", "poetry.local", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, matchHost(tt.host, tt.pattern), "matchHost(%q, %q)", tt.host, tt.pattern)
	}
}

func TestLimiterRefills(t *testing.T) {
	now := time.Unix(0, 0)
	l := newLimiter(RateLimitConfig{Burst: 2, PerMinute: 60, Now: func() time.Time { return now }})

	ok, remaining, _ := l.take("ip", now)
	assert.True(t, ok)
	assert.Equal(t, 1, remaining)

	ok, _, _ = l.take("ip", now)
	assert.True(t, ok)

	ok, _, retry := l.take("ip", now)
	assert.False(t, ok)
	assert.Equal(t, 1, retry)

	ok, _, _ = l.take("other", now)
	assert.True(t, ok, "buckets are per client")

	ok, _, _ = l.take("ip", now.Add(time.Second))
	assert.True(t, ok, "one token per second at 60/min")
}

func TestLimiterSweepsIdleBuckets(t *testing.T) {
	now := time.Unix(0, 0)
	l := newLimiter(RateLimitConfig{
		Burst: 1, PerMinute: 1, IdleTTL: time.Minute, SweepInterval: time.Minute,
		Now: func() time.Time { return now },
	})

	l.take("a", now)
	l.take("b", now)
	assert.Len(t, l.buckets, 2)

	l.take("c", now.Add(2*time.Minute))
	assert.Len(t, l.buckets, 1)
}

func TestRateLimitMiddleware(t *testing.T) {
	h := RateLimit(RateLimitConfig{Burst: 1, PerMinute: 1}, logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func TestAllowOnlyCIDRSPassthrough(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	rec := httptest.NewRecorder()
	AllowOnlyCIDRS(nil, false, logger.Nop())(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	AllowOnlyCIDRS([]string{"10.0.0.0/8"}, false, logger.Nop())(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLogCapturesStatus(t *testing.T) {
	h := Log(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
