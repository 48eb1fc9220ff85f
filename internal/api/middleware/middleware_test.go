package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AutoservisBooking/pkg/logger"
	"github.com/m04kA/SMC-AutoservisBooking/pkg/metrics"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.New("test")

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/booking/appointment/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	for _, id := range []string{"a", "b", "c"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/booking/appointment/"+id, nil))
	}

	expected := `
# HELP http_requests_total Total number of HTTP requests
# TYPE http_requests_total counter
http_requests_total{method="GET",route="/booking/appointment/{id}",service="test",status="404"} 3
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "http_requests_total"))
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetRequestID(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get(HeaderRequestID))
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, "call-42")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "call-42", seen)
		assert.Equal(t, "call-42", rec.Header().Get(HeaderRequestID))
	})
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(0.001, 2, false, logger.NewNop())
	h := limiter.Middleware()(http.HandlerFunc(okHandler))

	call := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/booking/appointment", nil)
		req.RemoteAddr = ip + ":5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1"))

	// Другой IP имеет собственный лимит
	assert.Equal(t, http.StatusOK, call("10.0.0.2"))
}

func TestRateLimiter_ForwardedForIsIgnoredWithoutProxy(t *testing.T) {
	limiter := NewRateLimiter(0.001, 1, false, logger.NewNop())
	h := limiter.Middleware()(http.HandlerFunc(okHandler))

	call := func(forwarded string) int {
		req := httptest.NewRequest(http.MethodPost, "/booking/appointment", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		req.Header.Set("X-Forwarded-For", forwarded)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("198.51.100.1"))
	// Подмена заголовка не дает нового лимита
	assert.Equal(t, http.StatusTooManyRequests, call("198.51.100.2"))
}

func (l *RateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

func TestRateLimiter_Sweep(t *testing.T) {
	limiter := NewRateLimiter(1, 1, false, logger.NewNop())
	now := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	limiter.getLimiter("10.0.0.1")
	limiter.getLimiter("10.0.0.2")
	require.Equal(t, 2, limiter.size())

	// Простой дольше idleTTL, но обход еще не пора запускать
	now = now.Add(idleTTL + time.Second)
	limiter.lastSweep = now.Add(-sweepInterval / 2)
	limiter.getLimiter("10.0.0.3")
	assert.Equal(t, 3, limiter.size())

	// После sweepInterval старые лимитеры удаляются
	now = now.Add(sweepInterval)
	limiter.getLimiter("10.0.0.3")
	assert.Equal(t, 1, limiter.size())
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.5:1234"
	assert.Equal(t, "192.168.1.5", clientIP(req, false))
	assert.Equal(t, "192.168.1.5", clientIP(req, true))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "192.168.1.5", clientIP(req, false))
	assert.Equal(t, "10.0.0.1", clientIP(req, true))
}

func TestRecovery(t *testing.T) {
	h := Recovery(logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
