package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func TestHealth(t *testing.T) {
	assert := assert.New(t)

	fixtures := []struct {
		allowed   string
		userAgent string
		code      int
	}{
		{allowed: "cron-job.org", userAgent: "Mozilla/5.0 (compatible; cron-job.org)", code: http.StatusOK},
		{allowed: "cron-job.org", userAgent: "curl/8.0", code: http.StatusForbidden},
		{allowed: "cron-job.org", userAgent: "", code: http.StatusForbidden},
		{allowed: "", userAgent: "curl/8.0", code: http.StatusOK},
	}

	for _, fix := range fixtures {
		s := New(Config{HealthUserAgent: fix.allowed}, zaptest.NewLogger(t))
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("User-Agent", fix.userAgent)
		rec := httptest.NewRecorder()

		s.Routes().ServeHTTP(rec, req)

		assert.Equal(fix.code, rec.Code, fix.userAgent)
		if fix.code == http.StatusOK {
			assert.Equal("OK", rec.Body.String())
		}
	}
}

func TestWebhookRoute(t *testing.T) {
	assert := assert.New(t)

	called := 0
	s := New(Config{}, zaptest.NewLogger(t))
	s.MountWebhook("/bot123:abc", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called++
		w.WriteHeader(http.StatusOK)
	}))
	routes := s.Routes()

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/bot123:abc", nil))
	assert.Equal(http.StatusOK, rec.Code)
	assert.Equal(1, called)

	rec = httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/botwrong", nil))
	assert.Equal(http.StatusNotFound, rec.Code)
	assert.Equal(1, called)
}

func TestMetricsRoute(t *testing.T) {
	s := New(Config{}, zaptest.NewLogger(t))
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
