package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

var expectedCORSHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type,Authorization",
	"Access-Control-Max-Age":       "3600",
}

func newCORSRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS(DevPolicy()))
	r.GET("/api/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.POST("/api/echo", func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	r.NoRoute(func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})
	return r
}

func assertCORSHeaders(t *testing.T, h http.Header) {
	t.Helper()
	for key, want := range expectedCORSHeaders {
		assert.Equal(t, want, h.Get(key), key)
	}
}

func TestDevPolicy_Headers(t *testing.T) {
	p := DevPolicy()
	assert.Equal(t, time.Hour, p.MaxAge)

	h := p.Headers()
	assertCORSHeaders(t, h)
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		origin     string
		preflight  bool
		wantStatus int
	}{
		{
			name:       "preflight from foreign origin",
			method:     http.MethodOptions,
			path:       "/api/health",
			origin:     "http://example.com",
			preflight:  true,
			wantStatus: http.StatusOK,
		},
		{
			name:       "preflight on unknown path",
			method:     http.MethodOptions,
			path:       "/api/does/not/exist",
			origin:     "http://192.168.1.20:19006",
			preflight:  true,
			wantStatus: http.StatusOK,
		},
		{
			name:       "options without origin",
			method:     http.MethodOptions,
			path:       "/api/health",
			wantStatus: http.StatusOK,
		},
		{
			name:       "simple GET with origin",
			method:     http.MethodGet,
			path:       "/api/health",
			origin:     "http://example.com",
			wantStatus: http.StatusOK,
		},
		{
			name:       "GET without origin",
			method:     http.MethodGet,
			path:       "/api/health",
			wantStatus: http.StatusOK,
		},
		{
			name:       "POST with origin",
			method:     http.MethodPost,
			path:       "/api/echo",
			origin:     "https://dashboard.local",
			wantStatus: http.StatusCreated,
		},
		{
			name:       "unknown path still carries policy",
			method:     http.MethodGet,
			path:       "/missing",
			origin:     "http://example.com",
			wantStatus: http.StatusNotFound,
		},
	}

	r := newCORSRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
				req.Header.Set("Access-Control-Request-Headers", "Content-Type")
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assertCORSHeaders(t, w.Header())
			if tt.method == http.MethodOptions {
				assert.Empty(t, w.Body.String())
			}
		})
	}
}

func TestCORS_NeverRejectsOrigin(t *testing.T) {
	r := newCORSRouter()

	origins := []string{
		"http://example.com",
		"http://localhost:8081",
		"exp://192.168.0.12:8081",
		"null",
	}
	for _, origin := range origins {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.NotEqual(t, http.StatusForbidden, w.Code, origin)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"), origin)
	}
}
