package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aryandumale04/SmartPrep/internal/auth"
	"github.com/aryandumale04/SmartPrep/internal/config"
	"github.com/aryandumale04/SmartPrep/internal/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestClientLimiter(t *testing.T) {
	l := newClientLimiter(1, 2)
	now := time.Now()

	assert.True(t, l.Allow("1.1.1.1", now))
	assert.True(t, l.Allow("1.1.1.1", now))
	assert.False(t, l.Allow("1.1.1.1", now))
	assert.True(t, l.Allow("2.2.2.2", now), "buckets are per client")

	assert.True(t, l.Allow("1.1.1.1", now.Add(time.Second)))
}

func TestClientLimiter_SweepsStaleClients(t *testing.T) {
	l := newClientLimiter(1, 1)
	now := time.Now()
	l.Allow("1.1.1.1", now)
	l.Allow("2.2.2.2", now.Add(5*time.Minute))

	assert.Len(t, l.clients, 1)
	assert.Contains(t, l.clients, "2.2.2.2")
}

func testApp() *application {
	return &application{
		Logger: zap.NewNop(),
		Config: &config.Config{
			CORS:    config.CORSConfig{TrustedOrigins: []string{"http://localhost:5173"}},
			Limiter: config.RateLimiterConfig{RPS: 1, Burst: 1, Enabled: true},
		},
		Handler: &handler.Handler{TokenMaker: auth.NewJWTMaker(strings.Repeat("k", 32))},
		Limiter: newClientLimiter(1, 1),
	}
}

func TestCORS(t *testing.T) {
	app := testApp()
	r := gin.New()
	r.Use(app.cors())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimitMiddleware(t *testing.T) {
	app := testApp()
	r := gin.New()
	r.Use(app.rateLimit())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 2)
	for i := range codes {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		codes[i] = w.Code
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestVerifyClaimsFromAuthHeader(t *testing.T) {
	maker := auth.NewJWTMaker(strings.Repeat("k", 32))
	tok, _, err := maker.GenerateToken(uuid.New(), "a@b.co", time.Minute)
	require.NoError(t, err)

	tests := []struct {
		header string
		ok     bool
	}{
		{"Bearer " + tok, true},
		{"", false},
		{"Basic " + tok, false},
		{"Bearer", false},
		{"Bearer not-a-token", false},
	}
	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			c.Request.Header.Set("Authorization", tt.header)
		}
		claims, err := verifyClaimsFromAuthHeader(c, maker)
		if tt.ok {
			require.NoError(t, err)
			assert.Equal(t, "a@b.co", claims.Email)
		} else {
			assert.Error(t, err)
		}
	}
}
