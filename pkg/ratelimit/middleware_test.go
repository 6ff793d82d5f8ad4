package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, limiter *RateLimiter) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(Middleware(limiter))
	engine.GET("/api/v1/movies", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func doRequest(engine *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/movies", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestMiddleware_EnforcesBudget(t *testing.T) {
	config := defaultTestConfig()
	config.DefaultRequests = 2
	limiter := newTestLimiter(t, config)
	engine := newTestEngine(t, limiter)

	first := doRequest(engine, "10.0.0.1:41000")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	second := doRequest(engine, "10.0.0.1:41000")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))

	third := doRequest(engine, "10.0.0.1:41000")
	assert.Equal(t, http.StatusTooManyRequests, third.Code)
}

func TestMiddleware_BudgetsArePerClient(t *testing.T) {
	config := defaultTestConfig()
	config.DefaultRequests = 1
	limiter := newTestLimiter(t, config)
	engine := newTestEngine(t, limiter)

	require.Equal(t, http.StatusOK, doRequest(engine, "10.0.0.1:41000").Code)
	require.Equal(t, http.StatusTooManyRequests, doRequest(engine, "10.0.0.1:41000").Code)

	assert.Equal(t, http.StatusOK, doRequest(engine, "10.0.0.2:41000").Code)
}

func TestMiddleware_TrustsForwardedFor(t *testing.T) {
	config := defaultTestConfig()
	config.DefaultRequests = 1
	limiter := newTestLimiter(t, config)
	engine := newTestEngine(t, limiter)

	send := func(forwardedFor string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/movies", nil)
		req.RemoteAddr = "127.0.0.1:41000"
		req.Header.Set("X-Forwarded-For", forwardedFor)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w
	}

	require.Equal(t, http.StatusOK, send("203.0.113.7").Code)
	require.Equal(t, http.StatusTooManyRequests, send("203.0.113.7").Code)
	assert.Equal(t, http.StatusOK, send("203.0.113.8").Code)
}

func TestMiddleware_DisabledPassesThrough(t *testing.T) {
	config := defaultTestConfig()
	config.Enabled = false
	config.DefaultRequests = 1
	limiter := newTestLimiter(t, config)
	engine := newTestEngine(t, limiter)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, doRequest(engine, "10.0.0.1:41000").Code)
	}
}
