package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-jobboard-backend/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	logger.Init()
	m.Run()
}

func setupRateLimitRouter(client *goredis.Client, cfg RateLimitConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitMiddleware(client, cfg))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return r
}

func hit(r *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.1:12345"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	cfg := RateLimitConfig{
		Limit:     2,
		Window:    time.Minute,
		KeyPrefix: "rl:test-redis:",
		KeyFunc:   func(c *gin.Context) string { return c.ClientIP() },
	}
	r := setupRateLimitRouter(client, cfg)

	assert.Equal(t, http.StatusOK, hit(r).Code)
	assert.Equal(t, http.StatusOK, hit(r).Code)

	w := hit(r)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimitRedisWindowExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	cfg := RateLimitConfig{
		Limit:     1,
		Window:    time.Minute,
		KeyPrefix: "rl:test-expiry:",
		KeyFunc:   func(c *gin.Context) string { return c.ClientIP() },
	}
	r := setupRateLimitRouter(client, cfg)

	assert.Equal(t, http.StatusOK, hit(r).Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(r).Code)

	mr.FastForward(61 * time.Second)

	assert.Equal(t, http.StatusOK, hit(r).Code)
}

func TestRateLimitInMemoryFallback(t *testing.T) {
	cfg := RateLimitConfig{
		Limit:     2,
		Window:    time.Minute,
		KeyPrefix: "rl:test-memory:",
		KeyFunc:   func(c *gin.Context) string { return c.ClientIP() },
	}
	r := setupRateLimitRouter(nil, cfg)

	assert.Equal(t, http.StatusOK, hit(r).Code)
	assert.Equal(t, http.StatusOK, hit(r).Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(r).Code)
}

func TestRateLimitFailClosedWithDeadRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()
	mr.Close()

	cfg := RateLimitConfig{
		Limit:      5,
		Window:     time.Minute,
		KeyPrefix:  "rl:test-closed:",
		FailClosed: true,
		KeyFunc:    func(c *gin.Context) string { return c.ClientIP() },
	}
	r := setupRateLimitRouter(client, cfg)

	assert.Equal(t, http.StatusServiceUnavailable, hit(r).Code)
}

func TestRateLimitFailOpenWithDeadRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()
	mr.Close()

	cfg := RateLimitConfig{
		Limit:      5,
		Window:     time.Minute,
		KeyPrefix:  "rl:test-open:",
		FailClosed: false,
		KeyFunc:    func(c *gin.Context) string { return c.ClientIP() },
	}
	r := setupRateLimitRouter(client, cfg)

	// Falls back to in-memory counting instead of rejecting.
	assert.Equal(t, http.StatusOK, hit(r).Code)
}
