package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quest_backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(mw gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw)
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func get(r http.Handler, ip string) int {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", ip)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiter_PerIP(t *testing.T) {
	r := newRouter(RateLimiter(2, time.Hour))

	assert.Equal(t, http.StatusOK, get(r, "10.0.0.1"))
	assert.Equal(t, http.StatusOK, get(r, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, get(r, "10.0.0.1"))

	assert.Equal(t, http.StatusOK, get(r, "10.0.0.2"))
}

func TestRedisRateLimiter_FailsOpen(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	r := newRouter(RedisRateLimiter(rdb, 1, time.Minute))
	assert.Equal(t, http.StatusOK, get(r, "10.0.0.1"))
	assert.Equal(t, http.StatusOK, get(r, "10.0.0.1"))
}

func TestCORS(t *testing.T) {
	r := newRouter(CORS(config.CORSConfig{
		AllowedOrigins: []string{"https://quests.example.com"},
		MaxAge:         12 * time.Hour,
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://quests.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://quests.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "X-Trace-ID")
	assert.Empty(t, w.Header().Get("Access-Control-Max-Age"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "43200", w.Header().Get("Access-Control-Max-Age"))
}

func TestCORS_ConfiguredLists(t *testing.T) {
	r := newRouter(CORS(config.CORSConfig{
		AllowedHeaders: []string{"Content-Type"},
		AllowedMethods: []string{"GET"},
	}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "GET", w.Header().Get("Access-Control-Allow-Methods"))
}

func TestIPLimiter_Sweep(t *testing.T) {
	l := newIPLimiter(1, time.Hour)
	start := time.Now()

	assert.True(t, l.allow("10.0.0.1", start))
	assert.False(t, l.allow("10.0.0.1", start))
	assert.True(t, l.allow("10.0.0.2", start.Add(2*time.Minute)))

	assert.Equal(t, 1, l.sweep(start.Add(3*time.Minute), 2*time.Minute))

	// a swept visitor starts with a full bucket again
	assert.True(t, l.allow("10.0.0.1", start.Add(3*time.Minute)))
}

func TestSecure(t *testing.T) {
	r := newRouter(Secure())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-referrer", w.Header().Get("Referrer-Policy"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
}
