package security

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"quest_backend/internal/config"
	"quest_backend/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

var (
	defaultAllowHeaders = []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "Cache-Control", "X-Requested-With", "X-Trace-ID"}
	defaultAllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
)

// CORS echoes allowed origins only. Empty header and method lists fall back
// to what the quest API uses.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	origins := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		origins[o] = struct{}{}
	}

	headers := cfg.AllowedHeaders
	if len(headers) == 0 {
		headers = defaultAllowHeaders
	}
	methods := cfg.AllowedMethods
	if len(methods) == 0 {
		methods = defaultAllowMethods
	}
	allowHeaders := strings.Join(headers, ", ")
	allowMethods := strings.Join(methods, ", ")
	maxAge := ""
	if cfg.MaxAge > 0 {
		maxAge = strconv.Itoa(int(cfg.MaxAge.Seconds()))
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		if origin := c.GetHeader("Origin"); origin != "" {
			if _, ok := origins[origin]; ok {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Add("Vary", "Origin")
			}
		}
		h.Set("Access-Control-Allow-Headers", allowHeaders)
		h.Set("Access-Control-Allow-Methods", allowMethods)

		if c.Request.Method == http.MethodOptions {
			if maxAge != "" {
				h.Set("Access-Control-Max-Age", maxAge)
			}
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// Secure sets browser hardening headers. HSTS is only sent over TLS.
func Secure() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		if c.Request.TLS != nil {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		c.Next()
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiter keeps one token bucket per client IP.
type ipLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	every    rate.Limit
	burst    int
}

func newIPLimiter(maxRequests int, window time.Duration) *ipLimiter {
	return &ipLimiter{
		visitors: make(map[string]*visitor),
		every:    rate.Every(window / time.Duration(maxRequests)),
		burst:    maxRequests,
	}
}

func (l *ipLimiter) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.every, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	l.mu.Unlock()

	return v.limiter.AllowN(now, 1)
}

// sweep forgets visitors idle for longer than expiry and returns how many
// remain.
func (l *ipLimiter) sweep(now time.Time, expiry time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, v := range l.visitors {
		if now.Sub(v.lastSeen) > expiry {
			delete(l.visitors, ip)
		}
	}
	return len(l.visitors)
}

// RateLimiter allows maxRequests per window for each client IP, in process.
// Visitors idle for three windows (at least a minute) are swept every minute.
func RateLimiter(maxRequests int, window time.Duration) gin.HandlerFunc {
	l := newIPLimiter(maxRequests, window)

	expiry := 3 * window
	if expiry < time.Minute {
		expiry = time.Minute
	}
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for now := range ticker.C {
			l.sweep(now, expiry)
		}
	}()

	return func(c *gin.Context) {
		if !l.allow(c.ClientIP(), time.Now()) {
			util.Error(c, http.StatusTooManyRequests, "Too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}
