package api

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/wdylt/wdylt/internal/authz"
)

const principalKey = "principal"

// principal returns the caller set by authenticate.
func principal(c *gin.Context) authz.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(authz.Principal); ok {
			return p
		}
	}
	return authz.Principal{}
}

// authenticate resolves an optional bearer token. A missing header leaves the
// caller anonymous; a malformed or invalid token is rejected.
func (s *Server) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || s.verifier == nil {
			c.Next()
			return
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			abortError(c, http.StatusUnauthorized, "invalid Authorization header")
			return
		}

		p, err := s.verifier.Verify(c.Request.Context(), strings.TrimSpace(raw))
		if err != nil {
			s.logger.Debug("token rejected", zap.Error(err))
			abortError(c, http.StatusUnauthorized, "invalid token")
			return
		}

		c.Set(principalKey, p)
		c.Request = c.Request.WithContext(authz.WithPrincipal(c.Request.Context(), p))
		c.Next()
	}
}

// requireUser rejects anonymous callers.
func (s *Server) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if principal(c).Anonymous() {
			writeError(c, s.logger, authz.ErrUnauthenticated)
			c.Abort()
			return
		}
		c.Next()
	}
}

// requireAdmin is the single admin gate for every admin route.
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authz.RequireAdmin(c.Request.Context(), s.guard, principal(c)); err != nil {
			writeError(c, s.logger, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// limiterIdle is how long a client bucket survives without requests. A
// bucket idle that long has refilled, so dropping it loses nothing.
const limiterIdle = 10 * time.Minute

type clientLimiter struct {
	*rate.Limiter
	lastSeen time.Time
}

// limiterStore hands out one token bucket per client key. Idle buckets are
// swept at most once per limiterIdle, on the request path.
type limiterStore struct {
	mu        sync.Mutex
	limiters  map[string]*clientLimiter
	rps       float64
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

func newLimiterStore(rps float64, burst int) *limiterStore {
	if burst < 1 {
		burst = 1
	}
	return &limiterStore{
		limiters:  make(map[string]*clientLimiter),
		rps:       rps,
		burst:     burst,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (l *limiterStore) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= limiterIdle {
		l.sweep(now)
	}

	lim, ok := l.limiters[key]
	if !ok {
		lim = &clientLimiter{Limiter: rate.NewLimiter(rate.Limit(l.rps), l.burst)}
		l.limiters[key] = lim
	}
	lim.lastSeen = now
	return lim.Limiter
}

func (l *limiterStore) sweep(now time.Time) {
	for key, lim := range l.limiters {
		if now.Sub(lim.lastSeen) >= limiterIdle {
			delete(l.limiters, key)
		}
	}
	l.lastSweep = now
}

func (l *limiterStore) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// rateLimit keys by authenticated subject when present, else client IP.
func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if p := principal(c); !p.Anonymous() {
			key = "sub:" + p.Subject
		}

		if !s.limiter.get(key).Allow() {
			s.metrics.RateLimitRejected.Inc()
			c.Header("Retry-After", "1")
			abortError(c, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		c.Next()
	}
}

// observe records request counts and latency per route.
func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		s.metrics.HTTPRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		s.metrics.HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
