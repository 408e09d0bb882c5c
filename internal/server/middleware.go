package server

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/mraso/portfolio/internal/hash"
)

// ipLimiters holds one token bucket per client IP.
type ipLimiters struct {
	mu        sync.Mutex
	limiters  map[string]*rate.Limiter
	perMinute int
}

func newIPLimiters(perMinute int) *ipLimiters {
	if perMinute <= 0 {
		perMinute = 10
	}
	return &ipLimiters{
		limiters:  make(map[string]*rate.Limiter),
		perMinute: perMinute,
	}
}

// get returns the limiter for an IP, creating it on first sight.
func (l *ipLimiters) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(float64(l.perMinute)/60.0), l.perMinute)
		l.limiters[ip] = limiter
	}
	return limiter
}

// chatRateLimit rejects clients that exceed the per-IP chat budget.
func (s *Server) chatRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiters.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests, slow down",
			})
			return
		}
		c.Next()
	}
}

// visitorTracking records page views with hashed IPs. Health checks and
// Do-Not-Track clients are skipped, and tracking never blocks the
// request.
func (s *Server) visitorTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if s.store == nil ||
			strings.HasPrefix(path, "/healthz") ||
			c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		hashedIP := hash.SaltedIP(c.ClientIP(), s.ipSalt)
		userAgent := c.GetHeader("User-Agent")
		go func() {
			_ = s.store.RecordVisit(hashedIP, userAgent, path)
		}()

		c.Next()
	}
}
