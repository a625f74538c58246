package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Per-IP budget: 200 requests per minute, with the full budget available as
// burst so campaign dashboards polling many endpoints at once are not cut off.
const (
	requestsPerMinute = 200
	burstSize         = 200
)

type ipLimiters struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

var limiterStore = &ipLimiters{limiters: make(map[string]*rate.Limiter)}

func (s *ipLimiters) get(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, ok := s.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(time.Minute/requestsPerMinute), burstSize)
		s.limiters[ip] = limiter
	}
	return limiter
}

// RateLimitMiddleware rejects requests from IPs that exceed their budget with
// a 429. Limits are tracked per source IP as resolved by getClientIP.
func RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := getClientIP(c)
		if !limiterStore.get(ip).Allow() {
			zap.L().Warn("rate limit exceeded", zap.String("ip", ip), zap.String("path", c.FullPath()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Try again later."})
			return
		}
		c.Next()
	}
}
