package middleware

import (
	"net/http"
	"sync"

	"memoflow/src/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// clientLimiters はクライアントIPごとのトークンバケットを保持する
type clientLimiters struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func newClientLimiters(rps, burst int) *clientLimiters {
	return &clientLimiters{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (cl *clientLimiters) get(key string) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	limiter, ok := cl.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(cl.rps, cl.burst)
		cl.limiters[key] = limiter
	}
	return limiter
}

// RateLimitMiddleware クライアントIP単位のレート制限middleware
func RateLimitMiddleware(rps, burst int) gin.HandlerFunc {
	limiters := newClientLimiters(rps, burst)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		if !limiters.get(clientIP).Allow() {
			logger.WithField("client_ip", clientIP).Warn("レート制限に達しました")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "too many requests",
			})
			return
		}

		c.Next()
	}
}
