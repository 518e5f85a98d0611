package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// LoginRateLimiter throttles an endpoint per client IP: 100 requests per
// 15 minutes.
func LoginRateLimiter() gin.HandlerFunc {
	return RateLimiter(rate.Every(15*time.Minute/100), 100)
}

// RateLimiter returns a per-IP token bucket middleware. Buckets live for
// the life of the process; the map is pruned lazily when it grows large.
func RateLimiter(r rate.Limit, burst int) gin.HandlerFunc {
	type client struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}

	var (
		mu      sync.Mutex
		clients = make(map[string]*client)
	)

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		if len(clients) > 10000 {
			for ip, cl := range clients {
				if time.Since(cl.lastSeen) > 30*time.Minute {
					delete(clients, ip)
				}
			}
		}
		cl, ok := clients[ip]
		if !ok {
			cl = &client{limiter: rate.NewLimiter(r, burst)}
			clients[ip] = cl
		}
		cl.lastSeen = time.Now()
		allowed := cl.limiter.Allow()
		mu.Unlock()

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many login attempts, please try again later"})
			c.Abort()
			return
		}

		c.Next()
	}
}
