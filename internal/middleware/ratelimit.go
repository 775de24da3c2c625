package middleware

import (
	"net/http"
	"sync"
	"time"

	"storefront-be/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Tier sets a limiter budget. Authenticated users get a higher budget than
// anonymous visitors sharing a NAT'd IP.
type Tier struct {
	RPS   rate.Limit
	Burst int
}

var (
	TierAnonymous = Tier{RPS: 5, Burst: 20}
	TierUser      = Tier{RPS: 20, Burst: 60}
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per caller. Anonymous callers are keyed
// by IP, authenticated ones by user id.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
}

func NewRateLimiter() *RateLimiter {
	rl := &RateLimiter{clients: make(map[string]*clientLimiter)}
	go rl.evictLoop()
	return rl
}

func (rl *RateLimiter) get(key string, tier Tier) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(tier.RPS, tier.Burst)}
		rl.clients[key] = cl
	}
	cl.lastSeen = time.Now()
	return cl.limiter
}

func (rl *RateLimiter) evictLoop() {
	for range time.Tick(time.Minute) {
		cutoff := time.Now().Add(-3 * time.Minute)
		rl.mu.Lock()
		for key, cl := range rl.clients {
			if cl.lastSeen.Before(cutoff) {
				delete(rl.clients, key)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tier := TierAnonymous
		key := "ip:" + c.ClientIP()
		if userID, ok := utils.GetUserIDFromContext(c.Request.Context()); ok {
			tier = TierUser
			key = "user:" + userID.String()
		}

		if !rl.get(key, tier).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": gin.H{
				"code":    "rate_limited",
				"message": "too many requests",
			}})
			return
		}
		c.Next()
	}
}
