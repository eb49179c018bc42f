package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/yoockh/orbitmatch/internal/utils"
	"golang.org/x/time/rate"
)

const maxTrackedCallers = 10000

// CallerLimiter keeps one token bucket per caller. Idle callers are evicted
// once more than maxTrackedCallers are tracked.
type CallerLimiter struct {
	mu       sync.Mutex
	limiters *lru.Cache[string, *rate.Limiter]
	rps      rate.Limit
	burst    int
}

func NewCallerLimiter(rps float64, burst int) *CallerLimiter {
	if burst <= 0 {
		burst = 1
	}
	cache, _ := lru.New[string, *rate.Limiter](maxTrackedCallers)
	return &CallerLimiter{limiters: cache, rps: rate.Limit(rps), burst: burst}
}

func (l *CallerLimiter) Allow(key string) bool {
	l.mu.Lock()
	lim, ok := l.limiters.Get(key)
	if !ok {
		lim = rate.NewLimiter(l.rps, l.burst)
		l.limiters.Add(key, lim)
	}
	l.mu.Unlock()
	return lim.Allow()
}

// RateLimit throttles per company (or per user when no company claim is
// present). A nil limiter disables it.
func RateLimit(l *CallerLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil || l.rps <= 0 {
			c.Next()
			return
		}
		key := c.GetString(CtxCompanyID)
		if key == "" {
			key = "user:" + c.GetString(CtxUserID)
		}
		if !l.Allow(key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apiError{
				Code:    utils.CodeTooManyRequests,
				Message: "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
