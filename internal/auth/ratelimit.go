package auth

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/vinestrading/catalog-service/internal/error/code"
	"github.com/vinestrading/catalog-service/internal/error/response"
)

const (
	visitorIdle   = 10 * time.Minute
	sweepInterval = time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginLimiter throttles login attempts per client IP with a token bucket.
type LoginLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

func NewLoginLimiter(perSecond float64, burst int) *LoginLimiter {
	if burst < 1 {
		burst = 1
	}
	return &LoginLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(perSecond),
		burst:    burst,
		now:      time.Now,
	}
}

// Allow spends one token of key's bucket.
func (l *LoginLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > sweepInterval {
		for k, v := range l.visitors {
			if now.Sub(v.lastSeen) > visitorIdle {
				delete(l.visitors, k)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// Middleware rejects POSTs beyond the limit. Browser logins get the login
// page back with an error instead of JSON.
func (l *LoginLimiter) Middleware(mode Mode) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost || l.Allow(c.ClientIP()) {
			c.Next()
			return
		}
		if mode == ModeBrowser {
			c.Redirect(http.StatusSeeOther, LoginPath+"?error="+code.MsgTooManyRequests)
			c.Abort()
			return
		}
		response.Fail(c, code.ErrTooManyRequests, nil)
	}
}
