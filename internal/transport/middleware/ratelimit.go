package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/heartmarshall/research-ledger/pkg/ctxutil"
)

// idleEviction is how long a caller may stay silent before its limiter is
// dropped. A returning caller starts with a full burst again.
const idleEviction = 10 * time.Minute

// RateLimiter keeps one token bucket per caller. Callers are keyed by user
// ID when authenticated and by client address otherwise.
type RateLimiter struct {
	callers sync.Map // map[string]*callerLimiter
	stop    chan struct{}
	once    sync.Once
}

type callerLimiter struct {
	lim      *rate.Limiter
	lastSeen atomic.Int64 // unix nanos
}

// NewRateLimiter starts a limiter that evicts idle callers every
// cleanupInterval. Call Stop on shutdown.
func NewRateLimiter(cleanupInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{stop: make(chan struct{})}
	go rl.cleanup(cleanupInterval)
	return rl
}

// Stop terminates the eviction goroutine. It is safe to call twice.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

// Limit allows maxPerMinute requests per caller with a burst of the same
// size. A non-positive maxPerMinute disables limiting. Place it after Auth
// so authenticated callers get their own bucket.
func (rl *RateLimiter) Limit(maxPerMinute int) Middleware {
	return func(next http.Handler) http.Handler {
		if maxPerMinute <= 0 {
			return next
		}
		every := rate.Every(time.Minute / time.Duration(maxPerMinute))

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lim := rl.limiter(callerKey(r), every, maxPerMinute)

			res := lim.Reserve()
			if delay := res.Delay(); delay > 0 {
				res.Cancel()
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func callerKey(r *http.Request) string {
	if userID, ok := ctxutil.UserIDFromCtx(r.Context()); ok {
		return "user:" + userID.String()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "addr:" + host
}

func (rl *RateLimiter) limiter(key string, every rate.Limit, burst int) *rate.Limiter {
	val, ok := rl.callers.Load(key)
	if !ok {
		val, _ = rl.callers.LoadOrStore(key, &callerLimiter{lim: rate.NewLimiter(every, burst)})
	}
	c := val.(*callerLimiter)
	c.lastSeen.Store(time.Now().UnixNano())
	return c.lim
}

func (rl *RateLimiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			rl.evictIdle(now)
		}
	}
}

func (rl *RateLimiter) evictIdle(now time.Time) {
	cutoff := now.Add(-idleEviction).UnixNano()
	rl.callers.Range(func(key, value any) bool {
		if value.(*callerLimiter).lastSeen.Load() < cutoff {
			rl.callers.Delete(key)
		}
		return true
	})
}
