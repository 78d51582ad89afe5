package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/agentstation/chatmodels/internal/server/response"
)

// RateLimiter implements fixed-window rate limiting per client address.
// Idle visitors expire from the store on their own.
type RateLimiter struct {
	visitors *gocache.Cache
	limit    int           // requests per interval
	interval time.Duration // window length
	logger   *zerolog.Logger
	// trustProxy keys visitors on X-Forwarded-For instead of the peer address
	trustProxy bool
	mu         sync.Mutex
}

// RateLimiterOption configures a RateLimiter.
type RateLimiterOption func(*RateLimiter)

// TrustForwardedFor keys visitors on the last X-Forwarded-For entry, which
// is the address seen by the reverse proxy in front of the server. Only
// enable it when such a proxy exists; otherwise clients choose their own key.
func TrustForwardedFor(trust bool) RateLimiterOption {
	return func(rl *RateLimiter) {
		rl.trustProxy = trust
	}
}

// visitor tracks rate limit state for a single address.
type visitor struct {
	tokens    int
	lastReset time.Time
}

// NewRateLimiter creates a new rate limiter allowing limit requests per
// minute per address.
func NewRateLimiter(limit int, logger *zerolog.Logger, opts ...RateLimiterOption) *RateLimiter {
	return newRateLimiter(limit, time.Minute, logger, opts...)
}

func newRateLimiter(limit int, interval time.Duration, logger *zerolog.Logger, opts ...RateLimiterOption) *RateLimiter {
	rl := &RateLimiter{
		visitors: gocache.New(10*interval, 5*interval),
		limit:    limit,
		interval: interval,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(rl)
	}
	return rl
}

// allow checks if a request from the address is allowed.
func (rl *RateLimiter) allow(addr string) bool {
	ok, _ := rl.take(addr)
	return ok
}

// take consumes a token for addr. When none is left it also reports how
// long until the window resets.
func (rl *RateLimiter) take(addr string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	v, ok := rl.visitors.Get(addr)
	if !ok {
		v = &visitor{tokens: rl.limit, lastReset: now}
	}
	vis := v.(*visitor)

	if now.Sub(vis.lastReset) > rl.interval {
		vis.tokens = rl.limit
		vis.lastReset = now
	}

	// Refresh expiry on every request so active visitors stay tracked
	rl.visitors.SetDefault(addr, vis)

	if vis.tokens > 0 {
		vis.tokens--
		return true, 0
	}
	return false, rl.interval - now.Sub(vis.lastReset)
}

// Visitors returns the number of tracked addresses.
func (rl *RateLimiter) Visitors() int {
	return rl.visitors.ItemCount()
}

// RateLimit middleware limits requests per client address.
func RateLimit(rl *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			addr := rl.clientAddr(r)

			if ok, wait := rl.take(addr); !ok {
				rl.logger.Warn().
					Str("ip", addr).
					Str("path", r.URL.Path).
					Dur("retry_after", wait).
					Msg("Rate limit exceeded")

				w.Header().Set("Retry-After", retryAfter(wait))
				response.RateLimited(w, "Too many requests. Please try again later.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientAddr returns the host part of the peer address, or the proxy-reported
// client when the limiter trusts X-Forwarded-For.
func (rl *RateLimiter) clientAddr(r *http.Request) string {
	if rl.trustProxy {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			hops := strings.Split(forwarded, ",")
			if last := strings.TrimSpace(hops[len(hops)-1]); last != "" {
				return last
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// retryAfter formats a wait as whole seconds, rounded up, never below one.
func retryAfter(wait time.Duration) string {
	secs := int(math.Ceil(wait.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
