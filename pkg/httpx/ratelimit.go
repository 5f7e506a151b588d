package httpx

import (
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jotmail/jotmail/pkg/slogx"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines the rate limiting parameters.
type RateLimitConfig struct {
	// RequestsPerWindow is the number of requests allowed in the time window
	RequestsPerWindow int
	// Window is the time window for rate limiting
	Window time.Duration
	// Burst allows for temporary bursts above the rate limit
	Burst int
}

// Common rate limit profiles. These can be overridden via environment
// variables (see init below), which the e2e tests rely on.
var (
	// StrictLimit for the OTP endpoints (brute force prevention).
	// Override with: RATELIMIT_STRICT_REQUESTS, RATELIMIT_STRICT_WINDOW_SEC, RATELIMIT_STRICT_BURST
	StrictLimit = RateLimitConfig{
		RequestsPerWindow: 5,
		Window:            time.Minute,
		Burst:             5,
	}

	// ModerateLimit for authenticated write operations.
	// Override with: RATELIMIT_MODERATE_REQUESTS, RATELIMIT_MODERATE_WINDOW_SEC, RATELIMIT_MODERATE_BURST
	ModerateLimit = RateLimitConfig{
		RequestsPerWindow: 20,
		Window:            time.Minute,
		Burst:             20,
	}

	// LenientLimit for authenticated reads and health probes.
	// Override with: RATELIMIT_LENIENT_REQUESTS, RATELIMIT_LENIENT_WINDOW_SEC, RATELIMIT_LENIENT_BURST
	LenientLimit = RateLimitConfig{
		RequestsPerWindow: 100,
		Window:            time.Minute,
		Burst:             100,
	}
)

func init() {
	StrictLimit = ParseRateLimitFromEnv("STRICT", StrictLimit)
	ModerateLimit = ParseRateLimitFromEnv("MODERATE", ModerateLimit)
	LenientLimit = ParseRateLimitFromEnv("LENIENT", LenientLimit)
}

// ParseRateLimitFromEnv reads rate limit configuration from environment
// variables following the pattern RATELIMIT_{prefix}_{field}.
func ParseRateLimitFromEnv(prefix string, defaultConfig RateLimitConfig) RateLimitConfig {
	config := defaultConfig

	if val := os.Getenv("RATELIMIT_" + prefix + "_REQUESTS"); val != "" {
		if requests, err := strconv.Atoi(val); err == nil && requests > 0 {
			config.RequestsPerWindow = requests
		}
	}
	if val := os.Getenv("RATELIMIT_" + prefix + "_WINDOW_SEC"); val != "" {
		if secs, err := strconv.Atoi(val); err == nil && secs > 0 {
			config.Window = time.Duration(secs) * time.Second
		}
	}
	if val := os.Getenv("RATELIMIT_" + prefix + "_BURST"); val != "" {
		if burst, err := strconv.Atoi(val); err == nil && burst > 0 {
			config.Burst = burst
		}
	}

	return config
}

// KeyExtractor derives the rate limiting key from a request.
type KeyExtractor func(r *http.Request) string

// IPKeyExtractor extracts the client IP, honoring proxy headers.
func IPKeyExtractor(r *http.Request) string {
	// X-Forwarded-For may hold a comma-separated chain; the first hop is
	// the original client.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// AccountKeyExtractor extracts the authenticated account ID from the
// request context. Returns empty string for anonymous requests.
func AccountKeyExtractor(r *http.Request) string {
	return AccountIDFromContext(r.Context())
}

// CompositeKeyExtractor combines multiple key extractors with a separator.
func CompositeKeyExtractor(sep string, extractors ...KeyExtractor) KeyExtractor {
	return func(r *http.Request) string {
		var parts []string
		for _, extractor := range extractors {
			if key := extractor(r); key != "" {
				parts = append(parts, key)
			}
		}
		return strings.Join(parts, sep)
	}
}

// rateLimiter manages per-key token buckets.
type rateLimiter struct {
	limiters sync.Map // map[string]*rate.Limiter
	rate     rate.Limit
	burst    int

	mu          sync.Mutex
	lastCleanup time.Time
}

func (rl *rateLimiter) getLimiter(key string) *rate.Limiter {
	if limiter, ok := rl.limiters.Load(key); ok {
		return limiter.(*rate.Limiter)
	}

	limiter := rate.NewLimiter(rl.rate, rl.burst)
	actual, _ := rl.limiters.LoadOrStore(key, limiter)

	rl.maybeCleanup()

	return actual.(*rate.Limiter)
}

// maybeCleanup drops limiters whose buckets are full again; a full bucket
// means the key has been idle for at least a window.
func (rl *rateLimiter) maybeCleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if time.Since(rl.lastCleanup) < 5*time.Minute {
		return
	}
	rl.lastCleanup = time.Now()

	rl.limiters.Range(func(key, value any) bool {
		limiter := value.(*rate.Limiter)
		if limiter.Tokens() >= float64(rl.burst) {
			rl.limiters.Delete(key)
		}
		return true
	})
}

// RateLimitMiddleware creates a rate limiting middleware with the given
// configuration. The keyExtractor determines how requests are grouped.
func RateLimitMiddleware(config RateLimitConfig, keyExtractor KeyExtractor) Middleware {
	ratePerSecond := float64(config.RequestsPerWindow) / config.Window.Seconds()

	rl := &rateLimiter{
		rate:        rate.Limit(ratePerSecond),
		burst:       config.Burst,
		lastCleanup: time.Now(),
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := slogx.FromContext(r.Context())

			key := keyExtractor(r)
			if key == "" {
				// No key, no bucket; allow but note it.
				log.Warn("rate limit: unable to extract key, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			limiter := rl.getLimiter(key)
			if !limiter.Allow() {
				reservation := limiter.Reserve()
				delay := reservation.Delay()
				reservation.Cancel() // don't actually consume the reservation

				retryAfter := max(int(delay.Seconds()), 1)

				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(config.RequestsPerWindow))
				w.Header().Set("X-RateLimit-Window", config.Window.String())

				log.Warn("rate limit exceeded",
					"key", key,
					"endpoint", r.URL.Path,
					"retry_after", retryAfter,
				)

				WriteJSON(w, http.StatusTooManyRequests, map[string]string{
					"error":             "rate_limit_exceeded",
					"error_description": "Too many requests. Please try again later.",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitByIP limits by client IP address only.
func RateLimitByIP(config RateLimitConfig) Middleware {
	return RateLimitMiddleware(config, IPKeyExtractor)
}

// RateLimitByAccount limits by authenticated account ID, falling back to
// IP for anonymous requests.
func RateLimitByAccount(config RateLimitConfig) Middleware {
	return RateLimitMiddleware(config, CompositeKeyExtractor(":",
		AccountKeyExtractor,
		IPKeyExtractor,
	))
}
