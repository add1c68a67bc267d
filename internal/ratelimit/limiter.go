// Package ratelimit provides per-client request limiting for the booking API.
package ratelimit

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Clock interface for testing time-dependent behavior.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Config holds rate limit configuration.
type Config struct {
	// MaxPerWindow is the number of requests a client may make per window.
	MaxPerWindow int
	// Window is the length of the counting window.
	Window time.Duration
	// TrustProxy controls whether X-Forwarded-For is honored.
	TrustProxy bool

	// Clock for testing (nil uses real time)
	Clock Clock
}

// DefaultConfig returns limits suitable for the public booking endpoints.
func DefaultConfig() *Config {
	return &Config{
		MaxPerWindow: 120,
		Window:       time.Minute,
	}
}

// Result contains the outcome of a limit check.
type Result struct {
	Allowed    bool
	RetryAfter time.Duration
}

// entry tracks request counts inside the current window.
type entry struct {
	count   int
	firstAt time.Time
	lastAt  time.Time
}

// Limiter counts requests per client IP over a fixed window.
type Limiter struct {
	config *Config
	clock  Clock

	mu   sync.Mutex
	byIP map[string]*entry

	cleanupOnce sync.Once
	done        chan struct{}
}

// New creates a rate limiter with the given config.
func New(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = realClock{}
	}
	return &Limiter{
		config: cfg,
		clock:  clock,
		byIP:   make(map[string]*entry),
		done:   make(chan struct{}),
	}
}

// Close stops the cleanup goroutine.
func (l *Limiter) Close() {
	close(l.done)
}

// Check records a request for the client and reports whether it is allowed.
func (l *Limiter) Check(ip string) Result {
	l.startCleanup()
	now := l.clock.Now()
	key := hashKey(ip)

	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.byIP[key]
	if e == nil || now.Sub(e.firstAt) >= l.config.Window {
		l.byIP[key] = &entry{count: 1, firstAt: now, lastAt: now}
		return Result{Allowed: true}
	}

	if e.count >= l.config.MaxPerWindow {
		return Result{
			Allowed:    false,
			RetryAfter: l.config.Window - now.Sub(e.firstAt),
		}
	}

	e.count++
	e.lastAt = now
	return Result{Allowed: true}
}

// Middleware rejects clients over the limit with 429 and a Retry-After header.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ClientIP(r, l.config.TrustProxy)
		result := l.Check(ip)
		if !result.Allowed {
			log.Ctx(r.Context()).Warn().
				Str("ip", ip).
				Str("path", r.URL.Path).
				Msg("Rate limit exceeded")
			retrySeconds := int(result.RetryAfter.Seconds()) + 1
			w.Header().Set("Retry-After", strconv.Itoa(retrySeconds))
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *Limiter) startCleanup() {
	l.cleanupOnce.Do(func() {
		go func() {
			ticker := time.NewTicker(5 * time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-l.done:
					return
				case <-ticker.C:
					l.cleanup()
				}
			}
		}()
	})
}

func (l *Limiter) cleanup() {
	now := l.clock.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	for k, e := range l.byIP {
		if now.Sub(e.lastAt) > l.config.Window {
			delete(l.byIP, k)
		}
	}
}

func hashKey(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}

// ClientIP extracts the client IP from a request.
// When trustProxy is true, uses the rightmost public IP from X-Forwarded-For.
// When trustProxy is false, ignores X-Forwarded-For entirely.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			parts := strings.Split(xff, ",")
			for i := len(parts) - 1; i >= 0; i-- {
				ip := strings.TrimSpace(parts[i])
				if ip != "" && !isPrivateIP(ip) {
					return ip
				}
			}
			return strings.TrimSpace(parts[len(parts)-1])
		}
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		if parsed := net.ParseIP(r.RemoteAddr); parsed != nil {
			return r.RemoteAddr
		}
		if idx := strings.LastIndex(r.RemoteAddr, ":"); idx != -1 {
			candidate := r.RemoteAddr[:idx]
			if net.ParseIP(candidate) != nil {
				return candidate
			}
		}
		return r.RemoteAddr
	}
	return ip
}

var privateNetworks []*net.IPNet

func init() {
	privateRanges := []string{
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"127.0.0.0/8",
		"::1/128",
		"fc00::/7",
		"fe80::/10",
	}
	for _, cidr := range privateRanges {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			panic("invalid private CIDR: " + cidr)
		}
		privateNetworks = append(privateNetworks, network)
	}
}

func isPrivateIP(ipStr string) bool {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return false
	}
	if ipv4 := ip.To4(); ipv4 != nil {
		ip = ipv4
	}
	for _, network := range privateNetworks {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}
