package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestLimiter(max int, window time.Duration) (*Limiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)}
	limiter := New(&Config{MaxPerWindow: max, Window: window, Clock: clock})
	return limiter, clock
}

func TestCheck_AllowsUpToLimit(t *testing.T) {
	limiter, _ := newTestLimiter(3, time.Minute)
	defer limiter.Close()

	for i := 0; i < 3; i++ {
		if result := limiter.Check("1.2.3.4"); !result.Allowed {
			t.Fatalf("request %d blocked under limit", i+1)
		}
	}

	result := limiter.Check("1.2.3.4")
	if result.Allowed {
		t.Fatal("request over limit allowed")
	}
	if result.RetryAfter <= 0 || result.RetryAfter > time.Minute {
		t.Fatalf("retry after out of range: %v", result.RetryAfter)
	}

	// Other clients are counted separately.
	if result := limiter.Check("5.6.7.8"); !result.Allowed {
		t.Fatal("separate client blocked")
	}
}

func TestCheck_WindowResets(t *testing.T) {
	limiter, clock := newTestLimiter(1, time.Minute)
	defer limiter.Close()

	if result := limiter.Check("1.2.3.4"); !result.Allowed {
		t.Fatal("first request blocked")
	}
	if result := limiter.Check("1.2.3.4"); result.Allowed {
		t.Fatal("second request in window allowed")
	}

	clock.advance(time.Minute)
	if result := limiter.Check("1.2.3.4"); !result.Allowed {
		t.Fatal("request after window reset blocked")
	}
}

func TestMiddleware(t *testing.T) {
	limiter, _ := newTestLimiter(1, time.Minute)
	defer limiter.Close()

	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	request := httptest.NewRequest(http.MethodGet, "/api/v1/courts", nil)
	request.RemoteAddr = "1.2.3.4:5000"

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	if recorder.Code != http.StatusOK {
		t.Fatalf("first request: status %d", recorder.Code)
	}

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	if recorder.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: status %d, want 429", recorder.Code)
	}
	if recorder.Header().Get("Retry-After") == "" {
		t.Fatal("Retry-After header missing")
	}
}

func TestClientIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "1.2.3.4:5000"

	if got := ClientIP(request, false); got != "1.2.3.4" {
		t.Fatalf("direct: got %s", got)
	}

	request.Header.Set("X-Forwarded-For", "9.9.9.9, 10.0.0.1")
	if got := ClientIP(request, false); got != "1.2.3.4" {
		t.Fatalf("untrusted proxy must ignore XFF: got %s", got)
	}
	if got := ClientIP(request, true); got != "9.9.9.9" {
		t.Fatalf("trusted proxy: got %s", got)
	}
}
