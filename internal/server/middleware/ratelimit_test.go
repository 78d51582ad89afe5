package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/chatmodels/internal/server/response"
)

// TestRateLimiter_Allow tests basic rate limiting logic.
func TestRateLimiter_Allow(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name          string
		limit         int
		requests      int
		expectedAllow int
	}{
		{"within limit", 10, 5, 5},
		{"at limit", 10, 10, 10},
		{"exceeds limit", 10, 15, 10},
		{"zero limit", 0, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewRateLimiter(tt.limit, &logger)

			allowed := 0
			for i := 0; i < tt.requests; i++ {
				if rl.allow("10.0.0.1") {
					allowed++
				}
			}
			if allowed != tt.expectedAllow {
				t.Errorf("expected %d allowed, got %d", tt.expectedAllow, allowed)
			}
		})
	}
}

// TestRateLimiter_WindowReset verifies tokens refill after the interval.
func TestRateLimiter_WindowReset(t *testing.T) {
	logger := zerolog.Nop()
	rl := newRateLimiter(1, 20*time.Millisecond, &logger)

	if !rl.allow("10.0.0.1") {
		t.Fatal("first request should be allowed")
	}
	if rl.allow("10.0.0.1") {
		t.Fatal("second request should be limited")
	}

	time.Sleep(30 * time.Millisecond)
	if !rl.allow("10.0.0.1") {
		t.Error("request after window should be allowed")
	}
}

// TestRateLimiter_PerAddress verifies addresses are limited independently.
func TestRateLimiter_PerAddress(t *testing.T) {
	logger := zerolog.Nop()
	rl := NewRateLimiter(1, &logger)

	if !rl.allow("10.0.0.1") || !rl.allow("10.0.0.2") {
		t.Error("each address should get its own budget")
	}
	if rl.Visitors() != 2 {
		t.Errorf("expected 2 visitors, got %d", rl.Visitors())
	}
}

// TestRateLimiter_Concurrent verifies the budget holds under concurrency.
func TestRateLimiter_Concurrent(t *testing.T) {
	logger := zerolog.Nop()
	rl := NewRateLimiter(50, &logger)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if rl.allow("10.0.0.1") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != 50 {
		t.Errorf("expected 50 allowed, got %d", allowed)
	}
}

// TestRateLimit tests the middleware response when limited.
func TestRateLimit(t *testing.T) {
	logger := zerolog.Nop()
	handler := RateLimit(NewRateLimiter(1, &logger))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/keys", nil)
	req.RemoteAddr = "192.168.1.1:1234"

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", w.Code)
	}

	// Different port, same host
	req.RemoteAddr = "192.168.1.1:5678"
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}
	if got := w.Header().Get("Retry-After"); got != "60" {
		t.Errorf("expected Retry-After 60, got %q", got)
	}

	var body response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Error == nil || body.Error.Code != "RATE_LIMITED" {
		t.Errorf("expected RATE_LIMITED error, got %+v", body.Error)
	}
}

// TestRateLimit_RetryAfterFollowsWindow verifies Retry-After reflects the
// configured window rather than a fixed minute.
func TestRateLimit_RetryAfterFollowsWindow(t *testing.T) {
	logger := zerolog.Nop()
	handler := RateLimit(newRateLimiter(1, 5*time.Second, &logger))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/keys", nil)
	req.RemoteAddr = "192.168.1.1:1234"
	handler.ServeHTTP(httptest.NewRecorder(), req)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if got := w.Header().Get("Retry-After"); got != "5" {
		t.Errorf("expected Retry-After 5, got %q", got)
	}
}

// TestRateLimit_ForwardedForCannotEvade verifies that rotating
// X-Forwarded-For does not reset the budget of a directly connected client.
func TestRateLimit_ForwardedForCannotEvade(t *testing.T) {
	logger := zerolog.Nop()
	handler := RateLimit(NewRateLimiter(1, &logger))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for _, forwarded := range []string{"198.51.100.1", "198.51.100.2", "198.51.100.3"} {
		req := httptest.NewRequest("GET", "/api/keys", nil)
		req.RemoteAddr = "192.168.1.1:1234"
		req.Header.Set("X-Forwarded-For", forwarded)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	want := []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}
	for i := range want {
		if codes[i] != want[i] {
			t.Errorf("request %d: expected %d, got %d", i, want[i], codes[i])
		}
	}
}

// TestRetryAfter tests rounding of the wait duration.
func TestRetryAfter(t *testing.T) {
	tests := []struct {
		wait time.Duration
		want string
	}{
		{0, "1"},
		{-time.Second, "1"},
		{1500 * time.Millisecond, "2"},
		{time.Minute, "60"},
	}
	for _, tt := range tests {
		if got := retryAfter(tt.wait); got != tt.want {
			t.Errorf("retryAfter(%v) = %q, want %q", tt.wait, got, tt.want)
		}
	}
}

// TestClientAddr tests client address extraction.
func TestClientAddr(t *testing.T) {
	logger := zerolog.Nop()
	direct := NewRateLimiter(1, &logger)
	proxied := NewRateLimiter(1, &logger, TrustForwardedFor(true))

	tests := []struct {
		name      string
		rl        *RateLimiter
		forwarded string
		want      string
	}{
		{"peer address without port", direct, "", "10.1.2.3"},
		{"forwarded header ignored by default", direct, "203.0.113.7", "10.1.2.3"},
		{"trusted proxy single hop", proxied, "203.0.113.7", "203.0.113.7"},
		{"trusted proxy keeps last hop", proxied, "198.51.100.9, 203.0.113.7", "203.0.113.7"},
		{"trusted proxy without header", proxied, "", "10.1.2.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = "10.1.2.3:4444"
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if got := tt.rl.clientAddr(req); got != tt.want {
				t.Errorf("clientAddr() = %q, want %q", got, tt.want)
			}
		})
	}
}
