package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func noopHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// ---------------------------------------------------------------------------
// SecurityHeaders
// ---------------------------------------------------------------------------

func TestSecurityHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	SecurityHeaders(noopHandler()).ServeHTTP(rec, req)

	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	} {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s: expected %q, got %q", header, want, got)
		}
	}
}

// ---------------------------------------------------------------------------
// RateLimiter
// ---------------------------------------------------------------------------

func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	rl := NewRateLimiter(3)
	now := time.Now()

	for i := 0; i < 3; i++ {
		if ok, _ := rl.allow("10.0.0.1", now); !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	rl := NewRateLimiter(2)
	now := time.Now()

	rl.allow("10.0.0.1", now)
	rl.allow("10.0.0.1", now)

	ok, retryAfter := rl.allow("10.0.0.1", now)
	if ok {
		t.Fatal("third request should be blocked")
	}
	if retryAfter < 1 {
		t.Errorf("expected a positive Retry-After, got %d", retryAfter)
	}
}

func TestRateLimiter_WindowSlides(t *testing.T) {
	rl := NewRateLimiter(1)
	start := time.Now()

	if ok, _ := rl.allow("10.0.0.1", start); !ok {
		t.Fatal("first request should be allowed")
	}
	if ok, _ := rl.allow("10.0.0.1", start.Add(30*time.Second)); ok {
		t.Fatal("second request inside the window should be blocked")
	}
	if ok, _ := rl.allow("10.0.0.1", start.Add(61*time.Second)); !ok {
		t.Fatal("request after the window expires should be allowed")
	}
}

func TestRateLimiter_PerIP(t *testing.T) {
	rl := NewRateLimiter(1)
	now := time.Now()

	rl.allow("10.0.0.1", now)
	if ok, _ := rl.allow("10.0.0.2", now); !ok {
		t.Fatal("a different IP must have its own budget")
	}
}

func TestRateLimiter_Middleware429(t *testing.T) {
	rl := NewRateLimiter(1)
	handler := rl.Middleware(noopHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/messages", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected a Retry-After header on 429")
	}
}

// ---------------------------------------------------------------------------
// clientIP
// ---------------------------------------------------------------------------

func TestClientIP(t *testing.T) {
	rl := NewRateLimiter(1)

	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		want       string
	}{
		{"no proxy header", "10.0.0.1:1234", "", "10.0.0.1"},
		{"single proxy", "172.17.0.1:1234", "203.0.113.7", "203.0.113.7"},
		// Only the rightmost entry was appended by our proxy; anything to
		// the left is attacker-controlled.
		{"spoofed chain", "172.17.0.1:1234", "1.2.3.4, 203.0.113.7", "203.0.113.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if got := rl.clientIP(req); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
