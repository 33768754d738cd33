package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/skipjar/skipjar/internal/ctxkeys"
	"github.com/skipjar/skipjar/internal/metrics"
	"github.com/skipjar/skipjar/internal/service"
)

func echoActor() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(ctxkeys.ActorID(r.Context())))
	})
}

func TestBearerIdentity(t *testing.T) {
	auth := service.NewAuthService("secret", time.Hour)
	valid, err := auth.GenerateJWT("user-1")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantActor  string
	}{
		{"no header", "", http.StatusOK, ""},
		{"valid token", "Bearer " + valid, http.StatusOK, "user-1"},
		{"invalid token", "Bearer nope", http.StatusUnauthorized, ""},
		{"not bearer", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, ""},
	}

	handler := BearerIdentity(auth)(echoActor())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/skip-log", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && rec.Body.String() != tt.wantActor {
				t.Errorf("actor = %q, want %q", rec.Body.String(), tt.wantActor)
			}
		})
	}
}

func TestBearerIdentity_DisabledIgnoresHeader(t *testing.T) {
	handler := BearerIdentity(service.NewAuthService("", time.Hour))(echoActor())
	req := httptest.NewRequest(http.MethodPost, "/skip-log", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "" {
		t.Errorf("status=%d actor=%q", rec.Code, rec.Body.String())
	}
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	if !rl.Allow("10.0.0.1") || !rl.Allow("10.0.0.1") {
		t.Fatal("first two requests should pass")
	}
	if rl.Allow("10.0.0.1") {
		t.Error("third request should be limited")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("other IPs have their own budget")
	}

	now = now.Add(61 * time.Second)
	if !rl.Allow("10.0.0.1") {
		t.Error("window should have expired")
	}

	now = now.Add(5 * time.Minute)
	rl.cleanup()
	if len(rl.requests) != 0 {
		t.Errorf("cleanup left %d entries", len(rl.requests))
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	handler := RateLimit(NewRateLimiter(1, time.Minute))(echoActor())

	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodPost, "/skip-log", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Errorf("request %d: status = %d, want %d", i, rec.Code, want)
		}
	}
}

func TestRateLimit_NonPositiveLimitDisables(t *testing.T) {
	for _, rl := range []*RateLimiter{
		NewRateLimiter(0, time.Minute),
		NewRateLimiter(-1, time.Minute),
		NewRateLimiter(5, 0),
	} {
		if rl.Enabled() {
			t.Errorf("limit=%d window=%v should be disabled", rl.limit, rl.window)
		}
		handler := RateLimit(rl)(echoActor())
		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodPost, "/skip-log", nil)
			req.RemoteAddr = "192.0.2.1:1234"
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != http.StatusOK {
				t.Errorf("limit=%d request %d: status = %d, want 200", rl.limit, i, rec.Code)
			}
		}
		if len(rl.requests) != 0 {
			t.Errorf("disabled limiter tracked %d IPs", len(rl.requests))
		}
	}
}

func TestRequestLogging_CountsByStatus(t *testing.T) {
	teapot := RequestLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	counter := metrics.HTTPRequests.WithLabelValues(http.MethodGet, "418")
	before := promtestutil.ToFloat64(counter)

	teapot.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/brew", nil))
	if got := promtestutil.ToFloat64(counter); got != before+1 {
		t.Errorf("counter = %v, want %v", got, before+1)
	}

	// health checks are not counted
	teapot.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if got := promtestutil.ToFloat64(counter); got != before+1 {
		t.Errorf("counter after health check = %v, want %v", got, before+1)
	}
}
