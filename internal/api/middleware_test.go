package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitRejectsPastBurst(t *testing.T) {
	// 2 requests per minute with burst 1: the second immediate request
	// from the same IP must be rejected.
	handler := RateLimitMiddleware(2, 1, time.Minute)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/players", nil)
	req.RemoteAddr = "10.0.0.1:55001"

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, req)
	if first.Code != http.StatusOK {
		t.Fatalf("first request = %d, want 200", first.Code)
	}

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req)
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second request = %d, want 429", second.Code)
	}

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(second.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Error.Code != "RATE_LIMITED" {
		t.Fatalf("error code = %q, want RATE_LIMITED", resp.Error.Code)
	}
}

func TestRateLimitRetryAfterTracksWindow(t *testing.T) {
	handler := RateLimitMiddleware(1, 1, 90*time.Second)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:55002"

	handler.ServeHTTP(httptest.NewRecorder(), req)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "90" {
		t.Fatalf("Retry-After = %q, want 90", got)
	}
}

func TestRateLimitBucketsPerIP(t *testing.T) {
	handler := RateLimitMiddleware(1, 1, time.Minute)(okHandler())

	a := httptest.NewRequest(http.MethodGet, "/", nil)
	a.RemoteAddr = "10.0.0.3:55003"
	handler.ServeHTTP(httptest.NewRecorder(), a)

	b := httptest.NewRequest(http.MethodGet, "/", nil)
	b.RemoteAddr = "10.0.0.4:55004"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, b)

	if rec.Code != http.StatusOK {
		t.Fatalf("fresh IP = %d, want 200", rec.Code)
	}
}
