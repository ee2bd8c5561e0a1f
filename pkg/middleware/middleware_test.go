package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	apperrors "tutorbook/pkg/errors"
	"tutorbook/pkg/logger"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"data":"ok"}`))
}

func decodeCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body apperrors.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode error body %q: %v", rec.Body.String(), err)
	}
	return body.Code
}

func TestRateLimit_PerClient(t *testing.T) {
	limiter := NewClientRateLimiter(2, time.Minute, nil, logger.Discard())
	defer limiter.Stop()

	handler := RateLimit(limiter)(http.HandlerFunc(okHandler))

	send := func(remote string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/teachers", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := send("10.0.0.1:1111"); code != http.StatusOK {
		t.Fatalf("first request status = %d", code)
	}
	if code := send("10.0.0.1:2222"); code != http.StatusOK {
		t.Fatalf("second request status = %d", code)
	}
	if code := send("10.0.0.1:3333"); code != http.StatusTooManyRequests {
		t.Errorf("third request status = %d, want 429", code)
	}
	if code := send("10.0.0.2:1111"); code != http.StatusOK {
		t.Errorf("other client status = %d, want 200", code)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		trusted []string
		remote  string
		xff     []string
		want    string
	}{
		{name: "no proxies ignores header", remote: "192.168.1.5:5555", xff: []string{"203.0.113.7"}, want: "192.168.1.5"},
		{name: "untrusted peer ignores header", trusted: []string{"10.0.0.0/8"}, remote: "192.168.1.5:5555", xff: []string{"203.0.113.7"}, want: "192.168.1.5"},
		{name: "trusted peer uses forwarded client", trusted: []string{"10.0.0.1"}, remote: "10.0.0.1:443", xff: []string{"203.0.113.7"}, want: "203.0.113.7"},
		{name: "spoofed leftmost hop is skipped", trusted: []string{"10.0.0.0/8"}, remote: "10.0.0.1:443", xff: []string{"1.2.3.4, 203.0.113.7, 10.0.0.2"}, want: "203.0.113.7"},
		{name: "repeated headers are joined", trusted: []string{"10.0.0.0/8"}, remote: "10.0.0.1:443", xff: []string{"1.2.3.4", "198.51.100.9"}, want: "198.51.100.9"},
		{name: "all hops trusted falls back to peer", trusted: []string{"10.0.0.0/8"}, remote: "10.0.0.1:443", xff: []string{"10.0.0.3"}, want: "10.0.0.1"},
		{name: "trusted peer without header", trusted: []string{"10.0.0.0/8"}, remote: "10.0.0.1:443", want: "10.0.0.1"},
		{name: "invalid entries ignored", trusted: []string{"not-an-ip"}, remote: "10.0.0.1:443", xff: []string{"203.0.113.7"}, want: "10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for _, v := range tt.xff {
				req.Header.Add("X-Forwarded-For", v)
			}
			if got := ClientIP(tt.trusted)(req); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRateLimit_RotatingForwardedForFromUntrustedPeer(t *testing.T) {
	limiter := NewClientRateLimiter(1, time.Minute, ClientIP([]string{"10.0.0.0/8"}), logger.Discard())
	defer limiter.Stop()
	handler := RateLimit(limiter)(http.HandlerFunc(okHandler))

	codes := make([]int, 0, 3)
	for _, fwd := range []string{"1.1.1.1", "2.2.2.2", "3.3.3.3"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.5:5555"
		req.Header.Set("X-Forwarded-For", fwd)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests || codes[2] != http.StatusTooManyRequests {
		t.Errorf("expected [200 429 429], got %v", codes)
	}
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	if len(limiter.limiters) != 1 {
		t.Errorf("expected one tracked client, got %d", len(limiter.limiters))
	}
}

func TestIdempotency_ReplaysPerCaller(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Hour)
	defer store.Stop()

	var calls int32
	handler := Idempotency(store, "")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"b1"}}`))
	}))

	send := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(`{}`))
		req.Header.Set(DefaultIdempotencyHeader, "key-1")
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	first := send("alice")
	second := send("alice")
	if second.Code != http.StatusCreated || second.Body.String() != first.Body.String() {
		t.Errorf("replay = %d %q, want cached 201 response", second.Code, second.Body.String())
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("handler calls = %d, want 1", calls)
	}

	send("bob")
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("a different caller must not get the cached response")
	}
}

func TestRecovery(t *testing.T) {
	handler := Recovery(logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if code := decodeCode(t, rec); code != apperrors.CodeInternal {
		t.Errorf("code = %q, want %q", code, apperrors.CodeInternal)
	}
}

func TestContentTypeValidation(t *testing.T) {
	handler := ContentTypeValidation(logger.Discard())(http.HandlerFunc(okHandler))

	tests := []struct {
		name        string
		method      string
		body        string
		contentType string
		want        int
	}{
		{"json post", http.MethodPost, `{}`, "application/json; charset=utf-8", http.StatusOK},
		{"form post", http.MethodPost, `a=b`, "application/x-www-form-urlencoded", http.StatusUnsupportedMediaType},
		{"get without body", http.MethodGet, "", "", http.StatusOK},
		{"delete without body", http.MethodDelete, "", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/v1/bookings", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestRequestTimeout(t *testing.T) {
	handler := RequestTimeout(20 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want 504", rec.Code)
	}
}

func TestRequestLogging_SetsRequestID(t *testing.T) {
	var seen string
	handler := RequestLogging(logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" || rec.Header().Get(RequestIDHeader) != seen {
		t.Errorf("request id = %q, header = %q", seen, rec.Header().Get(RequestIDHeader))
	}
}

func TestCanonicalPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "/", want: "/"},
		{in: "/api/v1/teachers", want: "/api/v1/teachers"},
		{in: "/api/v1/teachers/652f1c2e9b1e8a0012345678/availability", want: "/api/v1/teachers/:id/availability"},
		{in: "/api/v1/bookings/652f1c2e9b1e8a0012345678", want: "/api/v1/bookings/:id"},
	}
	for _, tt := range tests {
		if got := canonicalPath(tt.in); got != tt.want {
			t.Errorf("canonicalPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
