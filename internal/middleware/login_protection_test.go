// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLoginProtectionLockout(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{
		MaxFailedAttempts: 3,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Minute,
	})

	ip := "10.0.0.1"

	if locked, _ := lp.IsLocked(ip); locked {
		t.Fatal("fresh IP should not be locked")
	}

	lp.RecordFailedAttempt(ip)
	lp.RecordFailedAttempt(ip)
	if remaining := lp.GetRemainingAttempts(ip); remaining != 1 {
		t.Errorf("remaining = %d, want 1", remaining)
	}

	locked, duration := lp.RecordFailedAttempt(ip)
	if !locked {
		t.Fatal("third failure should lock")
	}
	if duration != time.Minute {
		t.Errorf("first lockout duration = %v, want 1m", duration)
	}

	if locked, _ := lp.IsLocked(ip); !locked {
		t.Error("IsLocked should report lockout")
	}
}

func TestLoginProtectionExponentialBackoff(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{
		MaxFailedAttempts: 1,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Hour,
	})

	ip := "10.0.0.2"

	_, first := lp.RecordFailedAttempt(ip) // count goes 0 -> 1, not locked yet
	if first != 0 {
		t.Fatalf("first attempt should not lock, got %v", first)
	}
	_, d1 := lp.RecordFailedAttempt(ip)
	if d1 != time.Minute {
		t.Errorf("first lockout = %v, want 1m", d1)
	}
	_, d2 := lp.RecordFailedAttempt(ip)
	if d2 != 2*time.Minute {
		t.Errorf("second lockout = %v, want 2m", d2)
	}
}

func TestLoginProtectionSuccessClears(t *testing.T) {
	lp := NewLoginProtection(DefaultLoginProtectionConfig())

	ip := "10.0.0.3"
	lp.RecordFailedAttempt(ip)
	lp.RecordFailedAttempt(ip)
	lp.RecordSuccessfulLogin(ip)

	if remaining := lp.GetRemainingAttempts(ip); remaining != 5 {
		t.Errorf("remaining after success = %d, want 5", remaining)
	}
}

func TestLoginProtectionMiddleware(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{
		IPRateLimit:       100, // rate limit out of the way
		IPBurst:           100,
		MaxFailedAttempts: 1,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Minute,
	})
	handler := lp.Middleware()(okHandler())

	// GET requests pass through untouched.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/login", nil)
	req.RemoteAddr = "10.0.0.4:1000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("GET = %d, want 200", rec.Code)
	}

	// Lock the IP, then POST should be rejected.
	lp.RecordFailedAttempt("10.0.0.4:1000")
	lp.RecordFailedAttempt("10.0.0.4:1000")

	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", nil)
	req.RemoteAddr = "10.0.0.4:1000"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("locked POST = %d, want 429", rec.Code)
	}
}
