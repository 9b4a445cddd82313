package ratelimit

import (
	"testing"
	"time"
)

func TestInMemoryRateLimiter_LimitsPerKey(t *testing.T) {
	limiter := NewInMemoryRateLimiter(1, time.Second)

	limited, err := limiter.IsLimited("client-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if limited {
		t.Fatalf("first request for client-a should not be limited")
	}

	limited, err = limiter.IsLimited("client-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !limited {
		t.Fatalf("second immediate request for client-a should be limited")
	}

	limited, err = limiter.IsLimited("client-b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if limited {
		t.Fatalf("first request for client-b should not be limited (per-key limiter)")
	}
}

func TestInMemoryRateLimiter_AllowsBurstUpToLimit(t *testing.T) {
	limiter := NewInMemoryRateLimiter(5, time.Minute)

	for i := 0; i < 5; i++ {
		limited, err := limiter.IsLimited("burst")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if limited {
			t.Fatalf("request %d within burst should not be limited", i+1)
		}
	}

	limited, err := limiter.IsLimited("burst")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !limited {
		t.Fatalf("request beyond burst should be limited")
	}
}

func TestNewRateLimiter_DefaultsToInMemory(t *testing.T) {
	limiter := NewRateLimiter(&RateLimitConfig{Requests: 10, Window: time.Minute})

	if _, ok := limiter.(*InMemoryRateLimiter); !ok {
		t.Fatalf("expected in-memory limiter when Redis is not configured, got %T", limiter)
	}

	requests, window := limiter.GetLimitDetails()
	if requests != 10 || window != time.Minute {
		t.Fatalf("unexpected limit details: %d, %v", requests, window)
	}
}
