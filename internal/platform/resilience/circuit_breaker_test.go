package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	breaker := NewCircuitBreaker(3, time.Minute, 1)

	for range 2 {
		if err := breaker.Allow(); err != nil {
			t.Fatalf("Allow returned error while closed: %v", err)
		}
		breaker.RecordFailure()
	}
	if breaker.State() != CircuitStateClosed {
		t.Fatalf("expected closed below threshold, got %s", breaker.State())
	}

	breaker.RecordFailure()
	if breaker.State() != CircuitStateOpen {
		t.Fatalf("expected open at threshold, got %s", breaker.State())
	}

	if err := breaker.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	breaker := NewCircuitBreaker(2, time.Minute, 1)

	breaker.RecordFailure()
	breaker.RecordSuccess()
	breaker.RecordFailure()

	if breaker.State() != CircuitStateClosed {
		t.Fatalf("expected closed after interleaved success, got %s", breaker.State())
	}
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	breaker := NewCircuitBreaker(1, 10*time.Second, 1)

	current := time.Now()
	breaker.now = func() time.Time { return current }

	breaker.RecordFailure()
	if err := breaker.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen right after opening, got %v", err)
	}

	current = current.Add(11 * time.Second)
	if err := breaker.Allow(); err != nil {
		t.Fatalf("expected probe allowed after open timeout, got %v", err)
	}

	breaker.RecordSuccess()
	if breaker.State() != CircuitStateClosed {
		t.Fatalf("expected closed after probe success, got %s", breaker.State())
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	breaker := NewCircuitBreaker(1, 10*time.Second, 1)

	current := time.Now()
	breaker.now = func() time.Time { return current }

	breaker.RecordFailure()
	current = current.Add(11 * time.Second)

	if err := breaker.Allow(); err != nil {
		t.Fatalf("expected probe allowed, got %v", err)
	}
	breaker.RecordFailure()

	if err := breaker.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen after failed probe, got %v", err)
	}
}

func TestCircuitBreaker_HalfOpenLimitsInFlight(t *testing.T) {
	breaker := NewCircuitBreaker(1, 10*time.Second, 2)

	current := time.Now()
	breaker.now = func() time.Time { return current }

	breaker.RecordFailure()
	current = current.Add(11 * time.Second)

	if err := breaker.Allow(); err != nil {
		t.Fatalf("expected first probe allowed, got %v", err)
	}
	if err := breaker.Allow(); err != nil {
		t.Fatalf("expected second probe allowed, got %v", err)
	}
	if err := breaker.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected third probe rejected, got %v", err)
	}
}
