package util

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestBreaker(threshold int, resetTimeout time.Duration, healthCheckFn HealthCheckFunction) *CircuitBreaker {
	return NewCircuitBreaker(threshold, resetTimeout, time.Hour, healthCheckFn, zap.NewNop())
}

func TestCircuitOpensAtThreshold(t *testing.T) {
	cb := newTestBreaker(3, time.Minute, nil)

	cb.RecordFailure(0)
	cb.RecordFailure(0)
	if cb.GetState() != CircuitStateClosed {
		t.Fatalf("state = %s, want CLOSED below threshold", cb.GetState())
	}

	cb.RecordFailure(0)
	if cb.GetState() != CircuitStateOpen {
		t.Fatalf("state = %s, want OPEN at threshold", cb.GetState())
	}
	if cb.CanExecute() {
		t.Error("an open circuit must not execute")
	}
}

func TestCircuitRecoversViaTimer(t *testing.T) {
	cb := newTestBreaker(1, 10*time.Millisecond, nil)

	cb.RecordFailure(0)
	if cb.GetState() != CircuitStateOpen {
		t.Fatalf("state = %s, want OPEN", cb.GetState())
	}

	time.Sleep(20 * time.Millisecond)

	if cb.GetState() != CircuitStateHalfOpen {
		t.Fatalf("state = %s, want HALF_OPEN after the reset timeout", cb.GetState())
	}
	if !cb.CanExecute() {
		t.Error("a half-open circuit allows probes")
	}

	cb.RecordSuccess()
	if cb.GetState() != CircuitStateClosed {
		t.Errorf("state = %s, want CLOSED after a successful probe", cb.GetState())
	}
}

func TestCircuitReopensOnHalfOpenFailure(t *testing.T) {
	cb := newTestBreaker(1, 10*time.Millisecond, nil)

	cb.RecordFailure(0)
	time.Sleep(20 * time.Millisecond)
	if cb.GetState() != CircuitStateHalfOpen {
		t.Fatalf("state = %s, want HALF_OPEN", cb.GetState())
	}

	cb.RecordFailure(0)
	if cb.GetState() != CircuitStateOpen {
		t.Errorf("state = %s, want OPEN after a failed probe", cb.GetState())
	}
}

func TestCircuitCustomTimeoutDelaysRetry(t *testing.T) {
	cb := newTestBreaker(1, 10*time.Millisecond, nil)

	cb.RecordFailure(time.Hour)
	time.Sleep(20 * time.Millisecond)

	if cb.GetState() != CircuitStateOpen {
		t.Errorf("state = %s, want OPEN with a custom timeout pending", cb.GetState())
	}
}

func TestCircuitSuccessResetsFailureCount(t *testing.T) {
	cb := newTestBreaker(3, time.Minute, nil)

	cb.RecordFailure(0)
	cb.RecordFailure(0)
	cb.RecordSuccess()
	cb.RecordFailure(0)
	cb.RecordFailure(0)

	if cb.GetState() != CircuitStateClosed {
		t.Errorf("state = %s, want CLOSED after the count was reset", cb.GetState())
	}
}

func TestCircuitManualReset(t *testing.T) {
	cb := newTestBreaker(1, time.Hour, nil)

	cb.RecordFailure(0)
	if cb.GetState() != CircuitStateOpen {
		t.Fatalf("state = %s, want OPEN", cb.GetState())
	}

	cb.Reset()
	if cb.GetState() != CircuitStateClosed {
		t.Errorf("state = %s, want CLOSED after manual reset", cb.GetState())
	}

	status := cb.GetStatus()
	if status.FailureCount != 0 {
		t.Errorf("failure count = %d, want 0", status.FailureCount)
	}
}
