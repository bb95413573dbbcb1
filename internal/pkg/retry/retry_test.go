package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDoSucceedsFirstAttempt(t *testing.T) {
	policy := Policy{MaxAttempts: 3, Delay: time.Second, Sleep: func(time.Duration) {
		t.Fatal("should not sleep on success")
	}}

	attempts, err := policy.Do(context.Background(), func() error { return nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 1 {
		t.Fatalf("got %d attempts, want 1", attempts)
	}
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	var slept []time.Duration
	policy := Policy{MaxAttempts: 5, Delay: 2 * time.Second, Sleep: func(d time.Duration) {
		slept = append(slept, d)
	}}

	calls := 0
	attempts, err := policy.Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 3 {
		t.Fatalf("got %d attempts, want 3", attempts)
	}
	if len(slept) != 2 {
		t.Fatalf("slept %d times, want 2", len(slept))
	}
	for _, d := range slept {
		if d != 2*time.Second {
			t.Fatalf("slept %v, want 2s", d)
		}
	}
}

func TestDoExhaustsAttempts(t *testing.T) {
	policy := Policy{MaxAttempts: 3, Sleep: func(time.Duration) {}}

	wantErr := errors.New("still broken")
	attempts, err := policy.Do(context.Background(), func() error { return wantErr })
	if err != wantErr {
		t.Fatalf("got %v, want last error", err)
	}
	if attempts != 3 {
		t.Fatalf("got %d attempts, want 3", attempts)
	}
}

func TestDoZeroAttemptsRunsOnce(t *testing.T) {
	policy := Policy{Sleep: func(time.Duration) {}}

	calls := 0
	attempts, _ := policy.Do(context.Background(), func() error {
		calls++
		return errors.New("nope")
	})
	if calls != 1 || attempts != 1 {
		t.Fatalf("calls=%d attempts=%d, want 1/1", calls, attempts)
	}
}

func TestDoStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	policy := NewPolicy(3, 0)
	attempts, err := policy.Do(ctx, func() error {
		t.Fatal("fn should not run after cancellation")
		return nil
	})
	if err != context.Canceled {
		t.Fatalf("got %v, want context.Canceled", err)
	}
	if attempts != 0 {
		t.Fatalf("got %d attempts, want 0", attempts)
	}
}
