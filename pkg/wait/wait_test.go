package wait

import (
	"errors"
	"testing"
	"time"
)

func TestFor_PredicateBecomesTrue(t *testing.T) {
	tests := []struct {
		name      string
		trueAfter int // ticks until the predicate holds
	}{
		{name: "immediately true", trueAfter: 0},
		{name: "true after 3 ticks", trueAfter: 3},
		{name: "true after 10 ticks", trueAfter: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			start := time.Now()
			err := For(func() (bool, error) {
				calls++
				return calls > tt.trueAfter, nil
			}, Options{Timeout: 2 * time.Second, Interval: 10 * time.Millisecond})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if calls != tt.trueAfter+1 {
				t.Errorf("got %d predicate calls, want %d", calls, tt.trueAfter+1)
			}
			if elapsed := time.Since(start); elapsed >= 2*time.Second {
				t.Errorf("wait consumed the full timeout (%v) despite success", elapsed)
			}
		})
	}
}

func TestFor_Timeout(t *testing.T) {
	timeout := 100 * time.Millisecond
	start := time.Now()
	err := For(func() (bool, error) { return false, nil },
		Options{Timeout: timeout, Interval: 10 * time.Millisecond})

	var te *TimeoutError
	if !errors.As(err, &te) {
		t.Fatalf("got %v, want *TimeoutError", err)
	}
	if te.Timeout != timeout {
		t.Errorf("got timeout %v in error, want %v", te.Timeout, timeout)
	}
	if elapsed := time.Since(start); elapsed < timeout {
		t.Errorf("wait gave up after %v, before the %v timeout", elapsed, timeout)
	}
}

func TestFor_TransientErrorsBehaveLikeFalse(t *testing.T) {
	timeout := 100 * time.Millisecond
	start := time.Now()
	err := For(func() (bool, error) {
		return false, NotReady("control not materialized")
	}, Options{Timeout: timeout, Interval: 10 * time.Millisecond})

	var te *TimeoutError
	if !errors.As(err, &te) {
		t.Fatalf("got %v, want *TimeoutError", err)
	}
	if te.LastErr == nil || !errors.Is(te.LastErr, ErrNotReady) {
		t.Errorf("timeout error does not carry the last transient state: %v", te.LastErr)
	}
	if elapsed := time.Since(start); elapsed < timeout {
		t.Errorf("wait gave up after %v, before the %v timeout", elapsed, timeout)
	}
}

func TestFor_NonTransientErrorAborts(t *testing.T) {
	fatal := errors.New("connection severed")
	calls := 0
	err := For(func() (bool, error) {
		calls++
		return false, fatal
	}, Options{Timeout: time.Second, Interval: 10 * time.Millisecond})

	if !errors.Is(err, fatal) {
		t.Fatalf("got %v, want the predicate's error", err)
	}
	if calls != 1 {
		t.Errorf("predicate called %d times, want 1 (no retries on fatal errors)", calls)
	}
}

func TestFor_TimeoutErrorIsTransient(t *testing.T) {
	// A timed-out inner wait must count as "false this tick" in an outer
	// polling loop, not abort it.
	inner := &TimeoutError{Timeout: time.Second}
	if !Transient(inner) {
		t.Error("TimeoutError should be transient")
	}
}

func TestTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "wrapped ErrNotReady", err: NotReady("no window yet"), want: true},
		{name: "bare ErrNotReady", err: ErrNotReady, want: true},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Transient(tt.err); got != tt.want {
				t.Errorf("Transient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestForTrue(t *testing.T) {
	calls := 0
	err := ForTrue(func() bool {
		calls++
		return calls >= 2
	}, Options{Timeout: time.Second, Interval: 5 * time.Millisecond})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
