package engine

import (
	"context"
	"testing"
	"time"
)

func TestFixedStep_AccumulatesPartialFrames(t *testing.T) {
	l := NewFixedStep(10 * time.Millisecond)
	calls := 0
	update := func(dt float64) bool {
		if dt != 0.01 {
			t.Errorf("Expected dt 0.01, got %v", dt)
		}
		calls++
		return true
	}

	l.Advance(4*time.Millisecond, update)
	if calls != 0 {
		t.Fatalf("Expected no update before a full step, got %d", calls)
	}
	l.Advance(7*time.Millisecond, update)
	if calls != 1 {
		t.Fatalf("Expected 1 update, got %d", calls)
	}
	l.Advance(25*time.Millisecond, update)
	if calls != 3 {
		t.Errorf("Expected 3 updates, got %d", calls)
	}
}

func TestFixedStep_DropsBacklogBeyondCatchUp(t *testing.T) {
	l := NewFixedStep(time.Millisecond)
	l.MaxCatchUp = 3
	calls := 0
	l.Advance(time.Second, func(float64) bool { calls++; return true })

	if calls != 3 {
		t.Errorf("Expected catch-up capped at 3, got %d", calls)
	}
	calls = 0
	l.Advance(0, func(float64) bool { calls++; return true })
	if calls != 0 {
		t.Errorf("Expected backlog dropped, got %d extra updates", calls)
	}
}

func TestFixedStep_TickWithManualClock(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	l := NewFixedStep(16 * time.Millisecond)
	l.Clock = clock

	calls := 0
	update := func(float64) bool { calls++; return true }

	l.Tick(update) // Primes the clock
	clock.Advance(48 * time.Millisecond)
	l.Tick(update)

	if calls != 3 || l.Steps() != 3 {
		t.Errorf("Expected 3 updates, got %d (steps %d)", calls, l.Steps())
	}
}

func TestFixedStep_RunStopsOnRequest(t *testing.T) {
	l := NewFixedStep(time.Millisecond)
	calls := 0

	err := l.Run(context.Background(), func(float64) bool {
		calls++
		return calls < 5
	})
	if err != nil {
		t.Errorf("Expected nil error on requested stop, got %v", err)
	}
	if calls != 5 {
		t.Errorf("Expected 5 updates, got %d", calls)
	}
}

func TestFixedStep_RunCancelled(t *testing.T) {
	l := NewFixedStep(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := l.Run(ctx, func(float64) bool { return true }); err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
