package service

import (
	"testing"
	"time"
)

func TestElapsedConsumesEntry(t *testing.T) {
	timers := NewTimers()
	timers.Start("req-1")
	time.Sleep(5 * time.Millisecond)

	first := timers.Elapsed("req-1")
	if first <= 0 {
		t.Fatalf("first Elapsed = %v, want > 0", first)
	}

	second := timers.Elapsed("req-1")
	if second != 0 {
		t.Errorf("second Elapsed = %v, want 0 (entry consumed)", second)
	}
}

func TestElapsedUnknownID(t *testing.T) {
	timers := NewTimers()
	if d := timers.Elapsed("never-started"); d != 0 {
		t.Errorf("Elapsed for unknown id = %v, want 0", d)
	}
}

func TestTimersIndependentIDs(t *testing.T) {
	timers := NewTimers()
	timers.Start("a")
	timers.Start("b")

	if d := timers.Elapsed("a"); d < 0 {
		t.Errorf("Elapsed(a) = %v", d)
	}
	// consuming "a" must not touch "b"
	if d := timers.Elapsed("b"); d < 0 {
		t.Errorf("Elapsed(b) = %v", d)
	}
}
