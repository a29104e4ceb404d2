package engine

import (
	"testing"
	"time"
)

func TestMockClock(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)

	if !clock.Now().Equal(start) {
		t.Errorf("Expected %v, got %v", start, clock.Now())
	}

	clock.Advance(300 * time.Millisecond)
	if got := clock.Now().Sub(start); got != 300*time.Millisecond {
		t.Errorf("Expected 300ms after Advance, got %v", got)
	}

	later := start.Add(time.Hour)
	clock.Set(later)
	if !clock.Now().Equal(later) {
		t.Errorf("Expected %v after Set, got %v", later, clock.Now())
	}
}

func TestSystemClock(t *testing.T) {
	before := time.Now()
	got := SystemClock{}.Now()
	if got.Before(before) {
		t.Errorf("Expected system clock not to run backwards: %v < %v", got, before)
	}
}
