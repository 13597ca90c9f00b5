package scheduler

import (
	"testing"
	"time"
)

func TestNextRun(t *testing.T) {
	t.Parallel()

	s := NewDailyScheduler(3, 0, time.UTC)

	before := time.Date(2026, time.March, 10, 1, 30, 0, 0, time.UTC)
	next := s.nextRun(before)
	want := time.Date(2026, time.March, 10, 3, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("before slot: expected %v, got %v", want, next)
	}

	after := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	next = s.nextRun(after)
	want = time.Date(2026, time.March, 11, 3, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("after slot: expected %v, got %v", want, next)
	}

	exact := time.Date(2026, time.March, 10, 3, 0, 0, 0, time.UTC)
	next = s.nextRun(exact)
	if !next.Equal(want) {
		t.Fatalf("exact slot should roll to tomorrow, got %v", next)
	}
}
