package worker

import (
	"context"
	"testing"
	"time"
)

func TestPacer_DelayBetweenRequests(t *testing.T) {
	p := NewPacer(1000, 1, 30*time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := p.Wait(ctx); err != nil {
			t.Fatalf("Wait failed: %v", err)
		}
	}
	elapsed := time.Since(start)

	if elapsed < 90*time.Millisecond {
		t.Errorf("Expected at least 90ms for 3 delayed waits, got %v", elapsed)
	}
}

func TestPacer_CancelDuringDelay(t *testing.T) {
	p := NewPacer(1000, 1, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- p.Wait(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if err == nil {
			t.Error("Expected context error, got nil")
		}
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after cancellation")
	}
}

func TestPacer_DefensiveDefaults(t *testing.T) {
	p := NewPacer(0, 0, 0)
	if err := p.Wait(context.Background()); err != nil {
		t.Errorf("Defaulted pacer should still work, got %v", err)
	}
}

func TestPacer_Allow(t *testing.T) {
	p := NewPacer(1, 1, 0)
	if !p.Allow() {
		t.Error("First request should be allowed")
	}
	if p.Allow() {
		t.Error("Burst of 1 exhausted, second immediate request should be denied")
	}
}
