package insight

import (
	"context"
	"testing"
	"time"
)

func TestSequencer_NewerInvocationWins(t *testing.T) {
	seq := NewSequencer()

	ctx1, commit1 := seq.Begin(context.Background())
	_, commit2 := seq.Begin(context.Background())

	// The first sequence was superseded: its context is cancelled and
	// its commit refused.
	select {
	case <-ctx1.Done():
	case <-time.After(time.Second):
		t.Fatal("Superseded context was not cancelled")
	}

	if commit1() {
		t.Error("Superseded sequence must not commit")
	}
	if !commit2() {
		t.Error("Newest sequence must commit")
	}
}

func TestSequencer_CommitStableUntilSuperseded(t *testing.T) {
	seq := NewSequencer()

	_, commit := seq.Begin(context.Background())
	if !commit() {
		t.Error("Sole sequence should commit")
	}
	if !commit() {
		t.Error("Commit check must be repeatable")
	}

	seq.Begin(context.Background())
	if commit() {
		t.Error("Commit must flip to false once superseded")
	}
}

func TestSequencer_StopInvalidatesPending(t *testing.T) {
	seq := NewSequencer()

	ctx, commit := seq.Begin(context.Background())
	seq.Stop()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("Stop did not cancel the in-flight sequence")
	}
	if commit() {
		t.Error("Stopped sequence must not commit")
	}
}

func TestSequencer_ParentCancellationPropagates(t *testing.T) {
	seq := NewSequencer()

	parent, cancel := context.WithCancel(context.Background())
	ctx, _ := seq.Begin(parent)
	cancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("Parent cancellation did not propagate")
	}
}
