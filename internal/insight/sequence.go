package insight

import (
	"context"
	"sync"
)

// Sequencer enforces the latest-wins rule for insight fetch sequences.
// Beginning a new sequence cancels the one in flight, and a superseded
// sequence's commit is refused, so a slow fetch can never overwrite
// state produced by a newer invocation.
type Sequencer struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// NewSequencer returns a sequencer with no sequence in flight.
func NewSequencer() *Sequencer {
	return &Sequencer{}
}

// Begin starts a new fetch sequence, cancelling any previous one. The
// returned commit func reports whether this sequence is still the
// newest; callers write results back only when it returns true.
func (s *Sequencer) Begin(parent context.Context) (context.Context, func() bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	s.gen++
	gen := s.gen

	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel

	commit := func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.gen == gen
	}
	return ctx, commit
}

// Stop cancels the in-flight sequence, if any, without starting a new
// one. Any pending commit is invalidated.
func (s *Sequencer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
}
