package worker

import (
	"errors"
	"sync"
)

// ErrAlreadyRunning is returned when a pass is started while another is
// in flight.
var ErrAlreadyRunning = errors.New("a pass is already running")

// guardState is the explicit scheduler state: idle or running. Keeping
// it a typed value (rather than a bare bool flag) makes the legal
// transitions checkable in one place.
type guardState int

const (
	guardIdle guardState = iota
	guardRunning
)

// Guard serializes full analysis passes. Transitions are
// idle -> running (TryStart) and running -> idle (the release func);
// a second concurrent start is refused, not raced.
type Guard struct {
	mu    sync.Mutex
	state guardState
}

// NewGuard returns an idle guard.
func NewGuard() *Guard {
	return &Guard{}
}

// TryStart attempts the idle -> running transition. On success it
// returns a release func that must be called exactly once when the pass
// finishes; on failure it returns ErrAlreadyRunning.
func (g *Guard) TryStart() (release func(), err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != guardIdle {
		return nil, ErrAlreadyRunning
	}
	g.state = guardRunning

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			g.state = guardIdle
			g.mu.Unlock()
		})
	}, nil
}

// Running reports whether a pass is in flight.
func (g *Guard) Running() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state == guardRunning
}
