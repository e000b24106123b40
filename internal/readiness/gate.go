// Package readiness implements the startup barrier that holds the sampling
// loop until the storage media and configuration are both available.
package readiness

import (
	"context"
	"sync"
)

// Condition is a bit in the readiness set.
type Condition uint32

const (
	// StorageMounted is raised once the log directory is writable.
	StorageMounted Condition = 1 << iota
	// ConfigLoaded is raised once the calibration/config file has been read.
	ConfigLoaded
)

// Gate is a latching condition barrier. Conditions are raised with Signal and
// never lowered; Wait blocks until every requested condition has been raised.
type Gate struct {
	mu      sync.Mutex
	raised  Condition
	changed chan struct{}
}

// NewGate returns a Gate with no conditions raised.
func NewGate() *Gate {
	return &Gate{changed: make(chan struct{})}
}

// Signal raises one or more conditions and wakes any waiters.
func (g *Gate) Signal(c Condition) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.raised&c == c {
		return
	}
	g.raised |= c
	close(g.changed)
	g.changed = make(chan struct{})
}

// Raised reports the currently raised condition set.
func (g *Gate) Raised() Condition {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.raised
}

// Wait blocks until all conditions in want have been raised, or the context
// is cancelled.
func (g *Gate) Wait(ctx context.Context, want Condition) error {
	for {
		g.mu.Lock()
		if g.raised&want == want {
			g.mu.Unlock()
			return nil
		}
		ch := g.changed
		g.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
