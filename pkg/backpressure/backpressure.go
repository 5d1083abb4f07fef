// Package backpressure implements a gate that holds off all Azure API calls
// once the API signalled throttling, until the announced retry time passed.
package backpressure

import (
	"sync"
	"time"
)

// Backpressure is shared by every client of a client set. The zero value is
// open.
type Backpressure struct {
	mutex     sync.Mutex
	notBefore time.Time
	now       func() time.Time
}

// NotBefore closes the gate until t. An earlier t never shortens an already
// announced wait.
func (g *Backpressure) NotBefore(t time.Time) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if t.After(g.notBefore) {
		g.notBefore = t
	}
}

func (g *Backpressure) CanProceed() bool {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	return g.clock().After(g.notBefore)
}

func (g *Backpressure) RetryAfter() time.Time {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	return g.notBefore
}

func (g *Backpressure) clock() time.Time {
	if g.now != nil {
		return g.now()
	}

	return time.Now()
}
