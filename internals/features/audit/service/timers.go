package service

import (
	"sync"
	"time"
)

// Timers is a single-measurement stopwatch map: Elapsed consumes the
// entry, so a second call for the same id returns 0.
type Timers struct {
	mu      sync.Mutex
	started map[string]time.Time
}

func NewTimers() *Timers {
	return &Timers{started: make(map[string]time.Time)}
}

func (t *Timers) Start(id string) {
	t.mu.Lock()
	t.started[id] = time.Now()
	t.mu.Unlock()
}

// Elapsed returns the time since Start(id) and deletes the entry.
// Unknown ids return 0.
func (t *Timers) Elapsed(id string) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	begin, ok := t.started[id]
	if !ok {
		return 0
	}
	delete(t.started, id)
	return time.Since(begin)
}
