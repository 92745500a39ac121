package hal

import (
	"sync"
	"time"
)

// hostTime is wall-clock based unless switched to fixed steps, in which case
// it only moves when advance is called.
type hostTime struct {
	mu    sync.Mutex
	start time.Time
	fixed bool
	now   time.Duration
}

func newHostTime() *hostTime {
	return &hostTime{start: time.Now()}
}

func (t *hostTime) Now() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fixed {
		return t.now
	}
	return time.Since(t.start)
}

func (t *hostTime) useFixedStep() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fixed = true
	t.now = 0
}

func (t *hostTime) advance(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.now += d
}
