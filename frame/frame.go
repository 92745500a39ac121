// Package frame drives a cooperative per-frame callback.
//
// A Scheduler holds at most one pending tick. The host calls Step once per
// display refresh; Loop keeps exactly one tick queued between steps until the
// callback returns an error.
package frame

import (
	"errors"
	"time"
)

var (
	ErrPending   = errors.New("frame: a tick is already pending")
	ErrIdle      = errors.New("frame: no tick pending")
	ErrReentrant = errors.New("frame: step called from inside a tick")
)

// Clock reports monotonic time elapsed since some fixed start.
type Clock interface {
	Now() time.Duration
}

// Frame describes one tick. Elapsed is read from the clock once, before the
// callback runs.
type Frame struct {
	Seq     uint64
	Elapsed time.Duration
	Delta   time.Duration
}

// Func is a tick callback.
type Func func(Frame) error

type Scheduler struct {
	clock   Clock
	pending Func
	running bool

	seq  uint64
	last time.Duration
}

// New returns an idle scheduler reading time from clock.
func New(clock Clock) *Scheduler {
	return &Scheduler{clock: clock}
}

// Request queues fn for the next Step. Only one tick may be pending.
func (s *Scheduler) Request(fn Func) error {
	if fn == nil {
		return errors.New("frame: nil func")
	}
	if s.pending != nil {
		return ErrPending
	}
	s.pending = fn
	return nil
}

// Pending reports whether a tick is queued.
func (s *Scheduler) Pending() bool { return s.pending != nil }

// Frames returns the number of ticks run so far.
func (s *Scheduler) Frames() uint64 { return s.seq }

// Cancel drops the pending tick, if any.
func (s *Scheduler) Cancel() { s.pending = nil }

// Step runs the pending tick and returns its error.
func (s *Scheduler) Step() error {
	if s.running {
		return ErrReentrant
	}
	fn := s.pending
	if fn == nil {
		return ErrIdle
	}
	s.pending = nil

	var now time.Duration
	if s.clock != nil {
		now = s.clock.Now()
	}
	f := Frame{Seq: s.seq, Elapsed: now}
	if s.seq > 0 {
		f.Delta = now - s.last
	}
	s.seq++
	s.last = now

	s.running = true
	defer func() { s.running = false }()
	return fn(f)
}

// Loop queues fn and re-queues it after every tick that returns nil. A tick
// that fails is not re-queued.
func (s *Scheduler) Loop(fn Func) error {
	if fn == nil {
		return errors.New("frame: nil func")
	}
	var tick Func
	tick = func(f Frame) error {
		if err := fn(f); err != nil {
			return err
		}
		return s.Request(tick)
	}
	return s.Request(tick)
}
