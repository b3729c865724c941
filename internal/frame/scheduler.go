// Package frame provides a display-refresh callback scheduler: callbacks
// requested now run once, on the next Tick, in request order.
package frame

import "time"

// Handle identifies a requested callback. The zero Handle is never issued.
type Handle uint64

// Callback receives the host clock at the start of the tick.
type Callback func(now time.Duration)

type entry struct {
	h         Handle
	cb        Callback
	cancelled bool
}

// Scheduler queues one-shot frame callbacks. It is meant to be driven from
// the render goroutine only and does no locking.
type Scheduler struct {
	last    Handle
	pending []*entry
	index   map[Handle]*entry
}

// New returns an empty scheduler.
func New() *Scheduler {
	return &Scheduler{index: make(map[Handle]*entry)}
}

// RequestFrame queues cb for the next Tick. A callback requested while a tick
// is running waits for the following tick.
func (s *Scheduler) RequestFrame(cb Callback) Handle {
	s.last++
	e := &entry{h: s.last, cb: cb}
	s.pending = append(s.pending, e)
	s.index[e.h] = e
	return e.h
}

// CancelFrame drops a queued callback. Unknown or already-run handles are ignored.
func (s *Scheduler) CancelFrame(h Handle) {
	e, ok := s.index[h]
	if !ok {
		return
	}
	e.cancelled = true
	delete(s.index, h)
	for i, p := range s.pending {
		if p == e {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			break
		}
	}
}

// Pending returns the number of callbacks waiting for the next tick.
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

// Tick runs every callback that was queued when it started and returns how
// many ran. Callbacks cancelled by an earlier callback in the same tick are skipped.
func (s *Scheduler) Tick(now time.Duration) int {
	batch := s.pending
	s.pending = nil
	ran := 0
	for _, e := range batch {
		if e.cancelled {
			continue
		}
		delete(s.index, e.h)
		e.cb(now)
		ran++
	}
	return ran
}
