package anim

import (
	"time"
)

// Scheduler coalesces the per-frame work of every playable into one frame
// request per refresh.
type Scheduler struct {
	clock  Clock
	source FrameSource

	queue    []func()
	inFlight bool
	frames   uint64
}

// NewScheduler creates a Scheduler driven by source. A nil clock means
// SystemClock.
func NewScheduler(source FrameSource, clock Clock) *Scheduler {
	s := new(Scheduler)
	if clock == nil {
		clock = SystemClock{}
	}
	s.clock = clock
	s.source = source
	return s
}

// Now returns the scheduler's current time.
func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// Schedule queues fn for the next batch. Work scheduled while a batch runs
// is deferred to the batch after it.
func (s *Scheduler) Schedule(fn func()) {
	s.queue = append(s.queue, fn)
	if !s.inFlight {
		s.inFlight = true
		s.source.RequestFrame(s.flush)
	}
}

// Pending returns the number of callbacks waiting for the next batch.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// Frames returns the number of batches delivered so far.
func (s *Scheduler) Frames() uint64 {
	return s.frames
}

func (s *Scheduler) flush() {
	batch := s.queue
	s.queue = nil
	s.frames++

	for _, fn := range batch {
		fn()
	}

	if len(s.queue) > 0 {
		s.source.RequestFrame(s.flush)
	} else {
		s.inFlight = false
	}
}
