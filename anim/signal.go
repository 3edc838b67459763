package anim

import (
	"context"
)

// A Signal resolves exactly once: true when playback ran to completion,
// false when a reset interrupted it. It may be waited on from any goroutine.
type Signal struct {
	done      chan struct{}
	completed bool
}

func newSignal() *Signal {
	return &Signal{done: make(chan struct{})}
}

func resolvedSignal(completed bool) *Signal {
	s := newSignal()
	s.resolve(completed)
	return s
}

// resolve must only be called from the scheduling thread.
func (s *Signal) resolve(completed bool) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	s.completed = completed
	close(s.done)
	return true
}

// Done is closed once the signal resolves.
func (s *Signal) Done() <-chan struct{} {
	return s.done
}

// Result returns the outcome and whether the signal has resolved yet.
func (s *Signal) Result() (completed bool, resolved bool) {
	select {
	case <-s.done:
		return s.completed, true
	default:
		return false, false
	}
}

// Wait blocks until the signal resolves or ctx is done.
func (s *Signal) Wait(ctx context.Context) (bool, error) {
	select {
	case <-s.done:
		return s.completed, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
