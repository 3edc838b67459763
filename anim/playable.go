package anim

import (
	"time"
)

// State is the playback state of a Playable.
type State int

const (
	Unstarted State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Unstarted:
		return "unstarted"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	}
	return "unknown"
}

// Playable is anything with a timeline that can be paused, resumed, reset
// and sampled.
type Playable interface {
	Pause()
	Resume()
	Reset()
	Value() float64
	State() State
}

// Player is a Playable that is started with a fixed duration.
type Player interface {
	Playable
	Play(d time.Duration, onFrame func()) *Signal
}

// playback is the state machine shared by every Playable. The owning type
// sets stop to its own Pause so that completing playback runs the owner's
// pause logic.
type playback struct {
	sched *Scheduler

	state    State
	duration time.Duration
	anchor   time.Time
	paused   time.Duration
	tick     func()
	queued   bool
	signal   *Signal

	stop func()
}

func newPlayback(s *Scheduler) playback {
	return playback{
		sched:  s,
		state:  Unstarted,
		signal: resolvedSignal(true),
	}
}

// State returns the current playback state.
func (p *playback) State() State {
	return p.state
}

// Signal returns the completion signal of the current play cycle.
func (p *playback) Signal() *Signal {
	return p.signal
}

// Duration returns the requested duration of the current play cycle.
func (p *playback) Duration() time.Duration {
	return p.duration
}

func (p *playback) now() time.Time {
	return p.sched.Now()
}

// elapsed is only meaningful while Playing.
func (p *playback) elapsed() time.Duration {
	return p.now().Sub(p.anchor)
}

// progress is elapsed/duration clamped to [0, 1].
func (p *playback) progress() float64 {
	if p.duration <= 0 {
		return 1
	}
	t := float64(p.elapsed()) / float64(p.duration)
	if t < 0 {
		return 0
	} else if t > 1 {
		return 1
	}
	return t
}

func (p *playback) play(d time.Duration, onFrame func()) *Signal {
	if p.state == Playing {
		return p.signal
	}
	// Starting over from a pause abandons the paused cycle.
	p.signal.resolve(false)

	p.state = Playing
	p.duration = d
	p.anchor = p.now()
	p.paused = 0

	signal := newSignal()
	p.signal = signal
	p.tick = func() {
		if onFrame != nil {
			onFrame()
		}

		// A frame may arrive after a pause between frames.
		if p.state != Playing {
			return
		}

		if p.elapsed() > p.duration {
			p.stop()
			p.finish()
			signal.resolve(true)
		} else {
			p.requestFrame()
		}
	}
	p.tick()

	return signal
}

// finish leaves a completed cycle replayable, with the owner's fill intact.
func (p *playback) finish() {
	p.state = Unstarted
	p.anchor = time.Time{}
	p.paused = 0
	p.tick = nil
}

func (p *playback) requestFrame() {
	if p.queued {
		return
	}
	p.queued = true
	p.sched.Schedule(p.frame)
}

// frame runs whatever tick is current, so an entry queued by an earlier
// cycle serves the new one instead of starting a second chain.
func (p *playback) frame() {
	p.queued = false
	if p.tick != nil {
		p.tick()
	}
}

func (p *playback) pause() {
	if p.state != Playing {
		return
	}
	p.paused = p.elapsed()
	p.anchor = time.Time{}
	p.state = Paused
}

func (p *playback) resume() {
	if p.state != Paused {
		return
	}
	p.anchor = p.now().Add(-p.paused)
	p.paused = 0
	p.state = Playing
	if p.tick != nil {
		p.tick()
	}
}

func (p *playback) reset() {
	p.signal.resolve(false)
	p.state = Unstarted
	p.duration = 0
	p.anchor = time.Time{}
	p.paused = 0
	p.tick = nil
}
