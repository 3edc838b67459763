package anim

import (
	"math"
	"time"

	"github.com/pkg/errors"
)

// ValueOptions configures a Value.
type ValueOptions struct {
	Start float64     `yaml:"start"`
	End   float64     `yaml:"end"`
	Ease  interface{} `yaml:"ease"`
}

// DefaultValueOptions animates from 0 to 1 linearly.
func DefaultValueOptions() ValueOptions {
	return ValueOptions{Start: 0, End: 1, Ease: Linear}
}

// A Value is a single number animated between Start and End along an easing
// curve over a fixed duration.
type Value struct {
	playback

	Start float64
	End   float64

	ease EaseFunc
	// fill is returned whenever the value is not playing.
	fill float64
}

// NewValue creates a Value played on s.
func NewValue(s *Scheduler, opts ValueOptions) (*Value, error) {
	if !finite(opts.Start) || !finite(opts.End) {
		return nil, errors.Wrapf(ErrInvalidOption, "start %v and end %v must be finite", opts.Start, opts.End)
	}
	f, err := ResolveEase(opts.Ease)
	if err != nil {
		return nil, err
	}

	v := new(Value)
	v.playback = newPlayback(s)
	v.playback.stop = v.Pause
	v.Start = opts.Start
	v.End = opts.End
	v.ease = f
	v.fill = opts.Start
	return v, nil
}

// Play starts the value over d, calling onFrame on every frame until it
// completes. Playing an already playing value returns its current signal.
// Playing a paused value starts a new cycle and resolves the paused cycle's
// signal to false.
func (v *Value) Play(d time.Duration, onFrame func()) *Signal {
	return v.play(d, onFrame)
}

// Value returns the current value. It has a cost: it reads the clock and
// evaluates the easing curve.
func (v *Value) Value() float64 {
	if v.state != Playing {
		return v.fill
	}
	return v.at(v.progress())
}

func (v *Value) at(t float64) float64 {
	return (v.End-v.Start)*v.ease(t) + v.Start
}

// Pause freezes the value where it is.
func (v *Value) Pause() {
	if v.state == Playing {
		// Must sample before the state changes.
		v.fill = v.Value()
	}
	v.pause()
}

// Resume continues from where Pause left off.
func (v *Value) Resume() {
	v.resume()
}

// Reset interrupts playback and returns the value to Start.
func (v *Value) Reset() {
	v.reset()
	v.fill = v.Start
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
