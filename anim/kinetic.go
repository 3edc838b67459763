package anim

import (
	"math"
	"time"

	"github.com/matt-g-everett/ledanim/spring"
	"github.com/pkg/errors"
)

// velocityEpsilon is the finite-difference step used to sample velocity.
const velocityEpsilon = 1e-4

// KineticOptions configures a Kinetic.
type KineticOptions struct {
	Start float64 `yaml:"start"`
	// End defaults to Start.
	End *float64 `yaml:"end"`
	// Stiffness is truncated to a whole number of half-cycles.
	Stiffness float64 `yaml:"stiffness"`
	// Damping is the damping ratio, in [0, 1).
	Damping float64 `yaml:"damping"`
	// Duration is the window each redirect settles within. Zero means one
	// second.
	Duration time.Duration `yaml:"duration"`
}

// DefaultKineticOptions returns a spring that settles within a second.
func DefaultKineticOptions() KineticOptions {
	return KineticOptions{
		Start:     0,
		Stiffness: 3,
		Damping:   0.8,
		Duration:  time.Second,
	}
}

// A Kinetic is a spring-driven value. Instead of playing for a duration it is
// redirected with PlayTo, keeping both position and velocity continuous.
type Kinetic struct {
	value     *Value
	damping   float64
	stiffness int
	window    time.Duration
}

// NewKinetic creates a Kinetic at rest, played on s. Zero damping and
// stiffness are meaningful, so callers wanting the usual spring start from
// DefaultKineticOptions.
func NewKinetic(s *Scheduler, opts KineticOptions) (*Kinetic, error) {
	if opts.Damping < 0 || opts.Damping >= 1 || math.IsNaN(opts.Damping) {
		return nil, errors.Wrapf(ErrInvalidOption, "damping %v outside [0, 1)", opts.Damping)
	}
	if opts.Stiffness < 0 || !finite(opts.Stiffness) {
		return nil, errors.Wrapf(ErrInvalidOption, "stiffness %v must be a non-negative number", opts.Stiffness)
	}
	if opts.Duration == 0 {
		opts.Duration = DefaultKineticOptions().Duration
	} else if opts.Duration < 0 {
		return nil, errors.Wrapf(ErrInvalidOption, "duration %v must not be negative", opts.Duration)
	}

	end := opts.Start
	if opts.End != nil {
		end = *opts.End
	}

	k := new(Kinetic)
	k.damping = opts.Damping
	k.stiffness = int(math.Trunc(opts.Stiffness))
	k.window = opts.Duration

	curve := spring.Solve(k.damping, k.stiffness, 1, 0)
	v, err := NewValue(s, ValueOptions{
		Start: opts.Start,
		End:   end,
		Ease:  EaseFunc(func(t float64) float64 { return 1 - curve(t) }),
	})
	if err != nil {
		return nil, err
	}
	k.value = v
	return k, nil
}

// PlayTo sends the value towards end from wherever it is, carrying over its
// current velocity. If the value is at rest it starts playing with onFrame;
// if it is already moving it is redirected and onFrame is ignored.
func (k *Kinetic) PlayTo(end float64, onFrame func()) *Signal {
	v := k.value
	current := v.Value()

	var velocity float64
	if v.state == Playing {
		t := float64(v.elapsed()) / float64(k.window)
		velocity = (v.ease(t) - v.ease(t-velocityEpsilon)) / velocityEpsilon
	}

	// Velocity is normalised to the old displacement; rescale it to the new one.
	var scaled float64
	if displacement := end - current; displacement != 0 {
		scaled = velocity * (v.End - v.Start) / displacement
	}

	curve := spring.Solve(k.damping, k.stiffness, 1, -scaled)
	v.Start = current
	v.End = end
	v.ease = func(t float64) float64 { return 1 - curve(t) }

	if v.state == Playing {
		v.anchor = v.now()
		return v.signal
	}
	return v.Play(k.window, onFrame)
}

// Play is not supported: a spring has no fixed duration. Use PlayTo.
func (k *Kinetic) Play(d time.Duration, onFrame func()) *Signal {
	WARN.Println("Play is unsupported on a kinetic value, use PlayTo")
	return k.value.Signal()
}

// Reset is not supported: a spring has no end state to reset to.
func (k *Kinetic) Reset() {
	WARN.Println("Reset is unsupported on a kinetic value")
}

// Value returns the current position.
func (k *Kinetic) Value() float64 {
	return k.value.Value()
}

// Pause freezes the value in place.
func (k *Kinetic) Pause() {
	k.value.Pause()
}

// Resume continues the current trajectory.
func (k *Kinetic) Resume() {
	k.value.Resume()
}

// State returns the playback state.
func (k *Kinetic) State() State {
	return k.value.State()
}

// Signal returns the completion signal of the current trajectory.
func (k *Kinetic) Signal() *Signal {
	return k.value.Signal()
}

// Target returns the value the spring is heading to.
func (k *Kinetic) Target() float64 {
	return k.value.End
}

// Window returns the duration each redirect settles within.
func (k *Kinetic) Window() time.Duration {
	return k.window
}
