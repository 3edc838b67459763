package stream

import (
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledanim/anim"
	"github.com/matt-g-everett/ledanim/util"
)

// A Chase is a Scene with a comet that springs to new positions along the
// strip, changing colour as it goes.
type Chase struct {
	head       *anim.Kinetic
	hue        *anim.Kinetic
	gradient   GradientTable
	background colorful.Color
	lut        []float64
	chroma     float64
	rnd        *rand.Rand
	onFrame    func()
}

// NewChase creates a Chase played on s. Random targets come from rnd.
func NewChase(s *anim.Scheduler, cfg ChaseConfig, background colorful.Color, rnd *rand.Rand) (*Chase, error) {
	c := new(Chase)
	c.gradient = Rainbow
	c.background = background
	c.rnd = rnd
	c.chroma = 1

	curve, err := anim.ResolveEase(cfg.TrailEase)
	if err != nil {
		return nil, err
	}
	c.lut = util.GenerateLut(cfg.TrailLength, curve)

	if c.head, err = anim.NewKinetic(s, cfg.Spring); err != nil {
		return nil, err
	}
	if c.hue, err = anim.NewKinetic(s, cfg.Spring); err != nil {
		return nil, err
	}

	return c, nil
}

// Name returns "chase".
func (c *Chase) Name() string {
	return "chase"
}

// Start sends the comet to a random position.
func (c *Chase) Start(onFrame func()) *anim.Signal {
	c.onFrame = onFrame
	return c.Retarget(c.rnd.Float64())
}

// Retarget sends the comet to pos, from wherever it is and however fast it
// is moving.
func (c *Chase) Retarget(pos float64) *anim.Signal {
	c.chroma = util.RandomBetween(c.rnd, 0.6, 1)
	// Only the head carries the frame callback.
	c.hue.PlayTo(c.rnd.Float64(), nil)
	return c.head.PlayTo(pos, c.onFrame)
}

// Stop freezes the comet.
func (c *Chase) Stop() {
	c.Pause()
}

// Playable returns the chase itself.
func (c *Chase) Playable() anim.Playable {
	return c
}

// Pause freezes both springs.
func (c *Chase) Pause() {
	c.head.Pause()
	c.hue.Pause()
}

// Resume continues both springs.
func (c *Chase) Resume() {
	c.head.Resume()
	c.hue.Resume()
}

// Reset freezes the comet where it is; a spring has no start to return to.
func (c *Chase) Reset() {
	c.Pause()
}

// Value returns the position of the head along the strip.
func (c *Chase) Value() float64 {
	return c.head.Value()
}

// State returns the state of the head.
func (c *Chase) State() anim.State {
	return c.head.State()
}

// CalculateFrame renders the comet.
func (c *Chase) CalculateFrame() *Frame {
	f := NewFrame()
	f.Fill(c.background)

	n := f.Len()
	head := int(math.Round(c.head.Value() * float64(n-1)))
	colour := c.gradient.GetColor(c.hue.Value(), c.chroma, 0.3)

	half := len(c.lut) / 2
	for j, gain := range c.lut {
		f.Set(head-half+j, c.background.BlendHcl(colour, gain).Clamped())
	}

	return f
}
