package stream

import (
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledanim/anim"
)

// A Pulse is a Scene that swells a band of colour out from the middle of the
// strip, shifting its hue and brightness as it grows.
type Pulse struct {
	colour     colorful.Color
	background colorful.Color
	duration   time.Duration

	brightness *anim.Value
	hue        *anim.Value
	width      *anim.Value
	all        *anim.Composite
}

// NewPulse creates a Pulse played on s.
func NewPulse(s *anim.Scheduler, cfg PulseConfig, background colorful.Color) (*Pulse, error) {
	p := new(Pulse)
	p.background = background
	p.duration = cfg.Duration

	colour, err := colorful.Hex(cfg.Colour)
	if err != nil {
		return nil, err
	}
	p.colour = colour

	if p.brightness, err = anim.NewValue(s, cfg.Brightness); err != nil {
		return nil, err
	}
	if p.hue, err = anim.NewValue(s, cfg.Hue); err != nil {
		return nil, err
	}
	if p.width, err = anim.NewValue(s, cfg.Width); err != nil {
		return nil, err
	}
	p.all = anim.Compose(s, p.brightness, p.hue, p.width)

	return p, nil
}

// Name returns "pulse".
func (p *Pulse) Name() string {
	return "pulse"
}

// Start plays the pulse from the beginning.
func (p *Pulse) Start(onFrame func()) *anim.Signal {
	p.all.Reset()
	return p.all.Play(p.duration, onFrame)
}

// Stop resets the pulse.
func (p *Pulse) Stop() {
	p.all.Reset()
}

// Playable returns the composite driving the pulse.
func (p *Pulse) Playable() anim.Playable {
	return p.all
}

// CalculateFrame renders the pulse.
func (p *Pulse) CalculateFrame() *Frame {
	f := NewFrame()
	f.Fill(p.background)

	h, c, l := p.colour.Hcl()
	colour := colorful.Hcl(math.Mod(h+p.hue.Value(), 360), c, l*p.brightness.Value())

	n := f.Len()
	centre := float64(n-1) / 2
	half := p.width.Value() * float64(n) / 2
	if half <= 0 {
		return f
	}

	for i := 0; i < n; i++ {
		d := math.Abs(float64(i)-centre) / half
		if d < 1 {
			f.pixels[i] = p.background.BlendHcl(colour, 1-d).Clamped()
		}
	}

	return f
}
