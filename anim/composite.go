package anim

import (
	"time"
)

// A Composite plays many players over one shared timeline. Children may be
// composites themselves.
type Composite struct {
	playback

	children []Player
	fill     float64
}

// Compose creates a Composite of players. A Kinetic has no fixed duration,
// so composing one is reported and left undefined.
func Compose(s *Scheduler, players ...Player) *Composite {
	c := new(Composite)
	c.playback = newPlayback(s)
	c.playback.stop = c.Pause
	for i, p := range players {
		if _, ok := p.(*Kinetic); ok {
			WARN.Printf("composing kinetic value at index %d is unsupported", i)
		}
	}
	c.children = append([]Player(nil), players...)
	return c
}

// Children returns the composed players in insertion order.
func (c *Composite) Children() []Player {
	return append([]Player(nil), c.children...)
}

// Play plays every child over d. onFrame runs once per frame for the whole
// composite, not once per child.
func (c *Composite) Play(d time.Duration, onFrame func()) *Signal {
	signal := c.play(d, onFrame)
	for _, p := range c.children {
		p.Play(d, nil)
	}
	return signal
}

// Value returns the composite's own progress through its duration, in [0, 1].
func (c *Composite) Value() float64 {
	if c.state != Playing {
		return c.fill
	}
	return c.progress()
}

// Pause pauses the composite and every child.
func (c *Composite) Pause() {
	if c.state == Playing {
		c.fill = c.progress()
	}
	c.pause()
	for _, p := range c.children {
		p.Pause()
	}
}

// Resume resumes the paused children, then the composite.
func (c *Composite) Resume() {
	// Checked before resuming ourselves; afterwards we are no longer paused.
	if c.state == Paused {
		for _, p := range c.children {
			if p.State() == Paused {
				p.Resume()
			}
		}
	}
	c.resume()
}

// Reset interrupts the composite and resets every child.
func (c *Composite) Reset() {
	c.reset()
	c.fill = 0
	for _, p := range c.children {
		p.Reset()
	}
}
