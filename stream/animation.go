package stream

import (
	"github.com/matt-g-everett/ledanim/anim"
)

// An Animation renders frames from its current state.
type Animation interface {
	CalculateFrame() *Frame
}

// A Scene is an Animation driven by animated values.
type Scene interface {
	Animation
	Name() string
	// Start (re)starts the scene; onFrame runs on every frame it plays.
	Start(onFrame func()) *anim.Signal
	// Stop halts the scene where it is.
	Stop()
	// Playable exposes the scene's timeline for pause, resume and reset.
	Playable() anim.Playable
}

// A Retargeter is a Scene that can be sent to a position in [0, 1] along the
// strip while it plays.
type Retargeter interface {
	Retarget(pos float64) *anim.Signal
}
