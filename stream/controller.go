package stream

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/matt-g-everett/ledanim/anim"
	"github.com/pkg/errors"
)

// ErrNotRetargetable is returned when the current scene cannot be retargeted.
var ErrNotRetargetable = errors.New("scene cannot be retargeted")

// NewScenes builds every scene in cfg, played on s.
func NewScenes(s *anim.Scheduler, cfg AnimationConfig, rnd *rand.Rand) ([]Scene, error) {
	background := mustHex(cfg.Background)

	pulse, err := NewPulse(s, cfg.Pulse, background)
	if err != nil {
		return nil, errors.Wrap(err, "creating pulse")
	}
	chase, err := NewChase(s, cfg.Chase, background, rnd)
	if err != nil {
		return nil, errors.Wrap(err, "creating chase")
	}
	twinkle, err := NewTwinkle(s, cfg.Twinkle, background, rnd)
	if err != nil {
		return nil, errors.Wrap(err, "creating twinkle")
	}
	stripes, err := NewStripes(s, cfg.Stripes, rnd)
	if err != nil {
		return nil, errors.Wrap(err, "creating stripes")
	}
	return []Scene{pulse, chase, twinkle, stripes}, nil
}

// Snapshot describes what the Controller is showing.
type Snapshot struct {
	Scene         string  `json:"scene"`
	State         string  `json:"state"`
	Value         float64 `json:"value"`
	Transitioning bool    `json:"transitioning"`
}

// Controller that manages scenes, cross-fading from one to the next. Apart
// from Run, its methods must be called on the scheduling goroutine.
type Controller struct {
	scenes []Scene
	index  int
	rnd    *rand.Rand

	current  Scene
	signal   *anim.Signal
	previous Scene
	// paused holds scene changes until Resume.
	paused bool

	transition     *anim.Value
	transitionTime time.Duration
	sceneTime      time.Duration
	retargetTime   time.Duration

	redraw func()
}

// NewController creates a Controller cycling through scenes. redraw is
// called on every frame any scene plays.
func NewController(s *anim.Scheduler, cfg AnimationConfig, scenes []Scene, rnd *rand.Rand, redraw func()) (*Controller, error) {
	if len(scenes) == 0 {
		return nil, errors.Wrap(ErrInvalidConfig, "no scenes")
	}

	transition, err := anim.NewValue(s, anim.ValueOptions{Start: 0, End: 1, Ease: anim.EaseInOut})
	if err != nil {
		return nil, err
	}

	c := new(Controller)
	c.scenes = scenes
	c.rnd = rnd
	c.transition = transition
	c.transitionTime = cfg.TransitionTime
	c.sceneTime = cfg.SceneTime
	c.retargetTime = cfg.Chase.Retarget
	c.redraw = redraw
	if c.redraw == nil {
		c.redraw = func() {}
	}
	return c, nil
}

// Start shows the first scene.
func (c *Controller) Start() {
	c.index = 0
	c.current = c.scenes[0]
	c.previous = nil
	c.paused = false
	c.signal = c.current.Start(c.redraw)
}

// Current returns the scene being shown, or faded to.
func (c *Controller) Current() Scene {
	return c.current
}

// Cycle starts fading to the next scene. It does nothing while paused.
func (c *Controller) Cycle() {
	if c.current == nil {
		c.Start()
		return
	}
	if c.paused {
		return
	}
	if c.previous != nil {
		// Cut short a fade that is still going.
		c.endTransition()
	}

	c.index = (c.index + 1) % len(c.scenes)
	next := c.scenes[c.index]
	if next == c.current {
		return
	}

	log.Printf("Fading from %s to %s", c.current.Name(), next.Name())
	c.previous = c.current
	c.current = next
	c.signal = c.current.Start(c.redraw)

	c.transition.Reset()
	c.transition.Play(c.transitionTime, c.redraw)
}

func (c *Controller) endTransition() {
	if c.previous != nil {
		c.previous.Stop()
		c.previous = nil
	}
	c.transition.Reset()
}

// update finishes a completed fade and loops a scene that has played out.
func (c *Controller) update() {
	if c.previous != nil {
		if completed, _ := c.transition.Signal().Result(); completed {
			c.endTransition()
		}
	}
	if completed, _ := c.signal.Result(); completed {
		c.signal = c.current.Start(c.redraw)
	}
}

// CalculateFrame renders the current scene, blended with the previous one
// during a fade.
func (c *Controller) CalculateFrame() *Frame {
	if c.current == nil {
		return NewFrame()
	}

	c.update()
	if c.previous == nil {
		return c.current.CalculateFrame()
	}

	f1 := c.previous.CalculateFrame()
	f2 := c.current.CalculateFrame()
	return f1.InterpolateFrame(f2, c.transition.Value())
}

// Pause freezes the current scene and any fade.
func (c *Controller) Pause() {
	if c.current == nil {
		return
	}
	c.paused = true
	c.current.Playable().Pause()
	if c.previous != nil {
		c.previous.Playable().Pause()
		c.transition.Pause()
	}
}

// Resume continues whatever Pause froze.
func (c *Controller) Resume() {
	if c.current == nil {
		return
	}
	c.paused = false
	c.current.Playable().Resume()
	if c.previous != nil {
		c.previous.Playable().Resume()
		c.transition.Resume()
	}
}

// Reset abandons any fade and stops the current scene.
func (c *Controller) Reset() {
	if c.current == nil {
		return
	}
	c.endTransition()
	c.paused = false
	c.current.Stop()
	c.redraw()
}

// Replay restarts the current scene.
func (c *Controller) Replay() {
	if c.current == nil {
		c.Start()
		return
	}
	c.paused = false
	c.current.Stop()
	c.signal = c.current.Start(c.redraw)
}

// Retarget sends the current scene to pos in [0, 1].
func (c *Controller) Retarget(pos float64) error {
	if pos < 0 || pos > 1 {
		return errors.Wrapf(ErrInvalidConfig, "target %v outside [0, 1]", pos)
	}
	r, ok := c.current.(Retargeter)
	if !ok {
		return errors.Wrapf(ErrNotRetargetable, "scene %s", c.Name())
	}
	c.signal = r.Retarget(pos)
	return nil
}

func (c *Controller) retargetRandom() {
	if c.current == nil || c.paused {
		return
	}
	if r, ok := c.current.(Retargeter); ok {
		c.signal = r.Retarget(c.rnd.Float64())
	}
}

// Name returns the name of the current scene.
func (c *Controller) Name() string {
	if c.current == nil {
		return ""
	}
	return c.current.Name()
}

// Snapshot describes the current scene.
func (c *Controller) Snapshot() Snapshot {
	if c.current == nil {
		return Snapshot{State: anim.Unstarted.String()}
	}
	p := c.current.Playable()
	return Snapshot{
		Scene:         c.current.Name(),
		State:         p.State().String(),
		Value:         p.Value(),
		Transitioning: c.previous != nil,
	}
}

// Run cycles scenes and retargets them until ctx is cancelled. post must run
// its argument on the scheduling goroutine.
func (c *Controller) Run(ctx context.Context, post func(func())) {
	sceneTimer := time.NewTicker(c.sceneTime)
	defer sceneTimer.Stop()
	retargetTimer := time.NewTicker(c.retargetTime)
	defer retargetTimer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-sceneTimer.C:
			post(c.Cycle)
		case <-retargetTimer.C:
			post(c.retargetRandom)
		}
	}
}
