package stream

import (
	"math"
	"math/rand"
	"time"

	"github.com/fogleman/ease"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledanim/anim"
	"github.com/matt-g-everett/ledanim/util"
	"github.com/pkg/errors"
)

type sparkle struct {
	pixel  int
	colour colorful.Color
	gain   *anim.Value
}

// scintillation swells from 0 to 1 and back inside [offset, offset+width] of
// a cycle and is dark either side of it.
func scintillation(offset, width float64) anim.EaseFunc {
	return func(t float64) float64 {
		u := (t - offset) / width
		if u <= 0 || u >= 1 {
			return 0
		}
		return ease.InOutQuad(1 - math.Abs(2*u-1))
	}
}

// A Twinkle is a Scene that scintillates random pixels, each lifting its
// colour towards a peak luminance and falling back.
type Twinkle struct {
	background colorful.Color
	palette    []colorful.Color
	peak       float64
	duration   time.Duration
	rnd        *rand.Rand

	sparkles []*sparkle
	all      *anim.Composite
}

// NewTwinkle creates a Twinkle played on s. Pixels, colours and timings come
// from rnd.
func NewTwinkle(s *anim.Scheduler, cfg TwinkleConfig, background colorful.Color, rnd *rand.Rand) (*Twinkle, error) {
	t := new(Twinkle)
	t.background = background
	t.peak = cfg.Peak
	t.duration = cfg.Duration
	t.rnd = rnd

	for _, hex := range cfg.Colours {
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, err
		}
		t.palette = append(t.palette, c)
	}
	if len(t.palette) == 0 {
		return nil, errors.Wrap(ErrInvalidConfig, "twinkle needs at least one colour")
	}
	if cfg.Groups <= 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "twinkle groups %d must be positive", cfg.Groups)
	}

	groups := make([]anim.Player, cfg.Groups)
	members := make([][]anim.Player, cfg.Groups)
	for i := 0; i < cfg.Particles; i++ {
		width := util.RandomBetween(rnd, 0.15, 0.5)
		offset := util.RandomBetween(rnd, 0, 1-width)
		gain, err := anim.NewValue(s, anim.ValueOptions{Start: 0, End: 1, Ease: scintillation(offset, width)})
		if err != nil {
			return nil, err
		}
		t.sparkles = append(t.sparkles, &sparkle{gain: gain})
		g := i % cfg.Groups
		members[g] = append(members[g], gain)
	}
	for g := range groups {
		groups[g] = anim.Compose(s, members[g]...)
	}
	t.all = anim.Compose(s, groups...)
	t.scatter()

	return t, nil
}

// scatter moves every sparkle to a random pixel and colour.
func (t *Twinkle) scatter() {
	for _, p := range t.sparkles {
		p.pixel = t.rnd.Intn(numPixels)
		p.colour = t.palette[t.rnd.Intn(len(t.palette))]
	}
}

// Name returns "twinkle".
func (t *Twinkle) Name() string {
	return "twinkle"
}

// Start scatters the sparkles and plays them from the beginning.
func (t *Twinkle) Start(onFrame func()) *anim.Signal {
	t.all.Reset()
	t.scatter()
	return t.all.Play(t.duration, onFrame)
}

// Stop resets every sparkle.
func (t *Twinkle) Stop() {
	t.all.Reset()
}

// Playable returns the composite of sparkle groups.
func (t *Twinkle) Playable() anim.Playable {
	return t.all
}

// CalculateFrame renders the brightest sparkle on each pixel over the
// background.
func (t *Twinkle) CalculateFrame() *Frame {
	f := NewFrame()
	f.Fill(t.background)

	var gains [numPixels]float64
	for _, p := range t.sparkles {
		gain := p.gain.Value()
		if gain <= gains[p.pixel] {
			continue
		}
		gains[p.pixel] = gain

		h, c, l := p.colour.Hcl()
		lifted := colorful.Hcl(h, c, l+(t.peak-l)*gain)
		f.pixels[p.pixel] = t.background.BlendHcl(lifted, gain).Clamped()
	}

	return f
}
