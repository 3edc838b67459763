package stream

import (
	"math/rand"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledanim/anim"
)

type stripe struct {
	colour colorful.Color
	length float64
}

// Stripes is a Scene that scrolls an endless run of random coloured stripes
// along the strip. Each cycle moves it on by a fixed distance.
type Stripes struct {
	cfg      StripesConfig
	rnd      *rand.Rand
	offset   *anim.Value
	duration time.Duration

	stripes []stripe
	// base is the distance scrolled by earlier cycles.
	base float64
	// culled is the total length of stripes that have scrolled off.
	culled float64
}

// NewStripes creates a Stripes played on s. Stripe colours and lengths come
// from rnd.
func NewStripes(s *anim.Scheduler, cfg StripesConfig, rnd *rand.Rand) (*Stripes, error) {
	offset, err := anim.NewValue(s, anim.ValueOptions{Start: 0, End: cfg.Distance, Ease: cfg.Ease})
	if err != nil {
		return nil, err
	}

	st := new(Stripes)
	st.cfg = cfg
	st.rnd = rnd
	st.offset = offset
	st.duration = cfg.Duration
	st.stripes = make([]stripe, 0, 20)
	return st, nil
}

func (st *Stripes) addStripe() {
	colour := colorful.Hsl(st.rnd.Float64()*360, 1, st.cfg.Lightness)
	length := st.cfg.MinLength + st.rnd.Intn(st.cfg.MaxLength-st.cfg.MinLength+1)
	st.stripes = append(st.stripes, stripe{colour, float64(length)})
}

// fold carries the distance scrolled so far into base so the offset can
// start over without a jump.
func (st *Stripes) fold() {
	st.base += st.offset.Value()
	st.offset.Reset()
}

// Name returns "stripes".
func (st *Stripes) Name() string {
	return "stripes"
}

// Start scrolls on from wherever the stripes are.
func (st *Stripes) Start(onFrame func()) *anim.Signal {
	st.fold()
	return st.offset.Play(st.duration, onFrame)
}

// Stop leaves the stripes where they are.
func (st *Stripes) Stop() {
	st.fold()
}

// Playable returns the scroll offset.
func (st *Stripes) Playable() anim.Playable {
	return st.offset
}

// Position returns how far the stripes have scrolled past the first pixel.
func (st *Stripes) Position() float64 {
	return st.base + st.offset.Value()
}

// CalculateFrame renders the stripes, stretched further along the strip the
// further they are from the first pixel.
func (st *Stripes) CalculateFrame() *Frame {
	f := NewFrame()
	n := f.Len()

	// Cull stripes that have passed.
	for {
		if len(st.stripes) == 0 {
			st.addStripe()
		}
		if st.Position()-st.culled < st.stripes[0].length {
			break
		}
		st.culled += st.stripes[0].length
		st.stripes = st.stripes[1:]
	}

	pos := st.Position() - st.culled
	current := 0
	end := st.stripes[0].length
	for i := 0; i < n; i++ {
		factor := 1.0
		if st.cfg.Perspective {
			factor = 1 + 1.4*float64(i)/float64(n)
		}
		at := factor*float64(i) + pos
		for at >= end {
			current++
			if current == len(st.stripes) {
				st.addStripe()
			}
			end += st.stripes[current].length
		}
		f.pixels[i] = st.stripes[current].colour
	}

	return f
}
