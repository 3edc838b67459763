package stream

import (
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledanim/anim"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// ErrInvalidConfig is returned when a config fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the YAML configuration of the streamer.
type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		ClientID string `yaml:"clientID"`
		QoS      byte   `yaml:"qos"`
		Topics   struct {
			Stream string `yaml:"stream"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	API struct {
		Listen string `yaml:"listen"`
	} `yaml:"api"`
	Animation AnimationConfig `yaml:"animation"`
}

// AnimationConfig configures the frame loop and the scenes.
type AnimationConfig struct {
	FrameRate      float64       `yaml:"frameRate"`
	SceneTime      time.Duration `yaml:"sceneTime"`
	TransitionTime time.Duration `yaml:"transitionTime"`
	Background     string        `yaml:"background"`
	Pulse          PulseConfig   `yaml:"pulse"`
	Chase          ChaseConfig   `yaml:"chase"`
	Twinkle        TwinkleConfig `yaml:"twinkle"`
	Stripes        StripesConfig `yaml:"stripes"`
}

// PulseConfig configures the Pulse scene.
type PulseConfig struct {
	Duration   time.Duration     `yaml:"duration"`
	Colour     string            `yaml:"colour"`
	Brightness anim.ValueOptions `yaml:"brightness"`
	Hue        anim.ValueOptions `yaml:"hue"`
	Width      anim.ValueOptions `yaml:"width"`
}

// ChaseConfig configures the Chase scene.
type ChaseConfig struct {
	TrailLength int                 `yaml:"trailLength"`
	TrailEase   interface{}         `yaml:"trailEase"`
	Retarget    time.Duration       `yaml:"retarget"`
	Spring      anim.KineticOptions `yaml:"spring"`
}

// TwinkleConfig configures the Twinkle scene.
type TwinkleConfig struct {
	Duration  time.Duration `yaml:"duration"`
	Particles int           `yaml:"particles"`
	// Groups splits the particles into composites played together.
	Groups  int      `yaml:"groups"`
	Colours []string `yaml:"colours"`
	// Peak is the luminance a particle lifts to at full brightness.
	Peak float64 `yaml:"peak"`
}

// StripesConfig configures the Stripes scene.
type StripesConfig struct {
	Duration    time.Duration `yaml:"duration"`
	Distance    float64       `yaml:"distance"`
	Ease        interface{}   `yaml:"ease"`
	MinLength   int           `yaml:"minLength"`
	MaxLength   int           `yaml:"maxLength"`
	Lightness   float64       `yaml:"lightness"`
	Perspective bool          `yaml:"perspective"`
}

// DefaultConfig returns the configuration used for anything a config file
// leaves out.
func DefaultConfig() Config {
	var c Config
	c.Mqtt.Topics.Stream = "home/xmastree/stream"
	c.API.Listen = ":3000"
	c.Animation = AnimationConfig{
		FrameRate:      30,
		SceneTime:      20 * time.Second,
		TransitionTime: 2 * time.Second,
		Background:     "#000005",
		Pulse: PulseConfig{
			Duration:   1500 * time.Millisecond,
			Colour:     "#ff4080",
			Brightness: anim.ValueOptions{Start: 0.2, End: 1, Ease: anim.ExpoOut},
			Hue:        anim.ValueOptions{Start: 0, End: 120, Ease: anim.EaseInOut},
			Width:      anim.ValueOptions{Start: 0.1, End: 1, Ease: anim.EaseOutBack},
		},
		Chase: ChaseConfig{
			TrailLength: 40,
			TrailEase:   anim.QuadInOut,
			Retarget:    3 * time.Second,
			Spring: anim.KineticOptions{
				Stiffness: 3,
				Damping:   0.6,
				Duration:  time.Second,
			},
		},
		Twinkle: TwinkleConfig{
			Duration:  4 * time.Second,
			Particles: 120,
			Groups:    4,
			Colours:   []string{"#300010", "#002030", "#201000", "#001a08"},
			Peak:      0.6,
		},
		Stripes: StripesConfig{
			Duration:    5 * time.Second,
			Distance:    1000,
			Ease:        anim.Linear,
			MinLength:   150,
			MaxLength:   400,
			Lightness:   0.2,
			Perspective: true,
		},
	}
	return c
}

// LoadConfig reads a YAML config from path on top of DefaultConfig and
// validates it.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return c, errors.Wrap(err, "opening config")
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&c); err != nil {
		return c, errors.Wrapf(err, "decoding %s", path)
	}

	return c, c.Validate()
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	if c.Mqtt.URL == "" {
		return errors.Wrap(ErrInvalidConfig, "mqtt.url is required")
	}
	if c.Mqtt.Topics.Stream == "" {
		return errors.Wrap(ErrInvalidConfig, "mqtt.topics.stream is required")
	}
	if c.Mqtt.QoS > 2 {
		return errors.Wrapf(ErrInvalidConfig, "mqtt.qos %d must be 0, 1 or 2", c.Mqtt.QoS)
	}
	return c.Animation.Validate()
}

// Validate checks the animation settings.
func (a AnimationConfig) Validate() error {
	if a.FrameRate <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "animation.frameRate %v must be positive", a.FrameRate)
	}
	if a.SceneTime <= 0 || a.TransitionTime < 0 || a.Pulse.Duration <= 0 || a.Chase.Retarget <= 0 ||
		a.Twinkle.Duration <= 0 || a.Stripes.Duration <= 0 {
		return errors.Wrap(ErrInvalidConfig, "animation durations must be positive")
	}
	if a.TransitionTime >= a.SceneTime {
		return errors.Wrapf(ErrInvalidConfig, "transitionTime %v must be shorter than sceneTime %v", a.TransitionTime, a.SceneTime)
	}
	for name, hex := range map[string]string{"background": a.Background, "pulse.colour": a.Pulse.Colour} {
		if _, err := colorful.Hex(hex); err != nil {
			return errors.Wrapf(ErrInvalidConfig, "animation.%s %q is not a hex colour", name, hex)
		}
	}
	for name, opts := range map[string]anim.ValueOptions{
		"brightness": a.Pulse.Brightness,
		"hue":        a.Pulse.Hue,
		"width":      a.Pulse.Width,
	} {
		if _, err := anim.ResolveEase(opts.Ease); err != nil {
			return errors.Wrapf(ErrInvalidConfig, "animation.pulse.%s: %v", name, err)
		}
	}
	if a.Chase.TrailLength <= 0 || a.Chase.TrailLength > numPixels {
		return errors.Wrapf(ErrInvalidConfig, "animation.chase.trailLength %d outside 1..%d", a.Chase.TrailLength, numPixels)
	}
	if _, err := anim.ResolveEase(a.Chase.TrailEase); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "animation.chase.trailEase: %v", err)
	}
	s := a.Chase.Spring
	if s.Damping < 0 || s.Damping >= 1 || s.Stiffness < 0 || s.Duration < 0 {
		return errors.Wrap(ErrInvalidConfig, "animation.chase.spring needs damping in [0, 1), stiffness >= 0 and a non-negative duration")
	}
	return a.validateScenery()
}

func (a AnimationConfig) validateScenery() error {
	t := a.Twinkle
	if t.Groups <= 0 || t.Particles < t.Groups {
		return errors.Wrapf(ErrInvalidConfig, "animation.twinkle needs at least one group and a particle per group, got %d and %d", t.Groups, t.Particles)
	}
	if len(t.Colours) == 0 {
		return errors.Wrap(ErrInvalidConfig, "animation.twinkle.colours is empty")
	}
	for _, hex := range t.Colours {
		if _, err := colorful.Hex(hex); err != nil {
			return errors.Wrapf(ErrInvalidConfig, "animation.twinkle.colours %q is not a hex colour", hex)
		}
	}
	if t.Peak < 0 || t.Peak > 1 {
		return errors.Wrapf(ErrInvalidConfig, "animation.twinkle.peak %v outside [0, 1]", t.Peak)
	}

	s := a.Stripes
	if s.MinLength <= 0 || s.MaxLength < s.MinLength {
		return errors.Wrapf(ErrInvalidConfig, "animation.stripes lengths %d..%d are unusable", s.MinLength, s.MaxLength)
	}
	if s.Distance < 0 {
		return errors.Wrapf(ErrInvalidConfig, "animation.stripes.distance %v must not be negative", s.Distance)
	}
	if s.Lightness < 0 || s.Lightness > 1 {
		return errors.Wrapf(ErrInvalidConfig, "animation.stripes.lightness %v outside [0, 1]", s.Lightness)
	}
	if _, err := anim.ResolveEase(s.Ease); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "animation.stripes.ease: %v", err)
	}
	return nil
}

// mustHex parses a colour that Validate has already checked.
func mustHex(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		panic(err)
	}
	return c
}
