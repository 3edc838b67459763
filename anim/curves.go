package anim

import (
	"math"
	"sort"
	"strings"

	"github.com/fogleman/ease"
	"github.com/pkg/errors"
)

// EaseFunc maps normalised progress in [0, 1] to eased progress. It should,
// but need not, map 0 to 0 and 1 to 1.
type EaseFunc func(t float64) float64

// Curve names a built-in easing curve.
type Curve string

// Curves that mirror the CSS timing functions are cubic Béziers.
const (
	Linear      Curve = "LINEAR"
	Ease        Curve = "EASE"
	EaseIn      Curve = "EASE_IN"
	EaseOut     Curve = "EASE_OUT"
	EaseInOut   Curve = "EASE_IN_OUT"
	EaseInBack  Curve = "EASE_IN_BACK"
	EaseOutBack Curve = "EASE_OUT_BACK"
	ExpoIn      Curve = "EXPO_IN"
	ExpoOut     Curve = "EXPO_OUT"
	ExpoInOut   Curve = "EXPO_IN_OUT"
)

// Penner curves.
const (
	QuadInOut  Curve = "QUAD_IN_OUT"
	CubicInOut Curve = "CUBIC_IN_OUT"
	SineInOut  Curve = "SINE_IN_OUT"
	BounceOut  Curve = "BOUNCE_OUT"
	ElasticOut Curve = "ELASTIC_OUT"
)

var curves = map[Curve]EaseFunc{
	Linear:      linear,
	Ease:        mustBezier(0.25, 0.1, 0.25, 1),
	EaseIn:      mustBezier(0.42, 0, 1, 1),
	EaseOut:     mustBezier(0, 0, 0.58, 1),
	EaseInOut:   mustBezier(0.42, 0, 0.58, 1),
	EaseInBack:  mustBezier(0.6, -0.28, 0.735, 0.045),
	EaseOutBack: mustBezier(0.175, 0.885, 0.32, 1.275),
	ExpoIn:      mustBezier(0.95, 0.05, 0.795, 0.035),
	ExpoOut:     mustBezier(0.19, 1, 0.22, 1),
	ExpoInOut:   mustBezier(1, 0, 0, 1),

	QuadInOut:  ease.InOutQuad,
	CubicInOut: ease.InOutCubic,
	SineInOut:  ease.InOutSine,
	BounceOut:  ease.OutBounce,
	ElasticOut: ease.OutElastic,
}

func linear(t float64) float64 {
	return t
}

// Func returns the easing function of a named curve.
func (c Curve) Func() (EaseFunc, error) {
	f, ok := curves[Curve(strings.ToUpper(string(c)))]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidEase, "unknown curve %q", string(c))
	}
	return f, nil
}

// Curves lists the built-in curve names, sorted.
func Curves() []Curve {
	names := make([]Curve, 0, len(curves))
	for c := range curves {
		names = append(names, c)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// ResolveEase turns an ease description into a function. It accepts a Curve
// or curve name, an EaseFunc or plain func(float64) float64, or four Bézier
// control points as [4]float64, []float64 or []interface{} (as decoded from
// YAML). nil means Linear.
func ResolveEase(desc interface{}) (EaseFunc, error) {
	switch e := desc.(type) {
	case nil:
		return linear, nil
	case Curve:
		return e.Func()
	case string:
		return Curve(e).Func()
	case EaseFunc:
		if e == nil {
			return linear, nil
		}
		return e, nil
	case func(float64) float64:
		if e == nil {
			return linear, nil
		}
		return e, nil
	case [4]float64:
		return Bezier(e[0], e[1], e[2], e[3])
	case []float64:
		if len(e) != 4 {
			return nil, errors.Wrapf(ErrInvalidEase, "expected 4 control points, got %d", len(e))
		}
		return Bezier(e[0], e[1], e[2], e[3])
	case []interface{}:
		if len(e) != 4 {
			return nil, errors.Wrapf(ErrInvalidEase, "expected 4 control points, got %d", len(e))
		}
		var p [4]float64
		for i, v := range e {
			switch n := v.(type) {
			case float64:
				p[i] = n
			case int:
				p[i] = float64(n)
			default:
				return nil, errors.Wrapf(ErrInvalidEase, "control point %d is %T, not a number", i, v)
			}
		}
		return Bezier(p[0], p[1], p[2], p[3])
	}
	return nil, errors.Wrapf(ErrInvalidEase, "unsupported ease %T", desc)
}

const (
	newtonIterations      = 4
	newtonMinSlope        = 0.001
	subdivisionPrecision  = 1e-7
	subdivisionIterations = 10
	splineTableSize       = 11
	sampleStep            = 1.0 / (splineTableSize - 1)
)

// Bezier resolves a CSS-style cubic Bézier timing curve through (0,0),
// (x1,y1), (x2,y2) and (1,1). The x values must lie in [0, 1].
func Bezier(x1, y1, x2, y2 float64) (EaseFunc, error) {
	for _, v := range []float64{x1, y1, x2, y2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.Wrap(ErrInvalidEase, "control points must be finite")
		}
	}
	if x1 < 0 || x1 > 1 || x2 < 0 || x2 > 1 {
		return nil, errors.Wrapf(ErrInvalidEase, "bezier x values %v, %v outside [0, 1]", x1, x2)
	}

	if x1 == y1 && x2 == y2 {
		return linear, nil
	}

	var samples [splineTableSize]float64
	for i := range samples {
		samples[i] = bezierAt(float64(i)*sampleStep, x1, x2)
	}

	tForX := func(x float64) float64 {
		start := 0.0
		i := 1
		for ; i != splineTableSize-1 && samples[i] <= x; i++ {
			start += sampleStep
		}
		i--

		// Interpolate for a first guess.
		dist := (x - samples[i]) / (samples[i+1] - samples[i])
		guess := start + dist*sampleStep

		slope := bezierSlope(guess, x1, x2)
		if slope >= newtonMinSlope {
			return newtonRaphson(x, guess, x1, x2)
		} else if slope == 0 {
			return guess
		}
		return subdivide(x, start, start+sampleStep, x1, x2)
	}

	return func(x float64) float64 {
		if x == 0 || x == 1 {
			return x
		}
		return bezierAt(tForX(x), y1, y2)
	}, nil
}

func mustBezier(x1, y1, x2, y2 float64) EaseFunc {
	f, err := Bezier(x1, y1, x2, y2)
	if err != nil {
		panic(err)
	}
	return f
}

func bezierCoefficients(a1, a2 float64) (a, b, c float64) {
	return 1 - 3*a2 + 3*a1, 3*a2 - 6*a1, 3 * a1
}

func bezierAt(t, a1, a2 float64) float64 {
	a, b, c := bezierCoefficients(a1, a2)
	return ((a*t+b)*t + c) * t
}

func bezierSlope(t, a1, a2 float64) float64 {
	a, b, c := bezierCoefficients(a1, a2)
	return 3*a*t*t + 2*b*t + c
}

func newtonRaphson(x, guess, x1, x2 float64) float64 {
	for i := 0; i < newtonIterations; i++ {
		slope := bezierSlope(guess, x1, x2)
		if slope == 0 {
			return guess
		}
		guess -= (bezierAt(guess, x1, x2) - x) / slope
	}
	return guess
}

func subdivide(x, a, b, x1, x2 float64) float64 {
	var t, current float64
	for i := 0; i < subdivisionIterations; i++ {
		t = a + (b-a)/2
		current = bezierAt(t, x1, x2) - x
		if current > 0 {
			b = t
		} else {
			a = t
		}
		if math.Abs(current) <= subdivisionPrecision {
			break
		}
	}
	return t
}
