package anim

import (
	"testing"

	"github.com/pkg/errors"
)

func TestNamedCurvesHitEndpoints(t *testing.T) {
	for _, c := range Curves() {
		f, err := c.Func()
		if err != nil {
			t.Fatalf("%s: %v", c, err)
		}
		// Elastic curves settle just short of their endpoints.
		if got := f(0); !near(got, 0, 5e-3) {
			t.Errorf("%s(0) = %v, expected 0", c, got)
		}
		if got := f(1); !near(got, 1, 5e-3) {
			t.Errorf("%s(1) = %v, expected 1", c, got)
		}
	}
}

func TestBezierKnownValues(t *testing.T) {
	tests := []struct {
		curve    Curve
		x        float64
		expected float64
	}{
		{Linear, 0.3, 0.3},
		{EaseInOut, 0.5, 0.5},
		{Ease, 0.5, 0.8024},
		{EaseIn, 0.5, 0.3153},
		{EaseOut, 0.5, 0.6847},
	}
	for _, tt := range tests {
		f, err := tt.curve.Func()
		if err != nil {
			t.Fatal(err)
		}
		if got := f(tt.x); !near(got, tt.expected, 1e-3) {
			t.Errorf("%s(%v) = %v, expected %v", tt.curve, tt.x, got, tt.expected)
		}
	}
}

func TestBezierOvershoot(t *testing.T) {
	f, _ := EaseOutBack.Func()
	peak := 0.0
	for i := 0; i <= 100; i++ {
		if y := f(float64(i) / 100); y > peak {
			peak = y
		}
	}
	if peak <= 1 {
		t.Errorf("Expected EASE_OUT_BACK to overshoot 1, peak %v", peak)
	}
}

func TestBezierMonotonicForMonotonicPoints(t *testing.T) {
	f, err := Bezier(0.42, 0, 0.58, 1)
	if err != nil {
		t.Fatal(err)
	}
	prev := f(0)
	for i := 1; i <= 200; i++ {
		y := f(float64(i) / 200)
		if y < prev-1e-9 {
			t.Fatalf("Curve decreased at %v: %v < %v", float64(i)/200, y, prev)
		}
		prev = y
	}
}

func TestBezierDiagonalIsLinear(t *testing.T) {
	f, err := Bezier(0.3, 0.3, 0.7, 0.7)
	if err != nil {
		t.Fatal(err)
	}
	if got := f(0.37); got != 0.37 {
		t.Errorf("Expected identity, got %v", got)
	}
}

func TestResolveEase(t *testing.T) {
	custom := func(t float64) float64 { return t * t }

	tests := []struct {
		name string
		desc interface{}
		x    float64
		want float64
	}{
		{"nil", nil, 0.4, 0.4},
		{"curve", EaseInOut, 0.5, 0.5},
		{"lowercase name", "ease_in_out", 0.5, 0.5},
		{"func", custom, 0.5, 0.25},
		{"ease func", EaseFunc(custom), 0.5, 0.25},
		{"array", [4]float64{0.42, 0, 0.58, 1}, 0.5, 0.5},
		{"slice", []float64{0.42, 0, 0.58, 1}, 0.5, 0.5},
		{"yaml list", []interface{}{0.42, 0, 0.58, 1}, 0.5, 0.5},
		{"penner", QuadInOut, 0.25, 0.125},
	}
	for _, tt := range tests {
		f, err := ResolveEase(tt.desc)
		if err != nil {
			t.Errorf("%s: %v", tt.name, err)
			continue
		}
		if got := f(tt.x); !near(got, tt.want, 1e-6) {
			t.Errorf("%s: f(%v) = %v, expected %v", tt.name, tt.x, got, tt.want)
		}
	}
}

func TestCurveFuncUnknown(t *testing.T) {
	if _, err := Curve("WOBBLE").Func(); errors.Cause(err) != ErrInvalidEase {
		t.Errorf("Expected ErrInvalidEase, got %v", err)
	}
}
