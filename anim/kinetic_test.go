package anim

import (
	"math"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func newKinetic(t *testing.T, h *harness, damping, stiffness float64) *Kinetic {
	t.Helper()
	opts := DefaultKineticOptions()
	opts.Damping = damping
	opts.Stiffness = stiffness
	k, err := NewKinetic(h.sched, opts)
	if err != nil {
		t.Fatalf("NewKinetic failed: %v", err)
	}
	return k
}

// velocity estimates the rate of change over the dt that follows.
func velocity(h *harness, k *Kinetic, dt time.Duration) float64 {
	a := k.Value()
	h.clock.Advance(dt)
	b := k.Value()
	return (b - a) / float64(dt)
}

func TestKineticDefaults(t *testing.T) {
	h := newHarness()
	k, err := NewKinetic(h.sched, KineticOptions{Start: 7, Stiffness: 3.9, Damping: 0.5, Duration: time.Second})
	if err != nil {
		t.Fatal(err)
	}

	if k.Value() != 7 || k.Target() != 7 {
		t.Errorf("Expected value and target 7, got %v %v", k.Value(), k.Target())
	}
	if k.stiffness != 3 {
		t.Errorf("Expected stiffness truncated to 3, got %d", k.stiffness)
	}
	if k.Window() != time.Second {
		t.Errorf("Expected 1s window, got %v", k.Window())
	}
}

func TestKineticZeroDurationDefaults(t *testing.T) {
	h := newHarness()
	k, err := NewKinetic(h.sched, KineticOptions{Damping: 0.8, Stiffness: 3})
	if err != nil {
		t.Fatalf("NewKinetic failed: %v", err)
	}
	if k.Window() != time.Second {
		t.Errorf("Expected 1s window, got %v", k.Window())
	}
}

func TestNewKineticRejectsInvalidOptions(t *testing.T) {
	h := newHarness()

	tests := []KineticOptions{
		{Damping: 1, Stiffness: 3, Duration: time.Second},
		{Damping: -0.1, Stiffness: 3, Duration: time.Second},
		{Damping: 0.5, Stiffness: -1, Duration: time.Second},
		{Damping: 0.5, Stiffness: 3, Duration: -time.Second},
		{Start: math.NaN(), Damping: 0.5, Stiffness: 3, Duration: time.Second},
	}
	for _, opts := range tests {
		if _, err := NewKinetic(h.sched, opts); errors.Cause(err) != ErrInvalidOption {
			t.Errorf("%+v: expected ErrInvalidOption, got %v", opts, err)
		}
	}
}

func TestKineticPlayAndResetWarn(t *testing.T) {
	warnings := captureWarnings(t)
	h := newHarness()
	k := newKinetic(t, h, 0.8, 3)

	k.Play(time.Second, nil)
	if k.State() != Unstarted {
		t.Errorf("Expected Play to be a no-op, got %v", k.State())
	}

	k.PlayTo(10, nil)
	h.step(100 * time.Millisecond)
	before := k.Value()
	k.Reset()
	if k.State() != Playing || k.Value() != before {
		t.Errorf("Expected Reset to be a no-op")
	}

	if len(warnings.lines) != 2 {
		t.Errorf("Expected 2 warnings, got %q", warnings.lines)
	}
}

func TestKineticPlayToSettles(t *testing.T) {
	h := newHarness()
	k := newKinetic(t, h, 0.8, 3)

	frames := 0
	signal := k.PlayTo(100, func() { frames++ })
	if k.State() != Playing {
		t.Fatalf("Expected playing, got %v", k.State())
	}

	h.step(50 * time.Millisecond)
	mid := k.Value()
	if mid <= 0 || mid >= 100 {
		t.Errorf("Expected value between 0 and 100 early on, got %v", mid)
	}

	for h.step(16 * time.Millisecond) {
	}

	if completed, resolved := signal.Result(); !resolved || !completed {
		t.Fatalf("Expected settling to resolve the signal to true")
	}
	if got := k.Value(); !near(got, 100, 0.1) {
		t.Errorf("Expected to settle at 100, got %v", got)
	}
	if frames < 60 {
		t.Errorf("Expected a frame per tick for the whole window, got %d", frames)
	}
}

func TestKineticRedirectKeepsSignal(t *testing.T) {
	h := newHarness()
	k := newKinetic(t, h, 0.6, 3)

	first := k.PlayTo(50, nil)
	h.step(100 * time.Millisecond)
	second := k.PlayTo(-20, nil)

	if first != second {
		t.Error("Expected redirect to keep the current signal")
	}
	if k.Target() != -20 {
		t.Errorf("Expected target -20, got %v", k.Target())
	}
}

func TestKineticRedirectIsContinuous(t *testing.T) {
	tests := []struct {
		damping   float64
		stiffness float64
		first     float64
		second    float64
		at        time.Duration
	}{
		{0.6, 3, 100, 200, 150 * time.Millisecond},
		{0.8, 3, 100, 300, 100 * time.Millisecond},
		{0.6, 3, 100, -50, 120 * time.Millisecond},
		{0.5, 2, -40, 80, 90 * time.Millisecond},
		{0, 3, 100, 200, 150 * time.Millisecond},
		{0, 3, 100, -50, 120 * time.Millisecond},
	}

	const dt = 100 * time.Microsecond
	for _, tt := range tests {
		h := newHarness()
		k := newKinetic(t, h, tt.damping, tt.stiffness)

		k.PlayTo(tt.first, nil)
		h.step(tt.at - dt)
		before := velocity(h, k, dt)
		position := k.Value()

		k.PlayTo(tt.second, nil)
		if got := k.Value(); !near(got, position, 1e-9) {
			t.Errorf("%+v: position jumped from %v to %v", tt, position, got)
		}

		after := velocity(h, k, dt)
		if math.Abs(after-before) > 0.05*math.Abs(before) {
			t.Errorf("%+v: velocity jumped from %v to %v", tt, before, after)
		}
	}
}

func TestKineticRedirectToCurrentPosition(t *testing.T) {
	h := newHarness()
	k := newKinetic(t, h, 0.8, 3)

	k.PlayTo(10, nil)
	h.step(80 * time.Millisecond)
	here := k.Value()
	k.PlayTo(here, nil)

	for i := 0; i < 5; i++ {
		h.step(16 * time.Millisecond)
		if v := k.Value(); math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("Expected finite value, got %v", v)
		}
	}
}

func TestKineticReplayAfterSettling(t *testing.T) {
	h := newHarness()
	k := newKinetic(t, h, 0.8, 3)

	first := k.PlayTo(1, nil)
	for h.step(20 * time.Millisecond) {
	}
	if k.State() == Playing {
		t.Fatal("Expected the spring to settle")
	}

	second := k.PlayTo(2, nil)
	if second == first {
		t.Error("Expected a fresh signal after settling")
	}
	if k.State() != Playing {
		t.Errorf("Expected playing again, got %v", k.State())
	}
	if got := k.Value(); !near(got, 1, 1e-2) {
		t.Errorf("Expected to start from the settled position, got %v", got)
	}
}

func TestKineticPauseResume(t *testing.T) {
	h := newHarness()
	k := newKinetic(t, h, 0.6, 3)

	k.PlayTo(100, nil)
	h.step(120 * time.Millisecond)
	before := k.Value()

	k.Pause()
	h.clock.Advance(5 * time.Second)
	if k.Value() != before {
		t.Errorf("Expected paused value %v, got %v", before, k.Value())
	}

	k.Resume()
	if got := k.Value(); got != before {
		t.Errorf("Expected resumed value %v, got %v", before, got)
	}
}

func TestNOOPLoggerSilencesWarnings(t *testing.T) {
	old := WARN
	WARN = NOOPLogger{}
	defer func() { WARN = old }()

	h := newHarness()
	k := newKinetic(t, h, 0.8, 3)
	k.Play(time.Second, nil)
	k.Reset()
	if k.State() != Unstarted {
		t.Errorf("Expected no-op, got %v", k.State())
	}
}

func TestKineticPlayToWhilePausedInterrupts(t *testing.T) {
	h := newHarness()
	k := newKinetic(t, h, 0.8, 3)

	first := k.PlayTo(10, nil)
	h.step(100 * time.Millisecond)
	k.Pause()

	second := k.PlayTo(20, nil)
	if completed, resolved := first.Result(); !resolved || completed {
		t.Errorf("Expected the paused trajectory to resolve to false, got resolved=%v completed=%v", resolved, completed)
	}
	if second == first || k.State() != Playing {
		t.Errorf("Expected a fresh trajectory, got state %v", k.State())
	}
}
