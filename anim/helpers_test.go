package anim

import (
	"fmt"
	"math"
	"testing"
	"time"
)

type harness struct {
	clock  *ManualClock
	frames *ManualFrames
	sched  *Scheduler
}

func newHarness() *harness {
	h := new(harness)
	h.clock = NewManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	h.frames = new(ManualFrames)
	h.sched = NewScheduler(h.frames, h.clock)
	return h
}

// step advances the clock by d and delivers one frame.
func (h *harness) step(d time.Duration) bool {
	h.clock.Advance(d)
	return h.frames.Step()
}

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Println(v ...interface{}) {
	r.lines = append(r.lines, fmt.Sprintln(v...))
}

func (r *recordingLogger) Printf(format string, v ...interface{}) {
	r.lines = append(r.lines, fmt.Sprintf(format, v...))
}

func captureWarnings(t *testing.T) *recordingLogger {
	r := new(recordingLogger)
	old := WARN
	WARN = r
	t.Cleanup(func() { WARN = old })
	return r
}

func near(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}
