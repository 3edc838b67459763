package anim

import (
	"context"
	"sync"
	"time"
)

// FrameSource is the host's frame-delivery primitive: RequestFrame invokes fn
// once, on the next display refresh.
type FrameSource interface {
	RequestFrame(fn func())
}

// Loop is a ticker-driven FrameSource. Frames and posted work all run on the
// goroutine that calls Run, which makes it the single scheduling thread.
type Loop struct {
	interval time.Duration
	posts    chan func()

	mu     sync.Mutex
	frames []func()
}

// NewLoop creates a Loop delivering frameRate frames per second.
func NewLoop(frameRate float64) *Loop {
	l := new(Loop)
	if frameRate <= 0 {
		frameRate = 30
	}
	l.interval = time.Duration(float64(time.Second) / frameRate)
	l.posts = make(chan func(), 64)
	return l
}

// Interval returns the time between frames.
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// RequestFrame queues fn for the next tick.
func (l *Loop) RequestFrame(fn func()) {
	l.mu.Lock()
	l.frames = append(l.frames, fn)
	l.mu.Unlock()
}

// Post runs fn on the loop goroutine. It does not wait for fn to run.
func (l *Loop) Post(fn func()) {
	l.posts <- fn
}

// Do runs fn on the loop goroutine and waits for it to return.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	select {
	case l.posts <- func() { fn(); close(done) }:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run delivers frames and posted work until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.posts:
			fn()
		case <-ticker.C:
			l.deliver()
		}
	}
}

func (l *Loop) deliver() {
	l.mu.Lock()
	frames := l.frames
	l.frames = nil
	l.mu.Unlock()

	for _, fn := range frames {
		fn()
	}
}

// ManualFrames is a FrameSource that delivers a frame only when Step is
// called. It is not safe for concurrent use.
type ManualFrames struct {
	pending []func()
}

// RequestFrame queues fn until the next Step.
func (m *ManualFrames) RequestFrame(fn func()) {
	m.pending = append(m.pending, fn)
}

// Step delivers one frame. It reports whether anything was waiting for it.
func (m *ManualFrames) Step() bool {
	if len(m.pending) == 0 {
		return false
	}
	pending := m.pending
	m.pending = nil
	for _, fn := range pending {
		fn()
	}
	return true
}

// Pending returns the number of frame requests waiting for delivery.
func (m *ManualFrames) Pending() int {
	return len(m.pending)
}
