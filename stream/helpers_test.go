package stream

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/ledanim/anim"
)

type harness struct {
	clock  *anim.ManualClock
	frames *anim.ManualFrames
	sched  *anim.Scheduler
	rnd    *rand.Rand
}

func newHarness() *harness {
	h := new(harness)
	h.clock = anim.NewManualClock(time.Date(2025, 12, 24, 18, 0, 0, 0, time.UTC))
	h.frames = new(anim.ManualFrames)
	h.sched = anim.NewScheduler(h.frames, h.clock)
	h.rnd = rand.New(rand.NewSource(42))
	return h
}

func (h *harness) step(d time.Duration) bool {
	h.clock.Advance(d)
	return h.frames.Step()
}

// run steps frames of d for total.
func (h *harness) run(total, d time.Duration) {
	for elapsed := time.Duration(0); elapsed < total; elapsed += d {
		h.step(d)
	}
}

func testConfig() Config {
	c := DefaultConfig()
	c.Mqtt.URL = "tcp://localhost:1883"
	return c
}

func newTestController(t *testing.T, h *harness, redraw func()) *Controller {
	t.Helper()
	cfg := testConfig().Animation
	scenes, err := NewScenes(h.sched, cfg, h.rnd)
	if err != nil {
		t.Fatalf("NewScenes failed: %v", err)
	}
	c, err := NewController(h.sched, cfg, scenes, h.rnd, redraw)
	if err != nil {
		t.Fatalf("NewController failed: %v", err)
	}
	return c
}

type fakeToken struct {
	mqtt.Token
}

func (fakeToken) Wait() bool {
	return true
}

func (fakeToken) WaitTimeout(time.Duration) bool {
	return true
}

func (fakeToken) Error() error {
	return nil
}

type published struct {
	topic   string
	qos     byte
	payload []byte
}

type fakePublisher struct {
	mu       sync.Mutex
	messages []published
}

func (p *fakePublisher) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, published{topic, qos, payload.([]byte)})
	return fakeToken{}
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.messages)
}

func (p *fakePublisher) last() published {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.messages[len(p.messages)-1]
}
