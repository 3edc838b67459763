package stream

import (
	"log"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/ledanim/anim"
)

// Publisher is the part of mqtt.Client the Streamer needs.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// Streamer that streams RGB data frames to an ledrx device whenever the
// animation changes.
type Streamer struct {
	client    Publisher
	sched     *anim.Scheduler
	topic     string
	qos       byte
	animation Animation

	pending bool
	sent    uint64
}

// NewStreamer creates an instance of a Streamer publishing to topic.
func NewStreamer(client Publisher, s *anim.Scheduler, topic string, qos byte) *Streamer {
	st := new(Streamer)
	st.client = client
	st.sched = s
	st.topic = topic
	st.qos = qos
	return st
}

// SetAnimation sets the animation to stream.
func (s *Streamer) SetAnimation(a Animation) {
	s.animation = a
}

// Invalidate asks for a frame to be sent on the next refresh. Any number of
// calls within one refresh send a single frame.
func (s *Streamer) Invalidate() {
	if s.pending {
		return
	}
	s.pending = true
	s.sched.Schedule(s.flush)
}

func (s *Streamer) flush() {
	s.pending = false
	s.SendFrame()
}

// Sent returns the number of frames published.
func (s *Streamer) Sent() uint64 {
	return s.sent
}

// SendFrame sends a frame as binary over MQTT to an ledrx device.
func (s *Streamer) SendFrame() {
	if s.animation == nil {
		return
	}

	f := s.animation.CalculateFrame()
	b, err := f.MarshalBinary()
	if err != nil {
		log.Printf("Failed to marshal frame: %v", err)
		return
	}

	token := s.client.Publish(s.topic, s.qos, false, b)
	s.sent++
	go func() {
		if token.Wait() && token.Error() != nil {
			log.Printf("Failed to publish frame: %v", token.Error())
		}
	}()
}
