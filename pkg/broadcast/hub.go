package broadcast

import (
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"effectkit/pkg/cues"
)

// Config tunes a Hub's per-connection behavior.
type Config struct {
	// BufferSize is the depth of each subscriber's outbound channel.
	BufferSize int
	// RatePerSecond is the steady-state token-bucket refill rate each
	// subscriber is limited to; a burst of the same size is allowed.
	RatePerSecond float64
}

// DefaultConfig mirrors pkg/config's engine defaults.
func DefaultConfig() Config {
	return Config{BufferSize: 64, RatePerSecond: 50}
}

// Hub fans cues.Event notifications out to a dynamic set of WebSocket
// subscribers. Hub implements cues.Handler, so it registers directly
// with a cues.Manager via RegisterContainer over the tags a host wants
// observable remotely.
type Hub struct {
	cfg Config
	log *logrus.Entry

	mu   sync.RWMutex
	subs map[*subscriber]struct{}
}

// NewHub constructs an empty Hub.
func NewHub(cfg Config) *Hub {
	return &Hub{
		cfg:  cfg,
		log:  logrus.WithField("component", "broadcast.Hub"),
		subs: make(map[*subscriber]struct{}),
	}
}

// HandleCue implements cues.Handler. It is called synchronously from
// the engine's dispatch path, so it must never block: each subscriber's
// send is buffered-channel-or-drop.
func (h *Hub) HandleCue(callback cues.CallbackType, event cues.Event) {
	msg := outboundMessage{
		Callback:            callbackName(callback),
		EffectName:          event.EffectName,
		Level:               event.Level,
		StackCount:          event.StackCount,
		RawMagnitude:        event.RawMagnitude,
		NormalizedMagnitude: event.NormalizedMagnitude,
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subs {
		s.send(msg)
	}
}

// Subscribers returns the current number of connected observers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *Hub) register(s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs[s] = struct{}{}
	h.log.WithField("total", len(h.subs)).Debug("cue subscriber connected")
}

func (h *Hub) unregister(s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[s]; !ok {
		return
	}
	delete(h.subs, s)
	close(s.outbound)
	h.log.WithField("total", len(h.subs)).Debug("cue subscriber disconnected")
}

func (h *Hub) newSubscriber() *subscriber {
	return &subscriber{
		outbound: make(chan outboundMessage, h.cfg.BufferSize),
		limiter:  rate.NewLimiter(rate.Limit(h.cfg.RatePerSecond), max(1, int(h.cfg.RatePerSecond))),
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// outboundMessage is the wire shape sent to each WebSocket subscriber.
type outboundMessage struct {
	Callback            string  `json:"callback"`
	EffectName          string  `json:"effect_name"`
	Level               int     `json:"level"`
	StackCount          int     `json:"stack_count"`
	RawMagnitude        float64 `json:"raw_magnitude"`
	NormalizedMagnitude float64 `json:"normalized_magnitude"`
}

func callbackName(c cues.CallbackType) string {
	switch c {
	case cues.OnApply:
		return "on_apply"
	case cues.OnExecute:
		return "on_execute"
	case cues.OnUpdate:
		return "on_update"
	case cues.OnRemove:
		return "on_remove"
	default:
		return "unknown"
	}
}
