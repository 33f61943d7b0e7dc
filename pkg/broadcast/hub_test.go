package broadcast

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"effectkit/pkg/cues"
)

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHub_DeliversCueToConnectedSubscriber(t *testing.T) {
	hub := NewHub(Config{BufferSize: 8, RatePerSecond: 100})
	server := httptest.NewServer(hub)
	defer server.Close()

	conn := dial(t, server)

	require.Eventually(t, func() bool { return hub.Subscribers() == 1 }, time.Second, 5*time.Millisecond)

	hub.HandleCue(cues.OnApply, cues.Event{
		EffectName:          "poison_dot",
		Level:               2,
		StackCount:          1,
		RawMagnitude:        -5,
		NormalizedMagnitude: 0.5,
	})

	var msg outboundMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "on_apply", msg.Callback)
	assert.Equal(t, "poison_dot", msg.EffectName)
	assert.Equal(t, 2, msg.Level)
	assert.Equal(t, -5.0, msg.RawMagnitude)
}

func TestHub_UnregistersOnDisconnect(t *testing.T) {
	hub := NewHub(Config{BufferSize: 8, RatePerSecond: 100})
	server := httptest.NewServer(hub)
	defer server.Close()

	conn := dial(t, server)
	require.Eventually(t, func() bool { return hub.Subscribers() == 1 }, time.Second, 5*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.Subscribers() == 0 }, time.Second, 5*time.Millisecond)
}

func TestHub_HandleCueWithNoSubscribersDoesNotPanic(t *testing.T) {
	hub := NewHub(DefaultConfig())
	assert.NotPanics(t, func() {
		hub.HandleCue(cues.OnRemove, cues.Event{EffectName: "x"})
	})
}

func TestHub_RateLimiterDropsExcessMessages(t *testing.T) {
	hub := NewHub(Config{BufferSize: 100, RatePerSecond: 1})
	server := httptest.NewServer(hub)
	defer server.Close()

	_ = dial(t, server)
	require.Eventually(t, func() bool { return hub.Subscribers() == 1 }, time.Second, 5*time.Millisecond)

	for i := 0; i < 10; i++ {
		hub.HandleCue(cues.OnUpdate, cues.Event{EffectName: "fast_tick"})
	}

	hub.mu.RLock()
	var sub *subscriber
	for s := range hub.subs {
		sub = s
	}
	hub.mu.RUnlock()
	require.NotNil(t, sub)
	assert.Less(t, len(sub.outbound), 10)
}
