package broadcast

import (
	"golang.org/x/time/rate"
)

// subscriber is one connected WebSocket observer's outbound queue and
// rate limiter. It has no reference back to the *websocket.Conn itself
// so HandleCue (called from the engine's dispatch path) never touches
// connection state directly; writeLoop in connection.go owns the conn.
type subscriber struct {
	outbound chan outboundMessage
	limiter  *rate.Limiter
}

// send enqueues msg for delivery, subject to the subscriber's rate
// limit and buffer depth. It never blocks: a limiter rejection or a
// full buffer both simply drop the message for this subscriber.
func (s *subscriber) send(msg outboundMessage) {
	if !s.limiter.Allow() {
		return
	}
	select {
	case s.outbound <- msg:
	default:
	}
}
