// Package broadcast fans engine cue events out to external observers
// over WebSocket, the one concrete cues.Handler sink shipped alongside
// the engine core (hosts that don't need remote observers never import
// this package). It is grounded on teacher's pkg/server/websocket.go:
// the same gorilla/websocket upgrade-and-pump-loop shape, adapted from
// RPC request/response to one-way cue fan-out.
//
// A fast periodic effect ticking every frame can dispatch cues far
// faster than a browser tab can render them, so every connection gets
// its own golang.org/x/time/rate limiter; a connection that can't keep
// up has cues dropped for it rather than blocking the dispatch path
// other connections and the engine tick depend on.
package broadcast
