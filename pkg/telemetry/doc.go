// Package telemetry exposes Prometheus collectors for the effect
// engine, the same shape as teacher's pkg/server/metrics.go: a single
// struct holding every collector, constructed against its own private
// registry so embedding the engine in a host process never collides
// with that host's default Prometheus registry.
package telemetry
