// Package config provides environment-driven configuration for the effect
// engine's ambient concerns: attribute recompute bounds, tag container
// encoding limits, content loading, and metrics exposure.
//
// # Loading Configuration
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Environment Variables
//
// Attribute model:
//   - EFFECTKIT_MAX_CASCADE_PASSES: bound on OnValueChanged cascade
//     recomputation before it is treated as a contract error (default: 8)
//
// Tag registry:
//   - EFFECTKIT_TAG_CONTAINER_SIZE_BITS: bits for the container count
//     reported by Config.MaxContainerCount, default 6 (max count 63); the
//     pkg/tags wire encoder uses its own fixed limit of 63
//
// Content loading:
//   - EFFECTKIT_CONTENT_DIR: directory containing tag/effect YAML catalogs
//   - EFFECTKIT_CONTENT_LOAD_TIMEOUT: validated and stored (default: 5s);
//     pkg/content.Load does not read it
//
// Metrics and cue broadcast:
//   - EFFECTKIT_METRICS_ENABLED: expose Prometheus metrics (default: true)
//   - EFFECTKIT_CUE_BROADCAST_BUFFER: per-connection outbound buffer size
//     for pkg/broadcast (default: 64)
//   - EFFECTKIT_CUE_BROADCAST_RATE: per-connection cue sends/sec allowed by
//     the rate limiter in pkg/broadcast (default: 50)
//
// # Validation
//
// All configuration values are validated on load; an invalid value
// produces a descriptive error rather than a silently-clamped default.
package config
