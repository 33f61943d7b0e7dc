// Package content loads tag and effect catalogs from YAML, the same
// role teacher's data-driven subsystems fill with tagged Go structs
// unmarshaled via gopkg.in/yaml.v3. A catalog names every tag the game
// registers up front (pkg/tags.Registry is immutable once built) and
// every effects.EffectData template a host can apply by name.
//
// Loading goes through pkg/retry's FileSystemRetryConfig: catalog files
// typically live on a mounted content volume, and a transient read
// failure there should not be fatal on its own.
package content
