// Package effects implements the effect specification and active-effect
// lifecycle: immutable EffectData templates, the Effect binding of a
// template to a source/target/level, and Manager, the per-entity
// scheduler that applies effects, drives their duration and periodic
// timers, resolves stacking, enforces inhibition, tracks live
// dependencies between non-snapshot modifiers and their captured
// attributes, and emits cues on every transition.
package effects
