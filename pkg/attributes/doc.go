// Package attributes implements the engine's numeric attribute model: a
// set of named channels (base, modifier, overflow, validModifier, min,
// max, current) per attribute, combined through a single additive
// FlatBonus modifier channel clamped to [min, max], with bounded change-event cascades
// for attributes derived from other attributes.
package attributes
