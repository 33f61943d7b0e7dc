// Package tags implements the hierarchical, interned tag system used
// throughout the effect engine for gating, requirements, and component
// conditions: a Registry of dotted-path Tags, set-algebra Containers with
// a cached hierarchy closure, and a byte-coded Query expression language.
package tags
