// Package cues implements the engine's side-channel notification
// pipeline: tag-hierarchy-keyed handler registration, four callback
// types dispatched as effects apply/execute/update/remove, and
// normalization of the several live magnitude sources a CueData may
// name.
package cues
