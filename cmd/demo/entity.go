package main

import (
	"effectkit/pkg/attributes"
	"effectkit/pkg/tags"
)

// demoEntity is the minimal concrete entity.Entity a host game would
// embed its own richer type around. It owns one attribute set and two
// tag containers, exactly the surface pkg/entity.Entity requires.
type demoEntity struct {
	attrs    *attributes.AttributeSet
	owned    tags.Container
	modifier tags.Container
}

func newDemoEntity(cascadeBound int) *demoEntity {
	return &demoEntity{attrs: attributes.NewAttributeSet(cascadeBound)}
}

func (e *demoEntity) Attributes() *attributes.AttributeSet { return e.attrs }
func (e *demoEntity) OwnedTags() tags.Container             { return e.owned }
func (e *demoEntity) ModifierTags() tags.Container           { return e.modifier }
