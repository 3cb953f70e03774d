/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package model

import (
	"slices"

	"dirpx.dev/grpctraits/node"
)

// Kind is the type of a shape.
type Kind string

const (
	Structure Kind = "structure"
	Union     Kind = "union"
	Member    Kind = "member"
	Operation Kind = "operation"
	Service   Kind = "service"
	Resource  Kind = "resource"
	String    Kind = "string"
	Integer   Kind = "integer"
	Long      Kind = "long"
	Boolean   Kind = "boolean"
	Timestamp Kind = "timestamp"
	Blob      Kind = "blob"
	List      Kind = "list"
	Map       Kind = "map"
	Document  Kind = "document"
)

var kinds = []Kind{
	Structure, Union, Member, Operation, Service, Resource, String, Integer,
	Long, Boolean, Timestamp, Blob, List, Map, Document,
}

// IsValid reports whether k is a known shape kind.
func (k Kind) IsValid() bool { return slices.Contains(kinds, k) }

// Trait is a typed annotation attached to a shape. Implementations must be
// immutable.
type Trait interface {
	// TraitID is the shape id naming the trait, e.g. "alloy.proto#grpcError".
	TraitID() ShapeID
	// SourceLocation is where the trait value was read from.
	SourceLocation() node.SourceLocation
	// ToNode encodes the trait back into its structured-value form.
	ToNode() node.Node
}

// Shape is one node of the model. Shapes are immutable; the With* methods
// return modified copies.
type Shape struct {
	id      ShapeID
	kind    Kind
	target  ShapeID
	loc     node.SourceLocation
	traits  map[ShapeID]Trait
	members []ShapeID
}

// ShapeOption configures a shape under construction.
type ShapeOption func(*Shape)

// WithTraits attaches traits. A trait replaces any earlier trait with the
// same id.
func WithTraits(ts ...Trait) ShapeOption {
	return func(s *Shape) {
		for _, t := range ts {
			s.traits[t.TraitID()] = t
		}
	}
}

// WithTarget sets the shape a member points at.
func WithTarget(target ShapeID) ShapeOption {
	return func(s *Shape) { s.target = target }
}

// WithLocation sets the source location of the shape definition.
func WithLocation(loc node.SourceLocation) ShapeOption {
	return func(s *Shape) { s.loc = loc }
}

// NewShape creates a shape. Member shapes are recognised by the member part
// of their id; their kind is always Member.
func NewShape(id ShapeID, kind Kind, opts ...ShapeOption) *Shape {
	s := &Shape{id: id, kind: kind, traits: make(map[ShapeID]Trait)}
	if id.IsMember() {
		s.kind = Member
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewMember is a shortcut for NewShape(container.WithMember(name), Member, ...).
func NewMember(container ShapeID, name string, target ShapeID, opts ...ShapeOption) *Shape {
	return NewShape(container.WithMember(name), Member, append([]ShapeOption{WithTarget(target)}, opts...)...)
}

// ID returns the shape id.
func (s *Shape) ID() ShapeID { return s.id }

// Kind returns the shape kind.
func (s *Shape) Kind() Kind { return s.kind }

// IsMember reports whether the shape is a member.
func (s *Shape) IsMember() bool { return s.kind == Member }

// Container returns the id of the shape that owns a member.
func (s *Shape) Container() (ShapeID, bool) {
	if !s.IsMember() {
		return ShapeID{}, false
	}
	return s.id.Container(), true
}

// Target returns the shape a member points at (zero for non-members).
func (s *Shape) Target() ShapeID { return s.target }

// Location returns where the shape was defined.
func (s *Shape) Location() node.SourceLocation { return s.loc }

// Trait returns the trait with the given id.
func (s *Shape) Trait(id ShapeID) (Trait, bool) {
	t, ok := s.traits[id]
	return t, ok
}

// HasTrait reports whether a trait with the given id is attached.
func (s *Shape) HasTrait(id ShapeID) bool {
	_, ok := s.traits[id]
	return ok
}

// Traits returns the attached traits sorted by trait id.
func (s *Shape) Traits() []Trait {
	out := make([]Trait, 0, len(s.traits))
	for _, t := range s.traits {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b Trait) int { return a.TraitID().Compare(b.TraitID()) })
	return out
}

// Members returns the ids of the shape's members in definition order.
// It is only populated on shapes obtained from a built Model.
func (s *Shape) Members() []ShapeID {
	return slices.Clone(s.members)
}

// WithTrait returns a copy of s with t attached.
func (s *Shape) WithTrait(t Trait) *Shape {
	cp := s.clone()
	cp.traits[t.TraitID()] = t
	return cp
}

// WithoutTrait returns a copy of s with the trait removed.
func (s *Shape) WithoutTrait(id ShapeID) *Shape {
	cp := s.clone()
	delete(cp.traits, id)
	return cp
}

func (s *Shape) clone() *Shape {
	cp := *s
	cp.traits = make(map[ShapeID]Trait, len(s.traits)+1)
	for k, v := range s.traits {
		cp.traits[k] = v
	}
	cp.members = slices.Clone(s.members)
	return &cp
}

// TraitAs returns the trait with the given id if it has type T.
func TraitAs[T Trait](s *Shape, id ShapeID) (T, bool) {
	var zero T
	t, ok := s.Trait(id)
	if !ok {
		return zero, false
	}
	typed, ok := t.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
