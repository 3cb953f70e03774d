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
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrDuplicateShape is returned by Build when two shapes share an id.
	ErrDuplicateShape = errors.New("grpctraits: duplicate shape")
	// ErrMissingContainer is returned by Build when a member's container is
	// not part of the model.
	ErrMissingContainer = errors.New("grpctraits: member container not found")
	// ErrInvalidShape is returned by Build for shapes with an unknown kind or
	// with a kind that disagrees with their id.
	ErrInvalidShape = errors.New("grpctraits: invalid shape")
)

// Model is an immutable set of shapes.
type Model struct {
	shapes map[ShapeID]*Shape
	// sorted holds all shapes ordered by id.
	sorted []*Shape
}

// Builder assembles a Model. It is not safe for concurrent use.
type Builder struct {
	shapes []*Shape
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddShapes queues shapes for the model.
func (b *Builder) AddShapes(shapes ...*Shape) *Builder {
	b.shapes = append(b.shapes, shapes...)
	return b
}

// AddModel queues every shape of m.
func (b *Builder) AddModel(m *Model) *Builder {
	for _, s := range m.sorted {
		// Members are recomputed by Build.
		cp := s.clone()
		cp.members = nil
		b.shapes = append(b.shapes, cp)
	}
	return b
}

// Build freezes the queued shapes into a Model.
func (b *Builder) Build() (*Model, error) {
	m := &Model{shapes: make(map[ShapeID]*Shape, len(b.shapes))}
	for _, s := range b.shapes {
		if _, dup := m.shapes[s.id]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateShape, s.id)
		}
		if !s.kind.IsValid() || s.id.IsMember() != (s.kind == Member) {
			return nil, fmt.Errorf("%w: %s has kind %q", ErrInvalidShape, s.id, s.kind)
		}
		cp := s.clone()
		cp.members = nil
		m.shapes[s.id] = cp
	}
	// Members are linked in the order they were added.
	for _, s := range b.shapes {
		if !s.id.IsMember() {
			continue
		}
		c, ok := m.shapes[s.id.Container()]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingContainer, s.id)
		}
		c.members = append(c.members, s.id)
	}
	m.sorted = make([]*Shape, 0, len(m.shapes))
	for _, s := range m.shapes {
		m.sorted = append(m.sorted, s)
	}
	slices.SortFunc(m.sorted, func(a, b *Shape) int { return a.id.Compare(b.id) })
	return m, nil
}

// Len returns the number of shapes.
func (m *Model) Len() int { return len(m.sorted) }

// Shape returns the shape with the given id.
func (m *Model) Shape(id ShapeID) (*Shape, bool) {
	s, ok := m.shapes[id]
	return s, ok
}

// Shapes returns every shape sorted by id.
func (m *Model) Shapes() []*Shape {
	return slices.Clone(m.sorted)
}

// ShapesWithTrait returns the shapes carrying the given trait, sorted by id.
func (m *Model) ShapesWithTrait(traitID ShapeID) []*Shape {
	var out []*Shape
	for _, s := range m.sorted {
		if s.HasTrait(traitID) {
			out = append(out, s)
		}
	}
	return out
}

// MemberShapesWithTrait returns the member shapes carrying the given trait,
// sorted by id.
func (m *Model) MemberShapesWithTrait(traitID ShapeID) []*Shape {
	var out []*Shape
	for _, s := range m.sorted {
		if s.IsMember() && s.HasTrait(traitID) {
			out = append(out, s)
		}
	}
	return out
}

// Members returns the member shapes of container in definition order.
func (m *Model) Members(container ShapeID) []*Shape {
	c, ok := m.shapes[container]
	if !ok {
		return nil
	}
	out := make([]*Shape, 0, len(c.members))
	for _, id := range c.members {
		out = append(out, m.shapes[id])
	}
	return out
}
