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

package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"dirpx.dev/grpctraits/model"
	"dirpx.dev/grpctraits/node"
	"dirpx.dev/grpctraits/traits"
)

// Document member names.
const (
	shapesKey  = "shapes"
	typeKey    = "type"
	traitsKey  = "traits"
	membersKey = "members"
	targetKey  = "target"
)

var (
	// ErrInvalidDocument is returned when a document does not follow the
	// model document layout.
	ErrInvalidDocument = errors.New("grpctraits: invalid model document")
)

// Loader accumulates shapes from documents. It is not safe for concurrent
// use.
type Loader struct {
	registry *traits.Registry
	logger   *zap.Logger
	strict   bool
	builder  *model.Builder
}

// Option configures a Loader.
type Option func(*Loader)

// WithRegistry sets the trait registry. The default is traits.NewRegistry().
func WithRegistry(r *traits.Registry) Option {
	return func(l *Loader) {
		if r != nil {
			l.registry = r
		}
	}
}

// WithLogger sets the logger. The default is a no-op logger.
func WithLogger(lg *zap.Logger) Option {
	return func(l *Loader) {
		if lg != nil {
			l.logger = lg
		}
	}
}

// WithStrictTraits makes traits without a registered provider an error.
func WithStrictTraits() Option {
	return func(l *Loader) { l.strict = true }
}

// New returns an empty Loader.
func New(opts ...Option) *Loader {
	l := &Loader{
		registry: traits.NewRegistry(),
		logger:   zap.NewNop(),
		builder:  model.NewBuilder(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// AddFile reads and adds the document at path.
func (l *Loader) AddFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read model document: %w", err)
	}
	return l.AddDocument(path, data)
}

// AddDocument parses data and queues its shapes. On error nothing from the
// document is kept.
func (l *Loader) AddDocument(filename string, data []byte) error {
	root, err := parse(filename, data)
	if err != nil {
		return err
	}
	shapes, err := l.readDocument(root)
	if err != nil {
		return err
	}
	l.builder.AddShapes(shapes...)
	l.logger.Debug("model document loaded",
		zap.String("file", filename),
		zap.Int("shapes", len(shapes)),
	)
	return nil
}

// Build returns the model made of every document added so far.
func (l *Loader) Build() (*model.Model, error) {
	m, err := l.builder.Build()
	if err != nil {
		return nil, err
	}
	l.logger.Debug("model built", zap.Int("shapes", m.Len()))
	return m, nil
}

// LoadFiles is a shortcut for New(opts...), AddFile for each path, Build.
func LoadFiles(paths []string, opts ...Option) (*model.Model, error) {
	l := New(opts...)
	for _, p := range paths {
		if err := l.AddFile(p); err != nil {
			return nil, err
		}
	}
	return l.Build()
}

func parse(filename string, data []byte) (node.Node, error) {
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		return node.ParseJSON(filename, data)
	}
	return node.ParseYAML(filename, data)
}

func (l *Loader) readDocument(root node.Node) ([]*model.Shape, error) {
	if root.Kind() == node.NullKind {
		return nil, nil
	}
	doc, err := node.ExpectObject(root)
	if err != nil {
		return nil, invalid(err)
	}
	shapesObj, ok, err := doc.ObjectMember(shapesKey)
	if err != nil {
		return nil, invalid(err)
	}
	if !ok {
		return nil, node.Errorf(doc, ErrInvalidDocument, "missing %q", shapesKey)
	}

	var out []*model.Shape
	for _, m := range shapesObj.Members() {
		id, err := model.ParseShapeID(m.Key)
		if err != nil || id.IsMember() {
			return nil, invalid(node.Errorf(m.Value, ErrInvalidDocument, "invalid shape id %q", m.Key))
		}
		shapes, err := l.readShape(id, m.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, shapes...)
	}
	return out, nil
}

// readShape returns the shape followed by its members.
func (l *Loader) readShape(id model.ShapeID, n node.Node) ([]*model.Shape, error) {
	def, err := node.ExpectObject(n)
	if err != nil {
		return nil, invalid(err)
	}
	typeNode, err := def.ExpectMember(typeKey)
	if err != nil {
		return nil, invalid(err)
	}
	typeStr, err := node.ExpectString(typeNode)
	if err != nil {
		return nil, invalid(err)
	}
	kind := model.Kind(typeStr.Value())
	if !kind.IsValid() || kind == model.Member {
		return nil, invalid(node.Errorf(typeNode, ErrInvalidDocument, "shape %s: unknown type %q", id, typeStr.Value()))
	}

	ts, err := l.readTraits(id, def)
	if err != nil {
		return nil, err
	}
	out := []*model.Shape{model.NewShape(id, kind, model.WithLocation(n.Location()), model.WithTraits(ts...))}

	membersObj, ok, err := def.ObjectMember(membersKey)
	if err != nil {
		return nil, invalid(err)
	}
	if !ok {
		return out, nil
	}
	for _, mem := range membersObj.Members() {
		mid := id.WithMember(mem.Key)
		if _, err := model.ParseShapeID(mid.String()); err != nil {
			return nil, invalid(node.Errorf(mem.Value, ErrInvalidDocument, "invalid member name %q", mem.Key))
		}
		s, err := l.readMember(mid, mem.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (l *Loader) readMember(id model.ShapeID, n node.Node) (*model.Shape, error) {
	def, err := node.ExpectObject(n)
	if err != nil {
		return nil, invalid(err)
	}
	opts := []model.ShapeOption{model.WithLocation(n.Location())}
	target, ok, err := def.StringMember(targetKey)
	if err != nil {
		return nil, invalid(err)
	}
	if ok {
		tid, err := model.ParseShapeID(target)
		if err != nil || tid.IsMember() {
			return nil, invalid(node.Errorf(n, ErrInvalidDocument, "member %s: invalid target %q", id, target))
		}
		opts = append(opts, model.WithTarget(tid))
	}
	ts, err := l.readTraits(id, def)
	if err != nil {
		return nil, err
	}
	opts = append(opts, model.WithTraits(ts...))
	return model.NewShape(id, model.Member, opts...), nil
}

func (l *Loader) readTraits(target model.ShapeID, def *node.Object) ([]model.Trait, error) {
	traitsObj, ok, err := def.ObjectMember(traitsKey)
	if err != nil {
		return nil, invalid(err)
	}
	if !ok {
		return nil, nil
	}
	out := make([]model.Trait, 0, traitsObj.Len())
	for _, m := range traitsObj.Members() {
		tid, err := model.ParseShapeID(m.Key)
		if err != nil || tid.IsMember() {
			return nil, invalid(node.Errorf(m.Value, ErrInvalidDocument, "shape %s: invalid trait id %q", target, m.Key))
		}
		t, err := l.registry.Create(tid, target, m.Value)
		if errors.Is(err, traits.ErrUnknownTrait) && !l.strict {
			l.logger.Debug("keeping trait without provider",
				zap.Stringer("trait", tid),
				zap.Stringer("shape", target),
			)
			t, err = traits.NewDynamic(tid, m.Value), nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// invalid tags a structural failure with ErrInvalidDocument while keeping the
// original cause and location.
func invalid(err error) error {
	if errors.Is(err, ErrInvalidDocument) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
}
