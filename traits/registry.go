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

package traits

import (
	"errors"
	"fmt"
	"slices"

	"dirpx.dev/grpctraits/model"
	"dirpx.dev/grpctraits/node"
)

var (
	// ErrUnknownTrait is returned by Registry.Create when no provider is
	// registered for the requested trait id.
	ErrUnknownTrait = errors.New("grpctraits: no provider for trait")
)

// ProviderFunc decodes the structured value of one trait applied to target.
type ProviderFunc func(target model.ShapeID, value node.Node) (model.Trait, error)

// CreateError reports a trait value that could not be decoded.
type CreateError struct {
	// Trait is the id of the trait being created.
	Trait model.ShapeID
	// Target is the shape the trait was applied to.
	Target model.ShapeID
	// Err is the decoding failure.
	Err error
}

// Error implements the built-in error interface.
func (e *CreateError) Error() string {
	return fmt.Sprintf("create trait %s on %s: %v", e.Trait, e.Target, e.Err)
}

// Unwrap returns the decoding failure.
func (e *CreateError) Unwrap() error { return e.Err }

// Registry maps trait ids to providers. A Registry is immutable once
// returned by NewRegistry and safe for concurrent use.
type Registry struct {
	providers map[model.ShapeID]ProviderFunc
}

// RegistryOption configures a Registry.
type RegistryOption func(map[model.ShapeID]ProviderFunc)

// WithProvider registers (or replaces) the provider for id.
func WithProvider(id model.ShapeID, fn ProviderFunc) RegistryOption {
	return func(m map[model.ShapeID]ProviderFunc) { m[id] = fn }
}

// WithoutDefaults drops the built-in grpcError / grpcErrorMessage providers.
func WithoutDefaults() RegistryOption {
	return func(m map[model.ShapeID]ProviderFunc) {
		delete(m, ErrorTraitID)
		delete(m, ErrorMessageTraitID)
	}
}

// NewRegistry returns a registry holding the providers of this package,
// adjusted by opts in order.
func NewRegistry(opts ...RegistryOption) *Registry {
	m := map[model.ShapeID]ProviderFunc{
		ErrorTraitID:        provideErrorTrait,
		ErrorMessageTraitID: provideErrorMessageTrait,
	}
	for _, opt := range opts {
		opt(m)
	}
	return &Registry{providers: m}
}

// Provider returns the provider registered for id.
func (r *Registry) Provider(id model.ShapeID) (ProviderFunc, bool) {
	fn, ok := r.providers[id]
	return fn, ok
}

// IDs returns the registered trait ids in sorted order.
func (r *Registry) IDs() []model.ShapeID {
	ids := make([]model.ShapeID, 0, len(r.providers))
	for id := range r.providers {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, model.ShapeID.Compare)
	return ids
}

// Create decodes value as trait id applied to target. Decoding failures are
// returned as *CreateError.
func (r *Registry) Create(id, target model.ShapeID, value node.Node) (model.Trait, error) {
	fn, ok := r.providers[id]
	if !ok {
		return nil, &CreateError{Trait: id, Target: target, Err: ErrUnknownTrait}
	}
	t, err := fn(target, value)
	if err != nil {
		return nil, &CreateError{Trait: id, Target: target, Err: err}
	}
	return t, nil
}

func provideErrorTrait(_ model.ShapeID, value node.Node) (model.Trait, error) {
	t, err := DecodeErrorTrait(value)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func provideErrorMessageTrait(_ model.ShapeID, value node.Node) (model.Trait, error) {
	t, err := DecodeErrorMessageTrait(value)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Dynamic is a trait with no registered provider. It keeps the raw value so
// the model can be encoded again unchanged.
type Dynamic struct {
	id    model.ShapeID
	value node.Node
}

// NewDynamic wraps value as trait id.
func NewDynamic(id model.ShapeID, value node.Node) *Dynamic {
	if value == nil {
		value = node.NewNull(node.NoLocation)
	}
	return &Dynamic{id: id, value: value}
}

// TraitID implements model.Trait.
func (d *Dynamic) TraitID() model.ShapeID { return d.id }

// SourceLocation implements model.Trait.
func (d *Dynamic) SourceLocation() node.SourceLocation { return d.value.Location() }

// ToNode implements model.Trait.
func (d *Dynamic) ToNode() node.Node { return d.value }
