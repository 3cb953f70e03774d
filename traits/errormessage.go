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
	"dirpx.dev/grpctraits/model"
	"dirpx.dev/grpctraits/node"
)

// ErrorMessageTraitID names the grpcErrorMessage trait.
var ErrorMessageTraitID = model.MustParseShapeID("alloy.proto#grpcErrorMessage")

// ErrorMessageTrait marks the member whose value is the runtime error
// message. It has no payload.
type ErrorMessageTrait struct {
	loc node.SourceLocation
}

// NewErrorMessageTrait returns a marker attributed to loc.
func NewErrorMessageTrait(loc node.SourceLocation) *ErrorMessageTrait {
	return &ErrorMessageTrait{loc: loc}
}

// TraitID implements model.Trait.
func (t *ErrorMessageTrait) TraitID() model.ShapeID { return ErrorMessageTraitID }

// SourceLocation implements model.Trait.
func (t *ErrorMessageTrait) SourceLocation() node.SourceLocation { return t.loc }

// ToNode implements model.Trait; it always returns an empty object.
func (t *ErrorMessageTrait) ToNode() node.Node { return node.NewObject(t.loc) }

// DecodeErrorMessageTrait accepts any object value. Members are ignored.
func DecodeErrorMessageTrait(n node.Node) (*ErrorMessageTrait, error) {
	if _, err := node.ExpectObject(n); err != nil {
		return nil, err
	}
	return NewErrorMessageTrait(n.Location()), nil
}
