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

	"dirpx.dev/grpctraits/model"
	"dirpx.dev/grpctraits/node"
	"dirpx.dev/grpctraits/status"
)

// ErrorTraitID names the grpcError trait.
var ErrorTraitID = model.MustParseShapeID("alloy.proto#grpcError")

// Member names of the grpcError wire form.
const (
	CodeMember    = "code"
	MessageMember = "message"
)

// ErrorTrait carries the gRPC status code (and optional message) of an
// error shape.
//
// Any int32 code is accepted; codes outside the standard range are reported
// by validation, not rejected here. ErrorTrait is immutable: the With*
// methods return copies.
type ErrorTrait struct {
	code       status.Code
	message    string
	hasMessage bool
	loc        node.SourceLocation
}

// ErrorTraitOption configures an ErrorTrait on construction.
type ErrorTraitOption func(*ErrorTrait)

// WithMessage sets the message on construction.
func WithMessage(msg string) ErrorTraitOption {
	return func(t *ErrorTrait) {
		t.message = msg
		t.hasMessage = true
	}
}

// WithSourceLocation sets the source location on construction.
func WithSourceLocation(loc node.SourceLocation) ErrorTraitOption {
	return func(t *ErrorTrait) { t.loc = loc }
}

// NewErrorTrait returns a trait with the given code.
func NewErrorTrait(code status.Code, opts ...ErrorTraitOption) *ErrorTrait {
	t := &ErrorTrait{code: code}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// TraitID implements model.Trait.
func (t *ErrorTrait) TraitID() model.ShapeID { return ErrorTraitID }

// SourceLocation implements model.Trait.
func (t *ErrorTrait) SourceLocation() node.SourceLocation { return t.loc }

// Code returns the status code.
func (t *ErrorTrait) Code() status.Code { return t.code }

// Message returns the message and whether one is set.
func (t *ErrorTrait) Message() (string, bool) { return t.message, t.hasMessage }

// WithMessage returns a copy of t with the message set.
func (t *ErrorTrait) WithMessage(msg string) *ErrorTrait {
	cp := *t
	cp.message = msg
	cp.hasMessage = true
	return &cp
}

// WithoutMessage returns a copy of t with no message.
func (t *ErrorTrait) WithoutMessage() *ErrorTrait {
	cp := *t
	cp.message = ""
	cp.hasMessage = false
	return &cp
}

// Equal reports whether t and o carry the same code and message. Source
// locations are not compared.
func (t *ErrorTrait) Equal(o *ErrorTrait) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.code == o.code && t.hasMessage == o.hasMessage && t.message == o.message
}

// ToNode implements model.Trait. The code is always written as a number,
// so symbolic spellings do not survive a decode/encode cycle.
func (t *ErrorTrait) ToNode() node.Node {
	members := []node.Member{
		{Key: CodeMember, Value: node.NewInt(int64(t.code), t.loc)},
	}
	if t.hasMessage {
		members = append(members, node.Member{Key: MessageMember, Value: node.NewString(t.message, t.loc)})
	}
	return node.NewObject(t.loc, members...)
}

// EncodeErrorTrait is ToNode as a function, for symmetry with
// DecodeErrorTrait.
func EncodeErrorTrait(t *ErrorTrait) node.Node { return t.ToNode() }

// DecodeErrorTrait builds an ErrorTrait from its structured-value form:
//
//	{"code": 13}
//	{"code": "INTERNAL", "message": "something broke"}
//
// The code may be an integer in the int32 range (used verbatim) or one of
// the 17 standard symbol names. Fractional numbers and integers outside
// [-2147483648, 2147483647] fail with node.ErrNotInteger. Unrecognised
// members are ignored.
func DecodeErrorTrait(n node.Node) (*ErrorTrait, error) {
	obj, err := node.ExpectObject(n)
	if err != nil {
		return nil, err
	}
	codeNode, err := obj.ExpectMember(CodeMember)
	if err != nil {
		return nil, err
	}
	code, err := decodeCode(codeNode)
	if err != nil {
		return nil, err
	}
	opts := []ErrorTraitOption{WithSourceLocation(n.Location())}
	msg, ok, err := obj.StringMember(MessageMember)
	if err != nil {
		return nil, err
	}
	if ok {
		opts = append(opts, WithMessage(msg))
	}
	return NewErrorTrait(code, opts...), nil
}

func decodeCode(n node.Node) (status.Code, error) {
	switch v := n.(type) {
	case *node.Number:
		i, err := node.ExpectInt32(v)
		if err != nil {
			return 0, node.Errorf(n, err, "member %q: %s", CodeMember, unwrapMessage(err))
		}
		return status.Code(i), nil
	case *node.String:
		c, err := status.Resolve(v.Value())
		if err != nil {
			return 0, node.Errorf(n, err, "member %q: unknown gRPC status code %q", CodeMember, v.Value())
		}
		return c, nil
	default:
		return 0, node.Errorf(n, node.ErrWrongType,
			"member %q: expected integer or status code name, found %s", CodeMember, n.Kind())
	}
}

func unwrapMessage(err error) string {
	var ee *node.ExpectationError
	if errors.As(err, &ee) {
		return ee.Message
	}
	return err.Error()
}
