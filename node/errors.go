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

package node

import (
	"errors"
	"fmt"
)

var (
	// ErrWrongType is returned when a node is not of the expected kind.
	ErrWrongType = errors.New("grpctraits: unexpected node type")
	// ErrMissingMember is returned when a required object member is absent.
	ErrMissingMember = errors.New("grpctraits: missing required member")
	// ErrNotInteger is returned when a number has a fractional part or does
	// not fit the requested integer range.
	ErrNotInteger = errors.New("grpctraits: number is not a valid integer")
	// ErrSyntax is returned when a document cannot be parsed at all.
	ErrSyntax = errors.New("grpctraits: malformed document")
)

// ExpectationError reports a node that does not have the shape a decoder
// expected. It carries the location of the offending node and wraps one of
// the sentinel errors of this package (or of the caller's domain).
type ExpectationError struct {
	Location SourceLocation
	Message  string
	Err      error
}

// Error implements the built-in error interface.
//
// The format is:
//
//	<message> [<location>]
func (e *ExpectationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s [%s]", e.Message, e.Location)
}

// Unwrap returns the sentinel cause, enabling errors.Is chains.
func (e *ExpectationError) Unwrap() error { return e.Err }

// Errorf builds an ExpectationError attributed to n.
func Errorf(n Node, sentinel error, format string, args ...any) *ExpectationError {
	loc := NoLocation
	if n != nil {
		loc = n.Location()
	}
	return &ExpectationError{Location: loc, Message: fmt.Sprintf(format, args...), Err: sentinel}
}

// ExpectObject returns n as an object or an ErrWrongType failure.
func ExpectObject(n Node) (*Object, error) {
	if o, ok := n.(*Object); ok {
		return o, nil
	}
	return nil, wrongType(n, ObjectKind)
}

// ExpectString returns n as a string or an ErrWrongType failure.
func ExpectString(n Node) (*String, error) {
	if s, ok := n.(*String); ok {
		return s, nil
	}
	return nil, wrongType(n, StringKind)
}

// ExpectNumber returns n as a number or an ErrWrongType failure.
func ExpectNumber(n Node) (*Number, error) {
	if num, ok := n.(*Number); ok {
		return num, nil
	}
	return nil, wrongType(n, NumberKind)
}

// ExpectInt32 returns the integral value of a number node. Fractional values
// and values outside the int32 range fail with ErrNotInteger.
func ExpectInt32(n Node) (int32, error) {
	num, err := ExpectNumber(n)
	if err != nil {
		return 0, err
	}
	v, exact := num.Int64()
	if !exact {
		return 0, Errorf(n, ErrNotInteger, "expected an integer, found %s", num)
	}
	if v < -1<<31 || v > 1<<31-1 {
		return 0, Errorf(n, ErrNotInteger, "integer %d is out of the 32-bit range", v)
	}
	return int32(v), nil
}

// ExpectMember returns the member stored under key or an ErrMissingMember
// failure attributed to the object.
func (o *Object) ExpectMember(key string) (Node, error) {
	if v, ok := o.Member(key); ok {
		return v, nil
	}
	return nil, Errorf(o, ErrMissingMember, "missing required member %q", key)
}

// StringMember returns the string stored under key. The boolean result is
// false when the member is absent; a present member of another kind fails
// with ErrWrongType.
func (o *Object) StringMember(key string) (string, bool, error) {
	v, ok := o.Member(key)
	if !ok {
		return "", false, nil
	}
	s, err := ExpectString(v)
	if err != nil {
		return "", false, Errorf(v, ErrWrongType, "member %q: expected string, found %s", key, v.Kind())
	}
	return s.Value(), true, nil
}

// ObjectMember returns the object stored under key, with the same absent /
// wrong-type rules as StringMember.
func (o *Object) ObjectMember(key string) (*Object, bool, error) {
	v, ok := o.Member(key)
	if !ok {
		return nil, false, nil
	}
	obj, err := ExpectObject(v)
	if err != nil {
		return nil, false, Errorf(v, ErrWrongType, "member %q: expected object, found %s", key, v.Kind())
	}
	return obj, true, nil
}

func wrongType(n Node, want Kind) error {
	if n == nil {
		return Errorf(nil, ErrWrongType, "expected %s, found nothing", want)
	}
	return Errorf(n, ErrWrongType, "expected %s, found %s", want, n.Kind())
}
