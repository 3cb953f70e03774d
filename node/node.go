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
	"fmt"
	"math"
	"strconv"
)

// Kind identifies the type of a Node.
type Kind int

const (
	NullKind Kind = iota
	BooleanKind
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
)

var kindNames = [...]string{
	NullKind:    "null",
	BooleanKind: "boolean",
	NumberKind:  "number",
	StringKind:  "string",
	ArrayKind:   "array",
	ObjectKind:  "object",
}

// String returns the lower-case name of the kind, e.g. "object".
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// SourceLocation is the position a node was read from.
//
// Line and Column are 1-based; zero means "unknown". The zero value is
// NoLocation.
type SourceLocation struct {
	Filename string `json:"filename,omitempty"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
}

// NoLocation is used for nodes that were not read from a source.
var NoLocation = SourceLocation{}

// IsZero reports whether l carries no information.
func (l SourceLocation) IsZero() bool {
	return l == NoLocation
}

// String formats the location as "file:line:col", omitting unknown parts.
func (l SourceLocation) String() string {
	switch {
	case l.IsZero():
		return "N/A"
	case l.Line == 0:
		return l.Filename
	case l.Column == 0:
		return fmt.Sprintf("%s:%d", l.Filename, l.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", l.Filename, l.Line, l.Column)
	}
}

// Node is one value of a structured-value tree.
type Node interface {
	Kind() Kind
	Location() SourceLocation
}

type base struct {
	loc SourceLocation
}

func (b base) Location() SourceLocation { return b.loc }

// Null is the null value.
type Null struct{ base }

// Boolean is a true/false value.
type Boolean struct {
	base
	value bool
}

// String is a string value.
type String struct {
	base
	value string
}

// Number is a numeric value. Integers are kept exactly; other values are
// stored as float64.
type Number struct {
	base
	i       int64
	f       float64
	isFloat bool
}

// Array is an ordered list of nodes.
type Array struct {
	base
	elems []Node
}

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value Node
}

// Object is a string-keyed map of nodes that preserves source order.
type Object struct {
	base
	members []Member
	index   map[string]int
}

func (*Null) Kind() Kind    { return NullKind }
func (*Boolean) Kind() Kind { return BooleanKind }
func (*String) Kind() Kind  { return StringKind }
func (*Number) Kind() Kind  { return NumberKind }
func (*Array) Kind() Kind   { return ArrayKind }
func (*Object) Kind() Kind  { return ObjectKind }

// NewNull returns a null node.
func NewNull(loc SourceLocation) *Null { return &Null{base{loc}} }

// NewBoolean returns a boolean node.
func NewBoolean(v bool, loc SourceLocation) *Boolean {
	return &Boolean{base: base{loc}, value: v}
}

// NewString returns a string node.
func NewString(v string, loc SourceLocation) *String {
	return &String{base: base{loc}, value: v}
}

// NewInt returns an integral number node.
func NewInt(v int64, loc SourceLocation) *Number {
	return &Number{base: base{loc}, i: v}
}

// NewFloat returns a number node. Values that are integral and fit in an
// int64 are stored as integers.
func NewFloat(v float64, loc SourceLocation) *Number {
	if v == math.Trunc(v) && v >= math.MinInt64 && v < math.MaxInt64 {
		return &Number{base: base{loc}, i: int64(v)}
	}
	return &Number{base: base{loc}, f: v, isFloat: true}
}

// NewArray returns an array node holding a copy of elems.
func NewArray(loc SourceLocation, elems ...Node) *Array {
	cp := make([]Node, len(elems))
	copy(cp, elems)
	return &Array{base: base{loc}, elems: cp}
}

// NewObject returns an object node with the given members.
//
// A later member with the same key replaces the value of an earlier one but
// keeps its position.
func NewObject(loc SourceLocation, members ...Member) *Object {
	o := &Object{
		base:    base{loc},
		members: make([]Member, 0, len(members)),
		index:   make(map[string]int, len(members)),
	}
	for _, m := range members {
		if i, ok := o.index[m.Key]; ok {
			o.members[i].Value = m.Value
			continue
		}
		o.index[m.Key] = len(o.members)
		o.members = append(o.members, m)
	}
	return o
}

// Value returns the boolean value.
func (b *Boolean) Value() bool { return b.value }

// Value returns the string value.
func (s *String) Value() string { return s.value }

// IsInteger reports whether the number has no fractional part.
func (n *Number) IsInteger() bool { return !n.isFloat }

// Int64 returns the value as an integer and whether that is exact.
func (n *Number) Int64() (int64, bool) {
	if n.isFloat {
		return int64(n.f), false
	}
	return n.i, true
}

// Float64 returns the value as a float64.
func (n *Number) Float64() float64 {
	if n.isFloat {
		return n.f
	}
	return float64(n.i)
}

// String formats the number the way it would be written in a document.
func (n *Number) String() string {
	if n.isFloat {
		return strconv.FormatFloat(n.f, 'g', -1, 64)
	}
	return strconv.FormatInt(n.i, 10)
}

// Len returns the number of elements.
func (a *Array) Len() int { return len(a.elems) }

// Elements returns a copy of the elements.
func (a *Array) Elements() []Node {
	cp := make([]Node, len(a.elems))
	copy(cp, a.elems)
	return cp
}

// Len returns the number of members.
func (o *Object) Len() int { return len(o.members) }

// Member returns the value stored under key.
func (o *Object) Member(key string) (Node, bool) {
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.members[i].Value, true
}

// Members returns a copy of the members in source order.
func (o *Object) Members() []Member {
	cp := make([]Member, len(o.members))
	copy(cp, o.members)
	return cp
}

// Keys returns the member keys in source order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.members))
	for i, m := range o.members {
		keys[i] = m.Key
	}
	return keys
}

// With returns a copy of o with key set to v.
func (o *Object) With(key string, v Node) *Object {
	ms := o.Members()
	ms = append(ms, Member{Key: key, Value: v})
	return NewObject(o.loc, ms...)
}

// Equal reports whether a and b hold the same values. Source locations are
// ignored.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case *Null:
		return true
	case *Boolean:
		return x.value == b.(*Boolean).value
	case *String:
		return x.value == b.(*String).value
	case *Number:
		y := b.(*Number)
		if x.isFloat != y.isFloat {
			return false
		}
		if x.isFloat {
			return x.f == y.f
		}
		return x.i == y.i
	case *Array:
		y := b.(*Array)
		if len(x.elems) != len(y.elems) {
			return false
		}
		for i := range x.elems {
			if !Equal(x.elems[i], y.elems[i]) {
				return false
			}
		}
		return true
	case *Object:
		y := b.(*Object)
		if len(x.members) != len(y.members) {
			return false
		}
		for _, m := range x.members {
			v, ok := y.Member(m.Key)
			if !ok || !Equal(m.Value, v) {
				return false
			}
		}
		return true
	}
	return false
}
