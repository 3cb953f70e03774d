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
	"maps"
	"slices"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// FromValue converts a protobuf Value into a node tree. Every node produced
// is attributed to loc, since structpb carries no positions of its own.
func FromValue(v *structpb.Value, loc SourceLocation) Node {
	if v == nil {
		return NewNull(loc)
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_BoolValue:
		return NewBoolean(k.BoolValue, loc)
	case *structpb.Value_NumberValue:
		return NewFloat(k.NumberValue, loc)
	case *structpb.Value_StringValue:
		return NewString(k.StringValue, loc)
	case *structpb.Value_ListValue:
		vals := k.ListValue.GetValues()
		elems := make([]Node, len(vals))
		for i, e := range vals {
			elems[i] = FromValue(e, loc)
		}
		return NewArray(loc, elems...)
	case *structpb.Value_StructValue:
		return fromStruct(k.StructValue, loc)
	default:
		return NewNull(loc)
	}
}

// fromStruct converts a Struct. Go maps have no order, so members are
// sorted by key to keep the result deterministic.
func fromStruct(s *structpb.Struct, loc SourceLocation) *Object {
	fields := s.GetFields()
	keys := slices.Sorted(maps.Keys(fields))
	members := make([]Member, 0, len(keys))
	for _, k := range keys {
		members = append(members, Member{Key: k, Value: FromValue(fields[k], loc)})
	}
	return NewObject(loc, members...)
}

// ToValue converts a node tree into a protobuf Value.
func ToValue(n Node) *structpb.Value {
	switch x := n.(type) {
	case *Boolean:
		return structpb.NewBoolValue(x.value)
	case *Number:
		return structpb.NewNumberValue(x.Float64())
	case *String:
		return structpb.NewStringValue(x.value)
	case *Array:
		vals := make([]*structpb.Value, len(x.elems))
		for i, e := range x.elems {
			vals[i] = ToValue(e)
		}
		return structpb.NewListValue(&structpb.ListValue{Values: vals})
	case *Object:
		return structpb.NewStructValue(ToStruct(x))
	default:
		return structpb.NewNullValue()
	}
}

// ToStruct converts an object node into a protobuf Struct.
func ToStruct(o *Object) *structpb.Struct {
	fields := make(map[string]*structpb.Value, len(o.members))
	for _, m := range o.members {
		fields[m.Key] = ToValue(m.Value)
	}
	return &structpb.Struct{Fields: fields}
}

// ParseJSON parses a JSON document. All nodes are attributed to filename;
// use ParseYAML when line/column positions are needed (YAML is a superset
// of JSON).
func ParseJSON(filename string, data []byte) (Node, error) {
	var v structpb.Value
	if err := protojson.Unmarshal(data, &v); err != nil {
		return nil, &ExpectationError{
			Location: SourceLocation{Filename: filename},
			Message:  fmt.Sprintf("parse json: %v", err),
			Err:      ErrSyntax,
		}
	}
	return FromValue(&v, SourceLocation{Filename: filename}), nil
}

// MarshalJSON renders a node tree as JSON.
func MarshalJSON(n Node) ([]byte, error) {
	return protojson.Marshal(ToValue(n))
}
