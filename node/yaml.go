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

	"gopkg.in/yaml.v3"
)

// ParseYAML parses a YAML (or JSON) document, recording the line and column
// of every node.
func ParseYAML(filename string, data []byte) (Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ExpectationError{
			Location: SourceLocation{Filename: filename},
			Message:  fmt.Sprintf("parse yaml: %v", err),
			Err:      ErrSyntax,
		}
	}
	// An empty document decodes to a zero node.
	if doc.Kind == 0 {
		return NewNull(SourceLocation{Filename: filename}), nil
	}
	return FromYAML(&doc, filename)
}

// FromYAML converts a decoded yaml.Node into a node tree.
func FromYAML(y *yaml.Node, filename string) (Node, error) {
	loc := SourceLocation{Filename: filename, Line: y.Line, Column: y.Column}
	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return NewNull(loc), nil
		}
		return FromYAML(y.Content[0], filename)
	case yaml.AliasNode:
		if y.Alias == nil {
			return nil, &ExpectationError{Location: loc, Message: "dangling yaml alias", Err: ErrSyntax}
		}
		return FromYAML(y.Alias, filename)
	case yaml.SequenceNode:
		elems := make([]Node, 0, len(y.Content))
		for _, c := range y.Content {
			e, err := FromYAML(c, filename)
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
		return NewArray(loc, elems...), nil
	case yaml.MappingNode:
		return mappingFromYAML(y, filename, loc)
	case yaml.ScalarNode:
		return scalarFromYAML(y, loc)
	default:
		return nil, &ExpectationError{Location: loc, Message: fmt.Sprintf("unsupported yaml node kind %d", y.Kind), Err: ErrSyntax}
	}
}

func mappingFromYAML(y *yaml.Node, filename string, loc SourceLocation) (Node, error) {
	members := make([]Member, 0, len(y.Content)/2)
	seen := make(map[string]struct{}, len(y.Content)/2)
	for i := 0; i+1 < len(y.Content); i += 2 {
		k, v := y.Content[i], y.Content[i+1]
		keyLoc := SourceLocation{Filename: filename, Line: k.Line, Column: k.Column}
		if k.Kind != yaml.ScalarNode {
			return nil, &ExpectationError{Location: keyLoc, Message: "mapping keys must be scalars", Err: ErrSyntax}
		}
		if _, dup := seen[k.Value]; dup {
			return nil, &ExpectationError{Location: keyLoc, Message: fmt.Sprintf("duplicate key %q", k.Value), Err: ErrSyntax}
		}
		seen[k.Value] = struct{}{}
		val, err := FromYAML(v, filename)
		if err != nil {
			return nil, err
		}
		members = append(members, Member{Key: k.Value, Value: val})
	}
	return NewObject(loc, members...), nil
}

func scalarFromYAML(y *yaml.Node, loc SourceLocation) (Node, error) {
	switch y.ShortTag() {
	case "!!null":
		return NewNull(loc), nil
	case "!!bool":
		var b bool
		if err := y.Decode(&b); err != nil {
			return nil, &ExpectationError{Location: loc, Message: err.Error(), Err: ErrSyntax}
		}
		return NewBoolean(b, loc), nil
	case "!!int":
		var i int64
		if err := y.Decode(&i); err == nil {
			return NewInt(i, loc), nil
		}
		// Integers beyond int64 degrade to float64.
		fallthrough
	case "!!float":
		var f float64
		if err := y.Decode(&f); err != nil {
			return nil, &ExpectationError{Location: loc, Message: err.Error(), Err: ErrSyntax}
		}
		return NewFloat(f, loc), nil
	default:
		return NewString(y.Value, loc), nil
	}
}
