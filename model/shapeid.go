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
	"regexp"
	"strings"
)

// ShapeID identifies a shape: "namespace#Name" for top-level shapes and
// "namespace#Name$member" for members.
type ShapeID struct {
	Namespace string
	Name      string
	Member    string
}

const (
	// identFmt is a single identifier: a letter or underscore followed by
	// letters, digits or underscores.
	identFmt = `[A-Za-z_][A-Za-z0-9_]*`

	// shapeIDFmt matches a full shape id. The namespace is one or more
	// dot-separated identifiers.
	shapeIDFmt = `^(` + identFmt + `(?:\.` + identFmt + `)*)#(` + identFmt + `)(?:\$(` + identFmt + `))?$`
)

var shapeIDRe = regexp.MustCompile(shapeIDFmt)

var (
	// ErrInvalidShapeID is returned when a string is not a valid shape id.
	ErrInvalidShapeID = errors.New("grpctraits: invalid shape id")
)

// ParseShapeID parses "namespace#Name" or "namespace#Name$member".
func ParseShapeID(s string) (ShapeID, error) {
	m := shapeIDRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return ShapeID{}, ErrInvalidShapeID
	}
	return ShapeID{Namespace: m[1], Name: m[2], Member: m[3]}, nil
}

// MustParseShapeID is the panic-on-error variant of ParseShapeID. It is
// meant for package-level ids.
func MustParseShapeID(s string) ShapeID {
	id, err := ParseShapeID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// IsZero reports whether id is the zero value.
func (id ShapeID) IsZero() bool { return id == ShapeID{} }

// IsMember reports whether id refers to a member.
func (id ShapeID) IsMember() bool { return id.Member != "" }

// Container returns the id without its member part.
func (id ShapeID) Container() ShapeID {
	return ShapeID{Namespace: id.Namespace, Name: id.Name}
}

// WithMember returns the id of the named member of id's container.
func (id ShapeID) WithMember(member string) ShapeID {
	return ShapeID{Namespace: id.Namespace, Name: id.Name, Member: member}
}

// String returns the canonical textual form.
func (id ShapeID) String() string {
	if id.IsZero() {
		return ""
	}
	s := id.Namespace + "#" + id.Name
	if id.Member != "" {
		s += "$" + id.Member
	}
	return s
}

// Compare orders ids by namespace, name and member.
func (id ShapeID) Compare(other ShapeID) int {
	if c := strings.Compare(id.Namespace, other.Namespace); c != 0 {
		return c
	}
	if c := strings.Compare(id.Name, other.Name); c != 0 {
		return c
	}
	return strings.Compare(id.Member, other.Member)
}

// MarshalText implements encoding.TextMarshaler.
func (id ShapeID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ShapeID) UnmarshalText(text []byte) error {
	parsed, err := ParseShapeID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
