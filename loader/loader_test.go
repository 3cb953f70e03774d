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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"dirpx.dev/grpctraits/model"
	"dirpx.dev/grpctraits/node"
	"dirpx.dev/grpctraits/status"
	"dirpx.dev/grpctraits/traits"
	"dirpx.dev/grpctraits/validation"
)

func TestLoadFiles_Valid(t *testing.T) {
	m, err := LoadFiles([]string{filepath.Join("testdata", "valid.yaml")})
	require.NoError(t, err)
	assert.Equal(t, 5, m.Len())

	nf, ok := m.Shape(model.MustParseShapeID("example.api#NotFoundError"))
	require.True(t, ok)
	assert.Equal(t, model.Structure, nf.Kind())

	et, ok := model.TraitAs[*traits.ErrorTrait](nf, traits.ErrorTraitID)
	require.True(t, ok)
	assert.Equal(t, status.MustResolve("NOT_FOUND"), et.Code())
	msg, ok := et.Message()
	assert.True(t, ok)
	assert.Equal(t, "The requested resource does not exist", msg)
	assert.Equal(t, node.SourceLocation{Filename: filepath.Join("testdata", "valid.yaml"), Line: 6, Column: 9}, et.SourceLocation())

	dyn, ok := model.TraitAs[*traits.Dynamic](nf, model.MustParseShapeID("smithy.api#error"))
	require.True(t, ok, "traits without a provider are kept")
	assert.True(t, node.Equal(node.NewString("client", node.NoLocation), dyn.ToNode()))

	members := m.Members(nf.ID())
	require.Len(t, members, 2)
	assert.Equal(t, "reason", members[0].ID().Member)
	assert.Equal(t, "smithy.api#String", members[0].Target().String())
	assert.True(t, members[0].HasTrait(traits.ErrorMessageTraitID))
	assert.False(t, members[1].HasTrait(traits.ErrorMessageTraitID))

	assert.Empty(t, validation.Validate(m))
}

func TestLoadFiles_JSON(t *testing.T) {
	m, err := LoadFiles([]string{filepath.Join("testdata", "valid.json")})
	require.NoError(t, err)
	s, ok := m.Shape(model.MustParseShapeID("example.api#InternalError"))
	require.True(t, ok)
	et, ok := model.TraitAs[*traits.ErrorTrait](s, traits.ErrorTraitID)
	require.True(t, ok)
	assert.Equal(t, status.Code(13), et.Code())
	assert.Equal(t, filepath.Join("testdata", "valid.json"), et.SourceLocation().Filename)
}

func TestLoadFiles_ValidationFindings(t *testing.T) {
	m, err := LoadFiles([]string{filepath.Join("testdata", "invalid.yaml")})
	require.NoError(t, err, "range and multiplicity problems are not load errors")

	events := validation.Validate(m)
	require.Len(t, events, 2)
	vendor := model.MustParseShapeID("example.api#VendorError")
	assert.Equal(t, validation.MultipleErrorMessageMembers, events[0].ID)
	assert.Equal(t, validation.Error, events[0].Severity)
	assert.Equal(t, vendor, events[0].Shape)
	assert.Equal(t, validation.NonStandardErrorCode, events[1].ID)
	assert.Equal(t, validation.Warning, events[1].Severity)
	assert.Equal(t, vendor, events[1].Shape)
}

func TestLoadFiles_UnknownSymbolIsFatal(t *testing.T) {
	path := filepath.Join("testdata", "bogus_code.yaml")
	_, err := LoadFiles([]string{path})
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrUnknownSymbol)

	var ce *traits.CreateError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "example.api#BrokenError", ce.Target.String())
	assert.Contains(t, err.Error(), `"BOGUS"`)
	assert.Contains(t, err.Error(), path+":6:15")
}

func TestLoadFiles_MultipleDocumentsMerge(t *testing.T) {
	m, err := LoadFiles([]string{
		filepath.Join("testdata", "valid.yaml"),
		filepath.Join("testdata", "valid.json"),
	})
	require.NoError(t, err)
	assert.Equal(t, 7, m.Len())
}

func TestLoadFiles_MissingFile(t *testing.T) {
	_, err := LoadFiles([]string{filepath.Join("testdata", "nope.yaml")})
	require.Error(t, err)
}

func TestAddDocument_Invalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"not an object", "- a\n- b\n"},
		{"no shapes", "other: {}\n"},
		{"shapes not an object", "shapes: []\n"},
		{"bad shape id", "shapes:\n  NoNamespace:\n    type: structure\n"},
		{"member id as shape", "shapes:\n  ns#A$b:\n    type: structure\n"},
		{"missing type", "shapes:\n  ns#A: {}\n"},
		{"unknown type", "shapes:\n  ns#A:\n    type: widget\n"},
		{"member type on shape", "shapes:\n  ns#A:\n    type: member\n"},
		{"bad member name", "shapes:\n  ns#A:\n    type: structure\n    members:\n      bad-name: {}\n"},
		{"bad target", "shapes:\n  ns#A:\n    type: structure\n    members:\n      m:\n        target: nope\n"},
		{"bad trait id", "shapes:\n  ns#A:\n    type: structure\n    traits:\n      nope: {}\n"},
		{"traits not an object", "shapes:\n  ns#A:\n    type: structure\n    traits: 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New().AddDocument("doc.yaml", []byte(tt.src))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidDocument)
		})
	}
}

func TestAddDocument_EmptyDocument(t *testing.T) {
	l := New()
	require.NoError(t, l.AddDocument("empty.yaml", nil))
	m, err := l.Build()
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestAddDocument_TraitDecodeFailures(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"missing code", "shapes:\n  ns#A:\n    type: structure\n    traits:\n      alloy.proto#grpcError: {}\n", node.ErrMissingMember},
		{"marker not object", "shapes:\n  ns#A:\n    type: structure\n    members:\n      m:\n        traits:\n          alloy.proto#grpcErrorMessage: true\n", node.ErrWrongType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New().AddDocument("doc.yaml", []byte(tt.src))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestStrictTraits(t *testing.T) {
	src := "shapes:\n  ns#A:\n    type: structure\n    traits:\n      ns#custom: {}\n"
	require.NoError(t, New().AddDocument("doc.yaml", []byte(src)))
	err := New(WithStrictTraits()).AddDocument("doc.yaml", []byte(src))
	assert.ErrorIs(t, err, traits.ErrUnknownTrait)
}

func TestBuild_DuplicateAcrossDocuments(t *testing.T) {
	l := New()
	src := []byte("shapes:\n  ns#A:\n    type: structure\n")
	require.NoError(t, l.AddDocument("a.yaml", src))
	require.NoError(t, l.AddDocument("b.yaml", src))
	_, err := l.Build()
	assert.ErrorIs(t, err, model.ErrDuplicateShape)
}

func TestLoader_Logs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	_, err := LoadFiles([]string{filepath.Join("testdata", "valid.yaml")}, WithLogger(zap.New(core)))
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("model document loaded").Len())
	assert.Equal(t, 1, logs.FilterMessage("keeping trait without provider").Len())
	assert.Equal(t, 1, logs.FilterMessage("model built").Len())
}
