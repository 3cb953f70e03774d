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

package validation

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"dirpx.dev/grpctraits/model"
	"dirpx.dev/grpctraits/node"
	"dirpx.dev/grpctraits/status"
	"dirpx.dev/grpctraits/traits"
)

var (
	stringID = model.MustParseShapeID("smithy.api#String")
	e1       = model.MustParseShapeID("example#E1")
	e2       = model.MustParseShapeID("example#E2")
)

func marker() model.ShapeOption {
	return model.WithTraits(traits.NewErrorMessageTrait(node.NoLocation))
}

func grpcError(code status.Code) model.ShapeOption {
	return model.WithTraits(traits.NewErrorTrait(code))
}

func build(t *testing.T, shapes ...*model.Shape) *model.Model {
	t.Helper()
	m, err := model.NewBuilder().AddShapes(shapes...).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return m
}

// ignoreMessage compares events on everything but their free-text message.
var ignoreMessage = cmpopts.IgnoreFields(Event{}, "Message", "Location")

func TestErrorCodeValidator(t *testing.T) {
	tests := []struct {
		name string
		code status.Code
		want []Event
	}{
		{"internal", 13, nil},
		{"ok", 0, nil},
		{"unauthenticated", 16, nil},
		{"vendor 42", 42, []Event{{ID: NonStandardErrorCode, Severity: Warning, Shape: e1}}},
		{"negative", -1, []Event{{ID: NonStandardErrorCode, Severity: Warning, Shape: e1}}},
		{"seventeen", 17, []Event{{ID: NonStandardErrorCode, Severity: Warning, Shape: e1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := build(t, model.NewShape(e1, model.Structure, grpcError(tt.code)))
			got := ErrorCodeValidator{}.Validate(m)
			if diff := cmp.Diff(tt.want, got, ignoreMessage, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("Validate() mismatch (-want +got):\n%s", diff)
			}
			for _, e := range got {
				if !strings.Contains(e.Message, "UNKNOWN") {
					t.Fatalf("message must mention coercion to UNKNOWN: %q", e.Message)
				}
			}
		})
	}
}

func TestErrorCodeValidator_CarriesTraitLocation(t *testing.T) {
	loc := node.SourceLocation{Filename: "m.yaml", Line: 4, Column: 9}
	m := build(t, model.NewShape(e1, model.Structure,
		model.WithTraits(traits.NewErrorTrait(99, traits.WithSourceLocation(loc)))))
	got := ErrorCodeValidator{}.Validate(m)
	if len(got) != 1 || got[0].Location != loc {
		t.Fatalf("Validate() = %v, want one event at %v", got, loc)
	}
}

func TestErrorMessageValidator(t *testing.T) {
	tests := []struct {
		name   string
		shapes []*model.Shape
		want   []Event
	}{
		{
			name:   "no annotated members",
			shapes: []*model.Shape{model.NewShape(e1, model.Structure), model.NewMember(e1, "reason", stringID)},
		},
		{
			name: "one annotated member",
			shapes: []*model.Shape{
				model.NewShape(e1, model.Structure),
				model.NewMember(e1, "reason", stringID, marker()),
				model.NewMember(e1, "detail", stringID),
			},
		},
		{
			name: "two annotated members on one container",
			shapes: []*model.Shape{
				model.NewShape(e1, model.Structure),
				model.NewMember(e1, "reason", stringID, marker()),
				model.NewMember(e1, "detail", stringID, marker()),
			},
			want: []Event{{ID: MultipleErrorMessageMembers, Severity: Error, Shape: e1}},
		},
		{
			name: "three annotated members still one event",
			shapes: []*model.Shape{
				model.NewShape(e1, model.Structure),
				model.NewMember(e1, "a", stringID, marker()),
				model.NewMember(e1, "b", stringID, marker()),
				model.NewMember(e1, "c", stringID, marker()),
			},
			want: []Event{{ID: MultipleErrorMessageMembers, Severity: Error, Shape: e1}},
		},
		{
			name: "two containers with one each",
			shapes: []*model.Shape{
				model.NewShape(e1, model.Structure),
				model.NewShape(e2, model.Structure),
				model.NewMember(e1, "reason", stringID, marker()),
				model.NewMember(e2, "reason", stringID, marker()),
			},
		},
		{
			name: "two offending containers",
			shapes: []*model.Shape{
				model.NewShape(e2, model.Union),
				model.NewShape(e1, model.Structure),
				model.NewMember(e2, "x", stringID, marker()),
				model.NewMember(e2, "y", stringID, marker()),
				model.NewMember(e1, "x", stringID, marker()),
				model.NewMember(e1, "y", stringID, marker()),
			},
			want: []Event{
				{ID: MultipleErrorMessageMembers, Severity: Error, Shape: e1},
				{ID: MultipleErrorMessageMembers, Severity: Error, Shape: e2},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ErrorMessageValidator{}.Validate(build(t, tt.shapes...))
			if diff := cmp.Diff(tt.want, got, ignoreMessage, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("Validate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestErrorMessageValidator_ReferencesContainerNotMembers(t *testing.T) {
	loc := node.SourceLocation{Filename: "m.yaml", Line: 2, Column: 3}
	m := build(t,
		model.NewShape(e1, model.Structure, model.WithLocation(loc)),
		model.NewMember(e1, "reason", stringID, marker()),
		model.NewMember(e1, "detail", stringID, marker()),
	)
	got := ErrorMessageValidator{}.Validate(m)
	if len(got) != 1 {
		t.Fatalf("Validate() = %v, want exactly one event", got)
	}
	if got[0].Shape != e1 || got[0].Shape.IsMember() {
		t.Fatalf("event must reference the container, got %v", got[0].Shape)
	}
	if got[0].Location != loc {
		t.Fatalf("event location = %v, want container location %v", got[0].Location, loc)
	}
	if !strings.Contains(got[0].Message, "detail, reason") {
		t.Fatalf("message must list the members: %q", got[0].Message)
	}
}

func TestEndToEnd_NotFoundScenario(t *testing.T) {
	code := status.MustResolve("NOT_FOUND")
	base := []*model.Shape{
		model.NewShape(e1, model.Structure, grpcError(code)),
		model.NewMember(e1, "reason", stringID, marker()),
	}
	if got := Validate(build(t, base...)); len(got) != 0 {
		t.Fatalf("Validate() = %v, want no events", got)
	}

	withDetail := append(base, model.NewMember(e1, "detail", stringID, marker()))
	got := Validate(build(t, withDetail...))
	want := []Event{{ID: MultipleErrorMessageMembers, Severity: Error, Shape: e1}}
	if diff := cmp.Diff(want, got, ignoreMessage); diff != "" {
		t.Fatalf("Validate() mismatch (-want +got):\n%s", diff)
	}
}

func TestSeverity_Text(t *testing.T) {
	for _, s := range []Severity{Note, Warning, Error} {
		text, err := s.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", s, err)
		}
		var back Severity
		if err := back.UnmarshalText(text); err != nil || back != s {
			t.Fatalf("round trip %v -> %q -> %v (%v)", s, text, back, err)
		}
	}
	if _, err := ParseSeverity("danger"); err == nil {
		t.Fatal("ParseSeverity must reject unknown names")
	}
	if s, err := ParseSeverity("warning"); err != nil || s != Warning {
		t.Fatalf("ParseSeverity(warning) = %v, %v", s, err)
	}
}

func TestMaxSeverityAndFilter(t *testing.T) {
	if _, ok := MaxSeverity(nil); ok {
		t.Fatal("MaxSeverity(nil) must report false")
	}
	events := []Event{{Severity: Warning}, {Severity: Error}, {Severity: Note}}
	if s, _ := MaxSeverity(events); s != Error {
		t.Fatalf("MaxSeverity = %v, want ERROR", s)
	}
	if got := Filter(events, Warning); len(got) != 2 {
		t.Fatalf("Filter(WARNING) = %v", got)
	}
}
