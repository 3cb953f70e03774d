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
	"fmt"
	"strings"

	"dirpx.dev/grpctraits/model"
	"dirpx.dev/grpctraits/traits"
)

// Validator inspects a whole model and reports findings. Implementations
// must not mutate the model and must be safe for concurrent use.
type Validator interface {
	Name() string
	Validate(m *model.Model) []Event
}

// ErrorCodeValidator warns about grpcError traits whose code is not one of
// the 17 standard gRPC status codes.
type ErrorCodeValidator struct{}

// Name implements Validator.
func (ErrorCodeValidator) Name() string { return "GrpcErrorTrait" }

// Validate implements Validator.
func (ErrorCodeValidator) Validate(m *model.Model) []Event {
	var events []Event
	for _, s := range m.ShapesWithTrait(traits.ErrorTraitID) {
		t, ok := model.TraitAs[*traits.ErrorTrait](s, traits.ErrorTraitID)
		if !ok || t.Code().IsStandard() {
			continue
		}
		events = append(events, Event{
			ID:       NonStandardErrorCode,
			Severity: Warning,
			Shape:    s.ID(),
			Location: t.SourceLocation(),
			Message: fmt.Sprintf(
				"grpcError code %d is outside the standard gRPC range (0..16); many runtimes coerce unknown codes to UNKNOWN",
				int(t.Code())),
		})
	}
	return events
}

// ErrorMessageValidator reports containers that have more than one member
// marked grpcErrorMessage.
type ErrorMessageValidator struct{}

// Name implements Validator.
func (ErrorMessageValidator) Name() string { return "GrpcErrorMessageTrait" }

// Validate implements Validator.
func (ErrorMessageValidator) Validate(m *model.Model) []Event {
	// Members arrive sorted by id, so containers are visited in id order.
	var order []model.ShapeID
	groups := make(map[model.ShapeID][]*model.Shape)
	for _, s := range m.MemberShapesWithTrait(traits.ErrorMessageTraitID) {
		c, _ := s.Container()
		if _, seen := groups[c]; !seen {
			order = append(order, c)
		}
		groups[c] = append(groups[c], s)
	}

	var events []Event
	for _, c := range order {
		members := groups[c]
		if len(members) <= 1 {
			continue
		}
		names := make([]string, len(members))
		for i, s := range members {
			names[i] = s.ID().Member
		}
		ev := Event{
			ID:       MultipleErrorMessageMembers,
			Severity: Error,
			Shape:    c,
			Message: fmt.Sprintf(
				"Multiple members are annotated with @grpcErrorMessage (%s); only one is allowed",
				strings.Join(names, ", ")),
		}
		if container, ok := m.Shape(c); ok {
			ev.Location = container.Location()
		}
		events = append(events, ev)
	}
	return events
}

// Defaults returns the validators of this package.
func Defaults() []Validator {
	return []Validator{ErrorCodeValidator{}, ErrorMessageValidator{}}
}
