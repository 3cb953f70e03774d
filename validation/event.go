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
	"bytes"
	"encoding"
	"errors"
	"fmt"
	"strings"

	"dirpx.dev/grpctraits/model"
	"dirpx.dev/grpctraits/node"
)

// Severity ranks events. Higher values are more severe.
type Severity int

const (
	Note Severity = iota
	Warning
	Error
)

var severityNames = [...]string{Note: "NOTE", Warning: "WARNING", Error: "ERROR"}

var (
	// ErrInvalidSeverity is returned when parsing an unknown severity name.
	ErrInvalidSeverity = errors.New("grpctraits: invalid severity")
)

var (
	_ encoding.TextMarshaler   = Severity(0)
	_ encoding.TextUnmarshaler = (*Severity)(nil)
)

// String returns the upper-case name, e.g. "WARNING".
func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return fmt.Sprintf("SEVERITY(%d)", int(s))
	}
	return severityNames[s]
}

// ParseSeverity parses a severity name, ignoring case.
func ParseSeverity(text string) (Severity, error) {
	for i, n := range severityNames {
		if strings.EqualFold(n, strings.TrimSpace(text)) {
			return Severity(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSeverity, text)
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(severityNames) {
		return nil, ErrInvalidSeverity
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Rule ids emitted by the validators of this package.
const (
	// NonStandardErrorCode flags a grpcError code outside 0..16.
	NonStandardErrorCode = "GrpcErrorNonStandard"
	// MultipleErrorMessageMembers flags a container with more than one
	// grpcErrorMessage member.
	MultipleErrorMessageMembers = "GrpcErrorMessageMultipleMembers"
)

// Event is a single validation finding.
type Event struct {
	ID       string              `json:"id"`
	Severity Severity            `json:"severity"`
	Shape    model.ShapeID       `json:"shape"`
	Location node.SourceLocation `json:"sourceLocation"`
	Message  string              `json:"message"`
}

// String renders the event on one line:
//
//	[WARNING] ns#Shape: message | RuleId file:line:col
func (e Event) String() string {
	return fmt.Sprintf("[%s] %s: %s | %s %s", e.Severity, e.Shape, e.Message, e.ID, e.Location)
}

// compare orders events by shape, rule id, severity (most severe first) and
// message.
func compare(a, b Event) int {
	if c := a.Shape.Compare(b.Shape); c != 0 {
		return c
	}
	if c := strings.Compare(a.ID, b.ID); c != 0 {
		return c
	}
	if a.Severity != b.Severity {
		return int(b.Severity) - int(a.Severity)
	}
	return strings.Compare(a.Message, b.Message)
}

// MaxSeverity returns the highest severity among events and false when
// events is empty.
func MaxSeverity(events []Event) (Severity, bool) {
	if len(events) == 0 {
		return 0, false
	}
	highest := events[0].Severity
	for _, e := range events[1:] {
		if e.Severity > highest {
			highest = e.Severity
		}
	}
	return highest, true
}

// Filter returns the events whose severity is at least threshold.
func Filter(events []Event, threshold Severity) []Event {
	var out []Event
	for _, e := range events {
		if e.Severity >= threshold {
			out = append(out, e)
		}
	}
	return out
}
