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
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"dirpx.dev/grpctraits/model"
)

func mixedModel(t *testing.T) *model.Model {
	t.Helper()
	e3 := model.MustParseShapeID("example#E3")
	return build(t,
		model.NewShape(e1, model.Structure, grpcError(99)),
		model.NewShape(e2, model.Structure, grpcError(5)),
		model.NewShape(e3, model.Structure, grpcError(-4)),
		model.NewMember(e1, "a", stringID, marker()),
		model.NewMember(e1, "b", stringID, marker()),
		model.NewMember(e3, "a", stringID, marker()),
		model.NewMember(e3, "b", stringID, marker()),
	)
}

func TestRunner_DeterministicAcrossModes(t *testing.T) {
	m := mixedModel(t)
	want := New(WithSequential()).Validate(m)
	if len(want) != 4 {
		t.Fatalf("sequential run = %v, want 4 events", want)
	}
	// Events on one shape are ordered by rule id.
	if want[0].Shape != e1 || want[0].ID != MultipleErrorMessageMembers {
		t.Fatalf("first event = %v", want[0])
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := New().Validate(m)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("parallel run differs (-want +got):\n%s", diff)
			}
		}()
	}
	wg.Wait()
}

type countingValidator struct {
	mu    sync.Mutex
	calls int
}

func (c *countingValidator) Name() string { return "counting" }

func (c *countingValidator) Validate(m *model.Model) []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return []Event{{ID: "Counting", Severity: Note, Shape: e2, Message: "seen"}}
}

func TestRunner_WithValidators(t *testing.T) {
	cv := &countingValidator{}
	r := New(WithValidators(cv, ErrorCodeValidator{}))
	got := r.Validate(mixedModel(t))
	if cv.calls != 1 {
		t.Fatalf("custom validator called %d times, want 1", cv.calls)
	}
	ids := map[string]int{}
	for _, e := range got {
		ids[e.ID]++
	}
	if ids["Counting"] != 1 || ids[NonStandardErrorCode] != 2 || ids[MultipleErrorMessageMembers] != 0 {
		t.Fatalf("unexpected events: %v", got)
	}
}

func TestRunner_Logs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	New(WithLogger(zap.New(core))).Validate(mixedModel(t))

	if n := logs.FilterMessage("validator finished").Len(); n != 2 {
		t.Fatalf("got %d per-validator log entries, want 2", n)
	}
	summary := logs.FilterMessage("model validated").All()
	if len(summary) != 1 {
		t.Fatalf("got %d summary entries, want 1", len(summary))
	}
	fields := summary[0].ContextMap()
	if fields["events"] != int64(4) || fields["max_severity"] != "ERROR" {
		t.Fatalf("summary fields = %v", fields)
	}
}

func TestRunner_LogsNoSeverityWhenClean(t *testing.T) {
	m, err := model.NewBuilder().Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	core, logs := observer.New(zapcore.DebugLevel)
	New(WithLogger(zap.New(core))).Validate(m)

	summary := logs.FilterMessage("model validated").All()
	if len(summary) != 1 {
		t.Fatalf("got %d summary entries, want 1", len(summary))
	}
	fields := summary[0].ContextMap()
	if _, ok := fields["max_severity"]; ok || fields["events"] != int64(0) {
		t.Fatalf("summary fields = %v", fields)
	}
}
