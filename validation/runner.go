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
	"slices"
	"sync"

	"go.uber.org/zap"

	"dirpx.dev/grpctraits/model"
)

// Runner executes validators over a model.
type Runner struct {
	validators []Validator
	logger     *zap.Logger
	sequential bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithValidators replaces the validator set. The default is Defaults().
func WithValidators(vs ...Validator) Option {
	return func(r *Runner) { r.validators = slices.Clone(vs) }
}

// WithLogger sets the logger. The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithSequential runs validators one after another on the calling
// goroutine instead of in parallel.
func WithSequential() Option {
	return func(r *Runner) { r.sequential = true }
}

// New returns a Runner configured by opts.
func New(opts ...Option) *Runner {
	r := &Runner{validators: Defaults(), logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Validate runs every validator against m and returns all events sorted by
// shape, rule id, severity and message. The result does not depend on
// scheduling.
func (r *Runner) Validate(m *model.Model) []Event {
	results := make([][]Event, len(r.validators))
	if r.sequential {
		for i, v := range r.validators {
			results[i] = v.Validate(m)
		}
	} else {
		var wg sync.WaitGroup
		for i, v := range r.validators {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results[i] = v.Validate(m)
			}()
		}
		wg.Wait()
	}

	var events []Event
	for i, v := range r.validators {
		r.logger.Debug("validator finished",
			zap.String("validator", v.Name()),
			zap.Int("events", len(results[i])),
		)
		events = append(events, results[i]...)
	}
	slices.SortStableFunc(events, compare)

	fields := []zap.Field{
		zap.Int("shapes", m.Len()),
		zap.Int("validators", len(r.validators)),
		zap.Int("events", len(events)),
	}
	if highest, ok := MaxSeverity(events); ok {
		fields = append(fields, zap.Stringer("max_severity", highest))
	}
	r.logger.Debug("model validated", fields...)
	return events
}

// Validate runs the default validators sequentially.
func Validate(m *model.Model) []Event {
	return New(WithSequential()).Validate(m)
}
