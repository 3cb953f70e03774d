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

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"dirpx.dev/grpctraits/loader"
	"dirpx.dev/grpctraits/validation"
)

// ErrValidationFailed is returned when events reach the --fail-on severity.
var ErrValidationFailed = errors.New("validation failed")

type validateOptions struct {
	format       string
	failOn       string
	strictTraits bool
}

func newValidateCmd(root *rootOptions) *cobra.Command {
	opts := &validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Load model documents and report trait problems",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.OutOrStdout(), root, opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&opts.failOn, "fail-on", "error", "Lowest severity that fails the run: note, warning, error or none")
	cmd.Flags().BoolVar(&opts.strictTraits, "strict-traits", false, "Reject traits that have no registered provider")
	return cmd
}

func runValidate(out io.Writer, root *rootOptions, opts *validateOptions, files []string) error {
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unknown --format %q", opts.format)
	}
	failOn, fail, err := parseFailOn(opts.failOn)
	if err != nil {
		return err
	}

	loaderOpts := []loader.Option{loader.WithLogger(root.logger)}
	if opts.strictTraits {
		loaderOpts = append(loaderOpts, loader.WithStrictTraits())
	}
	m, err := loader.LoadFiles(files, loaderOpts...)
	if err != nil {
		return err
	}

	events := validation.New(validation.WithLogger(root.logger)).Validate(m)
	if err := printEvents(out, opts.format, events); err != nil {
		return err
	}

	if !fail {
		return nil
	}
	if n := len(validation.Filter(events, failOn)); n > 0 {
		return fmt.Errorf("%w: %d event(s) at or above %s", ErrValidationFailed, n, failOn)
	}
	return nil
}

// parseFailOn returns the threshold and whether any threshold applies.
func parseFailOn(s string) (validation.Severity, bool, error) {
	if strings.EqualFold(s, "none") {
		return 0, false, nil
	}
	sev, err := validation.ParseSeverity(s)
	if err != nil {
		return 0, false, fmt.Errorf("invalid --fail-on: %w", err)
	}
	return sev, true, nil
}

func printEvents(out io.Writer, format string, events []validation.Event) error {
	if format == "json" {
		if events == nil {
			events = []validation.Event{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(events)
	}
	for _, e := range events {
		if _, err := fmt.Fprintln(out, e.String()); err != nil {
			return err
		}
	}
	return nil
}
