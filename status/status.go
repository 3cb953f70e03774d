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

package status

import (
	"bytes"
	"encoding"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"google.golang.org/grpc/codes"
)

// Code is a gRPC status code as carried by a trait. Any int32 value is
// structurally valid; IsStandard tells whether it is one of the 17 codes.
type Code int32

// MinStandard and MaxStandard bound the standard gRPC status codes.
const (
	MinStandard Code = 0
	MaxStandard Code = 16
)

var (
	// ErrUnknownSymbol is returned when a symbolic code name is not one of
	// the 17 standard gRPC status names.
	ErrUnknownSymbol = errors.New("grpctraits: unknown status code symbol")
)

// Ensure Code implements encoding.TextMarshaler / encoding.TextUnmarshaler.
var (
	_ encoding.TextMarshaler   = (*Code)(nil)
	_ encoding.TextUnmarshaler = (*Code)(nil)
)

// table lists the standard codes indexed by their numeric value.
var table = [...]struct {
	name string
	code codes.Code
	http int
}{
	{"OK", codes.OK, http.StatusOK},
	{"CANCELLED", codes.Canceled, 499}, // nginx "client closed request"
	{"UNKNOWN", codes.Unknown, http.StatusInternalServerError},
	{"INVALID_ARGUMENT", codes.InvalidArgument, http.StatusBadRequest},
	{"DEADLINE_EXCEEDED", codes.DeadlineExceeded, http.StatusGatewayTimeout},
	{"NOT_FOUND", codes.NotFound, http.StatusNotFound},
	{"ALREADY_EXISTS", codes.AlreadyExists, http.StatusConflict},
	{"PERMISSION_DENIED", codes.PermissionDenied, http.StatusForbidden},
	{"RESOURCE_EXHAUSTED", codes.ResourceExhausted, http.StatusTooManyRequests},
	{"FAILED_PRECONDITION", codes.FailedPrecondition, http.StatusBadRequest},
	{"ABORTED", codes.Aborted, http.StatusConflict},
	{"OUT_OF_RANGE", codes.OutOfRange, http.StatusBadRequest},
	{"UNIMPLEMENTED", codes.Unimplemented, http.StatusNotImplemented},
	{"INTERNAL", codes.Internal, http.StatusInternalServerError},
	{"UNAVAILABLE", codes.Unavailable, http.StatusServiceUnavailable},
	{"DATA_LOSS", codes.DataLoss, http.StatusInternalServerError},
	{"UNAUTHENTICATED", codes.Unauthenticated, http.StatusUnauthorized},
}

// byName is the reverse index of table, built once in init.
var byName map[string]Code

func init() {
	if len(table) != int(MaxStandard-MinStandard)+1 {
		panic("grpctraits: status table must hold exactly 17 codes")
	}
	byName = make(map[string]Code, len(table))
	for i, e := range table {
		if int(e.code) != i {
			panic(fmt.Sprintf("grpctraits: status %s listed at %d, want %d", e.name, i, e.code))
		}
		// grpc-go accepts the same canonical spellings in its JSON form.
		var c codes.Code
		if err := c.UnmarshalJSON([]byte(strconv.Quote(e.name))); err != nil || c != e.code {
			panic(fmt.Sprintf("grpctraits: status %s does not match grpc codes", e.name))
		}
		if _, dup := byName[e.name]; dup {
			panic("grpctraits: duplicate status name " + e.name)
		}
		byName[e.name] = Code(i)
	}
}

// Resolve returns the code for a standard symbol name such as "NOT_FOUND".
// Names are matched exactly; anything else fails with ErrUnknownSymbol.
func Resolve(name string) (Code, error) {
	c, ok := byName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSymbol, name)
	}
	return c, nil
}

// MustResolve is the panic-on-error variant of Resolve, useful for
// package-level variables.
func MustResolve(name string) Code {
	c, err := Resolve(name)
	if err != nil {
		panic(err)
	}
	return c
}

// IsStandard reports whether code is one of the 17 standard gRPC codes.
func IsStandard(code int) bool {
	return code >= int(MinStandard) && code <= int(MaxStandard)
}

// IsStandard reports whether c is one of the 17 standard gRPC codes.
func (c Code) IsStandard() bool { return IsStandard(int(c)) }

// Name returns the symbol name of a standard code.
func (c Code) Name() (string, bool) {
	if !c.IsStandard() {
		return "", false
	}
	return table[c].name, true
}

// Names returns the 17 standard names ordered by code.
func Names() []string {
	out := make([]string, len(table))
	for i, e := range table {
		out[i] = e.name
	}
	return out
}

// String returns the symbol for standard codes and the decimal value for
// any other code.
func (c Code) String() string {
	if name, ok := c.Name(); ok {
		return name
	}
	return strconv.Itoa(int(c))
}

// GRPC converts c to a grpc-go code. Non-standard codes become
// codes.Unknown.
func (c Code) GRPC() codes.Code {
	if !c.IsStandard() {
		return codes.Unknown
	}
	return table[c].code
}

// HTTPStatus returns the conventional HTTP status for c. Non-standard codes
// are treated as UNKNOWN (500).
func (c Code) HTTPStatus() int {
	if !c.IsStandard() {
		return http.StatusInternalServerError
	}
	return table[c].http
}

// MarshalText implements encoding.TextMarshaler. Standard codes are written
// as their symbol, others as decimal numbers.
func (c Code) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts a standard
// symbol or a decimal int32.
func (c *Code) UnmarshalText(text []byte) error {
	s := string(bytes.TrimSpace(text))
	if n, err := strconv.ParseInt(s, 10, 32); err == nil {
		*c = Code(n)
		return nil
	}
	parsed, err := Resolve(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
