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

// Package status holds the table of the 17 standard gRPC status codes.
//
// The table maps each canonical symbol (e.g. "NOT_FOUND") to its integer
// value (5) and back. It is the only place where symbolic spellings used in
// model sources are turned into numbers.
//
// Codes outside 0..16 are still representable: traits may carry vendor
// codes, and validation only warns about them. Helpers that project a code
// onto a transport (GRPC, HTTPStatus) treat such codes as UNKNOWN, which is
// what gRPC runtimes do with them in practice.
//
// The table is immutable and verified against google.golang.org/grpc/codes
// when the package is initialized.
package status
