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

// Package traits defines the gRPC error traits and their structured-value
// codecs:
//
//   - alloy.proto#grpcError attaches a status code and an optional message to
//     an error shape;
//   - alloy.proto#grpcErrorMessage marks the member of an error shape that
//     carries the runtime error message.
//
// Traits are created from structured values by providers looked up in a
// Registry. Decoding is strict: a malformed value or an unknown symbolic
// code fails immediately with an error naming the offending member and its
// source location. Range checks are left to package validation.
//
// Usage:
//
//	reg := traits.NewRegistry()
//	t, err := reg.Create(traits.ErrorTraitID, target, value)
package traits
