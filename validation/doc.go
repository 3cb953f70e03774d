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

// Package validation checks that the gRPC error traits are used consistently
// across a fully built model.
//
// Two validators are provided:
//
//   - ErrorCodeValidator warns about grpcError codes outside the standard
//     0..16 range (GrpcErrorNonStandard);
//   - ErrorMessageValidator reports containers with more than one member
//     marked grpcErrorMessage (GrpcErrorMessageMultipleMembers).
//
// Validators are stateless and never mutate the model. A Runner executes a
// set of validators, in parallel by default, and returns the events in a
// deterministic order.
package validation
