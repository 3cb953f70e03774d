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

// Package loader assembles a model from YAML or JSON model documents.
//
// A document lists shapes by id:
//
//	shapes:
//	  example#NotFound:
//	    type: structure
//	    traits:
//	      alloy.proto#grpcError:
//	        code: NOT_FOUND
//	    members:
//	      reason:
//	        target: smithy.api#String
//	        traits:
//	          alloy.proto#grpcErrorMessage: {}
//
// Trait values are decoded through a traits.Registry as the document is
// read. A value that fails to decode aborts the load; traits with no
// registered provider are kept as traits.Dynamic unless WithStrictTraits is
// set.
//
// Files ending in ".json" are parsed with protojson and carry file-level
// locations only; everything else goes through the YAML parser, which
// records line and column for every node.
package loader
