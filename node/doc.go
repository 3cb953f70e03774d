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

// Package node implements the generic structured-value tree that model
// sources are parsed into before traits are decoded from them.
//
// A tree is made of objects, arrays, strings, numbers, booleans and nulls.
// Every node remembers the SourceLocation it was read from so that decoders
// can attribute failures precisely.
//
// Nodes are immutable once constructed. Object keeps its members in source
// order, which makes iteration over a parsed document deterministic.
//
// Trees are usually produced by ParseYAML or ParseJSON, or built directly
// with the New* constructors in tests and encoders.
package node
