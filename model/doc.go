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

// Package model is a minimal, immutable shape graph that traits are attached
// to and that validators scan.
//
// A model is assembled with a Builder and frozen by Build. After that no
// method mutates it, so a *Model can be shared by any number of goroutines.
// Iteration order is stable: shapes are always returned sorted by ShapeID.
package model
