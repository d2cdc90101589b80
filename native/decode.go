// Copyright 2022 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package native

import "github.com/soutei-go/soutei/term"

// Decoder turns one ground term.Value into the host value a Call function
// expects for that argument position, failing (ok==false) if the Value's
// Kind does not match — a call whose argument arrives as the wrong Kind at
// runtime is a branch failure, not a panic.
type Decoder func(term.Value) (any, bool)

// AsString decodes a string Value into a Go string.
func AsString(v term.Value) (any, bool) {
	s, ok := v.AsString()
	return s, ok
}

// AsInt decodes an integer Value into a Go int64.
func AsInt(v term.Value) (any, bool) {
	i, ok := v.AsInt()
	return i, ok
}

// AsBool decodes a boolean Value into a Go bool.
func AsBool(v term.Value) (any, bool) {
	b, ok := v.AsBool()
	return b, ok
}

// AsValue passes the Value through unchanged, for a Call that wants to
// inspect the Kind itself (e.g. a polymorphic comparison predicate).
func AsValue(v term.Value) (any, bool) { return v, true }
