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

package engine

import (
	"github.com/soutei-go/soutei/subst"
	"github.com/soutei-go/soutei/search"
)

// State and Stream are re-exported aliases for the search monad's types, so
// that callers of this package's CompiledPred/Resolve signatures do not
// also need to import package search directly.
type (
	State  = search.State
	Stream = search.Stream
)

// NewState returns the initial runtime state for a query against db: an
// empty substitution, epoch one, and db attached as the state's opaque
// database payload. Epoch 0 is never handed to a rule invocation, so the
// renamed variables of an invocation never coincide with source-level
// (epoch-0) variables.
func NewState(db *Database) State {
	return State{Env: subst.Empty(), Epoch: 1, DB: db}
}

// dbOf recovers the Database a state was built with. It panics if st was
// not constructed via NewState, which would be a programming error in this
// package, not a reachable runtime condition.
func dbOf(st State) *Database {
	return st.DB.(*Database)
}
