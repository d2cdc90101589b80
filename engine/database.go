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

// Package engine implements the predicate database and the resolver: given
// a goal, it finds the assertion, locates the predicate, renames apart,
// unifies with heads, and recursively resolves bodies through the search
// monad.
//
// Grounded on google/mangle's engine.QueryContext.EvalQuery (backward
// chaining dispatch over PredToRules keyed by ast.PredicateSym), generalized
// from a fixed input/output mode-vector to full first-order unification —
// the trust-logic core has no stratification and defers mode enforcement to
// the external mode-checker.
package engine

import (
	"sort"

	"bitbucket.org/creachadair/stringset"

	"github.com/soutei-go/soutei/term"
)

// CompiledPred is the operation a rule group or a native function compiles
// down to: given a caller-side literal (with the caller's own epoch's
// variables) and the current search state, it emits zero or more
// successful resolutions via the search monad.
type CompiledPred func(call term.Lit, st State) Stream

// Assertion maps a predicate key to its compiled predicate. It is the
// compiled form of one principal's (or one native name's) rule set.
type Assertion map[term.PredKey]CompiledPred

// NativePred bundles a native predicate's invocation function with the
// moded signature used for mode-checking rules that call it.
type NativePred struct {
	Sig  term.ModedLit
	Eval CompiledPred
}

// NativeDB is one native assertion: a map from predicate key to NativePred.
type NativeDB map[term.PredKey]NativePred

// Database is the pair of the rules database and the native database, with
// componentwise union as its monoid.
type Database struct {
	// Rules maps a principal value to its compiled assertion.
	Rules map[term.Value]Assertion
	// Native maps a native assertion name to its predicate table.
	Native map[string]NativeDB
}

// NewDatabase returns an empty Database.
func NewDatabase() *Database {
	return &Database{
		Rules:  make(map[term.Value]Assertion),
		Native: make(map[string]NativeDB),
	}
}

// InstallRuleAssertion replaces the assertion bound to principal name.
func (db *Database) InstallRuleAssertion(name term.Value, a Assertion) {
	db.Rules[name] = a
}

// RetractRuleAssertion removes the assertion bound to principal name, if any.
func (db *Database) RetractRuleAssertion(name term.Value) {
	delete(db.Rules, name)
}

// InstallNative replaces the native assertion bound to name.
func (db *Database) InstallNative(name string, n NativeDB) {
	db.Native[name] = n
}

// RetractNative removes the native assertion bound to name, if any.
func (db *Database) RetractNative(name string) {
	delete(db.Native, name)
}

// Merge returns a new Database that is the componentwise union of db and
// other; entries in other take precedence on key collision.
func (db *Database) Merge(other *Database) *Database {
	merged := NewDatabase()
	for k, v := range db.Rules {
		merged.Rules[k] = v
	}
	for k, v := range other.Rules {
		merged.Rules[k] = v
	}
	for k, v := range db.Native {
		merged.Native[k] = v
	}
	for k, v := range other.Native {
		merged.Native[k] = v
	}
	return merged
}

// Predicates lists every predicate key installed across both rule and
// native assertions, for diagnostics, in a stable (sorted) order. Keys are
// deduplicated through a stringset.Set keyed by PredKey.String(), the same
// pack-supplied dependency used for the embedding API's predicate-set
// diagnostic.
func (db *Database) Predicates() []term.PredKey {
	seen := stringset.New()
	byKey := make(map[string]term.PredKey)
	add := func(k term.PredKey) {
		s := k.String()
		if !seen.Contains(s) {
			seen.Add(s)
			byKey[s] = k
		}
	}
	for _, a := range db.Rules {
		for k := range a {
			add(k)
		}
	}
	for _, n := range db.Native {
		for k := range n {
			add(k)
		}
	}
	names := seen.Elements()
	sort.Strings(names)
	out := make([]term.PredKey, len(names))
	for i, s := range names {
		out[i] = byKey[s]
	}
	return out
}
