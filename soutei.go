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

// Package soutei is the embedding API for the trust-management evaluation
// core: construct a Database, install rule and native assertions into it,
// compile a query, and Run it to a bounded list of answers. Callers never
// need to import the engine, search, or subst packages directly: this
// package re-exports the core types as aliases. Values, variables and
// literals are still built with package term's constructors, and native
// assertions with package native.
package soutei

import (
	"strings"

	"github.com/soutei-go/soutei/engine"
	"github.com/soutei-go/soutei/term"
)

// Re-exported core types, so callers can write soutei.Lit, soutei.Value,
// soutei.Rule and so on without a second import.
type (
	Value   = term.Value
	Term    = term.Term
	Lit     = term.Lit
	Rule    = term.Rule
	Goal    = term.Goal
	PredKey = term.PredKey

	// Database is the rules/native predicate store. Its zero value is not
	// usable; construct one with NewDatabase.
	Database = engine.Database
)

// CompileQuery builds the single-goal query `assn says pred(args)`. A
// leading ':' on assn selects the native namespace (stripped from the
// stored reference); any other assn is treated as the literal principal
// name, wrapped as a ground term.Value — the embedding API's caller is
// expected to already know whether its query targets a principal or a
// native assertion, mirroring how a compiled rule body distinguishes the
// two at parse time.
func CompileQuery(assn, pred string, args ...Term) Goal {
	lit := term.NewLit(pred, args...)
	if native, ok := strings.CutPrefix(assn, ":"); ok {
		return Goal{Assn: term.AssertionRef{Native: native}, Lit: lit}
	}
	return Goal{Assn: term.AssertionRef{Principal: term.String(assn)}, Lit: lit}
}

// Run evaluates goal against db under the given bounds, collecting
// answers (goal.Lit with every variable walked to its final binding) in
// the order the fair scheduler produces them. Both bounds are mandatory:
// there is no unbounded-run entry point.
func Run(stepLimit, answerLimit int, db *Database, goal Goal) []Lit {
	result, _ := RunDiagnostic(stepLimit, answerLimit, db, goal)
	return result.Answers
}
