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

package soutei

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/soutei-go/soutei/native"
	"github.com/soutei-go/soutei/term"
)

func reachabilityRules() []Rule {
	x, y, z := term.Var(0, "x"), term.Var(0, "y"), term.Var(0, "z")
	goalOf := func(pred string, a, b Term) Goal {
		return Goal{Assn: term.AssertionRef{Principal: term.String("app")}, Lit: term.NewLit(pred, a, b)}
	}
	rules := []Rule{
		{Head: term.NewLit("path", x, y), Body: []Goal{goalOf("path", x, z), goalOf("edge", z, y)}},
		{Head: term.NewLit("path", x, y), Body: []Goal{goalOf("edge", x, y)}},
	}
	for _, e := range [][2]int64{{1, 2}, {2, 3}, {3, 4}, {3, 1}, {1, 5}, {5, 4}} {
		rules = append(rules, Rule{Head: term.NewLit("edge", term.Int(e[0]), term.Int(e[1]))})
	}
	return rules
}

func TestEndToEndReachability(t *testing.T) {
	db := NewDatabase()
	Install(db, term.String("app"), reachabilityRules())

	goal := CompileQuery("app", "path", term.Int(1), term.Int(2))
	if got := Run(10000, 100, db, goal); len(got) == 0 {
		t.Errorf("path(1,2) should succeed")
	}

	y := term.Var(1, "y")
	all := Run(10000, 100, db, CompileQuery("app", "path", term.Int(1), y))
	if len(all) == 0 {
		t.Errorf("path(1, ?y) should produce answers")
	}
}

func TestCompileQueryNativePrefix(t *testing.T) {
	goal := CompileQuery(":builtin", "gt", term.Int(2), term.Int(1))
	if !goal.Assn.IsNative() || goal.Assn.Native != "builtin" {
		t.Errorf("CompileQuery(':builtin', ...) should target native assertion 'builtin', got %+v", goal.Assn)
	}
}

func TestCompileQueryPrincipal(t *testing.T) {
	goal := CompileQuery("app", "path", term.Int(1), term.Int(2))
	if goal.Assn.IsNative() {
		t.Errorf("CompileQuery('app', ...) should not be native")
	}
}

func TestRunDiagnosticReportsStoppedReason(t *testing.T) {
	db := NewDatabase()
	Install(db, term.String("app"), reachabilityRules())
	goal := CompileQuery("app", "path", term.Int(1), term.Int(2))

	diag, err := RunDiagnostic(10000, 100, db, goal)
	if err != nil {
		t.Fatalf("RunDiagnostic error: %v", err)
	}
	// path(1,2) has infinitely many proofs through the 1->2->3->1 cycle, and
	// fewer than 100 of them are reached within 10000 steps, so the step
	// bound is the one that ends this run.
	if diag.StoppedBy != StoppedBySteps {
		t.Errorf("unexpected StoppedBy: %v", diag.StoppedBy)
	}
	if diag.StepsUsed == 0 {
		t.Errorf("expected at least one scheduler step to be counted")
	}
}

func TestRunDiagnosticZeroStepLimitStopsImmediately(t *testing.T) {
	db := NewDatabase()
	Install(db, term.String("app"), reachabilityRules())
	goal := CompileQuery("app", "path", term.Int(1), term.Int(2))
	diag, err := RunDiagnostic(0, 100, db, goal)
	if err != nil {
		t.Fatalf("RunDiagnostic error: %v", err)
	}
	if len(diag.Answers) != 0 {
		t.Errorf("stepLimit=0 should yield no answers, got %v", diag.Answers)
	}
}

func TestPredicateSet(t *testing.T) {
	db := NewDatabase()
	Install(db, term.String("app"), reachabilityRules())
	ps := NewPredicateSet(db)
	if !ps.Has("path", 2) || !ps.Has("edge", 2) {
		t.Errorf("PredicateSet missing expected keys: %v", ps.Elements())
	}
	if ps.Has("nonexistent", 3) {
		t.Errorf("PredicateSet reported a key that was never installed")
	}
	got := ps.Elements()
	sort.Strings(got)
	want := []string{"edge/2", "path/2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("PredicateSet.Elements() mismatch (-want +got):\n%s", diff)
	}
}

func TestInstallNativeAndQuery(t *testing.T) {
	isPositive := native.Func("positive", []native.Decoder{native.AsInt}, native.BoolSchema(), func(ins []any) (any, error) {
		return ins[0].(int64) > 0, nil
	})
	ndb, err := native.BuildDB(isPositive)
	if err != nil {
		t.Fatalf("BuildDB: %v", err)
	}
	db := NewDatabase()
	InstallNative(db, "math", ndb)

	goal := CompileQuery(":math", "positive", term.Int(5))
	if got := Run(100, 10, db, goal); len(got) != 1 {
		t.Errorf("positive(5) via native assertion should succeed once, got %v", got)
	}

	goalFalse := CompileQuery(":math", "positive", term.Int(-5))
	if got := Run(100, 10, db, goalFalse); len(got) != 0 {
		t.Errorf("positive(-5) via native assertion should fail, got %v", got)
	}
}

func TestRetract(t *testing.T) {
	db := NewDatabase()
	Install(db, term.String("app"), reachabilityRules())
	Retract(db, term.String("app"))
	goal := CompileQuery("app", "path", term.Int(1), term.Int(2))
	if got := Run(100, 10, db, goal); len(got) != 0 {
		t.Errorf("query after Retract should fail, got %v", got)
	}
}
