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

// Binary soutei is a tiny demo shell around the embedding API: it
// hardcodes a small reachability database, evaluates one query against
// it, and prints the answers found.
package main

import (
	"flag"
	"fmt"

	log "github.com/golang/glog"

	"github.com/soutei-go/soutei"
	"github.com/soutei-go/soutei/term"
)

var (
	steps   = flag.Int("steps", 10000, "scheduler step bound")
	answers = flag.Int("answers", 100, "answer count bound")
	target  = flag.Int("to", 0, "if non-zero, query path(from, to); otherwise path(from, Y)")
	from    = flag.Int("from", 1, "source node for the reachability query")
)

// reachabilityRules is the fixed two-rule program: a left-recursive
// transitive-closure rule and its base case.
func reachabilityRules() []term.Rule {
	x, y, z := term.Var(0, "x"), term.Var(0, "y"), term.Var(0, "z")
	path := func(a, b term.Term) term.Lit { return term.NewLit("path", a, b) }
	edge := func(a, b term.Term) term.Goal {
		return term.Goal{Assn: term.AssertionRef{Principal: term.String("app")}, Lit: term.NewLit("edge", a, b)}
	}
	pathGoal := func(a, b term.Term) term.Goal {
		return term.Goal{Assn: term.AssertionRef{Principal: term.String("app")}, Lit: path(a, b)}
	}
	rules := []term.Rule{
		{Head: path(x, y), Body: []term.Goal{pathGoal(x, z), edge(z, y)}},
		{Head: path(x, y), Body: []term.Goal{edge(x, y)}},
	}
	for _, e := range [][2]int64{{1, 2}, {2, 3}, {3, 4}, {3, 1}, {1, 5}, {5, 4}} {
		rules = append(rules, term.Rule{Head: term.NewLit("edge", term.Int(e[0]), term.Int(e[1]))})
	}
	return rules
}

func main() {
	flag.Parse()
	db := soutei.NewDatabase()
	soutei.Install(db, term.String("app"), reachabilityRules())

	log.V(1).Infof("installed predicates: %v", soutei.NewPredicateSet(db).Elements())

	var goal term.Goal
	if *target != 0 {
		goal = soutei.CompileQuery("app", "path", term.Int(int64(*from)), term.Int(int64(*target)))
	} else {
		goal = soutei.CompileQuery("app", "path", term.Int(int64(*from)), term.Var(0, "y"))
	}

	diag, err := soutei.RunDiagnostic(*steps, *answers, db, goal)
	if err != nil {
		log.Exitf("setup error: %v", err)
	}
	for _, a := range diag.Answers {
		fmt.Println(a.String())
	}
	log.V(1).Infof("stopped by %s after %d steps, %d answers", diag.StoppedBy, diag.StepsUsed, len(diag.Answers))
}
