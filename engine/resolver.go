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
	"github.com/soutei-go/soutei/search"
	"github.com/soutei-go/soutei/term"
)

// Resolve is the resolver's entry point. goal is `assn says Lit(p, args)`
// with args already referring to the caller's own epoch's variables. On
// success it extends st's substitution so that, once walked, goal.Lit's
// args reflect the resolution; callers read that literal back out with
// st.Env.WalkLit(goal.Lit) once a branch's final state is reached.
//
// Resolve never returns an error: a missing assertion, a missing predicate,
// or an unground assertion reference are all branch failures (Done()), per
// the two-strata error model — branch failure is recovered by the search
// monad, never surfaced to the caller.
func Resolve(goal term.Goal, st State) Stream {
	pred, ok := lookup(dbOf(st), goal, st)
	if !ok {
		return search.Done()
	}
	// The sole mandatory suspension point: every predicate dispatch yields
	// one scheduler step before the compiled predicate runs.
	return search.More(func() Stream {
		return pred(goal.Lit, st)
	})
}

// lookup loads the compiled predicate for goal's assertion reference and
// predicate key, selecting the native or the principal-keyed rule map by
// the tag on the reference. The two namespaces never overlap.
func lookup(db *Database, goal term.Goal, st State) (CompiledPred, bool) {
	key := goal.Lit.Pred
	if goal.Assn.IsNative() {
		ndb, ok := db.Native[goal.Assn.Native]
		if !ok {
			return nil, false
		}
		np, ok := ndb[key]
		if !ok {
			return nil, false
		}
		return np.Eval, true
	}
	principal := st.Env.Walk(goal.Assn.Principal)
	value, ok := principal.(term.Value)
	if !ok {
		// Unground assertion reference at resolve time: branch failure.
		// The core relies on the external mode-checker to reject rules
		// whose assertion references cannot be ground at call position;
		// at runtime this is simply another failed branch.
		return nil, false
	}
	a, ok := db.Rules[value]
	if !ok {
		return nil, false
	}
	pred, ok := a[key]
	if !ok {
		return nil, false
	}
	return pred, true
}

// CompileRules groups rules by predicate key and wraps each group in a
// compiled predicate, as described for rule compilation: a fresh epoch is
// allocated once per invocation of the whole group (not once per rule), so
// every rule in the group shares it, and a recursive call (which re-enters
// this same compiled predicate, or another one, through Resolve) allocates
// a further epoch of its own — guaranteeing fresh variables across
// invocations.
func CompileRules(rules []term.Rule) Assertion {
	groups := make(map[term.PredKey][]term.Rule)
	for _, r := range rules {
		groups[r.Head.Pred] = append(groups[r.Head.Pred], r)
	}
	a := make(Assertion, len(groups))
	for key, group := range groups {
		group := group
		a[key] = func(call term.Lit, st State) Stream {
			next, epoch := st.Fresh()
			branches := make([]Stream, len(group))
			for i, rule := range group {
				rule := rule
				branches[i] = resolveRule(rule, epoch, call, next)
			}
			return search.Disjoin(branches...)
		}
	}
	return a
}

// resolveRule unifies one rule's renamed head against call, then folds its
// body goals through search.Bind so each literal's solutions feed the next.
func resolveRule(rule term.Rule, epoch int, call term.Lit, st State) Stream {
	head := renameLit(rule.Head, epoch)
	env, ok := st.Env.UnifyArgs(call.Args, head.Args)
	if !ok {
		return search.Done()
	}
	stream := Stream(search.Answer(State{Env: env, Epoch: st.Epoch, DB: st.DB}, search.Done()))
	for _, g := range rule.Body {
		g := renameGoal(g, epoch)
		stream = search.Bind(stream, func(s State) Stream {
			return Resolve(g, s)
		})
	}
	return stream
}

// renameTerm replaces v's source-level name with the same name under a
// fresh epoch, leaving Values untouched.
func renameTerm(t term.Term, epoch int) term.Term {
	if v, ok := t.(term.Variable); ok {
		return term.Var(epoch, v.ID.Name)
	}
	return t
}

func renameLit(lit term.Lit, epoch int) term.Lit {
	args := make([]term.Term, len(lit.Args))
	for i, a := range lit.Args {
		args[i] = renameTerm(a, epoch)
	}
	return term.Lit{Pred: lit.Pred, Args: args}
}

func renameGoal(g term.Goal, epoch int) term.Goal {
	assn := g.Assn
	if !assn.IsNative() {
		assn.Principal = renameTerm(assn.Principal, epoch)
	}
	return term.Goal{Assn: assn, Lit: renameLit(g.Lit, epoch)}
}
