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

// Package subst implements the substitution and first-order unification
// used by the resolver. The substitution is a persistent singly linked list
// of bindings rather than a slice-backed association list, because a
// slice-backed list can silently alias its backing array across branches
// when append reuses capacity; a cons-list shares structure safely and
// gives every branch of the search monad its own root pointer with no
// undo bookkeeping at all.
package subst

import "github.com/soutei-go/soutei/term"

// Subst is a partial map from term.VarID to term.Term. The nil *Subst is
// the empty substitution. Every operation that would "extend" a Subst
// instead returns a new *Subst sharing the old one's tail, so a pointer
// captured before a choice point remains valid and unaffected by whatever
// the chosen alternative goes on to bind.
type Subst struct {
	id   term.VarID
	val  term.Term
	next *Subst
}

// Empty returns the empty substitution.
func Empty() *Subst { return nil }

// Get returns the term id is bound to, and whether it is bound at all.
func (s *Subst) Get(id term.VarID) (term.Term, bool) {
	for cur := s; cur != nil; cur = cur.next {
		if cur.id == id {
			return cur.val, true
		}
	}
	return nil, false
}

// Extend returns a new substitution with id bound to val, leaving s itself
// untouched.
func (s *Subst) Extend(id term.VarID, val term.Term) *Subst {
	return &Subst{id: id, val: val, next: s}
}

// Walk returns the representative of t: if t is a Value, t; if t is an
// unbound Variable, t; otherwise the Walk of its binding. Termination is
// guaranteed by the no-cycles invariant maintained by Unify.
func (s *Subst) Walk(t term.Term) term.Term {
	for {
		v, ok := t.(term.Variable)
		if !ok {
			return t
		}
		bound, ok := s.Get(v.ID)
		if !ok {
			return t
		}
		t = bound
	}
}

// Unify attempts to unify a and b against s, returning the extended
// substitution on success. On failure it returns (s, false): the input
// substitution, unchanged, so callers never need to separately track a
// rollback point. There is no occurs check: terms have no compound
// structure, and a variable is only ever bound to a walked representative
// other than itself, so no binding can create a cycle.
func (s *Subst) Unify(a, b term.Term) (*Subst, bool) {
	a = s.Walk(a)
	b = s.Walk(b)
	if term.Equal(a, b) {
		return s, true
	}
	if av, ok := a.(term.Variable); ok {
		return s.Extend(av.ID, b), true
	}
	if bv, ok := b.(term.Variable); ok {
		return s.Extend(bv.ID, a), true
	}
	return s, false
}

// UnifyArgs unifies two equal-length term slices pairwise, threading the
// substitution through each step and stopping at the first failure.
// Mismatched lengths fail rather than panic: arities are checked at Lit
// construction time, but a caller-supplied query may legitimately disagree
// in length with a particular rule head, and that must fail only that
// rule's branch.
func (s *Subst) UnifyArgs(xs, ys []term.Term) (*Subst, bool) {
	if len(xs) != len(ys) {
		return s, false
	}
	cur := s
	for i := range xs {
		var ok bool
		cur, ok = cur.Unify(xs[i], ys[i])
		if !ok {
			return s, false
		}
	}
	return cur, true
}

// WalkLit returns lit with every argument replaced by its current
// representative under s. It does not mutate lit.
func (s *Subst) WalkLit(lit term.Lit) term.Lit {
	args := make([]term.Term, len(lit.Args))
	for i, a := range lit.Args {
		args[i] = s.Walk(a)
	}
	return term.Lit{Pred: lit.Pred, Args: args}
}

// Ground reports whether t is a Value once walked through s — i.e. no
// Variable is reachable from t through the substitution.
func (s *Subst) Ground(t term.Term) bool {
	_, ok := s.Walk(t).(term.Value)
	return ok
}
