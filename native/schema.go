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

// Package native adapts host-language (Go) functions into compiled
// predicates callable from goals, with a declared moded signature used for
// static mode-checking at assertion load time.
//
// Grounded on google/mangle's builtin package (a fixed dispatch table from
// predicate symbol to evaluator function), generalized per the design
// notes into a composable "tagged sum of schemas" so a host function of
// any declared shape can be lifted to a predicate without hand-writing a
// new dispatch case per shape.
package native

import (
	"github.com/soutei-go/soutei/engine"
	"github.com/soutei-go/soutei/search"
	"github.com/soutei-go/soutei/term"
)

// Schema describes how a host return value maps onto trailing Lit argument
// positions: a single value occupies one argument; a Tuple occupies one
// argument per element; Unit and Bool occupy zero (a Bool's host value
// instead gates success: true succeeds, false fails the branch); List and
// Option turn their element schema into a nondeterministic choice over
// zero, one, or many solutions.
type Schema interface {
	// Arity is the number of trailing Lit argument positions this schema
	// consumes.
	Arity() int
	// Modes returns Arity() output modes — every position a Schema
	// produces is, from the bridge's point of view, an Out argument.
	Modes() []term.Mode
	// Unify attempts to unify this schema's view of a host return value
	// against args (len(args) == Arity()), threaded through st.
	Unify(value any, args []term.Term, st engine.State) engine.Stream
}

func outModes(n int) []term.Mode {
	m := make([]term.Mode, n)
	for i := range m {
		m[i] = term.Out
	}
	return m
}

type valueSchema struct{}

// Value is the schema for a host function that returns a single term.Value.
func Value() Schema { return valueSchema{} }

func (valueSchema) Arity() int         { return 1 }
func (valueSchema) Modes() []term.Mode { return outModes(1) }
func (valueSchema) Unify(value any, args []term.Term, st engine.State) engine.Stream {
	v, ok := value.(term.Value)
	if !ok {
		return search.Done()
	}
	env, ok := st.Env.Unify(args[0], v)
	if !ok {
		return search.Done()
	}
	return search.Answer(engine.State{Env: env, Epoch: st.Epoch, DB: st.DB}, search.Done())
}

type unitSchema struct{}

// Unit is the schema for a host function that returns no value — an empty
// tuple. It occupies zero argument positions and always succeeds.
func Unit() Schema { return unitSchema{} }

func (unitSchema) Arity() int         { return 0 }
func (unitSchema) Modes() []term.Mode { return nil }
func (unitSchema) Unify(_ any, _ []term.Term, st engine.State) engine.Stream {
	return search.Answer(st, search.Done())
}

type boolSchema struct{}

// BoolSchema is the schema for a host function that returns a bool: true
// succeeds with no output arguments, false fails the branch.
func BoolSchema() Schema { return boolSchema{} }

func (boolSchema) Arity() int         { return 0 }
func (boolSchema) Modes() []term.Mode { return nil }
func (boolSchema) Unify(value any, _ []term.Term, st engine.State) engine.Stream {
	b, ok := value.(bool)
	if !ok || !b {
		return search.Done()
	}
	return search.Answer(st, search.Done())
}

type tupleSchema struct {
	subs []Schema
}

// Tuple is the schema for a host function that returns a fixed-length
// tuple, represented at runtime as a []any of len(subs) whose i-th element
// matches subs[i]'s expected value shape. Schemas may nest.
func Tuple(subs ...Schema) Schema { return tupleSchema{subs: subs} }

func (t tupleSchema) Arity() int {
	n := 0
	for _, s := range t.subs {
		n += s.Arity()
	}
	return n
}

func (t tupleSchema) Modes() []term.Mode {
	var m []term.Mode
	for _, s := range t.subs {
		m = append(m, s.Modes()...)
	}
	return m
}

func (t tupleSchema) Unify(value any, args []term.Term, st engine.State) engine.Stream {
	vs, ok := value.([]any)
	if !ok || len(vs) != len(t.subs) {
		return search.Done()
	}
	cur := engine.Stream(search.Answer(st, search.Done()))
	offset := 0
	for i, sub := range t.subs {
		sub := sub
		v := vs[i]
		subArgs := args[offset : offset+sub.Arity()]
		cur = search.Bind(cur, func(s engine.State) engine.Stream {
			return sub.Unify(v, subArgs, s)
		})
		offset += sub.Arity()
	}
	return cur
}

type listSchema struct {
	elem Schema
}

// List is the schema for a host function that returns a slice of elements
// each matching elem's shape; it becomes a nondeterministic choice over
// the elements, with as many solutions as there are elements.
func List(elem Schema) Schema { return listSchema{elem: elem} }

func (l listSchema) Arity() int         { return l.elem.Arity() }
func (l listSchema) Modes() []term.Mode { return l.elem.Modes() }
func (l listSchema) Unify(value any, args []term.Term, st engine.State) engine.Stream {
	vs, ok := value.([]any)
	if !ok {
		return search.Done()
	}
	branches := make([]engine.Stream, len(vs))
	for i, v := range vs {
		branches[i] = l.elem.Unify(v, args, st)
	}
	return search.Disjoin(branches...)
}

// Opt is the runtime value a host function returns for an Option(schema):
// Ok false means "no value" (0 solutions), Ok true carries Val, matching
// elem's expected shape (1 solution).
type Opt struct {
	Ok  bool
	Val any
}

type optionSchema struct {
	elem Schema
}

// Option is the schema for a host function that may or may not produce a
// value; 0 or 1 solutions, never more.
func Option(elem Schema) Schema { return optionSchema{elem: elem} }

func (o optionSchema) Arity() int         { return o.elem.Arity() }
func (o optionSchema) Modes() []term.Mode { return o.elem.Modes() }
func (o optionSchema) Unify(value any, args []term.Term, st engine.State) engine.Stream {
	opt, ok := value.(Opt)
	if !ok || !opt.Ok {
		return search.Done()
	}
	return o.elem.Unify(opt.Val, args, st)
}
