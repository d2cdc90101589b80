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

// Package term contains the value, variable, literal and rule types that
// make up the trust-management evaluation core's data model. There are no
// function symbols: every term is either an atomic Value or a Variable.
package term

import "fmt"

// Kind distinguishes the primitive Value variants.
type Kind int

const (
	// BoolKind is the variant for boolean values.
	BoolKind Kind = iota
	// IntKind is the variant for signed 64-bit integers.
	IntKind
	// StringKind is the variant for Unicode strings.
	StringKind
)

// Value is an atomic ground datum: a boolean, a signed integer, or a string.
// Values are comparable and totally ordered within a Kind, and two Values
// with different Kinds are never equal.
type Value struct {
	kind Kind
	b    bool
	i    int64
	s    string
}

// Bool constructs a boolean Value.
func Bool(b bool) Value { return Value{kind: BoolKind, b: b} }

// Int constructs an integer Value.
func Int(i int64) Value { return Value{kind: IntKind, i: i} }

// String constructs a string Value.
func String(s string) Value { return Value{kind: StringKind, s: s} }

// Kind returns the value's variant.
func (v Value) Kind() Kind { return v.kind }

// AsBool returns the underlying bool and whether v is a BoolKind value.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == BoolKind }

// AsInt returns the underlying int64 and whether v is an IntKind value.
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == IntKind }

// AsString returns the underlying string and whether v is a StringKind value.
func (v Value) AsString() (string, bool) { return v.s, v.kind == StringKind }

// Equals reports structural equality, stable across Kinds.
func (v Value) Equals(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case BoolKind:
		return v.b == other.b
	case IntKind:
		return v.i == other.i
	default:
		return v.s == other.s
	}
}

// Less gives a total order over Values, first by Kind then by payload.
// It exists so Values can be used as sort/map keys in diagnostics without
// every caller re-deriving an order.
func (v Value) Less(other Value) bool {
	if v.kind != other.kind {
		return v.kind < other.kind
	}
	switch v.kind {
	case BoolKind:
		return !v.b && other.b
	case IntKind:
		return v.i < other.i
	default:
		return v.s < other.s
	}
}

func (v Value) String() string {
	switch v.kind {
	case BoolKind:
		return fmt.Sprintf("%t", v.b)
	case IntKind:
		return fmt.Sprintf("%d", v.i)
	default:
		return fmt.Sprintf("%q", v.s)
	}
}

func (Value) isTerm() {}

// VarID is the internal identifier of a variable: an epoch paired with a
// source-level name. Two variables with different epochs never clash
// regardless of name, which is how freshness is achieved across rule
// invocations.
type VarID struct {
	Epoch int
	Name  string
}

func (id VarID) String() string { return fmt.Sprintf("%s#%d", id.Name, id.Epoch) }

// Variable is a term that may be bound to a Value (or to another Variable)
// by a substitution.
type Variable struct {
	ID VarID
}

// Var constructs a Variable with the given epoch and name.
func Var(epoch int, name string) Variable { return Variable{VarID{epoch, name}} }

func (v Variable) String() string { return "?" + v.ID.String() }

func (Variable) isTerm() {}

// Term is either a Value or a Variable. There are no compound terms.
type Term interface {
	isTerm()
	fmt.Stringer
}

// Equal reports whether two terms have identical representation: same
// Value, or same Variable identifier. It does not chase substitutions;
// callers that need dereferenced equality should Walk first.
func Equal(a, b Term) bool {
	switch av := a.(type) {
	case Value:
		bv, ok := b.(Value)
		return ok && av.Equals(bv)
	case Variable:
		bv, ok := b.(Variable)
		return ok && av.ID == bv.ID
	default:
		return false
	}
}

// Mode is the per-argument direction declared for a native predicate. An In
// argument must be ground at call time; an Out argument may be unbound.
type Mode int

const (
	// In indicates the argument must be ground when the predicate is invoked.
	In Mode = iota
	// Out indicates the argument may be unbound when the predicate is invoked.
	Out
)

func (m Mode) String() string {
	if m == In {
		return "+"
	}
	return "-"
}

// PredKey names a predicate by its name and arity. Two predicates with the
// same name but different arity are distinct predicates.
type PredKey struct {
	Name  string
	Arity int
}

func (k PredKey) String() string { return fmt.Sprintf("%s/%d", k.Name, k.Arity) }

// Lit is a literal: a predicate applied to an ordered sequence of terms
// whose length equals the predicate's arity.
type Lit struct {
	Pred PredKey
	Args []Term
}

// NewLit constructs a Lit whose predicate arity is len(args), so the
// arity invariant holds by construction and NewLit never fails. Runtime
// arity mismatches between a query and a rule head are branch failures
// (see engine.Resolve).
func NewLit(name string, args ...Term) Lit {
	return Lit{Pred: PredKey{Name: name, Arity: len(args)}, Args: args}
}

func (l Lit) String() string {
	s := l.Pred.Name + "("
	for i, a := range l.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ")"
}

// ModedLit is the signature carried by a native predicate: a Lit with terms
// replaced by per-argument Modes.
type ModedLit struct {
	Pred  PredKey
	Modes []Mode
}

func (m ModedLit) String() string {
	s := m.Pred.Name + "("
	for i, mo := range m.Modes {
		if i > 0 {
			s += ", "
		}
		s += mo.String()
	}
	return s + ")"
}

// AssertionRef is the assn part of an `assn says lit` goal: either a Term
// (a principal value, ground by call time) or a NativeRef (a lexically
// distinguished native assertion name). Native references cannot be
// variables, so they are a distinct type rather than a Term variant.
type AssertionRef struct {
	// Principal is set when this is a principal reference; Native is the
	// empty string in that case.
	Principal Term
	// Native is set (non-empty) when this is a native reference; Principal
	// is nil in that case.
	Native string
}

// IsNative reports whether this reference names a native assertion.
func (r AssertionRef) IsNative() bool { return r.Native != "" }

func (r AssertionRef) String() string {
	if r.IsNative() {
		return ":" + r.Native
	}
	return r.Principal.String()
}

// Goal is a body literal: `assn says lit`, the unit of resolution.
type Goal struct {
	Assn AssertionRef
	Lit  Lit
}

func (g Goal) String() string { return g.Assn.String() + " says " + g.Lit.String() }

// Rule is `head :- body`. Head is over free (source-level, epoch-0 at parse
// time) variable names; body is an ordered sequence of goals resolved
// left to right within one rule instance.
type Rule struct {
	Head Lit
	Body []Goal
}

func (r Rule) String() string {
	s := r.Head.String() + " :- "
	for i, g := range r.Body {
		if i > 0 {
			s += ", "
		}
		s += g.String()
	}
	return s + "."
}
