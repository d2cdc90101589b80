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

import (
	"errors"
	"testing"

	"github.com/soutei-go/soutei/engine"
	"github.com/soutei-go/soutei/search"
	"github.com/soutei-go/soutei/term"
)

func TestFuncValueSchema(t *testing.T) {
	add := Func("add", []Decoder{AsInt, AsInt}, Value(), func(ins []any) (any, error) {
		return term.Int(ins[0].(int64) + ins[1].(int64)), nil
	})
	db := engine.NewDatabase()
	ndb, err := BuildDB(add)
	if err != nil {
		t.Fatalf("BuildDB: %v", err)
	}
	db.InstallNative("math", ndb)

	st := engine.NewState(db)
	out := term.Var(0, "z")
	call := term.NewLit("add", term.Int(2), term.Int(3), out)
	var results []term.Lit
	stream := ndb[term.PredKey{Name: "add", Arity: 3}].Eval(call, st)
	search.Run(search.Bounds{StepLimit: 100, AnswerLimit: 10}, stream, func(s search.State) {
		results = append(results, s.Env.WalkLit(call))
	})
	if len(results) != 1 {
		t.Fatalf("expected 1 answer, got %d", len(results))
	}
	v, ok := results[0].Args[2].(term.Value)
	if !ok {
		t.Fatalf("third arg not ground: %v", results[0])
	}
	n, _ := v.AsInt()
	if n != 5 {
		t.Errorf("add(2,3,Z) = %d, want 5", n)
	}
}

func TestFuncBoolSchemaGatesSuccess(t *testing.T) {
	isPositive := Func("positive", []Decoder{AsInt}, BoolSchema(), func(ins []any) (any, error) {
		return ins[0].(int64) > 0, nil
	})
	ndb, err := BuildDB(isPositive)
	if err != nil {
		t.Fatalf("BuildDB: %v", err)
	}
	db := engine.NewDatabase()
	db.InstallNative("math", ndb)
	st := engine.NewState(db)

	ok := ndb[term.PredKey{Name: "positive", Arity: 1}].Eval(term.NewLit("positive", term.Int(5)), st)
	var gotOK []term.Lit
	search.Run(search.Bounds{StepLimit: 10, AnswerLimit: 10}, ok, func(s search.State) { gotOK = append(gotOK, term.Lit{}) })
	if len(gotOK) != 1 {
		t.Errorf("positive(5) should succeed once, got %d", len(gotOK))
	}

	fail := ndb[term.PredKey{Name: "positive", Arity: 1}].Eval(term.NewLit("positive", term.Int(-5)), st)
	var gotFail []term.Lit
	search.Run(search.Bounds{StepLimit: 10, AnswerLimit: 10}, fail, func(s search.State) { gotFail = append(gotFail, term.Lit{}) })
	if len(gotFail) != 0 {
		t.Errorf("positive(-5) should fail, got %d answers", len(gotFail))
	}
}

func TestFuncListSchemaIsNondeterministicChoice(t *testing.T) {
	members := Func("member_of_abc", nil, List(Value()), func(ins []any) (any, error) {
		return []any{term.String("a"), term.String("b"), term.String("c")}, nil
	})
	ndb, err := BuildDB(members)
	if err != nil {
		t.Fatalf("BuildDB: %v", err)
	}
	db := engine.NewDatabase()
	db.InstallNative("set", ndb)
	st := engine.NewState(db)

	out := term.Var(0, "m")
	call := term.NewLit("member_of_abc", out)
	stream := ndb[term.PredKey{Name: "member_of_abc", Arity: 1}].Eval(call, st)
	var got []string
	search.Run(search.Bounds{StepLimit: 100, AnswerLimit: 10}, stream, func(s search.State) {
		v := s.Env.Walk(out).(term.Value)
		str, _ := v.AsString()
		got = append(got, str)
	})
	if len(got) != 3 {
		t.Fatalf("expected 3 solutions, got %v", got)
	}
}

func TestFuncOptionSchemaZeroOrOne(t *testing.T) {
	found := Func("lookup_found", nil, Option(Value()), func(ins []any) (any, error) {
		return Opt{Ok: true, Val: term.Int(42)}, nil
	})
	notFound := Func("lookup_missing", nil, Option(Value()), func(ins []any) (any, error) {
		return Opt{Ok: false}, nil
	})
	ndb, err := BuildDB(found, notFound)
	if err != nil {
		t.Fatalf("BuildDB: %v", err)
	}
	db := engine.NewDatabase()
	db.InstallNative("lookup", ndb)
	st := engine.NewState(db)

	out := term.Var(0, "v")
	foundStream := ndb[term.PredKey{Name: "lookup_found", Arity: 1}].Eval(term.NewLit("lookup_found", out), st)
	var gotFound int
	search.Run(search.Bounds{StepLimit: 10, AnswerLimit: 10}, foundStream, func(s search.State) { gotFound++ })
	if gotFound != 1 {
		t.Errorf("Option(present) should yield exactly 1 answer, got %d", gotFound)
	}

	missingStream := ndb[term.PredKey{Name: "lookup_missing", Arity: 1}].Eval(term.NewLit("lookup_missing", out), st)
	var gotMissing int
	search.Run(search.Bounds{StepLimit: 10, AnswerLimit: 10}, missingStream, func(s search.State) { gotMissing++ })
	if gotMissing != 0 {
		t.Errorf("Option(absent) should yield 0 answers, got %d", gotMissing)
	}
}

func TestEffectfulFuncRunsHostCallThroughEffect(t *testing.T) {
	var ran bool
	write := EffectfulFunc("write_once", []Decoder{AsString}, Unit(), func(ins []any) (any, error) {
		ran = true
		return nil, nil
	})
	ndb, err := BuildDB(write)
	if err != nil {
		t.Fatalf("BuildDB: %v", err)
	}
	db := engine.NewDatabase()
	db.InstallNative("io", ndb)
	st := engine.NewState(db)

	stream := ndb[term.PredKey{Name: "write_once", Arity: 1}].Eval(term.NewLit("write_once", term.String("hello")), st)
	if ran {
		t.Fatalf("host call ran before the scheduler visited the Effect node")
	}
	var answers int
	search.Run(search.Bounds{StepLimit: 10, AnswerLimit: 10}, stream, func(s search.State) { answers++ })
	if !ran {
		t.Errorf("host call never ran")
	}
	if answers != 1 {
		t.Errorf("expected 1 answer after the effect, got %d", answers)
	}
}

func TestEffectfulFuncErrorFailsBranch(t *testing.T) {
	boom := EffectfulFunc("boom", nil, Unit(), func(ins []any) (any, error) {
		return nil, errors.New("boom")
	})
	ndb, err := BuildDB(boom)
	if err != nil {
		t.Fatalf("BuildDB: %v", err)
	}
	db := engine.NewDatabase()
	db.InstallNative("io", ndb)
	st := engine.NewState(db)
	stream := ndb[term.PredKey{Name: "boom", Arity: 0}].Eval(term.NewLit("boom"), st)
	var answers int
	search.Run(search.Bounds{StepLimit: 10, AnswerLimit: 10}, stream, func(s search.State) { answers++ })
	if answers != 0 {
		t.Errorf("a failing effect must not produce an answer, got %d", answers)
	}
}

func TestFact(t *testing.T) {
	f := Fact("const_answer", term.NewLit("const_answer", term.Int(7)))
	ndb, err := BuildDB(f)
	if err != nil {
		t.Fatalf("BuildDB: %v", err)
	}
	db := engine.NewDatabase()
	db.InstallNative("consts", ndb)
	st := engine.NewState(db)
	out := term.Var(0, "x")
	stream := ndb[term.PredKey{Name: "const_answer", Arity: 1}].Eval(term.NewLit("const_answer", out), st)
	var got int64
	var n int
	search.Run(search.Bounds{StepLimit: 10, AnswerLimit: 10}, stream, func(s search.State) {
		n++
		v := s.Env.Walk(out).(term.Value)
		got, _ = v.AsInt()
	})
	if n != 1 || got != 7 {
		t.Errorf("Fact predicate produced n=%d got=%d, want 1 and 7", n, got)
	}
}

func TestBuildDBRejectsDuplicateKey(t *testing.T) {
	a := Func("dup", nil, Unit(), func(ins []any) (any, error) { return nil, nil })
	b := Func("dup", nil, Unit(), func(ins []any) (any, error) { return nil, nil })
	if _, err := BuildDB(a, b); err == nil {
		t.Errorf("expected a duplicate-key construction error")
	}
}

func TestBuildDBRejectsArityMismatch(t *testing.T) {
	bad := engine.NativePred{
		Sig:  term.ModedLit{Pred: term.PredKey{Name: "bad", Arity: 2}, Modes: []term.Mode{term.In}},
		Eval: func(term.Lit, engine.State) engine.Stream { return search.Done() },
	}
	if _, err := BuildDB(bad); err == nil {
		t.Errorf("expected a signature/arity construction error")
	}
}
