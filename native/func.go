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
	"github.com/soutei-go/soutei/engine"
	"github.com/soutei-go/soutei/search"
	"github.com/soutei-go/soutei/term"
)

// Call is a host function lifted to a native predicate: ins holds one
// decoded host value per leading (In) argument, in declared order.
type Call func(ins []any) (any, error)

// Func lifts call to a native predicate named name, with decoders
// describing its leading In arguments and out describing how its return
// value maps onto its trailing Out arguments. call runs synchronously,
// in-line with the resolver — use EffectfulFunc for a call that performs
// host I/O and must be sequenced through the search monad's effect node
// instead.
func Func(name string, decoders []Decoder, out Schema, call Call) engine.NativePred {
	return build(name, decoders, out, call, false)
}

// EffectfulFunc is Func for a call with host side effects: its invocation
// is wrapped in search.Effect so the scheduler runs it (and commits to its
// result) exactly once, in visitation order, with no speculative rollback.
func EffectfulFunc(name string, decoders []Decoder, out Schema, call Call) engine.NativePred {
	return build(name, decoders, out, call, true)
}

func build(name string, decoders []Decoder, out Schema, call Call, effectful bool) engine.NativePred {
	arity := len(decoders) + out.Arity()
	modes := make([]term.Mode, 0, arity)
	for range decoders {
		modes = append(modes, term.In)
	}
	modes = append(modes, out.Modes()...)
	sig := term.ModedLit{Pred: term.PredKey{Name: name, Arity: arity}, Modes: modes}

	eval := func(callLit term.Lit, st engine.State) engine.Stream {
		if len(callLit.Args) != arity {
			return search.Done()
		}
		inputArgs := callLit.Args[:len(decoders)]
		outputArgs := callLit.Args[len(decoders):]
		ins := make([]any, len(decoders))
		for i, d := range decoders {
			walked := st.Env.Walk(inputArgs[i])
			v, ok := walked.(term.Value)
			if !ok {
				return search.Done()
			}
			dv, ok := d(v)
			if !ok {
				return search.Done()
			}
			ins[i] = dv
		}
		if !effectful {
			result, err := call(ins)
			if err != nil {
				return search.Done()
			}
			return out.Unify(result, outputArgs, st)
		}
		var result any
		var callErr error
		return search.Effect(func() error {
			result, callErr = call(ins)
			return callErr
		}, search.More(func() search.Stream {
			return out.Unify(result, outputArgs, st)
		}))
	}
	return engine.NativePred{Sig: sig, Eval: eval}
}

// Fact lifts a fixed literal to a native predicate: calling it simply
// unifies the caller's arguments against lit's, with no host call at all.
// Every argument position is declared Out, since a fixed literal can
// equally well bind an unbound caller argument or check a ground one.
func Fact(name string, lit term.Lit) engine.NativePred {
	modes := make([]term.Mode, len(lit.Args))
	for i := range modes {
		modes[i] = term.Out
	}
	sig := term.ModedLit{Pred: term.PredKey{Name: name, Arity: len(lit.Args)}, Modes: modes}
	eval := func(call term.Lit, st engine.State) engine.Stream {
		env, ok := st.Env.UnifyArgs(call.Args, lit.Args)
		if !ok {
			return search.Done()
		}
		return search.Answer(engine.State{Env: env, Epoch: st.Epoch, DB: st.DB}, search.Done())
	}
	return engine.NativePred{Sig: sig, Eval: eval}
}
