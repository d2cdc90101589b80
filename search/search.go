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

// Package search implements the fair, bounded search monad that drives
// resolution: a lazy stream of (State, alternative) nodes scheduled by a
// round-robin queue so that no single recursive alternative can starve its
// siblings — the property a naive depth-first implementation lacks and
// left-recursive rules need.
package search

import "github.com/soutei-go/soutei/subst"

// State is the runtime state threaded through one branch of the search:
// the substitution built up so far, the next fresh epoch to hand out, and
// the read-only database the resolver consults. DB is opaque to this
// package (declared as any) so the search monad does not need to import
// the resolver's Database type — it only has to thread the field through
// unchanged, never interpret it. All three fields are immutable once
// captured by a branch — Env is persistent, Epoch and DB are copied by
// value/reference — so forking a branch at a choice point is simply
// copying this small struct; no explicit rollback is ever required.
type State struct {
	Env   *subst.Subst
	Epoch int
	DB    any
}

// Fresh returns a copy of s with the epoch counter advanced by one,
// handing back the epoch that was allocated. This is the per-invocation
// epoch bump described for rule compilation: called once per invocation of
// a rule group, never once per rule.
func (s State) Fresh() (State, int) {
	return State{Env: s.Env, Epoch: s.Epoch + 1, DB: s.DB}, s.Epoch
}

// Stream is a lazy, possibly infinite sequence of successful States
// interleaved with suspension points and host effects. It is a closed tagged
// union; construct values with Done, Answer, More, Choice, and Effect only.
type Stream interface {
	isStream()
}

type doneStream struct{}

func (doneStream) isStream() {}

// Done is the empty stream: no (further) answers on this branch.
func Done() Stream { return doneStream{} }

type answerStream struct {
	state State
	rest  Stream
}

func (answerStream) isStream() {}

// Answer prepends a successful state to the stream, with rest continuing to
// produce any further answers from the same branch (e.g. further facts
// matching the same call, or further alternatives after a disjunction).
func Answer(state State, rest Stream) Stream {
	return answerStream{state: state, rest: rest}
}

type moreStream struct {
	resume func() Stream
}

func (moreStream) isStream() {}

// More suspends computation behind a thunk. This is the stream-level
// rendition of a scheduler step: the resolver's mandatory yield at
// predicate dispatch, and any optional finer-grained yields, are expressed
// by wrapping the continuation in More.
func More(resume func() Stream) Stream {
	return moreStream{resume: resume}
}

type choiceStream struct {
	a, b Stream
}

func (choiceStream) isStream() {}

// Choice fairly interleaves two alternative streams. Use Disjoin to combine
// more than two.
func Choice(a, b Stream) Stream {
	return choiceStream{a: a, b: b}
}

// Disjoin combines zero or more streams with fair disjunction, in order.
func Disjoin(streams ...Stream) Stream {
	switch len(streams) {
	case 0:
		return Done()
	case 1:
		return streams[0]
	default:
		return Choice(streams[0], Disjoin(streams[1:]...))
	}
}

type effectStream struct {
	run  func() error
	next Stream
}

func (effectStream) isStream() {}

// Effect schedules a host-level side effect to run when the scheduler
// reaches this node, then continues as next. Effects on abandoned branches
// still run, in the order the scheduler visits them — there is no
// speculative rollback of I/O. A non-nil error from run fails the branch
// (next is not explored).
func Effect(run func() error, next Stream) Stream {
	return effectStream{run: run, next: next}
}

// Bind sequences a stream of States through a goal-continuation k, the way
// resolving one body literal feeds its solutions into resolving the next.
// Bind itself preserves fairness: it does not fully explore k's expansion
// of the first answer before considering the rest of s.
func Bind(s Stream, k func(State) Stream) Stream {
	switch n := s.(type) {
	case doneStream:
		return Done()
	case moreStream:
		return More(func() Stream { return Bind(n.resume(), k) })
	case answerStream:
		return Choice(k(n.state), More(func() Stream { return Bind(n.rest, k) }))
	case choiceStream:
		return Choice(Bind(n.a, k), Bind(n.b, k))
	case effectStream:
		return Effect(n.run, Bind(n.next, k))
	default:
		return Done()
	}
}

// Bounds are the two mandatory limits on a run: stepLimit bounds scheduler
// steps (each suspension counts one), answerLimit bounds answers produced.
type Bounds struct {
	StepLimit   int
	AnswerLimit int
}

// StoppedReason explains why Run stopped, for the diagnostic channel the
// spec recommends without mandating.
type StoppedReason string

const (
	// StoppedByAnswers means the answer limit was reached.
	StoppedByAnswers StoppedReason = "answers"
	// StoppedBySteps means the step limit was reached before the stream
	// was exhausted.
	StoppedBySteps StoppedReason = "steps"
	// StoppedByExhaustion means every branch ran to Done within bounds.
	StoppedByExhaustion StoppedReason = "exhausted"
)

// Run drives stream to completion (or to a bound), calling onAnswer for
// every successful State in the order the fair scheduler reaches them. It
// returns the reason it stopped and the number of scheduler steps (More
// resumptions) actually taken, for diagnostics. Both bounds are mandatory:
// the engine never supports unbounded runs. A round-robin FIFO of pending
// stream nodes realizes the fairness contract — a node popped from the
// front that forks (Choice) pushes both alternatives to the back, so no
// branch can monopolize the scheduler.
func Run(bounds Bounds, initial Stream, onAnswer func(State)) (StoppedReason, int) {
	if bounds.AnswerLimit <= 0 {
		return StoppedByAnswers, 0
	}
	if bounds.StepLimit <= 0 {
		return StoppedBySteps, 0
	}
	queue := []Stream{initial}
	steps := 0
	answers := 0
	for len(queue) > 0 {
		if steps >= bounds.StepLimit {
			return StoppedBySteps, steps
		}
		node := queue[0]
		queue = queue[1:]
		switch n := node.(type) {
		case doneStream:
			// Branch exhausted; nothing to requeue.
		case answerStream:
			onAnswer(n.state)
			answers++
			if answers >= bounds.AnswerLimit {
				return StoppedByAnswers, steps
			}
			queue = append(queue, n.rest)
		case moreStream:
			steps++
			queue = append(queue, n.resume())
		case choiceStream:
			queue = append(queue, n.a, n.b)
		case effectStream:
			if err := n.run(); err == nil {
				queue = append(queue, n.next)
			}
			// A failing effect fails this branch silently, the same as a
			// failed unification: no error is surfaced to the caller.
		}
	}
	return StoppedByExhaustion, steps
}
