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
	"github.com/soutei-go/soutei/engine"
	"github.com/soutei-go/soutei/search"
)

// StoppedBy explains which bound (if any) cut a Run short before the
// search space was exhausted.
type StoppedBy string

const (
	// StoppedByAnswers means the answer limit was reached.
	StoppedByAnswers StoppedBy = StoppedBy(search.StoppedByAnswers)
	// StoppedBySteps means the step limit was reached first.
	StoppedBySteps StoppedBy = StoppedBy(search.StoppedBySteps)
	// StoppedByExhaustion means every branch ran to completion within
	// bounds — there is nothing more to find.
	StoppedByExhaustion StoppedBy = StoppedBy(search.StoppedByExhaustion)
)

// Diagnostic is the result of a bounded run, reporting not just the
// answers found but which bound (if any) cut the search short, so a
// caller can distinguish "no answers because the query is false" from
// "no answers because the bounds were too tight to tell".
type Diagnostic struct {
	Answers   []Lit
	StepsUsed int
	StoppedBy StoppedBy
}

// RunDiagnostic is Run with the bound-exhaustion diagnostic attached.
func RunDiagnostic(stepLimit, answerLimit int, db *Database, goal Goal) (Diagnostic, error) {
	st := engine.NewState(db)
	var answers []Lit
	stopped, steps := search.Run(search.Bounds{StepLimit: stepLimit, AnswerLimit: answerLimit},
		search.More(func() search.Stream {
			return engine.Resolve(goal, st)
		}),
		func(s engine.State) {
			answers = append(answers, s.Env.WalkLit(goal.Lit))
		},
	)
	return Diagnostic{
		Answers:   answers,
		StepsUsed: steps,
		StoppedBy: StoppedBy(stopped),
	}, nil
}
