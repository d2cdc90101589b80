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
	"fmt"

	"bitbucket.org/creachadair/stringset"
)

// PredicateSet is a deduplicated, sorted view of every predicate key
// installed in a Database, for setup diagnostics and logging (e.g. "does
// this database define edge/2 before we query path/2 against it").
type PredicateSet struct {
	set stringset.Set
}

// NewPredicateSet summarizes db's installed predicates.
func NewPredicateSet(db *Database) PredicateSet {
	s := stringset.New()
	for _, k := range db.Predicates() {
		s.Add(k.String())
	}
	return PredicateSet{set: s}
}

// Has reports whether name/arity is installed in the database this set
// was built from.
func (ps PredicateSet) Has(name string, arity int) bool {
	return ps.set.Contains(fmt.Sprintf("%s/%d", name, arity))
}

// Elements lists every predicate key as "name/arity", sorted.
func (ps PredicateSet) Elements() []string {
	return ps.set.Elements()
}

// Len reports how many distinct predicate keys are in the set.
func (ps PredicateSet) Len() int {
	return ps.set.Len()
}
