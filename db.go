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

import "github.com/soutei-go/soutei/engine"

// NewDatabase returns an empty Database, ready for Install/InstallNative.
func NewDatabase() *Database {
	return engine.NewDatabase()
}

// Install compiles rules and installs them as principal's assertion,
// replacing whatever was installed under that name before.
func Install(db *Database, principal Value, rules []Rule) {
	db.InstallRuleAssertion(principal, engine.CompileRules(rules))
}

// Retract removes principal's rule assertion, if any.
func Retract(db *Database, principal Value) {
	db.RetractRuleAssertion(principal)
}

// InstallNative installs a pre-built native assertion (see package native's
// BuildDB) under name, replacing whatever was installed under that name
// before.
func InstallNative(db *Database, name string, nativeDB engine.NativeDB) {
	db.InstallNative(name, nativeDB)
}
