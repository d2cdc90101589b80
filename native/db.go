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
	"fmt"

	"go.uber.org/multierr"

	"github.com/soutei-go/soutei/engine"
)

// BuildDB assembles preds into a NativeDB, rejecting the database as a
// whole if any predicate's declared signature is internally inconsistent
// or collides with another predicate's key. These are construction
// errors: they prevent the native assertion from being installed at all,
// never a per-branch resolution failure.
func BuildDB(preds ...engine.NativePred) (engine.NativeDB, error) {
	db := make(engine.NativeDB, len(preds))
	var errs error
	for _, p := range preds {
		if len(p.Sig.Modes) != p.Sig.Pred.Arity {
			errs = multierr.Append(errs, fmt.Errorf(
				"native predicate %s: signature declares %d modes, arity is %d",
				p.Sig.Pred, len(p.Sig.Modes), p.Sig.Pred.Arity))
			continue
		}
		if _, dup := db[p.Sig.Pred]; dup {
			errs = multierr.Append(errs, fmt.Errorf(
				"native predicate %s: duplicate key", p.Sig.Pred))
			continue
		}
		db[p.Sig.Pred] = p
	}
	if errs != nil {
		return nil, errs
	}
	return db, nil
}
