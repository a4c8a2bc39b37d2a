// Copyright 2025 CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package completion

import (
	"testing"

	"github.com/go-quicktest/qt"

	"astn.dev/go/astn/token"
)

func fixed(texts ...string) Suggestions {
	return func() []string { return texts }
}

// run returns the texts of s, or nil if s is nil.
func run(s Suggestions) []string {
	if s == nil {
		return nil
	}
	return s()
}

func TestStateAfterRemembersLatest(t *testing.T) {
	var s state
	var out Suggestions
	s, out = s.next(token.After, fixed("in1"), fixed("after1"))
	qt.Assert(t, qt.IsFalse(s.found))
	qt.Assert(t, qt.IsNil(out))
	qt.Assert(t, qt.DeepEquals(run(s.lastAfter), []string{"after1"}))

	// A token without after-token suggestions replaces the candidate.
	s, _ = s.next(token.After, nil, nil)
	qt.Assert(t, qt.IsNil(s.lastAfter))

	s, _ = s.next(token.After, nil, fixed("after3"))
	qt.Assert(t, qt.DeepEquals(run(s.end()), []string{"after3"}))
}

func TestStateBeforeDeliversLastAfter(t *testing.T) {
	s, _ := state{}.next(token.After, nil, fixed("after"))
	s, out := s.next(token.Before, fixed("in"), fixed("other"))
	qt.Assert(t, qt.IsTrue(s.found))
	qt.Assert(t, qt.DeepEquals(run(out), []string{"after"}))
	qt.Assert(t, qt.IsNil(s.end()))
}

func TestStateInsideDeliversIn(t *testing.T) {
	s, _ := state{}.next(token.After, nil, fixed("after"))
	s, out := s.next(token.Inside, fixed("in"), fixed("other"))
	qt.Assert(t, qt.IsTrue(s.found))
	qt.Assert(t, qt.DeepEquals(run(out), []string{"in"}))
}

func TestStateFoundIsPermanent(t *testing.T) {
	s, _ := state{}.next(token.Inside, nil, nil)
	qt.Assert(t, qt.IsTrue(s.found))
	for _, p := range []token.Placement{token.Before, token.Inside, token.After} {
		var out Suggestions
		s, out = s.next(p, fixed("in"), fixed("after"))
		qt.Assert(t, qt.IsTrue(s.found))
		qt.Assert(t, qt.IsNil(out))
	}
	qt.Assert(t, qt.IsNil(s.end()))
}

func TestStateEmpty(t *testing.T) {
	qt.Assert(t, qt.IsNil(state{}.end()))
	s, out := state{}.next(token.Before, fixed("in"), fixed("after"))
	qt.Assert(t, qt.IsTrue(s.found))
	qt.Assert(t, qt.IsNil(out))
}

func TestStateUnknownPlacement(t *testing.T) {
	qt.Assert(t, qt.PanicMatches(func() {
		state{}.next(token.Placement(7), nil, nil)
	}, `unreachable: unknown placement Placement\(7\)`))
}
