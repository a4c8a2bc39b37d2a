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

package token

import "fmt"

// Cursor is the location of an editor caret. Only line and column are
// taken into account when comparing it with a [Location]; the absolute
// position is ignored.
type Cursor struct {
	Line   int
	Column int
}

func (c Cursor) String() string {
	return fmt.Sprintf("%d:%d", c.Line, c.Column)
}

// Before reports whether c lies strictly before loc.
func (c Cursor) Before(loc Location) bool {
	return c.Line < loc.Line || (c.Line == loc.Line && c.Column < loc.Column)
}

// Placement relates a cursor to a token range.
type Placement int

const (
	// Before means the cursor lies before the start of the token.
	Before Placement = iota // before

	// Inside means the cursor lies at or after the start of the token and
	// before its end.
	Inside // inside

	// After means the cursor lies at or after the end of the token.
	After // after
)

var placementNames = [...]string{
	Before: "before",
	Inside: "inside",
	After:  "after",
}

func (p Placement) String() string {
	if p < 0 || int(p) >= len(placementNames) {
		return fmt.Sprintf("Placement(%d)", int(p))
	}
	return placementNames[p]
}

// Classify reports where c lies relative to r.
func (c Cursor) Classify(r Range) Placement {
	switch {
	case c.Before(r.Start):
		return Before
	case c.Before(EndLocation(r)):
		return Inside
	default:
		return After
	}
}
