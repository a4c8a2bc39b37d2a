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

// Package token defines the source geometry shared by the ASTN tooling:
// locations, token ranges and the ordering used to relate an editor cursor
// to a token.
package token

import "fmt"

// Location is a point in a source document.
//
// A Location is valid if the line number is > 0.
type Location struct {
	Line     int // line number, starting at 1
	Column   int // column number, starting at 1 (byte count)
	Position int // offset, starting at 0
}

// IsValid reports whether the location is valid.
func (loc Location) IsValid() bool { return loc.Line > 0 }

// String returns loc in the form line:column, or - for an invalid location.
func (loc Location) String() string {
	if !loc.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", loc.Line, loc.Column)
}

// Size describes how far a token extends from its start. It is either
// a [SingleLine] or a [MultiLine].
type Size interface {
	sizeNode()
}

// SingleLine is the Size of a token that ends on the line it starts on.
type SingleLine struct {
	// ColumnOffset is the number of columns the token occupies.
	ColumnOffset int
}

// MultiLine is the Size of a token that spans several lines.
type MultiLine struct {
	// Column is the column just past the token on its last line.
	Column int
}

func (SingleLine) sizeNode() {}
func (MultiLine) sizeNode()  {}

// Range is the extent of a single token.
type Range struct {
	Start  Location
	Length int // in bytes
	Size   Size
}

// End returns the location just past the last byte of r.
// See [EndLocation].
func (r Range) End() Location { return EndLocation(r) }

func (r Range) String() string {
	return fmt.Sprintf("%v-%v", r.Start, r.End())
}

// EndLocation returns the location just past the last byte of r.
//
// For a multi-line range the returned line is the line the range starts
// on, not the line it ends on; only the column is taken from the size.
func EndLocation(r Range) Location {
	end := Location{
		Line:     r.Start.Line,
		Position: r.Start.Position + r.Length,
	}
	switch size := r.Size.(type) {
	case SingleLine:
		end.Column = r.Start.Column + size.ColumnOffset
	case MultiLine:
		end.Column = size.Column
	default:
		panic(fmt.Sprintf("unreachable: unknown range size %T", size))
	}
	return end
}

// Annotation is the metadata attached to each structural token of a
// document.
type Annotation struct {
	Text  string // source text of the token
	Range Range
}

func (a Annotation) String() string {
	return fmt.Sprintf("%q@%v", a.Text, a.Range)
}
