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

package hover

import (
	"astn.dev/go/astn/parser"
	"astn.dev/go/astn/schema"
	"astn.dev/go/astn/token"
	"astn.dev/go/astn/typedtree"
)

// NewFinder returns a handler that delivers to onHoverText the hover
// text of every token that contains the cursor at line and column.
func NewFinder(line, column int, onHoverText func(string)) typedtree.Handler {
	cursor := token.Cursor{Line: line, Column: column}
	return NewGenerator(func(a token.Annotation, text func() string) {
		if text != nil && cursor.Classify(a.Range) == token.Inside {
			onHoverText(text())
		}
	}, func() {})
}

// Find returns the hover texts for a cursor at line and column of the
// document src, read according to schema s. As with completions, the
// texts found before an error stopped the reading are returned with it.
func Find(filename string, src []byte, s *schema.Schema, line, column int) ([]string, error) {
	var texts []string
	h := NewFinder(line, column, func(text string) {
		texts = append(texts, text)
	})
	err := parser.Parse(filename, src, s, h)
	return texts, err
}
