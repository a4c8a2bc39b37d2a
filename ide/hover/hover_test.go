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

package hover_test

import (
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"

	"astn.dev/go/astn/parser"
	"astn.dev/go/astn/schema"
	"astn.dev/go/astn/token"
	"astn.dev/go/ide/hover"
)

const testSchema = `
root: doc
types:
  doc:
    group:
      name: {string: {}}
      count: {dictionary: {string: {}}}
      items: {list: {ref: item}}
      mode:
        union:
          options:
            on: {string: {}}
            off: {group: {}}
      pos: {ref: point}
  item:
    group:
      label: {string: {}}
  point:
    group:
      x: {string: {}}
      y: {string: {}}
`

func mustSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.Parse("schema.yaml", []byte(testSchema))
	qt.Assert(t, qt.IsNil(err))
	return s
}

const doc = `( 'name': n 'count': { 'k': v } 'items': [ ( 'label': l ) ] 'mode': | 'on' o 'pos': < 1 2 > )`

func TestFind(t *testing.T) {
	s := mustSchema(t)
	tests := []struct {
		name   string
		column int
		want   []string
	}{{
		name:   "RootGroupOpen",
		column: 1,
	}, {
		name:   "PropertyKey",
		column: 4,
	}, {
		name:   "String",
		column: 11,
		want:   []string{"name"},
	}, {
		name:   "DictionaryOpen",
		column: 22,
		want:   []string{"count"},
	}, {
		name:   "DictionaryEntry",
		column: 24,
	}, {
		name:   "DictionaryValue",
		column: 29,
	}, {
		name:   "DictionaryClose",
		column: 31,
		want:   []string{"count"},
	}, {
		name:   "ListOpen",
		column: 42,
		want:   []string{"items"},
	}, {
		name:   "NestedGroupValue",
		column: 55,
		want:   []string{"label"},
	}, {
		name:   "NestedGroupOpen",
		column: 44,
	}, {
		name:   "ListClose",
		column: 59,
		want:   []string{"items"},
	}, {
		name:   "UnionBar",
		column: 69,
		want:   []string{"mode"},
	}, {
		name:   "UnionOption",
		column: 72,
		want:   []string{"mode"},
	}, {
		name:   "OptionValue",
		column: 76,
	}, {
		name:   "ReferencedGroupOpen",
		column: 85,
		want:   []string{"pos"},
	}, {
		name:   "ShorthandValue",
		column: 87,
		want:   []string{"x"},
	}, {
		name:   "ShorthandSecondValue",
		column: 89,
		want:   []string{"y"},
	}, {
		name:   "ShorthandClose",
		column: 91,
		want:   []string{"pos"},
	}, {
		name:   "Space",
		column: 21,
	}}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := hover.Find("doc.astn", []byte(doc), s, 1, tc.column)
			qt.Assert(t, qt.IsNil(err))
			qt.Assert(t, qt.DeepEquals(got, tc.want))
		})
	}
}

func TestFindIncomplete(t *testing.T) {
	s := mustSchema(t)
	got, err := hover.Find("doc.astn", []byte(`( 'count': {`), s, 1, 12)
	qt.Assert(t, qt.ErrorMatches(err, `doc.astn:1:13: unexpected end of document`))
	qt.Assert(t, qt.DeepEquals(got, []string{"count"}))
}

func TestGenerator(t *testing.T) {
	s := mustSchema(t)
	type event struct {
		Text  string
		Label string
	}
	var events []event
	ended := 0
	h := hover.NewGenerator(func(a token.Annotation, text func() string) {
		e := event{Text: a.Text, Label: "-"}
		if text != nil {
			e.Label = text()
		}
		events = append(events, e)
	}, func() { ended++ })
	err := parser.Parse("doc.astn", []byte(`( 'bad': x 'mode': | 'on' o 'pos': < 1 2 > )`), s, h)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(ended, 1))

	want := []event{
		{"(", "-"},
		{"'bad'", "-"},
		{"'mode'", "-"},
		{"|", "mode"},
		{"'on'", "mode"},
		{"o", "-"},
		{"'pos'", "-"},
		{"<", "pos"},
		{"1", "x"},
		{"2", "y"},
		{">", "pos"},
		{")", "-"},
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("unexpected tokens (-want +got):\n%s", diff)
	}
}
