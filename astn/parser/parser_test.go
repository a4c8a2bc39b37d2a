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

package parser_test

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"
	"github.com/rogpeppe/go-internal/txtar"

	"astn.dev/go/astn/parser"
	"astn.dev/go/astn/schema"
	"astn.dev/go/astn/token"
	"astn.dev/go/astn/typedtree"
)

// TestParse parses each .astn file in the testdata archives against the
// archive's schema.yaml and compares the reported events with the
// corresponding .out file.
func TestParse(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txtar")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Not(qt.HasLen(files, 0)))
	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".txtar"), func(t *testing.T) {
			a, err := txtar.ParseFile(file)
			qt.Assert(t, qt.IsNil(err))
			contents := map[string][]byte{}
			for _, f := range a.Files {
				contents[f.Name] = f.Data
			}
			s, err := schema.Parse("schema.yaml", contents["schema.yaml"])
			qt.Assert(t, qt.IsNil(err))

			for _, f := range a.Files {
				name, ok := strings.CutSuffix(f.Name, ".astn")
				if !ok {
					continue
				}
				t.Run(name, func(t *testing.T) {
					want, ok := contents[name+".out"]
					qt.Assert(t, qt.IsTrue(ok), qt.Commentf("missing %s.out", name))

					var b strings.Builder
					err := parser.Parse(f.Name, f.Data, s, &recorder{w: &b})
					if err != nil {
						fmt.Fprintf(&b, "error: %v\n", err)
					}
					if diff := cmp.Diff(string(want), b.String()); diff != "" {
						t.Errorf("unexpected events (-want +got):\n%s", diff)
					}
				})
			}
		})
	}
}

func TestParseEndCalledOnce(t *testing.T) {
	s, err := schema.Parse("s.yaml", []byte("root: s\ntypes:\n  s:\n    string: {}\n"))
	qt.Assert(t, qt.IsNil(err))
	for _, src := range []string{"x", "", "x y", `"x`} {
		var b strings.Builder
		parser.Parse("doc", []byte(src), s, &recorder{w: &b})
		qt.Check(t, qt.Equals(strings.Count(b.String(), "END\n"), 1), qt.Commentf("source %q", src))
	}
}

// recorder writes a line for every event it receives, indented by the
// nesting depth.
type recorder struct {
	w     *strings.Builder
	depth int
}

func (r *recorder) printf(format string, args ...interface{}) {
	r.w.WriteString(strings.Repeat("  ", r.depth))
	fmt.Fprintf(r.w, format, args...)
	r.w.WriteByte('\n')
}

func (r *recorder) child() *recorder {
	return &recorder{w: r.w, depth: r.depth + 1}
}

func tok(a *token.Annotation) string {
	if a == nil {
		return "-"
	}
	return fmt.Sprintf("%s@%v", a.Text, a.Range.Start)
}

func (r *recorder) Root() typedtree.ValueHandler { return r }
func (r *recorder) End()                         { r.printf("END") }

func (r *recorder) OnDictionary(e *typedtree.Dictionary) typedtree.DictionaryHandler {
	r.printf("dictionary %s", tok(e.Token))
	return r.child()
}

func (r *recorder) OnList(e *typedtree.List) typedtree.ListHandler {
	r.printf("list %s", tok(e.Token))
	return r.child()
}

func (r *recorder) OnTaggedUnion(e *typedtree.TaggedUnion) typedtree.TaggedUnionHandler {
	r.printf("union %s", tok(e.Token))
	return r.child()
}

func (r *recorder) OnSimpleString(e *typedtree.SimpleString) {
	r.printf("string %s %q", tok(e.Token), e.Value)
}

func (r *recorder) OnMultilineString(e *typedtree.MultilineString) {
	r.printf("multiline @%v %q", e.Token.Range.Start, e.Lines)
}

func (r *recorder) OnTypeReference(e *typedtree.TypeReference) typedtree.ValueHandler {
	r.printf("ref %s", e.Definition.Name)
	return r.child()
}

func (r *recorder) OnGroup(e *typedtree.Group) typedtree.GroupHandler {
	r.printf("group %v %s", e.Style, tok(e.Token))
	return r.child()
}

func (r *recorder) OnEntry(e *typedtree.Entry) typedtree.ValueHandler {
	r.printf("entry %s %s", tok(e.Token), e.Key)
	return r.child()
}

func (r *recorder) OnElement() typedtree.ValueHandler {
	r.printf("element")
	return r.child()
}

func (r *recorder) OnOption(e *typedtree.Option) typedtree.ValueHandler {
	r.printf("option %s %s", tok(e.Token), e.Name)
	return r.child()
}

func (r *recorder) OnUnexpectedOption(e *typedtree.UnexpectedOption) {
	r.printf("unexpected option %s %s %q", tok(&e.Token), e.Name, e.ExpectedOptions)
}

func (r *recorder) OnEnd() { r.printf("end") }

func (r *recorder) OnProperty(e *typedtree.Property) typedtree.ValueHandler {
	r.printf("property %s %s", tok(e.Token), e.Key)
	return r.child()
}

func (r *recorder) OnUnexpectedProperty(e *typedtree.UnexpectedProperty) {
	r.printf("unexpected property %s %s %q", tok(&e.Token), e.Key, e.ExpectedProperties)
}

func (r *recorder) OnClose(e *typedtree.Close) { r.printf("close %s", tok(e.Token)) }
