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
	"fmt"

	"astn.dev/go/astn/schema"
	"astn.dev/go/internal/alternatives"
)

// expander writes the text of a value definition into an alternatives
// tree.
//
// There are three renderings. The full rendering is used for a value the
// user is about to write: a group may then be written either verbose or
// shorthand. Inside a verbose group every nested value is verbose, and a
// tagged union takes its default option. Inside a shorthand group nested
// groups are written inline and every option of a tagged union is
// proposed.
type expander struct {
	quote schema.SerializeFunc
}

// Expand returns every text that can be inserted for a value of
// definition v.
func Expand(v schema.ValueDefinition, quote schema.SerializeFunc) []string {
	e := &expander{quote: quote}
	tree := alternatives.New()
	e.full(v, tree.Root())
	return tree.Serialize()
}

// common writes the renderings shared by all three modes. References are
// followed with recurse.
func (e *expander) common(v schema.ValueDefinition, seq *alternatives.Sequence, recurse func(schema.ValueDefinition, *alternatives.Sequence)) {
	switch v := v.(type) {
	case *schema.Dictionary:
		seq.Snippet(" { }")
	case *schema.List:
		seq.Snippet(" [ ]")
	case *schema.TypeReference:
		recurse(v.Resolve(), seq)
	case *schema.SimpleString:
		seq.Snippet(" " + e.quote(v.DefaultValue, v.Quoted))
	case *schema.MultilineString:
		seq.Snippet(" ``")
	default:
		panic(fmt.Sprintf("unreachable: unknown value definition %T", v))
	}
}

func (e *expander) full(v schema.ValueDefinition, seq *alternatives.Sequence) {
	switch v := v.(type) {
	case *schema.TaggedUnion:
		seq.Snippet(" |")
		e.taggedUnion(v, seq)
	case *schema.Group:
		br := seq.AddBranch()

		verbose := br.AddOption()
		verbose.Snippet(" (")
		e.verboseProperties(v, verbose)
		verbose.Snippet(")")

		shorthand := br.AddOption()
		shorthand.Snippet(" <")
		e.shorthandGroup(v, shorthand)
		shorthand.Snippet(" >")
	default:
		e.common(v, seq, e.full)
	}
}

// taggedUnion writes the default option of u followed by its value. The
// bar that introduces the union is not included.
func (e *expander) taggedUnion(u *schema.TaggedUnion, seq *alternatives.Sequence) {
	def := u.Default()
	seq.Snippet(" '" + def.Name + "'")
	e.full(def.Value, seq)
}

func (e *expander) verbose(v schema.ValueDefinition, seq *alternatives.Sequence) {
	switch v := v.(type) {
	case *schema.TaggedUnion:
		def := v.Default()
		seq.Snippet(" | '" + def.Name + "'")
		e.verbose(def.Value, seq)
	case *schema.Group:
		seq.Snippet(" (")
		e.verboseProperties(v, seq)
		seq.Snippet(")")
	default:
		e.common(v, seq, e.verbose)
	}
}

// verboseProperties writes one indented line per property of g. A group
// without properties is rendered as a single space.
func (e *expander) verboseProperties(g *schema.Group, seq *alternatives.Sequence) {
	seq.Indent(func(b *alternatives.Block) {
		for _, p := range g.Properties {
			line := b.AddLine()
			line.Snippet("'" + p.Key + "':")
			e.verbose(p.Value, line)
		}
	})
	if len(g.Properties) == 0 {
		seq.Snippet(" ")
	}
}

func (e *expander) shorthand(v schema.ValueDefinition, seq *alternatives.Sequence) {
	switch v := v.(type) {
	case *schema.TaggedUnion:
		br := seq.AddBranch()
		for _, o := range v.Options {
			opt := br.AddOption()
			opt.Snippet(" '" + o.Name + "'")
			e.shorthand(o.Value, opt)
		}
	case *schema.Group:
		e.shorthandGroup(v, seq)
	default:
		e.common(v, seq, e.shorthand)
	}
}

func (e *expander) shorthandGroup(g *schema.Group, seq *alternatives.Sequence) {
	for _, p := range g.Properties {
		e.shorthand(p.Value, seq)
	}
}
