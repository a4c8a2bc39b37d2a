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

// Package completion computes code completions for ASTN documents.
//
// A generator, created with [NewGenerator], accompanies a schema-aware
// walk over a document and reports, for every structural token, what
// could be inserted if the cursor were inside that token and what could
// be inserted if the cursor were after it. Both are [Suggestions]: they
// are computed only when asked for.
//
// A finder, created with [NewFinder], picks the single set of
// suggestions that applies to a cursor location.
package completion

import (
	"fmt"
	"slices"

	"astn.dev/go/astn/schema"
	"astn.dev/go/astn/token"
	"astn.dev/go/astn/typedtree"
	"astn.dev/go/internal/alternatives"
)

// Suggestions computes completion texts. A nil Suggestions has nothing to
// offer.
type Suggestions func() []string

// TokenFunc receives a token together with the suggestions that apply
// if the cursor is inside the token and if it is after it. Either may
// be nil.
type TokenFunc func(a token.Annotation, inToken, afterToken Suggestions)

// NewGenerator returns a handler that reports every token of the walked
// document to onToken and calls onEnd when the walk ends. Default string
// values are rendered with quote.
func NewGenerator(onToken TokenFunc, onEnd func(), quote schema.SerializeFunc) typedtree.Handler {
	g := &generator{
		onToken: onToken,
		onEnd:   onEnd,
		e:       &expander{quote: quote},
	}
	return g
}

type generator struct {
	onToken TokenFunc
	onEnd   func()
	e       *expander
}

func (g *generator) Root() typedtree.ValueHandler { return valueHandler{g} }
func (g *generator) End()                         { g.onEnd() }

// emit reports a token, if it is present in the document.
func (g *generator) emit(tok *token.Annotation, in, after Suggestions) {
	if tok == nil {
		return
	}
	g.onToken(*tok, in, after)
}

// expansion returns the suggestions for writing a complete value of
// definition v.
func (g *generator) expansion(v schema.ValueDefinition) Suggestions {
	return func() []string {
		tree := alternatives.New()
		g.e.full(v, tree.Root())
		return tree.Serialize()
	}
}

func names(list []string) Suggestions {
	return func() []string {
		return slices.Clone(list)
	}
}

type valueHandler struct {
	g *generator
}

func (h valueHandler) OnDictionary(d *typedtree.Dictionary) typedtree.DictionaryHandler {
	h.g.emit(d.Token, nil, nil)
	return dictionaryHandler{h.g, d.Definition}
}

func (h valueHandler) OnList(l *typedtree.List) typedtree.ListHandler {
	// Elements have no token of their own, so the opening bracket is
	// where a first element is proposed.
	h.g.emit(l.Token, nil, h.g.expansion(l.Definition.Value))
	return listHandler{h.g}
}

func (h valueHandler) OnTaggedUnion(u *typedtree.TaggedUnion) typedtree.TaggedUnionHandler {
	def := u.Definition
	h.g.emit(u.Token, nil, func() []string {
		tree := alternatives.New()
		h.g.e.taggedUnion(def, tree.Root())
		return tree.Serialize()
	})
	return taggedUnionHandler{h.g}
}

func (h valueHandler) OnSimpleString(s *typedtree.SimpleString) {
	def := s.Definition
	h.g.emit(s.Token, func() []string {
		return []string{h.g.e.quote(def.DefaultValue, def.Quoted)}
	}, nil)
}

func (h valueHandler) OnMultilineString(s *typedtree.MultilineString) {
	h.g.emit(s.Token, nil, nil)
}

func (h valueHandler) OnTypeReference(*typedtree.TypeReference) typedtree.ValueHandler {
	return valueHandler{h.g}
}

func (h valueHandler) OnGroup(grp *typedtree.Group) typedtree.GroupHandler {
	switch grp.Style {
	case typedtree.Mixin, typedtree.Omitted:
		return groupHandler{g: h.g}
	case typedtree.Verbose, typedtree.Shorthand:
		alts := h.g.expansion(grp.Definition)
		h.g.emit(grp.Token, nil, alts)
		return groupHandler{g: h.g, alternatives: alts}
	default:
		panic(fmt.Sprintf("unreachable: unknown group style %v", grp.Style))
	}
}

type dictionaryHandler struct {
	g   *generator
	def *schema.Dictionary
}

func (h dictionaryHandler) OnEntry(e *typedtree.Entry) typedtree.ValueHandler {
	h.g.emit(e.Token, nil, h.g.expansion(h.def.Value))
	return valueHandler{h.g}
}

func (h dictionaryHandler) OnClose(c *typedtree.Close) {
	h.g.emit(c.Token, nil, nil)
}

type listHandler struct {
	g *generator
}

func (h listHandler) OnElement() typedtree.ValueHandler {
	return valueHandler{h.g}
}

func (h listHandler) OnClose(c *typedtree.Close) {
	h.g.emit(c.Token, nil, nil)
}

type taggedUnionHandler struct {
	g *generator
}

func (h taggedUnionHandler) OnOption(o *typedtree.Option) typedtree.ValueHandler {
	h.g.emit(o.Token, nil, nil)
	return valueHandler{h.g}
}

func (h taggedUnionHandler) OnUnexpectedOption(o *typedtree.UnexpectedOption) {
	h.g.emit(&o.Token, names(o.ExpectedOptions), nil)
}

func (h taggedUnionHandler) OnEnd() {}

type groupHandler struct {
	g *generator

	// alternatives proposes the whole group; nil for mixin and omitted
	// groups.
	alternatives Suggestions
}

func (h groupHandler) OnProperty(p *typedtree.Property) typedtree.ValueHandler {
	h.g.emit(p.Token, nil, h.g.expansion(p.Definition.Value))
	return valueHandler{h.g}
}

func (h groupHandler) OnUnexpectedProperty(p *typedtree.UnexpectedProperty) {
	h.g.emit(&p.Token, names(p.ExpectedProperties), nil)
}

func (h groupHandler) OnClose(c *typedtree.Close) {
	h.g.emit(c.Token, h.alternatives, nil)
}
