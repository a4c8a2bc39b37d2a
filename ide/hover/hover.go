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

// Package hover computes hover texts for ASTN documents.
//
// The hover text of a token is the key of the group property whose value
// the token opens or closes. Tokens nested deeper, such as the entries of
// a dictionary held by a property, have no hover text.
package hover

import (
	"fmt"

	"astn.dev/go/astn/token"
	"astn.dev/go/astn/typedtree"
)

// TokenFunc receives a token together with a function computing its
// hover text. The function is nil if the token has no hover text.
type TokenFunc func(a token.Annotation, text func() string)

// NewGenerator returns a handler that reports every token of the walked
// document to onToken and calls onEnd when the walk ends.
func NewGenerator(onToken TokenFunc, onEnd func()) typedtree.Handler {
	return &generator{onToken: onToken, onEnd: onEnd}
}

type generator struct {
	onToken TokenFunc
	onEnd   func()
}

func (g *generator) Root() typedtree.ValueHandler { return valueHandler{g: g} }
func (g *generator) End()                         { g.onEnd() }

// valueHandler labels the tokens of a single value. label is nil if the
// value is not held by a group property.
type valueHandler struct {
	g     *generator
	label *string
}

func (h valueHandler) emit(tok *token.Annotation) {
	if tok == nil {
		return
	}
	var text func() string
	if h.label != nil {
		label := *h.label
		text = func() string { return label }
	}
	h.g.onToken(*tok, text)
}

// unlabelled returns a handler for the children of the value.
func (h valueHandler) unlabelled() valueHandler {
	return valueHandler{g: h.g}
}

func (h valueHandler) OnDictionary(d *typedtree.Dictionary) typedtree.DictionaryHandler {
	h.emit(d.Token)
	return containerHandler{h}
}

func (h valueHandler) OnList(l *typedtree.List) typedtree.ListHandler {
	h.emit(l.Token)
	return containerHandler{h}
}

func (h valueHandler) OnTaggedUnion(u *typedtree.TaggedUnion) typedtree.TaggedUnionHandler {
	h.emit(u.Token)
	return containerHandler{h}
}

func (h valueHandler) OnSimpleString(s *typedtree.SimpleString)       { h.emit(s.Token) }
func (h valueHandler) OnMultilineString(s *typedtree.MultilineString) { h.emit(s.Token) }

// OnTypeReference keeps the label: a reference has no token of its own.
func (h valueHandler) OnTypeReference(*typedtree.TypeReference) typedtree.ValueHandler {
	return h
}

func (h valueHandler) OnGroup(grp *typedtree.Group) typedtree.GroupHandler {
	switch grp.Style {
	case typedtree.Mixin, typedtree.Omitted:
		return groupHandler{h.unlabelled()}
	case typedtree.Verbose, typedtree.Shorthand:
		h.emit(grp.Token)
		return groupHandler{h}
	default:
		panic(fmt.Sprintf("unreachable: unknown group style %v", grp.Style))
	}
}

// containerHandler handles the contents of dictionaries, lists and
// tagged unions. Its closing token and option token share the label of
// the opening token.
type containerHandler struct {
	value valueHandler
}

func (h containerHandler) OnEntry(e *typedtree.Entry) typedtree.ValueHandler {
	v := h.value.unlabelled()
	v.emit(e.Token)
	return v
}

func (h containerHandler) OnElement() typedtree.ValueHandler {
	return h.value.unlabelled()
}

func (h containerHandler) OnOption(o *typedtree.Option) typedtree.ValueHandler {
	h.value.emit(o.Token)
	return h.value.unlabelled()
}

func (h containerHandler) OnUnexpectedOption(o *typedtree.UnexpectedOption) {
	h.value.unlabelled().emit(&o.Token)
}

func (h containerHandler) OnEnd() {}

func (h containerHandler) OnClose(c *typedtree.Close) {
	h.value.emit(c.Token)
}

// groupHandler handles the properties of a group. Its value handler
// labels the group's own closing token; it is unlabelled for mixin and
// omitted groups.
type groupHandler struct {
	value valueHandler
}

// OnProperty reports the key without a hover text and labels the
// property's value with the key.
func (h groupHandler) OnProperty(p *typedtree.Property) typedtree.ValueHandler {
	h.value.unlabelled().emit(p.Token)
	key := p.Key
	return valueHandler{g: h.value.g, label: &key}
}

func (h groupHandler) OnUnexpectedProperty(p *typedtree.UnexpectedProperty) {
	h.value.unlabelled().emit(&p.Token)
}

func (h groupHandler) OnClose(c *typedtree.Close) {
	h.value.emit(c.Token)
}
