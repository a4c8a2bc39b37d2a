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

// Package parser reads ASTN documents according to a schema and reports
// their values to a [typedtree.Handler].
//
// The syntax understood is:
//
//	( 'key': value ... )   verbose group
//	< value ... >          shorthand group
//	{ 'key': value ... }   dictionary
//	[ value ... ]          list
//	| 'option' value       tagged union
//	"text" or text         string
//	`text`                 multiline string
//
// Inside a shorthand group, nested groups are written inline, without
// brackets, and tagged unions are written without the bar. A shorthand
// group may be closed before all its properties are given.
//
// Commas are treated as white space and // starts a comment that runs to
// the end of the line.
package parser // import "astn.dev/go/astn/parser"

import (
	"fmt"

	"astn.dev/go/astn/errors"
	"astn.dev/go/astn/scanner"
	"astn.dev/go/astn/schema"
	"astn.dev/go/astn/token"
	"astn.dev/go/astn/typedtree"
)

// Parse reads the document src according to schema s and reports its
// values, in document order, to h.
//
// Parse stops at the first error. The events up to that point have been
// delivered, and h.End is called in any case.
func Parse(filename string, src []byte, s *schema.Schema, h typedtree.Handler) (err error) {
	p := &parser{
		filename: filename,
		sc:       scanner.New(filename, src),
	}
	defer h.End()
	defer func() {
		switch r := recover().(type) {
		case nil:
		case bailout:
			err = r.err
		default:
			panic(r)
		}
	}()

	p.next()
	p.value(s.Root.Value, h.Root(), normal)
	if p.tok.Kind != scanner.EOF {
		p.errf("unexpected %v after document", p.tok)
	}
	return nil
}

// bailout is used to abandon parsing at the first error.
type bailout struct {
	err error
}

// mode describes the surroundings of a value.
type mode int

const (
	normal    mode = iota
	shorthand      // directly within a shorthand group
)

type parser struct {
	filename string
	sc       *scanner.Scanner
	tok      scanner.Token
}

func (p *parser) next() {
	tok, err := p.sc.Scan()
	if err != nil {
		panic(bailout{err})
	}
	p.tok = tok
}

func (p *parser) errf(format string, args ...interface{}) {
	if p.is(scanner.EOF) {
		format, args = "unexpected end of document", nil
	}
	panic(bailout{errors.Newf(p.filename, p.tok.Range.Start, format, args...)})
}

func (p *parser) is(k scanner.Kind) bool {
	return p.tok.Kind == k
}

// expect consumes a token of kind k and returns its annotation.
func (p *parser) expect(k scanner.Kind) *token.Annotation {
	if !p.is(k) {
		p.errf("expected %v, found %v", k, p.tok)
	}
	a := p.tok.Annotation()
	p.next()
	return a
}

// isName reports whether the current token can name a key or an option.
func (p *parser) isName() bool {
	return p.is(scanner.Apostrophed) || p.is(scanner.Quoted) || p.is(scanner.Word)
}

func (p *parser) value(def schema.ValueDefinition, h typedtree.ValueHandler, m mode) {
	switch def := def.(type) {
	case *schema.TypeReference:
		p.value(def.Resolve(), h.OnTypeReference(&typedtree.TypeReference{Definition: def}), m)
	case *schema.Dictionary:
		p.dictionary(def, h)
	case *schema.List:
		p.list(def, h)
	case *schema.TaggedUnion:
		p.taggedUnion(def, h, m)
	case *schema.SimpleString:
		if !p.is(scanner.Quoted) && !p.is(scanner.Word) {
			p.errf("expected string, found %v", p.tok)
		}
		h.OnSimpleString(&typedtree.SimpleString{
			Token:      p.tok.Annotation(),
			Value:      p.tok.Value,
			Definition: def,
		})
		p.next()
	case *schema.MultilineString:
		if !p.is(scanner.Multiline) {
			p.errf("expected multiline string, found %v", p.tok)
		}
		h.OnMultilineString(&typedtree.MultilineString{
			Token:      p.tok.Annotation(),
			Lines:      splitLines(p.tok.Value),
			Definition: def,
		})
		p.next()
	case *schema.Group:
		switch {
		case m == shorthand:
			p.mixin(def, h)
		case p.is(scanner.OpenParen):
			p.verboseGroup(def, h)
		case p.is(scanner.OpenAngle):
			p.shorthandGroup(def, h)
		default:
			p.errf("expected group, found %v", p.tok)
		}
	default:
		panic(fmt.Sprintf("unreachable: value definition %T", def))
	}
}

func (p *parser) dictionary(def *schema.Dictionary, h typedtree.ValueHandler) {
	dh := h.OnDictionary(&typedtree.Dictionary{
		Token:      p.expect(scanner.OpenBrace),
		Definition: def,
	})
	for !p.is(scanner.CloseBrace) {
		if !p.isName() {
			p.errf("expected key or }, found %v", p.tok)
		}
		vh := dh.OnEntry(&typedtree.Entry{Token: p.tok.Annotation(), Key: p.tok.Value})
		p.next()
		p.expect(scanner.Colon)
		p.value(def.Value, vh, normal)
	}
	dh.OnClose(&typedtree.Close{Token: p.expect(scanner.CloseBrace)})
}

func (p *parser) list(def *schema.List, h typedtree.ValueHandler) {
	lh := h.OnList(&typedtree.List{
		Token:      p.expect(scanner.OpenBracket),
		Definition: def,
	})
	for !p.is(scanner.CloseBracket) {
		if p.is(scanner.EOF) {
			p.errf("expected ], found %v", p.tok)
		}
		p.value(def.Value, lh.OnElement(), normal)
	}
	lh.OnClose(&typedtree.Close{Token: p.expect(scanner.CloseBracket)})
}

func (p *parser) taggedUnion(def *schema.TaggedUnion, h typedtree.ValueHandler, m mode) {
	var bar *token.Annotation
	if m == normal {
		bar = p.expect(scanner.Bar)
	}
	uh := h.OnTaggedUnion(&typedtree.TaggedUnion{Token: bar, Definition: def})
	if !p.isName() {
		p.errf("expected option, found %v", p.tok)
	}
	name := p.tok.Value
	opt := def.Option(name)
	if opt == nil {
		uh.OnUnexpectedOption(&typedtree.UnexpectedOption{
			Token:           *p.tok.Annotation(),
			Name:            name,
			ExpectedOptions: def.OptionNames(),
		})
		p.next()
		p.skipValue()
		uh.OnEnd()
		return
	}
	vh := uh.OnOption(&typedtree.Option{Token: p.tok.Annotation(), Name: name, Definition: opt})
	p.next()
	p.value(opt.Value, vh, m)
	uh.OnEnd()
}

func (p *parser) verboseGroup(def *schema.Group, h typedtree.ValueHandler) {
	gh := h.OnGroup(&typedtree.Group{
		Style:      typedtree.Verbose,
		Token:      p.expect(scanner.OpenParen),
		Definition: def,
	})
	seen := map[string]bool{}
	for !p.is(scanner.CloseParen) {
		if !p.isName() {
			p.errf("expected property or ), found %v", p.tok)
		}
		key := p.tok.Value
		prop := def.Property(key)
		if prop == nil || seen[key] {
			gh.OnUnexpectedProperty(&typedtree.UnexpectedProperty{
				Token:              *p.tok.Annotation(),
				Key:                key,
				ExpectedProperties: remaining(def, seen),
			})
			p.next()
			p.expect(scanner.Colon)
			p.skipValue()
			continue
		}
		seen[key] = true
		vh := gh.OnProperty(&typedtree.Property{Token: p.tok.Annotation(), Key: key, Definition: prop})
		p.next()
		p.expect(scanner.Colon)
		p.value(prop.Value, vh, normal)
	}
	gh.OnClose(&typedtree.Close{Token: p.expect(scanner.CloseParen)})
}

// remaining returns the keys of the properties of g that have not been
// seen.
func remaining(g *schema.Group, seen map[string]bool) []string {
	var keys []string
	for _, prop := range g.Properties {
		if !seen[prop.Key] {
			keys = append(keys, prop.Key)
		}
	}
	return keys
}

func (p *parser) shorthandGroup(def *schema.Group, h typedtree.ValueHandler) {
	gh := h.OnGroup(&typedtree.Group{
		Style:      typedtree.Shorthand,
		Token:      p.expect(scanner.OpenAngle),
		Definition: def,
	})
	p.shorthandProperties(def, gh)
	gh.OnClose(&typedtree.Close{Token: p.expect(scanner.CloseAngle)})
}

func (p *parser) mixin(def *schema.Group, h typedtree.ValueHandler) {
	gh := h.OnGroup(&typedtree.Group{Style: typedtree.Mixin, Definition: def})
	p.shorthandProperties(def, gh)
	gh.OnClose(&typedtree.Close{})
}

// shorthandProperties reads the property values of a shorthand group in
// order. If the group is closed early, the remaining group-valued
// properties are reported as omitted.
func (p *parser) shorthandProperties(def *schema.Group, gh typedtree.GroupHandler) {
	for _, prop := range def.Properties {
		if p.is(scanner.CloseAngle) {
			p.omitProperty(prop, gh)
			continue
		}
		vh := gh.OnProperty(&typedtree.Property{Key: prop.Key, Definition: prop})
		p.value(prop.Value, vh, shorthand)
	}
}

func (p *parser) omitProperty(prop *schema.Property, gh typedtree.GroupHandler) {
	if _, ok := schema.Resolve(prop.Value).(*schema.Group); !ok {
		return
	}
	p.omit(prop.Value, gh.OnProperty(&typedtree.Property{Key: prop.Key, Definition: prop}))
}

func (p *parser) omit(def schema.ValueDefinition, h typedtree.ValueHandler) {
	switch def := def.(type) {
	case *schema.TypeReference:
		p.omit(def.Resolve(), h.OnTypeReference(&typedtree.TypeReference{Definition: def}))
	case *schema.Group:
		gh := h.OnGroup(&typedtree.Group{Style: typedtree.Omitted, Definition: def})
		for _, prop := range def.Properties {
			p.omitProperty(prop, gh)
		}
		gh.OnClose(&typedtree.Close{})
	}
}

var closers = map[scanner.Kind]scanner.Kind{
	scanner.OpenParen:   scanner.CloseParen,
	scanner.OpenAngle:   scanner.CloseAngle,
	scanner.OpenBrace:   scanner.CloseBrace,
	scanner.OpenBracket: scanner.CloseBracket,
}

// skipValue skips a value without interpreting it.
func (p *parser) skipValue() {
	switch k := p.tok.Kind; {
	case k == scanner.EOF:
		p.errf("expected value, found %v", p.tok)
	case k == scanner.Bar:
		p.next()
		if !p.isName() {
			p.errf("expected option, found %v", p.tok)
		}
		p.next()
		p.skipValue()
	case closers[k] != 0:
		var stack []scanner.Kind
		for {
			if c, ok := closers[p.tok.Kind]; ok {
				stack = append(stack, c)
			} else if p.is(stack[len(stack)-1]) {
				stack = stack[:len(stack)-1]
			} else if p.is(scanner.EOF) {
				p.errf("expected %v, found %v", stack[len(stack)-1], p.tok)
			}
			p.next()
			if len(stack) == 0 {
				return
			}
		}
	default:
		p.next()
	}
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}
